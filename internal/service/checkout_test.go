package service_test

import (
	"context"
	"testing"

	"bookhaven-api/internal/apperr"
	"bookhaven-api/internal/dto"
	"bookhaven-api/internal/model"
	"bookhaven-api/internal/repository"
	"bookhaven-api/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkoutReq() *dto.CheckoutRequest {
	return &dto.CheckoutRequest{ShippingAddress: "1 Main St", PaymentMethod: "card"}
}

func TestCheckoutAddsShippingUnderThreshold(t *testing.T) {
	eachStore(t, func(t *testing.T, store repository.Store) {
		ctx := context.Background()
		category := mustCategory(t, store, "Fiction")
		cheap := mustBook(t, store, category.ID, "Cheap", 10.00)
		mid := mustBook(t, store, category.ID, "Mid", 20.00)
		user := mustUser(t, store, "buyer", false)

		require.NoError(t, store.Carts().Create(ctx, &model.CartItem{UserID: user.ID, BookID: cheap.ID, Quantity: 1}))
		require.NoError(t, store.Carts().Create(ctx, &model.CartItem{UserID: user.ID, BookID: mid.ID, Quantity: 1}))

		svc := service.NewCheckoutService(store)
		orderID, err := svc.Checkout(ctx, user.ID, checkoutReq())
		require.NoError(t, err)

		order, err := store.Orders().ByID(ctx, orderID)
		require.NoError(t, err)
		require.NotNil(t, order)
		// 30.00 subtotal is under the 35.00 free-shipping line
		assert.InDelta(t, 35.99, order.TotalAmount, 0.001)
		assert.Equal(t, model.OrderStatusPending, order.Status)
	})
}

func TestCheckoutFreeShippingAtThreshold(t *testing.T) {
	eachStore(t, func(t *testing.T, store repository.Store) {
		ctx := context.Background()
		category := mustCategory(t, store, "Fiction")
		cheap := mustBook(t, store, category.ID, "Cheap", 10.00)
		mid := mustBook(t, store, category.ID, "Mid", 20.00)
		user := mustUser(t, store, "buyer", false)

		require.NoError(t, store.Carts().Create(ctx, &model.CartItem{UserID: user.ID, BookID: cheap.ID, Quantity: 2}))
		require.NoError(t, store.Carts().Create(ctx, &model.CartItem{UserID: user.ID, BookID: mid.ID, Quantity: 1}))

		svc := service.NewCheckoutService(store)
		orderID, err := svc.Checkout(ctx, user.ID, checkoutReq())
		require.NoError(t, err)

		order, err := store.Orders().ByID(ctx, orderID)
		require.NoError(t, err)
		require.NotNil(t, order)
		assert.InDelta(t, 40.00, order.TotalAmount, 0.001)
	})
}

func TestCheckoutEmptyCart(t *testing.T) {
	eachStore(t, func(t *testing.T, store repository.Store) {
		user := mustUser(t, store, "buyer", false)

		svc := service.NewCheckoutService(store)
		_, err := svc.Checkout(context.Background(), user.ID, checkoutReq())
		assert.True(t, apperr.Is(err, apperr.CodeEmptyCart), "got %v", err)
	})
}

func TestCheckoutOutOfStockLeavesCartIntact(t *testing.T) {
	eachStore(t, func(t *testing.T, store repository.Store) {
		ctx := context.Background()
		category := mustCategory(t, store, "Fiction")
		ok := mustBook(t, store, category.ID, "Available", 20.00)
		gone := mustBook(t, store, category.ID, "Gone", 20.00)
		user := mustUser(t, store, "buyer", false)

		gone.InStock = false
		require.NoError(t, store.Books().Update(ctx, gone))

		require.NoError(t, store.Carts().Create(ctx, &model.CartItem{UserID: user.ID, BookID: ok.ID, Quantity: 1}))
		require.NoError(t, store.Carts().Create(ctx, &model.CartItem{UserID: user.ID, BookID: gone.ID, Quantity: 1}))

		svc := service.NewCheckoutService(store)
		_, err := svc.Checkout(ctx, user.ID, checkoutReq())
		assert.True(t, apperr.Is(err, apperr.CodeOutOfStock), "got %v", err)

		items, err := store.Carts().ListByUser(ctx, user.ID)
		require.NoError(t, err)
		assert.Len(t, items, 2, "failed checkout must not touch the cart")

		orders, err := store.Orders().ListByUser(ctx, user.ID)
		require.NoError(t, err)
		assert.Empty(t, orders, "failed checkout must not leave an order behind")
	})
}

func TestCheckoutClearsCartAndSnapshotsPrices(t *testing.T) {
	eachStore(t, func(t *testing.T, store repository.Store) {
		ctx := context.Background()
		category := mustCategory(t, store, "Fiction")
		book := mustBook(t, store, category.ID, "Dune", 40.00)
		user := mustUser(t, store, "buyer", false)

		require.NoError(t, store.Carts().Create(ctx, &model.CartItem{UserID: user.ID, BookID: book.ID, Quantity: 2}))

		svc := service.NewCheckoutService(store)
		orderID, err := svc.Checkout(ctx, user.ID, checkoutReq())
		require.NoError(t, err)

		items, err := store.Carts().ListByUser(ctx, user.ID)
		require.NoError(t, err)
		assert.Empty(t, items)

		// the order line keeps the purchase-time price
		book.Price = 99.99
		require.NoError(t, store.Books().Update(ctx, book))

		lines, err := store.Orders().Items(ctx, orderID)
		require.NoError(t, err)
		require.Len(t, lines, 1)
		assert.InDelta(t, 40.00, lines[0].Price, 0.001)
		assert.Equal(t, 2, lines[0].Quantity)
	})
}

func TestOrderVisibility(t *testing.T) {
	eachStore(t, func(t *testing.T, store repository.Store) {
		ctx := context.Background()
		category := mustCategory(t, store, "Fiction")
		book := mustBook(t, store, category.ID, "Dune", 40.00)
		owner := mustUser(t, store, "owner", false)
		stranger := mustUser(t, store, "stranger", false)
		admin := mustUser(t, store, "admin", true)

		require.NoError(t, store.Carts().Create(ctx, &model.CartItem{UserID: owner.ID, BookID: book.ID, Quantity: 1}))

		svc := service.NewCheckoutService(store)
		orderID, err := svc.Checkout(ctx, owner.ID, checkoutReq())
		require.NoError(t, err)

		detail, err := svc.Order(ctx, owner, orderID)
		require.NoError(t, err)
		require.Len(t, detail.Items, 1)
		assert.Equal(t, book.ID, detail.Items[0].BookID)

		_, err = svc.Order(ctx, stranger, orderID)
		assert.True(t, apperr.Is(err, apperr.CodeForbidden), "got %v", err)

		_, err = svc.Order(ctx, admin, orderID)
		assert.NoError(t, err)
	})
}

func TestUpdateOrderStatus(t *testing.T) {
	eachStore(t, func(t *testing.T, store repository.Store) {
		ctx := context.Background()
		category := mustCategory(t, store, "Fiction")
		book := mustBook(t, store, category.ID, "Dune", 40.00)
		user := mustUser(t, store, "buyer", false)

		require.NoError(t, store.Carts().Create(ctx, &model.CartItem{UserID: user.ID, BookID: book.ID, Quantity: 1}))

		svc := service.NewCheckoutService(store)
		orderID, err := svc.Checkout(ctx, user.ID, checkoutReq())
		require.NoError(t, err)

		err = svc.UpdateStatus(ctx, orderID, "teleported")
		assert.True(t, apperr.Is(err, apperr.CodeValidation), "got %v", err)

		require.NoError(t, svc.UpdateStatus(ctx, orderID, model.OrderStatusShipped))
		order, err := store.Orders().ByID(ctx, orderID)
		require.NoError(t, err)
		assert.Equal(t, model.OrderStatusShipped, order.Status)
	})
}
