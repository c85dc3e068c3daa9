package service

import (
	"context"
	"fmt"
	"sync"

	"bookhaven-api/internal/apperr"
	"bookhaven-api/internal/dto"
	"bookhaven-api/internal/model"
	"bookhaven-api/internal/repository"

	"github.com/shopspring/decimal"
)

// Orders under this subtotal pay a flat shipping fee.
var (
	freeShippingMin = decimal.NewFromFloat(35.00)
	shippingFee     = decimal.NewFromFloat(5.99)
)

// CheckoutService converts a cart into an Order with snapshot-priced
// OrderItems, and serves order history.
type CheckoutService interface {
	// Checkout validates the cart, prices it, persists the order and
	// clears the cart in one transaction, returning the new order id.
	Checkout(ctx context.Context, userID int, req *dto.CheckoutRequest) (int, error)
	Orders(ctx context.Context, userID int) ([]model.Order, error)
	// Order returns the order with its items; only the owner or an admin
	// may see it.
	Order(ctx context.Context, requester *model.User, orderID int) (*dto.OrderDetail, error)
	UpdateStatus(ctx context.Context, orderID int, status string) error
}

type checkoutServiceImpl struct {
	store repository.Store

	// one lock per user: two concurrent checkouts of the same cart must
	// not both pass validation
	userLocks sync.Map
}

func NewCheckoutService(store repository.Store) CheckoutService {
	return &checkoutServiceImpl{store: store}
}

func (s *checkoutServiceImpl) lockUser(userID int) *sync.Mutex {
	mu, _ := s.userLocks.LoadOrStore(userID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

func (s *checkoutServiceImpl) Checkout(ctx context.Context, userID int, req *dto.CheckoutRequest) (int, error) {
	mu := s.lockUser(userID)
	mu.Lock()
	defer mu.Unlock()

	items, err := s.store.Carts().ListByUser(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("load cart: %w", err)
	}
	if len(items) == 0 {
		return 0, apperr.EmptyCart("cart is empty")
	}

	// validate every line before any write
	books := make(map[int]*model.Book, len(items))
	total := decimal.Zero
	for _, item := range items {
		book, err := s.store.Books().ByID(ctx, item.BookID)
		if err != nil {
			return 0, fmt.Errorf("load book %d: %w", item.BookID, err)
		}
		if book == nil {
			return 0, apperr.NotFound("book with ID %d not found", item.BookID)
		}
		if !book.InStock {
			return 0, apperr.OutOfStock("%s is out of stock", book.Title)
		}
		books[item.BookID] = book
		total = total.Add(decimal.NewFromFloat(book.Price).Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	if total.LessThan(freeShippingMin) {
		total = total.Add(shippingFee)
	}
	total = total.Round(2)

	order := &model.Order{
		UserID:          userID,
		Status:          model.OrderStatusPending,
		TotalAmount:     total.InexactFloat64(),
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
	}

	err = s.store.Transact(ctx, func(tx repository.Store) error {
		if err := tx.Orders().Create(ctx, order); err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		orderItems := make([]*model.OrderItem, 0, len(items))
		for _, item := range items {
			orderItems = append(orderItems, &model.OrderItem{
				OrderID:  order.ID,
				BookID:   item.BookID,
				Quantity: item.Quantity,
				Price:    books[item.BookID].Price,
			})
		}
		if err := tx.Orders().CreateItems(ctx, orderItems); err != nil {
			return fmt.Errorf("create order items: %w", err)
		}

		return tx.Carts().Clear(ctx, userID)
	})
	if err != nil {
		return 0, err
	}

	return order.ID, nil
}

func (s *checkoutServiceImpl) Orders(ctx context.Context, userID int) ([]model.Order, error) {
	return s.store.Orders().ListByUser(ctx, userID)
}

func (s *checkoutServiceImpl) Order(ctx context.Context, requester *model.User, orderID int) (*dto.OrderDetail, error) {
	order, err := s.store.Orders().ByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperr.NotFound("order not found")
	}
	if order.UserID != requester.ID && !requester.IsAdmin {
		return nil, apperr.Forbidden("not authorized")
	}

	items, err := s.store.Orders().Items(ctx, orderID)
	if err != nil {
		return nil, err
	}

	detail := &dto.OrderDetail{Order: order, Items: make([]dto.OrderItemDetail, 0, len(items))}
	for _, item := range items {
		book, err := s.store.Books().ByID(ctx, item.BookID)
		if err != nil {
			return nil, fmt.Errorf("load book %d: %w", item.BookID, err)
		}
		detail.Items = append(detail.Items, dto.OrderItemDetail{
			ID:       item.ID,
			BookID:   item.BookID,
			Quantity: item.Quantity,
			Price:    item.Price,
			Book:     book,
		})
	}
	return detail, nil
}

func (s *checkoutServiceImpl) UpdateStatus(ctx context.Context, orderID int, status string) error {
	if !model.ValidOrderStatus(status) {
		return apperr.Validation("unknown order status %q", status)
	}
	return s.store.Orders().UpdateStatus(ctx, orderID, status)
}
