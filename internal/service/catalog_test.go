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

func bookInput(categoryID int, title string) *dto.BookInput {
	return &dto.BookInput{
		Title:      title,
		Author:     "Author",
		Price:      12.50,
		Pages:      200,
		CategoryID: categoryID,
		InStock:    true,
	}
}

func bookCount(t *testing.T, store repository.Store, categoryID int) int {
	t.Helper()
	category, err := store.Categories().ByID(context.Background(), categoryID)
	require.NoError(t, err)
	require.NotNil(t, category)
	return category.BookCount
}

func TestCreateBookMaintainsBookCount(t *testing.T) {
	eachStore(t, func(t *testing.T, store repository.Store) {
		ctx := context.Background()
		category := mustCategory(t, store, "Fiction")
		svc := service.NewCatalogService(store)

		book, err := svc.CreateBook(ctx, bookInput(category.ID, "Dune"))
		require.NoError(t, err)
		require.NotZero(t, book.ID)
		assert.Equal(t, 1, bookCount(t, store, category.ID))

		require.NoError(t, svc.DeleteBook(ctx, book.ID))
		assert.Equal(t, 0, bookCount(t, store, category.ID))
	})
}

func TestCreateBookUnknownCategory(t *testing.T) {
	eachStore(t, func(t *testing.T, store repository.Store) {
		svc := service.NewCatalogService(store)
		_, err := svc.CreateBook(context.Background(), bookInput(99, "Orphan"))
		assert.True(t, apperr.Is(err, apperr.CodeNotFound), "got %v", err)
	})
}

func TestUpdateBookMovesCountBetweenCategories(t *testing.T) {
	eachStore(t, func(t *testing.T, store repository.Store) {
		ctx := context.Background()
		fiction := mustCategory(t, store, "Fiction")
		scifi := mustCategory(t, store, "Sci-Fi")
		svc := service.NewCatalogService(store)

		book, err := svc.CreateBook(ctx, bookInput(fiction.ID, "Dune"))
		require.NoError(t, err)

		input := bookInput(scifi.ID, "Dune")
		updated, err := svc.UpdateBook(ctx, book.ID, input)
		require.NoError(t, err)
		assert.Equal(t, scifi.ID, updated.CategoryID)
		assert.Equal(t, book.ID, updated.ID)

		assert.Equal(t, 0, bookCount(t, store, fiction.ID))
		assert.Equal(t, 1, bookCount(t, store, scifi.ID))
	})
}

func TestDeleteBookBlockedByOrders(t *testing.T) {
	eachStore(t, func(t *testing.T, store repository.Store) {
		ctx := context.Background()
		category := mustCategory(t, store, "Fiction")
		svc := service.NewCatalogService(store)

		book, err := svc.CreateBook(ctx, bookInput(category.ID, "Dune"))
		require.NoError(t, err)

		order := &model.Order{UserID: 1, Status: model.OrderStatusPending, TotalAmount: 12.50, ShippingAddress: "a", PaymentMethod: "card"}
		require.NoError(t, store.Orders().Create(ctx, order))
		require.NoError(t, store.Orders().CreateItems(ctx, []*model.OrderItem{
			{OrderID: order.ID, BookID: book.ID, Quantity: 1, Price: 12.50},
		}))

		err = svc.DeleteBook(ctx, book.ID)
		assert.True(t, apperr.Is(err, apperr.CodeConflict), "got %v", err)

		// the failed delete must not have touched the count or the book
		assert.Equal(t, 1, bookCount(t, store, category.ID))
		got, err := store.Books().ByID(ctx, book.ID)
		require.NoError(t, err)
		assert.NotNil(t, got)
	})
}

func TestDeleteBookRemovesCartLines(t *testing.T) {
	eachStore(t, func(t *testing.T, store repository.Store) {
		ctx := context.Background()
		category := mustCategory(t, store, "Fiction")
		svc := service.NewCatalogService(store)

		book, err := svc.CreateBook(ctx, bookInput(category.ID, "Dune"))
		require.NoError(t, err)
		keep, err := svc.CreateBook(ctx, bookInput(category.ID, "Emma"))
		require.NoError(t, err)

		require.NoError(t, store.Carts().Create(ctx, &model.CartItem{UserID: 7, BookID: book.ID, Quantity: 1}))
		require.NoError(t, store.Carts().Create(ctx, &model.CartItem{UserID: 7, BookID: keep.ID, Quantity: 1}))

		require.NoError(t, svc.DeleteBook(ctx, book.ID))

		items, err := store.Carts().ListByUser(ctx, 7)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, keep.ID, items[0].BookID)
	})
}

func TestRelatedBooksExcludesSelf(t *testing.T) {
	eachStore(t, func(t *testing.T, store repository.Store) {
		ctx := context.Background()
		category := mustCategory(t, store, "Fiction")
		other := mustCategory(t, store, "Sci-Fi")
		svc := service.NewCatalogService(store)

		subject, err := svc.CreateBook(ctx, bookInput(category.ID, "Subject"))
		require.NoError(t, err)
		for _, title := range []string{"A", "B", "C", "D", "E"} {
			_, err := svc.CreateBook(ctx, bookInput(category.ID, title))
			require.NoError(t, err)
		}
		_, err = svc.CreateBook(ctx, bookInput(other.ID, "Elsewhere"))
		require.NoError(t, err)

		related, err := svc.RelatedBooks(ctx, subject.ID)
		require.NoError(t, err)
		assert.Len(t, related, 4)
		for _, b := range related {
			assert.NotEqual(t, subject.ID, b.ID)
			assert.Equal(t, category.ID, b.CategoryID)
		}
	})
}

func TestCategoryCRUD(t *testing.T) {
	eachStore(t, func(t *testing.T, store repository.Store) {
		ctx := context.Background()
		svc := service.NewCatalogService(store)

		category, err := svc.CreateCategory(ctx, &dto.CategoryInput{Name: "Poetry", Icon: "pen"})
		require.NoError(t, err)

		_, err = svc.CreateCategory(ctx, &dto.CategoryInput{Name: "Poetry", Icon: "pen"})
		assert.True(t, apperr.Is(err, apperr.CodeConflict), "got %v", err)

		renamed, err := svc.UpdateCategory(ctx, category.ID, &dto.CategoryInput{Name: "Verse", Icon: "pen"})
		require.NoError(t, err)
		assert.Equal(t, "Verse", renamed.Name)

		require.NoError(t, svc.DeleteCategory(ctx, category.ID))
		got, err := store.Categories().ByID(ctx, category.ID)
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestDeleteCategoryCascadesToBooksAndCarts(t *testing.T) {
	eachStore(t, func(t *testing.T, store repository.Store) {
		ctx := context.Background()
		category := mustCategory(t, store, "Fiction")
		svc := service.NewCatalogService(store)

		book, err := svc.CreateBook(ctx, bookInput(category.ID, "Dune"))
		require.NoError(t, err)
		require.NoError(t, store.Carts().Create(ctx, &model.CartItem{UserID: 7, BookID: book.ID, Quantity: 1}))

		require.NoError(t, svc.DeleteCategory(ctx, category.ID))

		gotBook, err := store.Books().ByID(ctx, book.ID)
		require.NoError(t, err)
		assert.Nil(t, gotBook)

		items, err := store.Carts().ListByUser(ctx, 7)
		require.NoError(t, err)
		assert.Empty(t, items)
	})
}

func TestDeleteCategoryBlockedByOrderedBook(t *testing.T) {
	eachStore(t, func(t *testing.T, store repository.Store) {
		ctx := context.Background()
		category := mustCategory(t, store, "Fiction")
		svc := service.NewCatalogService(store)

		book, err := svc.CreateBook(ctx, bookInput(category.ID, "Dune"))
		require.NoError(t, err)

		order := &model.Order{UserID: 1, Status: model.OrderStatusPending, TotalAmount: 12.50, ShippingAddress: "a", PaymentMethod: "card"}
		require.NoError(t, store.Orders().Create(ctx, order))
		require.NoError(t, store.Orders().CreateItems(ctx, []*model.OrderItem{
			{OrderID: order.ID, BookID: book.ID, Quantity: 1, Price: 12.50},
		}))

		err = svc.DeleteCategory(ctx, category.ID)
		assert.True(t, apperr.Is(err, apperr.CodeConflict), "got %v", err)

		got, err := store.Categories().ByID(ctx, category.ID)
		require.NoError(t, err)
		assert.NotNil(t, got, "failed delete must keep the category")
	})
}
