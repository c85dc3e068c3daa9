package repository

import (
	"context"

	"bookhaven-api/internal/model"
)

// Sort keys accepted by BookRepository.List. Unknown keys fall back to
// SortPopular.
const (
	SortPopular   = "popular"
	SortLatest    = "latest"
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
	SortRating    = "rating"
)

// BookQuery filters and orders the catalog. Zero values mean "no filter".
type BookQuery struct {
	Search     string
	CategoryID int
	Sort       string
}

// Store aggregates the per-entity repositories over one backend. Reads
// return nil (or an empty slice) when nothing matches; mutations against
// absent ids fail with apperr.NotFound and unique-constraint violations
// with apperr.Conflict. Both implementations satisfy the same contract.
type Store interface {
	Users() UserRepository
	Categories() CategoryRepository
	Books() BookRepository
	Carts() CartRepository
	Orders() OrderRepository
	Subscribers() SubscriberRepository

	// Transact runs fn against a transaction-bound Store. If fn returns an
	// error, none of its writes are kept.
	Transact(ctx context.Context, fn func(Store) error) error
}

type UserRepository interface {
	ByID(ctx context.Context, id int) (*model.User, error)
	// ByUsername and ByEmail match case-insensitively.
	ByUsername(ctx context.Context, username string) (*model.User, error)
	ByEmail(ctx context.Context, email string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
}

type CategoryRepository interface {
	All(ctx context.Context) ([]model.Category, error)
	ByID(ctx context.Context, id int) (*model.Category, error)
	ByName(ctx context.Context, name string) (*model.Category, error)
	Create(ctx context.Context, category *model.Category) error
	Update(ctx context.Context, category *model.Category) error
	Delete(ctx context.Context, id int) error
	IncrementBookCount(ctx context.Context, id int) error
	// DecrementBookCount floors at zero, no matter how often it is called.
	DecrementBookCount(ctx context.Context, id int) error
}

type BookRepository interface {
	List(ctx context.Context, query BookQuery) ([]model.Book, error)
	ByID(ctx context.Context, id int) (*model.Book, error)
	Related(ctx context.Context, categoryID, excludeID, limit int) ([]model.Book, error)
	Create(ctx context.Context, book *model.Book) error
	Update(ctx context.Context, book *model.Book) error
	Delete(ctx context.Context, id int) error
}

type CartRepository interface {
	ListByUser(ctx context.Context, userID int) ([]model.CartItem, error)
	Get(ctx context.Context, userID, bookID int) (*model.CartItem, error)
	Create(ctx context.Context, item *model.CartItem) error
	UpdateQuantity(ctx context.Context, id, quantity int) error
	Delete(ctx context.Context, id int) error
	// DeleteByBook removes the book's lines from every cart.
	DeleteByBook(ctx context.Context, bookID int) error
	Clear(ctx context.Context, userID int) error
}

type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	ByID(ctx context.Context, id int) (*model.Order, error)
	// ListByUser returns the user's orders, newest first.
	ListByUser(ctx context.Context, userID int) ([]model.Order, error)
	UpdateStatus(ctx context.Context, id int, status string) error
	CreateItems(ctx context.Context, items []*model.OrderItem) error
	Items(ctx context.Context, orderID int) ([]model.OrderItem, error)
	// CountItemsByBook backs the restrict-delete rule on books.
	CountItemsByBook(ctx context.Context, bookID int) (int64, error)
}

type SubscriberRepository interface {
	ByEmail(ctx context.Context, email string) (*model.Subscriber, error)
	Create(ctx context.Context, subscriber *model.Subscriber) error
}
