package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"bookhaven-api/internal/apperr"
	"bookhaven-api/internal/model"
)

// memData holds every table as a keyed map plus the per-type id counters.
// Values are stored by value so a snapshot is a plain map copy.
type memData struct {
	users       map[int]model.User
	categories  map[int]model.Category
	books       map[int]model.Book
	cartItems   map[int]model.CartItem
	orders      map[int]model.Order
	orderItems  map[int]model.OrderItem
	subscribers map[int]model.Subscriber

	nextUser       int
	nextCategory   int
	nextBook       int
	nextCartItem   int
	nextOrder      int
	nextOrderItem  int
	nextSubscriber int
}

func newMemData() *memData {
	return &memData{
		users:          make(map[int]model.User),
		categories:     make(map[int]model.Category),
		books:          make(map[int]model.Book),
		cartItems:      make(map[int]model.CartItem),
		orders:         make(map[int]model.Order),
		orderItems:     make(map[int]model.OrderItem),
		subscribers:    make(map[int]model.Subscriber),
		nextUser:       1,
		nextCategory:   1,
		nextBook:       1,
		nextCartItem:   1,
		nextOrder:      1,
		nextOrderItem:  1,
		nextSubscriber: 1,
	}
}

func (d *memData) clone() *memData {
	c := *d
	c.users = cloneMap(d.users)
	c.categories = cloneMap(d.categories)
	c.books = cloneMap(d.books)
	c.cartItems = cloneMap(d.cartItems)
	c.orders = cloneMap(d.orders)
	c.orderItems = cloneMap(d.orderItems)
	c.subscribers = cloneMap(d.subscribers)
	return &c
}

func cloneMap[V any](m map[int]V) map[int]V {
	out := make(map[int]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// memoryStore keeps every table in process memory. It satisfies the same
// contract as the gorm store; tests run both against identical assertions.
type memoryStore struct {
	mu   sync.RWMutex
	txMu sync.Mutex
	data *memData
}

func NewMemoryStore() Store {
	return &memoryStore{data: newMemData()}
}

func (s *memoryStore) Users() UserRepository             { return &memUserRepo{s} }
func (s *memoryStore) Categories() CategoryRepository    { return &memCategoryRepo{s} }
func (s *memoryStore) Books() BookRepository             { return &memBookRepo{s} }
func (s *memoryStore) Carts() CartRepository             { return &memCartRepo{s} }
func (s *memoryStore) Orders() OrderRepository           { return &memOrderRepo{s} }
func (s *memoryStore) Subscribers() SubscriberRepository { return &memSubscriberRepo{s} }

// Transact serializes transactions, snapshots the tables, and restores the
// snapshot when fn fails. This gives the memory backend the same
// all-or-nothing semantics as a database transaction.
func (s *memoryStore) Transact(_ context.Context, fn func(Store) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	snapshot := s.data.clone()
	s.mu.Unlock()

	if err := fn(s); err != nil {
		s.mu.Lock()
		s.data = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

func stampCreated(t *time.Time) {
	if t.IsZero() {
		*t = time.Now()
	}
}

// ---- users ----

type memUserRepo struct {
	s *memoryStore
}

func (r *memUserRepo) ByID(_ context.Context, id int) (*model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if u, ok := r.s.data.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (r *memUserRepo) ByUsername(_ context.Context, username string) (*model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.data.users {
		if strings.EqualFold(u.Username, username) {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) ByEmail(_ context.Context, email string) (*model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.data.users {
		if strings.EqualFold(u.Email, email) {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) Create(_ context.Context, user *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.data.users {
		if strings.EqualFold(u.Username, user.Username) || strings.EqualFold(u.Email, user.Email) {
			return apperr.Conflict("record already exists")
		}
	}
	user.ID = r.s.data.nextUser
	r.s.data.nextUser++
	stampCreated(&user.CreatedAt)
	r.s.data.users[user.ID] = *user
	return nil
}

func (r *memUserRepo) Update(_ context.Context, user *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.users[user.ID]; !ok {
		return apperr.NotFound("user %d not found", user.ID)
	}
	for id, u := range r.s.data.users {
		if id == user.ID {
			continue
		}
		if strings.EqualFold(u.Username, user.Username) || strings.EqualFold(u.Email, user.Email) {
			return apperr.Conflict("record already exists")
		}
	}
	r.s.data.users[user.ID] = *user
	return nil
}

// ---- categories ----

type memCategoryRepo struct {
	s *memoryStore
}

func (r *memCategoryRepo) All(_ context.Context) ([]model.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]model.Category, 0, len(r.s.data.categories))
	for _, c := range r.s.data.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memCategoryRepo) ByID(_ context.Context, id int) (*model.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if c, ok := r.s.data.categories[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (r *memCategoryRepo) ByName(_ context.Context, name string) (*model.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, c := range r.s.data.categories {
		if strings.EqualFold(c.Name, name) {
			c := c
			return &c, nil
		}
	}
	return nil, nil
}

func (r *memCategoryRepo) Create(_ context.Context, category *model.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.data.categories {
		if c.Name == category.Name {
			return apperr.Conflict("record already exists")
		}
	}
	category.ID = r.s.data.nextCategory
	r.s.data.nextCategory++
	r.s.data.categories[category.ID] = *category
	return nil
}

func (r *memCategoryRepo) Update(_ context.Context, category *model.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.categories[category.ID]; !ok {
		return apperr.NotFound("category %d not found", category.ID)
	}
	for id, c := range r.s.data.categories {
		if id != category.ID && c.Name == category.Name {
			return apperr.Conflict("record already exists")
		}
	}
	r.s.data.categories[category.ID] = *category
	return nil
}

func (r *memCategoryRepo) Delete(_ context.Context, id int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.categories[id]; !ok {
		return apperr.NotFound("category %d not found", id)
	}
	delete(r.s.data.categories, id)
	return nil
}

func (r *memCategoryRepo) IncrementBookCount(_ context.Context, id int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.data.categories[id]
	if !ok {
		return apperr.NotFound("category %d not found", id)
	}
	c.BookCount++
	r.s.data.categories[id] = c
	return nil
}

func (r *memCategoryRepo) DecrementBookCount(_ context.Context, id int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.data.categories[id]
	if !ok {
		return nil
	}
	if c.BookCount > 0 {
		c.BookCount--
		r.s.data.categories[id] = c
	}
	return nil
}

// ---- books ----

type memBookRepo struct {
	s *memoryStore
}

func (r *memBookRepo) List(_ context.Context, query BookQuery) ([]model.Book, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	term := strings.ToLower(query.Search)
	out := make([]model.Book, 0, len(r.s.data.books))
	for _, b := range r.s.data.books {
		if term != "" &&
			!strings.Contains(strings.ToLower(b.Title), term) &&
			!strings.Contains(strings.ToLower(b.Author), term) &&
			!strings.Contains(strings.ToLower(b.Description), term) {
			continue
		}
		if query.CategoryID != 0 && b.CategoryID != query.CategoryID {
			continue
		}
		out = append(out, b)
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		switch query.Sort {
		case SortLatest:
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.After(b.CreatedAt)
			}
			return a.ID > b.ID
		case SortPriceLow:
			if a.Price != b.Price {
				return a.Price < b.Price
			}
		case SortPriceHigh:
			if a.Price != b.Price {
				return a.Price > b.Price
			}
		case SortRating:
			if a.Rating != b.Rating {
				return a.Rating > b.Rating
			}
		default:
			if a.ReviewCount != b.ReviewCount {
				return a.ReviewCount > b.ReviewCount
			}
		}
		return a.ID < b.ID
	})
	return out, nil
}

func (r *memBookRepo) ByID(_ context.Context, id int) (*model.Book, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if b, ok := r.s.data.books[id]; ok {
		return &b, nil
	}
	return nil, nil
}

func (r *memBookRepo) Related(_ context.Context, categoryID, excludeID, limit int) ([]model.Book, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []model.Book
	for _, b := range r.s.data.books {
		if b.CategoryID == categoryID && b.ID != excludeID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memBookRepo) Create(_ context.Context, book *model.Book) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	book.ID = r.s.data.nextBook
	r.s.data.nextBook++
	stampCreated(&book.CreatedAt)
	r.s.data.books[book.ID] = *book
	return nil
}

func (r *memBookRepo) Update(_ context.Context, book *model.Book) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.books[book.ID]; !ok {
		return apperr.NotFound("book %d not found", book.ID)
	}
	r.s.data.books[book.ID] = *book
	return nil
}

func (r *memBookRepo) Delete(_ context.Context, id int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.books[id]; !ok {
		return apperr.NotFound("book %d not found", id)
	}
	delete(r.s.data.books, id)
	return nil
}

// ---- cart items ----

type memCartRepo struct {
	s *memoryStore
}

func (r *memCartRepo) ListByUser(_ context.Context, userID int) ([]model.CartItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []model.CartItem
	for _, it := range r.s.data.cartItems {
		if it.UserID == userID {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memCartRepo) Get(_ context.Context, userID, bookID int) (*model.CartItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, it := range r.s.data.cartItems {
		if it.UserID == userID && it.BookID == bookID {
			it := it
			return &it, nil
		}
	}
	return nil, nil
}

func (r *memCartRepo) Create(_ context.Context, item *model.CartItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, it := range r.s.data.cartItems {
		if it.UserID == item.UserID && it.BookID == item.BookID {
			return apperr.Conflict("record already exists")
		}
	}
	item.ID = r.s.data.nextCartItem
	r.s.data.nextCartItem++
	stampCreated(&item.CreatedAt)
	r.s.data.cartItems[item.ID] = *item
	return nil
}

func (r *memCartRepo) UpdateQuantity(_ context.Context, id, quantity int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	it, ok := r.s.data.cartItems[id]
	if !ok {
		return apperr.NotFound("cart item %d not found", id)
	}
	it.Quantity = quantity
	r.s.data.cartItems[id] = it
	return nil
}

func (r *memCartRepo) Delete(_ context.Context, id int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.cartItems[id]; !ok {
		return apperr.NotFound("cart item %d not found", id)
	}
	delete(r.s.data.cartItems, id)
	return nil
}

func (r *memCartRepo) DeleteByBook(_ context.Context, bookID int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, it := range r.s.data.cartItems {
		if it.BookID == bookID {
			delete(r.s.data.cartItems, id)
		}
	}
	return nil
}

func (r *memCartRepo) Clear(_ context.Context, userID int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, it := range r.s.data.cartItems {
		if it.UserID == userID {
			delete(r.s.data.cartItems, id)
		}
	}
	return nil
}

// ---- orders ----

type memOrderRepo struct {
	s *memoryStore
}

func (r *memOrderRepo) Create(_ context.Context, order *model.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	order.ID = r.s.data.nextOrder
	r.s.data.nextOrder++
	stampCreated(&order.CreatedAt)
	r.s.data.orders[order.ID] = *order
	return nil
}

func (r *memOrderRepo) ByID(_ context.Context, id int) (*model.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if o, ok := r.s.data.orders[id]; ok {
		return &o, nil
	}
	return nil, nil
}

func (r *memOrderRepo) ListByUser(_ context.Context, userID int) ([]model.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []model.Order
	for _, o := range r.s.data.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *memOrderRepo) UpdateStatus(_ context.Context, id int, status string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.data.orders[id]
	if !ok {
		return apperr.NotFound("order %d not found", id)
	}
	o.Status = status
	r.s.data.orders[id] = o
	return nil
}

func (r *memOrderRepo) CreateItems(_ context.Context, items []*model.OrderItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, item := range items {
		item.ID = r.s.data.nextOrderItem
		r.s.data.nextOrderItem++
		r.s.data.orderItems[item.ID] = *item
	}
	return nil
}

func (r *memOrderRepo) Items(_ context.Context, orderID int) ([]model.OrderItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []model.OrderItem
	for _, it := range r.s.data.orderItems {
		if it.OrderID == orderID {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memOrderRepo) CountItemsByBook(_ context.Context, bookID int) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var count int64
	for _, it := range r.s.data.orderItems {
		if it.BookID == bookID {
			count++
		}
	}
	return count, nil
}

// ---- subscribers ----

type memSubscriberRepo struct {
	s *memoryStore
}

func (r *memSubscriberRepo) ByEmail(_ context.Context, email string) (*model.Subscriber, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, sub := range r.s.data.subscribers {
		if strings.EqualFold(sub.Email, email) {
			sub := sub
			return &sub, nil
		}
	}
	return nil, nil
}

func (r *memSubscriberRepo) Create(_ context.Context, subscriber *model.Subscriber) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, sub := range r.s.data.subscribers {
		if strings.EqualFold(sub.Email, subscriber.Email) {
			return apperr.Conflict("record already exists")
		}
	}
	subscriber.ID = r.s.data.nextSubscriber
	r.s.data.nextSubscriber++
	stampCreated(&subscriber.CreatedAt)
	r.s.data.subscribers[subscriber.ID] = *subscriber
	return nil
}
