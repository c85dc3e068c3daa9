package repository

import (
	"context"
	"errors"

	"bookhaven-api/internal/apperr"

	"gorm.io/gorm"
)

type gormStore struct {
	db *gorm.DB
}

// NewGormStore wraps a gorm connection in the Store contract. Transact maps
// onto a database transaction.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Users() UserRepository             { return &userRepoImpl{db: s.db} }
func (s *gormStore) Categories() CategoryRepository    { return &categoryRepoImpl{db: s.db} }
func (s *gormStore) Books() BookRepository             { return &bookRepoImpl{db: s.db} }
func (s *gormStore) Carts() CartRepository             { return &cartRepoImpl{db: s.db} }
func (s *gormStore) Orders() OrderRepository           { return &orderRepoImpl{db: s.db} }
func (s *gormStore) Subscribers() SubscriberRepository { return &subscriberRepoImpl{db: s.db} }

func (s *gormStore) Transact(ctx context.Context, fn func(Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}

// translateErr converts driver-level constraint errors into the shared
// taxonomy. Requires gorm.Config.TranslateError.
func translateErr(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperr.Conflict("record already exists")
	}
	return err
}

// firstOrNil runs a First query and flattens "no rows" into a nil entity,
// matching the Store read contract.
func firstOrNil[T any](tx *gorm.DB) (*T, error) {
	var out T
	if err := tx.First(&out).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}
