package repository

import (
	"context"

	"bookhaven-api/internal/model"

	"gorm.io/gorm"
)

type subscriberRepoImpl struct {
	db *gorm.DB
}

func (r *subscriberRepoImpl) ByEmail(ctx context.Context, email string) (*model.Subscriber, error) {
	return firstOrNil[model.Subscriber](r.db.WithContext(ctx).
		Where("LOWER(email) = LOWER(?)", email))
}

func (r *subscriberRepoImpl) Create(ctx context.Context, subscriber *model.Subscriber) error {
	return translateErr(r.db.WithContext(ctx).Create(subscriber).Error)
}
