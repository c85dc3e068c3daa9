package repository

import (
	"context"

	"bookhaven-api/internal/apperr"
	"bookhaven-api/internal/model"

	"gorm.io/gorm"
)

type userRepoImpl struct {
	db *gorm.DB
}

func (r *userRepoImpl) ByID(ctx context.Context, id int) (*model.User, error) {
	return firstOrNil[model.User](r.db.WithContext(ctx).Where("id = ?", id))
}

func (r *userRepoImpl) ByUsername(ctx context.Context, username string) (*model.User, error) {
	return firstOrNil[model.User](r.db.WithContext(ctx).
		Where("LOWER(username) = LOWER(?)", username))
}

func (r *userRepoImpl) ByEmail(ctx context.Context, email string) (*model.User, error) {
	return firstOrNil[model.User](r.db.WithContext(ctx).
		Where("LOWER(email) = LOWER(?)", email))
}

func (r *userRepoImpl) Create(ctx context.Context, user *model.User) error {
	return translateErr(r.db.WithContext(ctx).Create(user).Error)
}

func (r *userRepoImpl) Update(ctx context.Context, user *model.User) error {
	existing, err := r.ByID(ctx, user.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return apperr.NotFound("user %d not found", user.ID)
	}
	return translateErr(r.db.WithContext(ctx).Save(user).Error)
}
