package repository

import (
	"context"

	"bookhaven-api/internal/apperr"
	"bookhaven-api/internal/model"

	"gorm.io/gorm"
)

type cartRepoImpl struct {
	db *gorm.DB
}

func (r *cartRepoImpl) ListByUser(ctx context.Context, userID int) ([]model.CartItem, error) {
	var items []model.CartItem
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&items).Error
	return items, err
}

func (r *cartRepoImpl) Get(ctx context.Context, userID, bookID int) (*model.CartItem, error) {
	return firstOrNil[model.CartItem](r.db.WithContext(ctx).
		Where("user_id = ? AND book_id = ?", userID, bookID))
}

func (r *cartRepoImpl) Create(ctx context.Context, item *model.CartItem) error {
	return translateErr(r.db.WithContext(ctx).Create(item).Error)
}

func (r *cartRepoImpl) UpdateQuantity(ctx context.Context, id, quantity int) error {
	res := r.db.WithContext(ctx).Model(&model.CartItem{}).
		Where("id = ?", id).
		UpdateColumn("quantity", quantity)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("cart item %d not found", id)
	}
	return nil
}

func (r *cartRepoImpl) Delete(ctx context.Context, id int) error {
	res := r.db.WithContext(ctx).Delete(&model.CartItem{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("cart item %d not found", id)
	}
	return nil
}

func (r *cartRepoImpl) DeleteByBook(ctx context.Context, bookID int) error {
	return r.db.WithContext(ctx).
		Where("book_id = ?", bookID).
		Delete(&model.CartItem{}).Error
}

func (r *cartRepoImpl) Clear(ctx context.Context, userID int) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.CartItem{}).Error
}
