package repository

import (
	"context"

	"bookhaven-api/internal/apperr"
	"bookhaven-api/internal/model"

	"gorm.io/gorm"
)

type orderRepoImpl struct {
	db *gorm.DB
}

func (r *orderRepoImpl) Create(ctx context.Context, order *model.Order) error {
	return translateErr(r.db.WithContext(ctx).Create(order).Error)
}

func (r *orderRepoImpl) ByID(ctx context.Context, id int) (*model.Order, error) {
	return firstOrNil[model.Order](r.db.WithContext(ctx).Where("id = ?", id))
}

func (r *orderRepoImpl) ListByUser(ctx context.Context, userID int) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&orders).Error
	return orders, err
}

func (r *orderRepoImpl) UpdateStatus(ctx context.Context, id int, status string) error {
	res := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", id).
		UpdateColumn("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("order %d not found", id)
	}
	return nil
}

func (r *orderRepoImpl) CreateItems(ctx context.Context, items []*model.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	return translateErr(r.db.WithContext(ctx).Create(&items).Error)
}

func (r *orderRepoImpl) Items(ctx context.Context, orderID int) ([]model.OrderItem, error) {
	var items []model.OrderItem
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("id ASC").
		Find(&items).Error
	return items, err
}

func (r *orderRepoImpl) CountItemsByBook(ctx context.Context, bookID int) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.OrderItem{}).
		Where("book_id = ?", bookID).
		Count(&count).Error
	return count, err
}
