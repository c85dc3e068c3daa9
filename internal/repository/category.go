package repository

import (
	"context"

	"bookhaven-api/internal/apperr"
	"bookhaven-api/internal/model"

	"gorm.io/gorm"
)

type categoryRepoImpl struct {
	db *gorm.DB
}

func (r *categoryRepoImpl) All(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	err := r.db.WithContext(ctx).Order("id ASC").Find(&categories).Error
	return categories, err
}

func (r *categoryRepoImpl) ByID(ctx context.Context, id int) (*model.Category, error) {
	return firstOrNil[model.Category](r.db.WithContext(ctx).Where("id = ?", id))
}

func (r *categoryRepoImpl) ByName(ctx context.Context, name string) (*model.Category, error) {
	return firstOrNil[model.Category](r.db.WithContext(ctx).
		Where("LOWER(name) = LOWER(?)", name))
}

func (r *categoryRepoImpl) Create(ctx context.Context, category *model.Category) error {
	return translateErr(r.db.WithContext(ctx).Create(category).Error)
}

func (r *categoryRepoImpl) Update(ctx context.Context, category *model.Category) error {
	existing, err := r.ByID(ctx, category.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return apperr.NotFound("category %d not found", category.ID)
	}
	return translateErr(r.db.WithContext(ctx).Save(category).Error)
}

func (r *categoryRepoImpl) Delete(ctx context.Context, id int) error {
	res := r.db.WithContext(ctx).Delete(&model.Category{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("category %d not found", id)
	}
	return nil
}

func (r *categoryRepoImpl) IncrementBookCount(ctx context.Context, id int) error {
	res := r.db.WithContext(ctx).Model(&model.Category{}).
		Where("id = ?", id).
		UpdateColumn("book_count", gorm.Expr("book_count + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("category %d not found", id)
	}
	return nil
}

func (r *categoryRepoImpl) DecrementBookCount(ctx context.Context, id int) error {
	// the book_count > 0 guard keeps the counter from going negative
	return r.db.WithContext(ctx).Model(&model.Category{}).
		Where("id = ? AND book_count > 0", id).
		UpdateColumn("book_count", gorm.Expr("book_count - 1")).Error
}
