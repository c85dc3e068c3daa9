package repository

import (
	"context"
	"strings"

	"bookhaven-api/internal/apperr"
	"bookhaven-api/internal/model"

	"gorm.io/gorm"
)

type bookRepoImpl struct {
	db *gorm.DB
}

func (r *bookRepoImpl) List(ctx context.Context, query BookQuery) ([]model.Book, error) {
	tx := r.db.WithContext(ctx).Model(&model.Book{})

	if query.Search != "" {
		term := "%" + strings.ToLower(query.Search) + "%"
		tx = tx.Where(
			"LOWER(title) LIKE ? OR LOWER(author) LIKE ? OR LOWER(description) LIKE ?",
			term, term, term,
		)
	}
	if query.CategoryID != 0 {
		tx = tx.Where("category_id = ?", query.CategoryID)
	}

	// secondary id sort keeps ordering deterministic across backends
	switch query.Sort {
	case SortLatest:
		tx = tx.Order("created_at DESC, id DESC")
	case SortPriceLow:
		tx = tx.Order("price ASC, id ASC")
	case SortPriceHigh:
		tx = tx.Order("price DESC, id ASC")
	case SortRating:
		tx = tx.Order("rating DESC, id ASC")
	default: // SortPopular and anything unrecognized
		tx = tx.Order("review_count DESC, id ASC")
	}

	var books []model.Book
	err := tx.Find(&books).Error
	return books, err
}

func (r *bookRepoImpl) ByID(ctx context.Context, id int) (*model.Book, error) {
	return firstOrNil[model.Book](r.db.WithContext(ctx).Where("id = ?", id))
}

func (r *bookRepoImpl) Related(ctx context.Context, categoryID, excludeID, limit int) ([]model.Book, error) {
	var books []model.Book
	err := r.db.WithContext(ctx).
		Where("category_id = ? AND id <> ?", categoryID, excludeID).
		Order("id ASC").
		Limit(limit).
		Find(&books).Error
	return books, err
}

func (r *bookRepoImpl) Create(ctx context.Context, book *model.Book) error {
	return translateErr(r.db.WithContext(ctx).Create(book).Error)
}

func (r *bookRepoImpl) Update(ctx context.Context, book *model.Book) error {
	existing, err := r.ByID(ctx, book.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return apperr.NotFound("book %d not found", book.ID)
	}
	return translateErr(r.db.WithContext(ctx).Save(book).Error)
}

func (r *bookRepoImpl) Delete(ctx context.Context, id int) error {
	res := r.db.WithContext(ctx).Delete(&model.Book{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("book %d not found", id)
	}
	return nil
}
