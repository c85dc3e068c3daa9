package service

import (
	"context"
	"fmt"

	"bookhaven-api/internal/apperr"
	"bookhaven-api/internal/dto"
	"bookhaven-api/internal/model"
	"bookhaven-api/internal/repository"
)

const relatedBooksLimit = 4

// CatalogService covers catalog browsing plus the admin book/category CRUD.
// Every book mutation adjusts the owning category's denormalized bookCount
// inside the same transaction.
type CatalogService interface {
	ListBooks(ctx context.Context, query repository.BookQuery) ([]model.Book, error)
	BookByID(ctx context.Context, id int) (*model.Book, error)
	RelatedBooks(ctx context.Context, bookID int) ([]model.Book, error)
	CreateBook(ctx context.Context, input *dto.BookInput) (*model.Book, error)
	UpdateBook(ctx context.Context, id int, input *dto.BookInput) (*model.Book, error)
	DeleteBook(ctx context.Context, id int) error

	Categories(ctx context.Context) ([]model.Category, error)
	CreateCategory(ctx context.Context, input *dto.CategoryInput) (*model.Category, error)
	UpdateCategory(ctx context.Context, id int, input *dto.CategoryInput) (*model.Category, error)
	DeleteCategory(ctx context.Context, id int) error
}

type catalogServiceImpl struct {
	store repository.Store
}

func NewCatalogService(store repository.Store) CatalogService {
	return &catalogServiceImpl{store: store}
}

func (s *catalogServiceImpl) ListBooks(ctx context.Context, query repository.BookQuery) ([]model.Book, error) {
	return s.store.Books().List(ctx, query)
}

func (s *catalogServiceImpl) BookByID(ctx context.Context, id int) (*model.Book, error) {
	book, err := s.store.Books().ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, apperr.NotFound("book not found")
	}
	return book, nil
}

func (s *catalogServiceImpl) RelatedBooks(ctx context.Context, bookID int) ([]model.Book, error) {
	book, err := s.BookByID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	return s.store.Books().Related(ctx, book.CategoryID, book.ID, relatedBooksLimit)
}

func (s *catalogServiceImpl) CreateBook(ctx context.Context, input *dto.BookInput) (*model.Book, error) {
	book := input.Model()
	err := s.store.Transact(ctx, func(tx repository.Store) error {
		category, err := tx.Categories().ByID(ctx, book.CategoryID)
		if err != nil {
			return err
		}
		if category == nil {
			return apperr.NotFound("category %d not found", book.CategoryID)
		}
		if err := tx.Books().Create(ctx, book); err != nil {
			return err
		}
		return tx.Categories().IncrementBookCount(ctx, book.CategoryID)
	})
	if err != nil {
		return nil, err
	}
	return book, nil
}

func (s *catalogServiceImpl) UpdateBook(ctx context.Context, id int, input *dto.BookInput) (*model.Book, error) {
	var updated *model.Book
	err := s.store.Transact(ctx, func(tx repository.Store) error {
		book, err := tx.Books().ByID(ctx, id)
		if err != nil {
			return err
		}
		if book == nil {
			return apperr.NotFound("book not found")
		}

		if input.CategoryID != book.CategoryID {
			category, err := tx.Categories().ByID(ctx, input.CategoryID)
			if err != nil {
				return err
			}
			if category == nil {
				return apperr.NotFound("category %d not found", input.CategoryID)
			}
			if err := tx.Categories().DecrementBookCount(ctx, book.CategoryID); err != nil {
				return err
			}
			if err := tx.Categories().IncrementBookCount(ctx, input.CategoryID); err != nil {
				return err
			}
		}

		next := input.Model()
		next.ID = book.ID
		next.CreatedAt = book.CreatedAt
		if err := tx.Books().Update(ctx, next); err != nil {
			return err
		}
		updated = next
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *catalogServiceImpl) DeleteBook(ctx context.Context, id int) error {
	return s.store.Transact(ctx, func(tx repository.Store) error {
		book, err := tx.Books().ByID(ctx, id)
		if err != nil {
			return err
		}
		if book == nil {
			return apperr.NotFound("book not found")
		}

		// order items snapshot history; they block deletion
		referenced, err := tx.Orders().CountItemsByBook(ctx, id)
		if err != nil {
			return err
		}
		if referenced > 0 {
			return apperr.Conflict("book is referenced by existing orders")
		}

		if err := tx.Carts().DeleteByBook(ctx, id); err != nil {
			return err
		}
		if err := tx.Books().Delete(ctx, id); err != nil {
			return err
		}
		return tx.Categories().DecrementBookCount(ctx, book.CategoryID)
	})
}

func (s *catalogServiceImpl) Categories(ctx context.Context) ([]model.Category, error) {
	return s.store.Categories().All(ctx)
}

func (s *catalogServiceImpl) CreateCategory(ctx context.Context, input *dto.CategoryInput) (*model.Category, error) {
	existing, err := s.store.Categories().ByName(ctx, input.Name)
	if err != nil {
		return nil, fmt.Errorf("check category name: %w", err)
	}
	if existing != nil {
		return nil, apperr.Conflict("category %q already exists", input.Name)
	}

	category := &model.Category{Name: input.Name, Icon: input.Icon}
	if err := s.store.Categories().Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *catalogServiceImpl) UpdateCategory(ctx context.Context, id int, input *dto.CategoryInput) (*model.Category, error) {
	category, err := s.store.Categories().ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperr.NotFound("category not found")
	}

	if other, err := s.store.Categories().ByName(ctx, input.Name); err != nil {
		return nil, err
	} else if other != nil && other.ID != id {
		return nil, apperr.Conflict("category %q already exists", input.Name)
	}

	category.Name = input.Name
	category.Icon = input.Icon
	if err := s.store.Categories().Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *catalogServiceImpl) DeleteCategory(ctx context.Context, id int) error {
	return s.store.Transact(ctx, func(tx repository.Store) error {
		category, err := tx.Categories().ByID(ctx, id)
		if err != nil {
			return err
		}
		if category == nil {
			return apperr.NotFound("category not found")
		}

		books, err := tx.Books().List(ctx, repository.BookQuery{CategoryID: id})
		if err != nil {
			return err
		}
		for _, book := range books {
			referenced, err := tx.Orders().CountItemsByBook(ctx, book.ID)
			if err != nil {
				return err
			}
			if referenced > 0 {
				return apperr.Conflict("category has books referenced by existing orders")
			}
		}
		for _, book := range books {
			if err := tx.Carts().DeleteByBook(ctx, book.ID); err != nil {
				return err
			}
			if err := tx.Books().Delete(ctx, book.ID); err != nil {
				return err
			}
		}
		return tx.Categories().Delete(ctx, id)
	})
}
