package service

import (
	"context"
	"fmt"

	"bookhaven-api/internal/apperr"
	"bookhaven-api/internal/dto"
	"bookhaven-api/internal/model"
	"bookhaven-api/internal/repository"
)

// CartService manages the authenticated user's cart. Guest carts live
// entirely on the client; Merge is how they reach the server on login.
type CartService interface {
	Items(ctx context.Context, userID int) ([]dto.CartLine, error)
	// Add increments an existing (user, book) line or creates one.
	Add(ctx context.Context, userID, bookID, quantity int) (*model.CartItem, error)
	// SetQuantity with quantity <= 0 removes the line.
	SetQuantity(ctx context.Context, userID, bookID, quantity int) (*model.CartItem, error)
	Remove(ctx context.Context, userID, bookID int) error
	Clear(ctx context.Context, userID int) error
	// Merge folds a client-held guest cart additively into the server
	// cart. Unknown and out-of-stock books are skipped.
	Merge(ctx context.Context, userID int, lines []dto.GuestCartLine) ([]dto.CartLine, error)
}

type cartServiceImpl struct {
	store repository.Store
}

func NewCartService(store repository.Store) CartService {
	return &cartServiceImpl{store: store}
}

func (s *cartServiceImpl) Items(ctx context.Context, userID int) ([]dto.CartLine, error) {
	items, err := s.store.Carts().ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	lines := make([]dto.CartLine, 0, len(items))
	for _, item := range items {
		book, err := s.store.Books().ByID(ctx, item.BookID)
		if err != nil {
			return nil, fmt.Errorf("load book %d: %w", item.BookID, err)
		}
		lines = append(lines, dto.CartLine{
			ID:       item.ID,
			BookID:   item.BookID,
			Quantity: item.Quantity,
			Book:     book,
		})
	}
	return lines, nil
}

func (s *cartServiceImpl) Add(ctx context.Context, userID, bookID, quantity int) (*model.CartItem, error) {
	if quantity <= 0 {
		quantity = 1
	}

	book, err := s.store.Books().ByID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, apperr.NotFound("book not found")
	}
	if !book.InStock {
		return nil, apperr.OutOfStock("%s is out of stock", book.Title)
	}

	existing, err := s.store.Carts().Get(ctx, userID, bookID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		existing.Quantity += quantity
		if err := s.store.Carts().UpdateQuantity(ctx, existing.ID, existing.Quantity); err != nil {
			return nil, err
		}
		return existing, nil
	}

	item := &model.CartItem{UserID: userID, BookID: bookID, Quantity: quantity}
	if err := s.store.Carts().Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *cartServiceImpl) SetQuantity(ctx context.Context, userID, bookID, quantity int) (*model.CartItem, error) {
	item, err := s.store.Carts().Get(ctx, userID, bookID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperr.NotFound("item not found in cart")
	}

	if quantity <= 0 {
		return nil, s.store.Carts().Delete(ctx, item.ID)
	}

	item.Quantity = quantity
	if err := s.store.Carts().UpdateQuantity(ctx, item.ID, quantity); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *cartServiceImpl) Remove(ctx context.Context, userID, bookID int) error {
	item, err := s.store.Carts().Get(ctx, userID, bookID)
	if err != nil {
		return err
	}
	if item == nil {
		return apperr.NotFound("item not found in cart")
	}
	return s.store.Carts().Delete(ctx, item.ID)
}

func (s *cartServiceImpl) Clear(ctx context.Context, userID int) error {
	return s.store.Carts().Clear(ctx, userID)
}

func (s *cartServiceImpl) Merge(ctx context.Context, userID int, lines []dto.GuestCartLine) ([]dto.CartLine, error) {
	for _, line := range lines {
		if line.Quantity <= 0 {
			continue
		}
		book, err := s.store.Books().ByID(ctx, line.BookID)
		if err != nil {
			return nil, err
		}
		if book == nil || !book.InStock {
			continue
		}
		if _, err := s.Add(ctx, userID, line.BookID, line.Quantity); err != nil {
			return nil, err
		}
	}
	return s.Items(ctx, userID)
}
