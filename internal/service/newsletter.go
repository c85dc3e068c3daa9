package service

import (
	"context"
	"fmt"

	"bookhaven-api/internal/apperr"
	"bookhaven-api/internal/model"
	"bookhaven-api/internal/repository"
)

type NewsletterService interface {
	Subscribe(ctx context.Context, email string) (*model.Subscriber, error)
}

type newsletterServiceImpl struct {
	store repository.Store
}

func NewNewsletterService(store repository.Store) NewsletterService {
	return &newsletterServiceImpl{store: store}
}

func (s *newsletterServiceImpl) Subscribe(ctx context.Context, email string) (*model.Subscriber, error) {
	existing, err := s.store.Subscribers().ByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check subscriber: %w", err)
	}
	if existing != nil {
		return nil, apperr.Conflict("email already subscribed")
	}

	subscriber := &model.Subscriber{Email: email}
	if err := s.store.Subscribers().Create(ctx, subscriber); err != nil {
		return nil, err
	}
	return subscriber, nil
}
