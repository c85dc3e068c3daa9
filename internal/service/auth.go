package service

import (
	"context"
	"fmt"

	"bookhaven-api/internal/apperr"
	"bookhaven-api/internal/dto"
	"bookhaven-api/internal/model"
	"bookhaven-api/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*model.User, error)
	// Login returns the same failure for an unknown email and a wrong
	// password so callers cannot enumerate accounts.
	Login(ctx context.Context, email, password string) (*model.User, error)
	UserByID(ctx context.Context, id int) (*model.User, error)
	UpdateProfile(ctx context.Context, userID int, req *dto.UpdateProfileRequest) (*model.User, error)
	ChangePassword(ctx context.Context, userID int, currentPassword, newPassword string) error
}

type authServiceImpl struct {
	store repository.Store
}

func NewAuthService(store repository.Store) AuthService {
	return &authServiceImpl{store: store}
}

func (s *authServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*model.User, error) {
	if existing, err := s.store.Users().ByUsername(ctx, req.Username); err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	} else if existing != nil {
		return nil, apperr.Conflict("username already taken")
	}

	if existing, err := s.store.Users().ByEmail(ctx, req.Email); err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	} else if existing != nil {
		return nil, apperr.Conflict("email already in use")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:  req.Username,
		Password:  string(hash),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	}
	if err := s.store.Users().Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *authServiceImpl) Login(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.store.Users().ByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, apperr.InvalidCredentials()
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, apperr.InvalidCredentials()
	}
	return user, nil
}

func (s *authServiceImpl) UserByID(ctx context.Context, id int) (*model.User, error) {
	user, err := s.store.Users().ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("user not found")
	}
	return user, nil
}

func (s *authServiceImpl) UpdateProfile(ctx context.Context, userID int, req *dto.UpdateProfileRequest) (*model.User, error) {
	user, err := s.UserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if other, err := s.store.Users().ByEmail(ctx, req.Email); err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	} else if other != nil && other.ID != userID {
		return nil, apperr.Conflict("email already in use")
	}

	user.FirstName = req.FirstName
	user.LastName = req.LastName
	user.Email = req.Email
	if err := s.store.Users().Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *authServiceImpl) ChangePassword(ctx context.Context, userID int, currentPassword, newPassword string) error {
	user, err := s.UserByID(ctx, userID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(currentPassword)) != nil {
		return apperr.New(apperr.CodeInvalidCredentials, "current password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.Password = string(hash)
	return s.store.Users().Update(ctx, user)
}
