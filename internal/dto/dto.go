package dto

import (
	"strings"

	"bookhaven-api/internal/apperr"
	"bookhaven-api/internal/model"
)

type RegisterRequest struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	Terms           bool   `json:"terms"`
}

func (r *RegisterRequest) Validate() error {
	switch {
	case strings.TrimSpace(r.Username) == "":
		return apperr.Validation("username is required")
	case !strings.Contains(r.Email, "@"):
		return apperr.Validation("email is invalid")
	case len(r.Password) < 8:
		return apperr.Validation("password must be at least 8 characters")
	case r.Password != r.ConfirmPassword:
		return apperr.Validation("passwords do not match")
	case strings.TrimSpace(r.FirstName) == "" || strings.TrimSpace(r.LastName) == "":
		return apperr.Validation("first and last name are required")
	case !r.Terms:
		return apperr.Validation("you must agree to the terms and conditions")
	}
	return nil
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Remember bool   `json:"remember"`
}

func (r *LoginRequest) Validate() error {
	if !strings.Contains(r.Email, "@") {
		return apperr.Validation("email is invalid")
	}
	if len(r.Password) < 8 {
		return apperr.Validation("password must be at least 8 characters")
	}
	return nil
}

type UpdateProfileRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

func (r *UpdateProfileRequest) Validate() error {
	if strings.TrimSpace(r.FirstName) == "" || strings.TrimSpace(r.LastName) == "" || strings.TrimSpace(r.Email) == "" {
		return apperr.Validation("missing required fields")
	}
	return nil
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (r *ChangePasswordRequest) Validate() error {
	if r.CurrentPassword == "" || r.NewPassword == "" {
		return apperr.Validation("missing required fields")
	}
	if len(r.NewPassword) < 8 {
		return apperr.Validation("password must be at least 8 characters")
	}
	return nil
}

// UserResponse is a User with the password hash stripped.
type UserResponse struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	IsAdmin   bool   `json:"isAdmin"`
}

func NewUserResponse(u *model.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		IsAdmin:   u.IsAdmin,
	}
}

type CategoryInput struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

func (r *CategoryInput) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return apperr.Validation("category name is required")
	}
	return nil
}

type BookInput struct {
	Title           string  `json:"title"`
	Author          string  `json:"author"`
	Description     string  `json:"description"`
	Price           float64 `json:"price"`
	CoverImage      string  `json:"coverImage"`
	Rating          float64 `json:"rating"`
	ReviewCount     int     `json:"reviewCount"`
	Pages           int     `json:"pages"`
	Publisher       string  `json:"publisher"`
	PublicationDate string  `json:"publicationDate"`
	Language        string  `json:"language"`
	ISBN            string  `json:"isbn"`
	CategoryID      int     `json:"categoryId"`
	InStock         bool    `json:"inStock"`
}

func (r *BookInput) Validate() error {
	switch {
	case strings.TrimSpace(r.Title) == "":
		return apperr.Validation("title is required")
	case strings.TrimSpace(r.Author) == "":
		return apperr.Validation("author is required")
	case r.Price < 0:
		return apperr.Validation("price must not be negative")
	case r.Rating < 0 || r.Rating > 5:
		return apperr.Validation("rating must be between 0 and 5")
	case r.ReviewCount < 0:
		return apperr.Validation("review count must not be negative")
	case r.Pages <= 0:
		return apperr.Validation("pages must be positive")
	case r.CategoryID <= 0:
		return apperr.Validation("categoryId is required")
	}
	return nil
}

func (r *BookInput) Model() *model.Book {
	return &model.Book{
		Title:           r.Title,
		Author:          r.Author,
		Description:     r.Description,
		Price:           r.Price,
		CoverImage:      r.CoverImage,
		Rating:          r.Rating,
		ReviewCount:     r.ReviewCount,
		Pages:           r.Pages,
		Publisher:       r.Publisher,
		PublicationDate: r.PublicationDate,
		Language:        r.Language,
		ISBN:            r.ISBN,
		CategoryID:      r.CategoryID,
		InStock:         r.InStock,
	}
}

type AddToCartRequest struct {
	BookID   int `json:"bookId"`
	Quantity int `json:"quantity"`
}

type UpdateCartRequest struct {
	Quantity *int `json:"quantity"`
}

type GuestCartLine struct {
	BookID   int `json:"bookId"`
	Quantity int `json:"quantity"`
}

type MergeCartRequest struct {
	Items []GuestCartLine `json:"items"`
}

// CartLine is a cart row joined with its book for display.
type CartLine struct {
	ID       int         `json:"id"`
	BookID   int         `json:"bookId"`
	Quantity int         `json:"quantity"`
	Book     *model.Book `json:"book"`
}

type CheckoutRequest struct {
	ShippingAddress string `json:"shippingAddress"`
	PaymentMethod   string `json:"paymentMethod"`
}

func (r *CheckoutRequest) Validate() error {
	if strings.TrimSpace(r.ShippingAddress) == "" || strings.TrimSpace(r.PaymentMethod) == "" {
		return apperr.Validation("missing required fields")
	}
	return nil
}

type CheckoutResponse struct {
	OrderID int `json:"orderId"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

func (r *UpdateOrderStatusRequest) Validate() error {
	if !model.ValidOrderStatus(r.Status) {
		return apperr.Validation("unknown order status %q", r.Status)
	}
	return nil
}

// OrderItemDetail is an order line joined with its book.
type OrderItemDetail struct {
	ID       int         `json:"id"`
	BookID   int         `json:"bookId"`
	Quantity int         `json:"quantity"`
	Price    float64     `json:"price"`
	Book     *model.Book `json:"book"`
}

type OrderDetail struct {
	*model.Order
	Items []OrderItemDetail `json:"items"`
}

type SubscribeRequest struct {
	Email string `json:"email"`
}

func (r *SubscribeRequest) Validate() error {
	if !strings.Contains(r.Email, "@") {
		return apperr.Validation("email is invalid")
	}
	return nil
}
