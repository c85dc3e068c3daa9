package model

import "time"

// Order status values. Orders never change after creation except Status.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

type User struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"size:64;uniqueIndex;not null" json:"username"`
	Password  string    `gorm:"not null" json:"-"` // bcrypt hash, never plaintext
	FirstName string    `gorm:"size:64;not null" json:"firstName"`
	LastName  string    `gorm:"size:64;not null" json:"lastName"`
	Email     string    `gorm:"size:128;uniqueIndex;not null" json:"email"`
	IsAdmin   bool      `gorm:"not null;default:false" json:"isAdmin"`
	CreatedAt time.Time `json:"createdAt"`
}

type Category struct {
	ID        int    `gorm:"primaryKey" json:"id"`
	Name      string `gorm:"size:64;uniqueIndex;not null" json:"name"`
	Icon      string `gorm:"not null" json:"icon"`
	BookCount int    `gorm:"not null;default:0" json:"bookCount"` // denormalized, kept in the book tx
}

type Book struct {
	ID              int       `gorm:"primaryKey" json:"id"`
	Title           string    `gorm:"size:256;not null" json:"title"`
	Author          string    `gorm:"size:128;not null" json:"author"`
	Description     string    `gorm:"not null" json:"description"`
	Price           float64   `gorm:"not null" json:"price"`
	CoverImage      string    `gorm:"not null" json:"coverImage"`
	Rating          float64   `gorm:"not null;default:0" json:"rating"`
	ReviewCount     int       `gorm:"not null;default:0" json:"reviewCount"`
	Pages           int       `gorm:"not null" json:"pages"`
	Publisher       string    `gorm:"size:128;not null" json:"publisher"`
	PublicationDate string    `gorm:"size:64;not null" json:"publicationDate"`
	Language        string    `gorm:"size:32;not null" json:"language"`
	ISBN            string    `gorm:"size:32;not null" json:"isbn"`
	CategoryID      int       `gorm:"index;not null" json:"categoryId"`
	InStock         bool      `gorm:"not null;default:true" json:"inStock"`
	CreatedAt       time.Time `json:"createdAt"`

	Category *Category `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

type CartItem struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	UserID    int       `gorm:"index:idx_cart_user_book,unique;not null" json:"userId"`
	BookID    int       `gorm:"index:idx_cart_user_book,unique;not null" json:"bookId"`
	Quantity  int       `gorm:"not null;default:1" json:"quantity"`
	CreatedAt time.Time `json:"createdAt"`

	User *User `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Book *Book `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

type Order struct {
	ID              int       `gorm:"primaryKey" json:"id"`
	UserID          int       `gorm:"index;not null" json:"userId"`
	Status          string    `gorm:"size:32;index;not null" json:"status"`
	TotalAmount     float64   `gorm:"not null" json:"totalAmount"` // fixed at checkout, never recomputed
	ShippingAddress string    `gorm:"not null" json:"shippingAddress"`
	PaymentMethod   string    `gorm:"size:64;not null" json:"paymentMethod"`
	CreatedAt       time.Time `json:"createdAt"`

	User *User `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

type OrderItem struct {
	ID       int     `gorm:"primaryKey" json:"id"`
	OrderID  int     `gorm:"index;not null" json:"orderId"`
	BookID   int     `gorm:"index;not null" json:"bookId"`
	Quantity int     `gorm:"not null" json:"quantity"`
	Price    float64 `gorm:"not null" json:"price"` // snapshot of Book.Price at order time

	Order *Order `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Book  *Book  `gorm:"constraint:OnDelete:RESTRICT" json:"-"`
}

type Subscriber struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"size:128;uniqueIndex;not null" json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}
