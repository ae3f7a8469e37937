package models

import (
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement"              json:"id"`
	OpenID       string    `gorm:"size:64;uniqueIndex;not null"          json:"open_id"`
	Name         string    `                                             json:"name"`
	Email        string    `gorm:"size:320"                              json:"email"`
	LoginMethod  string    `gorm:"size:64"                               json:"login_method"`
	Role         string    `gorm:"size:16;not null;default:user"         json:"role"`
	CreatedAt    time.Time `                                             json:"created_at"`
	UpdatedAt    time.Time `                                             json:"updated_at"`
	LastSignedIn time.Time `gorm:"not null"                              json:"last_signed_in"`
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

type Author struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"size:255;not null"        json:"name"`
	Bio       *string   `gorm:"type:text"                json:"bio,omitempty"`
	CreatedAt time.Time `                                json:"created_at"`
	UpdatedAt time.Time `                                json:"updated_at"`
}

type Publisher struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"size:255;not null"        json:"name"`
	Website   *string   `gorm:"size:255"                 json:"website,omitempty"`
	CreatedAt time.Time `                                json:"created_at"`
	UpdatedAt time.Time `                                json:"updated_at"`
}

type Category struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"   json:"id"`
	Name        string    `gorm:"size:255;uniqueIndex;not null" json:"name"`
	Description *string   `gorm:"type:text"                  json:"description,omitempty"`
	CreatedAt   time.Time `                                  json:"created_at"`
	UpdatedAt   time.Time `                                  json:"updated_at"`
}

type Book struct {
	ID            uint      `gorm:"primaryKey;autoIncrement"      json:"id"`
	Title         string    `gorm:"size:255;not null;index"       json:"title"`
	Description   *string   `gorm:"type:text"                     json:"description,omitempty"`
	AuthorID      uint      `gorm:"not null;index"                json:"author_id"`
	PublisherID   uint      `gorm:"not null;index"                json:"publisher_id"`
	CategoryID    uint      `gorm:"not null;index"                json:"category_id"`
	Price         Money     `gorm:"type:decimal(10,2);not null"   json:"price"`
	Stock         uint      `gorm:"not null;default:0"            json:"stock"`
	CoverImageURL *string   `gorm:"size:500"                      json:"cover_image_url,omitempty"`
	CoverImageKey *string   `gorm:"size:500"                      json:"cover_image_key,omitempty"`
	ISBN          *string   `gorm:"column:isbn;size:20"           json:"isbn,omitempty"`
	Pages         *int      `                                     json:"pages,omitempty"`
	PublishedYear *int      `                                     json:"published_year,omitempty"`
	IsFeatured    bool      `gorm:"not null;default:false;index"  json:"is_featured"`
	CreatedAt     time.Time `gorm:"index"                         json:"created_at"`
	UpdatedAt     time.Time `                                     json:"updated_at"`
}

type Order struct {
	ID              uint        `gorm:"primaryKey;autoIncrement"            json:"id"`
	UserID          uint        `gorm:"not null;index"                      json:"user_id"`
	Status          OrderStatus `gorm:"size:16;not null;default:pending"    json:"status"`
	TotalPrice      Money       `gorm:"type:decimal(12,2);not null"         json:"total_price"`
	ShippingAddress string      `gorm:"size:255;not null"                   json:"shipping_address"`
	ShippingCity    string      `gorm:"size:100;not null"                   json:"shipping_city"`
	ShippingZip     string      `gorm:"size:20;not null"                    json:"shipping_zip"`
	ShippingPhone   string      `gorm:"size:20;not null"                    json:"shipping_phone"`
	Notes           *string     `gorm:"type:text"                           json:"notes,omitempty"`
	CreatedAt       time.Time   `gorm:"index"                               json:"created_at"`
	UpdatedAt       time.Time   `                                           json:"updated_at"`
	Items           []OrderItem `gorm:"foreignKey:OrderID"                  json:"items,omitempty"`
}

// OrderItem keeps the price the customer saw at checkout, independent of the
// book's current catalog price.
type OrderItem struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"     json:"id"`
	OrderID   uint      `gorm:"not null;index"               json:"order_id"`
	BookID    uint      `gorm:"not null"                     json:"book_id"`
	Quantity  uint      `gorm:"not null;check:quantity>0"    json:"quantity"`
	Price     Money     `gorm:"type:decimal(10,2);not null"  json:"price"`
	CreatedAt time.Time `                                    json:"created_at"`
}

func All() []any {
	return []any{
		&User{},
		&Author{},
		&Publisher{},
		&Category{},
		&Book{},
		&Order{},
		&OrderItem{},
	}
}

// Identity is what the external identity service tells us about a caller.
type Identity struct {
	OpenID      string
	Name        string
	Email       string
	LoginMethod string
}
