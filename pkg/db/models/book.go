package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const DefaultBookImageURL = "https://via.placeholder.com/300x400/ffb7b2/000000?text=Libro"

// Book belongs to exactly one Category (deleted with it) and optionally to a
// Supplier (detached when the supplier is removed).
type Book struct {
	ID          uuid.UUID       `gorm:"column:id;type:char(36);primaryKey"`
	Title       string          `gorm:"column:title;type:varchar(200);not null"`
	Author      string          `gorm:"column:author;type:varchar(100);not null"`
	Publisher   string          `gorm:"column:publisher;type:varchar(100);not null"`
	Description string          `gorm:"column:description;type:text;not null"`
	Price       decimal.Decimal `gorm:"column:price;type:decimal(10,2);not null;check:chk_books_price_positive,price > 0"`
	Pages       int             `gorm:"column:pages;not null;check:chk_books_pages_nonnegative,pages >= 0"`
	ISBN        string          `gorm:"column:isbn;type:varchar(20);not null"`
	PublishedOn time.Time       `gorm:"column:published_on;type:date;not null"`
	ImageURL    string          `gorm:"column:image_url;type:varchar(500);not null"`
	CategoryID  uuid.UUID       `gorm:"column:category_id;type:char(36);not null;index"`
	Category    *Category       `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	SupplierID  *uuid.UUID      `gorm:"column:supplier_id;type:char(36);index"`
	Supplier    *Supplier       `gorm:"foreignKey:SupplierID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime;index"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (Book) TableName() string { return "books" }

func (b *Book) BeforeCreate(*gorm.DB) error {
	ensureID(&b.ID)
	if b.ImageURL == "" {
		b.ImageURL = DefaultBookImageURL
	}
	if b.PublishedOn.IsZero() {
		b.PublishedOn = Today()
	}
	return nil
}

// Today returns the current UTC date truncated to midnight.
func Today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
