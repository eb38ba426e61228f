package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CartLine is one (user, book) entry of a cart; re-adding a book increments
// Quantity instead of inserting a second row.
type CartLine struct {
	ID        uuid.UUID `gorm:"column:id;type:char(36);primaryKey"`
	UserID    uuid.UUID `gorm:"column:user_id;type:char(36);not null;uniqueIndex:idx_cart_lines_user_book"`
	User      *User     `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	BookID    uuid.UUID `gorm:"column:book_id;type:char(36);not null;uniqueIndex:idx_cart_lines_user_book"`
	Book      *Book     `gorm:"foreignKey:BookID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Quantity  int       `gorm:"column:quantity;not null;check:chk_cart_lines_quantity_positive,quantity >= 1"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (CartLine) TableName() string { return "cart_lines" }

func (c *CartLine) BeforeCreate(*gorm.DB) error {
	ensureID(&c.ID)
	if c.Quantity == 0 {
		c.Quantity = 1
	}
	return nil
}
