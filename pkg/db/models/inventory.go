package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const DefaultReorderThreshold = 5

// Inventory is the single stock row of a book.
type Inventory struct {
	ID               uuid.UUID `gorm:"column:id;type:char(36);primaryKey"`
	BookID           uuid.UUID `gorm:"column:book_id;type:char(36);not null;uniqueIndex"`
	Book             *Book     `gorm:"foreignKey:BookID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Quantity         int       `gorm:"column:quantity;not null;check:chk_inventory_quantity_nonnegative,quantity >= 0"`
	ReorderThreshold int       `gorm:"column:reorder_threshold;not null;check:chk_inventory_threshold_nonnegative,reorder_threshold >= 0"`
	UpdatedAt        time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Inventory) TableName() string { return "inventory_items" }

func (i *Inventory) BeforeCreate(*gorm.DB) error {
	ensureID(&i.ID)
	return nil
}

// IsLow reports whether the row is at or below its reorder threshold.
func (i Inventory) IsLow() bool {
	return i.Quantity <= i.ReorderThreshold
}
