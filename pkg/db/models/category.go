package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const DefaultCategoryColor = "#ff85a2"

type Category struct {
	ID          uuid.UUID `gorm:"column:id;type:char(36);primaryKey"`
	Name        string    `gorm:"column:name;type:varchar(100);not null"`
	Description *string   `gorm:"column:description;type:text"`
	Color       string    `gorm:"column:color;type:varchar(20);not null"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Category) TableName() string { return "categories" }

func (c *Category) BeforeCreate(*gorm.DB) error {
	ensureID(&c.ID)
	if c.Color == "" {
		c.Color = DefaultCategoryColor
	}
	return nil
}
