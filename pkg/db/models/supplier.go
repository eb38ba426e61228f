package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Supplier struct {
	ID        uuid.UUID `gorm:"column:id;type:char(36);primaryKey"`
	Name      string    `gorm:"column:name;type:varchar(200);not null"`
	Contact   string    `gorm:"column:contact;type:varchar(100);not null"`
	Phone     string    `gorm:"column:phone;type:varchar(20);not null"`
	Email     string    `gorm:"column:email;type:varchar(254);not null"`
	Address   string    `gorm:"column:address;type:text;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Supplier) TableName() string { return "suppliers" }

func (s *Supplier) BeforeCreate(*gorm.DB) error {
	ensureID(&s.ID)
	return nil
}
