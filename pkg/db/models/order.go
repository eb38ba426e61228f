package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/libreria-backend/pkg/enums"
)

// Order is the persisted result of a checkout. CreatedAt is write-once.
type Order struct {
	ID              uuid.UUID           `gorm:"column:id;type:char(36);primaryKey"`
	UserID          uuid.UUID           `gorm:"column:user_id;type:char(36);not null;index"`
	User            *User               `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	ShippingAddress string              `gorm:"column:shipping_address;type:text;not null"`
	PaymentMethod   enums.PaymentMethod `gorm:"column:payment_method;type:varchar(32);not null"`
	Notes           *string             `gorm:"column:notes;type:text"`
	Total           decimal.Decimal     `gorm:"column:total;type:decimal(10,2);not null;check:chk_orders_total_nonnegative,total >= 0"`
	CreatedAt       time.Time           `gorm:"column:created_at;autoCreateTime;<-:create;index"`
}

func (Order) TableName() string { return "orders" }

func (o *Order) BeforeCreate(*gorm.DB) error {
	ensureID(&o.ID)
	return nil
}
