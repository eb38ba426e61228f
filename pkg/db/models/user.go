package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is an account. IsAdmin is the elevated flag checked on every admin
// request.
type User struct {
	ID           uuid.UUID  `gorm:"column:id;type:char(36);primaryKey"`
	Username     string     `gorm:"column:username;type:varchar(150);not null;uniqueIndex"`
	Email        string     `gorm:"column:email;type:varchar(254);not null;uniqueIndex"`
	PasswordHash string     `gorm:"column:password_hash;type:varchar(255);not null"`
	FirstName    string     `gorm:"column:first_name;type:varchar(150);not null"`
	LastName     string     `gorm:"column:last_name;type:varchar(150);not null"`
	IsAdmin      bool       `gorm:"column:is_admin;not null"`
	IsActive     bool       `gorm:"column:is_active;not null"`
	LastLoginAt  *time.Time `gorm:"column:last_login_at"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (User) TableName() string { return "users" }

func (u *User) BeforeCreate(*gorm.DB) error {
	ensureID(&u.ID)
	return nil
}
