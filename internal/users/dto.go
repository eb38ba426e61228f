package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/libreria-backend/internal/orders"
	"github.com/angelmondragon/libreria-backend/pkg/db/models"
	"github.com/angelmondragon/libreria-backend/pkg/enums"
)

// UserDTO is the transport shape that omits sensitive credentials.
type UserDTO struct {
	ID          uuid.UUID  `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Role        enums.Role `json:"role"`
	IsAdmin     bool       `json:"is_admin"`
	IsActive    bool       `json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// UserWithOrdersDTO backs the back-office user listing.
type UserWithOrdersDTO struct {
	UserDTO
	Orders []orders.OrderDTO `json:"orders"`
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}

	return &UserDTO{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Role:        enums.RoleFor(u.IsAdmin),
		IsAdmin:     u.IsAdmin,
		IsActive:    u.IsActive,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func FromWithOrders(rows []WithOrders) []UserWithOrdersDTO {
	out := make([]UserWithOrdersDTO, 0, len(rows))
	for i := range rows {
		out = append(out, UserWithOrdersDTO{
			UserDTO: *FromModel(&rows[i].User),
			Orders:  orders.NewOrderDTOs(rows[i].Orders),
		})
	}
	return out
}
