package orders

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/libreria-backend/pkg/db/models"
)

// OrderDTO renders the total as a fixed two-decimal string.
type OrderDTO struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"user_id"`
	Username        string    `json:"username,omitempty"`
	ShippingAddress string    `json:"shipping_address"`
	PaymentMethod   string    `json:"payment_method"`
	Notes           *string   `json:"notes,omitempty"`
	Total           string    `json:"total"`
	CreatedAt       time.Time `json:"created_at"`
}

func NewOrderDTO(row models.Order) OrderDTO {
	dto := OrderDTO{
		ID:              row.ID,
		UserID:          row.UserID,
		ShippingAddress: row.ShippingAddress,
		PaymentMethod:   row.PaymentMethod.String(),
		Notes:           row.Notes,
		Total:           row.Total.StringFixed(2),
		CreatedAt:       row.CreatedAt,
	}
	if row.User != nil {
		dto.Username = row.User.Username
	}
	return dto
}

func NewOrderDTOs(rows []models.Order) []OrderDTO {
	out := make([]OrderDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, NewOrderDTO(row))
	}
	return out
}
