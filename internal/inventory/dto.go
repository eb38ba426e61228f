package inventory

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/libreria-backend/pkg/db/models"
)

// ItemDTO is the stock row returned to the back-office.
type ItemDTO struct {
	ID               uuid.UUID `json:"id"`
	BookID           uuid.UUID `json:"book_id"`
	BookTitle        string    `json:"book_title,omitempty"`
	Quantity         int       `json:"quantity"`
	ReorderThreshold int       `json:"reorder_threshold"`
	Low              bool      `json:"low"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func NewItemDTO(row models.Inventory) ItemDTO {
	dto := ItemDTO{
		ID:               row.ID,
		BookID:           row.BookID,
		Quantity:         row.Quantity,
		ReorderThreshold: row.ReorderThreshold,
		Low:              row.IsLow(),
		UpdatedAt:        row.UpdatedAt,
	}
	if row.Book != nil {
		dto.BookTitle = row.Book.Title
	}
	return dto
}

func NewItemDTOs(rows []models.Inventory) []ItemDTO {
	out := make([]ItemDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, NewItemDTO(row))
	}
	return out
}
