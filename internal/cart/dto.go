package cart

import (
	"github.com/google/uuid"

	"github.com/angelmondragon/libreria-backend/pkg/db/models"
)

// LineDTO is one priced cart line.
type LineDTO struct {
	ID        uuid.UUID `json:"id"`
	BookID    uuid.UUID `json:"book_id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	ImageURL  string    `json:"image_url"`
	UnitPrice string    `json:"unit_price"`
	Quantity  int       `json:"quantity"`
	Subtotal  string    `json:"subtotal"`
}

// SummaryDTO is the "view cart" payload.
type SummaryDTO struct {
	Lines    []LineDTO `json:"lines"`
	Count    int       `json:"count"`
	Subtotal string    `json:"subtotal"`
	Tax      string    `json:"tax"`
	Total    string    `json:"total"`
}

func NewLineDTO(line models.CartLine) LineDTO {
	dto := LineDTO{
		ID:       line.ID,
		BookID:   line.BookID,
		Quantity: line.Quantity,
		Subtotal: LineSubtotal(line).StringFixed(2),
	}
	if line.Book != nil {
		dto.Title = line.Book.Title
		dto.Author = line.Book.Author
		dto.ImageURL = line.Book.ImageURL
		dto.UnitPrice = line.Book.Price.StringFixed(2)
	}
	return dto
}

func NewSummaryDTO(summary *Summary) SummaryDTO {
	lines := make([]LineDTO, 0, len(summary.Lines))
	for _, line := range summary.Lines {
		lines = append(lines, NewLineDTO(line))
	}
	return SummaryDTO{
		Lines:    lines,
		Count:    summary.Count,
		Subtotal: summary.Subtotal.StringFixed(2),
		Tax:      summary.Tax.StringFixed(2),
		Total:    summary.Total.StringFixed(2),
	}
}
