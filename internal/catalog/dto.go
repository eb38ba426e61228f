package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/libreria-backend/pkg/db/models"
)

const dateLayout = "2006-01-02"

// CategoryDTO is the category payload returned to clients.
type CategoryDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Color       string    `json:"color"`
}

// SupplierDTO is the supplier payload returned to clients.
type SupplierDTO struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Contact string    `json:"contact"`
	Phone   string    `json:"phone"`
	Email   string    `json:"email"`
	Address string    `json:"address"`
}

// BookDTO renders money as a fixed two-decimal string.
type BookDTO struct {
	ID          uuid.UUID    `json:"id"`
	Title       string       `json:"title"`
	Author      string       `json:"author"`
	Publisher   string       `json:"publisher"`
	Description string       `json:"description"`
	Price       string       `json:"price"`
	Pages       int          `json:"pages"`
	ISBN        string       `json:"isbn"`
	PublishedOn string       `json:"published_on"`
	ImageURL    string       `json:"image_url"`
	CategoryID  uuid.UUID    `json:"category_id"`
	Category    *CategoryDTO `json:"category,omitempty"`
	SupplierID  *uuid.UUID   `json:"supplier_id"`
	Supplier    *SupplierDTO `json:"supplier,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
}

func NewCategoryDTO(row models.Category) CategoryDTO {
	return CategoryDTO{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
		Color:       row.Color,
	}
}

func NewCategoryDTOs(rows []models.Category) []CategoryDTO {
	out := make([]CategoryDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, NewCategoryDTO(row))
	}
	return out
}

func NewSupplierDTO(row models.Supplier) SupplierDTO {
	return SupplierDTO{
		ID:      row.ID,
		Name:    row.Name,
		Contact: row.Contact,
		Phone:   row.Phone,
		Email:   row.Email,
		Address: row.Address,
	}
}

func NewSupplierDTOs(rows []models.Supplier) []SupplierDTO {
	out := make([]SupplierDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, NewSupplierDTO(row))
	}
	return out
}

func NewBookDTO(row models.Book) BookDTO {
	dto := BookDTO{
		ID:          row.ID,
		Title:       row.Title,
		Author:      row.Author,
		Publisher:   row.Publisher,
		Description: row.Description,
		Price:       row.Price.StringFixed(2),
		Pages:       row.Pages,
		ISBN:        row.ISBN,
		PublishedOn: row.PublishedOn.Format(dateLayout),
		ImageURL:    row.ImageURL,
		CategoryID:  row.CategoryID,
		SupplierID:  row.SupplierID,
		CreatedAt:   row.CreatedAt,
	}
	if row.Category != nil {
		category := NewCategoryDTO(*row.Category)
		dto.Category = &category
	}
	if row.Supplier != nil {
		supplier := NewSupplierDTO(*row.Supplier)
		dto.Supplier = &supplier
	}
	return dto
}

func NewBookDTOs(rows []models.Book) []BookDTO {
	out := make([]BookDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, NewBookDTO(row))
	}
	return out
}
