package catalog

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	pkgerrors "github.com/angelmondragon/libreria-backend/pkg/errors"
)

var validate = validator.New()

// CategoryInput is the full writable state of a category.
type CategoryInput struct {
	Name        string
	Description *string
	Color       string
}

// SupplierInput is the full writable state of a supplier.
type SupplierInput struct {
	Name    string
	Contact string
	Phone   string
	Email   string
	Address string
}

// BookInput is the full writable state of a book. Pages, PublishedOn and
// ImageURL fall back to their defaults when left empty on create.
type BookInput struct {
	Title       string
	Author      string
	Publisher   string
	Description string
	Price       decimal.Decimal
	Pages       *int
	ISBN        string
	PublishedOn *time.Time
	ImageURL    string
	CategoryID  uuid.UUID
	SupplierID  *uuid.UUID
}

func (in *CategoryInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Color = strings.TrimSpace(in.Color)
	if in.Description != nil {
		trimmed := strings.TrimSpace(*in.Description)
		if trimmed == "" {
			in.Description = nil
		} else {
			in.Description = &trimmed
		}
	}
}

func (in CategoryInput) validate() error {
	fields := pkgerrors.Fields{}
	fields.Required("name", in.Name)
	fields.MaxLen("name", in.Name, 100)
	fields.MaxLen("color", in.Color, 20)
	return fields.Err()
}

func (in *SupplierInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Contact = strings.TrimSpace(in.Contact)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Email = strings.TrimSpace(in.Email)
	in.Address = strings.TrimSpace(in.Address)
}

func (in SupplierInput) validate() error {
	fields := pkgerrors.Fields{}
	fields.Required("name", in.Name)
	fields.MaxLen("name", in.Name, 200)
	fields.MaxLen("contact", in.Contact, 100)
	fields.MaxLen("phone", in.Phone, 20)
	if in.Email != "" && validate.Var(in.Email, "email") != nil {
		fields.Add("email", "must be a valid email address")
	}
	return fields.Err()
}

func (in *BookInput) normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Author = strings.TrimSpace(in.Author)
	in.Publisher = strings.TrimSpace(in.Publisher)
	in.Description = strings.TrimSpace(in.Description)
	in.ISBN = strings.TrimSpace(in.ISBN)
	in.ImageURL = strings.TrimSpace(in.ImageURL)
}

func (in BookInput) validate() error {
	fields := pkgerrors.Fields{}
	fields.Required("title", in.Title)
	fields.MaxLen("title", in.Title, 200)
	fields.MaxLen("author", in.Author, 100)
	fields.MaxLen("publisher", in.Publisher, 100)
	fields.Required("description", in.Description)
	if !in.Price.IsPositive() {
		fields.Add("price", "must be greater than 0")
	} else if !in.Price.Equal(in.Price.Round(2)) {
		fields.Add("price", "must have at most 2 decimal places")
	} else if in.Price.GreaterThanOrEqual(maxPrice) {
		fields.Add("price", "must be less than 100000000")
	}
	if in.Pages != nil && *in.Pages < 0 {
		fields.Add("pages", "must be 0 or greater")
	}
	fields.MaxLen("isbn", in.ISBN, 20)
	fields.MaxLen("image_url", in.ImageURL, 500)
	if in.ImageURL != "" && validate.Var(in.ImageURL, "url") != nil {
		fields.Add("image_url", "must be a valid URL")
	}
	if in.CategoryID == uuid.Nil {
		fields.Add("category_id", "is required")
	}
	return fields.Err()
}

func (in SearchQuery) validate() error {
	fields := pkgerrors.Fields{}
	if in.MinPrice != nil && in.MinPrice.IsNegative() {
		fields.Add("min_price", "must be 0 or greater")
	}
	if in.MaxPrice != nil && in.MaxPrice.IsNegative() {
		fields.Add("max_price", "must be 0 or greater")
	}
	if in.MinPrice != nil && in.MaxPrice != nil && in.MinPrice.GreaterThan(*in.MaxPrice) {
		fields.Add("max_price", "must not be below min_price")
	}
	return fields.Err()
}

// decimal(10,2) holds at most eight integer digits.
var maxPrice = decimal.New(1, 8)
