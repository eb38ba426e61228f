package admin

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/libreria-backend/internal/catalog"
	"github.com/angelmondragon/libreria-backend/internal/inventory"
	"github.com/angelmondragon/libreria-backend/internal/orders"
	"github.com/angelmondragon/libreria-backend/internal/users"
	pkgerrors "github.com/angelmondragon/libreria-backend/pkg/errors"
)

const dateLayout = "2006-01-02"

type categoryRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Color       string  `json:"color"`
}

func toCategoryInput(req categoryRequest) (catalog.CategoryInput, error) {
	return catalog.CategoryInput{Name: req.Name, Description: req.Description, Color: req.Color}, nil
}

type supplierRequest struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

func toSupplierInput(req supplierRequest) (catalog.SupplierInput, error) {
	return catalog.SupplierInput{
		Name:    req.Name,
		Contact: req.Contact,
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
	}, nil
}

type bookRequest struct {
	Title       string          `json:"title"`
	Author      string          `json:"author"`
	Publisher   string          `json:"publisher"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Pages       *int            `json:"pages"`
	ISBN        string          `json:"isbn"`
	PublishedOn *string         `json:"published_on"`
	ImageURL    string          `json:"image_url"`
	CategoryID  uuid.UUID       `json:"category_id"`
	SupplierID  *uuid.UUID      `json:"supplier_id"`
}

func toBookInput(req bookRequest) (catalog.BookInput, error) {
	input := catalog.BookInput{
		Title:       req.Title,
		Author:      req.Author,
		Publisher:   req.Publisher,
		Description: req.Description,
		Price:       req.Price,
		Pages:       req.Pages,
		ISBN:        req.ISBN,
		ImageURL:    req.ImageURL,
		CategoryID:  req.CategoryID,
		SupplierID:  req.SupplierID,
	}
	if req.PublishedOn != nil && strings.TrimSpace(*req.PublishedOn) != "" {
		day, err := time.Parse(dateLayout, strings.TrimSpace(*req.PublishedOn))
		if err != nil {
			return catalog.BookInput{}, pkgerrors.Validation(map[string]string{"published_on": "must be a date (YYYY-MM-DD)"})
		}
		input.PublishedOn = &day
	}
	return input, nil
}

type inventoryCreateRequest struct {
	BookID           uuid.UUID `json:"book_id"`
	Quantity         *int      `json:"quantity"`
	ReorderThreshold *int      `json:"reorder_threshold"`
}

func toInventoryCreateInput(req inventoryCreateRequest) (inventory.CreateInput, error) {
	return inventory.CreateInput{BookID: req.BookID, Quantity: req.Quantity, ReorderThreshold: req.ReorderThreshold}, nil
}

type inventoryUpdateRequest struct {
	Quantity         int `json:"quantity"`
	ReorderThreshold int `json:"reorder_threshold"`
}

func toInventoryUpdateInput(req inventoryUpdateRequest) (inventory.UpdateInput, error) {
	return inventory.UpdateInput{Quantity: req.Quantity, ReorderThreshold: req.ReorderThreshold}, nil
}

type orderCreateRequest struct {
	UserID          uuid.UUID       `json:"user_id"`
	ShippingAddress string          `json:"shipping_address"`
	PaymentMethod   string          `json:"payment_method"`
	Notes           *string         `json:"notes"`
	Total           decimal.Decimal `json:"total"`
}

func toOrderCreateInput(req orderCreateRequest) (orders.CreateInput, error) {
	return orders.CreateInput{
		UserID:          req.UserID,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		Notes:           req.Notes,
		Total:           req.Total,
	}, nil
}

type orderUpdateRequest struct {
	ShippingAddress string          `json:"shipping_address"`
	Notes           *string         `json:"notes"`
	Total           decimal.Decimal `json:"total"`
}

func toOrderUpdateInput(req orderUpdateRequest) (orders.UpdateInput, error) {
	return orders.UpdateInput{ShippingAddress: req.ShippingAddress, Notes: req.Notes, Total: req.Total}, nil
}

type userCreateRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	IsAdmin   bool   `json:"is_admin"`
	IsActive  *bool  `json:"is_active"`
}

func toUserCreateInput(req userCreateRequest) (users.CreateInput, error) {
	return users.CreateInput{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		IsAdmin:   req.IsAdmin,
		IsActive:  req.IsActive,
	}, nil
}

type userUpdateRequest struct {
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	IsAdmin   bool    `json:"is_admin"`
	IsActive  bool    `json:"is_active"`
	Password  *string `json:"password"`
}

func toUserUpdateInput(req userUpdateRequest) (users.UpdateInput, error) {
	return users.UpdateInput{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		IsAdmin:   req.IsAdmin,
		IsActive:  req.IsActive,
		Password:  req.Password,
	}, nil
}
