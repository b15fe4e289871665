package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	CompanyID   string          `json:"company_id" validate:"required"`
	Name        string          `json:"name" validate:"required,max=200"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price" validate:"gte=0"`
	Category    string          `json:"category,omitempty" validate:"omitempty,max=100"`
	Unit        string          `json:"unit,omitempty" validate:"omitempty,max=20"`
}

// UpdateProductRequest body para PUT /api/products/:id.
type UpdateProductRequest struct {
	CompanyID   *string          `json:"company_id,omitempty" validate:"omitempty,min=1"`
	Name        *string          `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string          `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty" validate:"omitempty,gte=0"`
	Category    *string          `json:"category,omitempty" validate:"omitempty,max=100"`
	Unit        *string          `json:"unit,omitempty" validate:"omitempty,min=1,max=20"`
}

// ProductResponse producto en respuestas.
type ProductResponse struct {
	ID          string          `json:"id"`
	CompanyID   string          `json:"company_id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category,omitempty"`
	Unit        string          `json:"unit"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
