package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateInvoiceRequest body para POST /api/invoices.
// Los montos (subtotal, tax, total) nunca se aceptan del cliente: se recalculan.
type CreateInvoiceRequest struct {
	ClientID  string               `json:"client_id" validate:"required"`
	CompanyID string               `json:"company_id" validate:"required"`
	IssueDate string               `json:"issue_date,omitempty" validate:"omitempty,datetime=2006-01-02"` // hoy si va vacío
	DueDate   string               `json:"due_date" validate:"required,datetime=2006-01-02"`
	Notes     string               `json:"notes,omitempty" validate:"max=2000"`
	Template  string               `json:"template,omitempty" validate:"omitempty,oneof=modern classic minimal professional creative"`
	Items     []InvoiceItemRequest `json:"items" validate:"required,min=1,dive"`
}

// InvoiceItemRequest línea de factura. Total, si viene, se ignora.
// Con ProductID y sin ProductName se copia el nombre del catálogo.
type InvoiceItemRequest struct {
	ProductID   string           `json:"product_id,omitempty"`
	ProductName string           `json:"product_name,omitempty" validate:"required_without=ProductID,max=200"`
	Description string           `json:"description,omitempty" validate:"max=1000"`
	Quantity    int64            `json:"quantity" validate:"gte=1"`
	Price       decimal.Decimal  `json:"price" validate:"gte=0"`
	Total       *decimal.Decimal `json:"total,omitempty"`
}

// UpdateInvoiceRequest body para PUT /api/invoices/:id.
// Si Items viene, reemplaza por completo las líneas y se recalculan los montos.
// El número de factura y la empresa emisora no se pueden modificar.
type UpdateInvoiceRequest struct {
	ClientID  *string              `json:"client_id,omitempty" validate:"omitempty,min=1"`
	IssueDate *string              `json:"issue_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	DueDate   *string              `json:"due_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Status    *string              `json:"status,omitempty" validate:"omitempty,oneof=pending paid overdue"`
	Notes     *string              `json:"notes,omitempty" validate:"omitempty,max=2000"`
	Template  *string              `json:"template,omitempty" validate:"omitempty,oneof=modern classic minimal professional creative"`
	Items     []InvoiceItemRequest `json:"items,omitempty" validate:"omitempty,dive"`
}

// InvoiceResponse factura con cliente, empresa y líneas para GET /api/invoices/:id.
type InvoiceResponse struct {
	ID            string                `json:"id"`
	InvoiceNumber string                `json:"invoice_number"`
	ClientID      string                `json:"client_id"`
	CompanyID     string                `json:"company_id"`
	Subtotal      decimal.Decimal       `json:"subtotal"`
	Tax           decimal.Decimal       `json:"tax"`
	Total         decimal.Decimal       `json:"total"`
	Status        string                `json:"status"`
	IssueDate     string                `json:"issue_date"`
	DueDate       string                `json:"due_date"`
	Notes         string                `json:"notes,omitempty"`
	Template      string                `json:"template"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
	Client        *ClientResponse       `json:"client,omitempty"`
	Company       *CompanyResponse      `json:"company,omitempty"`
	Items         []InvoiceItemResponse `json:"items"`
}

// InvoiceItemResponse línea de factura en la respuesta.
type InvoiceItemResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id,omitempty"`
	ProductName string          `json:"product_name"`
	Description string          `json:"description,omitempty"`
	Quantity    int64           `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Total       decimal.Decimal `json:"total"`
}
