package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de pago de una factura.
const (
	InvoiceStatusPending = "pending"
	InvoiceStatusPaid    = "paid"
	InvoiceStatusOverdue = "overdue"
)

// Plantillas visuales para el PDF.
const (
	TemplateModern       = "modern"
	TemplateClassic      = "classic"
	TemplateMinimal      = "minimal"
	TemplateProfessional = "professional"
	TemplateCreative     = "creative"
)

// ValidInvoiceStatus indica si s es un estado conocido.
func ValidInvoiceStatus(s string) bool {
	switch s {
	case InvoiceStatusPending, InvoiceStatusPaid, InvoiceStatusOverdue:
		return true
	}
	return false
}

// ValidTemplate indica si s es una plantilla conocida.
func ValidTemplate(s string) bool {
	switch s {
	case TemplateModern, TemplateClassic, TemplateMinimal, TemplateProfessional, TemplateCreative:
		return true
	}
	return false
}

// Invoice representa la cabecera de una factura.
// InvoiceNumber es único por tenant e inmutable una vez asignado.
// Subtotal, Tax y Total siempre son calculados por el servidor a partir de los ítems.
type Invoice struct {
	ID            string
	TenantID      string
	InvoiceNumber string
	ClientID      string
	CompanyID     string
	Subtotal      decimal.Decimal
	Tax           decimal.Decimal
	Total         decimal.Decimal
	Status        string
	IssueDate     time.Time
	DueDate       time.Time
	Notes         string
	Template      string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (i *Invoice) OwnerTenant() string {
	if i == nil {
		return ""
	}
	return i.TenantID
}
