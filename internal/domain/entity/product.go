package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultProductUnit unidad asignada cuando el producto no indica una.
const DefaultProductUnit = "pcs"

// Product plantilla de catálogo; sus datos se copian a la línea de factura al facturar.
type Product struct {
	ID          string
	TenantID    string
	CompanyID   string
	Name        string
	Description string
	Price       decimal.Decimal
	Category    string
	Unit        string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (p *Product) OwnerTenant() string {
	if p == nil {
		return ""
	}
	return p.TenantID
}
