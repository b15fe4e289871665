package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Facturador-api/internal/domain/entity"
)

// StatusSummary agregado de facturas por estado.
type StatusSummary struct {
	Status string
	Count  int
	Total  decimal.Decimal
}

// InvoiceRepository define el puerto de persistencia para Invoice y sus ítems.
// Las operaciones compuestas (Delete, reemplazo de ítems) deben ejecutarse dentro de
// BillingTxRunner para ser atómicas.
type InvoiceRepository interface {
	// Create devuelve ErrDuplicate si el número ya existe en el tenant y
	// ErrConflict si el cliente o la empresa no existen.
	Create(ctx context.Context, invoice *entity.Invoice) error
	CreateItems(ctx context.Context, items []*entity.InvoiceItem) error
	GetByID(ctx context.Context, id, tenantID string) (*entity.Invoice, error)
	// GetForUpdate lee la cabecera bloqueándola hasta el fin de la transacción en curso.
	// Las modificaciones de una factura existente deben partir de esta lectura.
	GetForUpdate(ctx context.Context, id, tenantID string) (*entity.Invoice, error)
	GetByNumber(ctx context.Context, tenantID, number string) (*entity.Invoice, error)
	ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]*entity.Invoice, error)
	CountByTenant(ctx context.Context, tenantID string) (int, error)
	// ListItems devuelve los ítems en orden de posición; ErrNotFound si la factura no es del tenant.
	ListItems(ctx context.Context, invoiceID, tenantID string) ([]*entity.InvoiceItem, error)
	// Update persiste la cabecera. El número de factura nunca se modifica.
	Update(ctx context.Context, invoice *entity.Invoice) error
	DeleteItems(ctx context.Context, invoiceID, tenantID string) error
	// Delete elimina primero los ítems y luego la cabecera.
	Delete(ctx context.Context, id, tenantID string) error
	SummarizeByStatus(ctx context.Context, tenantID string) ([]StatusSummary, error)
}
