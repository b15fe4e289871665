package billing

import (
	"context"

	"github.com/jhoicas/Facturador-api/internal/domain/entity"
	"github.com/jhoicas/Facturador-api/internal/domain/repository"
)

// BillingTxRunner ejecuta fn dentro de una unidad atómica con repos de facturación atados a ella.
// Si fn devuelve error, nada de lo escrito (incluido el avance del contador) persiste.
type BillingTxRunner interface {
	RunBilling(ctx context.Context, fn func(
		invoiceRepo repository.InvoiceRepository,
		settingsRepo repository.InvoiceSettingsRepository,
	) error) error
}

// InvoiceMetrics contadores de negocio sobre facturas.
type InvoiceMetrics interface {
	InvoiceCreated()
	InvoiceUpdated()
	InvoiceDeleted()
}

// InvoicePDFData agregado completo para renderizar una factura.
type InvoicePDFData struct {
	Invoice *entity.Invoice
	Items   []*entity.InvoiceItem
	Company *entity.Company
	Client  *entity.Client
	TaxRate string // porcentaje legible, ej. "10"
}

// InvoicePDFGenerator genera el PDF de una factura.
type InvoicePDFGenerator interface {
	Generate(data InvoicePDFData) ([]byte, error)
}

type nopMetrics struct{}

func (nopMetrics) InvoiceCreated() {}
func (nopMetrics) InvoiceUpdated() {}
func (nopMetrics) InvoiceDeleted() {}
