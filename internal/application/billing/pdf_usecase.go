package billing

import (
	"context"
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Facturador-api/internal/domain/invoice"
	"github.com/jhoicas/Facturador-api/internal/domain/repository"
)

// PDFUseCase genera la representación gráfica (PDF) de una factura.
type PDFUseCase struct {
	reader    aggregateReader
	taxRate   decimal.Decimal
	generator InvoicePDFGenerator
}

// NewPDFUseCase construye el caso de uso inyectando todas sus dependencias.
func NewPDFUseCase(
	invoiceRepo repository.InvoiceRepository,
	clientRepo repository.ClientRepository,
	companyRepo repository.CompanyRepository,
	calc invoice.Calculator,
	generator InvoicePDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{
		reader:    aggregateReader{invoiceRepo: invoiceRepo, clientRepo: clientRepo, companyRepo: companyRepo},
		taxRate:   calc.Rate,
		generator: generator,
	}
}

var unsafeFilename = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// DownloadInvoicePDF carga el agregado de la factura y genera el PDF con la plantilla elegida.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si la factura no existe o es de otro tenant.
func (uc *PDFUseCase) DownloadInvoicePDF(ctx context.Context, tenantID, invoiceID string) ([]byte, string, error) {
	agg, err := uc.reader.get(ctx, tenantID, invoiceID)
	if err != nil {
		return nil, "", err
	}

	pdfBytes, err := uc.generator.Generate(InvoicePDFData{
		Invoice: agg.invoice,
		Items:   agg.items,
		Company: agg.company,
		Client:  agg.client,
		TaxRate: uc.taxRate.Mul(decimal.NewFromInt(100)).String(),
	})
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generar documento: %w", err)
	}

	filename := fmt.Sprintf("factura_%s.pdf", unsafeFilename.ReplaceAllString(agg.invoice.InvoiceNumber, "_"))
	return pdfBytes, filename, nil
}
