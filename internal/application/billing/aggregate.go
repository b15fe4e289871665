package billing

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/Facturador-api/internal/application/dto"
	"github.com/jhoicas/Facturador-api/internal/domain"
	"github.com/jhoicas/Facturador-api/internal/domain/entity"
	"github.com/jhoicas/Facturador-api/internal/domain/invoice"
	"github.com/jhoicas/Facturador-api/internal/domain/repository"
	"github.com/jhoicas/Facturador-api/internal/domain/tenant"
)

// lineDraft línea ya validada, antes de asignarle factura.
type lineDraft struct {
	productID   string
	productName string
	description string
	quantity    int64
	price       decimal.Decimal
}

// parseLines valida las líneas de entrada. Los totales enviados por el cliente se ignoran.
// Un precio con más decimales que los del calculador se rechaza en vez de redondearse.
func parseLines(verr *domain.ValidationError, calc invoice.Calculator, in []dto.InvoiceItemRequest) []lineDraft {
	if len(in) == 0 {
		verr.Add("items", "la factura requiere al menos un ítem")
		return nil
	}
	lines := make([]lineDraft, 0, len(in))
	for i, it := range in {
		field := "items[" + strconv.Itoa(i) + "]"
		l := lineDraft{
			productID:   strings.TrimSpace(it.ProductID),
			productName: strings.TrimSpace(it.ProductName),
			description: strings.TrimSpace(it.Description),
			quantity:    it.Quantity,
			price:       it.Price,
		}
		if l.productName == "" && l.productID == "" {
			verr.Add(field+".product_name", "el nombre del producto es obligatorio")
		}
		if l.quantity < 1 {
			verr.Add(field+".quantity", "la cantidad debe ser al menos 1")
		}
		if l.price.IsNegative() {
			verr.Add(field+".price", "el precio no puede ser negativo")
		} else if !calc.FitsScale(l.price) {
			verr.Add(field+".price", "el precio admite como máximo "+strconv.Itoa(int(calc.Scale))+" decimales")
		}
		lines = append(lines, l)
	}
	return lines
}

// parseDate interpreta una fecha de calendario YYYY-MM-DD en UTC.
func parseDate(verr *domain.ValidationError, field, s string) time.Time {
	t, err := time.Parse(dto.DateLayout, strings.TrimSpace(s))
	if err != nil {
		verr.Add(field, "fecha inválida, formato esperado YYYY-MM-DD")
		return time.Time{}
	}
	return t
}

// resolveProducts verifica que los productos referenciados sean del tenant y completa
// nombre y descripción vacíos con la copia del catálogo.
func resolveProducts(ctx context.Context, repo repository.ProductRepository, tenantID string, lines []lineDraft) error {
	seen := make(map[string]*entity.Product)
	for i := range lines {
		id := lines[i].productID
		if id == "" {
			continue
		}
		p, ok := seen[id]
		if !ok {
			got, err := repo.GetByID(ctx, id, tenantID)
			if err := tenant.Guard(got, err, tenantID); err != nil {
				return err
			}
			p = got
			seen[id] = p
		}
		if lines[i].productName == "" {
			lines[i].productName = p.Name
		}
		if lines[i].description == "" {
			lines[i].description = p.Description
		}
	}
	return nil
}

// buildItems materializa las líneas de una factura y calcula sus montos.
func buildItems(calc invoice.Calculator, invoiceID string, lines []lineDraft) ([]*entity.InvoiceItem, invoice.Totals) {
	items := make([]*entity.InvoiceItem, len(lines))
	calcLines := make([]invoice.Line, len(lines))
	for i, l := range lines {
		items[i] = &entity.InvoiceItem{
			ID:          uuid.New().String(),
			InvoiceID:   invoiceID,
			ProductID:   l.productID,
			ProductName: l.productName,
			Description: l.description,
			Quantity:    l.quantity,
			Price:       l.price,
			Total:       calc.LineTotal(l.quantity, l.price),
			Position:    i,
		}
		calcLines[i] = invoice.Line{Quantity: l.quantity, Price: l.price}
	}
	return items, calc.Compute(calcLines)
}

// aggregate factura con sus líneas, cliente y empresa.
type aggregate struct {
	invoice *entity.Invoice
	items   []*entity.InvoiceItem
	client  *entity.Client
	company *entity.Company
}

func (a *aggregate) response() *dto.InvoiceResponse {
	return dto.InvoiceFromEntity(a.invoice, a.items, a.client, a.company)
}

// aggregateReader carga el agregado completo de una factura en paralelo.
type aggregateReader struct {
	invoiceRepo repository.InvoiceRepository
	clientRepo  repository.ClientRepository
	companyRepo repository.CompanyRepository
}

func (r aggregateReader) get(ctx context.Context, tenantID, id string) (*aggregate, error) {
	inv, err := r.invoiceRepo.GetByID(ctx, id, tenantID)
	if err := tenant.Guard(inv, err, tenantID); err != nil {
		return nil, err
	}
	return r.expand(ctx, tenantID, inv)
}

func (r aggregateReader) expand(ctx context.Context, tenantID string, inv *entity.Invoice) (*aggregate, error) {
	agg := &aggregate{invoice: inv}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		items, err := r.invoiceRepo.ListItems(gctx, inv.ID, tenantID)
		agg.items = items
		return err
	})
	g.Go(func() error {
		return r.parties(gctx, tenantID, agg)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return agg, nil
}

// parties completa cliente (si falta) y empresa del agregado.
func (r aggregateReader) parties(ctx context.Context, tenantID string, agg *aggregate) error {
	g, gctx := errgroup.WithContext(ctx)
	if agg.client == nil || agg.client.ID != agg.invoice.ClientID {
		g.Go(func() error {
			client, err := r.clientRepo.GetByID(gctx, agg.invoice.ClientID, tenantID)
			agg.client = client
			return tenant.Guard(client, err, tenantID)
		})
	}
	g.Go(func() error {
		company, err := r.companyRepo.GetByID(gctx, agg.invoice.CompanyID, tenantID)
		agg.company = company
		return tenant.Guard(company, err, tenantID)
	})
	return g.Wait()
}
