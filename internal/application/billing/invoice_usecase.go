package billing

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/Facturador-api/internal/application/dto"
	"github.com/jhoicas/Facturador-api/internal/domain"
	"github.com/jhoicas/Facturador-api/internal/domain/entity"
	"github.com/jhoicas/Facturador-api/internal/domain/invoice"
	"github.com/jhoicas/Facturador-api/internal/domain/repository"
	"github.com/jhoicas/Facturador-api/internal/domain/tenant"
	"github.com/jhoicas/Facturador-api/pkg/logger"
	"github.com/jhoicas/Facturador-api/pkg/numbering"
)

// InvoiceConfig parámetros de cálculo y numeración.
type InvoiceConfig struct {
	Calculator     invoice.Calculator
	DefaultPattern string
}

// InvoiceUseCase crea, consulta, modifica y elimina facturas como agregados completos
// (cabecera + ítems) dentro de una única transacción por escritura.
type InvoiceUseCase struct {
	txRunner    BillingTxRunner
	invoiceRepo repository.InvoiceRepository
	clientRepo  repository.ClientRepository
	companyRepo repository.CompanyRepository
	productRepo repository.ProductRepository
	reader      aggregateReader
	cfg         InvoiceConfig
	metrics     InvoiceMetrics
	log         *logger.Logger
	now         func() time.Time
}

// NewInvoiceUseCase construye el caso de uso. metrics puede ser nil.
func NewInvoiceUseCase(
	txRunner BillingTxRunner,
	invoiceRepo repository.InvoiceRepository,
	clientRepo repository.ClientRepository,
	companyRepo repository.CompanyRepository,
	productRepo repository.ProductRepository,
	cfg InvoiceConfig,
	metrics InvoiceMetrics,
	log *logger.Logger,
) *InvoiceUseCase {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	if cfg.DefaultPattern == "" {
		cfg.DefaultPattern = numbering.DefaultPattern
	}
	if log == nil {
		log = logger.Nop()
	}
	return &InvoiceUseCase{
		txRunner:    txRunner,
		invoiceRepo: invoiceRepo,
		clientRepo:  clientRepo,
		companyRepo: companyRepo,
		productRepo: productRepo,
		reader:      aggregateReader{invoiceRepo: invoiceRepo, clientRepo: clientRepo, companyRepo: companyRepo},
		cfg:         cfg,
		metrics:     metrics,
		log:         log.Named("invoices"),
		now:         func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
	}
}

func (uc *InvoiceUseCase) today() time.Time {
	n := uc.now()
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC)
}

// Create valida la entrada, calcula montos, reserva el siguiente número del tenant y
// persiste cabecera e ítems de forma atómica. Si algo falla, el contador no avanza.
// El número usa la fecha de emisión como referencia.
func (uc *InvoiceUseCase) Create(ctx context.Context, tenantID string, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	verr := &domain.ValidationError{}
	clientID := strings.TrimSpace(in.ClientID)
	companyID := strings.TrimSpace(in.CompanyID)
	if clientID == "" {
		verr.Add("client_id", "el cliente es obligatorio")
	}
	if companyID == "" {
		verr.Add("company_id", "la empresa es obligatoria")
	}
	issue := uc.today()
	if strings.TrimSpace(in.IssueDate) != "" {
		issue = parseDate(verr, "issue_date", in.IssueDate)
	}
	var due time.Time
	if strings.TrimSpace(in.DueDate) == "" {
		verr.Add("due_date", "la fecha de vencimiento es obligatoria")
	} else {
		due = parseDate(verr, "due_date", in.DueDate)
	}
	if !issue.IsZero() && !due.IsZero() && due.Before(issue) {
		verr.Add("due_date", "no puede ser anterior a la fecha de emisión")
	}
	template := strings.TrimSpace(in.Template)
	if template == "" {
		template = entity.TemplateModern
	} else if !entity.ValidTemplate(template) {
		verr.Add("template", "plantilla desconocida")
	}
	lines := parseLines(verr, uc.cfg.Calculator, in.Items)
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	company, err := uc.companyRepo.GetByID(ctx, companyID, tenantID)
	if err := tenant.Guard(company, err, tenantID); err != nil {
		return nil, err
	}
	client, err := uc.clientRepo.GetByID(ctx, clientID, tenantID)
	if err := tenant.Guard(client, err, tenantID); err != nil {
		return nil, err
	}
	if err := resolveProducts(ctx, uc.productRepo, tenantID, lines); err != nil {
		return nil, err
	}

	now := uc.now()
	inv := &entity.Invoice{
		ID:        uuid.New().String(),
		TenantID:  tenantID,
		ClientID:  client.ID,
		CompanyID: company.ID,
		Status:    entity.InvoiceStatusPending,
		IssueDate: issue,
		DueDate:   due,
		Notes:     strings.TrimSpace(in.Notes),
		Template:  template,
		CreatedAt: now,
		UpdatedAt: now,
	}
	items, totals := buildItems(uc.cfg.Calculator, inv.ID, lines)
	inv.Subtotal, inv.Tax, inv.Total = totals.Subtotal, totals.Tax, totals.Total

	err = uc.txRunner.RunBilling(ctx, func(invoiceRepo repository.InvoiceRepository, settingsRepo repository.InvoiceSettingsRepository) error {
		pattern, counter, err := settingsRepo.ReserveNumber(ctx, tenantID, uc.cfg.DefaultPattern)
		if err != nil {
			return err
		}
		inv.InvoiceNumber = numbering.Generate(pattern, inv.IssueDate, counter)
		if err := invoiceRepo.Create(ctx, inv); err != nil {
			return err
		}
		return invoiceRepo.CreateItems(ctx, items)
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("tenant_id", tenantID).Msg("no se pudo crear la factura")
		return nil, err
	}

	uc.metrics.InvoiceCreated()
	uc.log.Info().
		Str("tenant_id", tenantID).
		Str("invoice_id", inv.ID).
		Str("invoice_number", inv.InvoiceNumber).
		Str("total", inv.Total.String()).
		Msg("factura creada")

	agg := &aggregate{invoice: inv, items: items, client: client, company: company}
	return agg.response(), nil
}

// Get devuelve la factura con cliente, empresa e ítems. Ajena o inexistente: ErrNotFound.
func (uc *InvoiceUseCase) Get(ctx context.Context, tenantID, id string) (*dto.InvoiceResponse, error) {
	agg, err := uc.reader.get(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return agg.response(), nil
}

// GetByNumber busca una factura por su número dentro del tenant.
func (uc *InvoiceUseCase) GetByNumber(ctx context.Context, tenantID, number string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByNumber(ctx, tenantID, strings.TrimSpace(number))
	if err := tenant.Guard(inv, err, tenantID); err != nil {
		return nil, err
	}
	agg, err := uc.reader.expand(ctx, tenantID, inv)
	if err != nil {
		return nil, err
	}
	return agg.response(), nil
}

// List lista las facturas del tenant (más recientes primero) con sus agregados.
func (uc *InvoiceUseCase) List(ctx context.Context, tenantID string, page dto.PageRequest) (*dto.ListResponse[dto.InvoiceResponse], error) {
	page.DefaultPage()
	list, err := uc.invoiceRepo.ListByTenant(ctx, tenantID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.invoiceRepo.CountByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	items := make([]dto.InvoiceResponse, len(list))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for i, inv := range list {
		g.Go(func() error {
			agg, err := uc.reader.expand(gctx, tenantID, inv)
			if err != nil {
				return err
			}
			items[i] = *agg.response()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &dto.ListResponse[dto.InvoiceResponse]{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// ListItems devuelve las líneas de una factura del tenant.
func (uc *InvoiceUseCase) ListItems(ctx context.Context, tenantID, id string) ([]dto.InvoiceItemResponse, error) {
	items, err := uc.invoiceRepo.ListItems(ctx, id, tenantID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InvoiceItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.InvoiceItemFromEntity(it))
	}
	return out, nil
}

// Update modifica la cabecera y, si se envían ítems, reemplaza todas las líneas y
// recalcula los montos. El número de factura no cambia y el contador no avanza.
// La cabecera se relee bloqueada dentro de la transacción: dos modificaciones
// concurrentes de la misma factura se aplican una después de la otra.
func (uc *InvoiceUseCase) Update(ctx context.Context, tenantID, id string, in dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, error) {
	verr := &domain.ValidationError{}
	var issue, due time.Time
	if in.IssueDate != nil {
		issue = parseDate(verr, "issue_date", *in.IssueDate)
	}
	if in.DueDate != nil {
		due = parseDate(verr, "due_date", *in.DueDate)
	}
	if in.Status != nil && !entity.ValidInvoiceStatus(*in.Status) {
		verr.Add("status", "estado desconocido")
	}
	if in.Template != nil && !entity.ValidTemplate(*in.Template) {
		verr.Add("template", "plantilla desconocida")
	}
	var lines []lineDraft
	replaceItems := in.Items != nil
	if replaceItems {
		lines = parseLines(verr, uc.cfg.Calculator, in.Items)
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	var client *entity.Client
	if in.ClientID != nil {
		got, err := uc.clientRepo.GetByID(ctx, strings.TrimSpace(*in.ClientID), tenantID)
		if err := tenant.Guard(got, err, tenantID); err != nil {
			return nil, err
		}
		client = got
	}
	if replaceItems {
		if err := resolveProducts(ctx, uc.productRepo, tenantID, lines); err != nil {
			return nil, err
		}
	}

	agg := &aggregate{client: client}
	err := uc.txRunner.RunBilling(ctx, func(invoiceRepo repository.InvoiceRepository, _ repository.InvoiceSettingsRepository) error {
		inv, err := invoiceRepo.GetForUpdate(ctx, id, tenantID)
		if err := tenant.Guard(inv, err, tenantID); err != nil {
			return err
		}
		if in.IssueDate != nil {
			inv.IssueDate = issue
		}
		if in.DueDate != nil {
			inv.DueDate = due
		}
		if inv.DueDate.Before(inv.IssueDate) {
			return domain.NewValidationError("due_date", "no puede ser anterior a la fecha de emisión")
		}
		if in.Status != nil {
			inv.Status = *in.Status
		}
		if in.Template != nil {
			inv.Template = *in.Template
		}
		if in.Notes != nil {
			inv.Notes = strings.TrimSpace(*in.Notes)
		}
		if client != nil {
			inv.ClientID = client.ID
		}

		var items []*entity.InvoiceItem
		if replaceItems {
			var totals invoice.Totals
			items, totals = buildItems(uc.cfg.Calculator, inv.ID, lines)
			inv.Subtotal, inv.Tax, inv.Total = totals.Subtotal, totals.Tax, totals.Total
			if err := invoiceRepo.DeleteItems(ctx, inv.ID, tenantID); err != nil {
				return err
			}
			if err := invoiceRepo.CreateItems(ctx, items); err != nil {
				return err
			}
		} else {
			if items, err = invoiceRepo.ListItems(ctx, inv.ID, tenantID); err != nil {
				return err
			}
		}
		inv.UpdatedAt = uc.now()
		if err := invoiceRepo.Update(ctx, inv); err != nil {
			return err
		}
		agg.invoice, agg.items = inv, items
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := uc.reader.parties(ctx, tenantID, agg); err != nil {
		return nil, err
	}

	uc.metrics.InvoiceUpdated()
	uc.log.Info().
		Str("tenant_id", tenantID).
		Str("invoice_id", id).
		Bool("items_replaced", replaceItems).
		Msg("factura actualizada")
	return agg.response(), nil
}

// Delete elimina la factura y todas sus líneas en una sola transacción.
func (uc *InvoiceUseCase) Delete(ctx context.Context, tenantID, id string) error {
	err := uc.txRunner.RunBilling(ctx, func(invoiceRepo repository.InvoiceRepository, _ repository.InvoiceSettingsRepository) error {
		return invoiceRepo.Delete(ctx, id, tenantID)
	})
	if err != nil {
		return err
	}
	uc.metrics.InvoiceDeleted()
	uc.log.Info().Str("tenant_id", tenantID).Str("invoice_id", id).Msg("factura eliminada")
	return nil
}
