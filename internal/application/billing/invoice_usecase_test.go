package billing_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Facturador-api/internal/application/billing"
	"github.com/jhoicas/Facturador-api/internal/application/dto"
	"github.com/jhoicas/Facturador-api/internal/domain"
	"github.com/jhoicas/Facturador-api/internal/domain/entity"
	"github.com/jhoicas/Facturador-api/internal/domain/invoice"
	"github.com/jhoicas/Facturador-api/internal/domain/repository"
	"github.com/jhoicas/Facturador-api/internal/infrastructure/memory"
	"github.com/jhoicas/Facturador-api/pkg/logger"
	"github.com/jhoicas/Facturador-api/pkg/numbering"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type countingMetrics struct {
	mu                        sync.Mutex
	created, updated, deleted int
}

func (m *countingMetrics) InvoiceCreated() { m.mu.Lock(); m.created++; m.mu.Unlock() }
func (m *countingMetrics) InvoiceUpdated() { m.mu.Lock(); m.updated++; m.mu.Unlock() }
func (m *countingMetrics) InvoiceDeleted() { m.mu.Lock(); m.deleted++; m.mu.Unlock() }

type fixture struct {
	store    *memory.Store
	invoices *billing.InvoiceUseCase
	settings *billing.SettingsUseCase
	metrics  *countingMetrics
	tenant   string
	company  *entity.Company
	client   *entity.Client
	product  *entity.Product
}

func calculator() invoice.Calculator { return invoice.NewCalculator(dec("0.10"), 2) }

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWithRunner(t, nil)
}

// newFixtureWithRunner permite envolver el runner transaccional del store.
func newFixtureWithRunner(t *testing.T, wrap func(*memory.Store) billing.BillingTxRunner) *fixture {
	t.Helper()
	store := memory.NewStore()
	var runner billing.BillingTxRunner = store
	if wrap != nil {
		runner = wrap(store)
	}
	f := &fixture{store: store, metrics: &countingMetrics{}, tenant: "tenant-a"}
	f.invoices = billing.NewInvoiceUseCase(runner, store.Invoices(), store.Clients(), store.Companies(), store.Products(),
		billing.InvoiceConfig{Calculator: calculator(), DefaultPattern: numbering.DefaultPattern},
		f.metrics, logger.Nop())
	f.settings = billing.NewSettingsUseCase(store.Settings(), numbering.DefaultPattern)
	f.company, f.client, f.product = seed(t, store, f.tenant)
	return f
}

func seed(t *testing.T, store *memory.Store, tenantID string) (*entity.Company, *entity.Client, *entity.Product) {
	t.Helper()
	ctx := context.Background()
	company := &entity.Company{ID: uuid.NewString(), TenantID: tenantID, Name: "Toko Maju"}
	require.NoError(t, store.Companies().Create(ctx, company))
	client := &entity.Client{ID: uuid.NewString(), TenantID: tenantID, CompanyID: company.ID, Name: "Budi"}
	require.NoError(t, store.Clients().Create(ctx, client))
	product := &entity.Product{ID: uuid.NewString(), TenantID: tenantID, CompanyID: company.ID,
		Name: "Desain Logo", Description: "Paket dasar", Price: dec("750000"), Unit: "pcs"}
	require.NoError(t, store.Products().Create(ctx, product))
	return company, client, product
}

func (f *fixture) request(items ...dto.InvoiceItemRequest) dto.CreateInvoiceRequest {
	if len(items) == 0 {
		items = []dto.InvoiceItemRequest{{ProductName: "Servicio", Quantity: 1, Price: dec("100")}}
	}
	return dto.CreateInvoiceRequest{
		ClientID:  f.client.ID,
		CompanyID: f.company.ID,
		IssueDate: "2025-03-07",
		DueDate:   "2025-04-07",
		Items:     items,
	}
}

func (f *fixture) nextNumber(t *testing.T) int64 {
	t.Helper()
	s, err := f.settings.Get(context.Background(), f.tenant)
	require.NoError(t, err)
	return s.NextNumber
}

func TestCreate_CalculaMontosYNumera(t *testing.T) {
	f := newFixture(t)
	bogus := dec("1")
	req := f.request(
		dto.InvoiceItemRequest{ProductName: "Desain", Quantity: 2, Price: dec("50000"), Total: &bogus},
		dto.InvoiceItemRequest{ProductName: "Hosting", Description: "1 bulan", Quantity: 1, Price: dec("10.50")},
	)

	got, err := f.invoices.Create(context.Background(), f.tenant, req)
	require.NoError(t, err)

	assert.Equal(t, "INV250307-001", got.InvoiceNumber)
	assert.Equal(t, entity.InvoiceStatusPending, got.Status)
	assert.Equal(t, entity.TemplateModern, got.Template)
	assert.Equal(t, "2025-03-07", got.IssueDate)
	assert.Equal(t, "2025-04-07", got.DueDate)
	assert.True(t, dec("100010.50").Equal(got.Subtotal), got.Subtotal.String())
	assert.True(t, dec("10001.05").Equal(got.Tax), got.Tax.String())
	assert.True(t, dec("110011.55").Equal(got.Total), got.Total.String())

	require.Len(t, got.Items, 2)
	assert.True(t, dec("100000").Equal(got.Items[0].Total), "el total enviado por el cliente se ignora")
	assert.Equal(t, "Hosting", got.Items[1].ProductName)
	require.NotNil(t, got.Client)
	assert.Equal(t, "Budi", got.Client.Name)
	require.NotNil(t, got.Company)
	assert.Equal(t, "Toko Maju", got.Company.Name)

	assert.Equal(t, int64(2), f.nextNumber(t))
	assert.Equal(t, 1, f.metrics.created)
}

func TestCreate_FechaDeEmisionPorDefectoHoy(t *testing.T) {
	f := newFixture(t)
	req := f.request()
	req.IssueDate = ""
	req.DueDate = time.Now().UTC().AddDate(0, 1, 0).Format(dto.DateLayout)

	got, err := f.invoices.Create(context.Background(), f.tenant, req)
	require.NoError(t, err)

	today := time.Now().UTC()
	assert.Equal(t, today.Format(dto.DateLayout), got.IssueDate)
	assert.Equal(t, numbering.Generate(numbering.DefaultPattern, today, 1), got.InvoiceNumber)
}

func TestCreate_NumerosConsecutivos(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, want := range []string{"INV250307-001", "INV250307-002", "INV250307-003"} {
		before := f.nextNumber(t)
		got, err := f.invoices.Create(ctx, f.tenant, f.request())
		require.NoError(t, err)
		assert.Equal(t, want, got.InvoiceNumber)
		assert.Equal(t, before+1, f.nextNumber(t))
	}
}

func TestCreate_ConcurrenteNumerosDistintos(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	const n = 25

	numbers := make(chan string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := f.invoices.Create(ctx, f.tenant, f.request())
			if assert.NoError(t, err) {
				numbers <- got.InvoiceNumber
			}
		}()
	}
	wg.Wait()
	close(numbers)

	seen := make(map[string]bool)
	for num := range numbers {
		assert.False(t, seen[num], "número repetido %s", num)
		seen[num] = true
	}
	assert.Len(t, seen, n)
	assert.Equal(t, int64(n+1), f.nextNumber(t))
}

func TestCreate_PatronPersonalizado(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.settings.Update(ctx, f.tenant, dto.UpdateInvoiceSettingsRequest{InvoicePattern: "FAC-{YYYY}-{#}", NextNumber: 41})
	require.NoError(t, err)

	got, err := f.invoices.Create(ctx, f.tenant, f.request())
	require.NoError(t, err)
	assert.Equal(t, "FAC-2025-41", got.InvoiceNumber)
	assert.Equal(t, int64(42), f.nextNumber(t))
}

func TestCreate_TenantsConContadoresIndependientes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	otherCompany, otherClient, _ := seed(t, f.store, "tenant-b")

	a, err := f.invoices.Create(ctx, f.tenant, f.request())
	require.NoError(t, err)
	reqB := f.request()
	reqB.ClientID, reqB.CompanyID = otherClient.ID, otherCompany.ID
	b, err := f.invoices.Create(ctx, "tenant-b", reqB)
	require.NoError(t, err)

	assert.Equal(t, "INV250307-001", a.InvoiceNumber)
	assert.Equal(t, "INV250307-001", b.InvoiceNumber)
}

func TestCreate_Validacion(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*dto.CreateInvoiceRequest)
		field  string
	}{
		{"sin ítems", func(r *dto.CreateInvoiceRequest) { r.Items = nil }, "items"},
		{"cantidad cero", func(r *dto.CreateInvoiceRequest) { r.Items[0].Quantity = 0 }, "items[0].quantity"},
		{"precio negativo", func(r *dto.CreateInvoiceRequest) { r.Items[0].Price = dec("-1") }, "items[0].price"},
		{"sin nombre ni producto", func(r *dto.CreateInvoiceRequest) { r.Items[0].ProductName = " " }, "items[0].product_name"},
		{"vencimiento inválido", func(r *dto.CreateInvoiceRequest) { r.DueDate = "07/04/2025" }, "due_date"},
		{"sin vencimiento", func(r *dto.CreateInvoiceRequest) { r.DueDate = "" }, "due_date"},
		{"vence antes de emitir", func(r *dto.CreateInvoiceRequest) { r.DueDate = "2025-03-01" }, "due_date"},
		{"plantilla desconocida", func(r *dto.CreateInvoiceRequest) { r.Template = "neon" }, "template"},
		{"sin cliente", func(r *dto.CreateInvoiceRequest) { r.ClientID = "" }, "client_id"},
		{"sin empresa", func(r *dto.CreateInvoiceRequest) { r.CompanyID = "" }, "company_id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			req := f.request()
			tt.mutate(&req)

			_, err := f.invoices.Create(context.Background(), f.tenant, req)
			require.ErrorIs(t, err, domain.ErrInvalidInput)
			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tt.field)

			assert.Equal(t, int64(1), f.nextNumber(t), "una entrada inválida no consume número")
			assert.Equal(t, 0, f.metrics.created)
		})
	}
}

func TestCreate_RecursosDeOtroTenant(t *testing.T) {
	f := newFixture(t)
	foreignCompany, foreignClient, foreignProduct := seed(t, f.store, "tenant-b")
	ctx := context.Background()

	req := f.request()
	req.CompanyID = foreignCompany.ID
	_, err := f.invoices.Create(ctx, f.tenant, req)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	req = f.request()
	req.ClientID = foreignClient.ID
	_, err = f.invoices.Create(ctx, f.tenant, req)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	req = f.request(dto.InvoiceItemRequest{ProductID: foreignProduct.ID, Quantity: 1, Price: dec("1")})
	_, err = f.invoices.Create(ctx, f.tenant, req)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.Equal(t, int64(1), f.nextNumber(t))
}

func TestCreate_ProductoCopiaDatosDelCatalogo(t *testing.T) {
	f := newFixture(t)
	req := f.request(dto.InvoiceItemRequest{ProductID: f.product.ID, Quantity: 3, Price: dec("700000")})

	got, err := f.invoices.Create(context.Background(), f.tenant, req)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, f.product.ID, got.Items[0].ProductID)
	assert.Equal(t, "Desain Logo", got.Items[0].ProductName)
	assert.Equal(t, "Paket dasar", got.Items[0].Description)
	assert.True(t, dec("2100000").Equal(got.Items[0].Total))

	// cambios posteriores del catálogo no alteran la factura
	f.product.Name = "Renombrado"
	require.NoError(t, f.store.Products().Update(context.Background(), f.product))
	again, err := f.invoices.Get(context.Background(), f.tenant, got.ID)
	require.NoError(t, err)
	assert.Equal(t, "Desain Logo", again.Items[0].ProductName)
}

// failingItems hace fallar la inserción de ítems dentro de la transacción.
type failingItems struct {
	repository.InvoiceRepository
}

var errItems = errors.New("disco lleno")

func (failingItems) CreateItems(context.Context, []*entity.InvoiceItem) error { return errItems }

type failingRunner struct{ store *memory.Store }

func (r failingRunner) RunBilling(ctx context.Context, fn func(repository.InvoiceRepository, repository.InvoiceSettingsRepository) error) error {
	return r.store.RunBilling(ctx, func(inv repository.InvoiceRepository, set repository.InvoiceSettingsRepository) error {
		return fn(failingItems{inv}, set)
	})
}

func TestCreate_FalloParcialNoDejaRastro(t *testing.T) {
	f := newFixtureWithRunner(t, func(s *memory.Store) billing.BillingTxRunner { return failingRunner{store: s} })
	ctx := context.Background()

	_, err := f.invoices.Create(ctx, f.tenant, f.request())
	require.ErrorIs(t, err, errItems)

	n, err := f.store.Invoices().CountByTenant(ctx, f.tenant)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, int64(1), f.nextNumber(t), "el contador no avanza si la transacción falla")
	assert.Equal(t, 0, f.metrics.created)
}

func TestGet(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created, err := f.invoices.Create(ctx, f.tenant, f.request())
	require.NoError(t, err)

	got, err := f.invoices.Get(ctx, f.tenant, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.InvoiceNumber, got.InvoiceNumber)
	assert.Len(t, got.Items, 1)
	assert.NotNil(t, got.Client)
	assert.NotNil(t, got.Company)

	byNumber, err := f.invoices.GetByNumber(ctx, f.tenant, created.InvoiceNumber)
	require.NoError(t, err)
	assert.Equal(t, created.ID, byNumber.ID)

	_, err = f.invoices.Get(ctx, "tenant-b", created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.invoices.GetByNumber(ctx, "tenant-b", created.InvoiceNumber)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.invoices.ListItems(ctx, "tenant-b", created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.invoices.Get(ctx, f.tenant, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestList(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := f.invoices.Create(ctx, f.tenant, f.request())
		require.NoError(t, err)
	}

	page, err := f.invoices.List(ctx, f.tenant, dto.PageRequest{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, 3, page.Page.Total)
	for _, inv := range page.Items {
		assert.NotNil(t, inv.Client)
		assert.Len(t, inv.Items, 1)
	}

	other, err := f.invoices.List(ctx, "tenant-b", dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, other.Items)
	assert.Equal(t, 0, other.Page.Total)
}

func TestUpdate_ReemplazaItems(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created, err := f.invoices.Create(ctx, f.tenant, f.request(
		dto.InvoiceItemRequest{ProductName: "A", Quantity: 1, Price: dec("10")},
		dto.InvoiceItemRequest{ProductName: "B", Quantity: 1, Price: dec("20")},
		dto.InvoiceItemRequest{ProductName: "C", Quantity: 1, Price: dec("30")},
	))
	require.NoError(t, err)
	oldIDs := map[string]bool{}
	for _, it := range created.Items {
		oldIDs[it.ID] = true
	}
	counterBefore := f.nextNumber(t)

	got, err := f.invoices.Update(ctx, f.tenant, created.ID, dto.UpdateInvoiceRequest{
		Items: []dto.InvoiceItemRequest{{ProductName: "D", Quantity: 4, Price: dec("25")}},
	})
	require.NoError(t, err)

	assert.Equal(t, created.InvoiceNumber, got.InvoiceNumber)
	assert.True(t, dec("100").Equal(got.Subtotal))
	assert.True(t, dec("10").Equal(got.Tax))
	assert.True(t, dec("110").Equal(got.Total))

	items, err := f.invoices.ListItems(ctx, f.tenant, created.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "D", items[0].ProductName)
	assert.False(t, oldIDs[items[0].ID], "no debe sobrevivir ningún ítem anterior")

	assert.Equal(t, counterBefore, f.nextNumber(t), "actualizar no consume número")
	assert.Equal(t, 1, f.metrics.updated)
}

func TestUpdate_SoloCabecera(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created, err := f.invoices.Create(ctx, f.tenant, f.request())
	require.NoError(t, err)

	paid := entity.InvoiceStatusPaid
	notes := "  lunas  "
	tpl := entity.TemplateClassic
	got, err := f.invoices.Update(ctx, f.tenant, created.ID, dto.UpdateInvoiceRequest{Status: &paid, Notes: &notes, Template: &tpl})
	require.NoError(t, err)

	assert.Equal(t, entity.InvoiceStatusPaid, got.Status)
	assert.Equal(t, "lunas", got.Notes)
	assert.Equal(t, entity.TemplateClassic, got.Template)
	assert.Len(t, got.Items, 1)
	assert.True(t, created.Total.Equal(got.Total))

	again, err := f.invoices.Get(ctx, f.tenant, created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusPaid, again.Status)
	assert.Equal(t, created.Items[0].ID, again.Items[0].ID)
}

func TestUpdate_Errores(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created, err := f.invoices.Create(ctx, f.tenant, f.request())
	require.NoError(t, err)
	_, foreignClient, _ := seed(t, f.store, "tenant-b")

	_, err = f.invoices.Update(ctx, "tenant-b", created.ID, dto.UpdateInvoiceRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.invoices.Update(ctx, f.tenant, created.ID, dto.UpdateInvoiceRequest{Items: []dto.InvoiceItemRequest{}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	bad := "cancelled"
	_, err = f.invoices.Update(ctx, f.tenant, created.ID, dto.UpdateInvoiceRequest{Status: &bad})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.invoices.Update(ctx, f.tenant, created.ID, dto.UpdateInvoiceRequest{ClientID: &foreignClient.ID})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, err := f.invoices.Get(ctx, f.tenant, created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusPending, got.Status)
	assert.Equal(t, f.client.ID, got.ClientID)
}

func TestDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created, err := f.invoices.Create(ctx, f.tenant, f.request(
		dto.InvoiceItemRequest{ProductName: "A", Quantity: 1, Price: dec("10")},
		dto.InvoiceItemRequest{ProductName: "B", Quantity: 1, Price: dec("20")},
	))
	require.NoError(t, err)

	assert.ErrorIs(t, f.invoices.Delete(ctx, "tenant-b", created.ID), domain.ErrNotFound)
	_, err = f.invoices.Get(ctx, f.tenant, created.ID)
	require.NoError(t, err, "un tenant ajeno no puede borrar")

	require.NoError(t, f.invoices.Delete(ctx, f.tenant, created.ID))
	_, err = f.invoices.Get(ctx, f.tenant, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.invoices.ListItems(ctx, f.tenant, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, f.invoices.Delete(ctx, f.tenant, created.ID), domain.ErrNotFound)
	assert.Equal(t, 1, f.metrics.deleted)

	// sin facturas, el cliente y la empresa ya se pueden borrar
	require.NoError(t, f.store.Clients().Delete(ctx, f.client.ID, f.tenant))
}

// gatedRunner retiene la transacción hasta que se cierre release.
type gatedRunner struct {
	store   *memory.Store
	entered chan struct{}
	release chan struct{}
}

func (r *gatedRunner) RunBilling(ctx context.Context, fn func(repository.InvoiceRepository, repository.InvoiceSettingsRepository) error) error {
	close(r.entered)
	<-r.release
	return r.store.RunBilling(ctx, fn)
}

func TestUpdate_ConcurrenteConservaMontos(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created, err := f.invoices.Create(ctx, f.tenant, f.request())
	require.NoError(t, err)

	gate := &gatedRunner{store: f.store, entered: make(chan struct{}), release: make(chan struct{})}
	slow := billing.NewInvoiceUseCase(gate, f.store.Invoices(), f.store.Clients(), f.store.Companies(), f.store.Products(),
		billing.InvoiceConfig{Calculator: calculator()}, nil, logger.Nop())

	paid := entity.InvoiceStatusPaid
	done := make(chan error, 1)
	go func() {
		_, err := slow.Update(ctx, f.tenant, created.ID, dto.UpdateInvoiceRequest{Status: &paid})
		done <- err
	}()
	<-gate.entered

	_, err = f.invoices.Update(ctx, f.tenant, created.ID, dto.UpdateInvoiceRequest{
		Items: []dto.InvoiceItemRequest{{ProductName: "Servicio", Quantity: 5, Price: dec("100")}},
	})
	require.NoError(t, err)
	close(gate.release)
	require.NoError(t, <-done)

	got, err := f.invoices.Get(ctx, f.tenant, created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusPaid, got.Status)
	sum := decimal.Zero
	for _, it := range got.Items {
		sum = sum.Add(it.Total)
	}
	assert.True(t, sum.Equal(got.Subtotal), "subtotal %s, suma de líneas %s", got.Subtotal, sum)
	assert.True(t, dec("500").Equal(got.Subtotal))
	assert.True(t, dec("550").Equal(got.Total))
}

func TestCreate_PrecioConFraccionDeCentavo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.invoices.Create(ctx, f.tenant, f.request(
		dto.InvoiceItemRequest{ProductName: "Clip", Quantity: 1, Price: dec("0.005")},
		dto.InvoiceItemRequest{ProductName: "Clip", Quantity: 1, Price: dec("0.005")},
	))
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "items[0].price")
	assert.Contains(t, verr.Fields, "items[1].price")
	assert.Equal(t, int64(1), f.nextNumber(t))

	created, err := f.invoices.Create(ctx, f.tenant, f.request(
		dto.InvoiceItemRequest{ProductName: "Clip", Quantity: 3, Price: dec("0.010")},
	))
	require.NoError(t, err)
	assert.True(t, dec("0.03").Equal(created.Subtotal))

	_, err = f.invoices.Update(ctx, f.tenant, created.ID, dto.UpdateInvoiceRequest{
		Items: []dto.InvoiceItemRequest{{ProductName: "Clip", Quantity: 2, Price: dec("1.234")}},
	})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "items[0].price")
}
