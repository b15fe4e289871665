// Package storetest contiene la batería de contrato que todo backend de persistencia
// debe superar con el mismo comportamiento observable.
package storetest

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
	"github.com/jhoicas/Facturador-api/internal/domain"
	"github.com/jhoicas/Facturador-api/internal/domain/entity"
	"github.com/jhoicas/Facturador-api/internal/domain/repository"
)

// Backend repositorios bajo prueba. ItemCount cuenta las líneas que referencian una
// factura sin filtrar por tenant (acceso directo al almacenamiento).
type Backend struct {
	Companies repository.CompanyRepository
	Clients   repository.ClientRepository
	Products  repository.ProductRepository
	Invoices  repository.InvoiceRepository
	Settings  repository.InvoiceSettingsRepository
	Tx        billing.BillingTxRunner
	ItemCount func(t *testing.T, invoiceID string) int
}

// Run ejecuta la batería completa. Cada subtest usa tenants nuevos, por lo que el
// backend puede compartirse entre subtests.
func Run(t *testing.T, b Backend) {
	t.Run("Company", func(t *testing.T) { testCompany(t, b) })
	t.Run("Client", func(t *testing.T) { testClient(t, b) })
	t.Run("Product", func(t *testing.T) { testProduct(t, b) })
	t.Run("Invoice", func(t *testing.T) { testInvoice(t, b) })
	t.Run("InvoiceUpdate", func(t *testing.T) { testInvoiceUpdate(t, b) })
	t.Run("InvoiceDeleteCascade", func(t *testing.T) { testInvoiceDelete(t, b) })
	t.Run("InvoiceNumberUnique", func(t *testing.T) { testInvoiceNumberUnique(t, b) })
	t.Run("Summary", func(t *testing.T) { testSummary(t, b) })
	t.Run("Settings", func(t *testing.T) { testSettings(t, b) })
	t.Run("ReserveSequential", func(t *testing.T) { testReserveSequential(t, b) })
	t.Run("ReserveConcurrent", func(t *testing.T) { testReserveConcurrent(t, b) })
	t.Run("TxRollback", func(t *testing.T) { testTxRollback(t, b) })
	t.Run("ReferentialIntegrity", func(t *testing.T) { testReferential(t, b) })
	t.Run("MalformedID", func(t *testing.T) { testMalformedID(t, b) })
	t.Run("InvoiceLockedUpdate", func(t *testing.T) { testInvoiceLockedUpdate(t, b) })
}

func newTenant() string { return "tenant-" + uuid.NewString() }

func now() time.Time { return time.Now().UTC().Truncate(time.Microsecond) }

func day(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

func money(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func seedCompany(t *testing.T, b Backend, tenantID string) *entity.Company {
	t.Helper()
	ts := now()
	c := &entity.Company{
		ID: uuid.NewString(), TenantID: tenantID, Name: "Acme " + tenantID[:12],
		Email: "billing@acme.test", City: "Jakarta", Country: "ID", TaxID: "01.234.567.8-901.000",
		CreatedAt: ts, UpdatedAt: ts,
	}
	require.NoError(t, b.Companies.Create(context.Background(), c))
	return c
}

func seedClient(t *testing.T, b Backend, tenantID, companyID string) *entity.Client {
	t.Helper()
	ts := now()
	c := &entity.Client{
		ID: uuid.NewString(), TenantID: tenantID, CompanyID: companyID, Name: "Budi",
		Email: "budi@example.test", CreatedAt: ts, UpdatedAt: ts,
	}
	require.NoError(t, b.Clients.Create(context.Background(), c))
	return c
}

func seedProduct(t *testing.T, b Backend, tenantID, companyID string) *entity.Product {
	t.Helper()
	ts := now()
	p := &entity.Product{
		ID: uuid.NewString(), TenantID: tenantID, CompanyID: companyID, Name: "Consultoría",
		Price: money("150000.00"), Unit: entity.DefaultProductUnit, CreatedAt: ts, UpdatedAt: ts,
	}
	require.NoError(t, b.Products.Create(context.Background(), p))
	return p
}

func newInvoice(tenantID, number, clientID, companyID string) *entity.Invoice {
	ts := now()
	return &entity.Invoice{
		ID: uuid.NewString(), TenantID: tenantID, InvoiceNumber: number,
		ClientID: clientID, CompanyID: companyID,
		Subtotal: money("200.00"), Tax: money("20.00"), Total: money("220.00"),
		Status: entity.InvoiceStatusPending, IssueDate: day(2025, time.March, 7), DueDate: day(2025, time.April, 7),
		Template: entity.TemplateModern, CreatedAt: ts, UpdatedAt: ts,
	}
}

func newItems(invoiceID string, n int) []*entity.InvoiceItem {
	items := make([]*entity.InvoiceItem, n)
	for i := range items {
		items[i] = &entity.InvoiceItem{
			ID: uuid.NewString(), InvoiceID: invoiceID, ProductName: "Línea",
			Quantity: int64(i + 1), Price: money("100.00"),
			Total: money("100.00").Mul(decimal.NewFromInt(int64(i + 1))), Position: i,
		}
	}
	return items
}

// seedInvoice crea cabecera e ítems en una transacción.
func seedInvoice(t *testing.T, b Backend, inv *entity.Invoice, items []*entity.InvoiceItem) {
	t.Helper()
	err := b.Tx.RunBilling(context.Background(), func(invoices repository.InvoiceRepository, _ repository.InvoiceSettingsRepository) error {
		if err := invoices.Create(context.Background(), inv); err != nil {
			return err
		}
		return invoices.CreateItems(context.Background(), items)
	})
	require.NoError(t, err)
}

func testCompany(t *testing.T, b Backend) {
	ctx := context.Background()
	owner, intruder := newTenant(), newTenant()
	c := seedCompany(t, b, owner)

	got, err := b.Companies.GetByID(ctx, c.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, c.Name, got.Name)
	assert.Equal(t, c.TaxID, got.TaxID)
	assert.Equal(t, "", got.Phone)

	_, err = b.Companies.GetByID(ctx, c.ID, intruder)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = b.Companies.GetByID(ctx, uuid.NewString(), owner)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := b.Companies.ListByTenant(ctx, intruder, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, list)

	n, err := b.Companies.CountByTenant(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	hijack := *c
	hijack.TenantID = intruder
	hijack.Name = "robada"
	assert.ErrorIs(t, b.Companies.Update(ctx, &hijack), domain.ErrNotFound)
	assert.ErrorIs(t, b.Companies.Delete(ctx, c.ID, intruder), domain.ErrNotFound)

	c.Name = "Acme Renombrada"
	c.UpdatedAt = now()
	require.NoError(t, b.Companies.Update(ctx, c))
	got, err = b.Companies.GetByID(ctx, c.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, "Acme Renombrada", got.Name)

	require.NoError(t, b.Companies.Delete(ctx, c.ID, owner))
	_, err = b.Companies.GetByID(ctx, c.ID, owner)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func testClient(t *testing.T, b Backend) {
	ctx := context.Background()
	owner, intruder := newTenant(), newTenant()
	company := seedCompany(t, b, owner)
	c := seedClient(t, b, owner, company.ID)

	got, err := b.Clients.GetByID(ctx, c.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, company.ID, got.CompanyID)

	_, err = b.Clients.GetByID(ctx, c.ID, intruder)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	hijack := *c
	hijack.TenantID = intruder
	assert.ErrorIs(t, b.Clients.Update(ctx, &hijack), domain.ErrNotFound)
	assert.ErrorIs(t, b.Clients.Delete(ctx, c.ID, intruder), domain.ErrNotFound)

	orphan := &entity.Client{ID: uuid.NewString(), TenantID: owner, CompanyID: uuid.NewString(), Name: "X", CreatedAt: now(), UpdatedAt: now()}
	assert.ErrorIs(t, b.Clients.Create(ctx, orphan), domain.ErrConflict)

	for i := 0; i < 3; i++ {
		seedClient(t, b, owner, company.ID)
	}
	page1, err := b.Clients.ListByTenant(ctx, owner, 2, 0)
	require.NoError(t, err)
	assert.Len(t, page1, 2)
	page2, err := b.Clients.ListByTenant(ctx, owner, 2, 2)
	require.NoError(t, err)
	assert.Len(t, page2, 2)
	n, err := b.Clients.CountByTenant(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func testProduct(t *testing.T, b Backend) {
	ctx := context.Background()
	owner, intruder := newTenant(), newTenant()
	company := seedCompany(t, b, owner)
	p := seedProduct(t, b, owner, company.ID)

	got, err := b.Products.GetByID(ctx, p.ID, owner)
	require.NoError(t, err)
	assert.True(t, p.Price.Equal(got.Price))
	assert.Equal(t, entity.DefaultProductUnit, got.Unit)

	_, err = b.Products.GetByID(ctx, p.ID, intruder)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, b.Products.Delete(ctx, p.ID, intruder), domain.ErrNotFound)

	p.Price = money("175000.50")
	p.UpdatedAt = now()
	require.NoError(t, b.Products.Update(ctx, p))
	got, err = b.Products.GetByID(ctx, p.ID, owner)
	require.NoError(t, err)
	assert.True(t, money("175000.50").Equal(got.Price))

	require.NoError(t, b.Products.Delete(ctx, p.ID, owner))
	assert.ErrorIs(t, b.Products.Delete(ctx, p.ID, owner), domain.ErrNotFound)
}

func testInvoice(t *testing.T, b Backend) {
	ctx := context.Background()
	owner, intruder := newTenant(), newTenant()
	company := seedCompany(t, b, owner)
	client := seedClient(t, b, owner, company.ID)

	inv := newInvoice(owner, "INV250307-001", client.ID, company.ID)
	items := newItems(inv.ID, 3)
	seedInvoice(t, b, inv, items)

	got, err := b.Invoices.GetByID(ctx, inv.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, "INV250307-001", got.InvoiceNumber)
	assert.True(t, money("220.00").Equal(got.Total))
	assert.True(t, day(2025, time.March, 7).Equal(got.IssueDate))
	assert.Equal(t, entity.InvoiceStatusPending, got.Status)

	byNumber, err := b.Invoices.GetByNumber(ctx, owner, "INV250307-001")
	require.NoError(t, err)
	assert.Equal(t, inv.ID, byNumber.ID)
	_, err = b.Invoices.GetByNumber(ctx, intruder, "INV250307-001")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = b.Invoices.GetByID(ctx, inv.ID, intruder)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = b.Invoices.ListItems(ctx, inv.ID, intruder)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	gotItems, err := b.Invoices.ListItems(ctx, inv.ID, owner)
	require.NoError(t, err)
	require.Len(t, gotItems, 3)
	for i, it := range gotItems {
		assert.Equal(t, i, it.Position)
		assert.Equal(t, int64(i+1), it.Quantity)
		assert.Equal(t, "", it.ProductID)
	}

	list, err := b.Invoices.ListByTenant(ctx, owner, 10, 0)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	list, err = b.Invoices.ListByTenant(ctx, intruder, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func testInvoiceUpdate(t *testing.T, b Backend) {
	ctx := context.Background()
	owner, intruder := newTenant(), newTenant()
	company := seedCompany(t, b, owner)
	client := seedClient(t, b, owner, company.ID)
	inv := newInvoice(owner, "A-001", client.ID, company.ID)
	seedInvoice(t, b, inv, newItems(inv.ID, 2))

	hijack := *inv
	hijack.TenantID = intruder
	assert.ErrorIs(t, b.Invoices.Update(ctx, &hijack), domain.ErrNotFound)
	assert.ErrorIs(t, b.Invoices.DeleteItems(ctx, inv.ID, intruder), domain.ErrNotFound)

	replacement := newItems(inv.ID, 1)
	upd := *inv
	upd.InvoiceNumber = "NO-DEBE-CAMBIAR"
	upd.Status = entity.InvoiceStatusPaid
	upd.Total = money("110.00")
	upd.UpdatedAt = now()
	err := b.Tx.RunBilling(ctx, func(invoices repository.InvoiceRepository, _ repository.InvoiceSettingsRepository) error {
		if err := invoices.DeleteItems(ctx, inv.ID, owner); err != nil {
			return err
		}
		if err := invoices.CreateItems(ctx, replacement); err != nil {
			return err
		}
		return invoices.Update(ctx, &upd)
	})
	require.NoError(t, err)

	got, err := b.Invoices.GetByID(ctx, inv.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, "A-001", got.InvoiceNumber)
	assert.Equal(t, entity.InvoiceStatusPaid, got.Status)
	assert.True(t, money("110.00").Equal(got.Total))

	items, err := b.Invoices.ListItems(ctx, inv.ID, owner)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, replacement[0].ID, items[0].ID)
	assert.Equal(t, 1, b.ItemCount(t, inv.ID))
}

func testInvoiceDelete(t *testing.T, b Backend) {
	ctx := context.Background()
	owner, intruder := newTenant(), newTenant()
	company := seedCompany(t, b, owner)
	client := seedClient(t, b, owner, company.ID)
	inv := newInvoice(owner, "D-001", client.ID, company.ID)
	seedInvoice(t, b, inv, newItems(inv.ID, 4))
	require.Equal(t, 4, b.ItemCount(t, inv.ID))

	err := b.Tx.RunBilling(ctx, func(invoices repository.InvoiceRepository, _ repository.InvoiceSettingsRepository) error {
		return invoices.Delete(ctx, inv.ID, intruder)
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 4, b.ItemCount(t, inv.ID))

	err = b.Tx.RunBilling(ctx, func(invoices repository.InvoiceRepository, _ repository.InvoiceSettingsRepository) error {
		return invoices.Delete(ctx, inv.ID, owner)
	})
	require.NoError(t, err)

	_, err = b.Invoices.GetByID(ctx, inv.ID, owner)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 0, b.ItemCount(t, inv.ID))
}

func testInvoiceNumberUnique(t *testing.T, b Backend) {
	ctx := context.Background()
	t1, t2 := newTenant(), newTenant()
	c1 := seedCompany(t, b, t1)
	cl1 := seedClient(t, b, t1, c1.ID)
	c2 := seedCompany(t, b, t2)
	cl2 := seedClient(t, b, t2, c2.ID)

	seedInvoice(t, b, newInvoice(t1, "SAME-001", cl1.ID, c1.ID), nil)
	// el mismo número en otro tenant es válido
	seedInvoice(t, b, newInvoice(t2, "SAME-001", cl2.ID, c2.ID), nil)

	dup := newInvoice(t1, "SAME-001", cl1.ID, c1.ID)
	err := b.Tx.RunBilling(ctx, func(invoices repository.InvoiceRepository, _ repository.InvoiceSettingsRepository) error {
		return invoices.Create(ctx, dup)
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	n, err := b.Invoices.CountByTenant(ctx, t1)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func testSummary(t *testing.T, b Backend) {
	ctx := context.Background()
	owner := newTenant()
	company := seedCompany(t, b, owner)
	client := seedClient(t, b, owner, company.ID)

	paid := newInvoice(owner, "S-001", client.ID, company.ID)
	paid.Status = entity.InvoiceStatusPaid
	seedInvoice(t, b, paid, nil)
	paid2 := newInvoice(owner, "S-002", client.ID, company.ID)
	paid2.Status = entity.InvoiceStatusPaid
	seedInvoice(t, b, paid2, nil)
	seedInvoice(t, b, newInvoice(owner, "S-003", client.ID, company.ID), nil)

	summary, err := b.Invoices.SummarizeByStatus(ctx, owner)
	require.NoError(t, err)
	require.Len(t, summary, 2)
	assert.Equal(t, entity.InvoiceStatusPaid, summary[0].Status)
	assert.Equal(t, 2, summary[0].Count)
	assert.True(t, money("440.00").Equal(summary[0].Total))
	assert.Equal(t, entity.InvoiceStatusPending, summary[1].Status)
	assert.Equal(t, 1, summary[1].Count)

	empty, err := b.Invoices.SummarizeByStatus(ctx, newTenant())
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func testSettings(t *testing.T, b Backend) {
	ctx := context.Background()
	owner := newTenant()

	_, err := b.Settings.Get(ctx, owner)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	s := &entity.InvoiceSettings{TenantID: owner, InvoicePattern: "FAC-{YYYY}-{#}", NextNumber: 50, CreatedAt: now(), UpdatedAt: now()}
	require.NoError(t, b.Settings.Upsert(ctx, s))
	firstID := s.ID
	require.NotEmpty(t, firstID)

	s2 := &entity.InvoiceSettings{TenantID: owner, InvoicePattern: "X{###}", NextNumber: 7, CreatedAt: now(), UpdatedAt: now()}
	require.NoError(t, b.Settings.Upsert(ctx, s2))
	assert.Equal(t, firstID, s2.ID)

	got, err := b.Settings.Get(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, "X{###}", got.InvoicePattern)
	assert.Equal(t, int64(7), got.NextNumber)

	pattern, n, err := b.Settings.ReserveNumber(ctx, owner, "IGNORADO{#}")
	require.NoError(t, err)
	assert.Equal(t, "X{###}", pattern)
	assert.Equal(t, int64(7), n)
}

func testReserveSequential(t *testing.T, b Backend) {
	ctx := context.Background()
	owner := newTenant()

	for want := int64(1); want <= 5; want++ {
		pattern, n, err := b.Settings.ReserveNumber(ctx, owner, "INV{YY}{MM}{DD}-{###}")
		require.NoError(t, err)
		assert.Equal(t, "INV{YY}{MM}{DD}-{###}", pattern)
		assert.Equal(t, want, n)
	}
	got, err := b.Settings.Get(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, int64(6), got.NextNumber)
}

func testReserveConcurrent(t *testing.T, b Backend) {
	ctx := context.Background()
	owner := newTenant()
	const workers = 20

	var (
		mu   sync.Mutex
		seen = make(map[int64]bool)
		wg   sync.WaitGroup
	)
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := b.Tx.RunBilling(ctx, func(_ repository.InvoiceRepository, settings repository.InvoiceSettingsRepository) error {
				_, n, err := settings.ReserveNumber(ctx, owner, "{#}")
				if err != nil {
					return err
				}
				mu.Lock()
				defer mu.Unlock()
				if seen[n] {
					return errors.New("contador entregado dos veces")
				}
				seen[n] = true
				return nil
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	assert.Len(t, seen, workers)
	for n := int64(1); n <= workers; n++ {
		assert.True(t, seen[n], "falta el contador %d", n)
	}
}

func testTxRollback(t *testing.T, b Backend) {
	ctx := context.Background()
	owner := newTenant()
	company := seedCompany(t, b, owner)
	client := seedClient(t, b, owner, company.ID)
	boom := errors.New("fallo simulado")

	inv := newInvoice(owner, "R-001", client.ID, company.ID)
	err := b.Tx.RunBilling(ctx, func(invoices repository.InvoiceRepository, settings repository.InvoiceSettingsRepository) error {
		if _, _, err := settings.ReserveNumber(ctx, owner, "{#}"); err != nil {
			return err
		}
		if err := invoices.Create(ctx, inv); err != nil {
			return err
		}
		if err := invoices.CreateItems(ctx, newItems(inv.ID, 2)); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = b.Invoices.GetByID(ctx, inv.ID, owner)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 0, b.ItemCount(t, inv.ID))
	_, err = b.Settings.Get(ctx, owner)
	assert.ErrorIs(t, err, domain.ErrNotFound, "el contador no debe avanzar tras un rollback")

	_, n, err := b.Settings.ReserveNumber(ctx, owner, "{#}")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func testReferential(t *testing.T, b Backend) {
	ctx := context.Background()
	owner := newTenant()
	company := seedCompany(t, b, owner)
	client := seedClient(t, b, owner, company.ID)
	inv := newInvoice(owner, "F-001", client.ID, company.ID)
	seedInvoice(t, b, inv, newItems(inv.ID, 1))

	assert.ErrorIs(t, b.Companies.Delete(ctx, company.ID, owner), domain.ErrConflict)
	assert.ErrorIs(t, b.Clients.Delete(ctx, client.ID, owner), domain.ErrConflict)

	orphan := newInvoice(owner, "F-002", uuid.NewString(), company.ID)
	err := b.Tx.RunBilling(ctx, func(invoices repository.InvoiceRepository, _ repository.InvoiceSettingsRepository) error {
		return invoices.Create(ctx, orphan)
	})
	assert.ErrorIs(t, err, domain.ErrConflict)

	err = b.Tx.RunBilling(ctx, func(invoices repository.InvoiceRepository, _ repository.InvoiceSettingsRepository) error {
		return invoices.Delete(ctx, inv.ID, owner)
	})
	require.NoError(t, err)
	require.NoError(t, b.Clients.Delete(ctx, client.ID, owner))
	require.NoError(t, b.Companies.Delete(ctx, company.ID, owner))
}

func testMalformedID(t *testing.T, b Backend) {
	ctx := context.Background()
	owner := newTenant()
	const bad = "not-a-uuid"

	_, err := b.Companies.GetByID(ctx, bad, owner)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = b.Clients.GetByID(ctx, bad, owner)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = b.Products.GetByID(ctx, bad, owner)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = b.Invoices.GetByID(ctx, bad, owner)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = b.Invoices.ListItems(ctx, bad, owner)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, b.Companies.Update(ctx, &entity.Company{ID: bad, TenantID: owner, Name: "x"}), domain.ErrNotFound)
	assert.ErrorIs(t, b.Companies.Delete(ctx, bad, owner), domain.ErrNotFound)
	assert.ErrorIs(t, b.Clients.Delete(ctx, bad, owner), domain.ErrNotFound)
	assert.ErrorIs(t, b.Products.Delete(ctx, bad, owner), domain.ErrNotFound)

	err = b.Tx.RunBilling(ctx, func(invoices repository.InvoiceRepository, _ repository.InvoiceSettingsRepository) error {
		_, err := invoices.GetForUpdate(ctx, bad, owner)
		return err
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	err = b.Tx.RunBilling(ctx, func(invoices repository.InvoiceRepository, _ repository.InvoiceSettingsRepository) error {
		return invoices.Delete(ctx, bad, owner)
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// testInvoiceLockedUpdate: lecturas con GetForUpdate dentro de la tx no pierden escrituras concurrentes.
func testInvoiceLockedUpdate(t *testing.T, b Backend) {
	ctx := context.Background()
	owner, intruder := newTenant(), newTenant()
	company := seedCompany(t, b, owner)
	client := seedClient(t, b, owner, company.ID)
	inv := newInvoice(owner, "L-001", client.ID, company.ID)
	seedInvoice(t, b, inv, newItems(inv.ID, 1))

	_, err := b.Invoices.GetForUpdate(ctx, inv.ID, intruder)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	const workers = 10
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- b.Tx.RunBilling(ctx, func(invoices repository.InvoiceRepository, _ repository.InvoiceSettingsRepository) error {
				cur, err := invoices.GetForUpdate(ctx, inv.ID, owner)
				if err != nil {
					return err
				}
				cur.Notes += "x"
				cur.UpdatedAt = now()
				return invoices.Update(ctx, cur)
			})
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	got, err := b.Invoices.GetByID(ctx, inv.ID, owner)
	require.NoError(t, err)
	assert.Len(t, got.Notes, workers, "ninguna actualización se pierde")
}
