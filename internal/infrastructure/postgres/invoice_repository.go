package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Facturador-api/internal/domain"
	"github.com/jhoicas/Facturador-api/internal/domain/entity"
	"github.com/jhoicas/Facturador-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
// Delete y el reemplazo de ítems emiten varias sentencias: usar con la tx de TxRunner.
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `id, tenant_id, invoice_number, client_id, company_id, subtotal, tax, total,
	status, issue_date, due_date, COALESCE(notes, ''), template, created_at, updated_at`

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var i entity.Invoice
	err := row.Scan(&i.ID, &i.TenantID, &i.InvoiceNumber, &i.ClientID, &i.CompanyID,
		&i.Subtotal, &i.Tax, &i.Total, &i.Status, &i.IssueDate, &i.DueDate, &i.Notes,
		&i.Template, &i.CreatedAt, &i.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

// Create persiste la cabecera de la factura.
func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	if inv.ID == "" {
		inv.ID = uuid.New().String()
	}
	query := `
		INSERT INTO invoices (id, tenant_id, invoice_number, client_id, company_id, subtotal, tax, total,
		                      status, issue_date, due_date, notes, template, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		inv.ID, inv.TenantID, inv.InvoiceNumber, inv.ClientID, inv.CompanyID,
		inv.Subtotal, inv.Tax, inv.Total, inv.Status, inv.IssueDate, inv.DueDate,
		nullIfEmpty(inv.Notes), inv.Template, inv.CreatedAt, inv.UpdatedAt,
	)
	return mapWriteErr("insert invoice", err)
}

// CreateItems persiste las líneas en un único batch.
func (r *InvoiceRepo) CreateItems(ctx context.Context, items []*entity.InvoiceItem) error {
	if len(items) == 0 {
		return nil
	}
	query := `
		INSERT INTO invoice_items (id, invoice_id, product_id, product_name, description, quantity, price, total, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	batch := &pgx.Batch{}
	for _, it := range items {
		if it.ID == "" {
			it.ID = uuid.New().String()
		}
		batch.Queue(query, it.ID, it.InvoiceID, nullIfEmpty(it.ProductID), it.ProductName,
			nullIfEmpty(it.Description), it.Quantity, it.Price, it.Total, it.Position)
	}

	br := r.q.SendBatch(ctx, batch)
	defer br.Close()
	for range items {
		if _, err := br.Exec(); err != nil {
			return mapWriteErr("insert invoice item", err)
		}
	}
	return nil
}

// GetByID obtiene la cabecera de una factura del tenant.
func (r *InvoiceRepo) GetByID(ctx context.Context, id, tenantID string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1 AND tenant_id = $2`
	inv, err := scanInvoice(r.q.QueryRow(ctx, query, id, tenantID))
	if err != nil {
		return nil, mapReadErr("get invoice", err)
	}
	return inv, nil
}

// GetForUpdate obtiene la cabecera con SELECT ... FOR UPDATE. Dentro de la tx de TxRunner
// bloquea la fila hasta el commit, serializando las modificaciones de la misma factura.
func (r *InvoiceRepo) GetForUpdate(ctx context.Context, id, tenantID string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1 AND tenant_id = $2 FOR UPDATE`
	inv, err := scanInvoice(r.q.QueryRow(ctx, query, id, tenantID))
	if err != nil {
		return nil, mapReadErr("lock invoice", err)
	}
	return inv, nil
}

// GetByNumber obtiene una factura por su número dentro del tenant.
func (r *InvoiceRepo) GetByNumber(ctx context.Context, tenantID, number string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE tenant_id = $1 AND invoice_number = $2`
	inv, err := scanInvoice(r.q.QueryRow(ctx, query, tenantID, number))
	if err != nil {
		return nil, mapReadErr("get invoice by number", err)
	}
	return inv, nil
}

// ListByTenant lista facturas del tenant, las más recientes primero.
func (r *InvoiceRepo) ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + `
		FROM invoices WHERE tenant_id = $1
		ORDER BY created_at DESC, invoice_number DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, mapReadErr("list invoices", err)
	}
	defer rows.Close()

	var list []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, mapReadErr("scan invoice", err)
		}
		list = append(list, inv)
	}
	return list, mapReadErr("iterate rows", rows.Err())
}

func (r *InvoiceRepo) CountByTenant(ctx context.Context, tenantID string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM invoices WHERE tenant_id = $1`, tenantID).Scan(&n); err != nil {
		return 0, mapReadErr("count invoices", err)
	}
	return n, nil
}

func (r *InvoiceRepo) owned(ctx context.Context, invoiceID, tenantID string) error {
	var ok bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM invoices WHERE id = $1 AND tenant_id = $2)`, invoiceID, tenantID,
	).Scan(&ok)
	if err != nil {
		return mapReadErr("check invoice owner", err)
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

// ListItems obtiene las líneas de una factura del tenant en orden de posición.
func (r *InvoiceRepo) ListItems(ctx context.Context, invoiceID, tenantID string) ([]*entity.InvoiceItem, error) {
	if err := r.owned(ctx, invoiceID, tenantID); err != nil {
		return nil, err
	}
	query := `
		SELECT id, invoice_id, COALESCE(product_id::text, ''), product_name, COALESCE(description, ''),
		       quantity, price, total, position
		FROM invoice_items WHERE invoice_id = $1
		ORDER BY position, id`
	rows, err := r.q.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, mapReadErr("list invoice items", err)
	}
	defer rows.Close()

	var list []*entity.InvoiceItem
	for rows.Next() {
		var it entity.InvoiceItem
		if err := rows.Scan(&it.ID, &it.InvoiceID, &it.ProductID, &it.ProductName, &it.Description,
			&it.Quantity, &it.Price, &it.Total, &it.Position); err != nil {
			return nil, mapReadErr("scan invoice item", err)
		}
		list = append(list, &it)
	}
	return list, mapReadErr("iterate rows", rows.Err())
}

// Update persiste la cabecera. invoice_number y company_id no se tocan.
func (r *InvoiceRepo) Update(ctx context.Context, inv *entity.Invoice) error {
	query := `
		UPDATE invoices
		SET client_id = $3, subtotal = $4, tax = $5, total = $6, status = $7,
		    issue_date = $8, due_date = $9, notes = $10, template = $11, updated_at = $12
		WHERE id = $1 AND tenant_id = $2`
	tag, err := r.q.Exec(ctx, query,
		inv.ID, inv.TenantID, inv.ClientID, inv.Subtotal, inv.Tax, inv.Total, inv.Status,
		inv.IssueDate, inv.DueDate, nullIfEmpty(inv.Notes), inv.Template, inv.UpdatedAt,
	)
	if err != nil {
		return mapWriteErr("update invoice", err)
	}
	return affectedOne(tag)
}

// DeleteItems elimina todas las líneas de una factura del tenant.
func (r *InvoiceRepo) DeleteItems(ctx context.Context, invoiceID, tenantID string) error {
	if err := r.owned(ctx, invoiceID, tenantID); err != nil {
		return err
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM invoice_items WHERE invoice_id = $1`, invoiceID); err != nil {
		return mapWriteErr("delete invoice items", err)
	}
	return nil
}

// Delete elimina primero los ítems y luego la cabecera.
func (r *InvoiceRepo) Delete(ctx context.Context, id, tenantID string) error {
	if err := r.DeleteItems(ctx, id, tenantID); err != nil {
		return err
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM invoices WHERE id = $1 AND tenant_id = $2`, id, tenantID)
	if err != nil {
		return mapWriteErr("delete invoice", err)
	}
	return affectedOne(tag)
}

// SummarizeByStatus cuenta y suma facturas del tenant agrupadas por estado.
func (r *InvoiceRepo) SummarizeByStatus(ctx context.Context, tenantID string) ([]repository.StatusSummary, error) {
	query := `
		SELECT status, COUNT(*), COALESCE(SUM(total), 0)
		FROM invoices WHERE tenant_id = $1
		GROUP BY status
		ORDER BY status`
	rows, err := r.q.Query(ctx, query, tenantID)
	if err != nil {
		return nil, mapReadErr("summarize invoices", err)
	}
	defer rows.Close()

	var out []repository.StatusSummary
	for rows.Next() {
		var s repository.StatusSummary
		if err := rows.Scan(&s.Status, &s.Count, &s.Total); err != nil {
			return nil, mapReadErr("scan invoice summary", err)
		}
		out = append(out, s)
	}
	return out, mapReadErr("iterate rows", rows.Err())
}
