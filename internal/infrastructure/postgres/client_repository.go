package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Facturador-api/internal/domain/entity"
	"github.com/jhoicas/Facturador-api/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo implementación de ClientRepository (usable con pool o tx).
type ClientRepo struct {
	q Querier
}

// NewClientRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

const clientColumns = `id, tenant_id, company_id, name, COALESCE(email, ''), COALESCE(phone, ''),
	COALESCE(address, ''), COALESCE(city, ''), COALESCE(country, ''), created_at, updated_at`

func scanClient(row pgx.Row) (*entity.Client, error) {
	var c entity.Client
	err := row.Scan(&c.ID, &c.TenantID, &c.CompanyID, &c.Name, &c.Email, &c.Phone,
		&c.Address, &c.City, &c.Country, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create persiste un nuevo cliente.
func (r *ClientRepo) Create(ctx context.Context, c *entity.Client) error {
	query := `
		INSERT INTO clients (id, tenant_id, company_id, name, email, phone, address, city, country, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.TenantID, c.CompanyID, c.Name, nullIfEmpty(c.Email), nullIfEmpty(c.Phone),
		nullIfEmpty(c.Address), nullIfEmpty(c.City), nullIfEmpty(c.Country), c.CreatedAt, c.UpdatedAt,
	)
	return mapWriteErr("insert client", err)
}

func (r *ClientRepo) GetByID(ctx context.Context, id, tenantID string) (*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1 AND tenant_id = $2`
	c, err := scanClient(r.q.QueryRow(ctx, query, id, tenantID))
	if err != nil {
		return nil, mapReadErr("get client", err)
	}
	return c, nil
}

// ListByTenant lista clientes del tenant con paginación.
func (r *ClientRepo) ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]*entity.Client, error) {
	query := `SELECT ` + clientColumns + `
		FROM clients WHERE tenant_id = $1
		ORDER BY name, id
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, mapReadErr("list clients", err)
	}
	defer rows.Close()

	var list []*entity.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, mapReadErr("scan client", err)
		}
		list = append(list, c)
	}
	return list, mapReadErr("iterate rows", rows.Err())
}

func (r *ClientRepo) CountByTenant(ctx context.Context, tenantID string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM clients WHERE tenant_id = $1`, tenantID).Scan(&n); err != nil {
		return 0, mapReadErr("count clients", err)
	}
	return n, nil
}

func (r *ClientRepo) Update(ctx context.Context, c *entity.Client) error {
	query := `
		UPDATE clients
		SET company_id = $3, name = $4, email = $5, phone = $6, address = $7, city = $8, country = $9, updated_at = $10
		WHERE id = $1 AND tenant_id = $2`
	tag, err := r.q.Exec(ctx, query,
		c.ID, c.TenantID, c.CompanyID, c.Name, nullIfEmpty(c.Email), nullIfEmpty(c.Phone),
		nullIfEmpty(c.Address), nullIfEmpty(c.City), nullIfEmpty(c.Country), c.UpdatedAt,
	)
	if err != nil {
		return mapWriteErr("update client", err)
	}
	return affectedOne(tag)
}

// Delete elimina el cliente; ErrConflict si tiene facturas.
func (r *ClientRepo) Delete(ctx context.Context, id, tenantID string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM clients WHERE id = $1 AND tenant_id = $2`, id, tenantID)
	if err != nil {
		return mapWriteErr("delete client", err)
	}
	return affectedOne(tag)
}
