package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Facturador-api/internal/domain/entity"
	"github.com/jhoicas/Facturador-api/internal/domain/repository"
)

var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo implementación de CompanyRepository (usable con pool o tx).
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

const companyColumns = `id, tenant_id, name, COALESCE(email, ''), COALESCE(phone, ''), COALESCE(address, ''),
	COALESCE(city, ''), COALESCE(country, ''), COALESCE(website, ''), COALESCE(tax_id, ''),
	COALESCE(logo_url, ''), created_at, updated_at`

func scanCompany(row pgx.Row) (*entity.Company, error) {
	var c entity.Company
	err := row.Scan(&c.ID, &c.TenantID, &c.Name, &c.Email, &c.Phone, &c.Address,
		&c.City, &c.Country, &c.Website, &c.TaxID, &c.LogoURL, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create persiste una nueva empresa.
func (r *CompanyRepo) Create(ctx context.Context, c *entity.Company) error {
	query := `
		INSERT INTO companies (id, tenant_id, name, email, phone, address, city, country, website, tax_id, logo_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.TenantID, c.Name, nullIfEmpty(c.Email), nullIfEmpty(c.Phone), nullIfEmpty(c.Address),
		nullIfEmpty(c.City), nullIfEmpty(c.Country), nullIfEmpty(c.Website), nullIfEmpty(c.TaxID),
		nullIfEmpty(c.LogoURL), c.CreatedAt, c.UpdatedAt,
	)
	return mapWriteErr("insert company", err)
}

// GetByID obtiene una empresa del tenant.
func (r *CompanyRepo) GetByID(ctx context.Context, id, tenantID string) (*entity.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE id = $1 AND tenant_id = $2`
	c, err := scanCompany(r.q.QueryRow(ctx, query, id, tenantID))
	if err != nil {
		return nil, mapReadErr("get company", err)
	}
	return c, nil
}

// ListByTenant lista empresas del tenant ordenadas por nombre.
func (r *CompanyRepo) ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]*entity.Company, error) {
	query := `SELECT ` + companyColumns + `
		FROM companies WHERE tenant_id = $1
		ORDER BY name, id
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, mapReadErr("list companies", err)
	}
	defer rows.Close()

	var list []*entity.Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, mapReadErr("scan company", err)
		}
		list = append(list, c)
	}
	return list, mapReadErr("iterate rows", rows.Err())
}

func (r *CompanyRepo) CountByTenant(ctx context.Context, tenantID string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM companies WHERE tenant_id = $1`, tenantID).Scan(&n); err != nil {
		return 0, mapReadErr("count companies", err)
	}
	return n, nil
}

// Update actualiza los datos de la empresa; ErrNotFound si no pertenece al tenant.
func (r *CompanyRepo) Update(ctx context.Context, c *entity.Company) error {
	query := `
		UPDATE companies
		SET name = $3, email = $4, phone = $5, address = $6, city = $7, country = $8,
		    website = $9, tax_id = $10, logo_url = $11, updated_at = $12
		WHERE id = $1 AND tenant_id = $2`
	tag, err := r.q.Exec(ctx, query,
		c.ID, c.TenantID, c.Name, nullIfEmpty(c.Email), nullIfEmpty(c.Phone), nullIfEmpty(c.Address),
		nullIfEmpty(c.City), nullIfEmpty(c.Country), nullIfEmpty(c.Website), nullIfEmpty(c.TaxID),
		nullIfEmpty(c.LogoURL), c.UpdatedAt,
	)
	if err != nil {
		return mapWriteErr("update company", err)
	}
	return affectedOne(tag)
}

// Delete elimina la empresa. Las FK de clientes, productos y facturas la protegen (ErrConflict).
func (r *CompanyRepo) Delete(ctx context.Context, id, tenantID string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM companies WHERE id = $1 AND tenant_id = $2`, id, tenantID)
	if err != nil {
		return mapWriteErr("delete company", err)
	}
	return affectedOne(tag)
}
