package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Facturador-api/internal/domain/entity"
	"github.com/jhoicas/Facturador-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, tenant_id, company_id, name, COALESCE(description, ''), price,
	COALESCE(category, ''), unit, created_at, updated_at`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.TenantID, &p.CompanyID, &p.Name, &p.Description, &p.Price,
		&p.Category, &p.Unit, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (id, tenant_id, company_id, name, description, price, category, unit, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.TenantID, p.CompanyID, p.Name, nullIfEmpty(p.Description), p.Price,
		nullIfEmpty(p.Category), p.Unit, p.CreatedAt, p.UpdatedAt,
	)
	return mapWriteErr("insert product", err)
}

func (r *ProductRepo) GetByID(ctx context.Context, id, tenantID string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 AND tenant_id = $2`
	p, err := scanProduct(r.q.QueryRow(ctx, query, id, tenantID))
	if err != nil {
		return nil, mapReadErr("get product", err)
	}
	return p, nil
}

func (r *ProductRepo) ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + `
		FROM products WHERE tenant_id = $1
		ORDER BY name, id
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, mapReadErr("list products", err)
	}
	defer rows.Close()

	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, mapReadErr("scan product", err)
		}
		list = append(list, p)
	}
	return list, mapReadErr("iterate rows", rows.Err())
}

func (r *ProductRepo) CountByTenant(ctx context.Context, tenantID string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE tenant_id = $1`, tenantID).Scan(&n); err != nil {
		return 0, mapReadErr("count products", err)
	}
	return n, nil
}

func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products
		SET company_id = $3, name = $4, description = $5, price = $6, category = $7, unit = $8, updated_at = $9
		WHERE id = $1 AND tenant_id = $2`
	tag, err := r.q.Exec(ctx, query,
		p.ID, p.TenantID, p.CompanyID, p.Name, nullIfEmpty(p.Description), p.Price,
		nullIfEmpty(p.Category), p.Unit, p.UpdatedAt,
	)
	if err != nil {
		return mapWriteErr("update product", err)
	}
	return affectedOne(tag)
}

// Delete elimina el producto. Los ítems de factura conservan su copia del nombre y precio.
func (r *ProductRepo) Delete(ctx context.Context, id, tenantID string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1 AND tenant_id = $2`, id, tenantID)
	if err != nil {
		return mapWriteErr("delete product", err)
	}
	return affectedOne(tag)
}
