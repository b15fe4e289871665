package repository

import (
	"context"

	"github.com/jhoicas/Facturador-api/internal/domain/entity"
)

// CompanyRepository define el puerto de persistencia para Company.
// Todas las lecturas y escrituras por id se filtran por tenant: un id ajeno da ErrNotFound.
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id, tenantID string) (*entity.Company, error)
	ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]*entity.Company, error)
	CountByTenant(ctx context.Context, tenantID string) (int, error)
	Update(ctx context.Context, company *entity.Company) error
	// Delete devuelve ErrConflict si clientes, productos o facturas la referencian.
	Delete(ctx context.Context, id, tenantID string) error
}
