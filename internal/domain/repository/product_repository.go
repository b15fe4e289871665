package repository

import (
	"context"

	"github.com/jhoicas/Facturador-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id, tenantID string) (*entity.Product, error)
	ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]*entity.Product, error)
	CountByTenant(ctx context.Context, tenantID string) (int, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id, tenantID string) error
}
