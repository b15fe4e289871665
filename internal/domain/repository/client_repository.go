package repository

import (
	"context"

	"github.com/jhoicas/Facturador-api/internal/domain/entity"
)

// ClientRepository define el puerto de persistencia para Client.
type ClientRepository interface {
	// Create devuelve ErrConflict si la empresa referenciada no existe.
	Create(ctx context.Context, client *entity.Client) error
	GetByID(ctx context.Context, id, tenantID string) (*entity.Client, error)
	ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]*entity.Client, error)
	CountByTenant(ctx context.Context, tenantID string) (int, error)
	Update(ctx context.Context, client *entity.Client) error
	// Delete devuelve ErrConflict si alguna factura lo referencia.
	Delete(ctx context.Context, id, tenantID string) error
}
