package repository

import (
	"context"

	"github.com/jhoicas/Facturador-api/internal/domain/entity"
)

// InvoiceSettingsRepository define el puerto de persistencia del contador por tenant.
type InvoiceSettingsRepository interface {
	// Get devuelve ErrNotFound si el tenant aún no tiene configuración.
	Get(ctx context.Context, tenantID string) (*entity.InvoiceSettings, error)
	Upsert(ctx context.Context, settings *entity.InvoiceSettings) error
	// ReserveNumber entrega el contador actual y lo avanza en una sola operación atómica.
	// Si el tenant no tiene configuración la crea con defaultPattern y contador 1.
	// Dentro de una transacción, un rollback devuelve el contador a su valor previo.
	ReserveNumber(ctx context.Context, tenantID, defaultPattern string) (pattern string, number int64, err error)
}
