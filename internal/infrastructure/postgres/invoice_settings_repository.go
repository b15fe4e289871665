package postgres

import (
	"context"

	"github.com/google/uuid"

	"github.com/jhoicas/Facturador-api/internal/domain/entity"
	"github.com/jhoicas/Facturador-api/internal/domain/repository"
)

var _ repository.InvoiceSettingsRepository = (*InvoiceSettingsRepo)(nil)

// InvoiceSettingsRepo implementación de InvoiceSettingsRepository (usable con pool o tx).
type InvoiceSettingsRepo struct {
	q Querier
}

// NewInvoiceSettingsRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceSettingsRepository(q Querier) *InvoiceSettingsRepo {
	return &InvoiceSettingsRepo{q: q}
}

func (r *InvoiceSettingsRepo) Get(ctx context.Context, tenantID string) (*entity.InvoiceSettings, error) {
	query := `
		SELECT id, tenant_id, invoice_pattern, next_number, created_at, updated_at
		FROM invoice_settings WHERE tenant_id = $1`
	var s entity.InvoiceSettings
	err := r.q.QueryRow(ctx, query, tenantID).Scan(
		&s.ID, &s.TenantID, &s.InvoicePattern, &s.NextNumber, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, mapReadErr("get invoice settings", err)
	}
	return &s, nil
}

// Upsert crea o reemplaza el patrón y el contador del tenant. Completa ID y CreatedAt.
func (r *InvoiceSettingsRepo) Upsert(ctx context.Context, s *entity.InvoiceSettings) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	query := `
		INSERT INTO invoice_settings (id, tenant_id, invoice_pattern, next_number, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (tenant_id) DO UPDATE
		SET invoice_pattern = EXCLUDED.invoice_pattern,
		    next_number     = EXCLUDED.next_number,
		    updated_at      = EXCLUDED.updated_at
		RETURNING id, created_at`
	err := r.q.QueryRow(ctx, query,
		s.ID, s.TenantID, s.InvoicePattern, s.NextNumber, s.CreatedAt, s.UpdatedAt,
	).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		return mapWriteErr("upsert invoice settings", err)
	}
	return nil
}

// ReserveNumber lee y avanza el contador en una sola sentencia. El lock de fila que toma
// el UPDATE serializa las reservas concurrentes del mismo tenant hasta el fin de la tx.
// Primera reserva: inserta la fila con next_number = 2 y devuelve 1.
func (r *InvoiceSettingsRepo) ReserveNumber(ctx context.Context, tenantID, defaultPattern string) (string, int64, error) {
	query := `
		INSERT INTO invoice_settings (id, tenant_id, invoice_pattern, next_number, created_at, updated_at)
		VALUES ($1, $2, $3, 2, now(), now())
		ON CONFLICT (tenant_id) DO UPDATE
		SET next_number = invoice_settings.next_number + 1,
		    updated_at  = now()
		RETURNING invoice_pattern, next_number - 1`
	var (
		pattern string
		number  int64
	)
	err := r.q.QueryRow(ctx, query, uuid.New().String(), tenantID, defaultPattern).Scan(&pattern, &number)
	if err != nil {
		return "", 0, mapWriteErr("reserve invoice number", err)
	}
	return pattern, number, nil
}
