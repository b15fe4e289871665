package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Facturador-api/internal/domain"
	"github.com/jhoicas/Facturador-api/internal/domain/entity"
	"github.com/jhoicas/Facturador-api/internal/domain/repository"
)

var _ repository.InvoiceSettingsRepository = (*InvoiceSettingsRepo)(nil)

// InvoiceSettingsRepo implementación en memoria del contador por tenant.
type InvoiceSettingsRepo struct {
	s session
}

func (r *InvoiceSettingsRepo) Get(_ context.Context, tenantID string) (*entity.InvoiceSettings, error) {
	var out *entity.InvoiceSettings
	err := r.s.do(func(st *state) error {
		s, ok := st.settings[tenantID]
		if !ok {
			return domain.ErrNotFound
		}
		out = &s
		return nil
	})
	return out, err
}

func (r *InvoiceSettingsRepo) Upsert(_ context.Context, s *entity.InvoiceSettings) error {
	return r.s.do(func(st *state) error {
		if cur, ok := st.settings[s.TenantID]; ok {
			s.ID = cur.ID
			s.CreatedAt = cur.CreatedAt
		} else if s.ID == "" {
			s.ID = uuid.New().String()
		}
		st.settings[s.TenantID] = *s
		return nil
	})
}

// ReserveNumber lee y avanza el contador bajo el mismo bloqueo.
func (r *InvoiceSettingsRepo) ReserveNumber(_ context.Context, tenantID, defaultPattern string) (string, int64, error) {
	var (
		pattern string
		number  int64
	)
	err := r.s.do(func(st *state) error {
		now := time.Now().UTC()
		s, ok := st.settings[tenantID]
		if !ok {
			s = entity.InvoiceSettings{
				ID:             uuid.New().String(),
				TenantID:       tenantID,
				InvoicePattern: defaultPattern,
				NextNumber:     1,
				CreatedAt:      now,
			}
		}
		pattern, number = s.InvoicePattern, s.NextNumber
		s.NextNumber++
		s.UpdatedAt = now
		st.settings[tenantID] = s
		return nil
	})
	return pattern, number, err
}
