package billing

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jhoicas/Facturador-api/internal/application/dto"
	"github.com/jhoicas/Facturador-api/internal/domain"
	"github.com/jhoicas/Facturador-api/internal/domain/entity"
	"github.com/jhoicas/Facturador-api/internal/domain/repository"
	"github.com/jhoicas/Facturador-api/internal/domain/tenant"
	"github.com/jhoicas/Facturador-api/pkg/numbering"
)

// SettingsUseCase administra el patrón y el contador de numeración de cada tenant.
type SettingsUseCase struct {
	repo           repository.InvoiceSettingsRepository
	defaultPattern string
	now            func() time.Time
}

// NewSettingsUseCase construye el caso de uso.
func NewSettingsUseCase(repo repository.InvoiceSettingsRepository, defaultPattern string) *SettingsUseCase {
	if defaultPattern == "" {
		defaultPattern = numbering.DefaultPattern
	}
	return &SettingsUseCase{
		repo:           repo,
		defaultPattern: defaultPattern,
		now:            func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
	}
}

// current devuelve la configuración guardada o los valores por defecto si no existe.
func (uc *SettingsUseCase) current(ctx context.Context, tenantID string) (string, int64, error) {
	s, err := uc.repo.Get(ctx, tenantID)
	if errors.Is(err, domain.ErrNotFound) {
		return uc.defaultPattern, 1, nil
	}
	if err := tenant.Guard(s, err, tenantID); err != nil {
		return "", 0, err
	}
	return s.InvoicePattern, s.NextNumber, nil
}

// Get devuelve la configuración del tenant y el número que recibiría la próxima factura de hoy.
func (uc *SettingsUseCase) Get(ctx context.Context, tenantID string) (*dto.InvoiceSettingsResponse, error) {
	pattern, next, err := uc.current(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return &dto.InvoiceSettingsResponse{
		InvoicePattern: pattern,
		NextNumber:     next,
		Preview:        numbering.Generate(pattern, uc.now(), next),
	}, nil
}

// Update reemplaza patrón y contador. El patrón vacío vuelve al valor por defecto y
// debe contener un token de contador. Bajar el contador puede provocar números
// duplicados; esos intentos de creación fallan con ErrDuplicate.
func (uc *SettingsUseCase) Update(ctx context.Context, tenantID string, in dto.UpdateInvoiceSettingsRequest) (*dto.InvoiceSettingsResponse, error) {
	pattern := strings.TrimSpace(in.InvoicePattern)
	if pattern == "" {
		pattern = uc.defaultPattern
	}
	verr := &domain.ValidationError{}
	if !numbering.HasCounter(pattern) {
		verr.Add("invoice_pattern", "el patrón debe incluir {###}, {##} o {#}")
	}
	if in.NextNumber < 1 {
		verr.Add("next_number", "debe ser al menos 1")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	now := uc.now()
	s := &entity.InvoiceSettings{
		TenantID:       tenantID,
		InvoicePattern: pattern,
		NextNumber:     in.NextNumber,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Upsert(ctx, s); err != nil {
		return nil, err
	}
	return &dto.InvoiceSettingsResponse{
		InvoicePattern: s.InvoicePattern,
		NextNumber:     s.NextNumber,
		Preview:        numbering.Generate(s.InvoicePattern, now, s.NextNumber),
	}, nil
}

// Preview muestra cómo quedaría el próximo número con pattern (o con el patrón guardado si va vacío).
// No reserva ni modifica el contador.
func (uc *SettingsUseCase) Preview(ctx context.Context, tenantID, pattern string) (*dto.PatternPreviewResponse, error) {
	stored, next, err := uc.current(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		pattern = stored
	}
	return &dto.PatternPreviewResponse{
		Pattern:    pattern,
		NextNumber: next,
		Preview:    numbering.Generate(pattern, uc.now(), next),
		Tokens:     numbering.Tokens(),
	}, nil
}
