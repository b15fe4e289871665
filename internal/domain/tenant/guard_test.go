package tenant_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Facturador-api/internal/domain"
	"github.com/jhoicas/Facturador-api/internal/domain/entity"
	"github.com/jhoicas/Facturador-api/internal/domain/tenant"
)

func TestOwns(t *testing.T) {
	assert.NoError(t, tenant.Owns("t1", "t1"))
	assert.ErrorIs(t, tenant.Owns("t1", "t2"), domain.ErrNotFound)
	assert.ErrorIs(t, tenant.Owns("t1", ""), domain.ErrNotFound)
	assert.ErrorIs(t, tenant.Owns("", ""), domain.ErrNotFound)
}

func TestGuard(t *testing.T) {
	boom := errors.New("conexión caída")

	tests := []struct {
		name    string
		entity  tenant.Owned
		readErr error
		caller  string
		want    error
	}{
		{"dueño", &entity.Company{TenantID: "t1"}, nil, "t1", nil},
		{"otro tenant", &entity.Client{TenantID: "t1"}, nil, "t2", domain.ErrNotFound},
		{"puntero nil", (*entity.Invoice)(nil), nil, "t1", domain.ErrNotFound},
		{"interfaz nil", nil, nil, "t1", domain.ErrNotFound},
		{"no encontrado", (*entity.Product)(nil), domain.ErrNotFound, "t1", domain.ErrNotFound},
		{"error de lectura", (*entity.Product)(nil), boom, "t1", boom},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tenant.Guard(tt.entity, tt.readErr, tt.caller)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestIsHidden(t *testing.T) {
	assert.True(t, tenant.IsHidden(tenant.Owns("a", "b")))
	assert.False(t, tenant.IsHidden(domain.ErrConflict))
}
