package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Facturador-api/internal/domain"
)

func TestValidationError_EsErrInvalidInput(t *testing.T) {
	err := fmt.Errorf("crear factura: %w", domain.NewValidationError("due_date", "requerido"))

	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.False(t, errors.Is(err, domain.ErrNotFound))

	var verr *domain.ValidationError
	assert.True(t, errors.As(err, &verr))
	assert.Equal(t, "requerido", verr.Fields["due_date"])
}

func TestValidationError_MensajeOrdenado(t *testing.T) {
	verr := domain.NewValidationError("items", "al menos un ítem").Add("client_id", "requerido")
	verr.Add("items", "se ignora, ya existe")

	assert.Equal(t, "entrada inválida: client_id: requerido; items: al menos un ítem", verr.Error())
}

func TestValidationError_OrNil(t *testing.T) {
	verr := &domain.ValidationError{}
	assert.NoError(t, verr.OrNil())

	verr.Add("name", "requerido")
	assert.Error(t, verr.OrNil())
}
