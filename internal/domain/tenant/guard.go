// Package tenant aplica el aislamiento entre tenants: un recurso ajeno se
// comporta exactamente igual que uno inexistente.
package tenant

import (
	"errors"

	"github.com/jhoicas/Facturador-api/internal/domain"
)

// Owned es cualquier entidad con tenant dueño.
type Owned interface {
	OwnerTenant() string
}

// Owns devuelve nil si caller es el dueño; ErrNotFound en cualquier otro caso.
func Owns(owner, caller string) error {
	if caller == "" || owner != caller {
		return domain.ErrNotFound
	}
	return nil
}

// Guard valida el resultado de una lectura de repositorio contra el tenant del llamador.
// Un error de lectura se propaga tal cual; una entidad nil o de otro tenant da ErrNotFound.
func Guard(e Owned, readErr error, caller string) error {
	if readErr != nil {
		return readErr
	}
	if e == nil {
		return domain.ErrNotFound
	}
	return Owns(e.OwnerTenant(), caller)
}

// IsHidden indica si err corresponde a un recurso inexistente o ajeno.
func IsHidden(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
