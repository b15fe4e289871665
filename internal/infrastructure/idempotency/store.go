// Package idempotency guarda las respuestas de creaciones con Idempotency-Key para
// reproducirlas si el cliente repite la solicitud.
package idempotency

import (
	"context"
	"errors"
)

// ErrInFlight otra solicitud con la misma clave todavía no terminó.
var ErrInFlight = errors.New("idempotency: solicitud con la misma clave en curso")

// ErrKeyReused la clave ya se usó con un cuerpo distinto.
var ErrKeyReused = errors.New("idempotency: clave reutilizada con otro cuerpo")

// Response respuesta HTTP almacenada.
type Response struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
	Fingerprint string `json:"fingerprint,omitempty"`
}

// Store reserva claves y guarda la respuesta final.
//
// Begin devuelve (nil, nil) si la clave quedó reservada para quien llama,
// la respuesta guardada si ya se completó, o ErrInFlight si está reservada por otro.
// fingerprint identifica el cuerpo de la solicitud; si la clave existe con otro
// fingerprint devuelve ErrKeyReused. Complete guarda resp.Fingerprint tal cual.
type Store interface {
	Begin(ctx context.Context, key, fingerprint string) (*Response, error)
	Complete(ctx context.Context, key string, resp Response) error
	Abort(ctx context.Context, key string) error
}
