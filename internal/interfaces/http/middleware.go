package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Facturador-api/pkg/logger"
)

// HTTPObserver recibe la duración de cada solicitud.
type HTTPObserver interface {
	ObserveHTTP(method, route string, status int, elapsed time.Duration)
}

// RequestLogger registra cada solicitud con método, ruta, estado, latencia y tenant.
// Si observer no es nil también alimenta el histograma de duración.
func RequestLogger(log *logger.Logger, observer HTTPObserver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if err != nil {
			// deja que el ErrorHandler escriba la respuesta para leer el estado final
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		elapsed := time.Since(start)
		status := c.Response().StatusCode()

		if observer != nil {
			observer.ObserveHTTP(c.Method(), c.Route().Path, status, elapsed)
		}

		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", elapsed).
			Str("tenant_id", GetTenantID(c)).
			Msg("request")
		return nil
	}
}
