package http

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Facturador-api/internal/application/dto"
	"github.com/jhoicas/Facturador-api/internal/infrastructure/idempotency"
	"github.com/jhoicas/Facturador-api/pkg/logger"
)

// Cabeceras de idempotencia.
const (
	HeaderIdempotencyKey = "Idempotency-Key"
	HeaderReplayed       = "Idempotent-Replayed"
)

const maxIdempotencyKeyLen = 200

// Idempotency hace que una creación repetida con la misma Idempotency-Key (por tenant)
// devuelva la respuesta original en vez de crear otra factura y consumir otro número.
// Sin cabecera la solicitud pasa tal cual.
func Idempotency(store idempotency.Store, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := strings.TrimSpace(c.Get(HeaderIdempotencyKey))
		if key == "" {
			return c.Next()
		}
		if len(key) > maxIdempotencyKeyLen {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "Idempotency-Key demasiado larga"})
		}
		tenantID, ok := requireTenant(c)
		if !ok {
			return nil
		}
		scoped := tenantID + ":" + key
		ctx := c.UserContext()

		fingerprint := requestFingerprint(c)

		saved, err := store.Begin(ctx, scoped, fingerprint)
		switch {
		case errors.Is(err, idempotency.ErrKeyReused):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "IDEMPOTENCY_KEY_REUSED", Message: "la Idempotency-Key ya se usó con otro cuerpo"})
		case errors.Is(err, idempotency.ErrInFlight):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "IN_PROGRESS", Message: "ya hay una solicitud en curso con esa Idempotency-Key"})
		case err != nil:
			return writeError(c, err)
		case saved != nil:
			c.Set(HeaderReplayed, "true")
			if saved.ContentType != "" {
				c.Set(fiber.HeaderContentType, saved.ContentType)
			}
			return c.Status(saved.Status).Send(saved.Body)
		}

		if err := c.Next(); err != nil {
			_ = store.Abort(ctx, scoped)
			return err
		}

		status := c.Response().StatusCode()
		if status < 200 || status >= 300 {
			if err := store.Abort(ctx, scoped); err != nil {
				log.Warn().Err(err).Str("tenant_id", tenantID).Msg("no se pudo liberar la clave de idempotencia")
			}
			return nil
		}
		resp := idempotency.Response{
			Status:      status,
			ContentType: string(c.Response().Header.ContentType()),
			Body:        append([]byte(nil), c.Response().Body()...),
			Fingerprint: fingerprint,
		}
		if err := store.Complete(ctx, scoped, resp); err != nil {
			log.Warn().Err(err).Str("tenant_id", tenantID).Msg("no se pudo guardar la respuesta idempotente")
		}
		return nil
	}
}

// requestFingerprint resume método, ruta y cuerpo de la solicitud.
func requestFingerprint(c *fiber.Ctx) string {
	h := sha256.New()
	h.Write([]byte(c.Method()))
	h.Write([]byte{0})
	h.Write([]byte(c.Path()))
	h.Write([]byte{0})
	h.Write(c.Body())
	return hex.EncodeToString(h.Sum(nil))
}
