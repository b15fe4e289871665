package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Facturador-api/internal/application/billing"
	"github.com/jhoicas/Facturador-api/internal/application/dto"
)

// SettingsHandler expone la configuración de numeración del tenant.
type SettingsHandler struct {
	uc *billing.SettingsUseCase
}

func NewSettingsHandler(uc *billing.SettingsUseCase) *SettingsHandler {
	return &SettingsHandler{uc: uc}
}

// Get godoc
// @Summary      Configuración de numeración
// @Tags         settings
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.InvoiceSettingsResponse
// @Router       /api/settings/invoice [get]
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	tenantID, ok := requireTenant(c)
	if !ok {
		return nil
	}
	out, err := h.uc.Get(c.UserContext(), tenantID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar patrón y contador
// @Tags         settings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateInvoiceSettingsRequest  true  "Patrón y siguiente número"
// @Success      200   {object}  dto.InvoiceSettingsResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/settings/invoice [put]
func (h *SettingsHandler) Update(c *fiber.Ctx) error {
	tenantID, ok := requireTenant(c)
	if !ok {
		return nil
	}
	var in dto.UpdateInvoiceSettingsRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), tenantID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Preview muestra el número que generaría un patrón sin reservarlo.
// GET /api/settings/invoice/preview?pattern=
func (h *SettingsHandler) Preview(c *fiber.Ctx) error {
	tenantID, ok := requireTenant(c)
	if !ok {
		return nil
	}
	out, err := h.uc.Preview(c.UserContext(), tenantID, c.Query("pattern"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
