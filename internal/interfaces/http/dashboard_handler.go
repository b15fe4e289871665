package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/Facturador-api/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del módulo de Dashboard.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetStats devuelve conteos e importes de facturación del tenant.
// GET /api/dashboard/stats
//
// Respuesta: DashboardStatsDTO (total_companies, total_clients, total_products,
// total_invoices, total_revenue, pending_amount, paid/pending/overdue_invoices).
func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	tenantID, ok := requireTenant(c)
	if !ok {
		return nil
	}
	stats, err := h.uc.GetStats(c.UserContext(), tenantID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(stats)
}
