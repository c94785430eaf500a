package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/wholesetail-admin-api/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del dashboard de administración.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetStats devuelve los contadores de verificación y los 5 usuarios más recientes.
// GET /api/admin/stats
func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.uc.GetStats(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(stats)
}
