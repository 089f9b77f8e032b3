package handlers

import (
	"nfc-coop/internal/core/services"
	"nfc-coop/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DashboardHandler serves aggregate statistics
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Statistics returns membership, savings, loan and recent-activity totals
func (h *DashboardHandler) Statistics(c *fiber.Ctx) error {
	data, err := h.dashboardService.GetStatistics(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to load statistics")
	}
	return response.Success(c, "", data)
}
