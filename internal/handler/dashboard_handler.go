package handler

import (
	"github.com/gofiber/fiber/v2"

	"go-storefront-admin/internal/service"
)

type DashboardHandler struct {
	service service.DashboardService
	health  service.HealthChecker
}

func NewDashboardHandler(s service.DashboardService, health service.HealthChecker) *DashboardHandler {
	return &DashboardHandler{service: s, health: health}
}

// GetDashboardStats returns overview statistics for the loaded product list.
func (h *DashboardHandler) GetDashboardStats(c *fiber.Ctx) error {
	return ok(c, h.service.GetDashboardStats(c.UserContext()))
}

// Health reports on the console and whether the storefront backend answers.
func (h *DashboardHandler) Health(c *fiber.Ctx) error {
	backend := h.health != nil && h.health.CheckHealth(c.UserContext())
	return c.JSON(fiber.Map{"status": "ok", "backend": backend})
}
