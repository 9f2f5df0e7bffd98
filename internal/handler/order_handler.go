package handler

import (
	"github.com/gofiber/fiber/v2"

	"go-storefront-admin/internal/model"
	"go-storefront-admin/internal/service"
)

type OrderHandler struct {
	service service.OrderService
}

func NewOrderHandler(s service.OrderService) *OrderHandler {
	return &OrderHandler{service: s}
}

func (h *OrderHandler) GetOrders(c *fiber.Ctx) error {
	orders, err := h.service.List(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return ok(c, orders)
}

func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	var req model.UpdateOrderStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	err := h.service.UpdateStatus(c.UserContext(), c.Params("id"), req.Status)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(service.ResultOf(nil))
}
