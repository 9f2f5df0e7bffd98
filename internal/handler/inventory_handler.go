package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cast"

	"go-storefront-admin/internal/service"
	"go-storefront-admin/internal/stock"
)

type InventoryHandler struct {
	service service.InventoryService
}

func NewInventoryHandler(s service.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: s}
}

type rawStockRequest struct {
	Text string `json:"text"`
}

type adjustStockRequest struct {
	// Delta may arrive as a number or as text. Non-numeric text is rejected, never read as zero.
	Delta interface{} `json:"delta"`
}

func (h *InventoryHandler) GetProducts(c *fiber.Ctx) error {
	return ok(c, h.service.Products())
}

func (h *InventoryHandler) Refresh(c *fiber.Ctx) error {
	if err := h.service.Refresh(c.UserContext()); err != nil {
		return fail(c, err)
	}
	return ok(c, h.service.Products())
}

func (h *InventoryHandler) GetStock(c *fiber.Ctx) error {
	return h.row(c, h.service.Stock)
}

func (h *InventoryHandler) Increment(c *fiber.Ctx) error {
	return h.row(c, h.service.Increment)
}

func (h *InventoryHandler) Decrement(c *fiber.Ctx) error {
	return h.row(c, h.service.Decrement)
}

func (h *InventoryHandler) Blur(c *fiber.Ctx) error {
	return h.row(c, h.service.Blur)
}

func (h *InventoryHandler) Confirm(c *fiber.Ctx) error {
	return h.row(c, h.service.Confirm)
}

func (h *InventoryHandler) SetRaw(c *fiber.Ctx) error {
	var req rawStockRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	return h.row(c, func(id string) (stock.RowState, error) {
		return h.service.SetRaw(id, req.Text)
	})
}

func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	var req adjustStockRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	return h.row(c, func(id string) (stock.RowState, error) {
		return h.service.AdjustBy(id, cast.ToString(req.Delta))
	})
}

func (h *InventoryHandler) History(c *fiber.Ctx) error {
	commits, err := h.service.History(c.UserContext(), c.Params("id"), c.QueryInt("limit", 0))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, commits)
}

func (h *InventoryHandler) row(c *fiber.Ctx, op func(id string) (stock.RowState, error)) error {
	st, err := op(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, st)
}
