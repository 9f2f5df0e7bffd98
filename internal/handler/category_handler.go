package handler

import (
	"github.com/gofiber/fiber/v2"

	"go-storefront-admin/internal/catalog"
	"go-storefront-admin/internal/model"
	"go-storefront-admin/internal/service"
)

type CategoryHandler struct {
	service service.CategoryService
}

func NewCategoryHandler(s service.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: s}
}

// GetCategories returns the derived view for ?mode=all|parents|subcategories.
func (h *CategoryHandler) GetCategories(c *fiber.Ctx) error {
	return ok(c, h.service.View(catalog.ParseMode(c.Query("mode"))))
}

func (h *CategoryHandler) Refresh(c *fiber.Ctx) error {
	if err := h.service.Refresh(c.UserContext()); err != nil {
		return fail(c, err)
	}
	return ok(c, h.service.View(catalog.ParseMode(c.Query("mode"))))
}

// GetParentOptions lists valid parents; ?exclude= is the category being edited.
func (h *CategoryHandler) GetParentOptions(c *fiber.Ctx) error {
	return ok(c, h.service.ParentOptions(c.Query("exclude")))
}

func (h *CategoryHandler) CreateCategory(c *fiber.Ctx) error {
	var req model.CreateCategoryPayload
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	if err := h.service.Create(c.UserContext(), req); err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(service.ResultOf(nil))
}

func (h *CategoryHandler) UpdateCategory(c *fiber.Ctx) error {
	var req model.UpdateCategoryPayload
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	if err := h.service.Update(c.UserContext(), c.Params("id"), req); err != nil {
		return fail(c, err)
	}
	return c.JSON(service.ResultOf(nil))
}

func (h *CategoryHandler) DeleteCategory(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.JSON(service.ResultOf(nil))
}

type openEditorRequest struct {
	CategoryID string `json:"category_id"`
}

// OpenEditor opens the modal; an empty category_id means create.
func (h *CategoryHandler) OpenEditor(c *fiber.Ctx) error {
	var req openEditorRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return invalidJSON(c)
		}
	}
	snap, err := h.service.OpenEditor(req.CategoryID)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, snap)
}

func (h *CategoryHandler) EditEditor(c *fiber.Ctx) error {
	var patch service.EditorPatch
	if err := c.BodyParser(&patch); err != nil {
		return invalidJSON(c)
	}
	snap, err := h.service.EditEditor(patch)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, snap)
}

// SubmitEditor answers with the editor snapshot either way, so a failed submit still shows the
// form as it was.
func (h *CategoryHandler) SubmitEditor(c *fiber.Ctx) error {
	snap, err := h.service.SubmitEditor(c.UserContext())
	if err != nil {
		return c.Status(statusOf(err)).JSON(fiber.Map{"success": false, "error": messageOf(err), "data": snap})
	}
	return ok(c, snap)
}

func (h *CategoryHandler) CancelEditor(c *fiber.Ctx) error {
	return ok(c, h.service.CancelEditor())
}

func (h *CategoryHandler) GetEditor(c *fiber.Ctx) error {
	return ok(c, h.service.Editor())
}
