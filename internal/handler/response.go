package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"

	"go-storefront-admin/internal/apperr"
	"go-storefront-admin/internal/service"
	"go-storefront-admin/internal/stock"
)

// statusOf maps the error taxonomy onto HTTP statuses.
func statusOf(err error) int {
	switch {
	case apperr.IsValidation(err):
		return fiber.StatusBadRequest
	case apperr.IsRejection(err):
		return fiber.StatusUnprocessableEntity
	case apperr.IsNetwork(err):
		return fiber.StatusBadGateway
	case errors.Is(err, stock.ErrUnknownRow), errors.Is(err, service.ErrJournalDisabled):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrNotAuthenticated):
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}

func messageOf(err error) string {
	switch {
	case apperr.IsValidation(err), apperr.IsRejection(err), apperr.IsNetwork(err):
		return apperr.UserMessage(err)
	case errors.Is(err, stock.ErrUnknownRow):
		return "Product not found"
	case errors.Is(err, service.ErrJournalDisabled), errors.Is(err, service.ErrNotAuthenticated):
		return err.Error()
	default:
		return "Internal Server Error"
	}
}

func fail(c *fiber.Ctx, err error) error {
	resp := fiber.Map{"success": false, "error": messageOf(err)}
	var v *apperr.ValidationError
	if errors.As(err, &v) && v.Field != "" {
		resp["field"] = v.Field
	}
	return c.Status(statusOf(err)).JSON(resp)
}

func invalidJSON(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "Invalid JSON"})
}

func ok(c *fiber.Ctx, data interface{}) error {
	return c.JSON(fiber.Map{"success": true, "data": data})
}
