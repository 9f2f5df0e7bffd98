package handler

import (
	"github.com/gofiber/fiber/v2"

	"go-storefront-admin/internal/apperr"
	"go-storefront-admin/internal/model"
	"go-storefront-admin/internal/service"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login signs the console in against the storefront backend.
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req model.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	response, err := h.authService.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		if apperr.IsRejection(err) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "error": apperr.UserMessage(err)})
		}
		return fail(c, err)
	}
	return ok(c, response)
}

// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.authService.Logout(c.UserContext()); err != nil {
		return fail(c, err)
	}
	return c.JSON(service.ResultOf(nil))
}

// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, err := h.authService.Me()
	if err != nil {
		return fail(c, err)
	}
	return ok(c, user)
}
