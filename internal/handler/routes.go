package handler

import "github.com/gofiber/fiber/v2"

type Handlers struct {
	Auth      *AuthHandler
	Category  *CategoryHandler
	Inventory *InventoryHandler
	Order     *OrderHandler
	Dashboard *DashboardHandler
}

// Mount registers the console API on api. guard protects everything except login and health.
func (h Handlers) Mount(api fiber.Router, guard fiber.Handler) {
	// ============ PUBLIC ROUTES ============
	api.Post("/auth/login", h.Auth.Login)
	api.Get("/health", h.Dashboard.Health)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", guard)

	protected.Post("/auth/logout", h.Auth.Logout)
	protected.Get("/auth/me", h.Auth.Me)

	protected.Get("/dashboard/stats", h.Dashboard.GetDashboardStats)

	// Editor and parent-option routes come before /categories/:id.
	protected.Get("/categories", h.Category.GetCategories)
	protected.Post("/categories/refresh", h.Category.Refresh)
	protected.Get("/categories/parent-options", h.Category.GetParentOptions)
	protected.Get("/categories/editor", h.Category.GetEditor)
	protected.Post("/categories/editor/open", h.Category.OpenEditor)
	protected.Patch("/categories/editor", h.Category.EditEditor)
	protected.Post("/categories/editor/submit", h.Category.SubmitEditor)
	protected.Post("/categories/editor/cancel", h.Category.CancelEditor)
	protected.Post("/categories", h.Category.CreateCategory)
	protected.Put("/categories/:id", h.Category.UpdateCategory)
	protected.Delete("/categories/:id", h.Category.DeleteCategory)

	protected.Get("/products", h.Inventory.GetProducts)
	protected.Post("/products/refresh", h.Inventory.Refresh)
	protected.Get("/products/:id/stock", h.Inventory.GetStock)
	protected.Get("/products/:id/stock/history", h.Inventory.History)
	protected.Post("/products/:id/stock/increment", h.Inventory.Increment)
	protected.Post("/products/:id/stock/decrement", h.Inventory.Decrement)
	protected.Post("/products/:id/stock/raw", h.Inventory.SetRaw)
	protected.Post("/products/:id/stock/blur", h.Inventory.Blur)
	protected.Post("/products/:id/stock/confirm", h.Inventory.Confirm)
	protected.Post("/products/:id/stock/adjust", h.Inventory.Adjust)

	protected.Get("/orders", h.Order.GetOrders)
	protected.Patch("/orders/:id/status", h.Order.UpdateStatus)
}
