package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"go-storefront-admin/internal/apperr"
	"go-storefront-admin/internal/catalog"
	"go-storefront-admin/internal/model"
	"go-storefront-admin/internal/service"
	"go-storefront-admin/internal/stock"
)

type stubCategories struct {
	service.CategoryService
	view      catalog.View
	createErr error
	created   model.CreateCategoryPayload
	mode      catalog.FilterMode
	submitErr error
}

func (s *stubCategories) View(mode catalog.FilterMode) catalog.View {
	s.mode = mode
	return s.view
}

func (s *stubCategories) Create(_ context.Context, p model.CreateCategoryPayload) error {
	s.created = p
	return s.createErr
}

func (s *stubCategories) SubmitEditor(context.Context) (catalog.EditorSnapshot, error) {
	return catalog.EditorSnapshot{State: catalog.EditorOpenCreate, Form: catalog.Form{Name: "Rosé"}, Error: "Slug already exists"}, s.submitErr
}

type stubInventory struct {
	service.InventoryService
	delta string
}

func (s *stubInventory) Increment(id string) (stock.RowState, error) {
	if id != "p1" {
		return stock.RowState{}, stock.ErrUnknownRow
	}
	return stock.RowState{ProductID: id, Value: 5, Pending: true}, nil
}

func (s *stubInventory) AdjustBy(id, delta string) (stock.RowState, error) {
	s.delta = delta
	if delta == "abc" {
		return stock.RowState{}, apperr.Validation("delta", "Adjustment must be a whole number")
	}
	return stock.RowState{ProductID: id, Value: 7}, nil
}

func (s *stubInventory) History(context.Context, string, int) ([]model.StockCommit, error) {
	return nil, service.ErrJournalDisabled
}

type stubOrders struct {
	service.OrderService
	err error
}

func (s *stubOrders) List(context.Context) ([]model.Order, error) {
	return nil, s.err
}

func newTestApp(cats *stubCategories, inv *stubInventory, orders *stubOrders) *fiber.App {
	app := fiber.New()
	Handlers{
		Auth:      NewAuthHandler(nil),
		Category:  NewCategoryHandler(cats),
		Inventory: NewInventoryHandler(inv),
		Order:     NewOrderHandler(orders),
		Dashboard: NewDashboardHandler(nil, nil),
	}.Mount(app.Group("/api/v1"), func(c *fiber.Ctx) error { return c.Next() })
	return app
}

func do(t *testing.T, app *fiber.App, method, path, body string) (int, map[string]interface{}) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	var out map[string]interface{}
	raw, _ := io.ReadAll(resp.Body)
	_ = json.Unmarshal(raw, &out)
	return resp.StatusCode, out
}

func TestCategoryRoutes(t *testing.T) {
	cats := &stubCategories{view: catalog.View{Counts: catalog.ModeCounts{All: 3}}}
	app := newTestApp(cats, &stubInventory{}, &stubOrders{})

	code, _ := do(t, app, "GET", "/api/v1/categories?mode=parents", "")
	if code != fiber.StatusOK || cats.mode != catalog.ModeParents {
		t.Fatalf("status %d, mode %q", code, cats.mode)
	}

	code, _ = do(t, app, "POST", "/api/v1/categories", `{"name":"Port","parent_id":"1"}`)
	if code != fiber.StatusCreated || cats.created.Name != "Port" || *cats.created.ParentID != "1" {
		t.Fatalf("create: %d %+v", code, cats.created)
	}

	code, _ = do(t, app, "POST", "/api/v1/categories", `{"name":`)
	if code != fiber.StatusBadRequest {
		t.Fatalf("broken body: %d", code)
	}
}

func TestErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{"validation", apperr.Validation("name", "Name is required"), fiber.StatusBadRequest, "Name is required"},
		{"rejection", apperr.Rejected(400, "Slug already exists"), fiber.StatusUnprocessableEntity, "Slug already exists"},
		{"network", apperr.Network("create category", io.EOF), fiber.StatusBadGateway, apperr.GenericNetworkMessage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(&stubCategories{createErr: tt.err}, &stubInventory{}, &stubOrders{})
			code, body := do(t, app, "POST", "/api/v1/categories", `{"name":"x"}`)
			if code != tt.code || body["error"] != tt.msg || body["success"] != false {
				t.Fatalf("got %d %v", code, body)
			}
		})
	}
}

func TestSubmitFailureReturnsEditor(t *testing.T) {
	cats := &stubCategories{submitErr: apperr.Rejected(400, "Slug already exists")}
	app := newTestApp(cats, &stubInventory{}, &stubOrders{})
	code, body := do(t, app, "POST", "/api/v1/categories/editor/submit", "")
	if code != fiber.StatusUnprocessableEntity {
		t.Fatalf("status = %d", code)
	}
	data, _ := body["data"].(map[string]interface{})
	if data["state"] != string(catalog.EditorOpenCreate) {
		t.Fatalf("body = %v", body)
	}
}

func TestStockRoutes(t *testing.T) {
	inv := &stubInventory{}
	app := newTestApp(&stubCategories{}, inv, &stubOrders{})

	code, body := do(t, app, "POST", "/api/v1/products/p1/stock/increment", "")
	data, _ := body["data"].(map[string]interface{})
	if code != fiber.StatusOK || data["value"] != float64(5) {
		t.Fatalf("increment: %d %v", code, body)
	}

	if code, _ := do(t, app, "POST", "/api/v1/products/zz/stock/increment", ""); code != fiber.StatusNotFound {
		t.Fatalf("unknown row: %d", code)
	}

	if code, _ := do(t, app, "POST", "/api/v1/products/p1/stock/adjust", `{"delta":-3}`); code != fiber.StatusOK || inv.delta != "-3" {
		t.Fatalf("numeric delta: %d %q", code, inv.delta)
	}
	code, body = do(t, app, "POST", "/api/v1/products/p1/stock/adjust", `{"delta":"abc"}`)
	if code != fiber.StatusBadRequest || body["field"] != "delta" {
		t.Fatalf("text delta: %d %v", code, body)
	}

	if code, _ := do(t, app, "GET", "/api/v1/products/p1/stock/history", ""); code != fiber.StatusNotFound {
		t.Fatalf("history: %d", code)
	}
}

func TestOrdersFailVisibly(t *testing.T) {
	app := newTestApp(&stubCategories{}, &stubInventory{}, &stubOrders{err: apperr.Network("load orders", io.EOF)})
	code, body := do(t, app, "GET", "/api/v1/orders", "")
	if code != fiber.StatusBadGateway || body["error"] != apperr.GenericNetworkMessage {
		t.Fatalf("got %d %v", code, body)
	}
}

func TestHealthWithoutBackend(t *testing.T) {
	app := newTestApp(&stubCategories{}, &stubInventory{}, &stubOrders{})
	code, body := do(t, app, "GET", "/api/v1/health", "")
	if code != fiber.StatusOK || body["backend"] != false {
		t.Fatalf("got %d %v", code, body)
	}
}
