package remote

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cast"

	"go-storefront-admin/internal/apperr"
	"go-storefront-admin/internal/model"
)

func (c *Client) ListOrders(ctx context.Context) ([]model.Order, error) {
	const op = "load orders"
	data, err := c.call(ctx, op, fiber.Get(c.url("/api/orders")), nil)
	if err != nil {
		return nil, err
	}
	rows, err := decodeList(op, data)
	if err != nil {
		return nil, err
	}
	out := make([]model.Order, 0, len(rows))
	for _, r := range rows {
		out = append(out, toOrder(r))
	}
	return out, nil
}

// UpdateOrderStatus sends the status the way the backend stores it: upper case, as order_status.
func (c *Client) UpdateOrderStatus(ctx context.Context, id string, status string) error {
	const op = "update order status"
	if id == "" {
		return apperr.Validation("id", "Order id is required")
	}
	body := map[string]string{"order_status": strings.ToUpper(strings.TrimSpace(status))}
	_, err := c.call(ctx, op, fiber.Patch(c.url("/api/orders", id, "status")), body)
	return err
}

func toOrder(m map[string]interface{}) model.Order {
	o := model.Order{
		ID:            cast.ToString(first(m, "id", "order_id")),
		CustomerName:  cast.ToString(m["customer_name"]),
		CustomerEmail: cast.ToString(m["customer_email"]),
		Total:         cast.ToFloat64(first(m, "total", "total_amount")),
		Status:        model.OrderStatus(strings.ToLower(cast.ToString(first(m, "status", "order_status")))),
		CreatedAt:     cast.ToString(m["created_at"]),
		Items:         []model.OrderItem{},
	}
	if o.CustomerName == "" {
		o.CustomerName = "Unknown"
	}
	if o.Status == "" {
		o.Status = model.OrderPending
	}
	if o.CreatedAt == "" {
		o.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	if items, ok := m["items"].([]interface{}); ok {
		for _, it := range items {
			im := cast.ToStringMap(it)
			o.Items = append(o.Items, model.OrderItem{
				ProductName: cast.ToString(first(im, "product_name", "name")),
				Quantity:    cast.ToInt(im["quantity"]),
				Price:       cast.ToFloat64(first(im, "price", "unit_price")),
			})
		}
	}
	return o
}
