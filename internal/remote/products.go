package remote

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cast"
	"go.uber.org/zap"

	"go-storefront-admin/internal/apperr"
	"go-storefront-admin/internal/model"
)

func (c *Client) ListProducts(ctx context.Context) ([]model.Product, error) {
	const op = "load products"
	data, err := c.call(ctx, op, fiber.Get(c.url("/api/products")), nil)
	if err != nil {
		return nil, err
	}
	rows, err := decodeList(op, data)
	if err != nil {
		return nil, err
	}
	out := make([]model.Product, 0, len(rows))
	for _, r := range rows {
		p := toProduct(r)
		if p.ProductID == "" {
			c.log.Warn("skipping product without id", zap.String("sku", p.SKU))
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (c *Client) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	const op = "load product"
	if id == "" {
		return nil, apperr.Validation("id", "Product id is required")
	}
	data, err := c.call(ctx, op, fiber.Get(c.url("/api/products", id)), nil)
	if err != nil {
		return nil, err
	}
	m, err := decodeObject(op, data)
	if err != nil {
		return nil, err
	}
	p := toProduct(m)
	if p.ProductID == "" {
		p.ProductID = id
	}
	return &p, nil
}

// SetProductStock writes an absolute quantity. Repeating the same value is harmless.
func (c *Client) SetProductStock(ctx context.Context, productID string, quantity int) error {
	const op = "update stock"
	if productID == "" {
		return apperr.Validation("id", "Product id is required")
	}
	if quantity < 0 {
		return apperr.Validation("quantity", "Quantity cannot be negative")
	}
	_, err := c.call(ctx, op, fiber.Patch(c.url("/api/products", productID, "stock")), model.SetStockPayload{Quantity: quantity})
	return err
}

func toProduct(m map[string]interface{}) model.Product {
	p := model.Product{
		ProductID:     cast.ToString(first(m, "product_id", "id")),
		SKU:           cast.ToString(m["sku"]),
		ProductName:   cast.ToString(first(m, "product_name", "name")),
		Brand:         cast.ToString(m["brand"]),
		Category:      cast.ToString(m["category"]),
		SubCategory:   cast.ToString(m["sub_category"]),
		Description:   cast.ToString(m["description"]),
		UnitOfMeasure: cast.ToString(m["unit_of_measure"]),
		Price:         cast.ToFloat64(m["price"]),
		Quantity:      cast.ToInt(first(m, "quantity", "stock", "stock_quantity")),
		CreatedAt:     cast.ToString(m["created_at"]),
		UpdatedAt:     cast.ToString(m["updated_at"]),
	}
	if imgs, ok := m["images"]; ok && imgs != nil {
		p.Images = cast.ToStringSlice(imgs)
	}
	return p
}
