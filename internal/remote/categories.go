package remote

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cast"
	"go.uber.org/zap"

	"go-storefront-admin/internal/apperr"
	"go-storefront-admin/internal/model"
)

func (c *Client) ListCategories(ctx context.Context) ([]model.Category, error) {
	const op = "load categories"
	data, err := c.call(ctx, op, fiber.Get(c.url("/api/categories")), nil)
	if err != nil {
		return nil, err
	}
	rows, err := decodeList(op, data)
	if err != nil {
		return nil, err
	}
	out := make([]model.Category, 0, len(rows))
	for _, r := range rows {
		cat := toCategory(r)
		if cat.CategoryID == "" {
			c.log.Warn("skipping category without id", zap.String("name", cat.Name))
			continue
		}
		out = append(out, cat)
	}
	return out, nil
}

// CreateCategory posts a new category. Backends that answer without echoing the record get a
// nil category and no error; callers reload the list either way.
func (c *Client) CreateCategory(ctx context.Context, p model.CreateCategoryPayload) (*model.Category, error) {
	const op = "create category"
	data, err := c.call(ctx, op, fiber.Post(c.url("/api/categories")), p)
	if err != nil {
		return nil, err
	}
	if !hasData(data) {
		return nil, nil
	}
	m, err := decodeObject(op, data)
	if err != nil {
		return nil, err
	}
	cat := toCategory(m)
	return &cat, nil
}

func (c *Client) UpdateCategory(ctx context.Context, id string, p model.UpdateCategoryPayload) error {
	const op = "update category"
	if id == "" {
		return apperr.Validation("id", "Category id is required")
	}
	_, err := c.call(ctx, op, fiber.Patch(c.url("/api/categories", id)), updateBody(p))
	return err
}

func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	const op = "delete category"
	if id == "" {
		return apperr.Validation("id", "Category id is required")
	}
	_, err := c.call(ctx, op, fiber.Delete(c.url("/api/categories", id)), nil)
	return err
}

// updateBody turns a partial update into the wire body. An empty parent id means "make
// top-level" and is sent as an explicit null.
func updateBody(p model.UpdateCategoryPayload) map[string]interface{} {
	body := make(map[string]interface{})
	if p.Name != nil {
		body["name"] = *p.Name
	}
	if p.Slug != nil {
		body["slug"] = *p.Slug
	}
	if p.Description != nil {
		body["description"] = *p.Description
	}
	if p.ParentID != nil {
		if *p.ParentID == "" {
			body["parent_id"] = nil
		} else {
			body["parent_id"] = *p.ParentID
		}
	}
	if p.ImageURL != nil {
		body["image_url"] = *p.ImageURL
	}
	if p.IsActive != nil {
		body["is_active"] = *p.IsActive
	}
	if p.SortOrder != nil {
		body["sort_order"] = *p.SortOrder
	}
	return body
}

func toCategory(m map[string]interface{}) model.Category {
	active := true
	if v, ok := m["is_active"]; ok && v != nil {
		active = cast.ToBool(v)
	}
	return model.Category{
		CategoryID:  cast.ToString(first(m, "category_id", "id")),
		Name:        cast.ToString(m["name"]),
		Slug:        cast.ToString(m["slug"]),
		Description: cast.ToString(m["description"]),
		ParentID:    optionalString(m["parent_id"]),
		ImageURL:    optionalString(m["image_url"]),
		SortOrder:   cast.ToInt(m["sort_order"]),
		IsActive:    active,
	}
}
