package model

// Category mirrors the storefront backend's category record.
// ParentID is nil for top-level categories.
type Category struct {
	CategoryID  string  `json:"category_id"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description string  `json:"description"`
	ParentID    *string `json:"parent_id"`
	ImageURL    *string `json:"image_url"`
	SortOrder   int     `json:"sort_order"`
	IsActive    bool    `json:"is_active"`
}

func (c Category) IsTopLevel() bool {
	return c.ParentID == nil || *c.ParentID == ""
}

type CreateCategoryPayload struct {
	Name        string  `json:"name" validate:"notblank"`
	Slug        string  `json:"slug" validate:"slug"`
	Description string  `json:"description,omitempty"`
	ParentID    *string `json:"parent_id,omitempty"`
	ImageURL    *string `json:"image_url,omitempty"`
}

// UpdateCategoryPayload has partial-update semantics: nil fields are left untouched.
type UpdateCategoryPayload struct {
	Name        *string `json:"name,omitempty" validate:"omitnil,notblank"`
	Slug        *string `json:"slug,omitempty" validate:"omitnil,slug"`
	Description *string `json:"description,omitempty"`
	ParentID    *string `json:"parent_id,omitempty"`
	ImageURL    *string `json:"image_url,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
	SortOrder   *int    `json:"sort_order,omitempty"`
}
