package catalog

import (
	"strings"

	"go-storefront-admin/internal/apperr"
	"go-storefront-admin/internal/model"
	"go-storefront-admin/pkg/validator"
)

// ValidateCreate normalises a create payload and checks it against the current list.
// The returned payload has a trimmed name, a slug (derived from the name when blank) and a nil
// parent when none was chosen.
func ValidateCreate(p model.CreateCategoryPayload, categories []model.Category) (model.CreateCategoryPayload, error) {
	p.Name = strings.TrimSpace(p.Name)
	p.Description = strings.TrimSpace(p.Description)
	p.Slug = strings.TrimSpace(p.Slug)
	if p.Slug == "" {
		p.Slug = DeriveSlug(p.Name)
	}
	p.ParentID = normaliseRef(p.ParentID)

	if err := firstError(validator.ValidateStruct(p)); err != nil {
		return p, err
	}
	if p.ParentID != nil {
		if err := checkParent(categories, "", *p.ParentID); err != nil {
			return p, err
		}
	}
	return p, nil
}

// ValidateUpdate normalises a partial update for category id.
func ValidateUpdate(id string, p model.UpdateCategoryPayload, categories []model.Category) (model.UpdateCategoryPayload, error) {
	if strings.TrimSpace(id) == "" {
		return p, apperr.Validation("category_id", "Category id is required")
	}
	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		p.Name = &name
	}
	if p.Slug != nil {
		slug := strings.TrimSpace(*p.Slug)
		if slug == "" && p.Name != nil {
			slug = DeriveSlug(*p.Name)
		}
		p.Slug = &slug
	}
	if p.Description != nil {
		d := strings.TrimSpace(*p.Description)
		p.Description = &d
	}

	if err := firstError(validator.ValidateStruct(p)); err != nil {
		return p, err
	}
	// An empty ParentID means "make top-level" and needs no check.
	if p.ParentID != nil && strings.TrimSpace(*p.ParentID) != "" {
		parent := strings.TrimSpace(*p.ParentID)
		p.ParentID = &parent
		if parent == id {
			return p, apperr.Validation("parent_id", "A category cannot be its own parent")
		}
		if HasChildren(categories, id) {
			return p, apperr.Validation("parent_id", "A category with subcategories cannot become a subcategory")
		}
		if err := checkParent(categories, id, parent); err != nil {
			return p, err
		}
	}
	return p, nil
}

func checkParent(categories []model.Category, editingID, parentID string) error {
	for _, c := range AvailableParentOptions(categories, editingID) {
		if c.CategoryID == parentID {
			return nil
		}
	}
	return apperr.Validation("parent_id", "Parent must be an existing top-level category")
}

func normaliseRef(ref *string) *string {
	if ref == nil {
		return nil
	}
	v := strings.TrimSpace(*ref)
	if v == "" {
		return nil
	}
	return &v
}

func firstError(errs []*validator.ErrorResponse) error {
	if len(errs) == 0 {
		return nil
	}
	e := errs[0]
	switch e.Tag {
	case "notblank":
		return apperr.Validation("name", "Name is required")
	case "slug":
		return apperr.Validation("slug", "Slug may only contain lower-case letters, digits and hyphens")
	default:
		return apperr.Validation(strings.ToLower(e.Field), "Invalid value for "+e.Field)
	}
}
