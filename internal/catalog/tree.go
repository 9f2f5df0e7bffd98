// Package catalog derives the category hierarchy views the admin console needs from the flat
// category list the backend returns, and guards the two-level hierarchy on create and update.
//
// Every function here is a pure projection of its input: the source slice is never mutated and
// nothing is cached between calls.
package catalog

import "go-storefront-admin/internal/model"

type FilterMode string

const (
	ModeAll           FilterMode = "all"
	ModeParents       FilterMode = "parents"
	ModeSubcategories FilterMode = "subcategories"
)

// ParseMode maps a query value to a FilterMode. Unknown values fall back to ModeAll.
func ParseMode(s string) FilterMode {
	switch FilterMode(s) {
	case ModeParents, ModeSubcategories:
		return FilterMode(s)
	default:
		return ModeAll
	}
}

// DeriveParents returns the top-level categories in input order.
func DeriveParents(categories []model.Category) []model.Category {
	parents := make([]model.Category, 0, len(categories))
	for _, c := range categories {
		if c.IsTopLevel() {
			parents = append(parents, c)
		}
	}
	return parents
}

// DeriveSubcategoryCounts maps every top-level category id to its number of children.
// Parents without children are present with a zero count.
func DeriveSubcategoryCounts(categories []model.Category) map[string]int {
	counts := make(map[string]int, len(categories))
	for _, c := range categories {
		if c.IsTopLevel() {
			if _, ok := counts[c.CategoryID]; !ok {
				counts[c.CategoryID] = 0
			}
		}
	}
	for _, c := range categories {
		if c.IsTopLevel() {
			continue
		}
		if _, ok := counts[*c.ParentID]; ok {
			counts[*c.ParentID]++
		}
	}
	return counts
}

// DeriveParentNameLookup maps every category id to its own name, so a subcategory can render
// its parent as names[*cat.ParentID].
func DeriveParentNameLookup(categories []model.Category) map[string]string {
	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.CategoryID] = c.Name
	}
	return names
}

// FilterByMode projects categories by mode into a new slice.
func FilterByMode(categories []model.Category, mode FilterMode) []model.Category {
	out := make([]model.Category, 0, len(categories))
	for _, c := range categories {
		switch mode {
		case ModeParents:
			if !c.IsTopLevel() {
				continue
			}
		case ModeSubcategories:
			if c.IsTopLevel() {
				continue
			}
		}
		out = append(out, c)
	}
	return out
}

// AvailableParentOptions lists the categories that may be assigned as a parent while
// excludeID is being edited: top-level categories other than excludeID itself.
func AvailableParentOptions(categories []model.Category, excludeID string) []model.Category {
	options := make([]model.Category, 0, len(categories))
	for _, c := range categories {
		if !c.IsTopLevel() || (excludeID != "" && c.CategoryID == excludeID) {
			continue
		}
		options = append(options, c)
	}
	return options
}

// HasChildren reports whether any category references id as its parent.
func HasChildren(categories []model.Category, id string) bool {
	for _, c := range categories {
		if !c.IsTopLevel() && *c.ParentID == id {
			return true
		}
	}
	return false
}

// Find returns the category with the given id.
func Find(categories []model.Category, id string) (model.Category, bool) {
	for _, c := range categories {
		if c.CategoryID == id {
			return c, true
		}
	}
	return model.Category{}, false
}
