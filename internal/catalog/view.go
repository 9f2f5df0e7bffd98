package catalog

import "go-storefront-admin/internal/model"

type ModeCounts struct {
	All           int `json:"all"`
	Parents       int `json:"parents"`
	Subcategories int `json:"subcategories"`
}

// View is one consistent snapshot of everything the categories page renders.
type View struct {
	Mode              FilterMode        `json:"mode"`
	Categories        []model.Category  `json:"categories"`
	Parents           []model.Category  `json:"parents"`
	SubcategoryCounts map[string]int    `json:"subcategory_counts"`
	ParentNames       map[string]string `json:"parent_names"`
	Counts            ModeCounts        `json:"counts"`
}

func BuildView(categories []model.Category, mode FilterMode) View {
	parents := DeriveParents(categories)
	return View{
		Mode:              mode,
		Categories:        FilterByMode(categories, mode),
		Parents:           parents,
		SubcategoryCounts: DeriveSubcategoryCounts(categories),
		ParentNames:       DeriveParentNameLookup(categories),
		Counts: ModeCounts{
			All:           len(categories),
			Parents:       len(parents),
			Subcategories: len(categories) - len(parents),
		},
	}
}
