package catalog

import (
	"fmt"
	"math/rand"
	"reflect"
	"testing"

	"go-storefront-admin/internal/model"
)

func ref(s string) *string { return &s }

func wineCategories() []model.Category {
	return []model.Category{
		{CategoryID: "1", Name: "Red"},
		{CategoryID: "2", Name: "Cabernet", ParentID: ref("1")},
	}
}

// randomCategories builds a valid two-level list: every child points at an earlier top-level id.
func randomCategories(r *rand.Rand) []model.Category {
	n := r.Intn(30)
	var list []model.Category
	var parents []string
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("c%d", i)
		c := model.Category{CategoryID: id, Name: "Cat " + id}
		if len(parents) > 0 && r.Intn(2) == 0 {
			c.ParentID = ref(parents[r.Intn(len(parents))])
		} else {
			parents = append(parents, id)
		}
		list = append(list, c)
	}
	r.Shuffle(len(list), func(i, j int) { list[i], list[j] = list[j], list[i] })
	return list
}

func TestScenarioRedCabernet(t *testing.T) {
	cats := wineCategories()

	parents := DeriveParents(cats)
	if len(parents) != 1 || parents[0].CategoryID != "1" {
		t.Fatalf("parents = %+v", parents)
	}
	if got := DeriveSubcategoryCounts(cats); !reflect.DeepEqual(got, map[string]int{"1": 1}) {
		t.Fatalf("counts = %v", got)
	}
	subs := FilterByMode(cats, ModeSubcategories)
	if len(subs) != 1 || subs[0].CategoryID != "2" {
		t.Fatalf("subcategories = %+v", subs)
	}
	names := DeriveParentNameLookup(cats)
	if names[*subs[0].ParentID] != "Red" {
		t.Fatalf("parent name = %q", names[*subs[0].ParentID])
	}
}

func TestSubcategoryCountsCompleteness(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		cats := randomCategories(r)
		counts := DeriveSubcategoryCounts(cats)
		for _, p := range DeriveParents(cats) {
			if _, ok := counts[p.CategoryID]; !ok {
				t.Fatalf("parent %s missing from counts", p.CategoryID)
			}
		}
		total := 0
		for _, n := range counts {
			total += n
		}
		if total != len(FilterByMode(cats, ModeSubcategories)) {
			t.Fatalf("counts sum %d does not match subcategories", total)
		}
	}
}

func TestFilterByModePartition(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	for i := 0; i < 200; i++ {
		cats := randomCategories(r)
		before := append([]model.Category(nil), cats...)

		all := FilterByMode(cats, ModeAll)
		parents := FilterByMode(cats, ModeParents)
		subs := FilterByMode(cats, ModeSubcategories)

		if len(parents)+len(subs) != len(all) {
			t.Fatalf("%d + %d != %d", len(parents), len(subs), len(all))
		}
		if !reflect.DeepEqual(before, cats) {
			t.Fatal("FilterByMode mutated its input")
		}
	}
}

func TestAvailableParentOptions(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	for i := 0; i < 200; i++ {
		cats := randomCategories(r)
		if len(cats) == 0 {
			continue
		}
		editing := cats[r.Intn(len(cats))].CategoryID
		for _, opt := range AvailableParentOptions(cats, editing) {
			if opt.CategoryID == editing {
				t.Fatalf("options include the edited category %s", editing)
			}
			if !opt.IsTopLevel() {
				t.Fatalf("options include subcategory %s", opt.CategoryID)
			}
		}
	}
}

func TestParseMode(t *testing.T) {
	if ParseMode("parents") != ModeParents || ParseMode("subcategories") != ModeSubcategories {
		t.Fatal("known modes not parsed")
	}
	if ParseMode("bogus") != ModeAll || ParseMode("") != ModeAll {
		t.Fatal("unknown mode should fall back to all")
	}
}

func TestBuildView(t *testing.T) {
	cats := append(wineCategories(), model.Category{CategoryID: "3", Name: "White"})
	v := BuildView(cats, ModeParents)

	if v.Counts != (ModeCounts{All: 3, Parents: 2, Subcategories: 1}) {
		t.Fatalf("counts = %+v", v.Counts)
	}
	if len(v.Categories) != 2 {
		t.Fatalf("filtered = %d", len(v.Categories))
	}
	if v.SubcategoryCounts["3"] != 0 {
		t.Fatal("childless parent should be present with zero")
	}
}
