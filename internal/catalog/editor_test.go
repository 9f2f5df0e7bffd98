package catalog

import (
	"context"
	"testing"

	"go-storefront-admin/internal/apperr"
	"go-storefront-admin/internal/model"
)

type fakeSubmitter struct {
	created []model.CreateCategoryPayload
	updated map[string]model.UpdateCategoryPayload
	err     error
}

func (f *fakeSubmitter) CreateCategory(_ context.Context, p model.CreateCategoryPayload) (*model.Category, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = append(f.created, p)
	return &model.Category{CategoryID: "new", Name: p.Name, Slug: p.Slug}, nil
}

func (f *fakeSubmitter) UpdateCategory(_ context.Context, id string, p model.UpdateCategoryPayload) error {
	if f.err != nil {
		return f.err
	}
	if f.updated == nil {
		f.updated = map[string]model.UpdateCategoryPayload{}
	}
	f.updated[id] = p
	return nil
}

func TestEditorCreateDerivesSlug(t *testing.T) {
	e := NewEditor()
	e.OpenCreate()
	e.SetName("Dessert Wine!!")

	if got := e.Snapshot(nil).Form.Slug; got != "dessert-wine" {
		t.Fatalf("slug = %q", got)
	}

	sub := &fakeSubmitter{}
	if err := e.Submit(context.Background(), wineCategories(), sub); err != nil {
		t.Fatal(err)
	}
	if len(sub.created) != 1 || sub.created[0].Slug != "dessert-wine" {
		t.Fatalf("created = %+v", sub.created)
	}
	if e.State() != EditorClosed {
		t.Fatalf("state = %s after successful submit", e.State())
	}
}

func TestEditorManualSlugStopsDerivation(t *testing.T) {
	e := NewEditor()
	e.OpenCreate()
	e.SetName("Red")
	e.SetSlug("reds")
	e.SetName("Red Wine")

	if got := e.Snapshot(nil).Form.Slug; got != "reds" {
		t.Fatalf("slug = %q, manual slug overwritten", got)
	}
}

func TestEditorEditKeepsExistingSlug(t *testing.T) {
	cats := wineCategories()
	e := NewEditor()
	e.OpenEdit(model.Category{CategoryID: "2", Name: "Cabernet", Slug: "cab", ParentID: ref("1")})
	e.SetName("Cabernet Sauvignon")

	snap := e.Snapshot(cats)
	if snap.State != EditorOpenEdit || snap.Form.Slug != "cab" || !snap.SlugManuallyEdited {
		t.Fatalf("snapshot = %+v", snap)
	}
	if snap.Form.ParentID != "1" {
		t.Fatalf("parent = %q", snap.Form.ParentID)
	}
	for _, opt := range snap.ParentOptions {
		if opt.CategoryID == "2" {
			t.Fatal("edited category offered as its own parent")
		}
	}

	sub := &fakeSubmitter{}
	if err := e.Submit(context.Background(), cats, sub); err != nil {
		t.Fatal(err)
	}
	if *sub.updated["2"].Name != "Cabernet Sauvignon" || *sub.updated["2"].Slug != "cab" {
		t.Fatalf("update = %+v", sub.updated["2"])
	}
}

func TestEditorFailureKeepsFormOpen(t *testing.T) {
	e := NewEditor()
	e.OpenCreate()
	e.SetName("Rosé")
	e.SetDescription("Pink")

	sub := &fakeSubmitter{err: apperr.Rejected(409, "Slug already exists")}
	if err := e.Submit(context.Background(), nil, sub); err == nil {
		t.Fatal("expected error")
	}

	snap := e.Snapshot(nil)
	if snap.State != EditorOpenCreate {
		t.Fatalf("state = %s, want open", snap.State)
	}
	if snap.Form.Name != "Rosé" || snap.Form.Description != "Pink" {
		t.Fatalf("form cleared: %+v", snap.Form)
	}
	if snap.Error != "Slug already exists" {
		t.Fatalf("error = %q", snap.Error)
	}
}

func TestEditorBlankNameNeverSubmits(t *testing.T) {
	e := NewEditor()
	e.OpenCreate()
	e.SetName("   ")

	sub := &fakeSubmitter{}
	err := e.Submit(context.Background(), nil, sub)
	if !apperr.IsValidation(err) {
		t.Fatalf("want validation error, got %v", err)
	}
	if len(sub.created) != 0 {
		t.Fatal("validation failure reached the submitter")
	}
}

func TestEditorCancel(t *testing.T) {
	e := NewEditor()
	e.OpenCreate()
	e.SetName("Red")
	e.Cancel()

	if e.State() != EditorClosed || e.Snapshot(nil).Form.Name != "" {
		t.Fatal("cancel should close and reset")
	}
	if err := e.Submit(context.Background(), nil, &fakeSubmitter{}); err == nil {
		t.Fatal("submit on a closed editor should fail")
	}
}
