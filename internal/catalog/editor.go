package catalog

import (
	"context"
	"strings"

	"go-storefront-admin/internal/apperr"
	"go-storefront-admin/internal/model"
)

type EditorState string

const (
	EditorClosed     EditorState = "closed"
	EditorOpenCreate EditorState = "open_create"
	EditorOpenEdit   EditorState = "open_edit"
)

type Form struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	ParentID    string `json:"parent_id"`
}

// Submitter performs the remote write once the editor's form validated.
type Submitter interface {
	CreateCategory(ctx context.Context, p model.CreateCategoryPayload) (*model.Category, error)
	UpdateCategory(ctx context.Context, id string, p model.UpdateCategoryPayload) error
}

// EditorSnapshot is the editor as the UI sees it.
type EditorSnapshot struct {
	State              EditorState      `json:"state"`
	TargetID           string           `json:"target_id,omitempty"`
	Form               Form             `json:"form"`
	SlugManuallyEdited bool             `json:"slug_manually_edited"`
	ParentOptions      []model.Category `json:"parent_options"`
	Error              string           `json:"error,omitempty"`
}

// Editor is the create/edit modal flow for one category. It is not safe for concurrent use.
type Editor struct {
	state              EditorState
	targetID           string
	form               Form
	slugManuallyEdited bool
	lastError          string
}

func NewEditor() *Editor {
	return &Editor{state: EditorClosed}
}

func (e *Editor) State() EditorState { return e.state }

func (e *Editor) OpenCreate() {
	e.state = EditorOpenCreate
	e.targetID = ""
	e.form = Form{}
	e.slugManuallyEdited = false
	e.lastError = ""
}

// OpenEdit pre-fills the form from target. The existing slug counts as manually edited so
// renaming does not silently overwrite it.
func (e *Editor) OpenEdit(target model.Category) {
	e.state = EditorOpenEdit
	e.targetID = target.CategoryID
	e.form = Form{
		Name:        target.Name,
		Slug:        target.Slug,
		Description: target.Description,
	}
	if target.ParentID != nil {
		e.form.ParentID = *target.ParentID
	}
	e.slugManuallyEdited = true
	e.lastError = ""
}

func (e *Editor) SetName(name string) {
	e.form.Name = name
	if !e.slugManuallyEdited {
		e.form.Slug = DeriveSlug(name)
	}
}

func (e *Editor) SetSlug(slug string) {
	e.form.Slug = slug
	e.slugManuallyEdited = true
}

func (e *Editor) SetDescription(d string) { e.form.Description = d }

func (e *Editor) SetParent(id string) { e.form.ParentID = id }

func (e *Editor) Cancel() {
	e.state = EditorClosed
	e.targetID = ""
	e.form = Form{}
	e.slugManuallyEdited = false
	e.lastError = ""
}

// Submit validates the form and hands it to s. Any failure keeps the editor open with the
// form untouched and the message recorded; success closes it.
func (e *Editor) Submit(ctx context.Context, categories []model.Category, s Submitter) error {
	err := e.submit(ctx, categories, s)
	if err != nil {
		e.lastError = apperr.UserMessage(err)
		return err
	}
	e.Cancel()
	return nil
}

func (e *Editor) submit(ctx context.Context, categories []model.Category, s Submitter) error {
	switch e.state {
	case EditorOpenCreate:
		p, err := ValidateCreate(model.CreateCategoryPayload{
			Name:        e.form.Name,
			Slug:        e.form.Slug,
			Description: e.form.Description,
			ParentID:    &e.form.ParentID,
		}, categories)
		if err != nil {
			return err
		}
		_, err = s.CreateCategory(ctx, p)
		return err
	case EditorOpenEdit:
		name := e.form.Name
		if strings.TrimSpace(name) == "" {
			return apperr.Validation("name", "Name is required")
		}
		slug, desc, parent := e.form.Slug, e.form.Description, e.form.ParentID
		p, err := ValidateUpdate(e.targetID, model.UpdateCategoryPayload{
			Name:        &name,
			Slug:        &slug,
			Description: &desc,
			ParentID:    &parent,
		}, categories)
		if err != nil {
			return err
		}
		return s.UpdateCategory(ctx, e.targetID, p)
	default:
		return apperr.Validation("", "Category editor is not open")
	}
}

// Snapshot includes the parent options valid for the current target.
func (e *Editor) Snapshot(categories []model.Category) EditorSnapshot {
	snap := EditorSnapshot{
		State:              e.state,
		TargetID:           e.targetID,
		Form:               e.form,
		SlugManuallyEdited: e.slugManuallyEdited,
		Error:              e.lastError,
	}
	if e.state != EditorClosed {
		snap.ParentOptions = AvailableParentOptions(categories, e.targetID)
	}
	return snap
}
