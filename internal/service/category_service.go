package service

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"go-storefront-admin/internal/apperr"
	"go-storefront-admin/internal/catalog"
	"go-storefront-admin/internal/model"
	"go-storefront-admin/internal/remote"
	"go-storefront-admin/pkg/logger"
)

// EditorPatch carries the fields typed into the category modal. Nil fields are left alone.
type EditorPatch struct {
	Name        *string `json:"name"`
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
	ParentID    *string `json:"parent_id"`
}

type CategoryService interface {
	Refresh(ctx context.Context) error
	View(mode catalog.FilterMode) catalog.View
	ParentOptions(excludeID string) []model.Category
	Create(ctx context.Context, p model.CreateCategoryPayload) error
	Update(ctx context.Context, id string, p model.UpdateCategoryPayload) error
	Delete(ctx context.Context, id string) error

	OpenEditor(id string) (catalog.EditorSnapshot, error)
	EditEditor(patch EditorPatch) (catalog.EditorSnapshot, error)
	SubmitEditor(ctx context.Context) (catalog.EditorSnapshot, error)
	CancelEditor() catalog.EditorSnapshot
	Editor() catalog.EditorSnapshot
}

type categoryService struct {
	store    remote.Store
	notifier Notifier
	log      *zap.Logger

	mu         sync.RWMutex
	categories []model.Category

	// editorMu is held across the submit round-trip so a second submit waits for the first.
	editorMu sync.Mutex
	editor   *catalog.Editor
}

func NewCategoryService(store remote.Store, notifier Notifier, log *zap.Logger) CategoryService {
	return &categoryService{
		store:    store,
		notifier: notifierOrNop(notifier),
		log:      logger.OrNop(log).Named("categories"),
		editor:   catalog.NewEditor(),
	}
}

func (s *categoryService) snapshot() []model.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Category, len(s.categories))
	copy(out, s.categories)
	return out
}

func (s *categoryService) replace(categories []model.Category) {
	s.mu.Lock()
	s.categories = categories
	s.mu.Unlock()
}

// Refresh reloads the flat list. On failure the previous list is kept and the error surfaced.
func (s *categoryService) Refresh(ctx context.Context) error {
	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		s.log.Warn("failed to load categories", zap.Error(err))
		s.notifier.Error(apperr.UserMessage(err))
		return err
	}
	s.replace(categories)
	s.log.Debug("categories loaded", zap.Int("count", len(categories)))
	return nil
}

// reload follows a successful mutation. Its failure is logged only: the mutation already
// produced its one notification.
func (s *categoryService) reload(ctx context.Context) {
	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		s.log.Warn("reload after mutation failed", zap.Error(err))
		return
	}
	s.replace(categories)
}

func (s *categoryService) View(mode catalog.FilterMode) catalog.View {
	return catalog.BuildView(s.snapshot(), mode)
}

func (s *categoryService) ParentOptions(excludeID string) []model.Category {
	return catalog.AvailableParentOptions(s.snapshot(), excludeID)
}

func (s *categoryService) Create(ctx context.Context, p model.CreateCategoryPayload) error {
	p, err := catalog.ValidateCreate(p, s.snapshot())
	if err == nil {
		_, err = s.store.CreateCategory(ctx, p)
	}
	return s.finish(ctx, "create", err, "Category created")
}

func (s *categoryService) Update(ctx context.Context, id string, p model.UpdateCategoryPayload) error {
	p, err := catalog.ValidateUpdate(id, p, s.snapshot())
	if err == nil {
		err = s.store.UpdateCategory(ctx, id, p)
	}
	return s.finish(ctx, "update", err, "Category updated")
}

// Delete forwards to the backend without checking for children or products; the backend owns
// those rules and its message is shown as is.
func (s *categoryService) Delete(ctx context.Context, id string) error {
	var err error
	if id == "" {
		err = apperr.Validation("category_id", "Category id is required")
	} else {
		err = s.store.DeleteCategory(ctx, id)
	}
	return s.finish(ctx, "delete", err, "Category deleted")
}

func (s *categoryService) finish(ctx context.Context, action string, err error, success string) error {
	if err != nil {
		s.log.Info("category "+action+" failed", zap.Error(err))
		s.notifier.Error(apperr.UserMessage(err))
		return err
	}
	s.notifier.Success(success)
	s.reload(ctx)
	return nil
}

// OpenEditor opens the modal for create (empty id) or edit.
func (s *categoryService) OpenEditor(id string) (catalog.EditorSnapshot, error) {
	categories := s.snapshot()
	s.editorMu.Lock()
	defer s.editorMu.Unlock()
	if id == "" {
		s.editor.OpenCreate()
		return s.editor.Snapshot(categories), nil
	}
	target, ok := catalog.Find(categories, id)
	if !ok {
		return s.editor.Snapshot(categories), apperr.Validation("category_id", "Category not found")
	}
	s.editor.OpenEdit(target)
	return s.editor.Snapshot(categories), nil
}

func (s *categoryService) EditEditor(patch EditorPatch) (catalog.EditorSnapshot, error) {
	categories := s.snapshot()
	s.editorMu.Lock()
	defer s.editorMu.Unlock()
	if s.editor.State() == catalog.EditorClosed {
		return s.editor.Snapshot(categories), apperr.Validation("", "Category editor is not open")
	}
	// Name before slug: a slug typed in the same patch wins over the derived one.
	if patch.Name != nil {
		s.editor.SetName(*patch.Name)
	}
	if patch.Slug != nil {
		s.editor.SetSlug(*patch.Slug)
	}
	if patch.Description != nil {
		s.editor.SetDescription(*patch.Description)
	}
	if patch.ParentID != nil {
		s.editor.SetParent(*patch.ParentID)
	}
	return s.editor.Snapshot(categories), nil
}

func (s *categoryService) SubmitEditor(ctx context.Context) (catalog.EditorSnapshot, error) {
	s.editorMu.Lock()
	defer s.editorMu.Unlock()

	action, success := "create", "Category created"
	if s.editor.State() == catalog.EditorOpenEdit {
		action, success = "update", "Category updated"
	}
	err := s.editor.Submit(ctx, s.snapshot(), s.store)
	err = s.finish(ctx, action, err, success)
	return s.editor.Snapshot(s.snapshot()), err
}

func (s *categoryService) CancelEditor() catalog.EditorSnapshot {
	s.editorMu.Lock()
	defer s.editorMu.Unlock()
	s.editor.Cancel()
	return s.editor.Snapshot(nil)
}

func (s *categoryService) Editor() catalog.EditorSnapshot {
	categories := s.snapshot()
	s.editorMu.Lock()
	defer s.editorMu.Unlock()
	return s.editor.Snapshot(categories)
}
