package service

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"go-storefront-admin/internal/apperr"
	"go-storefront-admin/internal/model"
	"go-storefront-admin/internal/remote"
	"go-storefront-admin/internal/repository"
	"go-storefront-admin/internal/stock"
	"go-storefront-admin/pkg/logger"
)

var ErrJournalDisabled = errors.New("stock history is not enabled")

// ProductRow is a product as listed in the console, with its live stock row.
type ProductRow struct {
	model.Product
	Stock stock.RowState `json:"stock"`
}

type InventoryService interface {
	Refresh(ctx context.Context) error
	Products() []ProductRow
	Stock(productID string) (stock.RowState, error)

	Increment(productID string) (stock.RowState, error)
	Decrement(productID string) (stock.RowState, error)
	SetRaw(productID, text string) (stock.RowState, error)
	Blur(productID string) (stock.RowState, error)
	Confirm(productID string) (stock.RowState, error)
	AdjustBy(productID, delta string) (stock.RowState, error)

	History(ctx context.Context, productID string, limit int) ([]model.StockCommit, error)
	Drain(ctx context.Context) error
}

type inventoryService struct {
	store    remote.Store
	stock    *stock.Controller
	journal  repository.StockCommitRepository
	notifier Notifier
	log      *zap.Logger

	mu       sync.RWMutex
	products []model.Product
}

// NewInventoryService wires the product list to ctrl. journal may be nil when the journal is
// disabled.
func NewInventoryService(store remote.Store, ctrl *stock.Controller, journal repository.StockCommitRepository, notifier Notifier, log *zap.Logger) InventoryService {
	return &inventoryService{
		store:    store,
		stock:    ctrl,
		journal:  journal,
		notifier: notifierOrNop(notifier),
		log:      logger.OrNop(log).Named("inventory"),
	}
}

// Refresh reloads products and re-seeds stock rows. Rows with an edit outstanding keep it.
func (s *inventoryService) Refresh(ctx context.Context) error {
	products, err := s.store.ListProducts(ctx)
	if err != nil {
		s.log.Warn("failed to load products", zap.Error(err))
		s.notifier.Error(apperr.UserMessage(err))
		return err
	}

	seen := make(map[string]bool, len(products))
	for _, p := range products {
		seen[p.ProductID] = true
	}
	for _, row := range s.stock.Rows() {
		if !seen[row.ProductID] {
			s.stock.Forget(row.ProductID)
		}
	}
	s.stock.Load(products)

	s.mu.Lock()
	s.products = products
	s.mu.Unlock()
	s.log.Debug("products loaded", zap.Int("count", len(products)))
	return nil
}

// Products returns the last loaded list with quantities taken from the stock rows.
func (s *inventoryService) Products() []ProductRow {
	s.mu.RLock()
	products := make([]model.Product, len(s.products))
	copy(products, s.products)
	s.mu.RUnlock()

	out := make([]ProductRow, 0, len(products))
	for _, p := range products {
		row := ProductRow{Product: p}
		if st, ok := s.stock.Snapshot(p.ProductID); ok {
			row.Stock = st
			row.Quantity = st.Value
		}
		out = append(out, row)
	}
	return out
}

func (s *inventoryService) Stock(productID string) (stock.RowState, error) {
	st, ok := s.stock.Snapshot(productID)
	if !ok {
		return stock.RowState{}, stock.ErrUnknownRow
	}
	return st, nil
}

func (s *inventoryService) apply(productID string, op func() error) (stock.RowState, error) {
	if err := op(); err != nil {
		return stock.RowState{}, err
	}
	return s.Stock(productID)
}

func (s *inventoryService) Increment(productID string) (stock.RowState, error) {
	return s.apply(productID, func() error { return s.stock.Increment(productID) })
}

func (s *inventoryService) Decrement(productID string) (stock.RowState, error) {
	return s.apply(productID, func() error { return s.stock.Decrement(productID) })
}

func (s *inventoryService) SetRaw(productID, text string) (stock.RowState, error) {
	return s.apply(productID, func() error { return s.stock.SetRaw(productID, text) })
}

func (s *inventoryService) Blur(productID string) (stock.RowState, error) {
	return s.apply(productID, func() error { return s.stock.Blur(productID) })
}

func (s *inventoryService) Confirm(productID string) (stock.RowState, error) {
	return s.apply(productID, func() error { return s.stock.Confirm(productID) })
}

// AdjustBy rejects a non-numeric delta with a toast as well as an error.
func (s *inventoryService) AdjustBy(productID, delta string) (stock.RowState, error) {
	st, err := s.apply(productID, func() error { return s.stock.AdjustBy(productID, delta) })
	if apperr.IsValidation(err) {
		s.notifier.Error(apperr.UserMessage(err))
	}
	return st, err
}

func (s *inventoryService) History(ctx context.Context, productID string, limit int) ([]model.StockCommit, error) {
	if s.journal == nil {
		return nil, ErrJournalDisabled
	}
	return s.journal.FindByProduct(ctx, productID, limit)
}

func (s *inventoryService) Drain(ctx context.Context) error {
	return s.stock.Drain(ctx)
}
