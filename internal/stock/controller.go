// Package stock mediates between the inline stock stepper and the backend's "set absolute
// quantity" call.
//
// Every mutation is shown immediately and committed after a quiet period. A row never has more
// than one write in flight: edits made while a write is outstanding wait for it to resolve before
// their own debounce window starts. A failed write rolls the row back to the backend's value.
package stock

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"go-storefront-admin/internal/apperr"
	"go-storefront-admin/internal/model"
	"go-storefront-admin/pkg/logger"
)

const (
	DefaultDebounce      = 300 * time.Millisecond
	DefaultCommitTimeout = 10 * time.Second
)

var ErrUnknownRow = errors.New("unknown stock row")

// Store is the part of the backend the controller writes through.
type Store interface {
	SetProductStock(ctx context.Context, productID string, quantity int) error
	GetProduct(ctx context.Context, productID string) (*model.Product, error)
}

type Notifier interface {
	Success(message string)
	Error(message string)
}

// Journal records commit outcomes. Optional.
type Journal interface {
	Record(ctx context.Context, c *model.StockCommit) error
}

type Options struct {
	Min           int
	Debounce      time.Duration
	CommitTimeout time.Duration
	Clock         Clock
	Notifier      Notifier
	Journal       Journal
	Logger        *zap.Logger
	// OnChange receives every row state change, outside the controller's lock.
	OnChange func(RowState)
}

type Controller struct {
	store Store
	opts  Options
	clock Clock
	log   *zap.Logger

	mu   sync.Mutex
	rows map[string]*row

	// seq and gen are shared by all rows so a re-tracked row never reuses a forgotten row's numbers.
	seq uint64
	gen uint64

	// writing maps a product to the sequence of its outstanding write. It outlives Forget.
	writing  map[string]uint64
	inflight sync.WaitGroup
}

func NewController(store Store, opts Options) *Controller {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.CommitTimeout <= 0 {
		opts.CommitTimeout = DefaultCommitTimeout
	}
	clock := opts.Clock
	if clock == nil {
		clock = realClock{}
	}
	return &Controller{
		store: store,
		opts:  opts,
		clock: clock,
		log:   logger.OrNop(opts.Logger).Named("stock"),
		rows:    make(map[string]*row),
		writing: make(map[string]uint64),
	}
}

func (c *Controller) Min() int { return c.opts.Min }

// Track registers a row with the backend's quantity. A row with an edit in progress only has
// its confirmed value refreshed so the displayed value never goes back in time.
func (c *Controller) Track(productID string, quantity int) {
	c.mu.Lock()
	r, ok := c.rows[productID]
	switch {
	case !ok:
		r = newRow(productID, quantity)
		c.rows[productID] = r
	case r.busy():
		r.confirmed = quantity
	default:
		r.confirmed = quantity
		r.show(quantity)
	}
	st := r.state()
	c.mu.Unlock()
	c.emit(st)
}

// Load tracks every product of a freshly fetched list.
func (c *Controller) Load(products []model.Product) {
	for _, p := range products {
		c.Track(p.ProductID, p.Quantity)
	}
}

// Forget drops a row. A write already in flight completes but its result is discarded, and a
// re-tracked row with the same id does not write until it has.
func (c *Controller) Forget(productID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if r, ok := c.rows[productID]; ok {
		if r.timer != nil {
			r.timer.Stop()
		}
		delete(c.rows, productID)
	}
}

func (c *Controller) Snapshot(productID string) (RowState, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.rows[productID]
	if !ok {
		return RowState{}, false
	}
	return r.state(), true
}

func (c *Controller) Rows() []RowState {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]RowState, 0, len(c.rows))
	for _, r := range c.rows {
		out = append(out, r.state())
	}
	return out
}

func (c *Controller) Increment(productID string) error {
	return c.mutate(productID, func(r *row) (int, bool) {
		return c.clamp(c.current(r) + 1), true
	})
}

// Decrement is a no-op at the configured minimum.
func (c *Controller) Decrement(productID string) error {
	return c.mutate(productID, func(r *row) (int, bool) {
		cur := c.current(r)
		if cur <= c.opts.Min {
			return 0, false
		}
		return cur - 1, true
	})
}

// Set applies an absolute quantity, clamped at the minimum.
func (c *Controller) Set(productID string, quantity int) error {
	return c.mutate(productID, func(*row) (int, bool) {
		return c.clamp(quantity), true
	})
}

// AdjustBy applies a relative change given as text. Anything that is not a whole number is
// rejected before touching the row.
func (c *Controller) AdjustBy(productID, delta string) error {
	d, err := strconv.Atoi(strings.TrimSpace(delta))
	if err != nil {
		return apperr.Validation("delta", "Adjustment must be a whole number")
	}
	return c.mutate(productID, func(r *row) (int, bool) {
		return c.clamp(c.current(r) + d), true
	})
}

// SetRaw updates the input buffer. Only digits are kept and nothing is scheduled until the
// edit is confirmed or the input loses focus.
func (c *Controller) SetRaw(productID, text string) error {
	c.mu.Lock()
	r, ok := c.rows[productID]
	if !ok {
		c.mu.Unlock()
		return ErrUnknownRow
	}
	r.text = digitsOnly(text)
	r.editing = true
	st := r.state()
	c.mu.Unlock()
	c.emit(st)
	return nil
}

// Blur commits the sanitised input buffer. Without an outstanding raw edit it does nothing, so
// a confirm followed by a blur commits once.
func (c *Controller) Blur(productID string) error {
	return c.mutate(productID, func(r *row) (int, bool) {
		if !r.editing {
			return 0, false
		}
		return sanitize(r.text, c.opts.Min), true
	})
}

// Confirm is the Enter key: same as Blur.
func (c *Controller) Confirm(productID string) error {
	return c.Blur(productID)
}

func (c *Controller) mutate(productID string, next func(r *row) (int, bool)) error {
	c.mu.Lock()
	r, ok := c.rows[productID]
	if !ok {
		c.mu.Unlock()
		return ErrUnknownRow
	}
	v, apply := next(r)
	if !apply {
		c.mu.Unlock()
		return nil
	}
	r.show(v)
	r.pending = true
	r.pendingValue = v
	if !r.inFlight {
		c.scheduleLocked(r)
	}
	st := r.state()
	c.mu.Unlock()
	c.emit(st)
	return nil
}

func (c *Controller) current(r *row) int {
	if r.editing {
		return sanitize(r.text, c.opts.Min)
	}
	return r.value
}

func (c *Controller) clamp(v int) int {
	if v < c.opts.Min {
		return c.opts.Min
	}
	return v
}

func (c *Controller) scheduleLocked(r *row) {
	if r.timer != nil {
		r.timer.Stop()
	}
	c.gen++
	r.gen = c.gen
	id, gen := r.id, r.gen
	r.timer = c.clock.AfterFunc(c.opts.Debounce, func() { c.fire(id, gen) })
}

func (c *Controller) fire(productID string, gen uint64) {
	c.mu.Lock()
	r, ok := c.rows[productID]
	if !ok || r.gen != gen || !r.pending || r.inFlight {
		c.mu.Unlock()
		return
	}
	if _, orphaned := c.writing[productID]; orphaned {
		// A forgotten row's write is still out; commit reschedules this row when it resolves.
		c.mu.Unlock()
		return
	}
	r.timer = nil
	v := r.pendingValue
	r.pending = false
	r.inFlight = true
	r.saving = true
	c.seq++
	r.seq = c.seq
	seq := r.seq
	c.writing[productID] = seq
	st := r.state()
	c.inflight.Add(1)
	c.mu.Unlock()

	c.emit(st)
	go c.commit(productID, v, seq)
}

func (c *Controller) commit(productID string, quantity int, seq uint64) {
	defer c.inflight.Done()

	correlationID := uuid.NewString()
	log := c.log.With(
		zap.String("product_id", productID),
		zap.Int("quantity", quantity),
		zap.Uint64("seq", seq),
		zap.String("correlation_id", correlationID),
	)
	started := c.clock.Now()

	ctx, cancel := context.WithTimeout(context.Background(), c.opts.CommitTimeout)
	err := c.store.SetProductStock(ctx, productID, quantity)
	cancel()

	var fetched *model.Product
	if err != nil {
		// Several optimistic edits may precede the failing one, so the backend decides what to show.
		fctx, fcancel := context.WithTimeout(context.Background(), c.opts.CommitTimeout)
		p, ferr := c.store.GetProduct(fctx, productID)
		fcancel()
		if ferr != nil {
			log.Warn("refetch after failed commit", zap.Error(ferr))
		} else {
			fetched = p
		}
	}

	c.mu.Lock()
	if c.writing[productID] == seq {
		delete(c.writing, productID)
	}
	r, ok := c.rows[productID]
	if !ok || r.seq != seq {
		if ok && r.pending && !r.inFlight {
			c.scheduleLocked(r)
		}
		c.mu.Unlock()
		log.Debug("discarding stale commit result")
		c.record(log, productID, quantity, seq, correlationID, started, err)
		return
	}
	r.inFlight = false
	r.saving = false
	if err == nil {
		r.confirmed = quantity
		if r.pending {
			c.scheduleLocked(r)
		}
	} else {
		if r.timer != nil {
			r.timer.Stop()
			r.timer = nil
		}
		c.gen++
		r.gen = c.gen
		r.pending = false
		if fetched != nil {
			r.confirmed = fetched.Quantity
		}
		r.show(r.confirmed)
	}
	st := r.state()
	c.mu.Unlock()

	c.emit(st)
	c.record(log, productID, quantity, seq, correlationID, started, err)
	if err != nil {
		log.Warn("stock commit failed, rolled back", zap.Int("restored", st.Value), zap.Error(err))
		c.notifyError(apperr.UserMessage(err))
		return
	}
	log.Info("stock committed")
	c.notifySuccess("Stock updated")
}

func (c *Controller) record(log *zap.Logger, productID string, quantity int, seq uint64, correlationID string, started time.Time, err error) {
	if c.opts.Journal == nil {
		return
	}
	entry := &model.StockCommit{
		ProductID:     productID,
		Quantity:      quantity,
		Sequence:      seq,
		Success:       err == nil,
		CorrelationID: correlationID,
		DurationMs:    c.clock.Now().Sub(started).Milliseconds(),
	}
	entry.CreatedBy = "stock-controller"
	if err != nil {
		entry.Error = err.Error()
	}
	ctx, cancel := context.WithTimeout(context.Background(), c.opts.CommitTimeout)
	defer cancel()
	if jerr := c.opts.Journal.Record(ctx, entry); jerr != nil {
		log.Error("journal stock commit", zap.Error(jerr))
	}
}

// Flush fires every pending debounce window now.
func (c *Controller) Flush() {
	type due struct {
		id  string
		gen uint64
	}
	var fire []due

	c.mu.Lock()
	for _, r := range c.rows {
		if _, orphaned := c.writing[r.id]; orphaned {
			continue
		}
		if r.pending && !r.inFlight && r.timer != nil {
			r.timer.Stop()
			fire = append(fire, due{r.id, r.gen})
		}
	}
	c.mu.Unlock()

	for _, d := range fire {
		c.fire(d.id, d.gen)
	}
}

// Wait blocks until no write is in flight.
func (c *Controller) Wait() {
	c.inflight.Wait()
}

// Drain flushes and waits until every pending edit has reached the backend or ctx is done.
//
// When ctx ends first the waiter goroutine outlives Drain until the outstanding writes resolve.
// Each of them is bounded by CommitTimeout, and at most one waiter exists per Drain call.
func (c *Controller) Drain(ctx context.Context) error {
	for {
		c.Flush()
		done := make(chan struct{})
		go func() {
			c.Wait()
			close(done)
		}()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-done:
		}
		if !c.hasPending() {
			return nil
		}
	}
}

func (c *Controller) hasPending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.writing) > 0 {
		return true
	}
	for _, r := range c.rows {
		if r.pending || r.inFlight {
			return true
		}
	}
	return false
}

func (c *Controller) emit(st RowState) {
	if c.opts.OnChange != nil {
		c.opts.OnChange(st)
	}
}

func (c *Controller) notifySuccess(msg string) {
	if c.opts.Notifier != nil {
		c.opts.Notifier.Success(msg)
	}
}

func (c *Controller) notifyError(msg string) {
	if c.opts.Notifier != nil {
		c.opts.Notifier.Error(msg)
	}
}
