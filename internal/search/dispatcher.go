package search

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"storefinder/internal/domain"
	"storefinder/internal/eventbus"
)

const (
	// DefaultDebounce is the quiescence window applied to query changes
	DefaultDebounce = 100 * time.Millisecond
	// DefaultPageSize is the number of stores requested per page
	DefaultPageSize = 3
)

// Fetcher queries the store directory for one page
type Fetcher interface {
	Fetch(ctx context.Context, req domain.FetchRequest) (domain.ResultPage, error)
}

// FetcherFunc adapts a function to Fetcher
type FetcherFunc func(ctx context.Context, req domain.FetchRequest) (domain.ResultPage, error)

// Fetch calls f
func (f FetcherFunc) Fetch(ctx context.Context, req domain.FetchRequest) (domain.ResultPage, error) {
	return f(ctx, req)
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithDebounce sets the quiescence window for query changes.
// Default is DefaultDebounce. Negative values are treated as zero.
func WithDebounce(window time.Duration) Option {
	return func(d *Dispatcher) {
		if window < 0 {
			window = 0
		}
		d.window = window
	}
}

// WithPageSize sets the number of stores requested per page.
// Default is DefaultPageSize; values below 1 are ignored.
func WithPageSize(n int) Option {
	return func(d *Dispatcher) {
		if n > 0 {
			d.pageSize = n
		}
	}
}

// WithClock replaces the timer source used for debouncing.
func WithClock(clock Clock) Option {
	return func(d *Dispatcher) {
		if clock != nil {
			d.clock = clock
		}
	}
}

// WithBus publishes search lifecycle events to bus.
func WithBus(bus eventbus.EventBus) Option {
	return func(d *Dispatcher) {
		d.bus = bus
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithNotify registers a callback receiving a snapshot after every change that
// happens off the caller's goroutine (debounce expiry, fetch completion).
// Snapshots may arrive out of order; compare Version.
func WithNotify(notify func(Snapshot)) Option {
	return func(d *Dispatcher) {
		d.notify = notify
	}
}

// Dispatcher turns query changes and load-more requests into fetches and
// applies their responses to a Session. All session mutations happen under
// one mutex, so callers and fetch goroutines never race on the state.
type Dispatcher struct {
	mu        sync.Mutex
	session   *Session
	fetcher   Fetcher
	debouncer *Debouncer

	window   time.Duration
	pageSize int
	clock    Clock
	bus      eventbus.EventBus
	logger   *slog.Logger
	notify   func(Snapshot)

	ctx           context.Context
	cancel        context.CancelFunc
	cancelPending context.CancelFunc
	wg            sync.WaitGroup
	closed        bool
}

// NewDispatcher creates a dispatcher over a fresh session.
func NewDispatcher(fetcher Fetcher, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		session:  NewSession(),
		fetcher:  fetcher,
		window:   DefaultDebounce,
		pageSize: DefaultPageSize,
		clock:    realClock{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.ctx, d.cancel = context.WithCancel(context.Background())
	d.debouncer = NewDebouncer(d.window, d.clock, d.onSettled)
	return d
}

// PageSize returns the number of stores requested per page
func (d *Dispatcher) PageSize() int {
	return d.pageSize
}

// QueryChanged records query immediately and schedules a first-page fetch
// once the debounce window passes without another change. An in-flight
// request for the previous query is cancelled.
func (d *Dispatcher) QueryChanged(query string) Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return d.snapshotLocked()
	}

	if prev, ok := d.session.SetQuery(query); ok {
		d.cancelInFlightLocked(prev)
	}
	d.debouncer.Trigger(query)
	d.publish(domain.QueryChangedEvent{Query: query})

	return d.snapshotLocked()
}

// LoadMore immediately fetches the next page of the current query
func (d *Dispatcher) LoadMore() (Snapshot, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	switch {
	case d.closed:
		return d.snapshotLocked(), ErrClosed
	case d.session.pending != nil || !d.session.Settled() || d.debouncer.Pending():
		return d.snapshotLocked(), ErrBusy
	case !d.session.CanLoadMore():
		return d.snapshotLocked(), ErrNothingToLoad
	}

	d.issueLocked(len(d.session.Results()))
	return d.snapshotLocked(), nil
}

// Retry re-issues the last failed request of the current query
func (d *Dispatcher) Retry() (Snapshot, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return d.snapshotLocked(), ErrClosed
	}
	if d.session.pending != nil || d.debouncer.Pending() {
		return d.snapshotLocked(), ErrBusy
	}
	failed, ok := d.session.Failed()
	if !ok {
		return d.snapshotLocked(), ErrNothingToRetry
	}

	d.issueLocked(failed.Offset)
	return d.snapshotLocked(), nil
}

// Snapshot returns the current state
func (d *Dispatcher) Snapshot() Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.snapshotLocked()
}

// Close stops the debounce timer, cancels in-flight requests and waits for
// their goroutines. Responses arriving afterwards are ignored.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	d.debouncer.Stop()
	d.cancel()
	d.mu.Unlock()

	d.wg.Wait()
}

// onSettled runs on the clock goroutine when the debounce window elapses
func (d *Dispatcher) onSettled(query string, gen uint64) {
	d.mu.Lock()
	if d.closed || !d.debouncer.IsCurrent(gen) || query != d.session.Query() {
		d.mu.Unlock()
		return
	}
	d.issueLocked(0)
	snap := d.snapshotLocked()
	d.mu.Unlock()

	d.emit(snap)
}

func (d *Dispatcher) issueLocked(offset int) {
	req := d.session.Issue(offset, d.pageSize)

	ctx, cancel := context.WithCancel(d.ctx)
	d.cancelPending = cancel

	d.logger.Debug("fetch started",
		slog.String("query", req.Query),
		slog.Int("offset", req.Offset),
		slog.Uint64("seq", req.Seq),
	)
	d.publish(domain.FetchStartedEvent{Request: req})

	d.wg.Add(1)
	go d.run(ctx, cancel, req)
}

func (d *Dispatcher) run(ctx context.Context, cancel context.CancelFunc, req domain.FetchRequest) {
	defer d.wg.Done()
	defer cancel()

	page, err := d.fetcher.Fetch(ctx, req)

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}

	if err != nil {
		d.failLocked(req, err)
	} else {
		d.applyLocked(req, page)
	}
	snap := d.snapshotLocked()
	d.mu.Unlock()

	d.emit(snap)
}

func (d *Dispatcher) applyLocked(req domain.FetchRequest, page domain.ResultPage) {
	if d.session.Apply(req, page) == OutcomeStale {
		d.logger.Debug("stale response dropped",
			slog.String("query", req.Query),
			slog.String("current", d.session.Query()),
			slog.Uint64("seq", req.Seq),
		)
		d.publish(domain.StaleResponseEvent{Request: req, CurrentQuery: d.session.Query()})
		return
	}
	d.cancelPending = nil

	d.logger.Debug("page applied",
		slog.String("query", req.Query),
		slog.Int("offset", req.Offset),
		slog.Int("received", len(page.Portion)),
		slog.Int("total", page.TotalCount),
	)
	d.publish(domain.PageAppliedEvent{
		Request:    req,
		Received:   len(page.Portion),
		Displayed:  len(d.session.Results()),
		TotalCount: d.session.TotalCount(),
	})
}

func (d *Dispatcher) failLocked(req domain.FetchRequest, err error) {
	if d.session.Fail(req, err) == OutcomeStale {
		if errors.Is(err, context.Canceled) {
			return // reported by cancelInFlightLocked
		}
		d.publish(domain.StaleResponseEvent{Request: req, CurrentQuery: d.session.Query()})
		return
	}
	d.cancelPending = nil

	d.logger.Warn("fetch failed",
		slog.String("query", req.Query),
		slog.Int("offset", req.Offset),
		slog.String("error", err.Error()),
	)
	d.publish(domain.FetchFailedEvent{Request: req, Err: err})
}

func (d *Dispatcher) cancelInFlightLocked(req domain.FetchRequest) {
	if d.cancelPending != nil {
		d.cancelPending()
		d.cancelPending = nil
	}
	d.logger.Debug("fetch cancelled", slog.String("query", req.Query), slog.Uint64("seq", req.Seq))
	d.publish(domain.FetchCancelledEvent{Request: req})
}

func (d *Dispatcher) snapshotLocked() Snapshot {
	snap := d.session.Snapshot()
	snap.Scheduled = d.debouncer.Pending()
	return snap
}

func (d *Dispatcher) publish(event domain.DomainEvent) {
	if d.bus != nil {
		d.bus.Publish(event)
	}
}

func (d *Dispatcher) emit(snap Snapshot) {
	if d.notify != nil {
		d.notify(snap)
	}
}
