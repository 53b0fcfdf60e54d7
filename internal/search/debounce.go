package search

import (
	"sync"
	"time"
)

// Timer is a pending callback that can be cancelled
type Timer interface {
	Stop() bool
}

// Clock schedules callbacks. Tests substitute a manual clock.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Debouncer delays a query until no newer query has arrived for the
// quiescence window. Every Trigger stops the previous timer and schedules a new one.
type Debouncer struct {
	mu      sync.Mutex
	window  time.Duration
	clock   Clock
	timer   Timer
	gen     uint64 // bumped by every Trigger
	query   string // latest pending argument
	fire    func(query string, gen uint64)
	stopped bool
}

// NewDebouncer creates a debouncer calling fire with the settled query.
// fire runs on the clock's goroutine.
func NewDebouncer(window time.Duration, clock Clock, fire func(query string, gen uint64)) *Debouncer {
	if clock == nil {
		clock = realClock{}
	}
	return &Debouncer{
		window: window,
		clock:  clock,
		fire:   fire,
	}
}

// Trigger replaces any pending query with query and restarts the window.
// It returns the generation the eventual fire call will carry.
func (d *Debouncer) Trigger(query string) uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return d.gen
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	d.query = query
	gen := d.gen
	d.timer = d.clock.AfterFunc(d.window, func() {
		d.flush(gen)
	})
	return gen
}

// Pending reports whether a query is waiting for the window to elapse
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// IsCurrent reports whether gen is still the latest scheduled generation.
// A fire callback that lost a race with Trigger sees false.
func (d *Debouncer) IsCurrent(gen uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return !d.stopped && gen == d.gen
}

// Stop cancels the pending query and disables the debouncer. Safe to call multiple times.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

func (d *Debouncer) flush(gen uint64) {
	d.mu.Lock()
	if d.stopped || gen != d.gen {
		d.mu.Unlock()
		return
	}
	query := d.query
	d.timer = nil
	d.mu.Unlock()

	// fire may take the caller's lock, which is held around Trigger
	d.fire(query, gen)
}
