package ui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"storefinder/internal/search"
)

// Forwarder delivers snapshots produced on dispatcher goroutines to the
// program. Snapshots are coalesced so only the newest pending one is sent.
type Forwarder struct {
	mu      sync.Mutex
	latest  search.Snapshot
	pending bool

	wake chan struct{}
	done chan struct{}
	once sync.Once
}

// NewForwarder creates an idle forwarder
func NewForwarder() *Forwarder {
	return &Forwarder{
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
}

// Snapshot records snap for delivery. It matches search.WithNotify.
func (f *Forwarder) Snapshot(snap search.Snapshot) {
	f.mu.Lock()
	if !f.pending || snap.Newer(f.latest) {
		f.latest = snap
		f.pending = true
	}
	f.mu.Unlock()

	select {
	case f.wake <- struct{}{}:
	default:
	}
}

// Attach starts delivering to p until Close
func (f *Forwarder) Attach(p *tea.Program) {
	go func() {
		for {
			select {
			case <-f.done:
				return
			case <-f.wake:
				if msg, ok := f.take(); ok {
					p.Send(msg)
				}
			}
		}
	}()
}

func (f *Forwarder) take() (SnapshotMsg, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.pending {
		return SnapshotMsg{}, false
	}
	f.pending = false
	return SnapshotMsg{Snapshot: f.latest}, true
}

// Close stops delivery. Safe to call multiple times.
func (f *Forwarder) Close() {
	f.once.Do(func() { close(f.done) })
}
