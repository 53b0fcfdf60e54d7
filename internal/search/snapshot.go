package search

import (
	"storefinder/internal/domain"
)

// Snapshot is a point-in-time copy of a session, handed to the presentation layer.
// Version grows with every session mutation; a consumer keeps the highest one it has seen.
type Snapshot struct {
	Version    uint64
	Query      string
	Results    []domain.Store
	TotalCount int
	Busy       bool // a request for the current query is outstanding
	Scheduled  bool // a query change is waiting out the debounce window
	Settled    bool // a response for the current query has been applied
	Err        error
}

// CanLoadMore reports whether more stores exist beyond the displayed ones
func (s Snapshot) CanLoadMore() bool {
	return len(s.Results) < s.TotalCount
}

// MoreAvailable reports whether a "load more" control should be enabled
func (s Snapshot) MoreAvailable() bool {
	return s.Settled && !s.Busy && s.CanLoadMore()
}

// NoResults reports whether the current query settled with nothing to show
func (s Snapshot) NoResults() bool {
	return s.Settled && s.TotalCount == 0
}

// Newer reports whether s supersedes other
func (s Snapshot) Newer(other Snapshot) bool {
	return s.Version > other.Version
}
