package search

import (
	"storefinder/internal/domain"
)

// Outcome reports what happened to a response handed to the session
type Outcome int

const (
	// OutcomeApplied means the response changed the displayed state
	OutcomeApplied Outcome = iota
	// OutcomeStale means the response belonged to a superseded request and was dropped
	OutcomeStale
)

func (o Outcome) String() string {
	switch o {
	case OutcomeApplied:
		return "applied"
	case OutcomeStale:
		return "stale"
	default:
		return "unknown"
	}
}

// Session is the search-and-pagination state of one widget instance.
// It is not safe for concurrent use; Dispatcher is its single writer.
type Session struct {
	query   string
	results []domain.Store
	total   int

	pending *domain.FetchRequest // outstanding request for the current query
	failed  *domain.FetchRequest // last failed request for the current query
	err     error
	settled bool // a response for the current query has been applied

	seq     uint64
	version uint64
}

// NewSession creates an empty session: no query, no results, total 0
func NewSession() *Session {
	return &Session{results: []domain.Store{}}
}

// Query returns the current query as typed
func (s *Session) Query() string {
	return s.query
}

// Results returns the displayed stores. The slice must not be modified.
func (s *Session) Results() []domain.Store {
	return s.results
}

// TotalCount returns the total reported by the most recently applied response
func (s *Session) TotalCount() int {
	return s.total
}

// Pending returns the outstanding request, if any
func (s *Session) Pending() (domain.FetchRequest, bool) {
	if s.pending == nil {
		return domain.FetchRequest{}, false
	}
	return *s.pending, true
}

// Err returns the last transport error for the current query
func (s *Session) Err() error {
	return s.err
}

// Settled reports whether a response for the current query has been applied
func (s *Session) Settled() bool {
	return s.settled
}

// CanLoadMore reports whether more stores exist beyond the displayed ones
func (s *Session) CanLoadMore() bool {
	return len(s.results) < s.total
}

// SetQuery records a new query. Any outstanding request becomes stale and is
// returned so the caller can cancel it at the transport layer. Displayed
// results stay until the first page of the new query arrives.
func (s *Session) SetQuery(query string) (domain.FetchRequest, bool) {
	prev, hadPending := s.Pending()
	s.query = query
	s.pending = nil
	s.failed = nil
	s.err = nil
	s.settled = false
	s.version++
	return prev, hadPending
}

// Issue tags and records a new outstanding request for the current query
func (s *Session) Issue(offset, pageSize int) domain.FetchRequest {
	s.seq++
	req := domain.FetchRequest{
		Query:    s.query,
		Offset:   offset,
		PageSize: pageSize,
		Seq:      s.seq,
	}
	s.pending = &req
	s.err = nil
	s.version++
	return req
}

// IsCurrent reports whether req is the outstanding request of the current query
func (s *Session) IsCurrent(req domain.FetchRequest) bool {
	if s.pending == nil || s.pending.Seq != req.Seq || req.Query != s.query {
		return false
	}
	// an append only lines up with the results it was computed from
	return req.IsFirstPage() || req.Offset == len(s.results)
}

// Apply merges a response into the session. The first page replaces the
// displayed results, later pages append. Stale responses leave the session untouched.
func (s *Session) Apply(req domain.FetchRequest, page domain.ResultPage) Outcome {
	if !s.IsCurrent(req) {
		return OutcomeStale
	}

	portion := make([]domain.Store, len(page.Portion))
	copy(portion, page.Portion)

	if req.IsFirstPage() {
		s.results = portion
	} else {
		s.results = append(s.results, portion...)
	}
	s.total = page.TotalCount
	s.pending = nil
	s.failed = nil
	s.err = nil
	s.settled = true
	s.version++
	return OutcomeApplied
}

// Fail records a transport error for req. Displayed results and total are kept.
func (s *Session) Fail(req domain.FetchRequest, err error) Outcome {
	if !s.IsCurrent(req) {
		return OutcomeStale
	}
	failed := req
	s.failed = &failed
	s.pending = nil
	s.err = err
	s.version++
	return OutcomeApplied
}

// Failed returns the last failed request for the current query, if any
func (s *Session) Failed() (domain.FetchRequest, bool) {
	if s.failed == nil {
		return domain.FetchRequest{}, false
	}
	return *s.failed, true
}

// Snapshot returns an immutable copy of the session state
func (s *Session) Snapshot() Snapshot {
	results := make([]domain.Store, len(s.results))
	copy(results, s.results)
	return Snapshot{
		Version:    s.version,
		Query:      s.query,
		Results:    results,
		TotalCount: s.total,
		Busy:       s.pending != nil,
		Settled:    s.settled,
		Err:        s.err,
	}
}
