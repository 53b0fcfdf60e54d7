package domain

import "strings"

// Store is a single search result returned by the store directory
type Store struct {
	Name     string `json:"name"`
	Postcode string `json:"postcode"`
}

// Key returns the list identity of a store. The directory has no unique id,
// so the (name, postcode) pair stands in for one. Collisions are not deduplicated.
func (s Store) Key() string {
	return s.Name + "\x00" + s.Postcode
}

// FetchRequest is one page request sent to the store directory
type FetchRequest struct {
	Query    string // raw query as typed; trimmed by the transport
	Offset   int    // zero-based index of the first store to return
	PageSize int    // maximum number of stores to return
	Seq      uint64 // issue-order tag, assigned by the dispatcher
}

// Term returns the query as it is sent over the wire
func (r FetchRequest) Term() string {
	return strings.TrimSpace(r.Query)
}

// IsFirstPage reports whether the response to r replaces the displayed results
func (r FetchRequest) IsFirstPage() bool {
	return r.Offset == 0
}

// ResultPage is the response unit of the store directory
type ResultPage struct {
	Portion    []Store `json:"portion"`
	TotalCount int     `json:"total_count"`
}
