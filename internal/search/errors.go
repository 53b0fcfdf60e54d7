package search

import "errors"

var (
	// ErrClosed is returned by operations on a closed dispatcher
	ErrClosed = errors.New("search: dispatcher closed")
	// ErrNothingToLoad is returned by LoadMore when every store is already displayed
	ErrNothingToLoad = errors.New("search: nothing more to load")
	// ErrBusy is returned by LoadMore while a request is outstanding or the query has not settled
	ErrBusy = errors.New("search: request outstanding")
	// ErrNothingToRetry is returned by Retry when the current query has no failed request
	ErrNothingToRetry = errors.New("search: nothing to retry")
)
