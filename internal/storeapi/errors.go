package storeapi

import (
	"fmt"
)

// Kind classifies a failed request to the store directory
type Kind int

const (
	// KindNetwork covers connection failures and timeouts
	KindNetwork Kind = iota
	// KindStatus is a non-success HTTP status
	KindStatus
	// KindDecode is a body that is not the expected JSON
	KindDecode
	// KindProtocol is well-formed JSON that breaks the paging contract
	KindProtocol
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindStatus:
		return "status"
	case KindDecode:
		return "decode"
	case KindProtocol:
		return "protocol"
	default:
		return "unknown"
	}
}

// Error is a transport error returned by Client.Fetch
type Error struct {
	Kind       Kind
	StatusCode int // set for KindStatus
	URL        string
	Err        error
}

func (e *Error) Error() string {
	if e.Kind == KindStatus {
		return fmt.Sprintf("store directory %s: unexpected status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("store directory %s: %s error: %v", e.URL, e.Kind, e.Err)
}

// Unwrap returns the underlying cause for error chain support.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error of the same kind, so errors.Is(err, &Error{Kind: KindStatus}) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}
