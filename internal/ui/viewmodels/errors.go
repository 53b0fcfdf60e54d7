package viewmodels

import (
	"errors"
	"fmt"

	"storefinder/internal/storeapi"
)

// ErrorText turns a fetch failure into a one-line message
func ErrorText(err error) string {
	var apiErr *storeapi.Error
	if !errors.As(err, &apiErr) {
		return err.Error()
	}
	switch apiErr.Kind {
	case storeapi.KindNetwork:
		return "store directory unreachable"
	case storeapi.KindStatus:
		return fmt.Sprintf("store directory answered %d", apiErr.StatusCode)
	case storeapi.KindDecode:
		return "store directory sent an unreadable response"
	case storeapi.KindProtocol:
		return "store directory sent an inconsistent page"
	default:
		return err.Error()
	}
}
