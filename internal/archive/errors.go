package archive

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrRedirectLoop is returned by fetchers when a redirect chain exceeds the
// hop limit without settling.
var ErrRedirectLoop = errors.New("redirect loop detected")

// StatusError reports a non-2xx HTTP response.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d %s", e.Code, http.StatusText(e.Code))
}

// IsNotFound reports whether err is a 404 response.
func IsNotFound(err error) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.Code == http.StatusNotFound
}
