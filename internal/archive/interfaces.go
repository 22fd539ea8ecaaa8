package archive

import (
	"context"
	"time"
)

// Fetcher performs one HTTP GET and returns the raw response body. A
// non-2xx status must surface as *StatusError; an unresolved redirect
// chain must surface as ErrRedirectLoop.
type Fetcher interface {
	Fetch(ctx context.Context, url, userAgent string) ([]byte, error)
}

// Pauser abstracts how the engine waits between requests, so tests can run
// without sleeping.
type Pauser interface {
	Pause(ctx context.Context, delay time.Duration)
}
