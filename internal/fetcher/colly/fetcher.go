// Package collyfetcher implements archive.Fetcher with a single-shot
// Colly collector per request.
package collyfetcher

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gocolly/colly/v2"

	"github.com/sebbesen/ddr/internal/archive"
)

// Config controls collector behavior.
type Config struct {
	// Timeout bounds each request end to end.
	Timeout time.Duration
	// MaxRedirects is the hop limit before a chain counts as a loop.
	MaxRedirects int
}

const defaultMaxRedirects = 10

// Fetcher issues one GET per Fetch call. The base collector owns the
// pooled transport; every fetch works on a clone so callbacks never leak
// between requests.
type Fetcher struct {
	cfg           Config
	baseCollector *colly.Collector
}

// New builds a Fetcher.
func New(cfg Config) *Fetcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 20 * time.Second
	}
	if cfg.MaxRedirects <= 0 {
		cfg.MaxRedirects = defaultMaxRedirects
	}
	c := colly.NewCollector()
	c.Async = false
	c.AllowURLRevisit = true
	c.IgnoreRobotsTxt = true
	c.WithTransport(&http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		MaxIdleConns:          16,
		MaxIdleConnsPerHost:   4,
		IdleConnTimeout:       30 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: cfg.Timeout,
		ForceAttemptHTTP2:     true,
	})
	return &Fetcher{cfg: cfg, baseCollector: c}
}

// Fetch retrieves rawURL and returns the raw body. Non-2xx statuses map to
// *archive.StatusError and an unresolved redirect chain maps to
// archive.ErrRedirectLoop.
func (f *Fetcher) Fetch(ctx context.Context, rawURL, userAgent string) ([]byte, error) {
	collector := f.baseCollector.Clone()
	collector.SetRequestTimeout(f.cfg.Timeout)
	collector.SetRedirectHandler(func(req *http.Request, via []*http.Request) error {
		if len(via) >= f.cfg.MaxRedirects {
			return archive.ErrRedirectLoop
		}
		return nil
	})

	var (
		body     []byte
		fetchErr error
	)
	collector.OnRequest(func(r *colly.Request) {
		if userAgent != "" {
			r.Headers.Set("User-Agent", userAgent)
		}
	})
	collector.OnResponse(func(r *colly.Response) {
		body = append([]byte(nil), r.Body...)
	})
	collector.OnError(func(r *colly.Response, err error) {
		fetchErr = classifyError(r, err)
	})

	if err := collector.Visit(rawURL); err != nil && fetchErr == nil {
		fetchErr = classifyError(nil, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if fetchErr != nil {
		return nil, fetchErr
	}
	return body, nil
}

func classifyError(r *colly.Response, err error) error {
	if errors.Is(err, archive.ErrRedirectLoop) {
		return archive.ErrRedirectLoop
	}
	if r != nil && r.StatusCode >= 300 {
		return &archive.StatusError{Code: r.StatusCode}
	}
	if err == nil {
		err = errors.New("fetch failed with no error detail")
	}
	return fmt.Errorf("fetch: %w", err)
}
