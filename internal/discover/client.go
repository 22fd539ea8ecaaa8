// Package discover queries the DR search API for article URLs and writes
// the newline-delimited list the archiver consumes.
package discover

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spf13/viper"
)

// Config controls the search pagination.
type Config struct {
	// BaseURL is the search endpoint.
	BaseURL string
	// SiteBase prefixes the relative ProgramUrl values from the API.
	SiteBase string
	Query    string
	Sort     string
	PageSize int
	// PageDelay is the pause between result pages.
	PageDelay time.Duration
	// OutputPath is where WriteURLFile persists the list.
	OutputPath string
}

// LoadConfig constructs a Config by reading from Viper.
func LoadConfig(v *viper.Viper) (Config, error) {
	cfg := Config{
		BaseURL:    v.GetString("discover.base_url"),
		SiteBase:   v.GetString("discover.site_base"),
		Query:      v.GetString("discover.query"),
		Sort:       v.GetString("discover.sort"),
		PageSize:   v.GetInt("discover.page_size"),
		PageDelay:  v.GetDuration("discover.page_delay"),
		OutputPath: v.GetString("discover.output_path"),
	}
	return cfg, cfg.Validate()
}

// Validate checks for obviously bad configuration combinations.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("discover.base_url must be set")
	}
	if c.Query == "" {
		return fmt.Errorf("discover.query must be set")
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("discover.page_size must be > 0")
	}
	if c.OutputPath == "" {
		return fmt.Errorf("discover.output_path must be set")
	}
	return nil
}

// Client pages through search results.
type Client struct {
	httpClient *http.Client
	cfg        Config
	logger     *zap.Logger
}

// New builds a Client.
func New(cfg Config, logger *zap.Logger) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("discover config: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		cfg:        cfg,
		logger:     logger,
	}, nil
}

type searchPage struct {
	Items []searchItem `json:"Items"`
}

type searchItem struct {
	ProgramURL string `json:"ProgramUrl"`
}

// URLs fetches every result page in order until the API returns an empty
// page, collecting absolute article URLs.
func (c *Client) URLs(ctx context.Context) ([]string, error) {
	var all []string
	for offset := 0; ; offset += c.cfg.PageSize {
		page, err := c.fetchPage(ctx, offset)
		if err != nil {
			return nil, err
		}
		if len(page.Items) == 0 {
			break
		}
		for _, item := range page.Items {
			if item.ProgramURL == "" {
				continue
			}
			all = append(all, c.cfg.SiteBase+item.ProgramURL)
		}
		c.logger.Info("search page collected",
			zap.Int("offset", offset),
			zap.Int("page_urls", len(page.Items)),
			zap.Int("total", len(all)))

		if err := c.pause(ctx); err != nil {
			return nil, err
		}
	}
	return all, nil
}

func (c *Client) fetchPage(ctx context.Context, offset int) (searchPage, error) {
	params := url.Values{}
	params.Set("query", c.cfg.Query)
	params.Set("sort", c.cfg.Sort)
	params.Set("limit", strconv.Itoa(c.cfg.PageSize))
	params.Set("offset", strconv.Itoa(offset))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return searchPage{}, fmt.Errorf("build search request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return searchPage{}, fmt.Errorf("search request offset %d: %w", offset, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return searchPage{}, fmt.Errorf("search request offset %d: unexpected status %d", offset, resp.StatusCode)
	}

	var page searchPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return searchPage{}, fmt.Errorf("decode search page offset %d: %w", offset, err)
	}
	return page, nil
}

func (c *Client) pause(ctx context.Context) error {
	if c.cfg.PageDelay <= 0 {
		return nil
	}
	timer := time.NewTimer(c.cfg.PageDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// WriteURLFile persists urls one per line to path.
func WriteURLFile(path string, urls []string) error {
	var b strings.Builder
	for _, u := range urls {
		b.WriteString(u)
		b.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write url file %s: %w", path, err)
	}
	return nil
}
