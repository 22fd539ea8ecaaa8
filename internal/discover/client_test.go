package discover

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func testServer(t *testing.T, pages map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "israel", r.URL.Query().Get("query"))
		require.Equal(t, "PublishTime", r.URL.Query().Get("sort"))
		body, ok := pages[r.URL.Query().Get("offset")]
		if !ok {
			body = `{"Items":[]}`
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testClientConfig(baseURL string) Config {
	return Config{
		BaseURL:    baseURL,
		SiteBase:   "https://www.dr.dk",
		Query:      "israel",
		Sort:       "PublishTime",
		PageSize:   2,
		OutputPath: "dr_urls.txt",
	}
}

func TestURLsPaginatesUntilEmptyPage(t *testing.T) {
	t.Parallel()

	srv := testServer(t, map[string]string{
		"0": `{"Items":[{"ProgramUrl":"/nyheder/a"},{"ProgramUrl":"/nyheder/b"}]}`,
		"2": `{"Items":[{"ProgramUrl":"/sporten/c"},{"NoUrlHere":true}]}`,
	})

	c, err := New(testClientConfig(srv.URL), nil)
	require.NoError(t, err)

	urls, err := c.URLs(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{
		"https://www.dr.dk/nyheder/a",
		"https://www.dr.dk/nyheder/b",
		"https://www.dr.dk/sporten/c",
	}, urls)
}

func TestURLsStopsOnServerError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	c, err := New(testClientConfig(srv.URL), nil)
	require.NoError(t, err)

	_, err = c.URLs(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "unexpected status 500")
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	cfg := testClientConfig("https://example.test")
	require.NoError(t, cfg.Validate())

	cfg.Query = ""
	require.Error(t, cfg.Validate())
}

func TestWriteURLFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "urls.txt")
	require.NoError(t, WriteURLFile(path, []string{"https://x.test/a/1", "https://x.test/a/2"}))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "https://x.test/a/1\nhttps://x.test/a/2\n", string(raw))
}
