// Package classify groups URLs by shared path prefix into frequency-ranked
// buckets that name the output folders of an archive run.
package classify

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sebbesen/ddr/internal/sanitize"
)

// Key returns the bucket key for url: the prefix through the last '/'. The
// second return is false when the URL has no '/' or no trailing segment
// after it; such URLs belong to no bucket.
func Key(url string) (string, bool) {
	i := strings.LastIndex(url, "/")
	if i == -1 || i == len(url)-1 {
		return "", false
	}
	return url[:i+1], true
}

// Slug returns the trailing segment of url after its bucket key.
func Slug(url string) (string, bool) {
	key, ok := Key(url)
	if !ok {
		return "", false
	}
	return url[len(key):], true
}

// Mapping assigns a folder name to every bucket key seen in a URL list. It
// is built once per run, before any download, and is immutable afterwards.
type Mapping struct {
	names map[string]string
}

// Buckets scans urls in order, counts occurrences per bucket key, and
// assigns each key a folder name of the form NNN_<sanitized key>. Ranks are
// 1-based in descending count order; keys with equal counts keep the order
// in which they were first encountered.
func Buckets(urls []string) *Mapping {
	counts := make(map[string]int)
	var order []string
	for _, u := range urls {
		key, ok := Key(u)
		if !ok {
			continue
		}
		if _, seen := counts[key]; !seen {
			order = append(order, key)
		}
		counts[key]++
	}

	ranked := append([]string(nil), order...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return counts[ranked[i]] > counts[ranked[j]]
	})

	names := make(map[string]string, len(ranked))
	for i, key := range ranked {
		names[key] = fmt.Sprintf("%03d_%s", i+1, sanitize.Foldername(key))
	}
	return &Mapping{names: names}
}

// Name returns the folder name assigned to key.
func (m *Mapping) Name(key string) (string, bool) {
	name, ok := m.names[key]
	return name, ok
}

// Len reports the number of distinct buckets.
func (m *Mapping) Len() int {
	return len(m.names)
}
