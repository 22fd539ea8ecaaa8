package classify

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	t.Parallel()

	key, ok := Key("https://x.test/a/1")
	require.True(t, ok)
	require.Equal(t, "https://x.test/a/", key)

	_, ok = Key("https://x.test/a/")
	require.False(t, ok, "trailing slash means no final segment")

	_, ok = Key("no-separator-at-all")
	require.False(t, ok)
}

func TestSlug(t *testing.T) {
	t.Parallel()

	slug, ok := Slug("https://x.test/a/some-article")
	require.True(t, ok)
	require.Equal(t, "some-article", slug)

	_, ok = Slug("malformed")
	require.False(t, ok)
}

func TestBucketsRanksByFrequency(t *testing.T) {
	t.Parallel()

	m := Buckets([]string{
		"https://x.test/rare/1",
		"https://x.test/common/1",
		"https://x.test/common/2",
		"https://x.test/common/3",
		"https://x.test/mid/1",
		"https://x.test/mid/2",
	})
	require.Equal(t, 3, m.Len())

	name, ok := m.Name("https://x.test/common/")
	require.True(t, ok)
	require.Equal(t, "001_x_test_common", name)

	name, ok = m.Name("https://x.test/mid/")
	require.True(t, ok)
	require.Equal(t, "002_x_test_mid", name)

	name, ok = m.Name("https://x.test/rare/")
	require.True(t, ok)
	require.Equal(t, "003_x_test_rare", name)
}

func TestBucketsTieBreakIsFirstSeen(t *testing.T) {
	t.Parallel()

	m := Buckets([]string{
		"https://x.test/b/1",
		"https://x.test/a/1",
		"https://x.test/b/2",
		"https://x.test/a/2",
	})

	name, ok := m.Name("https://x.test/b/")
	require.True(t, ok)
	require.Equal(t, "001_x_test_b", name, "first-seen key wins the tie")

	name, ok = m.Name("https://x.test/a/")
	require.True(t, ok)
	require.Equal(t, "002_x_test_a", name)
}

func TestBucketsSkipsMalformedURLs(t *testing.T) {
	t.Parallel()

	m := Buckets([]string{"malformed", "https://x.test/a/", "https://x.test/a/1"})
	require.Equal(t, 1, m.Len())

	_, ok := m.Name("")
	require.False(t, ok)
}

func TestBucketsRanksAreGapless(t *testing.T) {
	t.Parallel()

	var urls []string
	for i := 0; i < 12; i++ {
		for j := 0; j <= i; j++ {
			urls = append(urls, fmt.Sprintf("https://x.test/t%02d/%d", i, j))
		}
	}
	m := Buckets(urls)
	require.Equal(t, 12, m.Len())
	for i := 0; i < 12; i++ {
		name, ok := m.Name(fmt.Sprintf("https://x.test/t%02d/", i))
		require.True(t, ok)
		require.Equal(t, fmt.Sprintf("%03d_", 12-i), name[:4])
	}
}
