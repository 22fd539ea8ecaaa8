package archive

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadURLListPreservesOrder(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "urls.txt")
	content := "https://x.test/a/1\n\n  \nhttps://x.test/b/2\nhttps://x.test/a/3\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	urls, err := LoadURLList(path)
	require.NoError(t, err)
	require.Equal(t, []string{
		"https://x.test/a/1",
		"https://x.test/b/2",
		"https://x.test/a/3",
	}, urls)
}

func TestLoadURLListMissingFile(t *testing.T) {
	t.Parallel()

	_, err := LoadURLList(filepath.Join(t.TempDir(), "nope.txt"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadURLListEmpty(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "urls.txt")
	require.NoError(t, os.WriteFile(path, []byte("\n \n\n"), 0o644))

	_, err := LoadURLList(path)
	require.ErrorIs(t, err, ErrEmptyInput)
}
