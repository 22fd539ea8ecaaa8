package archive

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sebbesen/ddr/internal/sanitize"
)

// FileSystemSink writes raw article payloads beneath a base directory,
// one file per URL, grouped into bucket folders.
type FileSystemSink struct {
	base string
	ext  string
}

// NewFileSystemSink returns a sink rooted at base. The extension is
// appended to every target file name.
func NewFileSystemSink(base, ext string) (*FileSystemSink, error) {
	if err := os.MkdirAll(base, 0o750); err != nil {
		return nil, fmt.Errorf("create archive dir %s: %w", base, err)
	}
	return &FileSystemSink{base: base, ext: ext}, nil
}

// TargetPath derives the output path for a URL's trailing segment within
// its bucket folder.
func (s *FileSystemSink) TargetPath(bucketName, slug string) string {
	return filepath.Join(s.base, bucketName, sanitize.Filename(slug)+s.ext)
}

// Exists reports whether a file is already present at path.
func (s *FileSystemSink) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Save writes body to path, creating the bucket folder on demand and
// overwriting any existing file.
func (s *FileSystemSink) Save(path string, body []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create bucket dir for %s: %w", path, err)
	}
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return fmt.Errorf("write article to %s: %w", path, err)
	}
	return nil
}
