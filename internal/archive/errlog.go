package archive

import (
	"fmt"
	"os"
)

// Appender records URLs one per line in an append-only log. The file is
// only ever grown, never rewritten, so entries accumulate across runs and
// resumes. Each append opens, writes, and closes the file so a crash can
// never lose an acknowledged entry.
type Appender struct {
	path string
}

// NewAppender builds an Appender writing to path.
func NewAppender(path string) *Appender {
	return &Appender{path: path}
}

// Append adds url as a new line at the end of the log.
func (a *Appender) Append(url string) error {
	f, err := os.OpenFile(a.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open error log %s: %w", a.path, err)
	}
	defer f.Close()
	if _, err := f.WriteString(url + "\n"); err != nil {
		return fmt.Errorf("append to error log %s: %w", a.path, err)
	}
	return nil
}
