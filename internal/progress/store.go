// Package progress persists the archiver's resume marker: the index of the
// last URL that reached a terminal outcome.
package progress

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// ErrNoProgress signals that no usable marker exists. A corrupt marker file
// is reported the same way; resuming from garbage is never offered.
var ErrNoProgress = errors.New("no progress recorded")

// Store reads and writes the marker as a single decimal integer in a text
// file. Absence of the file means absence of progress.
type Store struct {
	path   string
	logger *zap.Logger
}

// NewStore builds a Store persisting to path.
func NewStore(path string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{path: path, logger: logger}
}

// Load returns the persisted marker, or ErrNoProgress when the file is
// missing or unparseable.
func (s *Store) Load() (int, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, ErrNoProgress
		}
		return 0, fmt.Errorf("read progress file %s: %w", s.path, err)
	}
	index, err := strconv.Atoi(strings.TrimSpace(string(raw)))
	if err != nil || index < 0 {
		s.logger.Warn("ignoring unparseable progress file",
			zap.String("path", s.path),
			zap.String("content", strings.TrimSpace(string(raw))))
		return 0, ErrNoProgress
	}
	return index, nil
}

// Save records index as the last fully-processed position. It is called
// synchronously after every terminal outcome so an abrupt stop loses at
// most one in-flight URL.
func (s *Store) Save(index int) error {
	if err := os.WriteFile(s.path, []byte(strconv.Itoa(index)+"\n"), 0o644); err != nil {
		return fmt.Errorf("write progress file %s: %w", s.path, err)
	}
	return nil
}

// Clear removes the marker after a run completes naturally. A missing file
// is not an error.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove progress file %s: %w", s.path, err)
	}
	return nil
}

// StartIndex resolves where a run should begin. The interactive prompt is
// the CLI's concern; the store only consumes its boolean answer. Declining
// a resume restarts at zero, implicitly overwriting the old marker on the
// first Save.
func StartIndex(marker int, hasProgress, wantResume bool) int {
	if hasProgress && wantResume {
		return marker + 1
	}
	return 0
}
