package archive

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBackoffDoublesPerAttempt(t *testing.T) {
	t.Parallel()

	p := NewBackoffPolicy(time.Second)
	require.Equal(t, time.Second, p.Backoff(0))
	require.Equal(t, 2*time.Second, p.Backoff(1))
	require.Equal(t, 4*time.Second, p.Backoff(2))
	require.Equal(t, time.Second, p.Backoff(-1))
}

func TestBackoffDefaultBase(t *testing.T) {
	t.Parallel()

	require.Equal(t, time.Second, NewBackoffPolicy(0).Backoff(0))
}
