package archive

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTimerPauserHonorsContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	timerPauser{}.Pause(ctx, 5*time.Second)
	require.Less(t, time.Since(start), time.Second, "pause should exit immediately when context is done")
}

func TestRandomDelayStaysInRange(t *testing.T) {
	t.Parallel()

	min, max := 500*time.Millisecond, 1500*time.Millisecond
	for i := 0; i < 100; i++ {
		d := randomDelay(min, max)
		require.GreaterOrEqual(t, d, min)
		require.LessOrEqual(t, d, max)
	}
	require.Equal(t, min, randomDelay(min, min))
}

func TestRandomIndexStaysInRange(t *testing.T) {
	t.Parallel()

	require.Zero(t, randomIndex(0))
	require.Zero(t, randomIndex(1))
	for i := 0; i < 100; i++ {
		n := randomIndex(4)
		require.GreaterOrEqual(t, n, 0)
		require.Less(t, n, 4)
	}
}
