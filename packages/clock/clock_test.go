package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyncedTime(t *testing.T) {
	offset.Store(0)
	require.WithinDuration(t, time.Now(), SyncedTime(), 100*time.Millisecond)

	offset.Store(2 * time.Second)
	diff := time.Until(SyncedTime())
	assert.Greater(t, diff, time.Second)
}

func TestSince(t *testing.T) {
	offset.Store(0)
	start := SyncedTime()
	assert.GreaterOrEqual(t, Since(start), time.Duration(0))
}
