// Package clock provides a network-synchronized notion of time, so that
// timestamps recorded by different bridge components stay comparable even when
// the local clock drifts.
package clock

import (
	"time"

	"github.com/beevik/ntp"
	"go.uber.org/atomic"
)

var (
	// difference between the local clock and the NTP-provided time
	offset = atomic.NewDuration(0)
	// whether an NTP query ever succeeded
	synced = atomic.NewBool(false)
)

// FetchTimeOffset establishes the difference in time between the local clock
// and the given NTP pool and stores it for subsequent SyncedTime calls.
func FetchTimeOffset(ntpPool string) error {
	resp, err := ntp.Query(ntpPool)
	if err != nil {
		return err
	}
	offset.Store(resp.ClockOffset)
	synced.Store(true)
	return nil
}

// Synced reports whether the offset was ever established against an NTP pool.
// Until then SyncedTime falls back to the uncorrected local clock.
func Synced() bool {
	return synced.Load()
}

// SyncedTime returns the current time corrected by the last measured offset.
func SyncedTime() time.Time {
	return time.Now().Add(offset.Load())
}

// Since returns the time elapsed since t in terms of SyncedTime.
func Since(t time.Time) time.Duration {
	return SyncedTime().Sub(t)
}
