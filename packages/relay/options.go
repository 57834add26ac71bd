package relay

import (
	"time"
)

// Options is a container for all configurable parameters of a Coordinator.
type Options struct {
	// QueueSize is the capacity of each submitter queue.
	QueueSize int
	// SweepInterval is the interval at which the coordinator backfills missed burns and retries
	// journaled intents that fell out of a full queue.
	SweepInterval time.Duration
	// RetryMinBackoff is the delay before the first retry of a failed submission.
	RetryMinBackoff time.Duration
	// RetryMaxBackoff caps the delay between retries of a failed submission.
	RetryMaxBackoff time.Duration
}

// Option is the type of an optional parameter for the Coordinator.
type Option func(*Options)

// WithQueueSize sets the capacity of each submitter queue.
func WithQueueSize(size int) Option {
	return func(options *Options) {
		options.QueueSize = size
	}
}

// WithSweepInterval sets the interval of the journal sweep.
func WithSweepInterval(interval time.Duration) Option {
	return func(options *Options) {
		options.SweepInterval = interval
	}
}

// WithRetryBackoff sets the delay bounds for retrying failed submissions.
func WithRetryBackoff(min, max time.Duration) Option {
	return func(options *Options) {
		options.RetryMinBackoff = min
		options.RetryMaxBackoff = max
	}
}

func defaultOptions() *Options {
	return &Options{
		QueueSize:       1024,
		SweepInterval:   10 * time.Second,
		RetryMinBackoff: 250 * time.Millisecond,
		RetryMaxBackoff: 8 * time.Second,
	}
}
