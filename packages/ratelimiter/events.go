package ratelimiter

import (
	"github.com/iotaledger/hive.go/generics/event"
	"github.com/iotaledger/hive.go/identity"
)

// Events is a container that acts as a dictionary for the existing events of an AccountRateLimiter.
type Events struct {
	// LimitHit is an event that gets triggered when an account exceeds the configured limit.
	// It gets triggered once per offending interval.
	LimitHit *event.Event[*LimitHitEvent]
}

// newEvents returns a new Events object.
func newEvents() (new *Events) {
	return &Events{
		LimitHit: event.New[*LimitHitEvent](),
	}
}

// LimitHitEvent is a container that acts as a dictionary for the LimitHit event related parameters.
type LimitHitEvent struct {
	// Account contains the account that exceeded the limit.
	Account identity.ID

	// RateLimit contains the limit that was exceeded.
	RateLimit *RateLimit
}
