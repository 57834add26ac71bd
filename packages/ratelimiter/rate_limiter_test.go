package ratelimiter

import (
	"testing"
	"time"

	"github.com/iotaledger/hive.go/generics/event"
	"github.com/iotaledger/hive.go/identity"
	"github.com/iotaledger/hive.go/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"
)

var log = logger.NewExampleLogger("ratelimiter")

func TestAccountRateLimiter(t *testing.T) {
	limiter, err := NewAccountRateLimiter(time.Minute, 3, log)
	require.NoError(t, err)
	defer limiter.Close()

	hits := atomic.NewInt64(0)
	limiter.Events.LimitHit.Hook(event.NewClosure(func(e *LimitHitEvent) {
		hits.Inc()
	}))

	account := identity.GenerateIdentity().ID()
	for i := 0; i < 3; i++ {
		assert.False(t, limiter.Count(account))
	}
	assert.True(t, limiter.Count(account))
	assert.True(t, limiter.Count(account))

	// the hit is reported once per offending interval
	assert.EqualValues(t, 1, hits.Load())

	// other accounts are not affected
	assert.False(t, limiter.Count(identity.GenerateIdentity().ID()))
}

func TestAccountRateLimiterSetLimit(t *testing.T) {
	limiter, err := NewAccountRateLimiter(time.Minute, 1, log)
	require.NoError(t, err)
	defer limiter.Close()

	account := identity.GenerateIdentity().ID()
	assert.False(t, limiter.Count(account))
	assert.True(t, limiter.Count(account))

	limiter.SetLimit(10)
	assert.False(t, limiter.Count(account))
}
