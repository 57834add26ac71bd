// Package ratelimiter limits how often the individual accounts may use the self-service
// operations of the web API.
package ratelimiter

import (
	"fmt"
	"time"

	"github.com/ReneKroon/ttlcache/v2"
	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/identity"
	"github.com/iotaledger/hive.go/logger"
	"github.com/paulbellamy/ratecounter"
	"go.uber.org/atomic"

	"github.com/trestlelabs/trestle/packages/ledger"
)

// RateLimit describes the limit of an AccountRateLimiter.
type RateLimit struct {
	Interval time.Duration
	Limit    int
}

func (rl RateLimit) String() string {
	return fmt.Sprintf("%d per %s", rl.Limit, rl.Interval)
}

// AccountRateLimiter tracks the activity of the individual accounts and reports when an account
// exceeds the configured limit. Records of inactive accounts expire with the interval.
type AccountRateLimiter struct {
	// Events contains the event bus of the AccountRateLimiter.
	Events *Events

	interval       time.Duration
	limit          *atomic.Int64
	accountRecords *ttlcache.Cache
	log            *logger.Logger
}

// NewAccountRateLimiter creates an AccountRateLimiter that allows limit operations per account
// within the given interval.
func NewAccountRateLimiter(interval time.Duration, limit int, log *logger.Logger) (*AccountRateLimiter, error) {
	records := ttlcache.NewCache()
	records.SetLoaderFunction(func(_ string) (interface{}, time.Duration, error) {
		record := &limiterRecord{counter: ratecounter.NewRateCounter(interval), limitHitReported: atomic.NewBool(false)}
		return record, ttlcache.ItemExpireWithGlobalTTL, nil
	})
	if err := records.SetTTL(interval); err != nil {
		return nil, errors.WithStack(err)
	}
	return &AccountRateLimiter{
		Events:         newEvents(),
		interval:       interval,
		limit:          atomic.NewInt64(int64(limit)),
		accountRecords: records,
		log:            log,
	}, nil
}

type limiterRecord struct {
	counter          *ratecounter.RateCounter
	limitHitReported *atomic.Bool
}

// Count counts an operation of the given account and reports whether the account now exceeds the
// limit. Rejected operations count as well.
func (arl *AccountRateLimiter) Count(account identity.ID) (limited bool) {
	limited, err := arl.doCount(account)
	if err != nil {
		arl.log.Warnw("Rate limiter failed to count account activity",
			"account", ledger.AccountBase58(account))
	}
	return limited
}

// SetLimit replaces the allowed number of operations per interval.
func (arl *AccountRateLimiter) SetLimit(limit int) {
	arl.limit.Store(int64(limit))
}

// Close stops the expiration of the account records.
func (arl *AccountRateLimiter) Close() {
	if err := arl.accountRecords.Close(); err != nil {
		arl.log.Errorw("Failed to close account records cache", "err", err)
	}
}

func (arl *AccountRateLimiter) doCount(account identity.ID) (limited bool, err error) {
	accountKey := ledger.AccountBase58(account)
	recordI, err := arl.accountRecords.Get(accountKey)
	if err != nil {
		return false, errors.WithStack(err)
	}
	accountRecord := recordI.(*limiterRecord)
	accountRecord.counter.Incr(1)
	limit := int(arl.limit.Load())
	if int(accountRecord.counter.Rate()) > limit {
		if !accountRecord.limitHitReported.Swap(true) {
			arl.log.Infow("Account hit the activity limit",
				"limit", limit, "interval", arl.interval, "account", accountKey)
			arl.Events.LimitHit.Trigger(&LimitHitEvent{
				Account:   account,
				RateLimit: &RateLimit{Limit: limit, Interval: arl.interval},
			})
		}
		return true, nil
	}
	accountRecord.limitHitReported.Store(false)
	return false, nil
}
