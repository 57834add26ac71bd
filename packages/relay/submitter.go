package relay

import (
	"context"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/logger"
	"github.com/iotaledger/hive.go/types"

	"github.com/trestlelabs/trestle/packages/clock"
	"github.com/trestlelabs/trestle/packages/ledger"
)

// submitter is the single writer towards one destination ledger. All mints for that ledger pass
// through its queue and are executed strictly one at a time, which keeps the authority nonce a
// simple counter: the submitter allocates the next nonce, submits, and only moves on once the
// destination has answered.
type submitter struct {
	direction   Direction
	destination Connector
	journal     *Journal
	events      *Events
	log         *logger.Logger
	options     *Options
	queue       chan *MintIntent

	inflight      map[ledger.Provenance]types.Empty
	inflightMutex sync.Mutex

	nonce      uint64
	nonceValid bool
}

func newSubmitter(direction Direction, destination Connector, journal *Journal, events *Events, log *logger.Logger, options *Options) *submitter {
	return &submitter{
		direction:   direction,
		destination: destination,
		journal:     journal,
		events:      events,
		log:         log,
		options:     options,
		queue:       make(chan *MintIntent, options.QueueSize),
		inflight:    make(map[ledger.Provenance]types.Empty),
	}
}

// enqueue hands an intent to the submitter without blocking. An intent that is already queued is
// not queued twice. It reports false when the queue is full; the intent then stays pending in the
// journal until a sweep picks it up again.
func (s *submitter) enqueue(intent *MintIntent) bool {
	s.inflightMutex.Lock()
	defer s.inflightMutex.Unlock()

	if _, isQueued := s.inflight[intent.Provenance]; isQueued {
		return true
	}

	select {
	case s.queue <- intent:
		s.inflight[intent.Provenance] = types.Void
		return true
	default:
		return false
	}
}

// run drains the queue until the context is canceled.
func (s *submitter) run(ctx context.Context) {
	for {
		select {
		case intent := <-s.queue:
			s.process(ctx, intent)

			s.inflightMutex.Lock()
			delete(s.inflight, intent.Provenance)
			s.inflightMutex.Unlock()
		case <-ctx.Done():
			return
		}
	}
}

// process drives a single intent to its confirmation. It retries transient failures with a capped
// backoff and returns early only when the context is canceled or the destination rejects the mint
// permanently.
func (s *submitter) process(ctx context.Context, intent *MintIntent) {
	if !s.journal.IsPending(intent.Provenance) {
		return
	}

	backoff := s.options.RetryMinBackoff
	for {
		if err := s.ensureNonce(ctx); err != nil {
			if !s.sleep(ctx, &backoff) {
				return
			}
			continue
		}

		receipt, err := s.destination.Mint(ctx, s.nonce, intent.To, intent.Amount, intent.Provenance)
		switch {
		case err == nil:
			s.nonce++
			s.confirm(intent, receipt)
			return

		case errors.Is(err, ledger.ErrAlreadyMinted):
			// the transfer is on the destination ledger, with or without our help; a rejected
			// mint does not consume the nonce
			s.confirm(intent, &ledger.MintReceipt{
				Ledger:     s.direction.Destination,
				To:         intent.To,
				Amount:     intent.Amount,
				Provenance: intent.Provenance,
				Timestamp:  clock.SyncedTime(),
			})
			return

		case errors.Is(err, ledger.ErrNonceConflict):
			// a mint we did not account for consumed the nonce; a lost mint response surfaces
			// here as well and resolves to ErrAlreadyMinted on the retry
			s.log.Warnf("nonce conflict on %s, resyncing", s.direction.Destination)
			s.nonceValid = false

		case errors.Is(err, ledger.ErrUnauthorized), errors.Is(err, ledger.ErrInvalidAmount), errors.Is(err, ledger.ErrUnknownLedger):
			s.log.Errorf("mint for %s rejected: %s", intent.Provenance, err)
			s.events.SubmissionFailed.Trigger(&SubmissionFailedEvent{
				Direction: s.direction,
				Intent:    intent,
				Reason:    err,
			})
			return

		default:
			s.log.Warnf("mint for %s failed: %s", intent.Provenance, err)
			if !s.sleep(ctx, &backoff) {
				return
			}
		}
	}
}

// ensureNonce re-reads the authority nonce of the destination ledger if the cached one is stale.
func (s *submitter) ensureNonce(ctx context.Context) (err error) {
	if s.nonceValid {
		return nil
	}

	if s.nonce, err = s.destination.AuthorityNonce(ctx); err != nil {
		return errors.Errorf("failed to read authority nonce of %s: %w", s.direction.Destination, err)
	}
	s.nonceValid = true

	s.events.NonceResynced.Trigger(&NonceResyncedEvent{
		Destination: s.direction.Destination,
		Nonce:       s.nonce,
	})

	return nil
}

// confirm journals the receipt and announces the confirmation.
func (s *submitter) confirm(intent *MintIntent, receipt *ledger.MintReceipt) {
	if err := s.journal.Confirm(receipt); err != nil {
		s.log.Errorf("failed to confirm %s in journal: %s", intent.Provenance, err)
		return
	}

	s.events.MintConfirmed.Trigger(&MintConfirmedEvent{
		Direction: s.direction,
		Intent:    intent,
		Receipt:   receipt,
	})
}

// sleep waits for the current backoff delay, doubling it up to the configured cap. It reports
// false when the context was canceled while waiting.
func (s *submitter) sleep(ctx context.Context, backoff *time.Duration) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(*backoff):
	}

	if *backoff *= 2; *backoff > s.options.RetryMaxBackoff {
		*backoff = s.options.RetryMaxBackoff
	}

	return true
}
