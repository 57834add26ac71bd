// Package relay contains the coordination half of the bridge. The Coordinator watches the burn
// logs of both ledgers, journals the mint that every burn is owed and hands it to a per-destination
// submitter that drives it to inclusion exactly once, surviving crashes, missed events and lost
// responses.
package relay

import (
	"context"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/generics/event"
	"github.com/iotaledger/hive.go/logger"
	"github.com/iotaledger/hive.go/timeutil"

	"github.com/trestlelabs/trestle/packages/clock"
	"github.com/trestlelabs/trestle/packages/ledger"
)

// region Direction ////////////////////////////////////////////////////////////////////////////////////////////////////

// Direction identifies one of the two directions value travels through the bridge.
type Direction struct {
	// Source is the ledger whose burns are observed.
	Source ledger.LedgerID
	// Destination is the ledger the mints are submitted to.
	Destination ledger.LedgerID
}

// String returns a human-readable version of the Direction.
func (d Direction) String() string {
	return d.Source.String() + "->" + d.Destination.String()
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region Coordinator //////////////////////////////////////////////////////////////////////////////////////////////////

// Coordinator relays burns between the two bridged ledgers in both directions.
type Coordinator struct {
	// Events contains the event bus of the Coordinator.
	Events *Events

	journal    *Journal
	options    *Options
	log        *logger.Logger
	directions map[ledger.LedgerID]*direction
}

// direction bundles everything the coordinator operates per bridge direction.
type direction struct {
	id        Direction
	source    Connector
	submitter *submitter
	closure   *event.Closure[*BurnObservedEvent]
}

// NewCoordinator creates a Coordinator that relays between the ledgers fronted by the two given
// connectors, journaling its progress in the given Journal.
func NewCoordinator(journal *Journal, a, b Connector, log *logger.Logger, opts ...Option) (coordinator *Coordinator, err error) {
	if a.LedgerID() != ledger.LedgerA && a.LedgerID() != ledger.LedgerB {
		return nil, errors.Errorf("connector fronts no bridgeable ledger: %w", ledger.ErrUnknownLedger)
	}
	if b.LedgerID() != a.LedgerID().Opposite() {
		return nil, errors.Errorf("connectors front %s and %s instead of opposite ledgers: %w", a.LedgerID(), b.LedgerID(), ledger.ErrUnknownLedger)
	}

	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	coordinator = &Coordinator{
		Events:     newEvents(),
		journal:    journal,
		options:    options,
		log:        log,
		directions: make(map[ledger.LedgerID]*direction, 2),
	}
	for _, pair := range []struct{ source, destination Connector }{{a, b}, {b, a}} {
		id := Direction{Source: pair.source.LedgerID(), Destination: pair.destination.LedgerID()}
		coordinator.directions[id.Source] = &direction{
			id:        id,
			source:    pair.source,
			submitter: newSubmitter(id, pair.destination, journal, coordinator.Events, log, options),
		}
	}

	return coordinator, nil
}

// Journal returns the journal the Coordinator records its progress in.
func (c *Coordinator) Journal() *Journal {
	return c.journal
}

// Directions returns the two directions the Coordinator relays in.
func (c *Coordinator) Directions() (directions []Direction) {
	for _, source := range []ledger.LedgerID{ledger.LedgerA, ledger.LedgerB} {
		if d, exists := c.directions[source]; exists {
			directions = append(directions, d.id)
		}
	}
	return directions
}

// Connector returns the connector fronting the given ledger.
func (c *Coordinator) Connector(id ledger.LedgerID) Connector {
	if d, exists := c.directions[id]; exists {
		return d.source
	}
	return nil
}

// Supplies returns the current total supplies of both bridged ledgers.
func (c *Coordinator) Supplies(ctx context.Context) (supplies map[ledger.LedgerID]uint64, err error) {
	supplies = make(map[ledger.LedgerID]uint64, len(c.directions))
	for source, d := range c.directions {
		if supplies[source], err = d.source.TotalSupply(ctx); err != nil {
			return nil, errors.Errorf("failed to read supply of %s: %w", source, err)
		}
	}
	return supplies, nil
}

// Run relays until the given context is canceled. It starts the submitters, subscribes to live
// burns, performs an initial backfill from the journal watermarks and keeps sweeping in the
// configured interval to pick up anything the live subscription missed.
func (c *Coordinator) Run(ctx context.Context) {
	var submitters sync.WaitGroup
	for _, d := range c.directions {
		d := d
		submitters.Add(1)
		go func() {
			defer submitters.Done()
			d.submitter.run(ctx)
		}()
	}

	for _, d := range c.directions {
		d := d
		d.closure = event.NewClosure(func(e *BurnObservedEvent) {
			c.observe(d, e.Record)
		})
		d.source.Events().BurnObserved.Attach(d.closure)
	}

	c.sweep(ctx)
	c.log.Infof("relay coordinator started (watermarks: %d, %d)",
		c.journal.Watermark(ledger.LedgerA), c.journal.Watermark(ledger.LedgerB))

	timeutil.NewTicker(func() { c.sweep(ctx) }, c.options.SweepInterval, ctx).WaitForShutdown()

	for _, d := range c.directions {
		d.source.Events().BurnObserved.Detach(d.closure)
	}
	submitters.Wait()
	c.log.Infof("relay coordinator stopped")
}

// sweep requeues the journaled intents that still await their mint and backfills the burns above
// the journal watermark of each source ledger.
func (c *Coordinator) sweep(ctx context.Context) {
	for _, source := range []ledger.LedgerID{ledger.LedgerA, ledger.LedgerB} {
		d, exists := c.directions[source]
		if !exists {
			continue
		}

		pending, err := c.journal.Pending(source)
		if err != nil {
			c.log.Warnf("journal sweep for %s failed: %s", d.id, err)
		} else {
			for _, intent := range pending {
				d.submitter.enqueue(intent)
			}
		}

		records, err := d.source.BurnsSince(ctx, c.journal.Watermark(source)+1)
		if err != nil {
			c.log.Warnf("backfill for %s failed: %s", d.id, err)
			continue
		}
		for _, record := range records {
			c.observe(d, record)
		}
	}
}

// observe journals the mint owed for a burn record and hands it to the direction's submitter.
func (c *Coordinator) observe(d *direction, record *ledger.BurnRecord) {
	intent := NewMintIntent(d.id.Source, record, clock.SyncedTime())

	added, err := c.journal.Append(intent)
	if err != nil {
		c.log.Errorf("failed to journal burn %s: %s", intent.Provenance, err)
		return
	}
	if !added {
		return
	}

	c.Events.BurnQueued.Trigger(&BurnQueuedEvent{Direction: d.id, Intent: intent})

	if !d.submitter.enqueue(intent) {
		c.log.Warnf("submitter queue for %s is full, deferring %s to the next sweep", d.id.Destination, intent.Provenance)
		c.Events.SubmissionDropped.Trigger(&SubmissionDroppedEvent{Direction: d.id, Intent: intent})
	}
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
