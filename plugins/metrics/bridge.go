package metrics

import (
	"github.com/iotaledger/hive.go/syncutils"
	"go.uber.org/atomic"

	"github.com/trestlelabs/trestle/packages/ledger"
)

var (
	// counter for the burns executed on the hosted ledgers since the last BPS measurement.
	burnsSinceLastMeasurement atomic.Uint64

	// measured value of the burns per second.
	measuredBPS atomic.Uint64

	// Number of burns per ledger since start of the node.
	burnCountPerLedger = make(map[ledger.LedgerID]uint64)

	// Number of mints per ledger since start of the node.
	mintCountPerLedger = make(map[ledger.LedgerID]uint64)

	// protect maps from concurrent read/write.
	bridgeCountersMutex syncutils.RWMutex

	// mints the relay still owes to a destination ledger.
	relayPendingMints atomic.Uint64

	// mints the relay drove to inclusion since its journal was created.
	relayConfirmedMints atomic.Uint64

	// permanently rejected mint submissions since start of the node.
	relaySubmissionFailures atomic.Uint64

	// intents that did not fit into a submitter queue since start of the node.
	relaySubmissionDrops atomic.Uint64
)

////// Exported functions to obtain metrics from outside //////

// BurnsPerSecond returns the burns per second number of the hosted ledgers.
func BurnsPerSecond() uint64 {
	return measuredBPS.Load()
}

// BurnCountPerLedger returns a map of ledger identifiers and their burn count since the start of the node.
func BurnCountPerLedger() map[ledger.LedgerID]uint64 {
	bridgeCountersMutex.RLock()
	defer bridgeCountersMutex.RUnlock()

	// copy the original map
	clone := make(map[ledger.LedgerID]uint64)
	for key, element := range burnCountPerLedger {
		clone[key] = element
	}

	return clone
}

// MintCountPerLedger returns a map of ledger identifiers and their mint count since the start of the node.
func MintCountPerLedger() map[ledger.LedgerID]uint64 {
	bridgeCountersMutex.RLock()
	defer bridgeCountersMutex.RUnlock()

	// copy the original map
	clone := make(map[ledger.LedgerID]uint64)
	for key, element := range mintCountPerLedger {
		clone[key] = element
	}

	return clone
}

// Supplies returns the current total supply per hosted ledger.
func Supplies() map[ledger.LedgerID]uint64 {
	supplies := make(map[ledger.LedgerID]uint64)
	for _, l := range deps.Registry.Ledgers() {
		supplies[l.ID()] = l.TotalSupply()
	}
	return supplies
}

// LatestSequences returns the latest burn sequence number per hosted ledger.
func LatestSequences() map[ledger.LedgerID]uint64 {
	sequences := make(map[ledger.LedgerID]uint64)
	for _, l := range deps.Registry.Ledgers() {
		sequences[l.ID()] = l.LatestSequence()
	}
	return sequences
}

// RelayPendingMints returns the number of journaled mints that still await inclusion.
func RelayPendingMints() uint64 {
	return relayPendingMints.Load()
}

// RelayConfirmedMints returns the number of journaled mints that were confirmed.
func RelayConfirmedMints() uint64 {
	return relayConfirmedMints.Load()
}

// RelaySubmissionFailures returns the number of permanently rejected mint submissions.
func RelaySubmissionFailures() uint64 {
	return relaySubmissionFailures.Load()
}

// RelaySubmissionDrops returns the number of intents that were left to a journal sweep because a
// submitter queue was full.
func RelaySubmissionDrops() uint64 {
	return relaySubmissionDrops.Load()
}

////// Handling data updates and measuring //////

func increaseBurnCounter(id ledger.LedgerID) {
	bridgeCountersMutex.Lock()
	defer bridgeCountersMutex.Unlock()

	burnCountPerLedger[id]++
	burnsSinceLastMeasurement.Inc()
}

func increaseMintCounter(id ledger.LedgerID) {
	bridgeCountersMutex.Lock()
	defer bridgeCountersMutex.Unlock()

	mintCountPerLedger[id]++
}

// measures the received BPS value
func measureBPS() {
	// sample the current counter value into a measured BPS value
	sampledBPS := burnsSinceLastMeasurement.Load()

	// store the measured value
	measuredBPS.Store(sampledBPS)

	// reset the counter
	burnsSinceLastMeasurement.Sub(sampledBPS)
}

func measureRelayBacklog() {
	journal := deps.Coordinator.Journal()
	relayPendingMints.Store(uint64(journal.NumPending()))
	relayConfirmedMints.Store(uint64(journal.NumConfirmed()))
}
