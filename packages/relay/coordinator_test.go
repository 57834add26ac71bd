package relay

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/iotaledger/hive.go/generics/event"
	"github.com/iotaledger/hive.go/identity"
	"github.com/iotaledger/hive.go/kvstore"
	"github.com/iotaledger/hive.go/kvstore/mapdb"
	"github.com/iotaledger/hive.go/logger"
	"github.com/panjf2000/ants/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"

	"github.com/trestlelabs/trestle/packages/ledger"
)

var log = logger.NewExampleLogger("relay")

// testBridge wires two in-process ledgers to a coordinator the way a devnet node does.
type testBridge struct {
	ledgerA, ledgerB       *ledger.Ledger
	authorityA, authorityB identity.ID
	alice                  identity.ID

	connectorA, connectorB Connector
	journalStore           kvstore.KVStore
	journal                *Journal
	coordinator            *Coordinator
}

func newTestBridge(t *testing.T, genesis uint64) *testBridge {
	b := &testBridge{
		authorityA:   identity.GenerateIdentity().ID(),
		authorityB:   identity.GenerateIdentity().ID(),
		alice:        identity.GenerateIdentity().ID(),
		journalStore: mapdb.NewMapDB(),
	}

	var err error
	b.ledgerA, err = ledger.New(ledger.LedgerA, b.authorityA, ledger.WithGenesis(b.alice, genesis))
	require.NoError(t, err)
	b.ledgerB, err = ledger.New(ledger.LedgerB, b.authorityB)
	require.NoError(t, err)

	b.connectorA = NewInProcessConnector(b.ledgerA, b.authorityA)
	b.connectorB = NewInProcessConnector(b.ledgerB, b.authorityB)

	return b
}

// start opens the journal on the shared store and runs a coordinator until the returned stop
// function is called. Starting again after a stop behaves like a relay restart.
func (b *testBridge) start(t *testing.T, opts ...Option) (stop func()) {
	var err error
	b.journal, err = NewJournal(b.journalStore)
	require.NoError(t, err)

	b.coordinator, err = NewCoordinator(b.journal, b.connectorA, b.connectorB, log, opts...)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	var done sync.WaitGroup
	done.Add(1)
	go func() {
		defer done.Done()
		b.coordinator.Run(ctx)
	}()

	return func() {
		cancel()
		done.Wait()
	}
}

func (b *testBridge) conserved(genesis uint64) bool {
	return b.ledgerA.TotalSupply()+b.ledgerB.TotalSupply() == genesis
}

func TestCoordinator_RelaysBurns(t *testing.T) {
	b := newTestBridge(t, 1000)
	stop := b.start(t, WithSweepInterval(100*time.Millisecond))
	defer stop()

	confirmedReceipts := atomic.NewUint64(0)
	b.coordinator.Events.MintConfirmed.Attach(event.NewClosure(func(e *MintConfirmedEvent) {
		assert.NotEqual(t, ledger.ReceiptID{}, e.Receipt.ID)
		confirmedReceipts.Inc()
	}))

	for i := 0; i < 3; i++ {
		_, err := b.ledgerA.Burn(b.alice, 100)
		require.NoError(t, err)
	}

	require.Eventually(t, func() bool {
		return confirmedReceipts.Load() == 3
	}, 5*time.Second, 10*time.Millisecond)

	assert.EqualValues(t, 700, b.ledgerA.Balance(b.alice))
	assert.EqualValues(t, 300, b.ledgerB.Balance(b.alice))
	assert.True(t, b.conserved(1000))
	assert.EqualValues(t, 0, b.ledgerA.AuthorityNonce())
	assert.EqualValues(t, 3, b.ledgerB.AuthorityNonce())
	assert.EqualValues(t, 3, b.journal.Watermark(ledger.LedgerA))
	assert.Equal(t, 0, b.journal.NumPending())
	assert.Equal(t, 3, b.journal.NumConfirmed())

	// the opposite direction works the same way
	_, err := b.ledgerB.Burn(b.alice, 50)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return confirmedReceipts.Load() == 4
	}, 5*time.Second, 10*time.Millisecond)

	assert.EqualValues(t, 750, b.ledgerA.Balance(b.alice))
	assert.True(t, b.conserved(1000))
	assert.EqualValues(t, 1, b.journal.Watermark(ledger.LedgerB))
}

func TestCoordinator_RestartFinishesOwedMints(t *testing.T) {
	b := newTestBridge(t, 1000)

	stop := b.start(t)
	_, err := b.ledgerA.Burn(b.alice, 100)
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		return b.ledgerB.Balance(b.alice) == 100
	}, 5*time.Second, 10*time.Millisecond)
	stop()

	// burns that happen while the relay is down ...
	for i := 0; i < 2; i++ {
		_, err = b.ledgerA.Burn(b.alice, 100)
		require.NoError(t, err)
	}
	assert.EqualValues(t, 100, b.ledgerB.Balance(b.alice))

	// ... are picked up by the backfill after the restart
	stop = b.start(t)
	require.Eventually(t, func() bool {
		return b.ledgerB.Balance(b.alice) == 300
	}, 5*time.Second, 10*time.Millisecond)
	stop()

	assert.True(t, b.conserved(1000))
	assert.EqualValues(t, 3, b.ledgerB.AuthorityNonce())

	// another restart must not mint anything again
	stop = b.start(t)
	time.Sleep(200 * time.Millisecond)
	stop()

	assert.EqualValues(t, 300, b.ledgerB.Balance(b.alice))
	assert.EqualValues(t, 3, b.ledgerB.AuthorityNonce())
	assert.True(t, b.conserved(1000))
}

func TestCoordinator_InterferingMints(t *testing.T) {
	b := newTestBridge(t, 1000)
	stop := b.start(t)
	defer stop()

	resyncs := atomic.NewUint64(0)
	b.coordinator.Events.NonceResynced.Attach(event.NewClosure(func(e *NonceResyncedEvent) {
		if e.Destination == ledger.LedgerB {
			resyncs.Inc()
		}
	}))

	_, err := b.ledgerA.Burn(b.alice, 100)
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		return b.ledgerB.Balance(b.alice) == 100
	}, 5*time.Second, 10*time.Millisecond)

	// a competing relay instance beats us to the next transfer: it consumes the nonce the
	// submitter has cached and the provenance of the burn that is about to happen
	_, err = b.ledgerB.Mint(b.authorityB, 1, b.alice, 40, ledger.Provenance{Source: ledger.LedgerA, Sequence: 2})
	require.NoError(t, err)

	_, err = b.ledgerA.Burn(b.alice, 40)
	require.NoError(t, err)

	// the submitter resolves the conflict without minting a second time
	require.Eventually(t, func() bool {
		return b.journal.NumConfirmed() == 2
	}, 5*time.Second, 10*time.Millisecond)

	assert.EqualValues(t, 140, b.ledgerB.Balance(b.alice))
	assert.True(t, b.conserved(1000))
	assert.EqualValues(t, 2, b.ledgerB.AuthorityNonce())
	assert.EqualValues(t, 2, resyncs.Load())

	// the journaled receipt marks the transfer as minted elsewhere
	receipt, err := b.journal.Receipt(ledger.Provenance{Source: ledger.LedgerA, Sequence: 2})
	require.NoError(t, err)
	assert.Equal(t, ledger.ReceiptID{}, receipt.ID)
}

func TestCoordinator_FullQueueRecovers(t *testing.T) {
	const burns = 20

	b := newTestBridge(t, burns)
	stop := b.start(t, WithQueueSize(1), WithSweepInterval(50*time.Millisecond))
	defer stop()

	var wg sync.WaitGroup
	for i := 0; i < burns; i++ {
		wg.Add(1)
		require.NoError(t, ants.Submit(func() {
			defer wg.Done()
			_, err := b.ledgerA.Burn(b.alice, 1)
			assert.NoError(t, err)
		}))
	}
	wg.Wait()

	require.Eventually(t, func() bool {
		return b.ledgerB.Balance(b.alice) == burns && b.journal.NumPending() == 0
	}, 10*time.Second, 10*time.Millisecond)

	assert.True(t, b.conserved(burns))
	assert.Equal(t, burns, b.journal.NumConfirmed())
}

func TestCoordinator_NoncesAreSequential(t *testing.T) {
	const burns = 50

	b := newTestBridge(t, burns)
	stop := b.start(t)
	defer stop()

	var noncesMutex sync.Mutex
	nonces := make(map[uint64]int)
	b.coordinator.Events.MintConfirmed.Attach(event.NewClosure(func(e *MintConfirmedEvent) {
		noncesMutex.Lock()
		defer noncesMutex.Unlock()
		nonces[e.Receipt.Nonce]++
	}))

	var wg sync.WaitGroup
	for i := 0; i < burns; i++ {
		wg.Add(1)
		require.NoError(t, ants.Submit(func() {
			defer wg.Done()
			_, err := b.ledgerA.Burn(b.alice, 1)
			assert.NoError(t, err)
		}))
	}
	wg.Wait()

	require.Eventually(t, func() bool {
		noncesMutex.Lock()
		defer noncesMutex.Unlock()
		return len(nonces) == burns
	}, 10*time.Second, 10*time.Millisecond)

	assert.EqualValues(t, burns, b.ledgerB.AuthorityNonce())
	assert.EqualValues(t, burns, b.ledgerB.Balance(b.alice))
	assert.True(t, b.conserved(burns))

	// every nonce from 0 to burns-1 was used exactly once
	noncesMutex.Lock()
	defer noncesMutex.Unlock()
	require.Len(t, nonces, burns)
	for nonce := uint64(0); nonce < burns; nonce++ {
		assert.Equal(t, 1, nonces[nonce])
	}
}
