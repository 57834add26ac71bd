package ledger

import (
	"sync"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/generics/event"
	"github.com/iotaledger/hive.go/identity"
	"github.com/iotaledger/hive.go/kvstore/mapdb"
	"github.com/panjf2000/ants/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"
)

func TestLedger_Genesis(t *testing.T) {
	authority := identity.GenerateIdentity().ID()
	alice := identity.GenerateIdentity().ID()

	l, err := New(LedgerA, authority, WithGenesis(alice, 1000))
	require.NoError(t, err)

	assert.Equal(t, LedgerA, l.ID())
	assert.Equal(t, authority, l.Authority())
	assert.EqualValues(t, 1000, l.Balance(alice))
	assert.EqualValues(t, 1000, l.TotalSupply())
	assert.EqualValues(t, 0, l.LatestSequence())
	assert.EqualValues(t, 0, l.AuthorityNonce())
}

func TestLedger_Burn(t *testing.T) {
	authority := identity.GenerateIdentity().ID()
	alice := identity.GenerateIdentity().ID()

	l, err := New(LedgerA, authority, WithGenesis(alice, 500))
	require.NoError(t, err)

	burnedEvents := atomic.NewUint64(0)
	l.Events.Burned.Attach(event.NewClosure(func(e *BurnedEvent) {
		assert.Equal(t, LedgerA, e.Ledger)
		assert.Equal(t, alice, e.Record.Account)
		burnedEvents.Inc()
	}))

	record, err := l.Burn(alice, 100)
	require.NoError(t, err)
	assert.EqualValues(t, 1, record.Sequence)
	assert.EqualValues(t, 100, record.Amount)
	assert.EqualValues(t, 400, l.Balance(alice))
	assert.EqualValues(t, 400, l.TotalSupply())
	assert.EqualValues(t, 1, l.LatestSequence())
	assert.EqualValues(t, 1, burnedEvents.Load())

	record, err = l.Burn(alice, 50)
	require.NoError(t, err)
	assert.EqualValues(t, 2, record.Sequence)
	assert.EqualValues(t, 2, burnedEvents.Load())
}

func TestLedger_BurnRequiresFunds(t *testing.T) {
	authority := identity.GenerateIdentity().ID()
	alice := identity.GenerateIdentity().ID()

	l, err := New(LedgerA, authority, WithGenesis(alice, 100))
	require.NoError(t, err)

	_, err = l.Burn(alice, 101)
	assert.True(t, errors.Is(err, ErrInsufficientBalance))
	assert.EqualValues(t, 100, l.Balance(alice))
	assert.EqualValues(t, 100, l.TotalSupply())
	assert.EqualValues(t, 0, l.LatestSequence())

	_, err = l.Burn(alice, 0)
	assert.True(t, errors.Is(err, ErrInvalidAmount))

	// an account without any balance cannot burn at all
	mallory := identity.GenerateIdentity().ID()
	_, err = l.Burn(mallory, 1)
	assert.True(t, errors.Is(err, ErrInsufficientBalance))
}

func TestLedger_Mint(t *testing.T) {
	authority := identity.GenerateIdentity().ID()
	bob := identity.GenerateIdentity().ID()

	l, err := New(LedgerB, authority)
	require.NoError(t, err)

	mintedEvents := atomic.NewUint64(0)
	l.Events.Minted.Attach(event.NewClosure(func(e *MintedEvent) {
		assert.Equal(t, LedgerB, e.Ledger)
		mintedEvents.Inc()
	}))

	receipt, err := l.Mint(authority, 0, bob, 250, Provenance{Source: LedgerA, Sequence: 1})
	require.NoError(t, err)
	assert.EqualValues(t, 250, l.Balance(bob))
	assert.EqualValues(t, 250, l.TotalSupply())
	assert.EqualValues(t, 1, l.AuthorityNonce())
	assert.EqualValues(t, 0, receipt.Nonce)
	assert.NotEqual(t, ReceiptID{}, receipt.ID)
	assert.EqualValues(t, 1, mintedEvents.Load())
}

func TestLedger_MintUnauthorized(t *testing.T) {
	authority := identity.GenerateIdentity().ID()
	mallory := identity.GenerateIdentity().ID()

	l, err := New(LedgerB, authority)
	require.NoError(t, err)

	_, err = l.Mint(mallory, 0, mallory, 100, Provenance{Source: LedgerA, Sequence: 1})
	assert.True(t, errors.Is(err, ErrUnauthorized))
	assert.EqualValues(t, 0, l.Balance(mallory))
	assert.EqualValues(t, 0, l.TotalSupply())
	assert.EqualValues(t, 0, l.AuthorityNonce())
}

func TestLedger_MintNonceConflict(t *testing.T) {
	authority := identity.GenerateIdentity().ID()
	bob := identity.GenerateIdentity().ID()

	l, err := New(LedgerB, authority)
	require.NoError(t, err)

	_, err = l.Mint(authority, 7, bob, 100, Provenance{Source: LedgerA, Sequence: 1})
	assert.True(t, errors.Is(err, ErrNonceConflict))
	// a failed mint must not consume the nonce
	assert.EqualValues(t, 0, l.AuthorityNonce())

	_, err = l.Mint(authority, 0, bob, 100, Provenance{Source: LedgerA, Sequence: 1})
	require.NoError(t, err)
	assert.EqualValues(t, 1, l.AuthorityNonce())
}

func TestLedger_MintAlreadyMinted(t *testing.T) {
	authority := identity.GenerateIdentity().ID()
	bob := identity.GenerateIdentity().ID()

	l, err := New(LedgerB, authority)
	require.NoError(t, err)

	provenance := Provenance{Source: LedgerA, Sequence: 42}
	_, err = l.Mint(authority, 0, bob, 100, provenance)
	require.NoError(t, err)

	// replaying the same bridge transfer must not inflate the supply
	_, err = l.Mint(authority, 1, bob, 100, provenance)
	assert.True(t, errors.Is(err, ErrAlreadyMinted))
	assert.EqualValues(t, 100, l.Balance(bob))
	assert.EqualValues(t, 100, l.TotalSupply())
	assert.EqualValues(t, 1, l.AuthorityNonce())
}

func TestLedger_MintForeignProvenance(t *testing.T) {
	authority := identity.GenerateIdentity().ID()
	bob := identity.GenerateIdentity().ID()

	l, err := New(LedgerB, authority)
	require.NoError(t, err)

	// a mint whose provenance names the ledger itself is misrouted
	_, err = l.Mint(authority, 0, bob, 100, Provenance{Source: LedgerB, Sequence: 1})
	assert.True(t, errors.Is(err, ErrUnknownLedger))
	assert.EqualValues(t, 0, l.TotalSupply())
}

func TestLedger_Transfer(t *testing.T) {
	authority := identity.GenerateIdentity().ID()
	alice := identity.GenerateIdentity().ID()
	bob := identity.GenerateIdentity().ID()

	l, err := New(LedgerA, authority, WithGenesis(alice, 300))
	require.NoError(t, err)

	require.NoError(t, l.Transfer(alice, bob, 120))
	assert.EqualValues(t, 180, l.Balance(alice))
	assert.EqualValues(t, 120, l.Balance(bob))
	assert.EqualValues(t, 300, l.TotalSupply())

	err = l.Transfer(bob, alice, 121)
	assert.True(t, errors.Is(err, ErrInsufficientBalance))
}

func TestLedger_BurnsSince(t *testing.T) {
	authority := identity.GenerateIdentity().ID()
	alice := identity.GenerateIdentity().ID()

	l, err := New(LedgerA, authority, WithGenesis(alice, 100))
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		_, err = l.Burn(alice, 10)
		require.NoError(t, err)
	}

	records, err := l.BurnsSince(0)
	require.NoError(t, err)
	require.Len(t, records, 5)
	for i, record := range records {
		assert.EqualValues(t, i+1, record.Sequence)
	}

	records, err = l.BurnsSince(4)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.EqualValues(t, 4, records[0].Sequence)
	assert.EqualValues(t, 5, records[1].Sequence)

	records, err = l.BurnsSince(6)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestLedger_Restart(t *testing.T) {
	store := mapdb.NewMapDB()
	authority := identity.GenerateIdentity().ID()
	alice := identity.GenerateIdentity().ID()
	bob := identity.GenerateIdentity().ID()

	l, err := New(LedgerA, authority, WithStore(store), WithGenesis(alice, 1000))
	require.NoError(t, err)

	_, err = l.Burn(alice, 100)
	require.NoError(t, err)
	provenance := Provenance{Source: LedgerB, Sequence: 9}
	_, err = l.Mint(authority, 0, bob, 60, provenance)
	require.NoError(t, err)
	require.NoError(t, l.Shutdown())

	// a ledger reopened on the same store picks up balances, counters and
	// consumed provenance
	restarted, err := New(LedgerA, authority, WithStore(store), WithGenesis(alice, 1000))
	require.NoError(t, err)

	assert.EqualValues(t, 900, restarted.Balance(alice))
	assert.EqualValues(t, 60, restarted.Balance(bob))
	assert.EqualValues(t, 960, restarted.TotalSupply())
	assert.EqualValues(t, 1, restarted.LatestSequence())
	assert.EqualValues(t, 1, restarted.AuthorityNonce())

	_, err = restarted.Mint(authority, 1, bob, 60, provenance)
	assert.True(t, errors.Is(err, ErrAlreadyMinted))

	records, err := restarted.BurnsSince(1)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.EqualValues(t, 100, records[0].Amount)
}

func TestLedger_ConcurrentBurns(t *testing.T) {
	const burns = 200

	authority := identity.GenerateIdentity().ID()
	alice := identity.GenerateIdentity().ID()

	l, err := New(LedgerA, authority, WithGenesis(alice, burns))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < burns; i++ {
		wg.Add(1)
		require.NoError(t, ants.Submit(func() {
			defer wg.Done()
			_, burnErr := l.Burn(alice, 1)
			assert.NoError(t, burnErr)
		}))
	}
	wg.Wait()

	assert.EqualValues(t, 0, l.Balance(alice))
	assert.EqualValues(t, 0, l.TotalSupply())
	assert.EqualValues(t, burns, l.LatestSequence())

	// the burn log must be dense: every sequence number occurs exactly once
	records, err := l.BurnsSince(1)
	require.NoError(t, err)
	require.Len(t, records, burns)
	seen := make(map[uint64]bool)
	for _, record := range records {
		assert.False(t, seen[record.Sequence])
		seen[record.Sequence] = true
	}
}
