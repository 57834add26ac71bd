package relay

import (
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/identity"
	"github.com/iotaledger/hive.go/kvstore/mapdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trestlelabs/trestle/packages/ledger"
)

func testIntent(source ledger.LedgerID, sequence, amount uint64) *MintIntent {
	return &MintIntent{
		Provenance: ledger.Provenance{Source: source, Sequence: sequence},
		To:         identity.GenerateIdentity().ID(),
		Amount:     amount,
		Observed:   time.Now(),
	}
}

func testReceipt(intent *MintIntent) *ledger.MintReceipt {
	return &ledger.MintReceipt{
		Ledger:     intent.Provenance.Source.Opposite(),
		To:         intent.To,
		Amount:     intent.Amount,
		Provenance: intent.Provenance,
		Timestamp:  time.Now(),
	}
}

func TestJournal_Append(t *testing.T) {
	journal, err := NewJournal(mapdb.NewMapDB())
	require.NoError(t, err)

	added, err := journal.Append(testIntent(ledger.LedgerA, 1, 10))
	require.NoError(t, err)
	assert.True(t, added)
	assert.EqualValues(t, 1, journal.Watermark(ledger.LedgerA))
	assert.EqualValues(t, 0, journal.Watermark(ledger.LedgerB))

	// appending the same provenance again is a no-op
	added, err = journal.Append(testIntent(ledger.LedgerA, 1, 10))
	require.NoError(t, err)
	assert.False(t, added)

	assert.True(t, journal.IsKnown(ledger.Provenance{Source: ledger.LedgerA, Sequence: 1}))
	assert.True(t, journal.IsPending(ledger.Provenance{Source: ledger.LedgerA, Sequence: 1}))
	assert.False(t, journal.IsKnown(ledger.Provenance{Source: ledger.LedgerA, Sequence: 2}))
	assert.Equal(t, 1, journal.NumPending())
}

func TestJournal_WatermarkSkipsGaps(t *testing.T) {
	journal, err := NewJournal(mapdb.NewMapDB())
	require.NoError(t, err)

	for _, sequence := range []uint64{1, 3, 4} {
		_, err = journal.Append(testIntent(ledger.LedgerA, sequence, 10))
		require.NoError(t, err)
	}
	// 2 is missing, so the gap-free prefix ends at 1
	assert.EqualValues(t, 1, journal.Watermark(ledger.LedgerA))

	_, err = journal.Append(testIntent(ledger.LedgerA, 2, 10))
	require.NoError(t, err)
	assert.EqualValues(t, 4, journal.Watermark(ledger.LedgerA))
}

func TestJournal_Confirm(t *testing.T) {
	journal, err := NewJournal(mapdb.NewMapDB())
	require.NoError(t, err)

	intent := testIntent(ledger.LedgerA, 1, 10)
	_, err = journal.Append(intent)
	require.NoError(t, err)

	receipt := testReceipt(intent)
	require.NoError(t, journal.Confirm(receipt))
	assert.False(t, journal.IsPending(intent.Provenance))
	assert.True(t, journal.IsKnown(intent.Provenance))
	assert.Equal(t, 0, journal.NumPending())
	assert.Equal(t, 1, journal.NumConfirmed())

	// confirming twice is a no-op
	require.NoError(t, journal.Confirm(receipt))
	assert.Equal(t, 1, journal.NumConfirmed())

	// confirming something that was never journaled is an error
	err = journal.Confirm(testReceipt(testIntent(ledger.LedgerB, 7, 10)))
	assert.True(t, errors.Is(err, ErrNotJournaled))

	restored, err := journal.Receipt(intent.Provenance)
	require.NoError(t, err)
	assert.Equal(t, intent.Provenance, restored.Provenance)
	assert.Equal(t, intent.Amount, restored.Amount)
}

func TestJournal_Pending(t *testing.T) {
	journal, err := NewJournal(mapdb.NewMapDB())
	require.NoError(t, err)

	for _, sequence := range []uint64{3, 1, 2} {
		_, err = journal.Append(testIntent(ledger.LedgerA, sequence, 10))
		require.NoError(t, err)
	}
	_, err = journal.Append(testIntent(ledger.LedgerB, 1, 10))
	require.NoError(t, err)

	pending, err := journal.Pending(ledger.LedgerA)
	require.NoError(t, err)
	require.Len(t, pending, 3)
	for i, intent := range pending {
		assert.EqualValues(t, i+1, intent.Provenance.Sequence)
	}
}

func TestJournal_Restart(t *testing.T) {
	store := mapdb.NewMapDB()

	journal, err := NewJournal(store)
	require.NoError(t, err)

	confirmed := testIntent(ledger.LedgerA, 1, 10)
	pending := testIntent(ledger.LedgerA, 2, 20)
	ahead := testIntent(ledger.LedgerB, 5, 30)
	for _, intent := range []*MintIntent{confirmed, pending, ahead} {
		_, err = journal.Append(intent)
		require.NoError(t, err)
	}
	require.NoError(t, journal.Confirm(testReceipt(confirmed)))

	restarted, err := NewJournal(store)
	require.NoError(t, err)

	assert.EqualValues(t, 2, restarted.Watermark(ledger.LedgerA))
	assert.EqualValues(t, 0, restarted.Watermark(ledger.LedgerB))
	assert.True(t, restarted.IsKnown(ahead.Provenance))
	assert.False(t, restarted.IsPending(confirmed.Provenance))
	assert.True(t, restarted.IsPending(pending.Provenance))
	assert.Equal(t, 2, restarted.NumPending())
	assert.Equal(t, 1, restarted.NumConfirmed())

	intents, err := restarted.Pending(ledger.LedgerA)
	require.NoError(t, err)
	require.Len(t, intents, 1)
	assert.Equal(t, pending.Provenance, intents[0].Provenance)
	assert.Equal(t, pending.To, intents[0].To)
	assert.Equal(t, pending.Amount, intents[0].Amount)
}

func TestMintIntentFromBytes(t *testing.T) {
	intent := testIntent(ledger.LedgerB, 99, 123)

	restored, err := MintIntentFromBytes(intent.Bytes())
	require.NoError(t, err)
	assert.Equal(t, intent.Provenance, restored.Provenance)
	assert.Equal(t, intent.To, restored.To)
	assert.Equal(t, intent.Amount, restored.Amount)
	assert.True(t, restored.Observed.Equal(intent.Observed))
}
