package metrics

import (
	"testing"

	"github.com/magiconair/properties/assert"

	"github.com/trestlelabs/trestle/packages/ledger"
)

func TestBurnCountPerLedger(t *testing.T) {
	// it is empty initially
	assert.Equal(t, BurnCountPerLedger()[ledger.LedgerA], uint64(0))
	// simulate observing 10 burns on ledger A
	for i := 0; i < 10; i++ {
		increaseBurnCounter(ledger.LedgerA)
	}
	assert.Equal(t, BurnCountPerLedger(), map[ledger.LedgerID]uint64{ledger.LedgerA: 10})
	// simulate observing 5 burns on ledger B
	for i := 0; i < 5; i++ {
		increaseBurnCounter(ledger.LedgerB)
	}
	assert.Equal(t, BurnCountPerLedger(), map[ledger.LedgerID]uint64{ledger.LedgerA: 10, ledger.LedgerB: 5})

	// the accumulated burns feed the next BPS measurement
	measureBPS()
	assert.Equal(t, BurnsPerSecond(), uint64(15))
	measureBPS()
	assert.Equal(t, BurnsPerSecond(), uint64(0))
}

func TestMintCountPerLedger(t *testing.T) {
	assert.Equal(t, MintCountPerLedger()[ledger.LedgerB], uint64(0))
	for i := 0; i < 3; i++ {
		increaseMintCounter(ledger.LedgerB)
	}
	assert.Equal(t, MintCountPerLedger(), map[ledger.LedgerID]uint64{ledger.LedgerB: 3})
}
