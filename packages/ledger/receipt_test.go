package ledger

import (
	"testing"
	"time"

	"github.com/iotaledger/hive.go/identity"
	"github.com/iotaledger/hive.go/marshalutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMintReceiptFromMarshalUtil(t *testing.T) {
	to := identity.GenerateIdentity().ID()
	receipt := &MintReceipt{
		ID:         newReceiptID(LedgerB, 3, to, 777, Provenance{Source: LedgerA, Sequence: 12}),
		Ledger:     LedgerB,
		Nonce:      3,
		To:         to,
		Amount:     777,
		Provenance: Provenance{Source: LedgerA, Sequence: 12},
		Timestamp:  time.Now(),
	}

	restored, err := MintReceiptFromMarshalUtil(marshalutil.New(receipt.Bytes()))
	require.NoError(t, err)

	assert.Equal(t, receipt.ID, restored.ID)
	assert.Equal(t, receipt.Ledger, restored.Ledger)
	assert.Equal(t, receipt.Nonce, restored.Nonce)
	assert.Equal(t, receipt.To, restored.To)
	assert.Equal(t, receipt.Amount, restored.Amount)
	assert.Equal(t, receipt.Provenance, restored.Provenance)
	assert.True(t, restored.Timestamp.Equal(receipt.Timestamp))
}

func TestReceiptIDFromBase58(t *testing.T) {
	id := newReceiptID(LedgerA, 0, identity.GenerateIdentity().ID(), 1, Provenance{Source: LedgerB, Sequence: 1})

	restored, err := ReceiptIDFromBase58(id.Base58())
	require.NoError(t, err)
	assert.Equal(t, id, restored)

	_, err = ReceiptIDFromBase58("not-base58!")
	assert.Error(t, err)
}

func TestNewReceiptIDDeterministic(t *testing.T) {
	to := identity.GenerateIdentity().ID()
	provenance := Provenance{Source: LedgerA, Sequence: 5}

	assert.Equal(t,
		newReceiptID(LedgerB, 1, to, 100, provenance),
		newReceiptID(LedgerB, 1, to, 100, provenance),
	)
	assert.NotEqual(t,
		newReceiptID(LedgerB, 1, to, 100, provenance),
		newReceiptID(LedgerB, 2, to, 100, provenance),
	)
}
