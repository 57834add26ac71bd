package ledger

import (
	"testing"
	"time"

	"github.com/iotaledger/hive.go/identity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBurnRecordFromBytes(t *testing.T) {
	record := &BurnRecord{
		Sequence:  17,
		Account:   identity.GenerateIdentity().ID(),
		Amount:    4200,
		Timestamp: time.Now(),
	}

	restored, err := BurnRecordFromBytes(record.Bytes())
	require.NoError(t, err)

	assert.Equal(t, record.Sequence, restored.Sequence)
	assert.Equal(t, record.Account, restored.Account)
	assert.Equal(t, record.Amount, restored.Amount)
	assert.True(t, restored.Timestamp.Equal(record.Timestamp))
	assert.Equal(t, record.Bytes(), restored.Bytes())
}

func TestBurnRecordFromBytesTooShort(t *testing.T) {
	record := &BurnRecord{
		Sequence:  1,
		Account:   identity.GenerateIdentity().ID(),
		Amount:    1,
		Timestamp: time.Now(),
	}

	_, err := BurnRecordFromBytes(record.Bytes()[:12])
	assert.Error(t, err)
}
