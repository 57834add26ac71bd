package ledger

import (
	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/marshalutil"
)

// LedgerID identifies one of the two ledgers of the bridge pair.
type LedgerID uint8

const (
	// LedgerUnknown is the zero value of a LedgerID.
	LedgerUnknown LedgerID = iota
	// LedgerA identifies the first ledger of the pair.
	LedgerA
	// LedgerB identifies the second ledger of the pair.
	LedgerB
)

// LedgerIDFromString parses a LedgerID from its string representation.
func LedgerIDFromString(s string) (LedgerID, error) {
	switch s {
	case "A", "a":
		return LedgerA, nil
	case "B", "b":
		return LedgerB, nil
	default:
		return LedgerUnknown, errors.Errorf("%w: %s", ErrUnknownLedger, s)
	}
}

// LedgerIDFromMarshalUtil unmarshals a LedgerID using a MarshalUtil (for easier unmarshalling).
func LedgerIDFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (LedgerID, error) {
	id, err := marshalUtil.ReadByte()
	if err != nil {
		return LedgerUnknown, err
	}
	ledgerID := LedgerID(id)
	if ledgerID != LedgerA && ledgerID != LedgerB {
		return LedgerUnknown, errors.Errorf("%w: %d", ErrUnknownLedger, id)
	}
	return ledgerID, nil
}

// Opposite returns the other ledger of the pair.
func (l LedgerID) Opposite() LedgerID {
	switch l {
	case LedgerA:
		return LedgerB
	case LedgerB:
		return LedgerA
	default:
		return LedgerUnknown
	}
}

// Bytes returns a marshaled version of the LedgerID.
func (l LedgerID) Bytes() []byte {
	return []byte{byte(l)}
}

// String returns a human-readable version of the LedgerID.
func (l LedgerID) String() string {
	switch l {
	case LedgerA:
		return "A"
	case LedgerB:
		return "B"
	default:
		return "Unknown"
	}
}
