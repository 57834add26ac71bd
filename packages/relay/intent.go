package relay

import (
	"crypto/sha256"
	"strconv"
	"time"

	"github.com/iotaledger/hive.go/identity"
	"github.com/iotaledger/hive.go/marshalutil"
	"github.com/iotaledger/hive.go/stringify"

	"github.com/trestlelabs/trestle/packages/ledger"
)

// MintIntent is the unit of work that travels through the relay: it describes the mint that is
// owed on the destination ledger for a single observed burn. Intents are journaled before they
// are handed to the submitter, so a crashed relay can finish them after a restart.
type MintIntent struct {
	// Provenance identifies the burn that justifies the mint.
	Provenance ledger.Provenance
	// To is the account that receives the minted amount.
	To identity.ID
	// Amount is the amount to mint.
	Amount uint64
	// Observed is the synced time the burn was first seen by the relay.
	Observed time.Time
}

// NewMintIntent derives the MintIntent owed for the given burn record.
func NewMintIntent(source ledger.LedgerID, record *ledger.BurnRecord, observed time.Time) *MintIntent {
	return &MintIntent{
		Provenance: ledger.Provenance{Source: source, Sequence: record.Sequence},
		To:         record.Account,
		Amount:     record.Amount,
		Observed:   observed,
	}
}

// MintIntentFromBytes unmarshals a MintIntent from a sequence of bytes.
func MintIntentFromBytes(bytes []byte) (*MintIntent, error) {
	return MintIntentFromMarshalUtil(marshalutil.New(bytes))
}

// MintIntentFromMarshalUtil unmarshals a MintIntent using a MarshalUtil (for easier unmarshalling).
func MintIntentFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (intent *MintIntent, err error) {
	intent = new(MintIntent)
	if intent.Provenance, err = ledger.ProvenanceFromMarshalUtil(marshalUtil); err != nil {
		return
	}
	accountBytes, err := marshalUtil.ReadBytes(sha256.Size)
	if err != nil {
		return
	}
	copy(intent.To[:], accountBytes)
	if intent.Amount, err = marshalUtil.ReadUint64(); err != nil {
		return
	}
	if intent.Observed, err = marshalUtil.ReadTime(); err != nil {
		return
	}
	return intent, nil
}

// Bytes returns a marshaled version of the MintIntent.
func (m *MintIntent) Bytes() []byte {
	return marshalutil.New().
		WriteBytes(m.Provenance.Bytes()).
		WriteBytes(m.To.Bytes()).
		WriteUint64(m.Amount).
		WriteTime(m.Observed).
		Bytes()
}

// String returns a human-readable version of the MintIntent.
func (m *MintIntent) String() string {
	return stringify.Struct("MintIntent",
		stringify.StructField("provenance", m.Provenance),
		stringify.StructField("to", m.To.String()),
		stringify.StructField("amount", strconv.FormatUint(m.Amount, 10)),
		stringify.StructField("observed", m.Observed.String()),
	)
}
