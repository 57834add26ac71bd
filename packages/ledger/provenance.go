package ledger

import (
	"strconv"

	"github.com/iotaledger/hive.go/marshalutil"
	"github.com/iotaledger/hive.go/stringify"
)

// Provenance ties a mint on one ledger to the burn on the other ledger that justified it.
// The pair is unique per bridge transfer and is consumed by exactly one mint.
type Provenance struct {
	// Source is the ledger the corresponding burn was executed on.
	Source LedgerID
	// Sequence is the sequence number the burn was assigned on the source ledger.
	Sequence uint64
}

// ProvenanceFromMarshalUtil unmarshals a Provenance using a MarshalUtil (for easier unmarshalling).
func ProvenanceFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (provenance Provenance, err error) {
	if provenance.Source, err = LedgerIDFromMarshalUtil(marshalUtil); err != nil {
		return
	}
	if provenance.Sequence, err = marshalUtil.ReadUint64(); err != nil {
		return
	}
	return
}

// Bytes returns a marshaled version of the Provenance.
func (p Provenance) Bytes() []byte {
	return marshalutil.New(1 + marshalutil.Uint64Size).
		WriteByte(byte(p.Source)).
		WriteUint64(p.Sequence).
		Bytes()
}

// String returns a human-readable version of the Provenance.
func (p Provenance) String() string {
	return stringify.Struct("Provenance",
		stringify.StructField("source", p.Source.String()),
		stringify.StructField("sequence", strconv.FormatUint(p.Sequence, 10)),
	)
}
