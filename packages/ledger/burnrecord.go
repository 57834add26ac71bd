package ledger

import (
	"crypto/sha256"
	"strconv"
	"time"

	"github.com/iotaledger/hive.go/identity"
	"github.com/iotaledger/hive.go/marshalutil"
	"github.com/iotaledger/hive.go/stringify"
)

// BurnRecord is the immutable record appended to a ledger's burn log for every executed burn.
// It is the unit of work the relay coordinator consumes: one BurnRecord on the source ledger
// justifies exactly one mint on the destination ledger.
type BurnRecord struct {
	// Sequence is the per-ledger sequence number assigned to the burn, contiguous and starting at 1.
	Sequence uint64
	// Account is the identity whose balance was burned.
	Account identity.ID
	// Amount is the burned amount.
	Amount uint64
	// Timestamp is the synced time the burn was executed at.
	Timestamp time.Time

	bytes []byte
}

// BurnRecordFromBytes unmarshals a BurnRecord from a sequence of bytes.
func BurnRecordFromBytes(bytes []byte) (*BurnRecord, error) {
	return BurnRecordFromMarshalUtil(marshalutil.New(bytes))
}

// BurnRecordFromMarshalUtil unmarshals a BurnRecord using a MarshalUtil (for easier unmarshalling).
func BurnRecordFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (record *BurnRecord, err error) {
	record = new(BurnRecord)
	if record.Sequence, err = marshalUtil.ReadUint64(); err != nil {
		return
	}
	accountBytes, err := marshalUtil.ReadBytes(sha256.Size)
	if err != nil {
		return
	}
	copy(record.Account[:], accountBytes)
	if record.Amount, err = marshalUtil.ReadUint64(); err != nil {
		return
	}
	if record.Timestamp, err = marshalUtil.ReadTime(); err != nil {
		return
	}
	return record, nil
}

// Bytes returns a marshaled version of the BurnRecord.
func (b *BurnRecord) Bytes() []byte {
	if bytes := b.bytes; bytes != nil {
		return bytes
	}

	marshalUtil := marshalutil.New()
	marshalUtil.WriteUint64(b.Sequence)
	marshalUtil.WriteBytes(b.Account.Bytes())
	marshalUtil.WriteUint64(b.Amount)
	marshalUtil.WriteTime(b.Timestamp)

	b.bytes = marshalUtil.Bytes()
	return b.bytes
}

// String returns a human-readable version of the BurnRecord.
func (b *BurnRecord) String() string {
	return stringify.Struct("BurnRecord",
		stringify.StructField("sequence", strconv.FormatUint(b.Sequence, 10)),
		stringify.StructField("account", b.Account.String()),
		stringify.StructField("amount", strconv.FormatUint(b.Amount, 10)),
		stringify.StructField("timestamp", b.Timestamp.String()),
	)
}
