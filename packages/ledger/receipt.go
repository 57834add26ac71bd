package ledger

import (
	"crypto/sha256"
	"strconv"
	"time"

	"github.com/iotaledger/hive.go/identity"
	"github.com/iotaledger/hive.go/marshalutil"
	"github.com/iotaledger/hive.go/stringify"
	"github.com/mr-tron/base58"
	"golang.org/x/crypto/blake2b"
)

// ReceiptIDLength is the byte length of a marshaled ReceiptID.
const ReceiptIDLength = blake2b.Size256

// ReceiptID is the unique identifier of an included mint, derived from the mint's content.
type ReceiptID [ReceiptIDLength]byte

// ReceiptIDFromBase58 decodes a ReceiptID from its base58 string representation.
func ReceiptIDFromBase58(s string) (id ReceiptID, err error) {
	decoded, err := base58.Decode(s)
	if err != nil {
		return
	}
	copy(id[:], decoded)
	return
}

// Bytes returns a marshaled version of the ReceiptID.
func (r ReceiptID) Bytes() []byte {
	return r[:]
}

// Base58 returns the base58 string representation of the ReceiptID.
func (r ReceiptID) Base58() string {
	return base58.Encode(r[:])
}

// String returns a human-readable version of the ReceiptID.
func (r ReceiptID) String() string {
	return "ReceiptID(" + r.Base58() + ")"
}

// MintReceipt acknowledges the inclusion of a mint on a ledger.
type MintReceipt struct {
	// ID is the content-derived identifier of the included mint.
	ID ReceiptID
	// Ledger is the ledger the mint was included on.
	Ledger LedgerID
	// Nonce is the authority nonce the mint consumed.
	Nonce uint64
	// To is the credited account.
	To identity.ID
	// Amount is the minted amount.
	Amount uint64
	// Provenance names the burn that justified the mint.
	Provenance Provenance
	// Timestamp is the synced time the mint was included at.
	Timestamp time.Time
}

// MintReceiptFromMarshalUtil unmarshals a MintReceipt using a MarshalUtil (for easier unmarshalling).
func MintReceiptFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (receipt *MintReceipt, err error) {
	receipt = new(MintReceipt)
	idBytes, err := marshalUtil.ReadBytes(ReceiptIDLength)
	if err != nil {
		return
	}
	copy(receipt.ID[:], idBytes)
	if receipt.Ledger, err = LedgerIDFromMarshalUtil(marshalUtil); err != nil {
		return
	}
	if receipt.Nonce, err = marshalUtil.ReadUint64(); err != nil {
		return
	}
	toBytes, err := marshalUtil.ReadBytes(sha256.Size)
	if err != nil {
		return
	}
	copy(receipt.To[:], toBytes)
	if receipt.Amount, err = marshalUtil.ReadUint64(); err != nil {
		return
	}
	if receipt.Provenance, err = ProvenanceFromMarshalUtil(marshalUtil); err != nil {
		return
	}
	if receipt.Timestamp, err = marshalUtil.ReadTime(); err != nil {
		return
	}
	return receipt, nil
}

// Bytes returns a marshaled version of the MintReceipt.
func (m *MintReceipt) Bytes() []byte {
	marshalUtil := marshalutil.New()
	marshalUtil.WriteBytes(m.ID.Bytes())
	marshalUtil.WriteByte(byte(m.Ledger))
	marshalUtil.WriteUint64(m.Nonce)
	marshalUtil.WriteBytes(m.To.Bytes())
	marshalUtil.WriteUint64(m.Amount)
	marshalUtil.WriteBytes(m.Provenance.Bytes())
	marshalUtil.WriteTime(m.Timestamp)
	return marshalUtil.Bytes()
}

// String returns a human-readable version of the MintReceipt.
func (m *MintReceipt) String() string {
	return stringify.Struct("MintReceipt",
		stringify.StructField("id", m.ID.String()),
		stringify.StructField("ledger", m.Ledger.String()),
		stringify.StructField("nonce", strconv.FormatUint(m.Nonce, 10)),
		stringify.StructField("to", m.To.String()),
		stringify.StructField("amount", strconv.FormatUint(m.Amount, 10)),
		stringify.StructField("provenance", m.Provenance),
	)
}

// newReceiptID derives the ReceiptID of a mint from its content.
func newReceiptID(ledger LedgerID, nonce uint64, to identity.ID, amount uint64, provenance Provenance) ReceiptID {
	marshalUtil := marshalutil.New()
	marshalUtil.WriteByte(byte(ledger))
	marshalUtil.WriteUint64(nonce)
	marshalUtil.WriteBytes(to.Bytes())
	marshalUtil.WriteUint64(amount)
	marshalUtil.WriteBytes(provenance.Bytes())
	return blake2b.Sum256(marshalUtil.Bytes())
}
