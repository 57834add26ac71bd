package jsonmodels

import (
	"time"

	"github.com/cockroachdb/errors"

	"github.com/trestlelabs/trestle/packages/ledger"
)

// region Provenance ///////////////////////////////////////////////////////////////////////////////////////////////////

// Provenance represents the JSON model of a ledger.Provenance.
type Provenance struct {
	SourceLedger   string `json:"sourceLedger"`
	SequenceNumber uint64 `json:"sequenceNumber"`
}

// NewProvenance returns a Provenance from the given ledger.Provenance.
func NewProvenance(provenance ledger.Provenance) Provenance {
	return Provenance{
		SourceLedger:   provenance.Source.String(),
		SequenceNumber: provenance.Sequence,
	}
}

// ToProvenance converts the JSON model back into a ledger.Provenance.
func (p Provenance) ToProvenance() (provenance ledger.Provenance, err error) {
	if provenance.Source, err = ledger.LedgerIDFromString(p.SourceLedger); err != nil {
		return provenance, errors.Errorf("failed to parse source ledger: %w", err)
	}
	provenance.Sequence = p.SequenceNumber

	return provenance, nil
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region BurnRecord ///////////////////////////////////////////////////////////////////////////////////////////////////

// BurnRecord represents the JSON model of a ledger.BurnRecord.
type BurnRecord struct {
	Sequence  uint64    `json:"sequence"`
	Account   string    `json:"account"`
	Amount    uint64    `json:"amount"`
	Timestamp time.Time `json:"timestamp"`
}

// NewBurnRecord returns a BurnRecord from the given ledger.BurnRecord.
func NewBurnRecord(record *ledger.BurnRecord) *BurnRecord {
	return &BurnRecord{
		Sequence:  record.Sequence,
		Account:   ledger.AccountBase58(record.Account),
		Amount:    record.Amount,
		Timestamp: record.Timestamp,
	}
}

// ToRecord converts the JSON model back into a ledger.BurnRecord.
func (b *BurnRecord) ToRecord() (record *ledger.BurnRecord, err error) {
	record = &ledger.BurnRecord{
		Sequence:  b.Sequence,
		Amount:    b.Amount,
		Timestamp: b.Timestamp,
	}
	if record.Account, err = ledger.AccountFromBase58(b.Account); err != nil {
		return nil, errors.Errorf("failed to parse account: %w", err)
	}

	return record, nil
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region MintReceipt //////////////////////////////////////////////////////////////////////////////////////////////////

// MintReceipt represents the JSON model of a ledger.MintReceipt.
type MintReceipt struct {
	ID         string     `json:"id"`
	Ledger     string     `json:"ledger"`
	Nonce      uint64     `json:"nonce"`
	To         string     `json:"to"`
	Amount     uint64     `json:"amount"`
	Provenance Provenance `json:"provenance"`
	Timestamp  time.Time  `json:"timestamp"`
}

// NewMintReceipt returns a MintReceipt from the given ledger.MintReceipt.
func NewMintReceipt(receipt *ledger.MintReceipt) *MintReceipt {
	return &MintReceipt{
		ID:         receipt.ID.Base58(),
		Ledger:     receipt.Ledger.String(),
		Nonce:      receipt.Nonce,
		To:         ledger.AccountBase58(receipt.To),
		Amount:     receipt.Amount,
		Provenance: NewProvenance(receipt.Provenance),
		Timestamp:  receipt.Timestamp,
	}
}

// ToReceipt converts the JSON model back into a ledger.MintReceipt.
func (m *MintReceipt) ToReceipt() (receipt *ledger.MintReceipt, err error) {
	receipt = &ledger.MintReceipt{
		Nonce:     m.Nonce,
		Amount:    m.Amount,
		Timestamp: m.Timestamp,
	}
	if receipt.ID, err = ledger.ReceiptIDFromBase58(m.ID); err != nil {
		return nil, errors.Errorf("failed to parse receipt ID: %w", err)
	}
	if receipt.Ledger, err = ledger.LedgerIDFromString(m.Ledger); err != nil {
		return nil, errors.Errorf("failed to parse ledger: %w", err)
	}
	if receipt.To, err = ledger.AccountFromBase58(m.To); err != nil {
		return nil, errors.Errorf("failed to parse receiving account: %w", err)
	}
	if receipt.Provenance, err = m.Provenance.ToProvenance(); err != nil {
		return nil, errors.Errorf("failed to parse provenance: %w", err)
	}

	return receipt, nil
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region GetLedgerInfoResponse ////////////////////////////////////////////////////////////////////////////////////////

// GetLedgerInfoResponse is the HTTP response of a GET request to the ledger info endpoint.
type GetLedgerInfoResponse struct {
	LedgerID       string `json:"ledgerID"`
	Authority      string `json:"authority"`
	TotalSupply    uint64 `json:"totalSupply"`
	LatestSequence uint64 `json:"latestSequence"`
	AuthorityNonce uint64 `json:"authorityNonce"`
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region GetAccountResponse ///////////////////////////////////////////////////////////////////////////////////////////

// GetAccountResponse is the HTTP response of a GET request to the account endpoint.
type GetAccountResponse struct {
	LedgerID string `json:"ledgerID"`
	Account  string `json:"account"`
	Balance  uint64 `json:"balance"`
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region GetBurnsResponse /////////////////////////////////////////////////////////////////////////////////////////////

// GetBurnsResponse is the HTTP response of a GET request to the burn log endpoint.
type GetBurnsResponse struct {
	LedgerID string        `json:"ledgerID"`
	Burns    []*BurnRecord `json:"burns"`
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region GetSupplyResponse ////////////////////////////////////////////////////////////////////////////////////////////

// GetSupplyResponse is the HTTP response of a GET request to the supply endpoint.
type GetSupplyResponse struct {
	Supplies map[string]uint64 `json:"supplies"`
	Total    uint64            `json:"total"`
}

// GetLedgerSupplyResponse is the HTTP response of a GET request to the supply endpoint of a single
// ledger.
type GetLedgerSupplyResponse struct {
	LedgerID       string `json:"ledgerID"`
	TotalSupply    uint64 `json:"totalSupply"`
	LatestSequence uint64 `json:"latestSequence"`
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region PostBridgeRequest ////////////////////////////////////////////////////////////////////////////////////////////

// PostBridgeRequest is the HTTP request of a POST request to the bridge endpoint.
type PostBridgeRequest struct {
	Account string `json:"account"`
	Amount  uint64 `json:"amount"`
}

// PostBridgeResponse is the HTTP response of a POST request to the bridge endpoint. The record is
// the burn that the bridged amount left behind on the source ledger.
type PostBridgeResponse struct {
	LedgerID string      `json:"ledgerID"`
	Record   *BurnRecord `json:"record"`
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region PostMintRequest //////////////////////////////////////////////////////////////////////////////////////////////

// PostMintRequest is the HTTP request of a POST request to the mint endpoint.
type PostMintRequest struct {
	Nonce      uint64     `json:"nonce"`
	To         string     `json:"to"`
	Amount     uint64     `json:"amount"`
	Provenance Provenance `json:"provenance"`
}

// PostMintResponse is the HTTP response of a POST request to the mint endpoint. AlreadyMinted is
// set instead of a receipt when the referenced burn was minted before.
type PostMintResponse struct {
	Receipt       *MintReceipt `json:"receipt,omitempty"`
	AlreadyMinted bool         `json:"alreadyMinted,omitempty"`
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region PostTransferRequest //////////////////////////////////////////////////////////////////////////////////////////

// PostTransferRequest is the HTTP request of a POST request to the transfer endpoint.
type PostTransferRequest struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount uint64 `json:"amount"`
}

// PostTransferResponse is the HTTP response of a POST request to the transfer endpoint.
type PostTransferResponse struct {
	LedgerID    string `json:"ledgerID"`
	FromBalance uint64 `json:"fromBalance"`
	ToBalance   uint64 `json:"toBalance"`
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
