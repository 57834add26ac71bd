package jsonmodels

import (
	"time"
)

// region MintIntent ///////////////////////////////////////////////////////////////////////////////////////////////////

// MintIntent represents the JSON model of a journaled mint intent of the relay.
type MintIntent struct {
	Provenance Provenance `json:"provenance"`
	To         string     `json:"to"`
	Amount     uint64     `json:"amount"`
	Observed   time.Time  `json:"observed"`
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region WSMessage ////////////////////////////////////////////////////////////////////////////////////////////////////

const (
	// WSMsgBurn is the type of websocket messages that carry a burn record.
	WSMsgBurn byte = iota
	// WSMsgMint is the type of websocket messages that carry a mint receipt.
	WSMsgMint
)

// WSMessage is the envelope of every message pushed on the websocket feed.
type WSMessage struct {
	Type byte        `json:"type"`
	Data interface{} `json:"data"`
}

// WSBurn is the payload of a WSMsgBurn message.
type WSBurn struct {
	LedgerID string      `json:"ledgerID"`
	Record   *BurnRecord `json:"record"`
}

// WSMint is the payload of a WSMsgMint message.
type WSMint struct {
	LedgerID string       `json:"ledgerID"`
	Receipt  *MintReceipt `json:"receipt"`
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region GetJournalResponse ///////////////////////////////////////////////////////////////////////////////////////////

// GetJournalResponse is the HTTP response of a GET request to the relay journal endpoint. A source
// query parameter narrows directions, watermarks and pending to one source ledger.
type GetJournalResponse struct {
	// Directions lists the directions the response covers, e.g. "A->B".
	Directions []string `json:"directions"`
	// Watermarks holds, per source ledger, the sequence number up to which every burn is journaled.
	Watermarks map[string]uint64 `json:"watermarks"`
	// NumPending is the number of pending mints listed in the response.
	NumPending int `json:"numPending"`
	// NumConfirmed is the number of confirmed mints across the whole journal.
	NumConfirmed int `json:"numConfirmed"`
	// Pending lists the journaled mints that still await inclusion.
	Pending []*MintIntent `json:"pending,omitempty"`
	// Supplies holds the current total supply per ledger.
	Supplies map[string]uint64 `json:"supplies,omitempty"`
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
