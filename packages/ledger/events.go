package ledger

import (
	"github.com/iotaledger/hive.go/generics/event"
	"github.com/iotaledger/hive.go/identity"
)

// region Events ///////////////////////////////////////////////////////////////////////////////////////////////////////

// Events is a container that acts as a dictionary for the existing events of a Ledger.
type Events struct {
	// Burned is an event that gets triggered whenever a burn is executed and its BurnRecord is appended.
	Burned *event.Event[*BurnedEvent]

	// Minted is an event that gets triggered whenever a mint is included.
	Minted *event.Event[*MintedEvent]

	// Transferred is an event that gets triggered whenever a balance is moved between two accounts.
	Transferred *event.Event[*TransferredEvent]
}

// newEvents returns a new Events object.
func newEvents() (new *Events) {
	return &Events{
		Burned:      event.New[*BurnedEvent](),
		Minted:      event.New[*MintedEvent](),
		Transferred: event.New[*TransferredEvent](),
	}
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region BurnedEvent //////////////////////////////////////////////////////////////////////////////////////////////////

// BurnedEvent is a container that acts as a dictionary for the Burned event related parameters.
type BurnedEvent struct {
	// Ledger contains the identifier of the ledger the burn was executed on.
	Ledger LedgerID

	// Record contains the BurnRecord that was appended to the ledger's burn log.
	Record *BurnRecord
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region MintedEvent //////////////////////////////////////////////////////////////////////////////////////////////////

// MintedEvent is a container that acts as a dictionary for the Minted event related parameters.
type MintedEvent struct {
	// Ledger contains the identifier of the ledger the mint was included on.
	Ledger LedgerID

	// Receipt contains the inclusion receipt of the mint.
	Receipt *MintReceipt
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region TransferredEvent /////////////////////////////////////////////////////////////////////////////////////////////

// TransferredEvent is a container that acts as a dictionary for the Transferred event related parameters.
type TransferredEvent struct {
	// Ledger contains the identifier of the ledger the transfer was executed on.
	Ledger LedgerID

	// From contains the debited account.
	From identity.ID

	// To contains the credited account.
	To identity.ID

	// Amount contains the transferred amount.
	Amount uint64
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
