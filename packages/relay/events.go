package relay

import (
	"github.com/iotaledger/hive.go/generics/event"

	"github.com/trestlelabs/trestle/packages/ledger"
)

// region Events ///////////////////////////////////////////////////////////////////////////////////////////////////////

// Events is a container that acts as a dictionary for the existing events of a Coordinator.
type Events struct {
	// BurnQueued is an event that gets triggered whenever a burn is journaled and handed to a submitter.
	BurnQueued *event.Event[*BurnQueuedEvent]

	// MintConfirmed is an event that gets triggered whenever a journaled mint is confirmed on its destination ledger.
	MintConfirmed *event.Event[*MintConfirmedEvent]

	// SubmissionFailed is an event that gets triggered whenever a mint is rejected with a permanent error.
	SubmissionFailed *event.Event[*SubmissionFailedEvent]

	// SubmissionDropped is an event that gets triggered whenever a submitter queue is full and an intent is
	// left to the next journal sweep.
	SubmissionDropped *event.Event[*SubmissionDroppedEvent]

	// NonceResynced is an event that gets triggered whenever a submitter re-reads the authority nonce of its
	// destination ledger after a conflict.
	NonceResynced *event.Event[*NonceResyncedEvent]
}

// newEvents returns a new Events object.
func newEvents() (new *Events) {
	return &Events{
		BurnQueued:        event.New[*BurnQueuedEvent](),
		MintConfirmed:     event.New[*MintConfirmedEvent](),
		SubmissionFailed:  event.New[*SubmissionFailedEvent](),
		SubmissionDropped: event.New[*SubmissionDroppedEvent](),
		NonceResynced:     event.New[*NonceResyncedEvent](),
	}
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region BurnQueuedEvent //////////////////////////////////////////////////////////////////////////////////////////////

// BurnQueuedEvent is a container that acts as a dictionary for the BurnQueued event related parameters.
type BurnQueuedEvent struct {
	// Direction contains the direction the intent travels in.
	Direction Direction

	// Intent contains the journaled MintIntent.
	Intent *MintIntent
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region MintConfirmedEvent ///////////////////////////////////////////////////////////////////////////////////////////

// MintConfirmedEvent is a container that acts as a dictionary for the MintConfirmed event related parameters.
type MintConfirmedEvent struct {
	// Direction contains the direction the intent traveled in.
	Direction Direction

	// Intent contains the MintIntent that was confirmed.
	Intent *MintIntent

	// Receipt contains the receipt the destination ledger issued. Its ID is zero when the destination
	// reported the transfer as already minted.
	Receipt *ledger.MintReceipt
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region SubmissionFailedEvent ////////////////////////////////////////////////////////////////////////////////////////

// SubmissionFailedEvent is a container that acts as a dictionary for the SubmissionFailed event related parameters.
type SubmissionFailedEvent struct {
	// Direction contains the direction the intent traveled in.
	Direction Direction

	// Intent contains the MintIntent that was rejected.
	Intent *MintIntent

	// Reason contains the error the destination ledger rejected the mint with.
	Reason error
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region SubmissionDroppedEvent ///////////////////////////////////////////////////////////////////////////////////////

// SubmissionDroppedEvent is a container that acts as a dictionary for the SubmissionDropped event related parameters.
type SubmissionDroppedEvent struct {
	// Direction contains the direction the intent travels in.
	Direction Direction

	// Intent contains the MintIntent that did not fit into the submitter queue.
	Intent *MintIntent
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region NonceResyncedEvent ///////////////////////////////////////////////////////////////////////////////////////////

// NonceResyncedEvent is a container that acts as a dictionary for the NonceResynced event related parameters.
type NonceResyncedEvent struct {
	// Destination contains the identifier of the ledger whose authority nonce was re-read.
	Destination ledger.LedgerID

	// Nonce contains the authority nonce the submitter continues with.
	Nonce uint64
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
