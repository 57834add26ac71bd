package relay

import (
	"context"

	"github.com/iotaledger/hive.go/generics/event"
	"github.com/iotaledger/hive.go/identity"

	"github.com/trestlelabs/trestle/packages/ledger"
)

// region Connector ////////////////////////////////////////////////////////////////////////////////////////////////////

// Connector is the interface the relay uses to talk to one of the two bridged ledgers. It is the
// seam between the coordination logic and the ledger transport: an InProcessConnector fronts a
// ledger hosted in the same node while a RemoteConnector fronts a ledger behind an HTTP endpoint.
type Connector interface {
	// LedgerID returns the identifier of the ledger the connector fronts.
	LedgerID() ledger.LedgerID

	// Events returns the event bus of the connector.
	Events() *ConnectorEvents

	// BurnsSince returns the burn records with a sequence number of at least fromSequence, in
	// ascending sequence order.
	BurnsSince(ctx context.Context, fromSequence uint64) ([]*ledger.BurnRecord, error)

	// Mint executes an authority mint on the connected ledger and returns its receipt. The
	// sentinel errors of the ledger package (ledger.ErrNonceConflict, ledger.ErrAlreadyMinted,
	// ledger.ErrUnauthorized) are preserved across the transport.
	Mint(ctx context.Context, nonce uint64, to identity.ID, amount uint64, provenance ledger.Provenance) (*ledger.MintReceipt, error)

	// AuthorityNonce returns the nonce the connected ledger expects for its next mint.
	AuthorityNonce(ctx context.Context) (uint64, error)

	// TotalSupply returns the current total supply of the connected ledger.
	TotalSupply(ctx context.Context) (uint64, error)

	// Close releases the resources of the connector.
	Close() error
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region ConnectorEvents //////////////////////////////////////////////////////////////////////////////////////////////

// ConnectorEvents is a container that acts as a dictionary for the existing events of a Connector.
type ConnectorEvents struct {
	// BurnObserved is an event that gets triggered whenever a new burn record is observed on the
	// connected ledger.
	BurnObserved *event.Event[*BurnObservedEvent]
}

// newConnectorEvents returns a new ConnectorEvents object.
func newConnectorEvents() (new *ConnectorEvents) {
	return &ConnectorEvents{
		BurnObserved: event.New[*BurnObservedEvent](),
	}
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region BurnObservedEvent ////////////////////////////////////////////////////////////////////////////////////////////

// BurnObservedEvent is a container that acts as a dictionary for the BurnObserved event related parameters.
type BurnObservedEvent struct {
	// Ledger contains the identifier of the ledger the burn was observed on.
	Ledger ledger.LedgerID

	// Record contains the observed BurnRecord.
	Record *ledger.BurnRecord
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
