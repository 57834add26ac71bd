package relay

import (
	"context"

	"github.com/iotaledger/hive.go/generics/event"
	"github.com/iotaledger/hive.go/identity"

	"github.com/trestlelabs/trestle/packages/ledger"
)

// InProcessConnector fronts a ledger instance that is hosted inside the same node. It forwards
// every call directly to the ledger and republishes the ledger's burn events on its own bus.
type InProcessConnector struct {
	events *ConnectorEvents

	ledger        *ledger.Ledger
	authority     identity.ID
	burnedClosure *event.Closure[*ledger.BurnedEvent]
}

// NewInProcessConnector returns a Connector for the given in-process ledger. The authority is the
// identity the connector mints with.
func NewInProcessConnector(l *ledger.Ledger, authority identity.ID) (connector *InProcessConnector) {
	connector = &InProcessConnector{
		events:    newConnectorEvents(),
		ledger:    l,
		authority: authority,
	}

	connector.burnedClosure = event.NewClosure(func(e *ledger.BurnedEvent) {
		connector.events.BurnObserved.Trigger(&BurnObservedEvent{
			Ledger: e.Ledger,
			Record: e.Record,
		})
	})
	l.Events.Burned.Attach(connector.burnedClosure)

	return connector
}

// LedgerID returns the identifier of the ledger the connector fronts.
func (i *InProcessConnector) LedgerID() ledger.LedgerID {
	return i.ledger.ID()
}

// Events returns the event bus of the connector.
func (i *InProcessConnector) Events() *ConnectorEvents {
	return i.events
}

// BurnsSince returns the burn records with a sequence number of at least fromSequence.
func (i *InProcessConnector) BurnsSince(_ context.Context, fromSequence uint64) ([]*ledger.BurnRecord, error) {
	return i.ledger.BurnsSince(fromSequence)
}

// Mint executes an authority mint on the connected ledger.
func (i *InProcessConnector) Mint(_ context.Context, nonce uint64, to identity.ID, amount uint64, provenance ledger.Provenance) (*ledger.MintReceipt, error) {
	return i.ledger.Mint(i.authority, nonce, to, amount, provenance)
}

// AuthorityNonce returns the nonce the connected ledger expects for its next mint.
func (i *InProcessConnector) AuthorityNonce(_ context.Context) (uint64, error) {
	return i.ledger.AuthorityNonce(), nil
}

// TotalSupply returns the current total supply of the connected ledger.
func (i *InProcessConnector) TotalSupply(_ context.Context) (uint64, error) {
	return i.ledger.TotalSupply(), nil
}

// Close detaches the connector from the ledger's events.
func (i *InProcessConnector) Close() error {
	i.ledger.Events.Burned.Detach(i.burnedClosure)
	return nil
}

// code contract (make sure the type implements all required methods).
var _ Connector = &InProcessConnector{}
