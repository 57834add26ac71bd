package relay

import (
	"github.com/cockroachdb/errors"
)

var (
	// ErrNotJournaled is returned when a receipt is requested for a bridge transfer the journal has never seen.
	ErrNotJournaled = errors.New("bridge transfer is not journaled")

	// ErrEndpointFailure is returned when a remote ledger endpoint answers with an unexpected status.
	ErrEndpointFailure = errors.New("ledger endpoint failure")
)
