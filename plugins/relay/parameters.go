package relay

import (
	"time"

	"github.com/iotaledger/hive.go/configuration"
)

// ConnectorParametersDefinition contains the definition of the configuration
// parameters of the connector fronting one of the bridged ledgers.
type ConnectorParametersDefinition struct {
	// Endpoint defines the web API address of the node hosting the ledger. An
	// empty endpoint means the ledger is hosted by this very node.
	Endpoint string `default:"" usage:"web API address of the node hosting the ledger; leave empty when this node hosts it"`
}

// ParametersDefinition contains the definition of the configuration parameters
// used by the relay plugin.
type ParametersDefinition struct {
	// LedgerA contains the connector parameters of ledger A.
	LedgerA ConnectorParametersDefinition
	// LedgerB contains the connector parameters of ledger B.
	LedgerB ConnectorParametersDefinition

	// Credential defines the secret presented to remote mint endpoints.
	Credential string `default:"" usage:"secret presented to the mint endpoints of remote nodes"`
	// QueueSize defines how many observed burns may wait for submission per direction.
	QueueSize int `default:"1024" usage:"how many observed burns may wait for submission per direction"`
	// SweepInterval defines how often the journal is swept for owed mints.
	SweepInterval time.Duration `default:"10s" usage:"how often the journal is swept for owed mints"`
	// RetryMinBackoff defines the initial wait after a failed mint submission.
	RetryMinBackoff time.Duration `default:"250ms" usage:"initial wait after a failed mint submission"`
	// RetryMaxBackoff defines the longest wait between mint submission retries.
	RetryMaxBackoff time.Duration `default:"8s" usage:"longest wait between mint submission retries"`
}

// Parameters contains the configuration parameters of the relay plugin.
var Parameters = &ParametersDefinition{}

func init() {
	configuration.BindParameters(Parameters, "relay")
}
