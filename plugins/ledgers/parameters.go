package ledgers

import (
	"github.com/iotaledger/hive.go/configuration"
)

// LedgerParametersDefinition contains the definition of the configuration
// parameters of a single hosted ledger.
type LedgerParametersDefinition struct {
	// Authority defines the base58 encoded account that holds the mint rights of the ledger.
	Authority string `default:"" usage:"base58 encoded account that holds the mint rights of the ledger"`
	// GenesisAccount defines the base58 encoded account that receives the genesis allocation.
	GenesisAccount string `default:"" usage:"base58 encoded account that receives the genesis allocation"`
	// GenesisAmount defines the amount of tokens the genesis account starts out with.
	GenesisAmount uint64 `default:"1000000000" usage:"amount of tokens the genesis account starts out with"`
}

// ParametersDefinition contains the definition of the configuration parameters
// used by the ledgers plugin.
type ParametersDefinition struct {
	// A contains the configuration parameters of ledger A.
	A LedgerParametersDefinition
	// B contains the configuration parameters of ledger B.
	B LedgerParametersDefinition
}

// Parameters contains the configuration parameters of the ledgers plugin.
var Parameters = &ParametersDefinition{}

func init() {
	configuration.BindParameters(Parameters, "ledgers")
}
