package ledgerroutes

import (
	"time"

	"github.com/iotaledger/hive.go/configuration"
)

// ParametersDefinition contains the definition of parameters used by the web API ledgers endpoint plugin.
type ParametersDefinition struct {
	// MintCredential defines the secret a relay has to present to use the mint endpoint.
	// Minting through the web API is disabled while it is empty.
	MintCredential string `default:"" usage:"secret a relay has to present to use the mint endpoint; empty disables remote minting"`

	// RateLimit defines the rate limit applied to the self-service operations per account.
	RateLimit struct {
		// Enabled defines whether the rate limit is enforced.
		Enabled bool `default:"true" usage:"whether the per-account rate limit of the self-service operations is enforced"`
		// Interval defines the length of the measured interval.
		Interval time.Duration `default:"1m" usage:"length of the interval the per-account operation rate is measured over"`
		// Limit defines the number of operations an account may perform per interval.
		Limit int `default:"60" usage:"number of self-service operations an account may perform per interval"`
	}
}

// Parameters contains the configuration used by the web API ledgers endpoint plugin.
var Parameters = &ParametersDefinition{}

func init() {
	configuration.BindParameters(Parameters, "webapi")
}
