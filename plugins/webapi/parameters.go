package webapi

import (
	"github.com/iotaledger/hive.go/configuration"
)

// ParametersDefinition contains the definition of the configuration parameters
// used by the web API plugin.
type ParametersDefinition struct {
	// BindAddress defines the bind address for the web API.
	BindAddress string `default:"127.0.0.1:8080" usage:"the bind address for the web API"`

	// BasicAuth contains the basic auth configuration of the web API.
	BasicAuth struct {
		// Enabled defines whether the web API is protected with basic auth.
		Enabled bool `default:"false" usage:"whether the web API is protected with basic auth"`
		// Username defines the basic auth username.
		Username string `default:"trestle" usage:"the basic auth username"`
		// Password defines the basic auth password.
		Password string `default:"trestle" usage:"the basic auth password"`
	}
}

// Parameters contains the configuration parameters of the web API plugin.
var Parameters = &ParametersDefinition{}

func init() {
	configuration.BindParameters(Parameters, "webapi")
}
