package profiling

import (
	"github.com/iotaledger/hive.go/configuration"
)

// ParametersDefinition contains the definition of parameters used by the profiling plugin.
type ParametersDefinition struct {
	// BindAddress defines the bind address on which the profiling server listens on.
	BindAddress string `default:"127.0.0.1:6061" usage:"bind address on which the profiling server listens on"`
}

// Parameters contains the configuration used by the profiling plugin.
var Parameters = &ParametersDefinition{}

func init() {
	configuration.BindParameters(Parameters, "profiling")
}
