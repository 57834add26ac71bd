package config

import (
	"github.com/iotaledger/hive.go/configuration"
)

// ParametersDefinition contains the definition of configuration parameters used by the node.
type ParametersDefinition struct {
	// DisablePlugins contains the list of plugins that shall be disabled.
	DisablePlugins []string `default:"" usage:"a list of plugins that shall be disabled"`
	// EnablePlugins contains the list of plugins that shall be enabled.
	EnablePlugins []string `default:"" usage:"a list of plugins that shall be enabled"`
}

// Parameters contains the configuration parameters of the node.
var Parameters = &ParametersDefinition{}

func init() {
	configuration.BindParameters(Parameters, "node")
}
