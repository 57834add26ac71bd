package prometheus

import (
	"github.com/iotaledger/hive.go/configuration"
)

// ParametersDefinition contains the definition of parameters used by the prometheus plugin.
type ParametersDefinition struct {
	// BindAddress defines the bind address on which the Prometheus exporter listens on.
	BindAddress string `default:"0.0.0.0:9311" usage:"bind address on which the Prometheus exporter listens on"`
	// GoMetrics defines whether to include Go metrics.
	GoMetrics bool `default:"false" usage:"include go metrics"`
	// ProcessMetrics defines whether to include process metrics.
	ProcessMetrics bool `default:"true" usage:"include process metrics"`
	// PromhttpMetrics defines whether to use the default promhttp handler instead of the plugin registry.
	PromhttpMetrics bool `default:"false" usage:"use promhttp metrics"`
}

// Parameters contains the configuration used by the prometheus plugin.
var Parameters = &ParametersDefinition{}

func init() {
	configuration.BindParameters(Parameters, "prometheus")
}
