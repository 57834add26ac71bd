package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/trestlelabs/trestle/plugins/metrics"
)

var dbSizes *prometheus.GaugeVec

func registerDBMetrics() {
	dbSizes = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "db",
			Name:      "size",
			Help:      "DB size in bytes.",
		},
		[]string{
			"type",
		},
	)

	registry.MustRegister(dbSizes)

	addCollect(collectDBSize)
}

func collectDBSize() {
	dbSizes.WithLabelValues("storage").Set(float64(metrics.DBSize()))
}
