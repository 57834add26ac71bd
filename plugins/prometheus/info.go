package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/trestlelabs/trestle/plugins/banner"
)

var infoApp *prometheus.GaugeVec

func registerInfoMetrics() {
	infoApp = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "trestle_info_app",
			Help: "Node software name and version.",
		},
		[]string{"name", "version"},
	)
	infoApp.WithLabelValues(banner.AppName, banner.AppVersion).Set(1)

	registry.MustRegister(infoApp)
}
