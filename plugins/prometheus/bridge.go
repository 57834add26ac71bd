package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/trestlelabs/trestle/plugins/metrics"
)

var (
	burnsPerSecond prometheus.Gauge

	ledgerSupply         *prometheus.GaugeVec
	ledgerLatestSequence *prometheus.GaugeVec
	ledgerBurns          *prometheus.GaugeVec
	ledgerMints          *prometheus.GaugeVec

	relayPendingMints       prometheus.Gauge
	relayConfirmedMints     prometheus.Gauge
	relaySubmissionFailures prometheus.Gauge
	relaySubmissionDrops    prometheus.Gauge
)

func registerBridgeMetrics() {
	burnsPerSecond = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "trestle_burns_per_second",
		Help: "Number of burns per second on the hosted ledgers.",
	})
	ledgerSupply = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "trestle_ledger_supply",
			Help: "Current total supply per hosted ledger.",
		},
		[]string{"ledger"},
	)
	ledgerLatestSequence = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "trestle_ledger_latest_sequence",
			Help: "Latest burn sequence number per hosted ledger.",
		},
		[]string{"ledger"},
	)
	ledgerBurns = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "trestle_ledger_burns",
			Help: "Number of burns per hosted ledger since start of the node.",
		},
		[]string{"ledger"},
	)
	ledgerMints = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "trestle_ledger_mints",
			Help: "Number of mints per hosted ledger since start of the node.",
		},
		[]string{"ledger"},
	)
	relayPendingMints = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "trestle_relay_pending_mints",
		Help: "Number of journaled mints that still await inclusion.",
	})
	relayConfirmedMints = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "trestle_relay_confirmed_mints",
		Help: "Number of journaled mints that were confirmed.",
	})
	relaySubmissionFailures = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "trestle_relay_submission_failures",
		Help: "Number of permanently rejected mint submissions.",
	})
	relaySubmissionDrops = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "trestle_relay_submission_drops",
		Help: "Number of intents that were left to a journal sweep because a submitter queue was full.",
	})

	registry.MustRegister(burnsPerSecond)
	registry.MustRegister(ledgerSupply)
	registry.MustRegister(ledgerLatestSequence)
	registry.MustRegister(ledgerBurns)
	registry.MustRegister(ledgerMints)
	registry.MustRegister(relayPendingMints)
	registry.MustRegister(relayConfirmedMints)
	registry.MustRegister(relaySubmissionFailures)
	registry.MustRegister(relaySubmissionDrops)

	addCollect(collectBridgeMetrics)
}

func collectBridgeMetrics() {
	burnsPerSecond.Set(float64(metrics.BurnsPerSecond()))

	for id, supply := range metrics.Supplies() {
		ledgerSupply.WithLabelValues(id.String()).Set(float64(supply))
	}
	for id, sequence := range metrics.LatestSequences() {
		ledgerLatestSequence.WithLabelValues(id.String()).Set(float64(sequence))
	}
	for id, count := range metrics.BurnCountPerLedger() {
		ledgerBurns.WithLabelValues(id.String()).Set(float64(count))
	}
	for id, count := range metrics.MintCountPerLedger() {
		ledgerMints.WithLabelValues(id.String()).Set(float64(count))
	}

	relayPendingMints.Set(float64(metrics.RelayPendingMints()))
	relayConfirmedMints.Set(float64(metrics.RelayConfirmedMints()))
	relaySubmissionFailures.Set(float64(metrics.RelaySubmissionFailures()))
	relaySubmissionDrops.Set(float64(metrics.RelaySubmissionDrops()))
}
