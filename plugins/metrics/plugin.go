// Package metrics is a plugin that collects metrics about the bridge and the process and makes
// them available to the Prometheus exporter.
package metrics

import (
	"context"

	"github.com/iotaledger/hive.go/daemon"
	"github.com/iotaledger/hive.go/generics/event"
	"github.com/iotaledger/hive.go/node"
	"github.com/iotaledger/hive.go/timeutil"
	"go.uber.org/dig"

	"github.com/trestlelabs/trestle/packages/database"
	"github.com/trestlelabs/trestle/packages/ledger"
	"github.com/trestlelabs/trestle/packages/relay"
	"github.com/trestlelabs/trestle/packages/shutdown"
)

// PluginName is the name of the metrics plugin.
const PluginName = "Metrics"

type dependencies struct {
	dig.In

	Registry    *ledger.Registry
	DB          database.DB
	Coordinator *relay.Coordinator `optional:"true"`
}

var (
	// Plugin is the plugin instance of the metrics plugin.
	Plugin *node.Plugin
	deps   = new(dependencies)
)

func init() {
	Plugin = node.NewPlugin(PluginName, deps, node.Enabled, configure, run)
}

func configure(_ *node.Plugin) {
	burnedClosure := event.NewClosure(func(e *ledger.BurnedEvent) {
		increaseBurnCounter(e.Ledger)
	})
	mintedClosure := event.NewClosure(func(e *ledger.MintedEvent) {
		increaseMintCounter(e.Ledger)
	})
	for _, l := range deps.Registry.Ledgers() {
		l.Events.Burned.Attach(burnedClosure)
		l.Events.Minted.Attach(mintedClosure)
	}

	// the relay plugin may be disabled on nodes that only host ledgers
	if deps.Coordinator != nil {
		deps.Coordinator.Events.SubmissionFailed.Attach(event.NewClosure(func(_ *relay.SubmissionFailedEvent) {
			relaySubmissionFailures.Inc()
		}))
		deps.Coordinator.Events.SubmissionDropped.Attach(event.NewClosure(func(_ *relay.SubmissionDroppedEvent) {
			relaySubmissionDrops.Inc()
		}))
	}
}

func run(plugin *node.Plugin) {
	if err := daemon.BackgroundWorker("Metrics Updater", func(ctx context.Context) {
		timeutil.NewTicker(measureBPS, BPSMeasurementInterval, ctx)
		timeutil.NewTicker(measureCPUUsage, CPUUsageMeasurementInterval, ctx)
		timeutil.NewTicker(measureMemUsage, MemUsageMeasurementInterval, ctx)
		timeutil.NewTicker(measureDBSize, DBSizeMeasurementInterval, ctx)
		if deps.Coordinator != nil {
			timeutil.NewTicker(measureRelayBacklog, RelayBacklogMeasurementInterval, ctx)
		}

		<-ctx.Done()
	}, shutdown.PriorityMetrics); err != nil {
		plugin.Panicf("Failed to start as daemon: %s", err)
	}
}
