package clock

import (
	"context"
	"math/rand"

	"github.com/iotaledger/hive.go/daemon"
	"github.com/iotaledger/hive.go/node"
	"github.com/iotaledger/hive.go/timeutil"

	"github.com/trestlelabs/trestle/packages/clock"
	"github.com/trestlelabs/trestle/packages/shutdown"
)

// PluginName is the name of the clock plugin.
const PluginName = "Clock"

const maxTries = 3

// Plugin is the plugin instance of the clock plugin.
var Plugin *node.Plugin

func init() {
	Plugin = node.NewPlugin(PluginName, nil, node.Enabled, configure, run)
}

func configure(plugin *node.Plugin) {
	if len(Parameters.NTPPools) == 0 {
		plugin.LogFatalf("at least 1 NTP pool needs to be provided to synchronize the local clock.")
	}
}

func run(plugin *node.Plugin) {
	if err := daemon.BackgroundWorker(plugin.Name, func(ctx context.Context) {
		// sync clock on startup
		queryNTPPool()

		// sync clock periodically to counter drift
		timeutil.NewTicker(queryNTPPool, Parameters.SyncInterval, ctx)

		<-ctx.Done()
	}, shutdown.PriorityClock); err != nil {
		plugin.Panicf("Failed to start as daemon: %s", err)
	}
}

// queryNTPPool queries one of the configured NTP pools, trying up to maxTries times.
func queryNTPPool() {
	Plugin.LogDebug("Synchronizing clock...")
	for t := maxTries; t > 0; t-- {
		index := rand.Int() % len(Parameters.NTPPools)
		err := clock.FetchTimeOffset(Parameters.NTPPools[index])
		if err == nil {
			Plugin.LogDebug("Synchronizing clock... done")
			return
		}
	}

	Plugin.LogWarn("error while trying to sync clock")
}
