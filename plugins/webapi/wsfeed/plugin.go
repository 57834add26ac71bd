// Package wsfeed is a plugin that streams every burn and mint of the hosted ledgers to the
// clients connected to the websocket endpoint of the web API. Remote relays subscribe to it
// to observe burns without polling.
package wsfeed

import (
	"context"

	"github.com/iotaledger/hive.go/daemon"
	"github.com/iotaledger/hive.go/generics/event"
	"github.com/iotaledger/hive.go/logger"
	"github.com/iotaledger/hive.go/node"
	"github.com/iotaledger/hive.go/workerpool"
	"github.com/labstack/echo"
	"go.uber.org/dig"

	"github.com/trestlelabs/trestle/packages/jsonmodels"
	"github.com/trestlelabs/trestle/packages/ledger"
	"github.com/trestlelabs/trestle/packages/shutdown"
)

// PluginName is the name of the web API websocket feed plugin.
const PluginName = "WebAPIWSFeed"

type dependencies struct {
	dig.In

	Server   *echo.Echo
	Registry *ledger.Registry
}

var (
	// Plugin is the plugin instance of the web API websocket feed plugin.
	Plugin *node.Plugin
	deps   = new(dependencies)
	log    *logger.Logger

	feedWorkerCount     = 1
	feedWorkerQueueSize = 500
	feedWorkerPool      *workerpool.NonBlockingQueuedWorkerPool
)

func init() {
	Plugin = node.NewPlugin(PluginName, deps, node.Enabled, configure, run)
}

func configure(_ *node.Plugin) {
	log = logger.NewLogger(PluginName)

	feedWorkerPool = workerpool.NewNonBlockingQueuedWorkerPool(func(task workerpool.Task) {
		broadcastWsMessage(task.Param(0))
		task.Return(nil)
	}, workerpool.WorkerCount(feedWorkerCount), workerpool.QueueSize(feedWorkerQueueSize))

	deps.Server.GET("ws", websocketRoute)
}

func run(*node.Plugin) {
	if err := daemon.BackgroundWorker(PluginName, worker, shutdown.PriorityWSFeed); err != nil {
		log.Panicf("Failed to start as daemon: %s", err)
	}
}

func worker(ctx context.Context) {
	burnedClosure := event.NewClosure(func(e *ledger.BurnedEvent) {
		feedWorkerPool.TrySubmit(&jsonmodels.WSMessage{
			Type: jsonmodels.WSMsgBurn,
			Data: &jsonmodels.WSBurn{
				LedgerID: e.Ledger.String(),
				Record:   jsonmodels.NewBurnRecord(e.Record),
			},
		})
	})
	mintedClosure := event.NewClosure(func(e *ledger.MintedEvent) {
		feedWorkerPool.TrySubmit(&jsonmodels.WSMessage{
			Type: jsonmodels.WSMsgMint,
			Data: &jsonmodels.WSMint{
				LedgerID: e.Ledger.String(),
				Receipt:  jsonmodels.NewMintReceipt(e.Receipt),
			},
		})
	})
	for _, l := range deps.Registry.Ledgers() {
		l.Events.Burned.Attach(burnedClosure)
		l.Events.Minted.Attach(mintedClosure)
	}

	defer feedWorkerPool.Stop()

	<-ctx.Done()
	log.Infof("Stopping %s ...", PluginName)
	for _, l := range deps.Registry.Ledgers() {
		l.Events.Burned.Detach(burnedClosure)
		l.Events.Minted.Detach(mintedClosure)
	}
	log.Infof("Stopping %s ... done", PluginName)
}
