// Package relay is a plugin that runs the relay coordinator which carries
// burns from each ledger of the bridge pair to mints on the opposite one.
package relay

import (
	"context"

	"github.com/iotaledger/hive.go/daemon"
	"github.com/iotaledger/hive.go/generics/event"
	"github.com/iotaledger/hive.go/kvstore"
	"github.com/iotaledger/hive.go/logger"
	"github.com/iotaledger/hive.go/node"
	"go.uber.org/dig"

	"github.com/trestlelabs/trestle/packages/database"
	"github.com/trestlelabs/trestle/packages/ledger"
	"github.com/trestlelabs/trestle/packages/relay"
	"github.com/trestlelabs/trestle/packages/shutdown"
)

// PluginName is the name of the relay plugin.
const PluginName = "Relay"

var (
	// Plugin is the plugin instance of the relay plugin.
	Plugin *node.Plugin

	deps = new(dependencies)
)

type dependencies struct {
	dig.In

	Coordinator *relay.Coordinator
}

func init() {
	Plugin = node.NewPlugin(PluginName, deps, node.Enabled, configure, run)

	Plugin.Events.Init.Hook(event.NewClosure(func(event *node.InitEvent) {
		if err := event.Container.Provide(createJournal); err != nil {
			Plugin.Panic(err)
		}
		if err := event.Container.Provide(createCoordinator); err != nil {
			Plugin.Panic(err)
		}
	}))
}

func createJournal(store kvstore.KVStore) *relay.Journal {
	realm, err := store.WithRealm([]byte{database.PrefixRelay})
	if err != nil {
		Plugin.LogFatalf("Failed to open the store realm of the relay journal: %s", err)
	}

	journal, err := relay.NewJournal(realm)
	if err != nil {
		Plugin.LogFatalf("Failed to restore the relay journal: %s", err)
	}

	return journal
}

func createCoordinator(journal *relay.Journal, registry *ledger.Registry) *relay.Coordinator {
	log := logger.NewLogger(PluginName)

	coordinator, err := relay.NewCoordinator(journal,
		createConnector(ledger.LedgerA, Parameters.LedgerA.Endpoint, registry, log),
		createConnector(ledger.LedgerB, Parameters.LedgerB.Endpoint, registry, log),
		log,
		relay.WithQueueSize(Parameters.QueueSize),
		relay.WithSweepInterval(Parameters.SweepInterval),
		relay.WithRetryBackoff(Parameters.RetryMinBackoff, Parameters.RetryMaxBackoff),
	)
	if err != nil {
		Plugin.LogFatalf("Failed to create the relay coordinator: %s", err)
	}

	return coordinator
}

// createConnector fronts the given ledger either directly or through the web
// API of the remote node named by endpointURL.
func createConnector(id ledger.LedgerID, endpointURL string, registry *ledger.Registry, log *logger.Logger) relay.Connector {
	if endpointURL == "" {
		l, hosted := registry.Ledger(id)
		if !hosted {
			Plugin.LogFatalf("Ledger %s is neither hosted nor reachable through an endpoint", id)
		}
		return relay.NewInProcessConnector(l, l.Authority())
	}

	connector, err := relay.NewRemoteConnector(id, endpointURL, Parameters.Credential, log)
	if err != nil {
		Plugin.LogFatalf("Failed to connect to ledger %s at %s: %s", id, endpointURL, err)
	}

	return connector
}

func configure(_ *node.Plugin) {
	deps.Coordinator.Events.BurnQueued.Attach(event.NewClosure(func(e *relay.BurnQueuedEvent) {
		Plugin.LogInfof("relaying %s: %d to %s", e.Direction, e.Intent.Amount, ledger.AccountBase58(e.Intent.To))
	}))
	deps.Coordinator.Events.MintConfirmed.Attach(event.NewClosure(func(e *relay.MintConfirmedEvent) {
		Plugin.LogInfof("relayed %s: %d to %s for %s", e.Direction, e.Intent.Amount, ledger.AccountBase58(e.Intent.To), e.Intent.Provenance)
	}))
	deps.Coordinator.Events.SubmissionFailed.Attach(event.NewClosure(func(e *relay.SubmissionFailedEvent) {
		Plugin.LogWarnf("relaying %s failed for %s: %s", e.Direction, e.Intent.Provenance, e.Reason)
	}))
	deps.Coordinator.Events.NonceResynced.Attach(event.NewClosure(func(e *relay.NonceResyncedEvent) {
		Plugin.LogDebugf("resynchronized the authority nonce of ledger %s to %d", e.Destination, e.Nonce)
	}))
}

func run(plugin *node.Plugin) {
	if err := daemon.BackgroundWorker(PluginName, func(ctx context.Context) {
		plugin.LogInfof("Starting the relay coordinator for the directions %v ...", deps.Coordinator.Directions())
		deps.Coordinator.Run(ctx)

		for _, d := range deps.Coordinator.Directions() {
			if err := deps.Coordinator.Connector(d.Source).Close(); err != nil {
				plugin.LogWarnf("Failed to close the connector of ledger %s: %s", d.Source, err)
			}
		}
	}, shutdown.PriorityRelay); err != nil {
		plugin.Panicf("Failed to start as daemon: %s", err)
	}
}
