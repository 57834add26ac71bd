// Package ledgers is a plugin that brings up the token ledgers hosted by this
// node and exposes them to the other plugins through a ledger.Registry.
package ledgers

import (
	"context"

	"github.com/iotaledger/hive.go/daemon"
	"github.com/iotaledger/hive.go/generics/event"
	"github.com/iotaledger/hive.go/identity"
	"github.com/iotaledger/hive.go/kvstore"
	"github.com/iotaledger/hive.go/node"
	"go.uber.org/dig"

	"github.com/trestlelabs/trestle/packages/database"
	"github.com/trestlelabs/trestle/packages/ledger"
	"github.com/trestlelabs/trestle/packages/shutdown"
)

// PluginName is the name of the ledgers plugin.
const PluginName = "Ledgers"

var (
	// Plugin is the plugin instance of the ledgers plugin.
	Plugin *node.Plugin

	deps = new(dependencies)
)

type dependencies struct {
	dig.In

	Registry *ledger.Registry
}

func init() {
	Plugin = node.NewPlugin(PluginName, deps, node.Enabled, configure, run)

	Plugin.Events.Init.Hook(event.NewClosure(func(event *node.InitEvent) {
		if err := event.Container.Provide(createRegistry); err != nil {
			Plugin.Panic(err)
		}
	}))
}

func createRegistry(store kvstore.KVStore) *ledger.Registry {
	registry := ledger.NewRegistry()
	for _, definition := range []struct {
		id     ledger.LedgerID
		params *LedgerParametersDefinition
	}{
		{ledger.LedgerA, &Parameters.A},
		{ledger.LedgerB, &Parameters.B},
	} {
		registry.Register(bringUp(store, definition.id, definition.params))
	}

	return registry
}

// bringUp opens the store realm of the given ledger and restores it, applying
// the configured genesis allocation when the realm is still fresh.
func bringUp(store kvstore.KVStore, id ledger.LedgerID, params *LedgerParametersDefinition) *ledger.Ledger {
	realm, err := store.WithRealm([]byte{database.PrefixLedgers, byte(id)})
	if err != nil {
		Plugin.LogFatalf("Failed to open the store realm of ledger %s: %s", id, err)
	}

	opts := []ledger.Option{ledger.WithStore(realm)}
	if params.GenesisAccount != "" {
		genesisAccount, accountErr := ledger.AccountFromBase58(params.GenesisAccount)
		if accountErr != nil {
			Plugin.LogFatalf("Invalid genesis account for ledger %s: %s", id, accountErr)
		}
		opts = append(opts, ledger.WithGenesis(genesisAccount, params.GenesisAmount))
	}

	l, err := ledger.New(id, resolveAuthority(id, params.Authority), opts...)
	if err != nil {
		Plugin.LogFatalf("Failed to bring up ledger %s: %s", id, err)
	}

	return l
}

func resolveAuthority(id ledger.LedgerID, encoded string) identity.ID {
	if encoded == "" {
		authority := identity.GenerateIdentity().ID()
		Plugin.LogWarnf("No mint authority configured for ledger %s, generated the ephemeral authority %s", id, ledger.AccountBase58(authority))
		return authority
	}

	authority, err := ledger.AccountFromBase58(encoded)
	if err != nil {
		Plugin.LogFatalf("Invalid mint authority for ledger %s: %s", id, err)
	}

	return authority
}

func configure(_ *node.Plugin) {
	for _, l := range deps.Registry.Ledgers() {
		attachLogging(l)
	}
}

func attachLogging(l *ledger.Ledger) {
	l.Events.Burned.Attach(event.NewClosure(func(e *ledger.BurnedEvent) {
		Plugin.LogInfof("ledger %s: burned %d from %s (sequence %d)", e.Ledger, e.Record.Amount, ledger.AccountBase58(e.Record.Account), e.Record.Sequence)
	}))
	l.Events.Minted.Attach(event.NewClosure(func(e *ledger.MintedEvent) {
		Plugin.LogInfof("ledger %s: minted %d to %s for %s", e.Ledger, e.Receipt.Amount, ledger.AccountBase58(e.Receipt.To), e.Receipt.Provenance)
	}))
}

func run(*node.Plugin) {
	// the ledgers are flushed only after everything that still uses them shut down
	if err := daemon.BackgroundWorker(PluginName, func(ctx context.Context) {
		<-ctx.Done()
		if err := deps.Registry.Shutdown(); err != nil {
			Plugin.LogErrorf("Failed to flush the hosted ledgers: %s", err)
		}
	}, shutdown.PriorityLedgers); err != nil {
		Plugin.Panicf("Failed to start as daemon: %s", err)
	}
}
