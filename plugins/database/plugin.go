// Package database is a plugin that opens the node's key value store and
// manages its lifetime (health flag, version check, garbage collection).
package database

import (
	"context"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/daemon"
	"github.com/iotaledger/hive.go/generics/event"
	"github.com/iotaledger/hive.go/kvstore"
	"github.com/iotaledger/hive.go/node"
	"go.uber.org/dig"

	databasePkg "github.com/trestlelabs/trestle/packages/database"
	"github.com/trestlelabs/trestle/packages/shutdown"
)

// PluginName is the name of the database plugin.
const PluginName = "Database"

var (
	// Plugin is the plugin instance of the database plugin.
	Plugin *node.Plugin

	deps = new(dependencies)
)

type dependencies struct {
	dig.In

	DB    databasePkg.DB
	Store kvstore.KVStore
}

func init() {
	Plugin = node.NewPlugin(PluginName, deps, node.Enabled, configure, run)

	Plugin.Events.Init.Hook(event.NewClosure(func(event *node.InitEvent) {
		if err := event.Container.Provide(createDB); err != nil {
			Plugin.Panic(err)
		}
		if err := event.Container.Provide(func(db databasePkg.DB) kvstore.KVStore {
			return db.NewStore()
		}); err != nil {
			Plugin.Panic(err)
		}
	}))
}

func createDB() databasePkg.DB {
	var (
		db  databasePkg.DB
		err error
	)
	if Parameters.InMemory {
		db, err = databasePkg.NewMemDB()
	} else {
		db, err = databasePkg.NewDB(Parameters.Directory)
	}
	if err != nil {
		Plugin.LogFatalf("Unable to open the database, please delete the database folder. Error: %s", err)
	}

	return db
}

func configure(_ *node.Plugin) {
	configureHealthStore(deps.Store)

	if err := checkDatabaseVersion(deps.Store); err != nil {
		if errors.Is(err, ErrDBVersionIncompatible) {
			Plugin.LogFatalf("The database scheme was updated. Please delete the database folder. %s", err)
		}
		Plugin.LogFatalf("Failed to check the database version: %s", err)
	}

	if Parameters.Dirty != "" {
		val, err := strconv.ParseBool(Parameters.Dirty)
		if err != nil {
			Plugin.LogWarnf("Invalid database.dirty flag: %s", err)
		} else if val {
			markDirty()
		} else {
			markClean()
		}
	}

	if isDirty() {
		Plugin.LogFatal("The database is marked as not properly shutdown/corrupted, please delete the database folder and restart.")
	}

	// we open the database in the configure, so we must also make sure it's closed here
	if err := daemon.BackgroundWorker(PluginName, manageDBLifetime, shutdown.PriorityDatabase); err != nil {
		Plugin.LogFatalf("Failed to start as daemon: %s", err)
	}

	// run GC up on startup
	runDatabaseGC()
}

func run(*node.Plugin) {}

// manageDBLifetime takes care of managing the lifetime of the database. It marks the database as dirty up on
// startup and unmarks it up on shutdown. Up on shutdown it will run the db GC and then close the database.
func manageDBLifetime(ctx context.Context) {
	// we mark the database only as corrupted from within a background worker, which means
	// that we only mark it as dirty, if the node actually started up properly (meaning no termination
	// signal was received before all plugins loaded).
	markDirty()
	<-ctx.Done()
	runDatabaseGC()
	markClean()
	Plugin.LogInfof("Syncing database to disk...")
	if err := deps.DB.Close(); err != nil {
		Plugin.LogErrorf("Failed to flush the database: %s", err)
	}
	Plugin.LogInfof("Syncing database to disk... done")
}

func runDatabaseGC() {
	if !deps.DB.RequiresGC() {
		return
	}
	Plugin.LogInfo("Running database garbage collection...")
	s := time.Now()
	if err := deps.DB.GC(); err != nil {
		Plugin.LogWarnf("Database garbage collection failed: %s", err)
		return
	}
	Plugin.LogInfof("Database garbage collection done, took %v...", time.Since(s))
}
