package plugins

import (
	"github.com/iotaledger/hive.go/node"

	"github.com/trestlelabs/trestle/plugins/banner"
	"github.com/trestlelabs/trestle/plugins/cli"
	"github.com/trestlelabs/trestle/plugins/clock"
	"github.com/trestlelabs/trestle/plugins/config"
	"github.com/trestlelabs/trestle/plugins/database"
	"github.com/trestlelabs/trestle/plugins/gracefulshutdown"
	"github.com/trestlelabs/trestle/plugins/ledgers"
	"github.com/trestlelabs/trestle/plugins/logger"
	"github.com/trestlelabs/trestle/plugins/metrics"
	"github.com/trestlelabs/trestle/plugins/profiling"
	"github.com/trestlelabs/trestle/plugins/prometheus"
	"github.com/trestlelabs/trestle/plugins/relay"
)

// Core contains the core plugins of a Trestle node.
var Core = node.Plugins(
	banner.Plugin,
	config.Plugin,
	logger.Plugin,
	cli.Plugin,
	gracefulshutdown.Plugin,
	profiling.Plugin,
	database.Plugin,
	clock.Plugin,
	ledgers.Plugin,
	relay.Plugin,
	metrics.Plugin,
	prometheus.Plugin,
)
