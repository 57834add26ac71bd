package plugins

import (
	"github.com/iotaledger/hive.go/node"

	"github.com/trestlelabs/trestle/plugins/webapi"
	"github.com/trestlelabs/trestle/plugins/webapi/healthz"
	"github.com/trestlelabs/trestle/plugins/webapi/info"
	"github.com/trestlelabs/trestle/plugins/webapi/ledgerroutes"
	"github.com/trestlelabs/trestle/plugins/webapi/relayroutes"
	"github.com/trestlelabs/trestle/plugins/webapi/wsfeed"
)

// WebAPI contains the webapi endpoint plugins of a Trestle node.
var WebAPI = node.Plugins(
	webapi.Plugin,
	healthz.Plugin,
	info.Plugin,
	ledgerroutes.Plugin,
	relayroutes.Plugin,
	wsfeed.Plugin,
)
