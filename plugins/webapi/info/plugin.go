package info

import (
	"net/http"
	"sort"

	"github.com/iotaledger/hive.go/identity"
	"github.com/iotaledger/hive.go/node"
	"github.com/labstack/echo"
	"go.uber.org/dig"

	"github.com/trestlelabs/trestle/packages/clock"
	"github.com/trestlelabs/trestle/packages/jsonmodels"
	"github.com/trestlelabs/trestle/packages/ledger"
	"github.com/trestlelabs/trestle/plugins/banner"
)

// PluginName is the name of the web API info endpoint plugin.
const PluginName = "WebAPIInfoEndpoint"

// NetworkVersion is the version of the bridge protocol the node speaks.
const NetworkVersion = "1"

type dependencies struct {
	dig.In

	Server   *echo.Echo
	Registry *ledger.Registry
}

var (
	// Plugin is the plugin instance of the web API info endpoint plugin.
	Plugin *node.Plugin
	deps   = new(dependencies)

	// the process identity the node reports; it is not persisted across restarts
	nodeIdentity = identity.GenerateIdentity()
)

func init() {
	Plugin = node.NewPlugin(PluginName, deps, node.Enabled, configure)
}

func configure(_ *node.Plugin) {
	deps.Server.GET("info", getInfo)
}

// getInfo returns the info of the node.
func getInfo(c echo.Context) error {
	var enabledPlugins []string
	var disabledPlugins []string
	for pluginName, plugin := range node.GetPlugins() {
		if node.IsSkipped(plugin) {
			disabledPlugins = append(disabledPlugins, pluginName)
		} else {
			enabledPlugins = append(enabledPlugins, pluginName)
		}
	}

	sort.Strings(enabledPlugins)
	sort.Strings(disabledPlugins)

	var hostedLedgers []*jsonmodels.LedgerSummary
	for _, l := range deps.Registry.Ledgers() {
		hostedLedgers = append(hostedLedgers, &jsonmodels.LedgerSummary{
			ID:        l.ID().String(),
			Authority: ledger.AccountBase58(l.Authority()),
		})
	}

	return c.JSON(http.StatusOK, jsonmodels.GetInfoResponse{
		Version:         banner.AppVersion,
		NetworkVersion:  NetworkVersion,
		IdentityID:      nodeIdentity.ID().String(),
		PublicKey:       nodeIdentity.PublicKey().String(),
		Synced:          clock.Synced(),
		Ledgers:         hostedLedgers,
		EnabledPlugins:  enabledPlugins,
		DisabledPlugins: disabledPlugins,
	})
}
