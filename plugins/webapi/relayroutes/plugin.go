// Package relayroutes is a plugin that exposes the state of the relay through the web API.
package relayroutes

import (
	"net/http"

	"github.com/iotaledger/hive.go/logger"
	"github.com/iotaledger/hive.go/node"
	"github.com/labstack/echo"
	"go.uber.org/dig"

	"github.com/trestlelabs/trestle/packages/jsonmodels"
	"github.com/trestlelabs/trestle/packages/ledger"
	"github.com/trestlelabs/trestle/packages/relay"
)

// PluginName is the name of the web API relay endpoint plugin.
const PluginName = "WebAPIRelayEndpoint"

type dependencies struct {
	dig.In

	Server      *echo.Echo
	Coordinator *relay.Coordinator
}

var (
	// Plugin is the plugin instance of the web API relay endpoint plugin.
	Plugin *node.Plugin
	deps   = new(dependencies)
	log    *logger.Logger
)

func init() {
	Plugin = node.NewPlugin(PluginName, deps, node.Enabled, configure)
}

func configure(_ *node.Plugin) {
	log = logger.NewLogger(PluginName)

	deps.Server.GET("relay/journal", getJournal)
}

func getJournal(c echo.Context) error {
	journal := deps.Coordinator.Journal()

	// an optional source parameter narrows the response to the direction fed by that ledger
	var source ledger.LedgerID
	filtered := c.QueryParam("source") != ""
	if filtered {
		var err error
		if source, err = ledger.LedgerIDFromString(c.QueryParam("source")); err != nil {
			return c.JSON(http.StatusBadRequest, jsonmodels.NewErrorResponse(err))
		}
	}

	directions := make([]string, 0, 2)
	watermarks := make(map[string]uint64, 2)
	pending := make([]*jsonmodels.MintIntent, 0)
	for _, d := range deps.Coordinator.Directions() {
		if filtered && d.Source != source {
			continue
		}
		directions = append(directions, d.String())
		watermarks[d.Source.String()] = journal.Watermark(d.Source)

		intents, err := journal.Pending(d.Source)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, jsonmodels.NewErrorResponse(err))
		}
		for _, intent := range intents {
			pending = append(pending, &jsonmodels.MintIntent{
				Provenance: jsonmodels.NewProvenance(intent.Provenance),
				To:         ledger.AccountBase58(intent.To),
				Amount:     intent.Amount,
				Observed:   intent.Observed,
			})
		}
	}

	// the supplies are read through the connectors and may be temporarily unavailable when a
	// remote ledger is unreachable; the journal itself is still worth reporting then
	supplies := make(map[string]uint64)
	if ledgerSupplies, err := deps.Coordinator.Supplies(c.Request().Context()); err != nil {
		log.Warnf("failed to read ledger supplies: %s", err)
	} else {
		for id, supply := range ledgerSupplies {
			supplies[id.String()] = supply
		}
	}

	return c.JSON(http.StatusOK, jsonmodels.GetJournalResponse{
		Directions:   directions,
		Watermarks:   watermarks,
		NumPending:   len(pending),
		NumConfirmed: journal.NumConfirmed(),
		Pending:      pending,
		Supplies:     supplies,
	})
}
