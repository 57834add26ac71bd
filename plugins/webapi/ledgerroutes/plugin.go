// Package ledgerroutes is a plugin that exposes the hosted ledgers through the
// web API: balance, supply and burn log queries, self-service bridge burns and
// transfers, and the credential-protected mint endpoint used by remote relays.
package ledgerroutes

import (
	"context"
	"net/http"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/daemon"
	"github.com/iotaledger/hive.go/identity"
	"github.com/iotaledger/hive.go/logger"
	"github.com/iotaledger/hive.go/node"
	"github.com/labstack/echo"
	"go.uber.org/dig"

	"github.com/trestlelabs/trestle/packages/jsonmodels"
	"github.com/trestlelabs/trestle/packages/ledger"
	"github.com/trestlelabs/trestle/packages/ratelimiter"
	"github.com/trestlelabs/trestle/packages/relay"
	"github.com/trestlelabs/trestle/packages/shutdown"
)

// PluginName is the name of the web API ledgers endpoint plugin.
const PluginName = "WebAPILedgersEndpoint"

type dependencies struct {
	dig.In

	Server   *echo.Echo
	Registry *ledger.Registry
}

var (
	// Plugin is the plugin instance of the web API ledgers endpoint plugin.
	Plugin *node.Plugin
	deps   = new(dependencies)
	log    *logger.Logger

	accountLimiter *ratelimiter.AccountRateLimiter
)

func init() {
	Plugin = node.NewPlugin(PluginName, deps, node.Enabled, configure, run)
}

func configure(plugin *node.Plugin) {
	log = logger.NewLogger(PluginName)

	if Parameters.RateLimit.Enabled {
		var err error
		if accountLimiter, err = ratelimiter.NewAccountRateLimiter(Parameters.RateLimit.Interval, Parameters.RateLimit.Limit, log); err != nil {
			plugin.Panicf("Failed to create the account rate limiter: %s", err)
		}
	}

	deps.Server.GET("ledgers/:ledgerID", getLedgerInfo)
	deps.Server.GET("ledgers/:ledgerID/accounts/:account", getAccount)
	deps.Server.GET("ledgers/:ledgerID/supply", getLedgerSupply)
	deps.Server.GET("ledgers/:ledgerID/burns", getBurns)
	deps.Server.POST("ledgers/:ledgerID/bridge", postBridge)
	deps.Server.POST("ledgers/:ledgerID/mint", postMint)
	deps.Server.POST("ledgers/:ledgerID/transfer", postTransfer)
	deps.Server.GET("supply", getSupply)
}

func run(plugin *node.Plugin) {
	if accountLimiter == nil {
		return
	}

	if err := daemon.BackgroundWorker("WebAPI Rate Limiter", func(ctx context.Context) {
		<-ctx.Done()
		accountLimiter.Close()
	}, shutdown.PriorityRateLimiter); err != nil {
		plugin.Panicf("Failed to start as daemon: %s", err)
	}
}

// countAgainstLimit counts a self-service operation of the given account and reports whether the
// account exceeds the allowed rate.
func countAgainstLimit(account identity.ID) bool {
	if accountLimiter == nil {
		return false
	}
	return accountLimiter.Count(account)
}

// resolveLedger resolves the ledgerID path parameter to a hosted ledger.
func resolveLedger(c echo.Context) (*ledger.Ledger, error) {
	id, err := ledger.LedgerIDFromString(c.Param("ledgerID"))
	if err != nil {
		return nil, err
	}

	l, hosted := deps.Registry.Ledger(id)
	if !hosted {
		return nil, errors.Errorf("%w: ledger %s is not hosted by this node", ledger.ErrUnknownLedger, id)
	}

	return l, nil
}

func getLedgerInfo(c echo.Context) error {
	l, err := resolveLedger(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, jsonmodels.NewErrorResponse(err))
	}

	return c.JSON(http.StatusOK, jsonmodels.GetLedgerInfoResponse{
		LedgerID:       l.ID().String(),
		Authority:      ledger.AccountBase58(l.Authority()),
		TotalSupply:    l.TotalSupply(),
		LatestSequence: l.LatestSequence(),
		AuthorityNonce: l.AuthorityNonce(),
	})
}

func getAccount(c echo.Context) error {
	l, err := resolveLedger(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, jsonmodels.NewErrorResponse(err))
	}

	account, err := ledger.AccountFromBase58(c.Param("account"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, jsonmodels.NewErrorResponse(err))
	}

	return c.JSON(http.StatusOK, jsonmodels.GetAccountResponse{
		LedgerID: l.ID().String(),
		Account:  c.Param("account"),
		Balance:  l.Balance(account),
	})
}

func getLedgerSupply(c echo.Context) error {
	l, err := resolveLedger(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, jsonmodels.NewErrorResponse(err))
	}

	return c.JSON(http.StatusOK, jsonmodels.GetLedgerSupplyResponse{
		LedgerID:       l.ID().String(),
		TotalSupply:    l.TotalSupply(),
		LatestSequence: l.LatestSequence(),
	})
}

func getBurns(c echo.Context) error {
	l, err := resolveLedger(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, jsonmodels.NewErrorResponse(err))
	}

	var since uint64
	if sinceParam := c.QueryParam("since"); sinceParam != "" {
		if since, err = strconv.ParseUint(sinceParam, 10, 64); err != nil {
			return c.JSON(http.StatusBadRequest, jsonmodels.NewErrorResponse(errors.Errorf("invalid since parameter: %w", err)))
		}
	}

	records, err := l.BurnsSince(since)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, jsonmodels.NewErrorResponse(err))
	}

	burns := make([]*jsonmodels.BurnRecord, 0, len(records))
	for _, record := range records {
		burns = append(burns, jsonmodels.NewBurnRecord(record))
	}

	return c.JSON(http.StatusOK, jsonmodels.GetBurnsResponse{
		LedgerID: l.ID().String(),
		Burns:    burns,
	})
}

// postBridge burns tokens on the addressed ledger so that the relay mints them
// on the other side. The route carries the user-facing name of the operation,
// the ledger records it as a burn.
func postBridge(c echo.Context) error {
	l, err := resolveLedger(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, jsonmodels.NewErrorResponse(err))
	}

	var request jsonmodels.PostBridgeRequest
	if err = c.Bind(&request); err != nil {
		log.Info(err.Error())
		return c.JSON(http.StatusBadRequest, jsonmodels.NewErrorResponse(err))
	}

	account, err := ledger.AccountFromBase58(request.Account)
	if err != nil {
		return c.JSON(http.StatusBadRequest, jsonmodels.NewErrorResponse(err))
	}

	if countAgainstLimit(account) {
		return c.JSON(http.StatusTooManyRequests, jsonmodels.NewErrorResponse(errors.Errorf("account %s exceeded the allowed operation rate", request.Account)))
	}

	record, err := l.Burn(account, request.Amount)
	if err != nil {
		return c.JSON(errorStatus(err), jsonmodels.NewErrorResponse(err))
	}

	return c.JSON(http.StatusOK, jsonmodels.PostBridgeResponse{
		LedgerID: l.ID().String(),
		Record:   jsonmodels.NewBurnRecord(record),
	})
}

func postMint(c echo.Context) error {
	l, err := resolveLedger(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, jsonmodels.NewErrorResponse(err))
	}

	if Parameters.MintCredential == "" || c.Request().Header.Get(relay.RelayCredentialHeader) != Parameters.MintCredential {
		return c.JSON(http.StatusUnauthorized, jsonmodels.NewErrorResponse(ledger.ErrUnauthorized))
	}

	var request jsonmodels.PostMintRequest
	if err = c.Bind(&request); err != nil {
		log.Info(err.Error())
		return c.JSON(http.StatusBadRequest, jsonmodels.NewErrorResponse(err))
	}

	to, err := ledger.AccountFromBase58(request.To)
	if err != nil {
		return c.JSON(http.StatusBadRequest, jsonmodels.NewErrorResponse(err))
	}
	provenance, err := request.Provenance.ToProvenance()
	if err != nil {
		return c.JSON(http.StatusBadRequest, jsonmodels.NewErrorResponse(err))
	}

	receipt, err := l.Mint(l.Authority(), request.Nonce, to, request.Amount, provenance)
	if errors.Is(err, ledger.ErrAlreadyMinted) {
		// replays are acknowledged so that the relay can settle the transfer
		return c.JSON(http.StatusOK, jsonmodels.PostMintResponse{AlreadyMinted: true})
	}
	if err != nil {
		return c.JSON(errorStatus(err), jsonmodels.NewErrorResponse(err))
	}

	return c.JSON(http.StatusOK, jsonmodels.PostMintResponse{
		Receipt: jsonmodels.NewMintReceipt(receipt),
	})
}

func postTransfer(c echo.Context) error {
	l, err := resolveLedger(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, jsonmodels.NewErrorResponse(err))
	}

	var request jsonmodels.PostTransferRequest
	if err = c.Bind(&request); err != nil {
		log.Info(err.Error())
		return c.JSON(http.StatusBadRequest, jsonmodels.NewErrorResponse(err))
	}

	from, err := ledger.AccountFromBase58(request.From)
	if err != nil {
		return c.JSON(http.StatusBadRequest, jsonmodels.NewErrorResponse(err))
	}
	to, err := ledger.AccountFromBase58(request.To)
	if err != nil {
		return c.JSON(http.StatusBadRequest, jsonmodels.NewErrorResponse(err))
	}

	if countAgainstLimit(from) {
		return c.JSON(http.StatusTooManyRequests, jsonmodels.NewErrorResponse(errors.Errorf("account %s exceeded the allowed operation rate", request.From)))
	}

	if err = l.Transfer(from, to, request.Amount); err != nil {
		return c.JSON(errorStatus(err), jsonmodels.NewErrorResponse(err))
	}

	return c.JSON(http.StatusOK, jsonmodels.PostTransferResponse{
		LedgerID:    l.ID().String(),
		FromBalance: l.Balance(from),
		ToBalance:   l.Balance(to),
	})
}

func getSupply(c echo.Context) error {
	supplies := make(map[string]uint64)
	var total uint64
	for _, l := range deps.Registry.Ledgers() {
		supply := l.TotalSupply()
		supplies[l.ID().String()] = supply
		total += supply
	}

	return c.JSON(http.StatusOK, jsonmodels.GetSupplyResponse{
		Supplies: supplies,
		Total:    total,
	})
}

// errorStatus maps the sentinel errors of the ledger package to HTTP status
// codes. The mapping is mirrored by the remote relay connector.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, ledger.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ledger.ErrNonceConflict):
		return http.StatusConflict
	case errors.Is(err, ledger.ErrUnknownLedger):
		return http.StatusNotFound
	case errors.Is(err, ledger.ErrInvalidAmount), errors.Is(err, ledger.ErrInsufficientBalance):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
