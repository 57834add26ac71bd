package client

import (
	"fmt"
	"net/http"

	"github.com/trestlelabs/trestle/packages/jsonmodels"
)

const (
	routeLedgers = "ledgers"
	routeSupply  = "supply"
)

// LedgerInfo gets the summary of the given ledger.
func (api *TrestleAPI) LedgerInfo(ledgerID string) (*jsonmodels.GetLedgerInfoResponse, error) {
	res := &jsonmodels.GetLedgerInfoResponse{}
	if err := api.do(http.MethodGet, fmt.Sprintf("%s/%s", routeLedgers, ledgerID), nil, res); err != nil {
		return nil, err
	}
	return res, nil
}

// Balance gets the balance of the given account on the given ledger.
func (api *TrestleAPI) Balance(ledgerID, account string) (*jsonmodels.GetAccountResponse, error) {
	res := &jsonmodels.GetAccountResponse{}
	if err := api.do(http.MethodGet, fmt.Sprintf("%s/%s/accounts/%s", routeLedgers, ledgerID, account), nil, res); err != nil {
		return nil, err
	}
	return res, nil
}

// LedgerSupply gets the total supply and the latest burn sequence of the given ledger.
func (api *TrestleAPI) LedgerSupply(ledgerID string) (*jsonmodels.GetLedgerSupplyResponse, error) {
	res := &jsonmodels.GetLedgerSupplyResponse{}
	if err := api.do(http.MethodGet, fmt.Sprintf("%s/%s/%s", routeLedgers, ledgerID, routeSupply), nil, res); err != nil {
		return nil, err
	}
	return res, nil
}

// Burns gets the burn records of the given ledger with a sequence number of at least since.
func (api *TrestleAPI) Burns(ledgerID string, since uint64) (*jsonmodels.GetBurnsResponse, error) {
	res := &jsonmodels.GetBurnsResponse{}
	if err := api.do(http.MethodGet, fmt.Sprintf("%s/%s/burns?since=%d", routeLedgers, ledgerID, since), nil, res); err != nil {
		return nil, err
	}
	return res, nil
}

// Bridge burns the given amount from the given account on the given ledger so that the relay
// mints it on the opposite side. The returned record identifies the burn to watch for.
func (api *TrestleAPI) Bridge(ledgerID, account string, amount uint64) (*jsonmodels.PostBridgeResponse, error) {
	res := &jsonmodels.PostBridgeResponse{}
	if err := api.do(http.MethodPost, fmt.Sprintf("%s/%s/bridge", routeLedgers, ledgerID),
		&jsonmodels.PostBridgeRequest{Account: account, Amount: amount}, res); err != nil {
		return nil, err
	}
	return res, nil
}

// Mint submits an authority mint to the given ledger. The relay credential set on the API is
// presented to the node.
func (api *TrestleAPI) Mint(ledgerID string, request *jsonmodels.PostMintRequest) (*jsonmodels.PostMintResponse, error) {
	res := &jsonmodels.PostMintResponse{}
	if err := api.do(http.MethodPost, fmt.Sprintf("%s/%s/mint", routeLedgers, ledgerID), request, res); err != nil {
		return nil, err
	}
	return res, nil
}

// Transfer moves the given amount between two accounts of the given ledger.
func (api *TrestleAPI) Transfer(ledgerID, from, to string, amount uint64) (*jsonmodels.PostTransferResponse, error) {
	res := &jsonmodels.PostTransferResponse{}
	if err := api.do(http.MethodPost, fmt.Sprintf("%s/%s/transfer", routeLedgers, ledgerID),
		&jsonmodels.PostTransferRequest{From: from, To: to, Amount: amount}, res); err != nil {
		return nil, err
	}
	return res, nil
}

// Supply gets the total supply per hosted ledger and their sum.
func (api *TrestleAPI) Supply() (*jsonmodels.GetSupplyResponse, error) {
	res := &jsonmodels.GetSupplyResponse{}
	if err := api.do(http.MethodGet, routeSupply, nil, res); err != nil {
		return nil, err
	}
	return res, nil
}
