package client

import (
	"net/http"

	"github.com/trestlelabs/trestle/packages/jsonmodels"
)

const routeJournal = "relay/journal"

// Journal gets the state of the relay journal of the node, covering both directions.
func (api *TrestleAPI) Journal() (*jsonmodels.GetJournalResponse, error) {
	res := &jsonmodels.GetJournalResponse{}
	if err := api.do(http.MethodGet, routeJournal, nil, res); err != nil {
		return nil, err
	}
	return res, nil
}
