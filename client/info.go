package client

import (
	"net/http"

	"github.com/trestlelabs/trestle/packages/jsonmodels"
)

const (
	routeInfo    = "info"
	routeHealthz = "healthz"
)

// Info gets the info of the node.
func (api *TrestleAPI) Info() (*jsonmodels.GetInfoResponse, error) {
	res := &jsonmodels.GetInfoResponse{}
	if err := api.do(http.MethodGet, routeInfo, nil, res); err != nil {
		return nil, err
	}
	return res, nil
}

// Healthz reports whether all plugins of the node started successfully.
func (api *TrestleAPI) Healthz() (bool, error) {
	res := &jsonmodels.GetHealthzResponse{}
	if err := api.do(http.MethodGet, routeHealthz, nil, res); err != nil {
		return false, err
	}
	return res.Healthy, nil
}
