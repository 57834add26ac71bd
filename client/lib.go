// Package client implements a very simple wrapper for Trestle's web API.
package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"

	"github.com/trestlelabs/trestle/packages/relay"
)

var (
	// ErrBadRequest defines the "bad request" error.
	ErrBadRequest = errors.New("bad request")
	// ErrInternalServerError defines the "internal server error" error.
	ErrInternalServerError = errors.New("internal server error")
	// ErrNotFound defines the "not found" error.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized defines the "unauthorized" error.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrConflict defines the "conflict" error.
	ErrConflict = errors.New("conflict")
	// ErrTooManyRequests defines the "too many requests" error.
	ErrTooManyRequests = errors.New("too many requests")
	// ErrUnknownError defines the "unknown error" error.
	ErrUnknownError = errors.New("unknown error")
)

const (
	contentTypeJSON = "application/json"
)

// NewTrestleAPI returns a new *TrestleAPI with the given baseURL and httpClient.
func NewTrestleAPI(baseURL string, httpClient ...http.Client) *TrestleAPI {
	if len(httpClient) > 0 {
		return &TrestleAPI{baseURL: baseURL, httpClient: httpClient[0]}
	}
	return &TrestleAPI{baseURL: baseURL}
}

// TrestleAPI is an API wrapper over the web API of Trestle.
type TrestleAPI struct {
	httpClient     http.Client
	baseURL        string
	username       string
	password       string
	mintCredential string
}

// SetBasicAuth sets the basic auth credentials the API presents to the node.
func (api *TrestleAPI) SetBasicAuth(username, password string) {
	api.username = username
	api.password = password
}

// SetMintCredential sets the relay credential the API presents on mint requests.
func (api *TrestleAPI) SetMintCredential(credential string) {
	api.mintCredential = credential
}

type errorresponse struct {
	Error string `json:"error"`
}

func interpretBody(res *http.Response, decodeTo interface{}) error {
	resBody, err := ioutil.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("unable to read response body: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusOK || res.StatusCode == http.StatusCreated {
		return json.Unmarshal(resBody, decodeTo)
	}

	errRes := &errorresponse{}
	if err := json.Unmarshal(resBody, errRes); err != nil {
		return fmt.Errorf("unable to read error from response body: %w", err)
	}

	switch res.StatusCode {
	case http.StatusInternalServerError:
		return fmt.Errorf("%w: %s", ErrInternalServerError, errRes.Error)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, res.Request.URL.String())
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrBadRequest, errRes.Error)
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthorized, errRes.Error)
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", ErrConflict, errRes.Error)
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s", ErrTooManyRequests, errRes.Error)
	}

	return fmt.Errorf("%w: %s", ErrUnknownError, errRes.Error)
}

func (api *TrestleAPI) do(method string, route string, reqObj interface{}, resObj interface{}) error {
	// marshal request object
	var data []byte
	if reqObj != nil {
		var err error
		data, err = json.Marshal(reqObj)
		if err != nil {
			return err
		}
	}

	// construct request
	req, err := http.NewRequest(method, fmt.Sprintf("%s/%s", api.baseURL, route), func() io.Reader {
		if data == nil {
			return nil
		}
		return bytes.NewReader(data)
	}())
	if err != nil {
		return err
	}

	if data != nil {
		req.Header.Set("Content-Type", contentTypeJSON)
	}

	if len(api.username) > 0 || len(api.password) > 0 {
		req.SetBasicAuth(api.username, api.password)
	}

	// present the relay credential if one is configured
	if len(api.mintCredential) > 0 {
		req.Header.Set(relay.RelayCredentialHeader, api.mintCredential)
	}

	// make the request
	res, err := api.httpClient.Do(req)
	if err != nil {
		return err
	}

	if resObj == nil {
		return nil
	}

	// write response into response object
	if err := interpretBody(res, resObj); err != nil {
		return err
	}
	return nil
}

// BaseURL returns the baseURL of the API.
func (api *TrestleAPI) BaseURL() string {
	return api.baseURL
}
