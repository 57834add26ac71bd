package jsonmodels

// region ErrorResponse ////////////////////////////////////////////////////////////////////////////////////////////////

// ErrorResponse is the generic model every endpoint answers failures with.
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewErrorResponse returns an ErrorResponse from the given error.
func NewErrorResponse(err error) *ErrorResponse {
	return &ErrorResponse{Error: err.Error()}
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region GetInfoResponse //////////////////////////////////////////////////////////////////////////////////////////////

// GetInfoResponse is the HTTP response of a GET request to the info endpoint.
type GetInfoResponse struct {
	// Version is the version of the node software.
	Version string `json:"version,omitempty"`
	// NetworkVersion is the version of the bridge network the node runs in.
	NetworkVersion string `json:"networkVersion,omitempty"`
	// IdentityID is the identity of the node encoded in base58 and truncated to its first 8 bytes.
	IdentityID string `json:"identityID,omitempty"`
	// PublicKey is the public key of the node encoded in base58.
	PublicKey string `json:"publicKey,omitempty"`
	// Synced reports whether the local clock is synchronized against an NTP pool.
	Synced bool `json:"synced"`
	// Ledgers summarizes the ledgers hosted by the node.
	Ledgers []*LedgerSummary `json:"ledgers,omitempty"`
	// EnabledPlugins lists the plugins the node runs.
	EnabledPlugins []string `json:"enabledPlugins,omitempty"`
	// DisabledPlugins lists the plugins the node skips.
	DisabledPlugins []string `json:"disabledPlugins,omitempty"`
	// Error is the error of the response.
	Error string `json:"error,omitempty"`
}

// LedgerSummary summarizes one hosted ledger in the info response.
type LedgerSummary struct {
	// ID is the identifier of the ledger.
	ID string `json:"id"`
	// Authority is the only account allowed to mint on the ledger, encoded in base58.
	Authority string `json:"authority"`
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region GetHealthzResponse ///////////////////////////////////////////////////////////////////////////////////////////

// GetHealthzResponse is the HTTP response of a GET request to the healthz endpoint.
type GetHealthzResponse struct {
	Healthy bool `json:"healthy"`
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
