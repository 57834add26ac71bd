package relay

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-resty/resty/v2"
	"github.com/gorilla/websocket"
	"github.com/iotaledger/hive.go/backoff"
	"github.com/iotaledger/hive.go/identity"
	"github.com/iotaledger/hive.go/logger"

	"github.com/trestlelabs/trestle/packages/jsonmodels"
	"github.com/trestlelabs/trestle/packages/ledger"
)

// RelayCredentialHeader is the HTTP header the relay authenticates its mints with.
const RelayCredentialHeader = "X-Trestle-Relay-Credential"

const (
	dialRetries    = 10
	dialBackoff    = 500 * time.Millisecond
	feedRetryAfter = 8 * time.Second
	requestTimeout = 10 * time.Second
)

// retry the feed dial once, on fail after 0.5s.
var dialRetryPolicy = backoff.ConstantBackOff(dialBackoff).With(backoff.MaxRetries(dialRetries))

// RemoteConnector fronts a ledger that lives behind the HTTP endpoint of another node. Queries and
// mints go through the REST API; live burns are consumed from the endpoint's websocket feed, with
// reconnects on every broken connection. Burns that fall into a reconnect gap are picked up by the
// coordinator's sweep.
type RemoteConnector struct {
	events *ConnectorEvents

	id         ledger.LedgerID
	api        *resty.Client
	credential string
	feedURL    string
	log        *logger.Logger

	closing   chan struct{}
	closeOnce sync.Once
	shutdown  sync.WaitGroup
}

// NewRemoteConnector returns a Connector for the ledger with the given ID served at the given
// endpoint. The credential authorizes mint submissions.
func NewRemoteConnector(id ledger.LedgerID, endpointURL, credential string, log *logger.Logger) (connector *RemoteConnector, err error) {
	feedURL, err := feedURLFromEndpoint(endpointURL)
	if err != nil {
		return nil, err
	}

	connector = &RemoteConnector{
		events:     newConnectorEvents(),
		id:         id,
		api:        resty.New().SetHostURL(endpointURL).SetTimeout(requestTimeout),
		credential: credential,
		feedURL:    feedURL,
		log:        log,
		closing:    make(chan struct{}),
	}

	connector.shutdown.Add(1)
	go connector.feedLoop()

	return connector, nil
}

// LedgerID returns the identifier of the ledger the connector fronts.
func (r *RemoteConnector) LedgerID() ledger.LedgerID {
	return r.id
}

// Events returns the event bus of the connector.
func (r *RemoteConnector) Events() *ConnectorEvents {
	return r.events
}

// BurnsSince returns the burn records with a sequence number of at least fromSequence.
func (r *RemoteConnector) BurnsSince(ctx context.Context, fromSequence uint64) (records []*ledger.BurnRecord, err error) {
	res := &jsonmodels.GetBurnsResponse{}
	errRes := &jsonmodels.ErrorResponse{}
	resp, err := r.api.R().SetContext(ctx).
		SetQueryParam("since", strconv.FormatUint(fromSequence, 10)).
		SetResult(res).
		SetError(errRes).
		Get("/ledgers/" + r.id.String() + "/burns")
	if err != nil {
		return nil, errors.Errorf("failed to query burns of %s: %w", r.id, err)
	}
	if !resp.IsSuccess() {
		return nil, remoteError(resp, errRes)
	}

	records = make([]*ledger.BurnRecord, 0, len(res.Burns))
	for _, model := range res.Burns {
		record, recordErr := model.ToRecord()
		if recordErr != nil {
			return nil, errors.Errorf("failed to parse burn record of %s: %w", r.id, recordErr)
		}
		records = append(records, record)
	}

	return records, nil
}

// Mint executes an authority mint on the connected ledger.
func (r *RemoteConnector) Mint(ctx context.Context, nonce uint64, to identity.ID, amount uint64, provenance ledger.Provenance) (*ledger.MintReceipt, error) {
	res := &jsonmodels.PostMintResponse{}
	errRes := &jsonmodels.ErrorResponse{}
	resp, err := r.api.R().SetContext(ctx).
		SetHeader(RelayCredentialHeader, r.credential).
		SetBody(&jsonmodels.PostMintRequest{
			Nonce:      nonce,
			To:         ledger.AccountBase58(to),
			Amount:     amount,
			Provenance: jsonmodels.NewProvenance(provenance),
		}).
		SetResult(res).
		SetError(errRes).
		Post("/ledgers/" + r.id.String() + "/mint")
	if err != nil {
		return nil, errors.Errorf("failed to submit mint to %s: %w", r.id, err)
	}
	if !resp.IsSuccess() {
		return nil, remoteError(resp, errRes)
	}
	if res.AlreadyMinted {
		return nil, ledger.ErrAlreadyMinted
	}

	return res.Receipt.ToReceipt()
}

// AuthorityNonce returns the nonce the connected ledger expects for its next mint.
func (r *RemoteConnector) AuthorityNonce(ctx context.Context) (uint64, error) {
	info, err := r.info(ctx)
	if err != nil {
		return 0, err
	}
	return info.AuthorityNonce, nil
}

// TotalSupply returns the current total supply of the connected ledger.
func (r *RemoteConnector) TotalSupply(ctx context.Context) (uint64, error) {
	info, err := r.info(ctx)
	if err != nil {
		return 0, err
	}
	return info.TotalSupply, nil
}

// Close terminates the websocket feed and waits for it to wind down.
func (r *RemoteConnector) Close() error {
	r.closeOnce.Do(func() {
		close(r.closing)
	})
	r.shutdown.Wait()

	return nil
}

func (r *RemoteConnector) info(ctx context.Context) (*jsonmodels.GetLedgerInfoResponse, error) {
	res := &jsonmodels.GetLedgerInfoResponse{}
	errRes := &jsonmodels.ErrorResponse{}
	resp, err := r.api.R().SetContext(ctx).
		SetResult(res).
		SetError(errRes).
		Get("/ledgers/" + r.id.String())
	if err != nil {
		return nil, errors.Errorf("failed to query info of %s: %w", r.id, err)
	}
	if !resp.IsSuccess() {
		return nil, remoteError(resp, errRes)
	}

	return res, nil
}

// feedLoop keeps a websocket subscription to the endpoint's burn feed alive until the connector is
// closed.
func (r *RemoteConnector) feedLoop() {
	defer r.shutdown.Done()

	for {
		retry := r.consumeFeed()
		if !retry {
			return
		}
		r.log.Infof("lost burn feed of %s - reconnecting after %v", r.id, feedRetryAfter)
		select {
		case <-r.closing:
			return
		case <-time.After(feedRetryAfter):
		}
	}
}

// consumeFeed dials the feed and republishes every burn of the connected ledger until the
// connection breaks or the connector is closed.
func (r *RemoteConnector) consumeFeed() bool {
	var conn *websocket.Conn
	if err := backoff.Retry(dialRetryPolicy, func() error {
		var dialErr error
		if conn, _, dialErr = websocket.DefaultDialer.Dial(r.feedURL, nil); dialErr != nil {
			return errors.Errorf("failed to dial feed %s: %w", r.feedURL, dialErr)
		}
		return nil
	}); err != nil {
		r.log.Warn(err)
		return !r.isClosing()
	}
	defer conn.Close()

	// unblock the blocking read when the connector is closed
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-r.closing:
			_ = conn.Close()
		case <-done:
		}
	}()

	type envelope struct {
		Type byte            `json:"type"`
		Data json.RawMessage `json:"data"`
	}

	for {
		msg := &envelope{}
		if err := conn.ReadJSON(msg); err != nil {
			if r.isClosing() {
				return false
			}
			r.log.Warnf("burn feed of %s broke: %s", r.id, err)
			return true
		}
		if msg.Type != jsonmodels.WSMsgBurn {
			continue
		}

		burn := &jsonmodels.WSBurn{}
		if err := json.Unmarshal(msg.Data, burn); err != nil {
			r.log.Warnf("malformed burn feed message: %s", err)
			continue
		}
		if burn.LedgerID != r.id.String() {
			continue
		}
		record, err := burn.Record.ToRecord()
		if err != nil {
			r.log.Warnf("malformed burn record on feed: %s", err)
			continue
		}

		r.events.BurnObserved.Trigger(&BurnObservedEvent{
			Ledger: r.id,
			Record: record,
		})
	}
}

func (r *RemoteConnector) isClosing() bool {
	select {
	case <-r.closing:
		return true
	default:
		return false
	}
}

// remoteError folds an API error response back into the sentinel errors of the ledger package.
func remoteError(resp *resty.Response, errRes *jsonmodels.ErrorResponse) error {
	reason := errRes.Error
	if reason == "" {
		reason = resp.Status()
	}

	switch resp.StatusCode() {
	case http.StatusUnauthorized:
		return errors.Errorf("%s: %w", reason, ledger.ErrUnauthorized)
	case http.StatusConflict:
		return errors.Errorf("%s: %w", reason, ledger.ErrNonceConflict)
	case http.StatusBadRequest:
		return errors.Errorf("%s: %w", reason, ledger.ErrInvalidAmount)
	case http.StatusNotFound:
		return errors.Errorf("%s: %w", reason, ledger.ErrUnknownLedger)
	default:
		return errors.Errorf("%s: %w", reason, ErrEndpointFailure)
	}
}

// feedURLFromEndpoint derives the websocket feed URL from an HTTP endpoint URL.
func feedURLFromEndpoint(endpointURL string) (string, error) {
	parsed, err := url.Parse(endpointURL)
	if err != nil {
		return "", errors.Errorf("failed to parse endpoint URL %s: %w", endpointURL, err)
	}

	switch parsed.Scheme {
	case "http":
		parsed.Scheme = "ws"
	case "https":
		parsed.Scheme = "wss"
	default:
		return "", errors.Errorf("endpoint URL %s has unsupported scheme %s", endpointURL, parsed.Scheme)
	}
	parsed.Path = strings.TrimSuffix(parsed.Path, "/") + "/ws"

	return parsed.String(), nil
}

// code contract (make sure the type implements all required methods).
var _ Connector = &RemoteConnector{}
