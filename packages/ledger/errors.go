package ledger

import "github.com/cockroachdb/errors"

var (
	// ErrInsufficientBalance is returned if a burn or transfer exceeds the available balance of the caller.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrUnauthorized is returned if a mint is attempted by an identity other than the configured authority.
	ErrUnauthorized = errors.New("caller is not the mint authority")
	// ErrNonceConflict is returned if a mint does not carry the authority's next expected nonce.
	ErrNonceConflict = errors.New("authority nonce conflict")
	// ErrAlreadyMinted is returned if the provenance of a mint was already consumed by an earlier mint.
	ErrAlreadyMinted = errors.New("provenance already minted")
	// ErrInvalidAmount is returned if an operation is attempted with a zero amount.
	ErrInvalidAmount = errors.New("amount must be strictly positive")
	// ErrUnknownLedger is returned if a ledger identifier cannot be resolved to a ledger of the pair.
	ErrUnknownLedger = errors.New("unknown ledger")
)
