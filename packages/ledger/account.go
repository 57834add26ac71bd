package ledger

import (
	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/identity"
	"github.com/mr-tron/base58"
)

// AccountFromBase58 parses an account identifier from its full base58 representation.
func AccountFromBase58(s string) (account identity.ID, err error) {
	bytes, err := base58.Decode(s)
	if err != nil {
		return account, errors.Errorf("could not parse account %s as base58: %w", s, err)
	}
	if len(bytes) != len(account) {
		return account, errors.Errorf("account %s has %d bytes instead of %d", s, len(bytes), len(account))
	}
	copy(account[:], bytes)

	return account, nil
}

// AccountBase58 returns the full base58 representation of an account identifier (identity.ID's
// String method truncates).
func AccountBase58(account identity.ID) string {
	return base58.Encode(account[:])
}
