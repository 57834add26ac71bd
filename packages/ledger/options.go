package ledger

import (
	"github.com/iotaledger/hive.go/identity"
	"github.com/iotaledger/hive.go/kvstore"
)

// Options is a container for all configurable parameters of a Ledger.
type Options struct {
	// Store is the KVStore the ledger persists its state to.
	Store kvstore.KVStore
	// GenesisAccount is the account endowed with the genesis supply.
	GenesisAccount identity.ID
	// GenesisAmount is the genesis supply of the ledger.
	GenesisAmount uint64
}

// Option is the type of an optional parameter of a Ledger.
type Option func(*Options)

// WithStore sets the KVStore the ledger persists its state to. Without this
// option the ledger state is kept in a volatile in-memory store.
func WithStore(store kvstore.KVStore) Option {
	return func(options *Options) {
		options.Store = store
	}
}

// WithGenesis endows the given account with the initial supply of the ledger.
// The allocation is applied only when the backing store holds no prior state.
func WithGenesis(account identity.ID, amount uint64) Option {
	return func(options *Options) {
		options.GenesisAccount = account
		options.GenesisAmount = amount
	}
}
