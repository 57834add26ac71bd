package database

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/kvstore"

	"github.com/trestlelabs/trestle/packages/database"
)

// the dirty flag lives in its own realm so that a version wipe never clears it
var (
	healthStore kvstore.KVStore
	dirtyKey    = []byte("dirty")
)

func configureHealthStore(store kvstore.KVStore) {
	var err error
	healthStore, err = store.WithRealm([]byte{database.PrefixHealth})
	if err != nil {
		panic(err)
	}
}

// markDirty flags the store as not properly shut down.
func markDirty() {
	if err := healthStore.Set(dirtyKey, []byte{}); err != nil {
		panic(fmt.Errorf("failed to set the database dirty flag: %w", err))
	}
}

// markClean clears the dirty flag after a proper shutdown.
func markClean() {
	if err := healthStore.Delete(dirtyKey); err != nil && !errors.Is(err, kvstore.ErrKeyNotFound) {
		panic(fmt.Errorf("failed to clear the database dirty flag: %w", err))
	}
}

// isDirty tells whether the last session ended without a proper shutdown.
func isDirty() bool {
	dirty, err := healthStore.Has(dirtyKey)
	if err != nil {
		panic(fmt.Errorf("failed to read the database dirty flag: %w", err))
	}
	return dirty
}
