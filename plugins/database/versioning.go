package database

import (
	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/kvstore"

	"github.com/trestlelabs/trestle/packages/database"
)

// DBVersion defines the schema version of the database. It must be incremented
// whenever the serialization format of any of the stored entities changes.
const DBVersion byte = 1

// ErrDBVersionIncompatible is returned when the database is incompatible with the schema version of the node.
var ErrDBVersionIncompatible = errors.New("database version is not compatible with the schema version of the node")

var versionKey = []byte("db_version")

// checkDatabaseVersion checks whether the database is compatible with the
// current schema version. It also automatically sets the version on a fresh database.
func checkDatabaseVersion(store kvstore.KVStore) error {
	versionStore, err := store.WithRealm([]byte{database.PrefixDatabaseVersion})
	if err != nil {
		return err
	}

	value, err := versionStore.Get(versionKey)
	if errors.Is(err, kvstore.ErrKeyNotFound) {
		// set the version on a fresh database
		return versionStore.Set(versionKey, []byte{DBVersion})
	}
	if err != nil {
		return err
	}

	if len(value) < 1 {
		return errors.Errorf("%w: no database version was persisted", ErrDBVersionIncompatible)
	}
	if value[0] != DBVersion {
		return errors.Errorf("%w: supported version: %d, database version: %d", ErrDBVersionIncompatible, DBVersion, value[0])
	}

	return nil
}
