package database

import (
	"github.com/iotaledger/hive.go/kvstore"
)

// DB represents a database abstraction.
type DB interface {
	// NewStore creates a new KVStore backed by the database.
	NewStore() kvstore.KVStore

	// Close closes the database instance.
	Close() error

	// RequiresGC tells whether the database requires a manual garbage collection run.
	RequiresGC() bool

	// GC runs the garbage collection of the database.
	GC() error

	// Size returns the size of the database on disk in bytes.
	Size() (int64, error)
}
