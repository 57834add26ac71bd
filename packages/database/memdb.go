package database

import (
	"github.com/iotaledger/hive.go/kvstore"
	"github.com/iotaledger/hive.go/kvstore/mapdb"
)

// memDB backs throwaway nodes and tests, nothing ever reaches disk.
type memDB struct {
	*mapdb.MapDB
}

// NewMemDB returns a new in-memory (not persisted) DB object.
func NewMemDB() (DB, error) {
	return &memDB{MapDB: mapdb.NewMapDB()}, nil
}

func (db *memDB) NewStore() kvstore.KVStore {
	return db.MapDB
}

func (db *memDB) Close() error {
	db.MapDB = nil
	return nil
}

func (db *memDB) RequiresGC() bool {
	return false
}

// Size always reports zero, the map store does not track its footprint.
func (db *memDB) Size() (int64, error) {
	return 0, nil
}

func (db *memDB) GC() error {
	return nil
}
