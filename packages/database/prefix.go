package database

const (
	// PrefixDatabaseVersion defines the storage prefix for the database version.
	PrefixDatabaseVersion byte = iota
	// PrefixHealth defines the storage prefix for the database health flags.
	PrefixHealth
	// PrefixLedgers defines the storage prefix for the hosted token ledgers.
	PrefixLedgers
	// PrefixRelay defines the storage prefix for the relay journal.
	PrefixRelay
)
