package database

import (
	"github.com/iotaledger/hive.go/configuration"
)

// ParametersDefinition contains the definition of configuration parameters used by the storage layer.
type ParametersDefinition struct {
	// Directory defines the directory of the database.
	Directory string `default:"db" usage:"path to the database folder"`
	// InMemory defines whether to use an in-memory database.
	InMemory bool `default:"false" usage:"whether the database is only kept in memory and not persisted"`
	// Dirty overrides the database dirty flag when set to a boolean value.
	Dirty string `default:"" usage:"set the dirty flag of the database"`
}

// Parameters contains the configuration parameters of the storage layer.
var Parameters = &ParametersDefinition{}

func init() {
	configuration.BindParameters(Parameters, "database")
}
