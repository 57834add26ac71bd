package metrics

import (
	"go.uber.org/atomic"
)

var dbSize atomic.Int64

// DBSize returns the latest measured size of the database on disk in bytes.
func DBSize() int64 {
	return dbSize.Load()
}

func measureDBSize() {
	size, err := deps.DB.Size()
	if err != nil {
		return
	}
	dbSize.Store(size)
}
