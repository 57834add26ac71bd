package main

import (
	_ "net/http/pprof"

	"github.com/iotaledger/hive.go/node"

	"github.com/trestlelabs/trestle/plugins"
)

func main() {
	node.Run(
		plugins.Core,
		plugins.WebAPI,
	)
}
