package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/iotaledger/hive.go/generics/event"
	"github.com/iotaledger/hive.go/node"
	flag "github.com/spf13/pflag"

	"github.com/trestlelabs/trestle/plugins/banner"
)

// PluginName is the name of the CLI plugin.
const PluginName = "CLI"

var (
	// Plugin is the plugin instance of the CLI plugin.
	Plugin *node.Plugin

	version = flag.BoolP("version", "v", false, "prints the app version")
)

func init() {
	Plugin = node.NewPlugin(PluginName, nil, node.Enabled)

	flag.Usage = printUsage

	Plugin.Events.Init.Hook(event.NewClosure(func(_ *node.InitEvent) {
		if *version {
			fmt.Println(banner.AppName + " " + banner.AppVersion)
			os.Exit(0)
		}
	}))
}

func printUsage() {
	_, err := fmt.Fprintf(
		os.Stderr,
		"\n"+
			banner.AppName+" "+banner.SimplifiedAppVersion+"\n\n"+
			"  A relay node that bridges tokens between two ledgers.\n\n"+
			"Usage:\n\n"+
			"  %s [OPTIONS]\n\n"+
			"Options:\n\n",
		filepath.Base(os.Args[0]),
	)
	if err != nil {
		panic(err)
	}

	flag.PrintDefaults()
}
