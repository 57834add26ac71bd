package config

import (
	"fmt"
	"os"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/configuration"
	"github.com/iotaledger/hive.go/generics/event"
	"github.com/iotaledger/hive.go/node"
	flag "github.com/spf13/pflag"
)

// PluginName is the name of the config plugin.
const PluginName = "Config"

// EnvPrefix is the prefix of environment variables that override settings from
// the config file.
const EnvPrefix = "TRESTLE"

var (
	// Plugin is the plugin instance of the config plugin.
	Plugin *node.Plugin

	// flags
	configFilePath      = flag.StringP("config", "c", "config.json", "file path of the config file")
	skipConfigAvailable = flag.Bool("skip-config", false, "do not fail when the config file is missing")

	_node    *configuration.Configuration
	nodeOnce sync.Once
)

func init() {
	Plugin = node.NewPlugin(PluginName, nil, node.Enabled)

	Plugin.Events.Init.Hook(event.NewClosure(func(event *node.InitEvent) {
		if err := event.Container.Provide(func() *configuration.Configuration {
			return Node()
		}); err != nil {
			Plugin.Panic(err)
		}
	}))
}

// Node returns the configuration instance of the node. The first call parses
// the command line flags, reads the config file and applies environment
// overrides, in ascending order of precedence.
func Node() *configuration.Configuration {
	nodeOnce.Do(createNode)
	return _node
}

func createNode() {
	_node = configuration.New()

	flag.Parse()

	if err := _node.LoadFile(*configFilePath); err != nil {
		if !errors.Is(err, os.ErrNotExist) || !*skipConfigAvailable {
			// the global logger is not initialized at this stage, so we just print and exit
			fmt.Printf("failed to load the config file: %s\n", err)
			os.Exit(1)
		}
	}

	if err := _node.LoadEnvironmentVars(EnvPrefix); err != nil {
		fmt.Printf("failed to load environment variables: %s\n", err)
		os.Exit(1)
	}

	// flags have the highest precedence, so they are loaded last
	if err := _node.LoadFlagSet(flag.CommandLine); err != nil {
		fmt.Printf("failed to load the flag set: %s\n", err)
		os.Exit(1)
	}

	// propagate the final values into the bound parameter structs of the plugins
	configuration.UpdateBoundParameters(_node)

	for _, pluginName := range Parameters.DisablePlugins {
		node.DisabledPlugins[node.GetPluginIdentifier(pluginName)] = true
	}
	for _, pluginName := range Parameters.EnablePlugins {
		node.EnabledPlugins[node.GetPluginIdentifier(pluginName)] = true
	}
}
