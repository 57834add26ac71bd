package banner

import (
	"fmt"
	"strings"

	"github.com/iotaledger/hive.go/node"
)

// PluginName is the name of the banner plugin.
const PluginName = "Banner"

var (
	// Plugin is the plugin instance of the banner plugin.
	Plugin *node.Plugin

	// AppVersion version number.
	AppVersion = "v0.4.1"

	// SimplifiedAppVersion is the version number without commit hash.
	SimplifiedAppVersion = simplifiedVersion(AppVersion)
)

const (
	// AppName app code name.
	AppName = "Trestle"
)

func init() {
	Plugin = node.NewPlugin(PluginName, nil, node.Enabled, configure, run)
}

func configure(plugin *node.Plugin) {
	fmt.Printf(`
 _______ _____  ______  _____ _______ _      ______
|__   __|  __ \|  ____|/ ____|__   __| |    |  ____|
   | |  | |__) | |__  | (___    | |  | |    | |__
   | |  |  _  /|  __|  \___ \   | |  | |    |  __|
   | |  | | \ \| |____ ____) |  | |  | |____| |____
   |_|  |_|  \_\______|_____/   |_|  |______|______|
                          %s
`, AppVersion)
	plugin.LogInfof("%s version %s ...", AppName, AppVersion)
}

func run(*node.Plugin) {}

func simplifiedVersion(version string) string {
	// ignore the commit hash of non-release builds
	ver := version
	if strings.Contains(ver, "-") {
		ver = strings.Split(ver, "-")[0]
	}
	if !strings.HasPrefix(ver, "v") {
		ver = "v" + ver
	}
	return ver
}
