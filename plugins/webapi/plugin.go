// Package webapi is a plugin that provides the web API server the route
// plugins register their endpoints on.
package webapi

import (
	"context"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/daemon"
	"github.com/iotaledger/hive.go/generics/event"
	"github.com/iotaledger/hive.go/logger"
	"github.com/iotaledger/hive.go/node"
	"github.com/labstack/echo"
	"github.com/labstack/echo/middleware"
	gommonlog "github.com/labstack/gommon/log"
	"go.uber.org/dig"

	"github.com/trestlelabs/trestle/packages/shutdown"
)

// PluginName is the name of the web API plugin.
const PluginName = "WebAPI"

var (
	// Plugin is the plugin instance of the web API plugin.
	Plugin *node.Plugin

	deps = new(dependencies)
	log  *logger.Logger
)

type dependencies struct {
	dig.In

	Server *echo.Echo
}

func init() {
	Plugin = node.NewPlugin(PluginName, deps, node.Enabled, configure, run)

	Plugin.Events.Init.Hook(event.NewClosure(func(event *node.InitEvent) {
		if err := event.Container.Provide(newServer); err != nil {
			Plugin.Panic(err)
		}
	}))
}

// newServer creates the server instance all route plugins register their endpoints on.
func newServer() *echo.Echo {
	server := echo.New()
	server.HideBanner = true
	server.HidePort = true
	server.Logger.SetLevel(gommonlog.ERROR)
	server.Use(middleware.Recover())

	if Parameters.BasicAuth.Enabled {
		server.Use(middleware.BasicAuth(func(username, password string, c echo.Context) (bool, error) {
			if username == Parameters.BasicAuth.Username &&
				password == Parameters.BasicAuth.Password {
				return true, nil
			}
			return false, nil
		}))
	}

	return server
}

func configure(plugin *node.Plugin) {
	log = logger.NewLogger(plugin.Name)
}

func run(*node.Plugin) {
	log.Infof("Starting %s ...", PluginName)
	if err := daemon.BackgroundWorker(PluginName, worker, shutdown.PriorityWebAPI); err != nil {
		log.Panicf("Error starting as daemon: %s", err)
	}
}

func worker(ctx context.Context) {
	defer log.Infof("Stopping %s ... done", PluginName)

	stopped := make(chan struct{})
	go func() {
		log.Infof("%s started, bind-address=%s", PluginName, Parameters.BindAddress)
		if err := deps.Server.Start(Parameters.BindAddress); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				log.Errorf("Error serving: %s", err)
			}
			close(stopped)
		}
	}()

	// stop if we are shutting down or the server could not be started
	select {
	case <-ctx.Done():
	case <-stopped:
	}

	log.Infof("Stopping %s ...", PluginName)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := deps.Server.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Error stopping: %s", err)
	}
}
