// Package prometheus is a plugin that exposes the collected metrics through a Prometheus exporter.
package prometheus

import (
	"context"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"github.com/iotaledger/hive.go/daemon"
	"github.com/iotaledger/hive.go/logger"
	"github.com/iotaledger/hive.go/node"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/trestlelabs/trestle/packages/shutdown"
)

// PluginName is the name of the prometheus plugin.
const PluginName = "Prometheus"

var (
	// Plugin is the plugin instance of the prometheus plugin.
	Plugin *node.Plugin
	log    *logger.Logger

	server   *http.Server
	registry = prometheus.NewRegistry()
	collects []func()
)

func init() {
	Plugin = node.NewPlugin(PluginName, nil, node.Disabled, configure, run)
}

func addCollect(collect func()) {
	collects = append(collects, collect)
}

func configure(plugin *node.Plugin) {
	log = logger.NewLogger(plugin.Name)

	registerInfoMetrics()
	registerBridgeMetrics()
	registerDBMetrics()

	if Parameters.ProcessMetrics {
		registerProcessMetrics()
	}
	if Parameters.GoMetrics {
		registry.MustRegister(prometheus.NewGoCollector())
	}
}

func run(*node.Plugin) {
	log.Info("Starting Prometheus exporter ...")

	if err := daemon.BackgroundWorker("Prometheus exporter", func(ctx context.Context) {
		log.Info("Starting Prometheus exporter ... done")

		gin.SetMode(gin.ReleaseMode)
		engine := gin.New()
		engine.Use(gin.Recovery())
		engine.GET("/metrics", func(c *gin.Context) {
			for _, collect := range collects {
				collect()
			}

			handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
			if Parameters.PromhttpMetrics {
				handler = promhttp.Handler()
			}
			handler.ServeHTTP(c.Writer, c.Request)
		})

		bindAddr := Parameters.BindAddress
		server = &http.Server{Addr: bindAddr, Handler: engine}

		go func() {
			log.Infof("You can now access the Prometheus exporter using: http://%s/metrics", bindAddr)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Errorf("Error serving: %s", err)
			}
		}()

		<-ctx.Done()
		log.Info("Stopping Prometheus exporter ...")
		if server != nil {
			stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if err := server.Shutdown(stopCtx); err != nil {
				log.Errorf("Error stopping: %s", err)
			}
			cancel()
		}
		log.Info("Stopping Prometheus exporter ... done")
	}, shutdown.PriorityPrometheus); err != nil {
		log.Panicf("Failed to start as daemon: %s", err)
	}
}
