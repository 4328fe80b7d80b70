// Command apiserver runs the browse API as a standalone service, configured
// entirely from a config file or FRAMEUNIFY_* environment variables.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/veritext/frameunify/internal/application/browse"
	"github.com/veritext/frameunify/internal/config"
	"github.com/veritext/frameunify/internal/infrastructure/monitoring/logging"
	"github.com/veritext/frameunify/internal/infrastructure/monitoring/prometheus"
	apihttp "github.com/veritext/frameunify/internal/interfaces/http"
	"github.com/veritext/frameunify/internal/interfaces/http/handlers"
	"github.com/veritext/frameunify/internal/interfaces/http/middleware"
)

// Build-time variables injected via ldflags.
var (
	version = "dev"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, err := logging.NewLogger(logging.LogConfig{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		OutputPaths: []string{cfg.Log.Output},
	})
	if err != nil {
		return err
	}
	logging.SetDefault(logger)

	store, err := browse.NewStore(cfg.Corpus.OutputDir, cfg.Ontology.OutputDir, logger)
	if err != nil {
		return err
	}

	routerCfg := apihttp.RouterConfig{
		InstanceHandler: handlers.NewInstanceHandler(store),
		OntologyHandler: handlers.NewOntologyHandler(store),
		HealthHandler:   handlers.NewHealthHandler(version, nil),
		Logger:          logger,
	}
	if cfg.Metrics.Enabled {
		collector, err := prometheus.NewMetricsCollector(prometheus.CollectorConfig{
			Namespace:            cfg.Metrics.Namespace,
			EnableProcessMetrics: true,
			EnableGoMetrics:      true,
		})
		if err != nil {
			return err
		}
		routerCfg.MetricsCollector = collector
		routerCfg.HTTPMetrics = prometheus.NewHTTPMetrics(collector)
	}
	if cfg.RateLimit.RequestsPerSecond > 0 {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
		defer limiter.Close()
		routerCfg.RateLimiter = limiter
	}

	server := apihttp.NewServer(cfg.Server, apihttp.NewRouter(routerCfg), logger)

	errCh := make(chan error, 1)
	go func() { errCh <- server.Start() }()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		logger.Info("signal received, shutting down", logging.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return server.Shutdown(ctx)
}

// loadConfig reads the file named by FRAMEUNIFY_CONFIG, or falls back to
// environment variables alone.
func loadConfig() (*config.Config, error) {
	if path := os.Getenv("FRAMEUNIFY_CONFIG"); path != "" {
		return config.Load(path)
	}
	return config.LoadFromEnv()
}
