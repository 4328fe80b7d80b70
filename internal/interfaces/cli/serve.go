package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/veritext/frameunify/internal/application/browse"
	"github.com/veritext/frameunify/internal/infrastructure/monitoring/logging"
	"github.com/veritext/frameunify/internal/infrastructure/monitoring/prometheus"
	apihttp "github.com/veritext/frameunify/internal/interfaces/http"
	"github.com/veritext/frameunify/internal/interfaces/http/handlers"
	"github.com/veritext/frameunify/internal/interfaces/http/middleware"
)

// newServeCmd builds the browse API server command.
func newServeCmd() *cobra.Command {
	var (
		corpusDir   string
		ontologyDir string
		port        int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the processed corpus and ontology over HTTP",
		Long: "serve loads the processed corpus and ontology artifacts into memory\n" +
			"and exposes them through a read-only JSON API with health probes and\n" +
			"Prometheus metrics.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := getCLIContext(cmd)
			if err != nil {
				return err
			}
			cfg := cc.Config

			if corpusDir != "" {
				cfg.Corpus.OutputDir = corpusDir
			}
			if ontologyDir != "" {
				cfg.Ontology.OutputDir = ontologyDir
			}
			if port > 0 {
				cfg.Server.Port = port
			}

			store, err := browse.NewStore(cfg.Corpus.OutputDir, cfg.Ontology.OutputDir, cc.Logger)
			if err != nil {
				return err
			}

			routerCfg := apihttp.RouterConfig{
				InstanceHandler: handlers.NewInstanceHandler(store),
				OntologyHandler: handlers.NewOntologyHandler(store),
				HealthHandler:   handlers.NewHealthHandler(Version, nil),
				Logger:          cc.Logger,
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

			server := apihttp.NewServer(cfg.Server, apihttp.NewRouter(routerCfg), cc.Logger)

			errCh := make(chan error, 1)
			go func() { errCh <- server.Start() }()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				cc.Logger.Info("signal received, shutting down", logging.String("signal", sig.String()))
			}

			ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer cancel()
			return server.Shutdown(ctx)
		},
	}

	f := cmd.Flags()
	f.StringVar(&corpusDir, "corpus", "", "processed corpus directory (overrides config)")
	f.StringVar(&ontologyDir, "ontology", "", "processed ontology directory (overrides config)")
	f.IntVarP(&port, "port", "p", 0, "listen port (overrides config)")

	return cmd
}
