// Package cli defines the frameunify command tree.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/veritext/frameunify/internal/config"
	"github.com/veritext/frameunify/internal/infrastructure/monitoring/logging"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// RootOptions holds the global flags.
type RootOptions struct {
	ConfigPath string
	LogLevel   string
}

// CLIContext carries the initialized dependencies through the command tree.
type CLIContext struct {
	Config *config.Config
	Logger logging.Logger
}

type cliContextKey struct{}

// NewRootCommand creates the root command with global flags and subcommands.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "frameunify",
		Short: "Normalize, diff and serve cross-document frame annotation corpora",
		Long: "frameunify reconciles the two release encodings of a frame annotation\n" +
			"corpus into one canonical form, flags instances whose annotations\n" +
			"disagree between releases, and derives a navigable ontology hierarchy.",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildDate),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initContext(cmd, opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.ConfigPath, "config", "c", "", "config file path (default: search for frameunify.yaml)")
	pf.StringVar(&opts.LogLevel, "log-level", "", "override log level (debug, info, warn, error)")

	cmd.AddCommand(
		newProcessCmd(),
		newOntologyCmd(),
		newServeCmd(),
	)
	return cmd
}

// initContext loads configuration and builds the logger, then stashes both in
// the command's context for subcommands.
func initContext(cmd *cobra.Command, opts *RootOptions) error {
	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return err
	}
	if opts.LogLevel != "" {
		switch opts.LogLevel {
		case "debug", "info", "warn", "error":
			cfg.Log.Level = opts.LogLevel
		default:
			return fmt.Errorf("invalid log level %q; expected debug|info|warn|error", opts.LogLevel)
		}
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

	ctx := context.WithValue(cmd.Context(), cliContextKey{}, &CLIContext{
		Config: cfg,
		Logger: logger,
	})
	cmd.SetContext(ctx)
	return nil
}

// loadConfig resolves the config source: an explicit path, a frameunify.yaml
// in the working directory, or environment variables alone.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	if _, err := os.Stat("frameunify.yaml"); err == nil {
		return config.Load("frameunify.yaml")
	}
	return config.LoadFromEnv()
}

// getCLIContext extracts the initialized dependencies from the command.
func getCLIContext(cmd *cobra.Command) (*CLIContext, error) {
	cc, ok := cmd.Context().Value(cliContextKey{}).(*CLIContext)
	if !ok || cc == nil {
		return nil, fmt.Errorf("command context not initialized")
	}
	return cc, nil
}

// Execute runs the root command.
func Execute() error {
	return NewRootCommand().Execute()
}
