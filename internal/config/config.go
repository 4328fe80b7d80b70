// Package config defines all configuration structures for frameunify.
// No I/O or parsing logic lives here — only plain data types and validation.
package config

import (
	"fmt"
	"time"
)

// ServerConfig holds browse-API HTTP server tunables.
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// CorpusConfig holds unification pipeline parameters.
type CorpusConfig struct {
	// VersionADir and VersionBDir contain the per-split release files
	// (<split>.jsonl) for the span-based and template-based encodings.
	VersionADir string `mapstructure:"version_a_dir"`
	VersionBDir string `mapstructure:"version_b_dir"`

	// Splits lists the split files to process, in order.
	Splits []string `mapstructure:"splits"`

	// OutputDir receives chunk files, metadata, and indices.
	OutputDir string `mapstructure:"output_dir"`

	// ChunkSize is the number of unified instances per chunk file.
	ChunkSize int `mapstructure:"chunk_size"`

	// SpanPolicy selects "fallback" (legacy whole-document degradation) or
	// "strict" (reject out-of-range token spans).
	SpanPolicy string `mapstructure:"span_policy"`

	// Workers bounds the parallel assembly pool.
	Workers int `mapstructure:"workers"`

	// SearchTextLimit truncates report/source text in the search index.
	SearchTextLimit int `mapstructure:"search_text_limit"`
}

// OntologyConfig holds ontology processing parameters.
type OntologyConfig struct {
	// InputFile is the raw ontology JSON (frame name -> declaration).
	InputFile string `mapstructure:"input_file"`

	// OutputDir receives frames.json, hierarchy.json, search_index.json,
	// and metadata.json.
	OutputDir string `mapstructure:"output_dir"`
}

// LogConfig holds structured-logging parameters.
type LogConfig struct {
	Level  string `mapstructure:"level"`  // "debug" | "info" | "warn" | "error"
	Format string `mapstructure:"format"` // "json" | "console"
	Output string `mapstructure:"output"` // "stdout" | "stderr" | file path
}

// MetricsConfig holds Prometheus exposition parameters.
type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Namespace string `mapstructure:"namespace"`
}

// RateLimitConfig holds the browse-API token-bucket parameters.
type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

// Config is the root configuration structure.  Every component reads its
// settings from the relevant sub-struct.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Corpus    CorpusConfig    `mapstructure:"corpus"`
	Ontology  OntologyConfig  `mapstructure:"ontology"`
	Log       LogConfig       `mapstructure:"log"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

// Validate performs semantic validation of the fully-populated Config.
// It returns the first error encountered; callers should treat any error as
// fatal and refuse to start.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port %d is out of range [1, 65535]", c.Server.Port)
	}

	if c.Corpus.ChunkSize < 1 {
		return fmt.Errorf("config: corpus.chunk_size must be >= 1, got %d", c.Corpus.ChunkSize)
	}
	if c.Corpus.Workers < 1 {
		return fmt.Errorf("config: corpus.workers must be >= 1, got %d", c.Corpus.Workers)
	}
	if c.Corpus.SearchTextLimit < 0 {
		return fmt.Errorf("config: corpus.search_text_limit must be >= 0, got %d", c.Corpus.SearchTextLimit)
	}
	switch c.Corpus.SpanPolicy {
	case "fallback", "strict":
	default:
		return fmt.Errorf("config: corpus.span_policy %q is invalid; expected fallback|strict", c.Corpus.SpanPolicy)
	}
	if len(c.Corpus.Splits) == 0 {
		return fmt.Errorf("config: corpus.splits must name at least one split")
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level %q is invalid; expected debug|info|warn|error", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config: log.format %q is invalid; expected json|console", c.Log.Format)
	}

	if c.RateLimit.RequestsPerSecond < 0 {
		return fmt.Errorf("config: rate_limit.requests_per_second must be >= 0, got %v", c.RateLimit.RequestsPerSecond)
	}
	if c.RateLimit.Burst < 0 {
		return fmt.Errorf("config: rate_limit.burst must be >= 0, got %d", c.RateLimit.Burst)
	}

	return nil
}
