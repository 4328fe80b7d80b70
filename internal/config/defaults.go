package config

import "time"

const (
	DefaultServerPort      = 8080
	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultChunkSize       = 1000
	DefaultSpanPolicy      = "fallback"
	DefaultWorkers         = 4
	DefaultSearchTextLimit = 500
	DefaultCorpusOutputDir = "assets/data/unified"

	DefaultOntologyOutputDir = "assets/data/ontology"

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
	DefaultLogOutput = "stdout"

	DefaultMetricsNamespace = "frameunify"

	DefaultRateLimitRPS   = 50.0
	DefaultRateLimitBurst = 100
)

// DefaultSplits is the canonical split order of the release files.
func DefaultSplits() []string { return []string{"train", "dev", "test"} }

// ApplyDefaults fills every zero-value field in cfg with the platform
// default.  Fields already set by the caller are left unchanged so that
// explicit configuration always wins.  It must run after unmarshalling and
// before Validate so that optional-but-defaulted fields are never seen as
// missing.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultServerPort
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = DefaultIdleTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	}

	if len(cfg.Corpus.Splits) == 0 {
		cfg.Corpus.Splits = DefaultSplits()
	}
	if cfg.Corpus.OutputDir == "" {
		cfg.Corpus.OutputDir = DefaultCorpusOutputDir
	}
	if cfg.Corpus.ChunkSize == 0 {
		cfg.Corpus.ChunkSize = DefaultChunkSize
	}
	if cfg.Corpus.SpanPolicy == "" {
		cfg.Corpus.SpanPolicy = DefaultSpanPolicy
	}
	if cfg.Corpus.Workers == 0 {
		cfg.Corpus.Workers = DefaultWorkers
	}
	if cfg.Corpus.SearchTextLimit == 0 {
		cfg.Corpus.SearchTextLimit = DefaultSearchTextLimit
	}

	if cfg.Ontology.OutputDir == "" {
		cfg.Ontology.OutputDir = DefaultOntologyOutputDir
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = DefaultLogOutput
	}

	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}

	if cfg.RateLimit.RequestsPerSecond == 0 {
		cfg.RateLimit.RequestsPerSecond = DefaultRateLimitRPS
	}
	if cfg.RateLimit.Burst == 0 {
		cfg.RateLimit.Burst = DefaultRateLimitBurst
	}
}

// NewDefaultConfig returns a Config populated entirely with defaults.
func NewDefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}
