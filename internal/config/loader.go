package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// envPrefix is the environment variable prefix used by all settings.
const envPrefix = "FRAMEUNIFY"

// newViper builds a pre-configured Viper instance: YAML file type,
// FRAMEUNIFY_ env prefix, automatic env binding, and a key replacer that maps
// "." to "_" so that nested keys like "corpus.chunk_size" resolve to
// FRAMEUNIFY_CORPUS_CHUNK_SIZE.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	// Viper only considers env vars for keys it already knows about, so every
	// key must be bound explicitly for Unmarshal to see pure-env overrides.
	for _, key := range configKeys {
		_ = v.BindEnv(key)
	}
	return v
}

// configKeys enumerates every mapstructure key path in Config.
var configKeys = []string{
	"server.port",
	"server.read_timeout",
	"server.write_timeout",
	"server.idle_timeout",
	"server.shutdown_timeout",
	"corpus.version_a_dir",
	"corpus.version_b_dir",
	"corpus.splits",
	"corpus.output_dir",
	"corpus.chunk_size",
	"corpus.span_policy",
	"corpus.workers",
	"corpus.search_text_limit",
	"ontology.input_file",
	"ontology.output_dir",
	"log.level",
	"log.format",
	"log.output",
	"metrics.enabled",
	"metrics.namespace",
	"rate_limit.requests_per_second",
	"rate_limit.burst",
}

// Load reads the YAML file at configPath, merges FRAMEUNIFY_* environment
// variable overrides, applies defaults for unset fields, and validates the
// result.
func Load(configPath string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: failed to read config file %q: %w", configPath, err)
	}

	return unmarshalAndFinalize(v)
}

// LoadFromEnv builds a Config entirely from FRAMEUNIFY_* environment
// variables, with no config file required.
func LoadFromEnv() (*Config, error) {
	v := newViper()
	return unmarshalAndFinalize(v)
}

func unmarshalAndFinalize(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal configuration: %w", err)
	}

	ApplyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}

	return cfg, nil
}

// Watch monitors configPath for changes and invokes onChange with the newly
// parsed Config whenever the file is modified on disk.  Intended for
// hot-reloading non-critical settings such as log level and rate limits;
// callers are responsible for applying only the safe subset at runtime.
// Changes that fail to parse or validate are dropped without invoking
// onChange, so the application never observes a broken configuration.
func Watch(configPath string, onChange func(*Config)) {
	v := newViper()
	v.SetConfigFile(configPath)

	// Initial read — errors are ignored here; callers should call Load first.
	_ = v.ReadInConfig()

	v.WatchConfig()
	v.OnConfigChange(func(_ fsnotify.Event) {
		cfg, err := unmarshalAndFinalize(v)
		if err != nil {
			return
		}
		onChange(cfg)
	})
}

// MustLoad is a convenience wrapper around Load that panics on any error.
// Intended for use in main() where a config-load failure is always fatal.
func MustLoad(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		panic(fmt.Sprintf("config: MustLoad failed: %v", err))
	}
	return cfg
}
