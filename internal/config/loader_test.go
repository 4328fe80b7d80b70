package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "frameunify.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_FileWithDefaults(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: 9090
corpus:
  version_a_dir: /data/release-a
  version_b_dir: /data/release-b
  chunk_size: 500
  span_policy: strict
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "/data/release-a", cfg.Corpus.VersionADir)
	assert.Equal(t, 500, cfg.Corpus.ChunkSize)
	assert.Equal(t, "strict", cfg.Corpus.SpanPolicy)
	// Unset fields are defaulted.
	assert.Equal(t, []string{"train", "dev", "test"}, cfg.Corpus.Splits)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidValuesRejected(t *testing.T) {
	path := writeConfigFile(t, `
corpus:
  span_policy: lenient
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "span_policy")
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("FRAMEUNIFY_SERVER_PORT", "7070")
	t.Setenv("FRAMEUNIFY_LOG_LEVEL", "warn")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestMustLoad_PanicsOnMissingFile(t *testing.T) {
	assert.Panics(t, func() {
		MustLoad(filepath.Join(t.TempDir(), "absent.yaml"))
	})
}
