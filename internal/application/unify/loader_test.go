package unify

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veritext/frameunify/internal/infrastructure/monitoring/logging"
	"github.com/veritext/frameunify/pkg/errors"
)

func writeSplit(t *testing.T, dir, split, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, split+".jsonl"), []byte(content), 0o644))
}

func TestLoadSplit(t *testing.T) {
	dir := t.TempDir()
	writeSplit(t, dir, "train", `{"instance_id":"a","frame":"F"}

{"instance_id":"b","frame":"G"}
`)

	l := NewLoader(logging.NewNopLogger())
	instances, err := l.LoadSplit(dir, "train")
	require.NoError(t, err)
	require.Len(t, instances, 2)

	assert.Equal(t, "a", instances[0].InstanceID)
	assert.Equal(t, "b", instances[1].InstanceID)
	assert.Equal(t, "train", instances[0].Split)
	assert.Equal(t, "train", instances[1].Split)
}

func TestLoadSplitMissingFile(t *testing.T) {
	l := NewLoader(nil)
	instances, err := l.LoadSplit(t.TempDir(), "dev")
	require.NoError(t, err)
	assert.Nil(t, instances)
}

func TestLoadSplitMalformedLine(t *testing.T) {
	dir := t.TempDir()
	writeSplit(t, dir, "train", `{"instance_id":"a"}
{not json}
`)

	_, err := NewLoader(nil).LoadSplit(dir, "train")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeCorpusLoadFailed))
}

func TestLoadSplitMissingInstanceID(t *testing.T) {
	dir := t.TempDir()
	writeSplit(t, dir, "train", `{"frame":"F"}
`)

	_, err := NewLoader(nil).LoadSplit(dir, "train")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeCorpusLoadFailed))
	assert.Contains(t, err.Error(), "instance_id")
}

func TestLoadSplitsPreservesOrder(t *testing.T) {
	dir := t.TempDir()
	writeSplit(t, dir, "train", `{"instance_id":"t1"}
`)
	writeSplit(t, dir, "dev", `{"instance_id":"d1"}
`)

	instances, err := NewLoader(nil).LoadSplits(dir, []string{"train", "dev", "test"})
	require.NoError(t, err)
	require.Len(t, instances, 2)
	assert.Equal(t, "t1", instances[0].InstanceID)
	assert.Equal(t, "d1", instances[1].InstanceID)
	assert.Equal(t, "dev", instances[1].Split)
}
