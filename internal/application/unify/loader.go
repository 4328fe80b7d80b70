package unify

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/veritext/frameunify/internal/domain/corpus"
	"github.com/veritext/frameunify/internal/infrastructure/monitoring/logging"
	"github.com/veritext/frameunify/pkg/errors"
)

// maxLineBytes bounds a single JSONL record. Annotated documents with long
// source texts routinely exceed bufio's default 64KB token size.
const maxLineBytes = 16 * 1024 * 1024

// Loader reads corpus splits from a directory of <split>.jsonl files.
type Loader struct {
	logger logging.Logger
}

// NewLoader creates a Loader. A nil logger falls back to the no-op logger.
func NewLoader(logger logging.Logger) *Loader {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Loader{logger: logger}
}

// LoadSplit reads one split file and tags every instance with the split name.
// A missing file is not an error; it returns an empty slice so partial corpora
// (for example a dev-only drop) still process.
func (l *Loader) LoadSplit(dir, split string) ([]corpus.RawInstance, error) {
	path := filepath.Join(dir, split+".jsonl")

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			l.logger.Warn("split file not found, skipping",
				logging.String("split", split),
				logging.String("path", path),
			)
			return nil, nil
		}
		return nil, errors.Wrap(err, errors.ErrCodeCorpusLoadFailed,
			fmt.Sprintf("open split file %s", path))
	}
	defer f.Close()

	var instances []corpus.RawInstance
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var raw corpus.RawInstance
		if err := json.Unmarshal(line, &raw); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeCorpusLoadFailed,
				fmt.Sprintf("decode %s line %d", path, lineNo))
		}
		if raw.InstanceID == "" {
			return nil, errors.Newf(errors.ErrCodeCorpusLoadFailed,
				"%s line %d: missing instance_id", path, lineNo)
		}
		raw.Split = split
		instances = append(instances, raw)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeCorpusLoadFailed,
			fmt.Sprintf("read split file %s", path))
	}

	l.logger.Info("loaded split",
		logging.String("split", split),
		logging.String("path", path),
		logging.Int("instances", len(instances)),
	)
	return instances, nil
}

// LoadSplits reads every named split from dir, preserving split order.
func (l *Loader) LoadSplits(dir string, splits []string) ([]corpus.RawInstance, error) {
	var all []corpus.RawInstance
	for _, split := range splits {
		instances, err := l.LoadSplit(dir, split)
		if err != nil {
			return nil, err
		}
		all = append(all, instances...)
	}
	return all, nil
}
