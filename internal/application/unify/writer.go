package unify

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/veritext/frameunify/internal/domain/annotation"
	"github.com/veritext/frameunify/internal/domain/corpus"
	"github.com/veritext/frameunify/internal/infrastructure/monitoring/logging"
	"github.com/veritext/frameunify/pkg/errors"
)

// Metadata describes one written corpus: which run produced it and how the
// instances are chunked.
type Metadata struct {
	RunID          string        `json:"run_id"`
	GeneratedAt    time.Time     `json:"generated_at"`
	TotalInstances int           `json:"total_instances"`
	ChunkSize      int           `json:"chunk_size"`
	ChunkCount     int           `json:"chunk_count"`
	SpanPolicy     string        `json:"span_policy"`
	Splits         []SplitReport `json:"splits"`
}

// SearchEntry is one row of the flat search index: enough text to match
// against without loading any chunk.
type SearchEntry struct {
	InstanceID     string   `json:"instance_id"`
	Frame          string   `json:"frame"`
	Split          string   `json:"split,omitempty"`
	HasDifferences bool     `json:"has_differences"`
	Chunk          int      `json:"chunk"`
	Roles          []string `json:"roles"`
	ReportText     string   `json:"report_text"`
}

// Writer persists a pipeline run as chunked JSON plus the index files the
// browse API serves from.
type Writer struct {
	dir       string
	chunkSize int
	textLimit int
	logger    logging.Logger
}

// NewWriter creates a Writer for dir. chunkSize and textLimit below 1 fall
// back to sane minimums.
func NewWriter(dir string, chunkSize, textLimit int, logger logging.Logger) *Writer {
	if chunkSize < 1 {
		chunkSize = 1
	}
	if textLimit < 1 {
		textLimit = 1
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Writer{dir: dir, chunkSize: chunkSize, textLimit: textLimit, logger: logger.Named("writer")}
}

// Write persists the run. Output layout:
//
//	chunk_0000.json ...  JSON arrays of at most chunkSize instances
//	metadata.json        run and chunking description
//	frame_index.json     frame name -> sorted instance IDs
//	search_index.json    flat array of SearchEntry
func (w *Writer) Write(result *RunResult) error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return errors.Wrap(err, errors.ErrCodeOutputWriteFailed, "create output directory")
	}

	instances := result.Instances
	chunks := 0
	for start := 0; start < len(instances); start += w.chunkSize {
		end := start + w.chunkSize
		if end > len(instances) {
			end = len(instances)
		}
		name := fmt.Sprintf("chunk_%04d.json", chunks)
		if err := w.writeJSON(name, instances[start:end]); err != nil {
			return err
		}
		chunks++
	}
	if len(instances) == 0 {
		// An empty corpus still gets one empty chunk so readers never have
		// to special-case a chunkless directory.
		if err := w.writeJSON("chunk_0000.json", []corpus.UnifiedInstance{}); err != nil {
			return err
		}
		chunks = 1
	}

	meta := Metadata{
		RunID:          result.Report.RunID,
		GeneratedAt:    time.Now().UTC(),
		TotalInstances: len(instances),
		ChunkSize:      w.chunkSize,
		ChunkCount:     chunks,
		SpanPolicy:     result.Report.SpanPolicy,
		Splits:         result.Report.Splits,
	}
	if err := w.writeJSON("metadata.json", meta); err != nil {
		return err
	}
	if err := w.writeJSON("frame_index.json", buildFrameIndex(instances)); err != nil {
		return err
	}
	if err := w.writeJSON("search_index.json", w.buildSearchIndex(instances)); err != nil {
		return err
	}

	w.logger.Info("corpus written",
		logging.String("dir", w.dir),
		logging.Int("instances", len(instances)),
		logging.Int("chunks", chunks),
	)
	return nil
}

func (w *Writer) writeJSON(name string, v interface{}) error {
	path := filepath.Join(w.dir, name)
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeOutputWriteFailed, "create "+path)
	}

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		f.Close()
		return errors.Wrap(err, errors.ErrCodeOutputWriteFailed, "encode "+path)
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(err, errors.ErrCodeOutputWriteFailed, "close "+path)
	}
	return nil
}

// buildFrameIndex maps every frame to the sorted IDs of its instances.
func buildFrameIndex(instances []corpus.UnifiedInstance) map[string][]string {
	index := make(map[string][]string)
	for _, inst := range instances {
		index[inst.Frame] = append(index[inst.Frame], inst.InstanceID)
	}
	for frame := range index {
		sort.Strings(index[frame])
	}
	return index
}

func (w *Writer) buildSearchIndex(instances []corpus.UnifiedInstance) []SearchEntry {
	entries := make([]SearchEntry, 0, len(instances))
	for i, inst := range instances {
		entries = append(entries, SearchEntry{
			InstanceID:     inst.InstanceID,
			Frame:          inst.Frame,
			Split:          inst.Split,
			HasDifferences: inst.HasDifferences,
			Chunk:          i / w.chunkSize,
			Roles:          instanceRoles(inst),
			ReportText:     truncate(inst.VersionA.Report.Text, w.textLimit),
		})
	}
	return entries
}

// instanceRoles collects the distinct annotated roles across both release
// views, sorted.
func instanceRoles(inst corpus.UnifiedInstance) []string {
	set := make(map[string]struct{})
	for _, doc := range []annotation.AnnotatedDocument{
		inst.VersionA.Report, inst.VersionA.Source,
		inst.VersionB.Report, inst.VersionB.Source,
	} {
		for _, ann := range doc.Annotations {
			set[ann.Role] = struct{}{}
		}
	}
	roles := make([]string, 0, len(set))
	for role := range set {
		roles = append(roles, role)
	}
	sort.Strings(roles)
	return roles
}

// truncate cuts s to at most limit bytes without splitting a rune.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && s[cut]&0xC0 == 0x80 {
		cut--
	}
	return s[:cut]
}
