// Package ontologysvc ingests the raw frame ontology and produces the
// processed artifacts: the frame table, the hierarchy index and a flat
// search index.
package ontologysvc

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/veritext/frameunify/internal/domain/ontology"
	"github.com/veritext/frameunify/internal/infrastructure/monitoring/logging"
	"github.com/veritext/frameunify/pkg/errors"
)

// Metadata describes one processed ontology.
type Metadata struct {
	GeneratedAt time.Time `json:"generated_at"`
	FrameCount  int       `json:"frame_count"`
	RootCount   int       `json:"root_count"`
	SourceFile  string    `json:"source_file"`
}

// SearchEntry is one row of the ontology search index.
type SearchEntry struct {
	Frame      string `json:"frame"`
	Definition string `json:"definition"`
	IsRoot     bool   `json:"is_root"`
	RoleCount  int    `json:"role_count"`
}

// Result is everything derived from one raw ontology file.
type Result struct {
	Table     ontology.Table
	Hierarchy ontology.HierarchyIndex
	Search    []SearchEntry
	Metadata  Metadata
}

// Service processes raw ontology files.
type Service struct {
	logger logging.Logger
}

// NewService creates an ontology service. A nil logger falls back to the
// no-op logger.
func NewService(logger logging.Logger) *Service {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Service{logger: logger.Named("ontology")}
}

// LoadTable reads a raw ontology file and returns the processed frame table.
// The unification pipeline uses this directly for role enrichment.
func (s *Service) LoadTable(path string) (ontology.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeOntologyLoadFailed, "read ontology file "+path)
	}

	var raw map[string]ontology.RawFrame
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeOntologyLoadFailed, "decode ontology file "+path)
	}

	table := ontology.ProcessTable(raw)
	s.logger.Info("ontology loaded",
		logging.String("path", path),
		logging.Int("frames", len(table)),
	)
	return table, nil
}

// Process loads a raw ontology file and derives all artifacts from it.
func (s *Service) Process(path string) (*Result, error) {
	table, err := s.LoadTable(path)
	if err != nil {
		return nil, err
	}

	hierarchy := ontology.BuildHierarchy(table)

	search := make([]SearchEntry, 0, len(table))
	for _, name := range table.Names() {
		node := table[name]
		search = append(search, SearchEntry{
			Frame:      name,
			Definition: node.Definition,
			IsRoot:     hierarchy.IsRoot(name),
			RoleCount:  len(node.AllRoles),
		})
	}

	return &Result{
		Table:     table,
		Hierarchy: hierarchy,
		Search:    search,
		Metadata: Metadata{
			GeneratedAt: time.Now().UTC(),
			FrameCount:  len(table),
			RootCount:   len(hierarchy.Roots),
			SourceFile:  filepath.Base(path),
		},
	}, nil
}

// Write persists a processed ontology as four JSON files under dir:
// frames.json, hierarchy.json, search_index.json and metadata.json.
func (s *Service) Write(dir string, result *Result) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, errors.ErrCodeOutputWriteFailed, "create output directory")
	}

	files := []struct {
		name string
		v    interface{}
	}{
		{"frames.json", result.Table},
		{"hierarchy.json", result.Hierarchy},
		{"search_index.json", result.Search},
		{"metadata.json", result.Metadata},
	}
	for _, f := range files {
		if err := writeJSON(filepath.Join(dir, f.name), f.v); err != nil {
			return err
		}
	}

	s.logger.Info("ontology written",
		logging.String("dir", dir),
		logging.Int("frames", result.Metadata.FrameCount),
		logging.Int("roots", result.Metadata.RootCount),
	)
	return nil
}

func writeJSON(path string, v interface{}) error {
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
