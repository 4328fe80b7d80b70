// Package browse loads the processed corpus and ontology artifacts into
// memory and answers the read-side queries behind the HTTP API.
package browse

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/veritext/frameunify/internal/application/unify"
	"github.com/veritext/frameunify/internal/domain/corpus"
	"github.com/veritext/frameunify/internal/domain/ontology"
	"github.com/veritext/frameunify/internal/infrastructure/monitoring/logging"
	"github.com/veritext/frameunify/pkg/errors"
)

// Store is an immutable in-memory view of one processed corpus plus its
// ontology. It is built once at startup and read concurrently without
// locking.
type Store struct {
	instances  map[string]*corpus.UnifiedInstance
	order      []string
	frameIndex map[string][]string
	search     []unify.SearchEntry
	meta       unify.Metadata

	table     ontology.Table
	hierarchy ontology.HierarchyIndex
}

// NewStore loads every artifact from the corpus and ontology output
// directories. Both directories must have been produced by the process and
// ontology commands respectively.
func NewStore(corpusDir, ontologyDir string, logger logging.Logger) (*Store, error) {
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	s := &Store{
		instances:  make(map[string]*corpus.UnifiedInstance),
		frameIndex: make(map[string][]string),
	}

	if err := readJSONFile(filepath.Join(corpusDir, "metadata.json"), &s.meta); err != nil {
		return nil, err
	}
	for i := 0; i < s.meta.ChunkCount; i++ {
		var chunk []corpus.UnifiedInstance
		path := filepath.Join(corpusDir, fmt.Sprintf("chunk_%04d.json", i))
		if err := readJSONFile(path, &chunk); err != nil {
			return nil, err
		}
		for j := range chunk {
			inst := chunk[j]
			s.instances[inst.InstanceID] = &inst
			s.order = append(s.order, inst.InstanceID)
		}
	}
	if err := readJSONFile(filepath.Join(corpusDir, "frame_index.json"), &s.frameIndex); err != nil {
		return nil, err
	}
	if err := readJSONFile(filepath.Join(corpusDir, "search_index.json"), &s.search); err != nil {
		return nil, err
	}

	if err := readJSONFile(filepath.Join(ontologyDir, "frames.json"), &s.table); err != nil {
		return nil, err
	}
	if err := readJSONFile(filepath.Join(ontologyDir, "hierarchy.json"), &s.hierarchy); err != nil {
		return nil, err
	}

	logger.Named("browse").Info("store loaded",
		logging.String("corpus_dir", corpusDir),
		logging.String("ontology_dir", ontologyDir),
		logging.Int("instances", len(s.instances)),
		logging.Int("frames", len(s.table)),
	)
	return s, nil
}

func readJSONFile(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeCorpusLoadFailed, "read "+path)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return errors.Wrap(err, errors.ErrCodeCorpusLoadFailed, "decode "+path)
	}
	return nil
}

// Metadata returns the corpus run metadata.
func (s *Store) Metadata() unify.Metadata { return s.meta }

// Instance returns one unified instance by ID.
func (s *Store) Instance(id string) (*corpus.UnifiedInstance, error) {
	inst, ok := s.instances[id]
	if !ok {
		return nil, errors.New(errors.ErrCodeInstanceNotFound,
			"instance not found").WithDetail("instance_id=" + id)
	}
	return inst, nil
}

// ListOptions filters and pages an instance listing.
type ListOptions struct {
	Frame         string
	Split         string
	OnlyDiffering bool
	Offset        int
	Limit         int
}

// List returns instances in corpus order, filtered by opts, plus the total
// match count before paging.
func (s *Store) List(opts ListOptions) ([]*corpus.UnifiedInstance, int) {
	var matched []*corpus.UnifiedInstance
	for _, id := range s.order {
		inst := s.instances[id]
		if opts.Frame != "" && inst.Frame != opts.Frame {
			continue
		}
		if opts.Split != "" && inst.Split != opts.Split {
			continue
		}
		if opts.OnlyDiffering && !inst.HasDifferences {
			continue
		}
		matched = append(matched, inst)
	}

	total := len(matched)
	if opts.Offset > 0 {
		if opts.Offset >= total {
			return nil, total
		}
		matched = matched[opts.Offset:]
	}
	if opts.Limit > 0 && opts.Limit < len(matched) {
		matched = matched[:opts.Limit]
	}
	return matched, total
}

// Search matches query case-insensitively against instance IDs, frame names
// and indexed report text. An empty query matches nothing.
func (s *Store) Search(query string, limit int) []unify.SearchEntry {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	var hits []unify.SearchEntry
	for _, entry := range s.search {
		if strings.Contains(strings.ToLower(entry.InstanceID), query) ||
			strings.Contains(strings.ToLower(entry.Frame), query) ||
			strings.Contains(strings.ToLower(entry.ReportText), query) {
			hits = append(hits, entry)
			if limit > 0 && len(hits) == limit {
				break
			}
		}
	}
	return hits
}

// Frame returns one ontology frame by name.
func (s *Store) Frame(name string) (ontology.FrameNode, error) {
	node, ok := s.table.Lookup(name)
	if !ok {
		return ontology.FrameNode{}, errors.New(errors.ErrCodeFrameNotFound,
			"frame not found").WithDetail("frame=" + name)
	}
	return node, nil
}

// FrameNames returns all frame names in lexical order.
func (s *Store) FrameNames() []string { return s.table.Names() }

// FrameInstances returns the instance IDs annotated with the frame, in the
// index's sorted order. Unknown frames return an empty slice, not an error;
// the frame may legitimately exist in the ontology with no corpus coverage.
func (s *Store) FrameInstances(frame string) []string {
	return s.frameIndex[frame]
}

// Hierarchy returns the ontology hierarchy index.
func (s *Store) Hierarchy() ontology.HierarchyIndex { return s.hierarchy }
