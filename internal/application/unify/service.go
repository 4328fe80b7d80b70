// Package unify implements the corpus unification pipeline: load both
// release encodings, normalize them in parallel, pair instances by ID and
// assemble the unified records.
package unify

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/veritext/frameunify/internal/config"
	"github.com/veritext/frameunify/internal/domain/annotation"
	"github.com/veritext/frameunify/internal/domain/corpus"
	"github.com/veritext/frameunify/internal/domain/ontology"
	"github.com/veritext/frameunify/internal/infrastructure/monitoring/logging"
	"github.com/veritext/frameunify/internal/infrastructure/monitoring/prometheus"
	"github.com/veritext/frameunify/pkg/errors"
)

// SplitReport aggregates pipeline counters for one corpus split.
type SplitReport struct {
	Split            string `json:"split"`
	Unified          int    `json:"unified"`
	Differing        int    `json:"differing"`
	Skipped          int    `json:"skipped"`
	DroppedFragments int    `json:"dropped_fragments"`
}

// RunReport summarizes one full pipeline run.
type RunReport struct {
	RunID          string        `json:"run_id"`
	StartedAt      time.Time     `json:"started_at"`
	Duration       time.Duration `json:"duration"`
	SpanPolicy     string        `json:"span_policy"`
	Splits         []SplitReport `json:"splits"`
	TotalUnified   int           `json:"total_unified"`
	TotalDiffering int           `json:"total_differing"`
	TotalSkipped   int           `json:"total_skipped"`
	TotalDropped   int           `json:"total_dropped"`
}

// RunResult carries the assembled corpus plus its report.
type RunResult struct {
	Instances []corpus.UnifiedInstance
	Report    RunReport
}

// Service drives the unification pipeline.
type Service struct {
	cfg     config.CorpusConfig
	table   ontology.Table
	loader  *Loader
	logger  logging.Logger
	metrics *prometheus.PipelineMetrics
}

// NewService wires a pipeline service. The metrics bundle may be nil when the
// pipeline runs as a one-shot CLI command.
func NewService(cfg config.CorpusConfig, table ontology.Table, logger logging.Logger, metrics *prometheus.PipelineMetrics) *Service {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Service{
		cfg:     cfg,
		table:   table,
		loader:  NewLoader(logger),
		logger:  logger.Named("unify"),
		metrics: metrics,
	}
}

// Run executes the pipeline over every configured split. Instances keep the
// file order of the span-based release so repeated runs produce identical
// output.
func (s *Service) Run(ctx context.Context) (*RunResult, error) {
	policy, err := annotation.ParseSpanPolicy(s.cfg.SpanPolicy)
	if err != nil {
		return nil, err
	}

	started := time.Now()
	report := RunReport{
		RunID:      uuid.NewString(),
		StartedAt:  started,
		SpanPolicy: policy.String(),
	}

	var all []corpus.UnifiedInstance
	for _, split := range s.cfg.Splits {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeInternal, "pipeline canceled")
		}

		instances, sr, err := s.runSplit(ctx, split, policy)
		if err != nil {
			return nil, err
		}
		all = append(all, instances...)
		report.Splits = append(report.Splits, sr)
		report.TotalUnified += sr.Unified
		report.TotalDiffering += sr.Differing
		report.TotalSkipped += sr.Skipped
		report.TotalDropped += sr.DroppedFragments
	}

	report.Duration = time.Since(started)
	if s.metrics != nil {
		s.metrics.RunDuration.WithLabelValues("run").Observe(report.Duration.Seconds())
	}

	s.logger.Info("pipeline run complete",
		logging.String("run_id", report.RunID),
		logging.Int("unified", report.TotalUnified),
		logging.Int("differing", report.TotalDiffering),
		logging.Int("skipped", report.TotalSkipped),
		logging.Int("dropped_fragments", report.TotalDropped),
		logging.Duration("duration", report.Duration),
	)
	return &RunResult{Instances: all, Report: report}, nil
}

func (s *Service) runSplit(ctx context.Context, split string, policy annotation.SpanPolicy) ([]corpus.UnifiedInstance, SplitReport, error) {
	sr := SplitReport{Split: split}

	rawA, err := s.loader.LoadSplit(s.cfg.VersionADir, split)
	if err != nil {
		return nil, sr, err
	}
	rawB, err := s.loader.LoadSplit(s.cfg.VersionBDir, split)
	if err != nil {
		return nil, sr, err
	}

	byIDA, droppedA, err := s.normalizeAll(ctx, annotation.SchemaKindSpanBased, rawA, policy)
	if err != nil {
		return nil, sr, err
	}
	byIDB, droppedB, err := s.normalizeAll(ctx, annotation.SchemaKindTemplateBased, rawB, policy)
	if err != nil {
		return nil, sr, err
	}
	sr.DroppedFragments = droppedA + droppedB
	if s.metrics != nil && sr.DroppedFragments > 0 {
		s.metrics.AnnotationsDropped.WithLabelValues(split).Add(float64(sr.DroppedFragments))
	}

	assembler := corpus.Assembler{Table: s.table}
	var unified []corpus.UnifiedInstance

	for _, raw := range rawA {
		inst, err := assembler.Assemble(raw.InstanceID, raw.Frame, byIDA[raw.InstanceID], byIDB[raw.InstanceID])
		if corpus.IsSkip(err) {
			sr.Skipped++
			s.logger.Warn("instance has no counterpart in second release",
				logging.String("split", split),
				logging.String("instance_id", raw.InstanceID),
			)
			continue
		}
		if err != nil {
			return nil, sr, err
		}
		inst.Split = split
		if inst.HasDifferences {
			sr.Differing++
		}
		unified = append(unified, *inst)
		sr.Unified++
	}

	// Instances present only in the second release never pair either.
	for _, raw := range rawB {
		if _, ok := byIDA[raw.InstanceID]; !ok {
			sr.Skipped++
			s.logger.Warn("instance has no counterpart in first release",
				logging.String("split", split),
				logging.String("instance_id", raw.InstanceID),
			)
		}
	}

	if s.metrics != nil {
		s.metrics.InstancesProcessed.WithLabelValues(split, "unified").Add(float64(sr.Unified))
		s.metrics.InstancesProcessed.WithLabelValues(split, "differing").Add(float64(sr.Differing))
		if sr.Skipped > 0 {
			s.metrics.InstancesSkipped.WithLabelValues(split).Add(float64(sr.Skipped))
		}
	}

	s.logger.Info("split processed",
		logging.String("split", split),
		logging.Int("unified", sr.Unified),
		logging.Int("differing", sr.Differing),
		logging.Int("skipped", sr.Skipped),
		logging.Int("dropped_fragments", sr.DroppedFragments),
	)
	return unified, sr, nil
}

type normResult struct {
	id      string
	inst    corpus.SchemaInstance
	dropped int
	err     error
}

// normalizeAll fans raw instances out over a bounded worker pool.
// Normalization of distinct instances shares no mutable state, so ordering of
// results does not matter; the caller re-keys by instance ID.
func (s *Service) normalizeAll(ctx context.Context, kind annotation.SchemaKind, raws []corpus.RawInstance, policy annotation.SpanPolicy) (map[string]*corpus.SchemaInstance, int, error) {
	workers := s.cfg.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(raws) {
		workers = len(raws)
	}
	if len(raws) == 0 {
		return map[string]*corpus.SchemaInstance{}, 0, nil
	}

	jobs := make(chan corpus.RawInstance)
	results := make(chan normResult, len(raws))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for raw := range jobs {
				inst, dropped, err := corpus.NormalizeInstance(kind, raw, s.table, policy)
				results <- normResult{id: raw.InstanceID, inst: inst, dropped: dropped, err: err}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, raw := range raws {
			select {
			case jobs <- raw:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	byID := make(map[string]*corpus.SchemaInstance, len(raws))
	dropped := 0
	var firstErr error
	for res := range results {
		if res.err != nil {
			if firstErr == nil {
				firstErr = res.err
			}
			continue
		}
		inst := res.inst
		byID[res.id] = &inst
		dropped += res.dropped
	}
	if firstErr != nil {
		return nil, 0, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, 0, errors.Wrap(err, errors.ErrCodeInternal, "normalization canceled")
	}
	return byID, dropped, nil
}
