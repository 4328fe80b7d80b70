// Package corpus composes normalized annotation documents and ontology
// metadata into the unified per-instance records that downstream writers and
// the browse API consume.
package corpus

import (
	"github.com/veritext/frameunify/internal/domain/annotation"
	"github.com/veritext/frameunify/internal/domain/ontology"
)

// RawInstance is one per-instance dictionary as read from a release file,
// in either encoding.  Split is assigned by the loader, not carried by the
// instance itself.
type RawInstance struct {
	InstanceID string                   `json:"instance_id"`
	Frame      string                   `json:"frame"`
	FrameGloss string                   `json:"frame_gloss,omitempty"`
	Report     annotation.RawDocument   `json:"report_dict"`
	Source     annotation.RawDocument   `json:"source_dict"`
	Split      string                   `json:"-"`
}

// SchemaInstance is one release's normalized view of an instance: the report
// document and its underlying source document.
type SchemaInstance struct {
	Report annotation.AnnotatedDocument `json:"report"`
	Source annotation.AnnotatedDocument `json:"source"`
}

// UnifiedInstance is the final record for one instance: both release views,
// ontology metadata for the frame, and the derived disagreement flag.
// It is constructed once by Assembler.Assemble and never mutated afterwards.
type UnifiedInstance struct {
	InstanceID       string         `json:"instance_id"`
	Frame            string         `json:"frame"`
	FrameDefinition  string         `json:"frame_definition"`
	FrameAncestors   []string       `json:"frame_ancestors"`
	FrameDescendants []string       `json:"frame_descendants"`
	HasDifferences   bool           `json:"has_differences"`
	VersionA         SchemaInstance `json:"version_a"`
	VersionB         SchemaInstance `json:"version_b"`
	Split            string         `json:"split,omitempty"`
}

// NormalizeInstance converts a raw instance into a SchemaInstance, enriching
// annotations with role definitions from the frame's ontology entry.  The
// returned count is the number of malformed fragments dropped across both
// documents.
func NormalizeInstance(kind annotation.SchemaKind, raw RawInstance, table ontology.Table, policy annotation.SpanPolicy) (SchemaInstance, int, error) {
	n := annotation.Normalizer{Policy: policy}
	roleDefs := table.RoleDefinitions(raw.Frame)

	report, err := n.Document(kind, raw.Report, raw.Frame, roleDefs)
	if err != nil {
		return SchemaInstance{}, 0, err
	}
	source, err := n.Document(kind, raw.Source, raw.Frame, roleDefs)
	if err != nil {
		return SchemaInstance{}, 0, err
	}

	return SchemaInstance{
		Report: report.Document,
		Source: source.Document,
	}, report.Dropped + source.Dropped, nil
}

// InstancesDiffer reports whether two release views of the same instance
// disagree semantically in either their report or their source document.
func InstancesDiffer(a, b SchemaInstance) bool {
	return annotation.HasDifferences(a.Report, b.Report) ||
		annotation.HasDifferences(a.Source, b.Source)
}
