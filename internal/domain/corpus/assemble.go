package corpus

import (
	"github.com/veritext/frameunify/internal/domain/ontology"
	"github.com/veritext/frameunify/pkg/errors"
)

// Assembler pairs the two release views of an instance into a
// UnifiedInstance.  The ontology table is a read-only dependency, so a
// single Assembler may be shared by any number of workers.
type Assembler struct {
	Table ontology.Table
}

// Assemble builds the unified record for one instance.  Both release views
// are required: when either is nil the pairing is skipped with
// ErrCodeCounterpartMissing rather than producing a partial record.  Frames
// unknown to the ontology degrade to empty metadata.
func (a Assembler) Assemble(instanceID, frame string, versionA, versionB *SchemaInstance) (*UnifiedInstance, error) {
	if versionA == nil || versionB == nil {
		return nil, errors.New(errors.ErrCodeCounterpartMissing,
			"instance is missing a release counterpart").WithDetail("instance_id=" + instanceID)
	}

	unified := &UnifiedInstance{
		InstanceID:     instanceID,
		Frame:          frame,
		HasDifferences: InstancesDiffer(*versionA, *versionB),
		VersionA:       *versionA,
		VersionB:       *versionB,
	}

	if node, ok := a.Table.Lookup(frame); ok {
		unified.FrameDefinition = node.Definition
		unified.FrameAncestors = node.Ancestors
		unified.FrameDescendants = node.Descendants
	}

	return unified, nil
}

// IsSkip reports whether err is the non-fatal missing-counterpart signal.
func IsSkip(err error) bool {
	return errors.IsCode(err, errors.ErrCodeCounterpartMissing)
}
