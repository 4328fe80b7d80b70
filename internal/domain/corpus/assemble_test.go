package corpus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veritext/frameunify/internal/domain/annotation"
	"github.com/veritext/frameunify/internal/domain/ontology"
	"github.com/veritext/frameunify/pkg/errors"
)

func intp(i int) *int { return &i }

func testTable() ontology.Table {
	return ontology.Table{
		"Attack": {
			Name:        "Attack",
			Definition:  "An agent attacks a victim.",
			Ancestors:   []string{"Event"},
			Descendants: []string{"Besieging"},
			AllRoles:    map[string]string{"Assailant": "The attacker."},
		},
	}
}

func docWith(annotations ...annotation.Annotation) annotation.AnnotatedDocument {
	return annotation.AnnotatedDocument{Text: "t", Annotations: annotations}
}

func TestAssemble_Success(t *testing.T) {
	a := Assembler{Table: testTable()}

	va := &SchemaInstance{Report: docWith()}
	vb := &SchemaInstance{Report: docWith()}

	got, err := a.Assemble("EN-1-frame-Attack", "Attack", va, vb)
	require.NoError(t, err)

	assert.Equal(t, "EN-1-frame-Attack", got.InstanceID)
	assert.Equal(t, "Attack", got.Frame)
	assert.Equal(t, "An agent attacks a victim.", got.FrameDefinition)
	assert.Equal(t, []string{"Event"}, got.FrameAncestors)
	assert.Equal(t, []string{"Besieging"}, got.FrameDescendants)
	assert.False(t, got.HasDifferences)
	assert.Equal(t, *va, got.VersionA)
	assert.Equal(t, *vb, got.VersionB)
}

func TestAssemble_UnknownFrameDegradesToEmptyMetadata(t *testing.T) {
	a := Assembler{Table: testTable()}

	got, err := a.Assemble("id", "Nonexistent", &SchemaInstance{}, &SchemaInstance{})
	require.NoError(t, err)
	assert.Empty(t, got.FrameDefinition)
	assert.Empty(t, got.FrameAncestors)
	assert.Empty(t, got.FrameDescendants)
}

func TestAssemble_MissingCounterpartSkips(t *testing.T) {
	a := Assembler{Table: testTable()}

	_, err := a.Assemble("id", "Attack", &SchemaInstance{}, nil)
	require.Error(t, err)
	assert.True(t, IsSkip(err))
	assert.True(t, errors.IsCode(err, errors.ErrCodeCounterpartMissing))

	_, err = a.Assemble("id", "Attack", nil, &SchemaInstance{})
	assert.True(t, IsSkip(err))
}

func TestIsSkip_OtherErrors(t *testing.T) {
	assert.False(t, IsSkip(nil))
	assert.False(t, IsSkip(errors.Internal("boom")))
}

func TestAssemble_DifferenceDetectionAcrossDocuments(t *testing.T) {
	a := Assembler{Table: testTable()}

	ann1 := annotation.Annotation{Text: "dog", Role: "Assailant", CharSpan: annotation.CharSpan{Start: 0, End: 2}}

	// Disagreement confined to the source document still flags the instance.
	va := &SchemaInstance{Report: docWith(), Source: docWith(ann1)}
	vb := &SchemaInstance{Report: docWith(), Source: docWith()}

	got, err := a.Assemble("id", "Attack", va, vb)
	require.NoError(t, err)
	assert.True(t, got.HasDifferences)

	// Identical views carry no flag.
	got, err = a.Assemble("id", "Attack", va, va)
	require.NoError(t, err)
	assert.False(t, got.HasDifferences)
}

func TestNormalizeInstance_EnrichesFromOntology(t *testing.T) {
	raw := RawInstance{
		InstanceID: "EN-1-frame-Attack",
		Frame:      "Attack",
		Report: annotation.RawDocument{
			DocText: "The dog bit him",
			RoleAnnotations: map[string][]annotation.SpanTuple{
				"Assailant": {{"The dog", float64(0), float64(6), float64(0), float64(1), ""}},
			},
		},
		Source: annotation.RawDocument{DocText: "irrelevant"},
	}

	inst, dropped, err := NormalizeInstance(annotation.SchemaKindSpanBased, raw, testTable(), annotation.SpanPolicyFallback)
	require.NoError(t, err)
	assert.Zero(t, dropped)
	require.Len(t, inst.Report.Annotations, 1)
	assert.Equal(t, "The attacker.", inst.Report.Annotations[0].RoleDefinition)
}

func TestNormalizeInstance_CountsDropsAcrossDocuments(t *testing.T) {
	raw := RawInstance{
		Frame: "Attack",
		Report: annotation.RawDocument{
			RoleAnnotations: map[string][]annotation.SpanTuple{"Assailant": {{"too", "short"}}},
		},
		Source: annotation.RawDocument{
			RoleAnnotations: map[string][]annotation.SpanTuple{"Victim": {{"x"}}},
		},
	}

	_, dropped, err := NormalizeInstance(annotation.SchemaKindSpanBased, raw, testTable(), annotation.SpanPolicyFallback)
	require.NoError(t, err)
	assert.Equal(t, 2, dropped)
}

func TestNormalizeInstance_TemplateBased(t *testing.T) {
	raw := RawInstance{
		Frame: "Attack",
		Report: annotation.RawDocument{
			Tokens: []string{"The", "dog", "bit", "him"},
			RoleFillers: map[string]annotation.RawRoleFiller{
				"Assailant": {Arguments: []annotation.RawArgument{
					{StartToken: intp(0), EndToken: intp(1), Tokens: []string{"The", "dog"}},
				}},
			},
			Trigger: &annotation.RawTrigger{Tokens: []string{"bit"}, StartToken: intp(2), EndToken: intp(2)},
		},
		Source: annotation.RawDocument{Tokens: []string{"nothing", "here"}},
	}

	inst, _, err := NormalizeInstance(annotation.SchemaKindTemplateBased, raw, testTable(), annotation.SpanPolicyFallback)
	require.NoError(t, err)
	assert.Equal(t, "The dog bit him", inst.Report.Text)
	require.NotNil(t, inst.Report.Trigger)
	assert.Equal(t, "Attack", inst.Report.Trigger.Frame)
	require.Len(t, inst.Report.Annotations, 1)
	assert.Equal(t, "The attacker.", inst.Report.Annotations[0].RoleDefinition)
	assert.Nil(t, inst.Source.Trigger)
}

func TestNormalizeInstance_StrictPolicyPropagates(t *testing.T) {
	raw := RawInstance{
		Frame: "Attack",
		Report: annotation.RawDocument{
			Tokens: []string{"a"},
			RoleFillers: map[string]annotation.RawRoleFiller{
				"Assailant": {Arguments: []annotation.RawArgument{
					{StartToken: intp(0), EndToken: intp(5), Tokens: []string{"a"}},
				}},
			},
		},
	}

	_, _, err := NormalizeInstance(annotation.SchemaKindTemplateBased, raw, testTable(), annotation.SpanPolicyStrict)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeSpanOutOfRange))
}
