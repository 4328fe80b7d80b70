package annotation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veritext/frameunify/pkg/errors"
)

func intp(i int) *int { return &i }

func spanBasedRaw() RawDocument {
	return RawDocument{
		DocText: "The dog bit the mailman yesterday",
		RoleAnnotations: map[string][]SpanTuple{
			"Agent": {
				{"The dog", float64(0), float64(6), float64(0), float64(1), "Animal"},
			},
			"Victim": {
				{"the mailman", float64(12), float64(22), float64(3), float64(4), ""},
			},
			StructuralSpansKey: {
				{float64(0), float64(1)},
			},
		},
		TriggerSpan: SpanTuple{"bit", float64(8), float64(10), float64(2), float64(2), nil},
	}
}

func TestNormalizer_SpanBased(t *testing.T) {
	var n Normalizer

	res, err := n.Document(SchemaKindSpanBased, spanBasedRaw(), "Attack", nil)
	require.NoError(t, err)
	doc := res.Document

	assert.Equal(t, "The dog bit the mailman yesterday", doc.Text)
	require.Len(t, doc.Annotations, 2)
	assert.Zero(t, res.Dropped)

	// Roles are emitted in lexical order.
	agent := doc.Annotations[0]
	assert.Equal(t, "Agent", agent.Role)
	assert.Equal(t, "The dog", agent.Text)
	assert.Equal(t, CharSpan{Start: 0, End: 6}, agent.CharSpan)
	assert.Equal(t, TokenSpan{Start: 0, End: 1}, agent.TokenSpan)
	assert.Equal(t, "Animal", agent.Label)

	// Empty label defaults to the role.
	victim := doc.Annotations[1]
	assert.Equal(t, "Victim", victim.Role)
	assert.Equal(t, "Victim", victim.Label)

	require.NotNil(t, doc.Trigger)
	assert.Equal(t, "bit", doc.Trigger.Text)
	assert.Equal(t, 8, doc.Trigger.StartChar)
	assert.Equal(t, 10, doc.Trigger.EndChar)
	assert.Equal(t, "Attack", doc.Trigger.Frame)
}

func TestNormalizer_SpanBased_DropsMalformedTuples(t *testing.T) {
	raw := RawDocument{
		DocText: "some text",
		RoleAnnotations: map[string][]SpanTuple{
			"Agent": {
				{"short", float64(0), float64(4)},                           // <6 elements
				{"bad", "x", float64(4), float64(0), float64(0), ""},        // non-numeric offset
				{"ok", float64(0), float64(1), float64(0), float64(0), ""},  // kept
			},
		},
	}

	var n Normalizer
	res, err := n.Document(SchemaKindSpanBased, raw, "F", nil)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Dropped)
	require.Len(t, res.Document.Annotations, 1)
	assert.Equal(t, "ok", res.Document.Annotations[0].Text)
	assert.Nil(t, res.Document.Trigger)
}

func TestNormalizer_RoleEnrichment(t *testing.T) {
	roleDefs := map[string]string{"Agent": "The attacking entity"}

	var n Normalizer
	res, err := n.Document(SchemaKindSpanBased, spanBasedRaw(), "Attack", roleDefs)
	require.NoError(t, err)

	assert.Equal(t, "The attacking entity", res.Document.Annotations[0].RoleDefinition)
	// Unmatched roles are left without the field.
	assert.Empty(t, res.Document.Annotations[1].RoleDefinition)

	// Enrichment is idempotent: re-normalizing with the same table produces
	// the same result.
	again, err := n.Document(SchemaKindSpanBased, spanBasedRaw(), "Attack", roleDefs)
	require.NoError(t, err)
	assert.Equal(t, res.Document, again.Document)
}

func templateBasedRaw() RawDocument {
	return RawDocument{
		Tokens: []string{"The", "dog", "bit", "the", "mailman"},
		RoleFillers: map[string]RawRoleFiller{
			"Agent": {Arguments: []RawArgument{
				{StartToken: intp(0), EndToken: intp(1), Tokens: []string{"The", "dog"}},
			}},
			"Victim": {Arguments: []RawArgument{
				{StartToken: intp(3), EndToken: intp(4), Tokens: []string{"the", "mailman"}},
			}},
		},
		Trigger: &RawTrigger{
			Frame:      "Attack",
			Tokens:     []string{"bit"},
			StartToken: intp(2),
			EndToken:   intp(2),
		},
	}
}

func TestNormalizer_TemplateBased(t *testing.T) {
	var n Normalizer

	res, err := n.Document(SchemaKindTemplateBased, templateBasedRaw(), "Attack", nil)
	require.NoError(t, err)
	doc := res.Document

	assert.Equal(t, "The dog bit the mailman", doc.Text)
	require.Len(t, doc.Annotations, 2)

	agent := doc.Annotations[0]
	assert.Equal(t, "The dog", agent.Text)
	assert.Equal(t, CharSpan{Start: 0, End: 6}, agent.CharSpan)
	assert.Equal(t, "Agent", agent.Label)

	// Spans are computed over the document sequence, not the argument tokens:
	// "the mailman" covers the final token, so the end offset is the last
	// character of the text.
	victim := doc.Annotations[1]
	assert.Equal(t, "the mailman", victim.Text)
	assert.Equal(t, CharSpan{Start: 12, End: 22}, victim.CharSpan)
	assert.Equal(t, "the mailman", doc.Text[12:23])

	require.NotNil(t, doc.Trigger)
	assert.Equal(t, "bit", doc.Trigger.Text)
	assert.Equal(t, 8, doc.Trigger.StartChar)
	assert.Equal(t, 10, doc.Trigger.EndChar)
	assert.Equal(t, 2, doc.Trigger.StartToken)
	assert.Equal(t, "Attack", doc.Trigger.Frame)
}

func TestNormalizer_TemplateBased_DropsArgumentsWithoutIndices(t *testing.T) {
	raw := RawDocument{
		Tokens: []string{"a", "b"},
		RoleFillers: map[string]RawRoleFiller{
			"Agent": {Arguments: []RawArgument{
				{Tokens: []string{"a"}},                 // both indices missing
				{StartToken: intp(0), Tokens: []string{"a"}}, // end missing
			}},
		},
	}

	var n Normalizer
	res, err := n.Document(SchemaKindTemplateBased, raw, "F", nil)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Dropped)
	assert.Empty(t, res.Document.Annotations)
}

func TestNormalizer_TemplateBased_StrictPropagatesBadSpan(t *testing.T) {
	raw := RawDocument{
		Tokens: []string{"a", "b"},
		RoleFillers: map[string]RawRoleFiller{
			"Agent": {Arguments: []RawArgument{
				{StartToken: intp(0), EndToken: intp(7), Tokens: []string{"a"}},
			}},
		},
	}

	n := Normalizer{Policy: SpanPolicyStrict}
	_, err := n.Document(SchemaKindTemplateBased, raw, "F", nil)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeSpanOutOfRange))

	// The fallback policy degrades instead.
	res, err := Normalizer{}.Document(SchemaKindTemplateBased, raw, "F", nil)
	require.NoError(t, err)
	require.Len(t, res.Document.Annotations, 1)
	assert.Equal(t, CharSpan{Start: 0, End: len("a b")}, res.Document.Annotations[0].CharSpan)
}

func TestNormalizer_TriggerAbsent(t *testing.T) {
	var n Normalizer

	// Span-based: missing or short tuple.
	trig, err := n.Trigger(SchemaKindSpanBased, RawDocument{}, "F")
	require.NoError(t, err)
	assert.Nil(t, trig)

	trig, err = n.Trigger(SchemaKindSpanBased, RawDocument{TriggerSpan: SpanTuple{"w", float64(0)}}, "F")
	require.NoError(t, err)
	assert.Nil(t, trig)

	// Template-based: nil or empty descriptor.
	trig, err = n.Trigger(SchemaKindTemplateBased, RawDocument{Tokens: []string{"a"}}, "F")
	require.NoError(t, err)
	assert.Nil(t, trig)

	trig, err = n.Trigger(SchemaKindTemplateBased, RawDocument{
		Tokens:  []string{"a"},
		Trigger: &RawTrigger{},
	}, "F")
	require.NoError(t, err)
	assert.Nil(t, trig)
}

func TestNormalizer_TemplateTrigger_FrameFallsBackToCaller(t *testing.T) {
	raw := RawDocument{
		Tokens:  []string{"bit"},
		Trigger: &RawTrigger{Tokens: []string{"bit"}, StartToken: intp(0), EndToken: intp(0)},
	}

	var n Normalizer
	trig, err := n.Trigger(SchemaKindTemplateBased, raw, "Attack")
	require.NoError(t, err)
	require.NotNil(t, trig)
	assert.Equal(t, "Attack", trig.Frame)
}

func TestNormalizer_UnknownSchemaKind(t *testing.T) {
	var n Normalizer

	_, err := n.Document(SchemaKindUnknown, RawDocument{}, "F", nil)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeUnknownSchema))

	_, err = n.Trigger(SchemaKind(42), RawDocument{}, "F")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeUnknownSchema))
}

func TestSchemaKind_String(t *testing.T) {
	assert.Equal(t, "span-based", SchemaKindSpanBased.String())
	assert.Equal(t, "template-based", SchemaKindTemplateBased.String())
	assert.Equal(t, "unknown", SchemaKindUnknown.String())
	assert.True(t, SchemaKindSpanBased.IsValid())
	assert.False(t, SchemaKindUnknown.IsValid())
}
