package annotation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ann(role, text string, start, end int) Annotation {
	return Annotation{
		Text:     text,
		CharSpan: CharSpan{Start: start, End: end},
		Role:     role,
		Label:    role,
	}
}

func trig(text string, start, end int) *Trigger {
	return &Trigger{Text: text, StartChar: start, EndChar: end, Frame: "F"}
}

func TestHasDifferences_IdenticalDocuments(t *testing.T) {
	a := AnnotatedDocument{
		Text:        "x",
		Annotations: []Annotation{ann("Agent", "dog", 0, 2), ann("Victim", "cat", 4, 6)},
		Trigger:     trig("bit", 8, 10),
	}
	b := AnnotatedDocument{
		Text:        "x",
		Annotations: []Annotation{ann("Agent", "dog", 0, 2), ann("Victim", "cat", 4, 6)},
		Trigger:     trig("bit", 8, 10),
	}

	assert.False(t, HasDifferences(a, b))
}

func TestHasDifferences_OrderIrrelevant(t *testing.T) {
	a := AnnotatedDocument{
		Annotations: []Annotation{ann("Agent", "dog", 0, 2), ann("Victim", "cat", 4, 6)},
	}
	b := AnnotatedDocument{
		Annotations: []Annotation{ann("Victim", "cat", 4, 6), ann("Agent", "dog", 0, 2)},
	}

	assert.False(t, HasDifferences(a, b))
}

func TestHasDifferences_LabelAndDefinitionIgnored(t *testing.T) {
	x := ann("Agent", "dog", 0, 2)
	y := x
	y.Label = "Animal"
	y.RoleDefinition = "the attacking entity"

	a := AnnotatedDocument{Annotations: []Annotation{x}}
	b := AnnotatedDocument{Annotations: []Annotation{y}}

	assert.False(t, HasDifferences(a, b))
}

func TestHasDifferences_MissingAnnotation(t *testing.T) {
	a := AnnotatedDocument{
		Annotations: []Annotation{ann("Agent", "dog", 0, 2), ann("Victim", "cat", 4, 6)},
	}
	b := AnnotatedDocument{
		Annotations: []Annotation{ann("Agent", "dog", 0, 2)},
	}

	assert.True(t, HasDifferences(a, b))
}

func TestHasDifferences_SpanMismatch(t *testing.T) {
	a := AnnotatedDocument{Annotations: []Annotation{ann("Agent", "dog", 0, 2)}}
	b := AnnotatedDocument{Annotations: []Annotation{ann("Agent", "dog", 1, 3)}}

	assert.True(t, HasDifferences(a, b))
}

func TestHasDifferences_TriggerPresenceMismatch(t *testing.T) {
	a := AnnotatedDocument{Trigger: trig("bit", 8, 10)}
	b := AnnotatedDocument{}

	assert.True(t, HasDifferences(a, b))
	assert.True(t, HasDifferences(b, a))
}

func TestHasDifferences_TriggerFieldMismatch(t *testing.T) {
	base := AnnotatedDocument{Trigger: trig("bit", 8, 10)}

	tests := []struct {
		name  string
		other *Trigger
		want  bool
	}{
		{"same", trig("bit", 8, 10), false},
		{"text", trig("bites", 8, 10), true},
		{"start", trig("bit", 7, 10), true},
		{"end", trig("bit", 8, 11), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			other := AnnotatedDocument{Trigger: tt.other}
			assert.Equal(t, tt.want, HasDifferences(base, other))
		})
	}
}

func TestHasDifferences_TriggerTokenOffsetsNotCompared(t *testing.T) {
	a := AnnotatedDocument{Trigger: &Trigger{Text: "bit", StartChar: 8, EndChar: 10, StartToken: 2, EndToken: 2}}
	b := AnnotatedDocument{Trigger: &Trigger{Text: "bit", StartChar: 8, EndChar: 10, StartToken: 5, EndToken: 5}}

	assert.False(t, HasDifferences(a, b))
}

func TestHasDifferences_Symmetric(t *testing.T) {
	docs := []AnnotatedDocument{
		{},
		{Annotations: []Annotation{ann("Agent", "dog", 0, 2)}},
		{Annotations: []Annotation{ann("Agent", "dog", 0, 2)}, Trigger: trig("bit", 8, 10)},
		{Trigger: trig("ran", 4, 6)},
		{Annotations: []Annotation{ann("Victim", "cat", 4, 6), ann("Agent", "dog", 0, 2)}},
	}

	for i := range docs {
		for j := range docs {
			assert.Equal(t, HasDifferences(docs[i], docs[j]), HasDifferences(docs[j], docs[i]),
				"asymmetric for pair (%d, %d)", i, j)
		}
	}
}

func TestHasDifferences_DuplicateAnnotationsCollapse(t *testing.T) {
	// Set semantics: a duplicated identity is indistinguishable from a single
	// occurrence.
	a := AnnotatedDocument{
		Annotations: []Annotation{ann("Agent", "dog", 0, 2), ann("Agent", "dog", 0, 2)},
	}
	b := AnnotatedDocument{
		Annotations: []Annotation{ann("Agent", "dog", 0, 2)},
	}

	assert.False(t, HasDifferences(a, b))
}

func TestAnnotationKey(t *testing.T) {
	a := Annotation{Text: "dog", CharSpan: CharSpan{Start: 0, End: 2}, Role: "Agent", Label: "Animal", RoleDefinition: "def"}
	assert.Equal(t, Key{Role: "Agent", Text: "dog", Span: CharSpan{Start: 0, End: 2}}, a.Key())
}
