package annotation

import "encoding/json"

// SchemaKind tags which release encoding a raw document uses.  The two
// encodings are structurally incompatible; all call sites dispatch on the
// tag rather than probing for keys.
type SchemaKind uint8

const (
	SchemaKindUnknown SchemaKind = 0

	// SchemaKindSpanBased is the first-release encoding: per-role lists of
	// flat span tuples carrying text, character offsets, token offsets, and
	// an optional label.
	SchemaKindSpanBased SchemaKind = 1

	// SchemaKindTemplateBased is the second-release encoding: per-role
	// templates whose arguments carry token offsets and their own token
	// slices; character offsets must be reconstructed.
	SchemaKindTemplateBased SchemaKind = 2
)

func (k SchemaKind) String() string {
	switch k {
	case SchemaKindSpanBased:
		return "span-based"
	case SchemaKindTemplateBased:
		return "template-based"
	default:
		return "unknown"
	}
}

func (k SchemaKind) IsValid() bool {
	return k == SchemaKindSpanBased || k == SchemaKindTemplateBased
}

// StructuralSpansKey is bookkeeping metadata that appears alongside roles in
// span-based role maps.  It is never a role and must be skipped.
const StructuralSpansKey = "role-spans-indices-in-all-spans"

// SpanTuple is one span in the span-based encoding:
// [text, start_char, end_char, start_token, end_token, label].
// The release files carry these as heterogeneous JSON arrays, so elements are
// accessed through the coercing helpers below.
type SpanTuple []interface{}

// stringAt returns element i as a string, or "" when absent or non-string.
func (t SpanTuple) stringAt(i int) string {
	if i >= len(t) {
		return ""
	}
	s, _ := t[i].(string)
	return s
}

// intAt returns element i as an int.  JSON decoding yields float64 for all
// numbers; integer-typed values are accepted as well for hand-built tuples.
func (t SpanTuple) intAt(i int) (int, bool) {
	if i >= len(t) {
		return 0, false
	}
	switch v := t[i].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	case int64:
		return int(v), true
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, false
		}
		return int(n), true
	default:
		return 0, false
	}
}

// RawArgument is one argument of a template role filler.  Token indices are
// pointers so that absent fields are distinguishable from index zero.
type RawArgument struct {
	StartToken *int     `json:"start-token"`
	EndToken   *int     `json:"end-token"`
	Tokens     []string `json:"tokens"`
}

// RawRoleFiller is the per-role value in the template-based encoding.
type RawRoleFiller struct {
	Arguments []RawArgument `json:"arguments"`
}

// RawTrigger is the trigger descriptor of the template-based encoding.
type RawTrigger struct {
	Frame      string   `json:"frame"`
	Tokens     []string `json:"tokens"`
	StartToken *int     `json:"start-token"`
	EndToken   *int     `json:"end-token"`
}

// empty reports whether the descriptor carries no usable content.
func (t *RawTrigger) empty() bool {
	return t == nil || (len(t.Tokens) == 0 && t.StartToken == nil && t.EndToken == nil)
}

// RawDocument is the union of both release encodings for a single document.
// Exactly one family of fields is populated depending on the SchemaKind the
// caller passes to Normalizer; the other family is ignored.
type RawDocument struct {
	// Shared: the document's token sequence.
	Tokens []string `json:"doctext-tok"`

	// Span-based encoding.
	DocText         string                 `json:"doctext"`
	RoleAnnotations map[string][]SpanTuple `json:"role_annotations"`
	TriggerSpan     SpanTuple              `json:"frame-trigger-span"`

	// Template-based encoding.
	RoleFillers map[string]RawRoleFiller `json:"role-fillers"`
	Trigger     *RawTrigger              `json:"trigger"`
}
