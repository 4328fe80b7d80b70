package annotation

import (
	"sort"
	"strings"

	"github.com/veritext/frameunify/pkg/errors"
)

// spanTupleMinLen is the minimum element count for a role span tuple; shorter
// tuples are malformed fragments and are dropped.
const spanTupleMinLen = 6

// triggerTupleMinLen is the minimum element count for a trigger span tuple.
const triggerTupleMinLen = 5

// Normalizer converts raw documents of either release encoding into canonical
// AnnotatedDocument records.  The zero value uses the legacy fallback span
// policy.  Normalizer is stateless and safe for concurrent use.
type Normalizer struct {
	Policy SpanPolicy
}

// Result carries a normalized document together with the number of malformed
// fragments that were dropped while producing it.
type Result struct {
	Document AnnotatedDocument
	Dropped  int
}

// Document normalizes one raw document.  roleDefs is the frame's role
// definition table used for enrichment; unmatched roles are left without a
// definition.  Enrichment is idempotent and order-independent.
//
// Malformed fragments (short tuples, arguments without token indices) are
// dropped and counted, never fatal.  Under SpanPolicyStrict an out-of-range
// token span aborts the document with ErrCodeSpanOutOfRange; under the
// default fallback policy it degrades to the whole-document span.
func (n Normalizer) Document(kind SchemaKind, raw RawDocument, frame string, roleDefs map[string]string) (Result, error) {
	var res Result
	var err error

	switch kind {
	case SchemaKindSpanBased:
		res, err = n.spanBasedDocument(raw)
	case SchemaKindTemplateBased:
		res, err = n.templateBasedDocument(raw)
	default:
		return Result{}, errors.Newf(errors.ErrCodeUnknownSchema,
			"cannot normalize document of schema kind %s", kind)
	}
	if err != nil {
		return Result{}, err
	}

	enrichRoles(res.Document.Annotations, roleDefs)

	trig, err := n.Trigger(kind, raw, frame)
	if err != nil {
		return Result{}, err
	}
	res.Document.Trigger = trig

	return res, nil
}

// spanBasedDocument converts the first-release encoding.  The document text
// is carried verbatim by the release file; character and token offsets are
// taken from the tuples as-is.
func (n Normalizer) spanBasedDocument(raw RawDocument) (Result, error) {
	doc := AnnotatedDocument{Text: raw.DocText}
	dropped := 0

	for _, role := range sortedRoles(raw.RoleAnnotations) {
		if role == StructuralSpansKey {
			continue
		}
		for _, tuple := range raw.RoleAnnotations[role] {
			ann, ok := spanTupleAnnotation(tuple, role)
			if !ok {
				dropped++
				continue
			}
			doc.Annotations = append(doc.Annotations, ann)
		}
	}

	return Result{Document: doc, Dropped: dropped}, nil
}

// spanTupleAnnotation decodes one span tuple.  Tuples shorter than six
// elements, or with non-numeric offset slots, are rejected.
func spanTupleAnnotation(tuple SpanTuple, role string) (Annotation, bool) {
	if len(tuple) < spanTupleMinLen {
		return Annotation{}, false
	}
	startChar, ok1 := tuple.intAt(1)
	endChar, ok2 := tuple.intAt(2)
	startTok, ok3 := tuple.intAt(3)
	endTok, ok4 := tuple.intAt(4)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return Annotation{}, false
	}

	label := tuple.stringAt(5)
	if label == "" {
		label = role
	}

	return Annotation{
		Text:      tuple.stringAt(0),
		CharSpan:  CharSpan{Start: startChar, End: endChar},
		TokenSpan: TokenSpan{Start: startTok, End: endTok},
		Role:      role,
		Label:     label,
	}, true
}

// templateBasedDocument converts the second-release encoding.  The document
// text is reconstructed from the token sequence, and argument character spans
// are computed over that same sequence — not over the argument's own tokens.
func (n Normalizer) templateBasedDocument(raw RawDocument) (Result, error) {
	seq := NewTokenSequence(raw.Tokens)
	doc := AnnotatedDocument{Text: seq.Text()}
	dropped := 0

	for _, role := range sortedRoles(raw.RoleFillers) {
		for _, arg := range raw.RoleFillers[role].Arguments {
			if arg.StartToken == nil || arg.EndToken == nil {
				dropped++
				continue
			}
			ts := TokenSpan{Start: *arg.StartToken, End: *arg.EndToken}
			cs, err := seq.CharSpan(ts, n.Policy)
			if err != nil {
				return Result{}, err
			}
			doc.Annotations = append(doc.Annotations, Annotation{
				Text:      strings.Join(arg.Tokens, " "),
				CharSpan:  cs,
				TokenSpan: ts,
				Role:      role,
				Label:     role,
			})
		}
	}

	return Result{Document: doc, Dropped: dropped}, nil
}

// Trigger extracts the frame trigger from a raw document, or nil when none is
// annotated.  The span-based encoding carries a pre-computed tuple; the
// template-based encoding carries a descriptor whose character offsets must
// be reconstructed over the document's token sequence.
func (n Normalizer) Trigger(kind SchemaKind, raw RawDocument, frame string) (*Trigger, error) {
	switch kind {
	case SchemaKindSpanBased:
		return spanTupleTrigger(raw.TriggerSpan, frame), nil
	case SchemaKindTemplateBased:
		return n.templateTrigger(raw, frame)
	default:
		return nil, errors.Newf(errors.ErrCodeUnknownSchema,
			"cannot extract trigger for schema kind %s", kind)
	}
}

// spanTupleTrigger decodes the designated trigger tuple:
// [word, start_char, end_char, start_token, end_token, ...].
// Missing or short tuples mean no trigger was annotated.
func spanTupleTrigger(tuple SpanTuple, frame string) *Trigger {
	if len(tuple) < triggerTupleMinLen {
		return nil
	}
	startChar, ok1 := tuple.intAt(1)
	endChar, ok2 := tuple.intAt(2)
	startTok, ok3 := tuple.intAt(3)
	endTok, ok4 := tuple.intAt(4)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return nil
	}
	return &Trigger{
		Text:       tuple.stringAt(0),
		StartChar:  startChar,
		EndChar:    endChar,
		StartToken: startTok,
		EndToken:   endTok,
		Frame:      frame,
	}
}

// templateTrigger reconstructs the trigger from a descriptor.  An absent or
// empty descriptor, or one missing either token index, yields no trigger.
func (n Normalizer) templateTrigger(raw RawDocument, frame string) (*Trigger, error) {
	desc := raw.Trigger
	if desc.empty() || desc.StartToken == nil || desc.EndToken == nil {
		return nil, nil
	}

	seq := NewTokenSequence(raw.Tokens)
	cs, err := seq.CharSpan(TokenSpan{Start: *desc.StartToken, End: *desc.EndToken}, n.Policy)
	if err != nil {
		return nil, err
	}

	name := desc.Frame
	if name == "" {
		name = frame
	}

	return &Trigger{
		Text:       strings.Join(desc.Tokens, " "),
		StartChar:  cs.Start,
		EndChar:    cs.End,
		StartToken: *desc.StartToken,
		EndToken:   *desc.EndToken,
		Frame:      name,
	}, nil
}

// enrichRoles attaches role definitions in place for every annotation whose
// role exists in the table.
func enrichRoles(anns []Annotation, roleDefs map[string]string) {
	if len(roleDefs) == 0 {
		return
	}
	for i := range anns {
		if def, ok := roleDefs[anns[i].Role]; ok {
			anns[i].RoleDefinition = def
		}
	}
}

// sortedRoles returns the map's role names in lexical order.  Output order of
// annotations is not semantically meaningful, but deterministic emission
// keeps chunk files and tests stable.
func sortedRoles[V any](m map[string]V) []string {
	roles := make([]string, 0, len(m))
	for role := range m {
		roles = append(roles, role)
	}
	sort.Strings(roles)
	return roles
}
