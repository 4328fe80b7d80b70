package annotation

// Annotation is the canonical representation of one role filler, regardless
// of which release encoding it came from.
type Annotation struct {
	Text      string    `json:"text"`
	CharSpan  CharSpan  `json:"char_span"`
	TokenSpan TokenSpan `json:"token_span"`
	Role      string    `json:"role"`

	// Label defaults to Role when the source carries no explicit label.
	Label string `json:"label"`

	// RoleDefinition is an optional enrichment looked up from the frame's
	// role table; absent when the role is unknown to the ontology.
	RoleDefinition string `json:"role_definition,omitempty"`
}

// Trigger is the span of text that evokes the frame in a document.
type Trigger struct {
	Text       string `json:"text"`
	StartChar  int    `json:"start_char"`
	EndChar    int    `json:"end_char"`
	StartToken int    `json:"start_token"`
	EndToken   int    `json:"end_token"`
	Frame      string `json:"frame"`
}

// AnnotatedDocument is one normalized document: its text, its role
// annotations in source order, and the frame trigger when one was detected.
// Annotation order is not semantically significant; disagreement detection
// is set-based.
type AnnotatedDocument struct {
	Text        string       `json:"text"`
	Annotations []Annotation `json:"annotations"`
	Trigger     *Trigger     `json:"trigger,omitempty"`
}

// Key is the value identity of an annotation for disagreement detection:
// role, surface text, and character span.  Label and role definition are
// presentation metadata and deliberately excluded.
type Key struct {
	Role string
	Text string
	Span CharSpan
}

// Key returns the annotation's comparison identity.
func (a Annotation) Key() Key {
	return Key{Role: a.Role, Text: a.Text, Span: a.CharSpan}
}

// keySet collapses a document's annotations into their unordered identity set.
func keySet(doc AnnotatedDocument) map[Key]struct{} {
	set := make(map[Key]struct{}, len(doc.Annotations))
	for _, a := range doc.Annotations {
		set[a.Key()] = struct{}{}
	}
	return set
}
