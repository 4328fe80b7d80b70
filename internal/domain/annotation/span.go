package annotation

import (
	"encoding/json"
	"fmt"
)

// CharSpan is a contiguous range of character offsets into a document's text,
// inclusive on both ends.
type CharSpan struct {
	Start int
	End   int
}

// TokenSpan is a contiguous range of token indices into a document's token
// sequence, inclusive on both ends.
type TokenSpan struct {
	Start int
	End   int
}

// Contains reports whether the offset lies within the span.
func (s CharSpan) Contains(offset int) bool {
	return offset >= s.Start && offset <= s.End
}

// Len returns the number of characters covered by the span.
func (s CharSpan) Len() int {
	return s.End - s.Start + 1
}

func (s CharSpan) String() string {
	return fmt.Sprintf("[%d,%d]", s.Start, s.End)
}

func (s TokenSpan) String() string {
	return fmt.Sprintf("[%d,%d]", s.Start, s.End)
}

// Spans interchange as two-element JSON arrays, matching the release files.

// MarshalJSON encodes the span as [start, end].
func (s CharSpan) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{s.Start, s.End})
}

// UnmarshalJSON decodes a [start, end] array.
func (s *CharSpan) UnmarshalJSON(data []byte) error {
	var pair [2]int
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("annotation: char span must be a [start, end] pair: %w", err)
	}
	s.Start, s.End = pair[0], pair[1]
	return nil
}

// MarshalJSON encodes the span as [start, end].
func (s TokenSpan) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{s.Start, s.End})
}

// UnmarshalJSON decodes a [start, end] array.
func (s *TokenSpan) UnmarshalJSON(data []byte) error {
	var pair [2]int
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("annotation: token span must be a [start, end] pair: %w", err)
	}
	s.Start, s.End = pair[0], pair[1]
	return nil
}
