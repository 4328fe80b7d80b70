// Package annotation normalizes the two incompatible release encodings of the
// frame-annotation corpus into one canonical document representation, and
// detects semantic disagreement between the two releases of an instance.
package annotation

import (
	"strings"

	"github.com/veritext/frameunify/pkg/errors"
)

// SpanPolicy selects how token-to-character conversion treats token indices
// that fall outside the document's token sequence.
type SpanPolicy uint8

const (
	// SpanPolicyFallback degrades an out-of-range span to the whole document:
	// start_char 0 and end_char len(text).  This mirrors the legacy pipeline;
	// note the end offset sits one past the inclusive range, so callers see a
	// span they could never obtain from valid input.
	SpanPolicyFallback SpanPolicy = iota

	// SpanPolicyStrict rejects out-of-range spans with ErrCodeSpanOutOfRange
	// instead of degrading.
	SpanPolicyStrict
)

func (p SpanPolicy) String() string {
	switch p {
	case SpanPolicyFallback:
		return "fallback"
	case SpanPolicyStrict:
		return "strict"
	default:
		return "unknown"
	}
}

func (p SpanPolicy) IsValid() bool {
	return p == SpanPolicyFallback || p == SpanPolicyStrict
}

// ParseSpanPolicy converts a configuration string into a SpanPolicy.
func ParseSpanPolicy(s string) (SpanPolicy, error) {
	switch s {
	case "", "fallback":
		return SpanPolicyFallback, nil
	case "strict":
		return SpanPolicyStrict, nil
	default:
		return SpanPolicyFallback, errors.Newf(errors.ErrCodeValidation,
			"span policy %q is invalid; expected fallback|strict", s)
	}
}

// TokenSequence reconstructs character offsets for a tokenized document whose
// text is the tokens joined by single ASCII spaces.  It is immutable after
// construction and safe for concurrent readers.
type TokenSequence struct {
	tokens  []string
	offsets []int
	text    string
}

// NewTokenSequence builds the reconstructed text and per-token start offsets
// for tokens.  An empty or nil sequence yields empty text and no offsets.
// offset[i] is the sum of the lengths of tokens[0..i-1] plus one joining
// space per preceding token.
func NewTokenSequence(tokens []string) *TokenSequence {
	s := &TokenSequence{
		tokens:  tokens,
		offsets: make([]int, len(tokens)),
		text:    strings.Join(tokens, " "),
	}
	pos := 0
	for i, tok := range tokens {
		s.offsets[i] = pos
		pos += len(tok) + 1
	}
	return s
}

// Len returns the number of tokens in the sequence.
func (s *TokenSequence) Len() int { return len(s.tokens) }

// Text returns the reconstructed document text.
func (s *TokenSequence) Text() string { return s.text }

// Offset returns the start character offset of token i.  The index must be
// in range; use CharSpan for tolerant conversion.
func (s *TokenSequence) Offset(i int) int { return s.offsets[i] }

// Token returns token i.
func (s *TokenSequence) Token(i int) string { return s.tokens[i] }

// inRange reports whether ts satisfies 0 <= start <= end < len(tokens).
func (s *TokenSequence) inRange(ts TokenSpan) bool {
	return ts.Start >= 0 && ts.Start <= ts.End && ts.End < len(s.tokens)
}

// CharSpan converts an inclusive token span into an inclusive character span
// over the reconstructed text.  For the final token the end offset is the
// token's last character; otherwise it is two columns before the next token's
// start, which lands on the last character before the joining space.
//
// Out-of-range input is handled per policy: SpanPolicyFallback returns the
// degraded whole-document span, SpanPolicyStrict returns ErrCodeSpanOutOfRange.
func (s *TokenSequence) CharSpan(ts TokenSpan, policy SpanPolicy) (CharSpan, error) {
	if !s.inRange(ts) {
		if policy == SpanPolicyStrict {
			return CharSpan{}, errors.Newf(errors.ErrCodeSpanOutOfRange,
				"token span %s outside sequence of %d tokens", ts, len(s.tokens))
		}
		return CharSpan{Start: 0, End: len(s.text)}, nil
	}

	start := s.offsets[ts.Start]
	var end int
	if ts.End == len(s.tokens)-1 {
		end = s.offsets[ts.End] + len(s.tokens[ts.End]) - 1
	} else {
		end = s.offsets[ts.End+1] - 2
	}
	return CharSpan{Start: start, End: end}, nil
}

// Slice returns the text covered by an inclusive token span, joined by single
// spaces.  Out-of-range input follows the same policy as CharSpan.
func (s *TokenSequence) Slice(ts TokenSpan, policy SpanPolicy) (string, error) {
	if !s.inRange(ts) {
		if policy == SpanPolicyStrict {
			return "", errors.Newf(errors.ErrCodeSpanOutOfRange,
				"token span %s outside sequence of %d tokens", ts, len(s.tokens))
		}
		return s.text, nil
	}
	return strings.Join(s.tokens[ts.Start:ts.End+1], " "), nil
}
