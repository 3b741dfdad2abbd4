// Package literal represents literal byte sequences extracted from a
// pattern and implements vectorized literal search over a haystack.
// A Literal is one concrete byte string that may appear in a
// match; a Seq groups the alternative literals an alternation of literal
// branches produces, so the prefilter and Aho-Corasick wiring can treat
// single-literal and multi-literal patterns uniformly.
package literal

import "bytes"

// Literal is a concrete byte sequence extracted from a pattern, tagged
// with whether it represents a complete match (Complete) or only a
// necessary prefix/substring (!Complete).
type Literal struct {
	Bytes    []byte
	Complete bool
}

// NewLiteral builds a Literal from b and a completeness flag.
func NewLiteral(b []byte, complete bool) Literal {
	return Literal{Bytes: b, Complete: complete}
}

// Len returns the literal's byte length.
func (l Literal) Len() int { return len(l.Bytes) }

// Seq is an ordered set of alternative literals, e.g. the branches of
// `cat|dog|bird`.
type Seq struct {
	literals []Literal
}

// NewSeq builds a Seq over lits.
func NewSeq(lits ...Literal) *Seq {
	return &Seq{literals: lits}
}

// Len returns the number of literals in the sequence.
func (s *Seq) Len() int {
	if s == nil {
		return 0
	}
	return len(s.literals)
}

// Get returns the literal at index i. Panics if i is out of range.
func (s *Seq) Get(i int) Literal { return s.literals[i] }

// IsEmpty reports whether the sequence has no literals.
func (s *Seq) IsEmpty() bool { return s == nil || len(s.literals) == 0 }

// Minimize drops literals made redundant by a shorter literal that is a
// prefix of them — any haystack containing "foobar" also contains "foo",
// so "foobar" adds nothing to a prefix-gated prefilter once "foo" is
// present.
func (s *Seq) Minimize() {
	if s.IsEmpty() {
		return
	}
	kept := make([]Literal, 0, len(s.literals))
	for _, lit := range s.literals {
		redundant := false
		for _, k := range kept {
			if len(k.Bytes) <= len(lit.Bytes) && bytes.HasPrefix(lit.Bytes, k.Bytes) {
				redundant = true
				break
			}
		}
		if !redundant {
			kept = append(kept, lit)
		}
	}
	s.literals = kept
}

// LongestCommonPrefix returns the longest byte prefix shared by every
// literal in the sequence, or nil if the sequence is empty or the
// literals share no prefix.
func (s *Seq) LongestCommonPrefix() []byte {
	if s.IsEmpty() {
		return nil
	}
	prefix := s.literals[0].Bytes
	for _, lit := range s.literals[1:] {
		prefix = commonPrefix(prefix, lit.Bytes)
		if len(prefix) == 0 {
			return nil
		}
	}
	out := make([]byte, len(prefix))
	copy(out, prefix)
	return out
}

func commonPrefix(a, b []byte) []byte {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return a[:i]
}
