// Package prefilter builds a sound, approximate candidate scan from an
// analysis.PatternProperties: a fast pass over the haystack that narrows
// down where the full engine needs to run, without ever skipping a
// position a real match could start at.
package prefilter

import (
	"github.com/coregx/rex/analysis"
	"github.com/coregx/rex/internal/ast"
	"github.com/coregx/rex/literal"
	"github.com/coregx/rex/simd"
)

// Prefilter narrows candidate match-start positions before the full
// engine runs.
type Prefilter interface {
	// Find returns the next candidate position at or after start, or -1
	// if none remain.
	Find(haystack []byte, start int) int
	// IsComplete reports whether a Find hit is itself a complete,
	// verified match (true only for the exact-literal tier), meaning the
	// caller can skip invoking the full engine entirely.
	IsComplete() bool
}

// Build selects the strongest prefilter tier props supports — exact
// literal, then literal prefix, then required substring, then leading
// byte class — or nil if none applies (the engine must scan every
// position).
func Build(props analysis.PatternProperties) Prefilter {
	switch {
	case len(props.ExactLiteral) > 0:
		return &exactPrefilter{searcher: literal.NewSearcher(props.ExactLiteral)}
	case len(props.LiteralPrefix) > 0:
		return &prefixPrefilter{searcher: literal.NewSearcher(props.LiteralPrefix)}
	case len(props.RequiredLiteral) > 0:
		return &requiredPrefilter{searcher: literal.NewSearcher(props.RequiredLiteral)}
	case props.HasLeadingClass:
		return &classPrefilter{matcher: classMatcher(props.LeadingClass, props.LeadingClassNegated)}
	default:
		return nil
	}
}

// exactPrefilter backs the ExactLiteral tier: the entire pattern is a
// fixed string, so a literal hit at a position IS the match, no engine
// invocation needed.
type exactPrefilter struct {
	searcher *literal.Searcher
}

func (p *exactPrefilter) Find(haystack []byte, start int) int {
	return p.searcher.Find(haystack, start)
}

func (p *exactPrefilter) IsComplete() bool { return true }

// prefixPrefilter backs the LiteralPrefix tier: candidate positions are
// where the prefix matches; the engine still runs from each candidate.
type prefixPrefilter struct {
	searcher *literal.Searcher
}

func (p *prefixPrefilter) Find(haystack []byte, start int) int {
	return p.searcher.Find(haystack, start)
}

func (p *prefixPrefilter) IsComplete() bool { return false }

// requiredPrefilter backs the RequiredLiteral tier: the engine only needs
// to consider windows containing the required substring. A hit is only a
// candidate, not necessarily a match start, so the caller must still try
// the engine from the start of the scan window, not from the hit offset
// itself — Find here reports the hit position as a lower bound the caller
// uses to decide whether a window is worth engine invocation at all.
type requiredPrefilter struct {
	searcher *literal.Searcher
}

func (p *requiredPrefilter) Find(haystack []byte, start int) int {
	return p.searcher.Find(haystack, start)
}

func (p *requiredPrefilter) IsComplete() bool { return false }

// classPrefilter backs the LeadingClass tier: every match's first byte
// belongs to the pattern's leading class (it has at least one mandatory
// repetition), so candidate positions are exactly the class member
// offsets. The digit prefilter for patterns like `[0-9]{3}-[0-9]{4}`,
// generalized to any leading class.
type classPrefilter struct {
	matcher *simd.Matcher
}

func (p *classPrefilter) Find(haystack []byte, start int) int {
	return p.matcher.Scan(haystack, start)
}

func (p *classPrefilter) IsComplete() bool { return false }

// classMatcher returns the process-wide cached matcher when set is one of
// the predefined classes, building a fresh one otherwise.
func classMatcher(set ast.ByteSet, negated bool) *simd.Matcher {
	if !negated {
		switch set {
		case ast.DigitClass():
			return simd.Predefined(simd.Digits)
		case ast.WordClass():
			return simd.Predefined(simd.WordChars)
		case ast.SpaceClass():
			return simd.Predefined(simd.Whitespace)
		}
	}
	return simd.NewMatcher(set, negated)
}
