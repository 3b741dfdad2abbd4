// Package analysis classifies a parsed pattern and extracts the literal
// information the compiler uses to pick an execution strategy: a single
// post-order walk over the AST produces a PatternProperties value that the
// compile pipeline consults to decide whether to attempt a DFA, which
// prefilter tier (if any) applies, and rough sizing for the DFA's state
// cap.
package analysis

import "github.com/coregx/rex/internal/ast"

// Classification buckets a pattern by how much of the engine it needs.
type Classification uint8

const (
	// Simple patterns are a concatenation of literals, anchors, wildcards,
	// and byte-classes, each quantified within the policy cap (or
	// unbounded). These are the cheapest DFA candidates.
	Simple Classification = iota
	// Medium patterns add non-capturing groups over Simple content and
	// alternations (at any nesting level) of Simple/Medium branches whose
	// first bytes tell the branches apart, within the branch-count and
	// depth caps. Still DFA-eligible, via an extended compiler.
	Medium
	// Complex patterns contain capturing groups, an alternation beyond the
	// Medium caps or with branches not distinguishable by first byte, or
	// nested quantified groups. These always route to the NFA.
	Complex
)

func (c Classification) String() string {
	switch c {
	case Simple:
		return "Simple"
	case Medium:
		return "Medium"
	case Complex:
		return "Complex"
	default:
		return "Unknown"
	}
}

// Policy caps bounding which patterns stay DFA-eligible.
const (
	// MaxQuantifierCap bounds a bounded quantifier's max for a node to
	// still count as Simple; exceeding it (without being unbounded)
	// demotes the pattern to Complex.
	MaxQuantifierCap = 1024
	// MaxAlternationBranches bounds the branch count of every alternation
	// in a Medium-eligible pattern.
	MaxAlternationBranches = 64
	// MaxAlternationDepth bounds how deeply alternations may nest inside
	// other alternations' branches in a Medium-eligible pattern.
	MaxAlternationDepth = 4
)

// PatternProperties is the analyzer's complete output for one pattern:
// its classification, anchoring, extracted literals, and sizing.
type PatternProperties struct {
	Classification Classification

	StartAnchored  bool
	EndAnchored    bool
	HasAlternation bool
	HasGroup       bool

	// LiteralPrefix is the longest prefix of fixed bytes implied by every
	// execution path from the start of the pattern; empty if none.
	LiteralPrefix []byte
	// RequiredLiteral is a fixed substring that must appear in every
	// successful match, used as a prefilter even when it isn't a prefix.
	RequiredLiteral []byte
	// ExactLiteral is set iff the whole pattern is a fixed byte string
	// with no quantifier variability and no anchors.
	ExactLiteral []byte

	// LeadingClass, valid when HasLeadingClass, is the byte class every
	// match's first byte must belong to: the pattern's first consuming
	// node is a class with at least one mandatory repetition. It backs the
	// class-scan prefilter tier when no literal tier applies (the digit
	// prefilter generalized to arbitrary classes).
	LeadingClass        ast.ByteSet
	LeadingClassNegated bool
	HasLeadingClass     bool

	ByteClassNodeCount int
	ApproxStateCount   int

	// DFAEligible reports whether the compile pipeline should attempt a
	// DFA at all. It is Classification != Complex; DFA construction may
	// still fail afterward on the state/unroll caps, which is a separate,
	// later failure (see the dfa package) that falls back to NFA without
	// consulting this flag again.
	DFAEligible bool
}
