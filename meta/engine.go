package meta

import (
	"sync/atomic"

	"github.com/coregx/ahocorasick"
	"github.com/coregx/rex/analysis"
	"github.com/coregx/rex/dfa"
	"github.com/coregx/rex/nfa"
	"github.com/coregx/rex/prefilter"
)

// Strategy names which engine(s) a compiled pattern actually dispatches
// to, exposed mainly for diagnostics and tests.
type Strategy uint8

const (
	// UseNFA means only the backtracking interpreter runs.
	UseNFA Strategy = iota
	// UseDFA means the DFA alone decides the match; the NFA is not run
	// (DFA-eligible patterns never have capturing groups).
	UseDFA
	// UseAhoCorasick means the pattern reduced to a flat literal
	// alternation and Aho-Corasick replaces both DFA and NFA entirely.
	UseAhoCorasick
)

func (s Strategy) String() string {
	switch s {
	case UseDFA:
		return "UseDFA"
	case UseAhoCorasick:
		return "UseAhoCorasick"
	default:
		return "UseNFA"
	}
}

// Stats counts search-time engine usage. There is no logging layer in
// this engine; Stats is how callers observe engine behavior instead.
type Stats struct {
	NFASearches         uint64
	DFASearches         uint64
	AhoCorasickSearches uint64
	PrefilterHits       uint64
	PrefilterMisses     uint64
}

// Engine is a compiled pattern: immutable after Compile returns, and safe
// for concurrent use from multiple goroutines, since every field it holds
// (dfa.DFA, nfa.Engine, prefilter.Prefilter, ahocorasick.Automaton) is
// itself immutable and carries no per-search mutable state of its own.
type Engine struct {
	stats Stats

	pattern   string
	numGroups int
	props     analysis.PatternProperties
	config    Config
	strategy  Strategy

	prefilter   prefilter.Prefilter
	dfa         *dfa.DFA
	nfa         *nfa.Engine
	ahoCorasick *ahocorasick.Automaton
}

// Pattern returns the original pattern string.
func (e *Engine) Pattern() string { return e.pattern }

// Strategy returns which engine(s) this compiled pattern dispatches to.
func (e *Engine) Strategy() Strategy { return e.strategy }

// Stats returns a snapshot of this engine's search counters.
func (e *Engine) Stats() Stats {
	return Stats{
		NFASearches:         atomic.LoadUint64(&e.stats.NFASearches),
		DFASearches:         atomic.LoadUint64(&e.stats.DFASearches),
		AhoCorasickSearches: atomic.LoadUint64(&e.stats.AhoCorasickSearches),
		PrefilterHits:       atomic.LoadUint64(&e.stats.PrefilterHits),
		PrefilterMisses:     atomic.LoadUint64(&e.stats.PrefilterMisses),
	}
}

// Properties exposes the pattern's analysis.PatternProperties, mainly
// for tests and diagnostics.
func (e *Engine) Properties() analysis.PatternProperties { return e.props }

// NumCaptures returns the number of capturing groups the pattern declared,
// not counting the implicit whole-match group 0.
func (e *Engine) NumCaptures() int { return e.numGroups }
