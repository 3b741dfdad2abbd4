package meta

import (
	"github.com/coregx/ahocorasick"
	"github.com/coregx/rex/analysis"
	"github.com/coregx/rex/dfa"
	"github.com/coregx/rex/internal/ast"
	"github.com/coregx/rex/internal/parser"
	"github.com/coregx/rex/literal"
	"github.com/coregx/rex/nfa"
	"github.com/coregx/rex/prefilter"
)

// minAhoCorasickBranches is the branch-count floor below which a flat
// literal alternation is left to the DFA rather than routed to
// Aho-Corasick. Small alternations like "cat|dog" are squarely within
// analysis.Medium's DFA-eligible subset and gain nothing from
// Aho-Corasick's multi-pattern machinery that the DFA doesn't already
// provide in one linear scan.
const minAhoCorasickBranches = 32

// Compile parses pattern and builds an Engine using DefaultConfig.
func Compile(pattern string) (*Engine, error) {
	return CompileWithConfig(pattern, DefaultConfig())
}

// CompileWithConfig compiles pattern with a caller-supplied Config.
//
// The pipeline: lex+parse to an ast.Tree, analyze it once into
// analysis.PatternProperties, build a prefilter from the extracted
// literals, then build whichever engines the pattern qualifies for — an
// Aho-Corasick automaton if the pattern is a flat literal alternation of
// at least minAhoCorasickBranches branches, a
// DFA if analysis marked the pattern DFA-eligible, and always an NFA as
// the universal fallback.
func CompileWithConfig(pattern string, config Config) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	tree, err := parser.Parse(pattern)
	if err != nil {
		return nil, &CompileError{Pattern: pattern, Err: err}
	}
	numGroups := countGroups(tree)
	props := analysis.Analyze(tree)

	e := &Engine{
		pattern:   pattern,
		numGroups: numGroups,
		props:     props,
		config:    config,
		strategy:  UseNFA,
	}

	if config.EnablePrefilter {
		e.prefilter = prefilter.Build(props)
	}

	if lits, ok := flatLiteralAlternation(tree); ok && lits.Len() >= minAhoCorasickBranches {
		if auto, err := buildAhoCorasick(lits); err == nil {
			e.ahoCorasick = auto
			e.strategy = UseAhoCorasick
		}
	}

	if e.ahoCorasick == nil && config.EnableDFA && props.DFAEligible {
		if d, err := dfa.Build(tree, props, config.dfaConfig()); err == nil {
			e.dfa = d
			e.strategy = UseDFA
		}
	}

	e.nfa = nfa.New(tree, numGroups, config.StepBudget)

	return e, nil
}

// countGroups returns the highest capturing-group index assigned by the
// parser (0 if the pattern has no capturing groups).
func countGroups(tree *ast.Tree) int {
	max := 0
	for i := 0; i < tree.Len(); i++ {
		n := tree.At(i)
		if n.Kind == ast.KindGroup && n.Capturing && n.GroupIndex > max {
			max = n.GroupIndex
		}
	}
	return max
}

// flatLiteralAlternation reports whether tree is nothing but a top-level
// alternation of fixed literal strings (e.g. "cat|dog|bird"), the shape
// Aho-Corasick accelerates, and if so returns each branch's literal as a
// Complete literal.Seq entry.
func flatLiteralAlternation(tree *ast.Tree) (*literal.Seq, bool) {
	root := tree.At(tree.Root())
	if len(root.Children) != 1 {
		return nil, false
	}
	alt := tree.At(root.Children[0])
	if alt.Kind != ast.KindAlternation {
		return nil, false
	}

	lits := make([]literal.Literal, 0, len(alt.Children))
	for _, branchIdx := range alt.Children {
		branch := tree.At(branchIdx)
		lit := make([]byte, 0, len(branch.Children))
		for _, childIdx := range branch.Children {
			c := tree.At(childIdx)
			if c.Kind != ast.KindElement || c.IsQuantified() {
				return nil, false
			}
			lit = append(lit, c.Byte)
		}
		if len(lit) == 0 {
			return nil, false
		}
		lits = append(lits, literal.NewLiteral(lit, true))
	}
	return literal.NewSeq(lits...), true
}

func buildAhoCorasick(lits *literal.Seq) (*ahocorasick.Automaton, error) {
	builder := ahocorasick.NewBuilder()
	for i := 0; i < lits.Len(); i++ {
		builder.AddPattern(lits.Get(i).Bytes)
	}
	return builder.Build()
}
