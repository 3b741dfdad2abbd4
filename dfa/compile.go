// Thompson-style fragment construction and eager subset construction:
// the full dense transition table is built up front rather than on
// demand during search.
package dfa

import (
	"github.com/coregx/rex/analysis"
	"github.com/coregx/rex/internal/ast"
)

// Config bounds DFA construction.
type Config struct {
	// MaxStates caps the number of DFA states eager subset construction
	// may produce before giving up and falling back to the NFA engine.
	MaxStates int
	// MaxUnroll caps how many times a bounded quantifier {m,n} may be
	// unrolled into the Thompson program before giving up.
	MaxUnroll int
}

// DefaultConfig matches analysis.MaxQuantifierCap for MaxUnroll and a
// generous but bounded state count.
func DefaultConfig() Config {
	return Config{MaxStates: 0xFFFF, MaxUnroll: analysis.MaxQuantifierCap}
}

// opKind is one Thompson-fragment instruction.
type opKind uint8

const (
	opByte opKind = iota
	opClass
	opSplit
	opJmp
	opMatch
	opAssertStart
	opAssertEnd
)

// inst is one instruction in the byte-level Thompson program built from
// the AST. x (and y, for opSplit) are instruction indices; -1 means
// "unpatched."
type inst struct {
	op      opKind
	b       byte
	set     ast.ByteSet
	negated bool
	x, y    int
}

// patch records an outgoing edge still needing its target filled in.
type patch struct {
	idx int
	isY bool
}

// frag is a partially built Thompson fragment: its entry instruction and
// the dangling edges a caller must patch to chain fragments together.
type frag struct {
	start int
	outs  []patch
}

type builder struct {
	prog      []inst
	maxUnroll int
}

func (b *builder) emit(i inst) int {
	b.prog = append(b.prog, i)
	return len(b.prog) - 1
}

func (b *builder) patch(outs []patch, target int) {
	for _, p := range outs {
		if p.isY {
			b.prog[p.idx].y = target
		} else {
			b.prog[p.idx].x = target
		}
	}
}

// Build compiles tree into a dense DFA, or returns a *BuildError if the
// pattern isn't DFA-eligible or construction exceeds cfg's bounds.
// Callers (meta.Engine) treat a non-nil error as routine and fall back to
// the NFA engine; it is never treated as a fatal condition.
func Build(tree *ast.Tree, props analysis.PatternProperties, cfg Config) (*DFA, error) {
	if !props.DFAEligible {
		return nil, &BuildError{Kind: Ineligible, Message: "pattern requires NFA semantics (capturing groups or unsupported construct)"}
	}

	b := &builder{maxUnroll: cfg.MaxUnroll}
	f, err := b.compileNode(tree, tree.Root())
	if err != nil {
		return nil, err
	}
	matchIdx := b.emit(inst{op: opMatch})
	b.patch(f.outs, matchIdx)

	return determinize(b.prog, f.start, cfg.MaxStates)
}

func (b *builder) compileNode(tree *ast.Tree, idx int) (frag, error) {
	n := tree.At(idx)
	if n.IsQuantified() {
		return b.compileQuantified(tree, idx, n)
	}
	return b.compileOnce(tree, idx, n)
}

func (b *builder) compileOnce(tree *ast.Tree, idx int, n *ast.Node) (frag, error) {
	switch n.Kind {
	case ast.KindElement:
		i := b.emit(inst{op: opByte, b: n.Byte, x: -1})
		return frag{start: i, outs: []patch{{i, false}}}, nil

	case ast.KindWildcard:
		i := b.emit(inst{op: opClass, set: ast.NewlineExcluded(), x: -1})
		return frag{start: i, outs: []patch{{i, false}}}, nil

	case ast.KindClass:
		i := b.emit(inst{op: opClass, set: n.Class, negated: n.Negated, x: -1})
		return frag{start: i, outs: []patch{{i, false}}}, nil

	case ast.KindAnchor:
		op := opAssertStart
		if n.AnchorKind == ast.AnchorEnd {
			op = opAssertEnd
		}
		i := b.emit(inst{op: op, x: -1})
		return frag{start: i, outs: []patch{{i, false}}}, nil

	case ast.KindRoot, ast.KindGroup:
		if n.Capturing {
			return frag{}, &BuildError{Kind: Ineligible, Message: "capturing groups require the NFA engine"}
		}
		return b.compileSeq(tree, n.Children)

	case ast.KindAlternation:
		return b.compileAlternation(tree, n.Children)

	default:
		return frag{}, &BuildError{Kind: Ineligible, Message: "unsupported node kind"}
	}
}

// compileSeq chains fragments for each child in order, patching each
// fragment's dangling outs to the next child's start.
func (b *builder) compileSeq(tree *ast.Tree, children []int) (frag, error) {
	if len(children) == 0 {
		// Empty sequence: a no-op jmp so callers still get a start index.
		i := b.emit(inst{op: opJmp, x: -1})
		return frag{start: i, outs: []patch{{i, false}}}, nil
	}

	first, err := b.compileNode(tree, children[0])
	if err != nil {
		return frag{}, err
	}
	outs := first.outs
	for _, c := range children[1:] {
		next, err := b.compileNode(tree, c)
		if err != nil {
			return frag{}, err
		}
		b.patch(outs, next.start)
		outs = next.outs
	}
	return frag{start: first.start, outs: outs}, nil
}

// compileAlternation emits a chain of opSplit instructions, one per
// branch past the first. The epsilon-closure collects every branch's
// instructions into one sorted item set, so branch order carries no
// priority here; the DFA reports the longest match, which agrees with the
// NFA interpreter's ordered choice only because the analyzer admits just
// alternations whose branches differ in their first byte.
func (b *builder) compileAlternation(tree *ast.Tree, branches []int) (frag, error) {
	branchFrags := make([]frag, len(branches))
	for i, br := range branches {
		f, err := b.compileSeq(tree, tree.At(br).Children)
		if err != nil {
			return frag{}, err
		}
		branchFrags[i] = f
	}

	// Chain splits: split[0] -> (branch0, split[1]); split[1] -> (branch1,
	// split[2]); ...; last split's else edge goes straight to the last
	// branch.
	splits := make([]int, len(branches)-1)
	for i := range splits {
		splits[i] = b.emit(inst{op: opSplit, x: -1, y: -1})
	}
	for i := range splits {
		b.prog[splits[i]].x = branchFrags[i].start
		if i+1 < len(splits) {
			b.prog[splits[i]].y = splits[i+1]
		} else {
			b.prog[splits[i]].y = branchFrags[len(branchFrags)-1].start
		}
	}

	var outs []patch
	for _, f := range branchFrags {
		outs = append(outs, f.outs...)
	}

	start := branchFrags[0].start
	if len(splits) > 0 {
		start = splits[0]
	}
	return frag{start: start, outs: outs}, nil
}

// compileQuantified unrolls a bounded or unbounded repetition of n's
// unquantified body. {m,n} unrolls m required copies followed by (n-m)
// optional copies; `*`/`+`/`{m,}` unroll m required copies followed by
// one optional Kleene-star loop over one more copy of the body.
func (b *builder) compileQuantified(tree *ast.Tree, idx int, n *ast.Node) (frag, error) {
	once := func() *ast.Node {
		c := *n
		c.Min, c.Max = 1, 1
		return &c
	}

	unrollCount := n.Min
	if n.Max != ast.Unbounded {
		unrollCount = n.Max
	}
	if unrollCount > b.maxUnroll {
		return frag{}, &BuildError{Kind: QuantifierTooWide, Message: "bounded quantifier exceeds unroll cap"}
	}

	var seqOuts []patch
	var start int
	haveStart := false

	appendCopy := func() (frag, error) {
		return b.compileOnce(tree, idx, once())
	}

	required := n.Min
	for i := 0; i < required; i++ {
		f, err := appendCopy()
		if err != nil {
			return frag{}, err
		}
		if !haveStart {
			start, haveStart = f.start, true
		} else {
			b.patch(seqOuts, f.start)
		}
		seqOuts = f.outs
	}

	if n.Max == ast.Unbounded {
		// Kleene loop: split to (one more copy -> back to split) or (out).
		splitIdx := b.emit(inst{op: opSplit, x: -1, y: -1})
		if !haveStart {
			start, haveStart = splitIdx, true
		} else {
			b.patch(seqOuts, splitIdx)
		}
		bodyFrag, err := appendCopy()
		if err != nil {
			return frag{}, err
		}
		b.prog[splitIdx].x = bodyFrag.start
		b.patch(bodyFrag.outs, splitIdx)
		return frag{start: start, outs: []patch{{splitIdx, true}}}, nil
	}

	optional := n.Max - n.Min
	var optionalOuts []patch
	for i := 0; i < optional; i++ {
		splitIdx := b.emit(inst{op: opSplit, x: -1, y: -1})
		if !haveStart {
			start, haveStart = splitIdx, true
		} else {
			b.patch(seqOuts, splitIdx)
		}
		bodyFrag, err := appendCopy()
		if err != nil {
			return frag{}, err
		}
		b.prog[splitIdx].x = bodyFrag.start
		seqOuts = bodyFrag.outs
		optionalOuts = append(optionalOuts, patch{splitIdx, true})
	}

	if !haveStart {
		// Min == Max == 0: the whole node matches zero-width.
		i := b.emit(inst{op: opJmp, x: -1})
		return frag{start: i, outs: []patch{{i, false}}}, nil
	}

	return frag{start: start, outs: append(optionalOuts, seqOuts...)}, nil
}
