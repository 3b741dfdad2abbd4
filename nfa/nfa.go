// Package nfa implements an AST-walking backtracking interpreter: there
// is no separate NFA compilation step, the AST itself is the program. A
// match attempt tries a node's children in order, greedy quantifiers
// consume as much as possible before backtracking one repetition at a
// time, and alternation tries branches leftmost-first.
//
// State that would naturally recurse without bound — a quantifier's
// repeat count — is driven by an explicit counter threaded through
// matchRepeat rather than by unbounded recursion; the plain tree descent
// (matchNode/matchSeq) still uses Go's call stack, but that recursion is
// bounded by the AST's fixed depth, not by haystack length or repetition
// count, so it cannot blow up the way unbounded quantifier recursion
// would.
package nfa

import "github.com/coregx/rex/internal/ast"

// DefaultStepBudget is the per-match step cap: one attempt may take at
// most this many interpreter steps before failing with
// BudgetExceededError.
const DefaultStepBudget = 10_000_000

// Match is one successful match: Start/End in byte offsets, and Groups
// indexed 0..numGroups where Groups[0] == {Start, End} and an unmatched
// group is {-1, -1}.
type Match struct {
	Start, End int
	Groups     [][2]int
}

// Engine holds everything needed to attempt a match: the (shared,
// immutable) AST and the group count and step budget to use. It carries
// no mutable state of its own — every match attempt builds its own
// matchState — so one Engine is safe to use concurrently from many
// callers.
type Engine struct {
	tree       *ast.Tree
	numGroups  int
	stepBudget uint64
}

// New builds an Engine over tree with numGroups capturing groups and the
// given step budget (DefaultStepBudget if budget is 0).
func New(tree *ast.Tree, numGroups int, budget uint64) *Engine {
	if budget == 0 {
		budget = DefaultStepBudget
	}
	return &Engine{tree: tree, numGroups: numGroups, stepBudget: budget}
}

// MatchAt attempts a single match starting exactly at start (no internal
// scanning — the caller, typically meta.Engine, advances start between
// attempts). Returns (nil, nil) on no match, or a *BudgetExceededError if
// the step budget was exhausted before a result could be determined.
func (e *Engine) MatchAt(haystack []byte, start int) (*Match, error) {
	if start < 0 || start > len(haystack) {
		return nil, ErrInvalidStart
	}

	groups := make([][2]int, e.numGroups+1)
	for i := range groups {
		groups[i] = [2]int{-1, -1}
	}
	s := &matchState{
		tree:     e.tree,
		haystack: haystack,
		budget:   e.stepBudget,
		groups:   groups,
	}

	var end int
	ok := s.matchNode(e.tree.Root(), start, func(e int) bool {
		end = e
		return true
	})
	if s.budgetExceeded {
		return nil, &BudgetExceededError{Budget: e.stepBudget}
	}
	if !ok {
		return nil, nil
	}
	groups[0] = [2]int{start, end}
	return &Match{Start: start, End: end, Groups: groups}, nil
}

// matchState is the per-call, per-goroutine state a single match attempt
// threads through the recursive descent: haystack, remaining step budget,
// and the capture slots. None of it is shared across calls.
type matchState struct {
	tree     *ast.Tree
	haystack []byte
	steps    uint64
	budget   uint64
	groups   [][2]int

	budgetExceeded bool
}

// cont is the "what happens after this node succeeds" continuation; it
// receives the byte offset reached and returns whether the overall match
// attempt succeeds from there. Backtracking falls out naturally: a node
// tries one way to match, calls cont, and if cont returns false tries its
// next alternative (or, for a quantifier, one fewer repetition).
type cont func(pos int) bool

// matchNode matches node at pos, framing the step-budget check common to
// every node visit before dispatching on whether it carries a
// quantifier.
func (s *matchState) matchNode(idx int, pos int, k cont) bool {
	s.steps++
	if s.steps > s.budget {
		s.budgetExceeded = true
		return false
	}
	if s.budgetExceeded {
		return false
	}

	n := s.tree.At(idx)
	if !n.IsQuantified() {
		return s.matchOnce(n, idx, pos, k)
	}
	return s.matchRepeat(n, idx, 0, pos, k)
}

// matchSeq matches the concatenation seq[from:] in order, then k.
func (s *matchState) matchSeq(seq []int, from int, pos int, k cont) bool {
	if from >= len(seq) {
		return k(pos)
	}
	return s.matchNode(seq[from], pos, func(end int) bool {
		return s.matchSeq(seq, from+1, end, k)
	})
}

// matchOnce applies node's own rule exactly once (ignoring repetition —
// the caller has already accounted for it) and calls k with the
// resulting position on success.
func (s *matchState) matchOnce(n *ast.Node, idx int, pos int, k cont) bool {
	switch n.Kind {
	case ast.KindElement:
		if pos < len(s.haystack) && s.haystack[pos] == n.Byte {
			return k(pos + 1)
		}
		return false

	case ast.KindWildcard:
		if pos < len(s.haystack) && s.haystack[pos] != '\n' {
			return k(pos + 1)
		}
		return false

	case ast.KindClass:
		if pos < len(s.haystack) && n.Matches(s.haystack[pos]) {
			return k(pos + 1)
		}
		return false

	case ast.KindAnchor:
		switch n.AnchorKind {
		case ast.AnchorStart:
			if pos == 0 {
				return k(pos)
			}
		case ast.AnchorEnd:
			if pos == len(s.haystack) {
				return k(pos)
			}
		}
		return false

	case ast.KindRoot:
		return s.matchSeq(n.Children, 0, pos, k)

	case ast.KindGroup:
		if !n.Capturing {
			return s.matchSeq(n.Children, 0, pos, k)
		}
		return s.matchCapturing(n, pos, k)

	case ast.KindAlternation:
		for _, branch := range n.Children {
			b := s.tree.At(branch)
			if s.matchSeq(b.Children, 0, pos, k) {
				return true
			}
		}
		return false

	default:
		return false
	}
}

// matchCapturing matches a capturing group's body, recording its bounds
// on success and restoring whatever bounds it held before this attempt if
// the overall continuation ultimately fails: captures are recorded on
// success and restored on backtrack.
func (s *matchState) matchCapturing(n *ast.Node, pos int, k cont) bool {
	saved := s.groups[n.GroupIndex]
	ok := s.matchSeq(n.Children, 0, pos, func(end int) bool {
		s.groups[n.GroupIndex] = [2]int{pos, end}
		if k(end) {
			return true
		}
		s.groups[n.GroupIndex] = saved
		return false
	})
	if !ok {
		s.groups[n.GroupIndex] = saved
	}
	return ok
}

// matchRepeat drives a quantified node's greedy-then-backtrack repetition:
// it first tries to consume one more repetition and recurse (maximizing
// count before trying k), then falls back to stopping here once count
// satisfies n.Min. A repetition that matches zero bytes cannot be
// repeated usefully forever, so it's treated as the last one tried,
// preventing the infinite loop an empty-width quantified body would
// otherwise cause.
func (s *matchState) matchRepeat(n *ast.Node, idx int, count int, pos int, k cont) bool {
	atMax := n.Max != ast.Unbounded && count >= n.Max
	if !atMax {
		matched := s.matchOnce(n, idx, pos, func(end int) bool {
			if end == pos {
				return k(end)
			}
			return s.matchRepeat(n, idx, count+1, end, k)
		})
		if matched {
			return true
		}
	}
	if count >= n.Min {
		return k(pos)
	}
	return false
}
