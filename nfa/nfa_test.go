package nfa

import (
	"testing"

	"github.com/coregx/rex/internal/ast"
	"github.com/coregx/rex/internal/parser"
)

func mustEngine(t *testing.T, pattern string) (*Engine, *ast.Tree) {
	t.Helper()
	tree, groups, err := parseForTest(pattern)
	if err != nil {
		t.Fatalf("parse(%q): %v", pattern, err)
	}
	return New(tree, groups, 0), tree
}

// parseForTest wraps parser.Parse and also reports the number of
// capturing groups the pattern declared, which the public parser package
// doesn't expose directly but a test can recover by scanning for the max
// GroupIndex seen in the arena.
func parseForTest(pattern string) (*ast.Tree, int, error) {
	tree, err := parser.Parse(pattern)
	if err != nil {
		return nil, 0, err
	}
	max := 0
	for i := 0; i < tree.Len(); i++ {
		n := tree.At(i)
		if n.Kind == ast.KindGroup && n.Capturing && n.GroupIndex > max {
			max = n.GroupIndex
		}
	}
	return tree, max, nil
}

func TestNFALiteralMatch(t *testing.T) {
	e, _ := mustEngine(t, "abc")
	m, err := e.MatchAt([]byte("xxabcxx"), 2)
	if err != nil {
		t.Fatalf("MatchAt: %v", err)
	}
	if m == nil || m.Start != 2 || m.End != 5 {
		t.Fatalf("got %+v, want [2,5)", m)
	}
}

func TestNFALiteralNoMatch(t *testing.T) {
	e, _ := mustEngine(t, "abc")
	m, err := e.MatchAt([]byte("xxxxx"), 0)
	if err != nil {
		t.Fatalf("MatchAt: %v", err)
	}
	if m != nil {
		t.Fatalf("got %+v, want no match", m)
	}
}

func TestNFAGreedyQuantifier(t *testing.T) {
	e, _ := mustEngine(t, "a*b")
	m, err := e.MatchAt([]byte("aaaab"), 0)
	if err != nil {
		t.Fatalf("MatchAt: %v", err)
	}
	if m == nil || m.Start != 0 || m.End != 5 {
		t.Fatalf("got %+v, want [0,5)", m)
	}
}

func TestNFAQuantifierBacktracks(t *testing.T) {
	// "a*ab" forces the greedy a* to give back one repetition so the
	// trailing "ab" can match.
	e, _ := mustEngine(t, "a*ab")
	m, err := e.MatchAt([]byte("aaab"), 0)
	if err != nil {
		t.Fatalf("MatchAt: %v", err)
	}
	if m == nil || m.Start != 0 || m.End != 4 {
		t.Fatalf("got %+v, want [0,4)", m)
	}
}

func TestNFAAlternationLeftmostFirst(t *testing.T) {
	e, _ := mustEngine(t, "cat|caterpillar")
	m, err := e.MatchAt([]byte("caterpillar"), 0)
	if err != nil {
		t.Fatalf("MatchAt: %v", err)
	}
	// leftmost-first: "cat" is tried before "caterpillar" and wins.
	if m == nil || m.End != 3 {
		t.Fatalf("got %+v, want End=3 (leftmost-first branch order)", m)
	}
}

func TestNFACapturingGroup(t *testing.T) {
	e, _ := mustEngine(t, "a(bc)d")
	m, err := e.MatchAt([]byte("abcd"), 0)
	if err != nil {
		t.Fatalf("MatchAt: %v", err)
	}
	if m == nil {
		t.Fatal("expected a match")
	}
	if len(m.Groups) != 2 {
		t.Fatalf("Groups = %v, want len 2", m.Groups)
	}
	if g := m.Groups[1]; g != [2]int{1, 3} {
		t.Errorf("group 1 = %v, want [1,3)", g)
	}
}

func TestNFACapturingGroupRestoredOnBacktrack(t *testing.T) {
	// (a+)(a+)b over "aaab": the first a+ must give back repetitions for
	// the second a+ to get at least one 'a' before 'b'.
	e, _ := mustEngine(t, "(a+)(a+)b")
	m, err := e.MatchAt([]byte("aaab"), 0)
	if err != nil {
		t.Fatalf("MatchAt: %v", err)
	}
	if m == nil {
		t.Fatal("expected a match")
	}
	g1, g2 := m.Groups[1], m.Groups[2]
	if g1[1] != g2[0] {
		t.Errorf("groups not adjacent: g1=%v g2=%v", g1, g2)
	}
	if g2[1] != 3 {
		t.Errorf("second group should end at 3 (before 'b'), got %v", g2)
	}
}

func TestNFAAnchors(t *testing.T) {
	e, _ := mustEngine(t, "^abc$")
	if m, _ := e.MatchAt([]byte("abc"), 0); m == nil {
		t.Error("expected match on exact string")
	}
	if m, _ := e.MatchAt([]byte("abcd"), 0); m != nil {
		t.Error("expected no match when $ fails")
	}
}

func TestNFAZeroWidthQuantifierGuard(t *testing.T) {
	// (?:)* style zero-width repetition must not loop forever: a
	// non-capturing group whose body can match empty, quantified with *,
	// must stop repeating once an iteration consumes nothing.
	e, _ := mustEngine(t, "(?:a?)*b")
	m, err := e.MatchAt([]byte("aaab"), 0)
	if err != nil {
		t.Fatalf("MatchAt: %v", err)
	}
	if m == nil || m.End != 4 {
		t.Fatalf("got %+v, want [0,4)", m)
	}
}

func TestNFABudgetExceeded(t *testing.T) {
	tree, groups, err := parseForTest("(a*)*b")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	e := New(tree, groups, 50)
	_, err = e.MatchAt([]byte("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaac"), 0)
	if err == nil {
		t.Fatal("expected budget exceeded error")
	}
	if _, ok := err.(*BudgetExceededError); !ok {
		t.Errorf("err = %T, want *BudgetExceededError", err)
	}
}

func TestNFAInvalidStart(t *testing.T) {
	e, _ := mustEngine(t, "a")
	if _, err := e.MatchAt([]byte("abc"), 10); err != ErrInvalidStart {
		t.Errorf("err = %v, want ErrInvalidStart", err)
	}
}

func TestNFAClassMatch(t *testing.T) {
	e, _ := mustEngine(t, "[a-c]+")
	m, err := e.MatchAt([]byte("abcabcx"), 0)
	if err != nil {
		t.Fatalf("MatchAt: %v", err)
	}
	if m == nil || m.End != 6 {
		t.Fatalf("got %+v, want [0,6)", m)
	}
}
