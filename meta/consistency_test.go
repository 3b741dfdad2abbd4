package meta

import (
	"testing"

	"github.com/coregx/rex/analysis"
	"github.com/coregx/rex/dfa"
	"github.com/coregx/rex/internal/parser"
	"github.com/coregx/rex/nfa"
)

// TestDFANFAConsistency is the cross-engine oracle: for every pattern
// that compiles to a DFA, both engines must report identical match
// boundaries at every start position of every haystack. Any divergence
// here means the analyzer let an ambiguous pattern through to the
// longest-match DFA, or one of the engines mis-handles a construct.
func TestDFANFAConsistency(t *testing.T) {
	patterns := []string{
		"abc",
		"a*b",
		"a*a",
		"a?b",
		"[0-9]+",
		"[a-c]*x",
		"^abc",
		"abc$",
		"^a*$",
		"a{2,4}",
		"x.*y",
		"(?:ab)+",
		"cat|dog",
		"foo|bar",
		"[0-9]+|x",
		".",
	}
	haystacks := []string{
		"", "a", "b", "ab", "aab", "abc", "abcabc", "xxabcxx",
		"aaaa", "aaab", "cat", "dog", "catdog", "foobar",
		"0", "42x", "ab\nab", "xaby", "xyxy", "bacbacb",
	}

	for _, pattern := range patterns {
		tree, err := parser.Parse(pattern)
		if err != nil {
			t.Fatalf("parse(%q): %v", pattern, err)
		}
		props := analysis.Analyze(tree)
		if !props.DFAEligible {
			t.Errorf("pattern %q: expected DFA-eligible", pattern)
			continue
		}
		d, err := dfa.Build(tree, props, dfa.DefaultConfig())
		if err != nil {
			t.Fatalf("dfa.Build(%q): %v", pattern, err)
		}
		n := nfa.New(tree, 0, 0)

		for _, hs := range haystacks {
			h := []byte(hs)
			for start := 0; start <= len(h); start++ {
				dEnd, dOK := d.Find(h, start)
				m, err := n.MatchAt(h, start)
				if err != nil {
					t.Fatalf("pattern %q haystack %q start %d: nfa error: %v", pattern, hs, start, err)
				}
				nOK := m != nil
				if dOK != nOK {
					t.Errorf("pattern %q haystack %q start %d: dfa matched=%v nfa matched=%v",
						pattern, hs, start, dOK, nOK)
					continue
				}
				if dOK && dEnd != m.End {
					t.Errorf("pattern %q haystack %q start %d: dfa end=%d nfa end=%d",
						pattern, hs, start, dEnd, m.End)
				}
			}
		}
	}
}

// TestAmbiguousAlternationUsesOrderedChoice verifies an overlapping
// alternation routes to the interpreter and keeps ordered-choice
// semantics end to end: `a|ab` against "ab" matches "a", the same answer
// stdlib regexp gives, not the longest-match "ab" a DFA would report.
func TestAmbiguousAlternationUsesOrderedChoice(t *testing.T) {
	e, err := Compile("a|ab")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if e.Strategy() != UseNFA {
		t.Errorf("Strategy() = %v, want UseNFA for overlapping branches", e.Strategy())
	}
	m := e.Find([]byte("ab"))
	if m == nil || m.Start() != 0 || m.End() != 1 {
		t.Fatalf("Find = %v, want (0,1) per ordered choice", m)
	}

	e, err = Compile("ab|a")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if e.Strategy() != UseNFA {
		t.Errorf("Strategy() = %v, want UseNFA for prefix-overlapping branches", e.Strategy())
	}
	m = e.Find([]byte("ab"))
	if m == nil || m.Start() != 0 || m.End() != 2 {
		t.Fatalf("Find = %v, want (0,2) (first branch wins)", m)
	}
}
