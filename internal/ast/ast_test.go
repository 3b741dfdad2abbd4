package ast

import "testing"

func TestByteSetBasic(t *testing.T) {
	var s ByteSet
	s.AddRange('a', 'z')
	if !s.Contains('m') {
		t.Error("expected 'm' in [a-z]")
	}
	if s.Contains('A') {
		t.Error("did not expect 'A' in [a-z]")
	}
	if s.Count() != 26 {
		t.Errorf("Count() = %d, want 26", s.Count())
	}
}

func TestByteSetNegated(t *testing.T) {
	var s ByteSet
	s.AddByte('x')
	neg := s.Negated()
	if neg.Contains('x') {
		t.Error("negated set should not contain 'x'")
	}
	if !neg.Contains('y') {
		t.Error("negated set should contain 'y'")
	}
}

func TestWordClassIncludesUnderscore(t *testing.T) {
	w := WordClass()
	if !w.Contains('_') {
		t.Error("\\w must include '_'")
	}
	if w.Contains(' ') {
		t.Error("\\w must not include space")
	}
}

func TestNewlineExcluded(t *testing.T) {
	s := NewlineExcluded()
	if s.Contains('\n') {
		t.Error(". must not match newline")
	}
	if !s.Contains('a') || !s.Contains(0) || !s.Contains(0xFF) {
		t.Error(". must match every other byte")
	}
}

func TestTreeArenaOrdering(t *testing.T) {
	tree := NewTree()
	a := tree.Add(NewElement('a'))
	b := tree.Add(NewElement('b'))
	group := tree.Add(NewGroup(true, 1, []int{a, b}))
	tree.SetRoot(group)

	if tree.Root() != group {
		t.Fatalf("Root() = %d, want %d", tree.Root(), group)
	}
	root := tree.At(tree.Root())
	if root.Kind != KindGroup || !root.Capturing || root.GroupIndex != 1 {
		t.Errorf("unexpected root node: %+v", root)
	}
	for _, child := range root.Children {
		if child >= group {
			t.Errorf("child index %d must precede parent index %d", child, group)
		}
	}
}

func TestNodeMatches(t *testing.T) {
	el := NewElement('x')
	if !el.Matches('x') || el.Matches('y') {
		t.Error("element match mismatch")
	}
	wc := NewWildcard()
	if wc.Matches('\n') || !wc.Matches('z') {
		t.Error("wildcard match mismatch")
	}
	var digits ByteSet
	digits.AddRange('0', '9')
	cls := NewClass(digits, false)
	if !cls.Matches('5') || cls.Matches('a') {
		t.Error("class match mismatch")
	}
	neg := NewClass(digits, true)
	if neg.Matches('5') || !neg.Matches('a') {
		t.Error("negated class match mismatch")
	}
}

func TestIsQuantified(t *testing.T) {
	n := NewElement('a')
	if n.IsQuantified() {
		t.Error("default (1,1) node should not be quantified")
	}
	n.Min, n.Max = 0, Unbounded
	if !n.IsQuantified() {
		t.Error("(0,unbounded) node should be quantified")
	}
}
