package prefilter

import (
	"testing"

	"github.com/coregx/rex/analysis"
	"github.com/coregx/rex/internal/ast"
)

func TestBuildExactTier(t *testing.T) {
	props := analysis.PatternProperties{ExactLiteral: []byte("hello")}
	pf := Build(props)
	if pf == nil || !pf.IsComplete() {
		t.Fatal("expected complete exact-literal prefilter")
	}
	if pos := pf.Find([]byte("say hello there"), 0); pos != 4 {
		t.Errorf("Find = %d, want 4", pos)
	}
}

func TestBuildPrefixTier(t *testing.T) {
	props := analysis.PatternProperties{LiteralPrefix: []byte("abc")}
	pf := Build(props)
	if pf == nil || pf.IsComplete() {
		t.Fatal("expected incomplete prefix prefilter")
	}
	if pos := pf.Find([]byte("xxabcdef"), 0); pos != 2 {
		t.Errorf("Find = %d, want 2", pos)
	}
}

func TestBuildRequiredTier(t *testing.T) {
	props := analysis.PatternProperties{RequiredLiteral: []byte("ERROR")}
	pf := Build(props)
	if pf == nil || pf.IsComplete() {
		t.Fatal("expected incomplete required-literal prefilter")
	}
	if pos := pf.Find([]byte("log: ERROR here"), 0); pos != 5 {
		t.Errorf("Find = %d, want 5", pos)
	}
}

func TestBuildClassTier(t *testing.T) {
	var digits ast.ByteSet
	digits.AddRange('0', '9')
	props := analysis.PatternProperties{LeadingClass: digits, HasLeadingClass: true}
	pf := Build(props)
	if pf == nil || pf.IsComplete() {
		t.Fatal("expected incomplete leading-class prefilter")
	}
	if pos := pf.Find([]byte("call 555-1234"), 0); pos != 5 {
		t.Errorf("Find = %d, want 5", pos)
	}
	if pos := pf.Find([]byte("no digits at all"), 0); pos != -1 {
		t.Errorf("Find = %d, want -1", pos)
	}
}

func TestBuildNoTier(t *testing.T) {
	if pf := Build(analysis.PatternProperties{}); pf != nil {
		t.Errorf("expected nil prefilter, got %v", pf)
	}
}
