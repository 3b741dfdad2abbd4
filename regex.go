// Package rex provides a hybrid regex matching engine for Go.
//
// rex compiles a pattern once and routes every search through whichever
// engine that pattern actually qualifies for: a flat literal alternation of
// 32 or more branches hits Aho-Corasick, a capture-free pattern with bounded quantifiers hits a
// Thompson-construction DFA, and anything else (in particular, anything
// with capturing groups) falls back to a backtracking NFA interpreter. A
// literal prefilter narrows candidate positions ahead of the chosen
// engine wherever the pattern's analysis extracted one.
//
// Basic usage:
//
//	re, err := rex.Compile(`\d+`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	match := re.Find([]byte("hello 123 world"))
//	fmt.Println(string(match)) // "123"
//
// Advanced usage:
//
//	config := rex.DefaultConfig()
//	config.MaxDFAStates = 50000
//	re, err := rex.CompileWithConfig("(a|b|c)*", config)
package rex

import (
	"github.com/coregx/rex/meta"
)

// Regex represents a compiled regular expression.
//
// A Regex is safe to use concurrently from multiple goroutines: it holds
// no mutable per-search state, only the immutable compiled engines
// assembled at Compile time.
type Regex struct {
	engine  *meta.Engine
	pattern string
}

// Compile compiles a regular expression pattern using the default
// configuration. Returns an error if the pattern is invalid.
func Compile(pattern string) (*Regex, error) {
	engine, err := meta.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return &Regex{engine: engine, pattern: pattern}, nil
}

// MustCompile compiles a regular expression pattern and panics if it
// fails. Useful for patterns known to be valid at compile time.
func MustCompile(pattern string) *Regex {
	re, err := Compile(pattern)
	if err != nil {
		panic("rex: Compile(" + pattern + "): " + err.Error())
	}
	return re
}

// CompileWithConfig compiles a pattern with a caller-supplied
// configuration, allowing fine-tuning of DFA state limits, quantifier
// unroll caps, the NFA step budget, and cache sizing.
func CompileWithConfig(pattern string, config meta.Config) (*Regex, error) {
	engine, err := meta.CompileWithConfig(pattern, config)
	if err != nil {
		return nil, err
	}
	return &Regex{engine: engine, pattern: pattern}, nil
}

// DefaultConfig returns the default configuration for compilation.
// Callers can customize the returned value and pass it to
// CompileWithConfig.
func DefaultConfig() meta.Config {
	return meta.DefaultConfig()
}

// Match reports whether b contains any match of the pattern.
func (r *Regex) Match(b []byte) bool {
	return r.engine.IsMatch(b)
}

// MatchString reports whether s contains any match of the pattern.
func (r *Regex) MatchString(s string) bool {
	return r.Match([]byte(s))
}

// Test reports whether haystack contains a match starting at or after
// start. Returns an error if start is outside [0, len(haystack)].
func (r *Regex) Test(haystack []byte, start int) (bool, error) {
	return r.engine.Test(haystack, start)
}

// MatchAt returns the [start, end) bounds of the leftmost match in
// haystack at or after start, or nil if there is none. Returns an error
// if start is outside [0, len(haystack)].
func (r *Regex) MatchAt(haystack []byte, start int) ([]int, error) {
	m, err := r.engine.MatchAt(haystack, start)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, nil
	}
	return []int{m.Start(), m.End()}, nil
}

// Find returns a slice holding the text of the leftmost match in b, or
// nil if there is none.
func (r *Regex) Find(b []byte) []byte {
	m := r.engine.Find(b)
	if m == nil {
		return nil
	}
	return m.Bytes()
}

// FindString returns the text of the leftmost match in s, or "" if
// there is none.
func (r *Regex) FindString(s string) string {
	b := r.Find([]byte(s))
	if b == nil {
		return ""
	}
	return string(b)
}

// FindIndex returns a two-element slice giving the [start, end) bounds
// of the leftmost match in b, or nil if there is none.
func (r *Regex) FindIndex(b []byte) []int {
	m := r.engine.Find(b)
	if m == nil {
		return nil
	}
	return []int{m.Start(), m.End()}
}

// FindStringIndex is FindIndex for a string haystack.
func (r *Regex) FindStringIndex(s string) []int {
	return r.FindIndex([]byte(s))
}

// FindAll returns every successive non-overlapping match of the pattern
// in b. If n >= 0, it returns at most n matches; n < 0 means unbounded.
// Returns nil if there are no matches.
func (r *Regex) FindAll(b []byte, n int) [][]byte {
	if n == 0 {
		return nil
	}
	next := r.engine.FindIter(b)
	var out [][]byte
	for n < 0 || len(out) < n {
		m := next()
		if m == nil {
			break
		}
		out = append(out, m.Bytes())
	}
	return out
}

// FindAllString is FindAll for a string haystack.
func (r *Regex) FindAllString(s string, n int) []string {
	matches := r.FindAll([]byte(s), n)
	if matches == nil {
		return nil
	}
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = string(m)
	}
	return out
}

// FindAllIndex is FindAll but returns [start, end) index pairs instead
// of the matched bytes.
func (r *Regex) FindAllIndex(b []byte, n int) [][]int {
	if n == 0 {
		return nil
	}
	next := r.engine.FindIter(b)
	var out [][]int
	for n < 0 || len(out) < n {
		m := next()
		if m == nil {
			break
		}
		out = append(out, []int{m.Start(), m.End()})
	}
	return out
}

// FindIter returns a function that yields successive non-overlapping
// matches in b on each call, returning nil once the haystack is
// exhausted. An empty-width match advances the cursor by one byte so the
// iteration always terminates.
func (r *Regex) FindIter(b []byte) func() *meta.Match {
	return r.engine.FindIter(b)
}

// String returns the source text used to compile the regular
// expression.
func (r *Regex) String() string {
	return r.pattern
}

// NumSubexp returns the number of parenthesized capturing
// subexpressions in the pattern (not counting the whole-match group 0).
func (r *Regex) NumSubexp() int {
	return r.engine.NumCaptures()
}

// FindSubmatch returns the leftmost match in b along with the text of
// every capturing group. Result[0] is the whole match; result[i] is the
// ith group, or nil if that group did not participate in the match.
// Returns nil if there is no match.
func (r *Regex) FindSubmatch(b []byte) [][]byte {
	m := r.engine.Find(b)
	if m == nil {
		return nil
	}
	out := make([][]byte, m.GroupCount()+1)
	out[0] = m.Bytes()
	for i := 1; i < len(out); i++ {
		out[i] = m.GroupBytes(i)
	}
	return out
}

// FindStringSubmatch is FindSubmatch for a string haystack.
func (r *Regex) FindStringSubmatch(s string) []string {
	groups := r.FindSubmatch([]byte(s))
	if groups == nil {
		return nil
	}
	out := make([]string, len(groups))
	for i, g := range groups {
		out[i] = string(g)
	}
	return out
}

// FindSubmatchIndex returns index pairs for the leftmost match and its
// capturing groups. result[2*i:2*i+2] holds group i's [start, end)
// bounds; an unmatched group reports [-1, -1]. Returns nil if there is
// no match.
func (r *Regex) FindSubmatchIndex(b []byte) []int {
	m := r.engine.Find(b)
	if m == nil {
		return nil
	}
	n := m.GroupCount() + 1
	out := make([]int, n*2)
	for i := 0; i < n; i++ {
		start, end := m.Group(i)
		out[i*2] = start
		out[i*2+1] = end
	}
	return out
}

// FindStringSubmatchIndex is FindSubmatchIndex for a string haystack.
func (r *Regex) FindStringSubmatchIndex(s string) []int {
	return r.FindSubmatchIndex([]byte(s))
}

// Stats returns a snapshot of this pattern's search-time engine usage
// counters (NFA/DFA/Aho-Corasick dispatch counts, prefilter hit/miss
// counts).
func (r *Regex) Stats() meta.Stats {
	return r.engine.Stats()
}
