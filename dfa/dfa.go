// Package dfa implements a dense, eagerly-built byte-level DFA: a
// Thompson-construction-style compile from the AST, subset-constructed
// up front into a flat table of states (not lazily during search), used
// whenever analysis.PatternProperties.DFAEligible holds.
package dfa

// DFA is an immutable, dense table-driven automaton: every state has all
// 256 byte transitions precomputed, so a search step is a single array
// index with no determinization work at match time.
type DFA struct {
	states []State
	// start is the entry state valid when a match attempt begins at true
	// haystack offset 0 (where a leading `^` can fire); startNoAnchor is
	// the entry state for every other start offset.
	start         StateID
	startNoAnchor StateID
}

// Find runs a leftmost-longest search for a match starting exactly at
// start (no internal scanning across positions — the caller, typically
// prefilter-driven, advances start between attempts). Returns
// (matchEnd, true) if a match is found, or (-1, false) otherwise.
func (d *DFA) Find(haystack []byte, start int) (int, bool) {
	state := d.startNoAnchor
	if start == 0 {
		state = d.start
	}
	pos := start
	lastMatch := -1

	if d.states[state].AcceptsAt(pos, len(haystack)) {
		lastMatch = pos
	}
	for pos < len(haystack) {
		state = d.states[state].Transition(haystack[pos])
		if state == DeadState {
			break
		}
		pos++
		if d.states[state].AcceptsAt(pos, len(haystack)) {
			lastMatch = pos
		}
	}
	if lastMatch < 0 {
		return -1, false
	}
	return lastMatch, true
}

// NumStates returns how many states the determinized automaton has,
// mainly for tests and Stats reporting.
func (d *DFA) NumStates() int {
	return len(d.states)
}
