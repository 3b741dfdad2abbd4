package meta

import "sync/atomic"

// Find returns the first leftmost match in haystack, or nil if none.
func (e *Engine) Find(haystack []byte) *Match {
	m, _ := e.find(haystack, 0)
	return m
}

// FindAt returns the first leftmost match starting at or after at, or nil
// if none. at outside [0, len(haystack)] reports no match rather than
// panicking; callers that need the InvalidInput error for a
// caller-supplied start offset should use MatchAt instead, which
// validates at and routes through the same search once it's known to be
// in range. A step-budget exhaustion is also reported as no match here;
// MatchAt and Test surface it as a *nfa.BudgetExceededError.
func (e *Engine) FindAt(haystack []byte, at int) *Match {
	m, _ := e.find(haystack, at)
	return m
}

// find is the single search loop every public entry point routes through.
//
// Dispatch by strategy:
//   - UseAhoCorasick: the automaton itself scans for the first occurrence
//     of any branch literal; no prefilter or NFA/DFA involvement.
//   - UseDFA: the DFA runs at each candidate position; DFA-eligible
//     patterns never have capturing groups, so a DFA hit is a complete
//     answer with no group spans to fill in.
//   - UseNFA: the backtracking interpreter runs at each candidate
//     position.
//
// The prefilter's use differs by tier: an ExactLiteral hit IS the match
// (no engine call at all); a LiteralPrefix or LeadingClass hit's position
// is itself the next valid match-start candidate, so the engine runs
// exactly there; a RequiredLiteral hit only proves a match is still
// possible somewhere at or after the current scan position (the required
// substring could appear anywhere inside the eventual match, not
// necessarily at its start), so it's used purely as an early-exit check
// and the engine still tries every position in between.
//
// The returned error is non-nil only when the NFA exhausted its step
// budget; the search stops at the offending position rather than
// retrying later ones.
func (e *Engine) find(haystack []byte, at int) (*Match, error) {
	if at < 0 || at > len(haystack) {
		return nil, nil
	}
	if e.ahoCorasick != nil {
		atomic.AddUint64(&e.stats.AhoCorasickSearches, 1)
		m := e.ahoCorasick.Find(haystack, at)
		if m == nil {
			return nil, nil
		}
		return NewMatch(m.Start, m.End, [][2]int{{m.Start, m.End}}, haystack), nil
	}

	if e.prefilter != nil && len(e.props.ExactLiteral) > 0 {
		pos := e.prefilter.Find(haystack, at)
		if pos < 0 {
			atomic.AddUint64(&e.stats.PrefilterMisses, 1)
			return nil, nil
		}
		atomic.AddUint64(&e.stats.PrefilterHits, 1)
		end := pos + len(e.props.ExactLiteral)
		return NewMatch(pos, end, [][2]int{{pos, end}}, haystack), nil
	}

	pos := at
	requiredHit := -1 // most recently found RequiredLiteral occurrence; -1 means "not yet checked"
	for pos <= len(haystack) {
		if e.prefilter != nil {
			// Tier dispatch mirrors prefilter.Build's selection order
			// exactly, so the branch taken here always matches the tier
			// Build actually constructed.
			switch {
			case len(e.props.LiteralPrefix) > 0:
				hit := e.prefilter.Find(haystack, pos)
				if hit < 0 {
					atomic.AddUint64(&e.stats.PrefilterMisses, 1)
					return nil, nil
				}
				atomic.AddUint64(&e.stats.PrefilterHits, 1)
				pos = hit
			case len(e.props.RequiredLiteral) > 0:
				if pos > requiredHit {
					requiredHit = e.prefilter.Find(haystack, pos)
					if requiredHit < 0 {
						atomic.AddUint64(&e.stats.PrefilterMisses, 1)
						return nil, nil
					}
					atomic.AddUint64(&e.stats.PrefilterHits, 1)
				}
			case e.props.HasLeadingClass:
				hit := e.prefilter.Find(haystack, pos)
				if hit < 0 {
					atomic.AddUint64(&e.stats.PrefilterMisses, 1)
					return nil, nil
				}
				atomic.AddUint64(&e.stats.PrefilterHits, 1)
				pos = hit
			}
		}

		if e.dfa != nil {
			atomic.AddUint64(&e.stats.DFASearches, 1)
			if end, ok := e.dfa.Find(haystack, pos); ok {
				return NewMatch(pos, end, [][2]int{{pos, end}}, haystack), nil
			}
			pos++
			continue
		}

		atomic.AddUint64(&e.stats.NFASearches, 1)
		m, err := e.nfa.MatchAt(haystack, pos)
		if err != nil {
			return nil, err
		}
		if m != nil {
			return NewMatch(m.Start, m.End, m.Groups, haystack), nil
		}
		pos++
	}
	return nil, nil
}

// Test reports whether haystack contains a match at or after start.
// Returns an *InvalidInputError if start falls outside [0, len(haystack)],
// or a *nfa.BudgetExceededError if the backtracking engine exhausted its
// step budget before an answer was determined.
func (e *Engine) Test(haystack []byte, start int) (bool, error) {
	m, err := e.MatchAt(haystack, start)
	if err != nil {
		return false, err
	}
	return m != nil, nil
}

// MatchAt returns the leftmost match in haystack at or after start, or
// nil if there is none. Returns an *InvalidInputError if start falls
// outside [0, len(haystack)], or a *nfa.BudgetExceededError on step
// budget exhaustion; unlike FindAt (used internally by FindAll/FindIter
// with positions the loop itself already guarantees are in range),
// MatchAt is the validated entry point for caller-supplied start offsets.
func (e *Engine) MatchAt(haystack []byte, start int) (*Match, error) {
	if start < 0 || start > len(haystack) {
		return nil, &InvalidInputError{Start: start, HaystackLen: len(haystack)}
	}
	return e.find(haystack, start)
}

// IsMatch reports whether haystack contains any match.
func (e *Engine) IsMatch(haystack []byte) bool {
	if e.ahoCorasick != nil {
		return e.ahoCorasick.IsMatch(haystack)
	}
	return e.Find(haystack) != nil
}

// FindAll returns every non-overlapping leftmost match in haystack, in
// order. An empty-width match advances by one byte to guarantee
// termination.
func (e *Engine) FindAll(haystack []byte) []*Match {
	var out []*Match
	pos := 0
	for pos <= len(haystack) {
		m := e.FindAt(haystack, pos)
		if m == nil {
			break
		}
		out = append(out, m)
		if m.End() > pos {
			pos = m.End()
		} else {
			pos++
		}
	}
	return out
}

// FindIter returns a function that yields successive non-overlapping
// matches on each call, returning nil once the haystack is exhausted —
// the lazy alternative to FindAll for callers that may stop early.
func (e *Engine) FindIter(haystack []byte) func() *Match {
	pos := 0
	done := false
	return func() *Match {
		if done {
			return nil
		}
		m := e.FindAt(haystack, pos)
		if m == nil {
			done = true
			return nil
		}
		if m.End() > pos {
			pos = m.End()
		} else {
			pos++
		}
		return m
	}
}
