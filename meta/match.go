package meta

// Match is one successful search result: the overall span plus any
// capturing-group spans. The haystack is held by reference so Bytes and
// GroupBytes can slice the original input without copying.
type Match struct {
	start    int
	end      int
	groups   [][2]int
	haystack []byte
}

// NewMatch builds a Match over [start, end) in haystack, with groups
// indexed 0..n where groups[0] == {start, end}. The haystack is stored by
// reference; callers must keep it alive for the Match's lifetime.
func NewMatch(start, end int, groups [][2]int, haystack []byte) *Match {
	return &Match{start: start, end: end, groups: groups, haystack: haystack}
}

// Start returns the inclusive start offset of the whole match.
func (m *Match) Start() int { return m.start }

// End returns the exclusive end offset of the whole match.
func (m *Match) End() int { return m.end }

// Bytes returns the matched slice of the original haystack.
func (m *Match) Bytes() []byte { return m.haystack[m.start:m.end] }

// String returns the matched text.
func (m *Match) String() string { return string(m.Bytes()) }

// GroupCount returns how many capturing groups the pattern declared
// (not counting the implicit whole-match group 0).
func (m *Match) GroupCount() int {
	if len(m.groups) == 0 {
		return 0
	}
	return len(m.groups) - 1
}

// Group returns the [start, end) span of capturing group i (1-based; 0 is
// the whole match), or (-1, -1) if that group didn't participate in the
// match or i is out of range.
func (m *Match) Group(i int) (int, int) {
	if i < 0 || i >= len(m.groups) {
		return -1, -1
	}
	g := m.groups[i]
	return g[0], g[1]
}

// GroupBytes returns group i's matched slice, or nil if it didn't
// participate in the match.
func (m *Match) GroupBytes(i int) []byte {
	start, end := m.Group(i)
	if start < 0 {
		return nil
	}
	return m.haystack[start:end]
}
