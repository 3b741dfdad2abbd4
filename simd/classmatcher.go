package simd

import (
	"math/bits"

	"github.com/coregx/rex/internal/ast"
)

// Matcher tests byte-set membership. For classes with at most 3 members
// it compares each candidate byte directly (the single/double/triple-byte
// equality check generalizes past literal search into class membership).
// Larger classes use a nibble-lookup table: membership is the
// intersection of a 16-entry low-nibble bitmask table and a 16-entry
// high-nibble bitmask table, the scalar analogue of a pshufb-style
// vector lookup.
type Matcher struct {
	set     ast.ByteSet
	negated bool
	small   []byte // direct-compare members, set only when len(small) <= 3
	lo, hi  [16]uint16
	useWide bool
}

// NewMatcher builds a Matcher over set. When negated is true, TestByte
// and Scan report membership in the complement of set, matching
// ast.Node's own Negated field for KindClass nodes.
func NewMatcher(set ast.ByteSet, negated bool) *Matcher {
	m := &Matcher{set: set, negated: negated}
	members := set.Bytes()
	if !negated && len(members) <= 3 {
		m.small = members
		return m
	}
	m.useWide = true
	for _, b := range members {
		lowBit := uint16(1) << (b & 0xF)
		m.lo[b&0xF] |= lowBit
		m.hi[b>>4] |= lowBit
	}
	return m
}

// TestByte reports whether b is a member of the matcher's (possibly
// negated) set.
func (m *Matcher) TestByte(b byte) bool {
	if !m.useWide {
		for _, c := range m.small {
			if b == c {
				return true
			}
		}
		return false
	}
	return (m.lo[b&0xF]&m.hi[b>>4] != 0) != m.negated
}

// Scan returns the offset of the first byte in haystack at or after start
// that is a member of the matcher's set, or -1 if none is found. The
// haystack is processed in lane-sized chunks with a scalar tail: small
// sets run one SWAR zero-byte search per member byte, larger sets test
// the nibble tables chunk by chunk.
func (m *Matcher) Scan(haystack []byte, start int) int {
	if start < 0 {
		start = 0
	}
	if start >= len(haystack) {
		return -1
	}
	if !m.useWide {
		return m.scanSmall(haystack, start)
	}
	return m.scanWide(haystack, start)
}

func (m *Matcher) scanSmall(haystack []byte, start int) int {
	if len(m.small) == 0 {
		return -1
	}
	buf := haystack[start:]
	var needles [3]uint64
	for i, b := range m.small {
		needles[i] = broadcast(b)
	}

	i := 0
	for ; i+8 <= len(buf); i += 8 {
		word := leUint64(buf[i:])
		var z uint64
		for j := 0; j < len(m.small); j++ {
			z |= hasZeroByte(word ^ needles[j])
		}
		if z != 0 {
			return start + i + bits.TrailingZeros64(z)/8
		}
	}
	for ; i < len(buf); i++ {
		if m.TestByte(buf[i]) {
			return start + i
		}
	}
	return -1
}

func (m *Matcher) scanWide(haystack []byte, start int) int {
	buf := haystack[start:]
	chunk := 8
	if hasAVX2 {
		chunk = laneWidth
	}

	i := 0
	for ; i+chunk <= len(buf); i += chunk {
		for j := 0; j < chunk; j++ {
			b := buf[i+j]
			if (m.lo[b&0xF]&m.hi[b>>4] != 0) != m.negated {
				return start + i + j
			}
		}
	}
	for ; i < len(buf); i++ {
		b := buf[i]
		if (m.lo[b&0xF]&m.hi[b>>4] != 0) != m.negated {
			return start + i
		}
	}
	return -1
}

// scanScalarReference is the unconditional scalar membership test used by
// the scalar/vector equivalence tests: it never consults the
// small/nibble-table fast paths, only ast.ByteSet.Contains directly.
func scanScalarReference(set ast.ByteSet, negated bool, haystack []byte, start int) int {
	for i := start; i < len(haystack); i++ {
		if set.Contains(haystack[i]) != negated {
			return i
		}
	}
	return -1
}
