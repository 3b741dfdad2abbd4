package ast

// ByteSet is a dense bitset over all 256 byte values. It backs character
// classes (`[a-z0-9_]`), the predefined escape classes (`\d`, `\w`, `\s`),
// and the wildcard's "any byte but newline" set.
//
// A fixed 4-word bitset is simpler and faster than a general-purpose
// variable-size bitset for a universe this small; there is no benefit to
// pulling in a library built for large, sparse, dynamically sized sets.
type ByteSet [4]uint64

// AddByte adds a single byte to the set.
func (s *ByteSet) AddByte(b byte) {
	s[b>>6] |= 1 << (b & 63)
}

// AddRange adds every byte in [lo, hi] (inclusive) to the set. Callers are
// responsible for ensuring lo <= hi.
func (s *ByteSet) AddRange(lo, hi byte) {
	for b := int(lo); b <= int(hi); b++ {
		s.AddByte(byte(b))
	}
}

// Contains reports whether b is a member of the set.
func (s ByteSet) Contains(b byte) bool {
	return s[b>>6]&(1<<(b&63)) != 0
}

// Negated returns the complement of s over all 256 byte values.
func (s ByteSet) Negated() ByteSet {
	var out ByteSet
	for i := range out {
		out[i] = ^s[i]
	}
	return out
}

// Count returns the number of bytes in the set.
func (s ByteSet) Count() int {
	n := 0
	for _, word := range s {
		for word != 0 {
			word &= word - 1
			n++
		}
	}
	return n
}

// Bytes returns the members of the set in ascending order. Used by the
// byte-class matcher to build direct-compare matchers for classes with few
// members.
func (s ByteSet) Bytes() []byte {
	out := make([]byte, 0, s.Count())
	for b := 0; b < 256; b++ {
		if s.Contains(byte(b)) {
			out = append(out, byte(b))
		}
	}
	return out
}

// Intersects reports whether s and other share at least one byte.
func (s ByteSet) Intersects(other ByteSet) bool {
	for i := range s {
		if s[i]&other[i] != 0 {
			return true
		}
	}
	return false
}

// Union returns the set containing every byte in s or other.
func (s ByteSet) Union(other ByteSet) ByteSet {
	var out ByteSet
	for i := range out {
		out[i] = s[i] | other[i]
	}
	return out
}

// Predefined escape classes. \w includes '_', matching the usual
// word-character definition [A-Za-z0-9_].

// DigitClass returns the byte set for [0-9].
func DigitClass() ByteSet {
	var s ByteSet
	s.AddRange('0', '9')
	return s
}

// WordClass returns the byte set for [A-Za-z0-9_].
func WordClass() ByteSet {
	var s ByteSet
	s.AddRange('a', 'z')
	s.AddRange('A', 'Z')
	s.AddRange('0', '9')
	s.AddByte('_')
	return s
}

// SpaceClass returns the byte set for [ \t\n\r\f\v].
func SpaceClass() ByteSet {
	var s ByteSet
	for _, b := range []byte{' ', '\t', '\n', '\r', '\f', '\v'} {
		s.AddByte(b)
	}
	return s
}

// NewlineExcluded returns the byte set matched by `.`: every byte except '\n'.
func NewlineExcluded() ByteSet {
	var s ByteSet
	for i := range s {
		s[i] = ^uint64(0)
	}
	s.RemoveByte('\n')
	return s
}

// RemoveByte removes b from the set.
func (s *ByteSet) RemoveByte(b byte) {
	s[b>>6] &^= 1 << (b & 63)
}
