package literal

import "github.com/coregx/rex/simd"

// Searcher finds the leftmost occurrence of a fixed needle: a
// single-byte needle goes straight to the vectorized Memchr; a needle of
// two or more bytes uses Memchr to find each first-byte candidate,
// compares the remaining bytes there, and on a mismatch resumes the
// candidate search one byte past the current hit. There is no skip table.
type Searcher struct {
	needle []byte
}

// NewSearcher builds a Searcher for needle.
func NewSearcher(needle []byte) *Searcher {
	return &Searcher{needle: needle}
}

// Find returns the offset of the first occurrence of the needle in
// haystack at or after start, or -1 if absent.
func (s *Searcher) Find(haystack []byte, start int) int {
	switch len(s.needle) {
	case 0:
		if start > len(haystack) {
			return -1
		}
		return start
	case 1:
		return simd.Memchr(haystack, s.needle[0], start)
	default:
		return s.findMulti(haystack, start)
	}
}

func (s *Searcher) findMulti(haystack []byte, start int) int {
	first := s.needle[0]
	for {
		hit := simd.Memchr(haystack, first, start)
		if hit == -1 {
			return -1
		}
		if hit+len(s.needle) > len(haystack) {
			return -1
		}
		if matchesAt(haystack, hit, s.needle) {
			return hit
		}
		start = hit + 1
	}
}

func matchesAt(haystack []byte, at int, needle []byte) bool {
	for i, b := range needle[1:] {
		if haystack[at+1+i] != b {
			return false
		}
	}
	return true
}
