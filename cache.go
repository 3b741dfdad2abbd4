package rex

import "github.com/coregx/rex/meta"

// CompileCached compiles pattern through the process-wide compiled-pattern
// cache (see meta.CompileCached): repeated calls with the same pattern
// string reuse the already-compiled Regex instead of re-running the
// lex/parse/analyze/build pipeline.
func CompileCached(pattern string) (*Regex, error) {
	engine, err := meta.CompileCached(pattern)
	if err != nil {
		return nil, err
	}
	return &Regex{engine: engine, pattern: pattern}, nil
}

// MustCompileCached is CompileCached but panics on error, for patterns
// known to be valid.
func MustCompileCached(pattern string) *Regex {
	re, err := CompileCached(pattern)
	if err != nil {
		panic("rex: CompileCached(" + pattern + "): " + err.Error())
	}
	return re
}

// MatchString compiles pattern (via the package cache) and reports
// whether it matches s. Mirrors stdlib regexp.MatchString's package-level
// convenience shape for one-off matches where keeping a compiled Regex
// around isn't worth it.
func MatchString(pattern, s string) (bool, error) {
	re, err := CompileCached(pattern)
	if err != nil {
		return false, err
	}
	return re.MatchString(s), nil
}

// Match compiles pattern (via the package cache) and reports whether it
// matches b.
func Match(pattern string, b []byte) (bool, error) {
	re, err := CompileCached(pattern)
	if err != nil {
		return false, err
	}
	return re.Match(b), nil
}

// Search compiles pattern (via the package cache) and reports whether it
// occurs anywhere in haystack, without requiring callers to hold onto a
// compiled Regex.
func Search(pattern, haystack string) (bool, error) {
	return MatchString(pattern, haystack)
}

// FindFirst compiles pattern (via the package cache) and returns the text
// of its leftmost match in haystack. The bool result reports whether a
// match was found at all, since a zero-width match (e.g. "a*" against a
// haystack with no 'a') is a valid match with an empty string of text.
func FindFirst(pattern, haystack string) (string, bool, error) {
	re, err := CompileCached(pattern)
	if err != nil {
		return "", false, err
	}
	idx := re.FindStringIndex(haystack)
	if idx == nil {
		return "", false, nil
	}
	return haystack[idx[0]:idx[1]], true, nil
}

// FindAll compiles pattern (via the package cache) and returns every
// successive non-overlapping match of the pattern in haystack.
func FindAll(pattern, haystack string) ([]string, error) {
	re, err := CompileCached(pattern)
	if err != nil {
		return nil, err
	}
	return re.FindAllString(haystack, -1), nil
}
