package simd

import (
	"sync"

	"github.com/coregx/rex/internal/ast"
)

// predefined identifies one of the built-in byte classes, requestable by
// semantic id rather than by rebuilding the ByteSet each time.
type predefined uint8

const (
	Digits predefined = iota
	Lowercase
	Uppercase
	Letters
	Alnum
	Whitespace
	WordChars
	HexDigits
)

var (
	predefinedOnce  sync.Once
	predefinedCache map[predefined]*Matcher
)

// Predefined returns the process-wide cached Matcher for id, building the
// full cache lazily on first request. Building all eight at once on first
// touch (rather than one-by-one with per-id sync.Once) keeps the cache
// population simple and each Matcher is cheap to construct.
func Predefined(id predefined) *Matcher {
	predefinedOnce.Do(buildPredefinedCache)
	return predefinedCache[id]
}

func buildPredefinedCache() {
	var lower, upper, digits ast.ByteSet
	lower.AddRange('a', 'z')
	upper.AddRange('A', 'Z')
	digits.AddRange('0', '9')

	letters := lower.Union(upper)
	alnum := letters.Union(digits)
	word := alnum
	word.AddByte('_')

	var hex ast.ByteSet
	hex.AddRange('0', '9')
	hex.AddRange('a', 'f')
	hex.AddRange('A', 'F')

	predefinedCache = map[predefined]*Matcher{
		Digits:     NewMatcher(digits, false),
		Lowercase:  NewMatcher(lower, false),
		Uppercase:  NewMatcher(upper, false),
		Letters:    NewMatcher(letters, false),
		Alnum:      NewMatcher(alnum, false),
		Whitespace: NewMatcher(ast.SpaceClass(), false),
		WordChars:  NewMatcher(word, false),
		HexDigits:  NewMatcher(hex, false),
	}
}
