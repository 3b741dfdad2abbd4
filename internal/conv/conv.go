// Package conv provides checked narrowing conversions for the engine's
// index types. Overflow panics rather than wrapping: an AST or automaton
// large enough to overflow these indices indicates a bug in the limits
// enforced upstream, not bad user input.
package conv

import "math"

// IntToUint32 converts an int to uint32, panicking if n is negative or
// exceeds math.MaxUint32. The comparison goes through uint so it stays
// correct on 32-bit platforms, where int cannot represent MaxUint32.
func IntToUint32(n int) uint32 {
	if n < 0 || uint(n) > math.MaxUint32 {
		panic("conv: int value out of uint32 range")
	}
	return uint32(n)
}
