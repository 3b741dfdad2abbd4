package dfa

import "fmt"

// ErrorKind classifies why a DFA could not be built.
type ErrorKind uint8

const (
	// StateLimitExceeded means determinization would exceed MaxStates.
	StateLimitExceeded ErrorKind = iota
	// QuantifierTooWide means a bounded quantifier's unroll would exceed
	// MaxUnroll.
	QuantifierTooWide
	// Ineligible means the pattern's analysis.PatternProperties marked it
	// DFAEligible=false (capturing groups, etc.) before construction was
	// even attempted.
	Ineligible
)

func (k ErrorKind) String() string {
	switch k {
	case StateLimitExceeded:
		return "StateLimitExceeded"
	case QuantifierTooWide:
		return "QuantifierTooWide"
	case Ineligible:
		return "Ineligible"
	default:
		return fmt.Sprintf("UnknownErrorKind(%d)", k)
	}
}

// BuildError reports that Build could not produce a DFA for a pattern.
// Callers (meta.Engine) treat this as expected and fall back to the NFA
// engine, never as fatal.
type BuildError struct {
	Kind    ErrorKind
	Message string
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("dfa: %s: %s", e.Kind, e.Message)
}
