package nfa

import "errors"

// Sentinel errors the NFA engine can return.
var (
	// ErrInvalidStart indicates a start offset outside [0, len(haystack)].
	ErrInvalidStart = errors.New("nfa: start offset out of range")
)

// BudgetExceededError reports that a single match attempt consumed more
// than its configured step budget, signaling a pathological
// pattern/haystack combination rather than a bug in the pattern itself.
type BudgetExceededError struct {
	Budget uint64
}

func (e *BudgetExceededError) Error() string {
	return "nfa: step budget exceeded"
}
