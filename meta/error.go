package meta

import "fmt"

// CompileError reports that a pattern string failed to parse, wrapping
// the lexer/parser's underlying error alongside the pattern text.
type CompileError struct {
	Pattern string
	Err     error
}

func (e *CompileError) Error() string {
	return "rex: error parsing pattern `" + e.Pattern + "`: " + e.Err.Error()
}

func (e *CompileError) Unwrap() error {
	return e.Err
}

// InvalidInputError reports that a caller-supplied start offset fell
// outside [0, len(haystack)]. It is raised from match operations, never
// from Compile.
type InvalidInputError struct {
	Start       int
	HaystackLen int
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("rex: start %d out of range [0, %d]", e.Start, e.HaystackLen)
}
