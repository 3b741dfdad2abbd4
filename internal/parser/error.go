package parser

import "fmt"

// SyntaxError reports a malformed pattern at the AST-construction level:
// unbalanced groups, bad bounded quantifiers, a bare quantifier with no
// preceding atom, and similar grammar violations the lexer can't see on
// its own (it only knows about individual tokens).
type SyntaxError struct {
	Pos     int
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("regex syntax error at position %d: %s", e.Pos, e.Message)
}

func newSyntaxError(pos int, format string, args ...any) *SyntaxError {
	return &SyntaxError{Pos: pos, Message: fmt.Sprintf(format, args...)}
}
