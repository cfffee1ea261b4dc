// Package reerrors defines the error kinds surfaced by the regex engine's
// core. A failed parse is always reported as a SyntaxError wrapping
// ErrNotRegex, so callers can check the kind with errors.Is and still get at
// the position info by typecasting.
package reerrors

import (
	"errors"
	"fmt"
)

// ErrNotRegex is the kind of all errors reported for input that is not a
// valid regular expression.
var ErrNotRegex = errors.New("expression is not a valid regex")

// SyntaxError is an error caused by attempting to parse an expression that
// does not conform to the regex grammar. It carries the offending expression
// and the byte offset the parser had reached when it gave up.
type SyntaxError struct {
	// Expr is the full expression that failed to parse.
	Expr string

	// Pos is the byte offset into Expr where the problem was detected. It is
	// len(Expr) when the problem is premature end of input.
	Pos int

	msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s at position %d: %s", e.Expr, e.Pos, e.msg)
}

// Unwrap gives the error kind so that errors.Is(err, ErrNotRegex) holds for
// every SyntaxError.
func (e *SyntaxError) Unwrap() error {
	return ErrNotRegex
}

// Syntaxf returns a new SyntaxError for the given expression and position.
// The arguments given are the format string and the arguments to the format
// string for the detail message.
func Syntaxf(expr string, pos int, format string, a ...interface{}) error {
	return &SyntaxError{
		Expr: expr,
		Pos:  pos,
		msg:  fmt.Sprintf(format, a...),
	}
}
