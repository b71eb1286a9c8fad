package expr

import (
	"errors"
	"fmt"
)

var (
	// ErrSyntax is wrapped by every *ParseError.
	ErrSyntax = errors.New("syntax error")

	// ErrEval marks failures that happen while computing a well-formed expression.
	ErrEval = errors.New("evaluation error")

	// ErrDivisionByZero is returned for x/0 and x%0.
	ErrDivisionByZero = fmt.Errorf("%w: division by zero", ErrEval)

	// ErrDomain is returned when a function is applied outside its domain
	// or a result is not a finite number.
	ErrDomain = errors.New("math domain error")

	// ErrNotNumeric is returned by ParseFloat and ParseInt.
	ErrNotNumeric = errors.New("not a number")
)

// ParseError describes malformed input. Pos is a byte offset into the source.
type ParseError struct {
	Pos int
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("syntax error at %d: %s", e.Pos, e.Msg)
}

func (e *ParseError) Unwrap() error {
	return ErrSyntax
}
