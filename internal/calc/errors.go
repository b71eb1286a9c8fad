package calc

import (
	"errors"
	"fmt"
)

// Display sentinels written to the buffer when an operation fails.
const (
	DisplayError        = "Error"
	DisplayInvalidInput = "Invalid Input"
)

var (
	// ErrUnknownToken is returned for labels that are not on any keypad.
	ErrUnknownToken = errors.New("unknown token")

	// ErrInvalidInput is returned by converters that cannot read the buffer.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownAction is returned by Perform for actions outside the menu.
	ErrUnknownAction = errors.New("unknown action")
)

// TokenError records which token failed. The underlying error is one of the
// expr sentinels (ErrSyntax, ErrEval, ErrDomain, ErrNotNumeric) or
// ErrUnknownToken.
type TokenError struct {
	Token Token
	Err   error
}

func (e *TokenError) Error() string {
	return fmt.Sprintf("%s: %v", e.Token, e.Err)
}

func (e *TokenError) Unwrap() error {
	return e.Err
}
