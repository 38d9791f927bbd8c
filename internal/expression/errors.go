package expression

import (
	"errors"
	"fmt"
)

// Error kinds. Every failure returned by this package wraps exactly one of them.
var (
	ErrInvalidCharacter     = errors.New("invalid character")
	ErrInvalidNumberLiteral = errors.New("invalid number literal")
	ErrMalformedExpression  = errors.New("malformed expression")
	ErrNonFiniteResult      = errors.New("non-finite result")
	ErrEmptyInput           = errors.New("empty input")
)

// ExpressionError represents an error during expression tokenization or evaluation.
type ExpressionError struct {
	Position int    // Position in the expression where the error occurred, -1 if unknown
	Message  string // Error message
	Cause    error  // Underlying error kind
}

// Error implements the error interface.
func (e *ExpressionError) Error() string {
	if e.Position >= 0 {
		return fmt.Sprintf("expression error at position %d: %s: %v", e.Position, e.Message, e.Cause)
	}
	return fmt.Sprintf("expression error: %s: %v", e.Message, e.Cause)
}

// Unwrap returns the underlying error.
func (e *ExpressionError) Unwrap() error {
	return e.Cause
}

// NewExpressionError creates a new ExpressionError.
func NewExpressionError(pos int, message string, cause error) *ExpressionError {
	return &ExpressionError{
		Position: pos,
		Message:  message,
		Cause:    cause,
	}
}

// ErrorKind returns a short machine-readable name for the error kind.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrEmptyInput):
		return "empty_input"
	case errors.Is(err, ErrInvalidCharacter):
		return "invalid_character"
	case errors.Is(err, ErrInvalidNumberLiteral):
		return "invalid_number_literal"
	case errors.Is(err, ErrMalformedExpression):
		return "malformed_expression"
	case errors.Is(err, ErrNonFiniteResult):
		return "non_finite_result"
	default:
		return "unknown"
	}
}
