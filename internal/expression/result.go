package expression

import (
	"errors"
	"strconv"
)

// FormatResult renders a value in its shortest decimal form. Whole numbers
// carry no fractional part (12, not 12.0) and negative zero renders as 0.
// No rounding is applied beyond float64 formatting.
func FormatResult(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Outcome is what a display shows for an evaluation.
type Outcome int

const (
	OutcomeEmpty    Outcome = iota // blank input, nothing to show
	OutcomeValue                   // a formatted result
	OutcomeNoResult                // any failure
)

// String returns the string representation of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeEmpty:
		return "empty"
	case OutcomeValue:
		return "value"
	case OutcomeNoResult:
		return "no_result"
	default:
		return "unknown"
	}
}

// Result is the collapsed outcome of one evaluation.
type Result struct {
	Outcome Outcome
	Text    string // formatted value, set only for OutcomeValue
	Err     error  // cause of OutcomeNoResult
}

// Calculate evaluates raw input and collapses every failure other than
// empty input into OutcomeNoResult. Incomplete input such as "5+" is
// expected while typing and is not distinguished from other failures.
func Calculate(raw string) Result {
	return NewResult(Evaluate(raw))
}

// NewResult collapses an Evaluate return pair into a Result.
func NewResult(text string, err error) Result {
	switch {
	case err == nil:
		return Result{Outcome: OutcomeValue, Text: text}
	case errors.Is(err, ErrEmptyInput):
		return Result{Outcome: OutcomeEmpty}
	default:
		return Result{Outcome: OutcomeNoResult, Err: err}
	}
}
