package expression

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	stack "github.com/duke-git/lancet/v2/datastructure/stack"
	"github.com/duke-git/lancet/v2/strutil"
)

// EvalPostfix evaluates a postfix token sequence with a value stack.
//
// Each operator pops the right operand first, then the left one. The stack
// must hold exactly one value once every token is consumed. Division by zero
// is not checked here; it yields an infinity that Evaluate rejects.
func EvalPostfix(tokens []Token) (float64, error) {
	values := stack.NewArrayStack[float64]()

	for _, tok := range tokens {
		switch tok.Type {
		case TokenNumber:
			v, err := parseNumber(tok)
			if err != nil {
				return 0, err
			}
			values.Push(v)

		case TokenOperator:
			if values.Size() < 2 {
				return 0, NewExpressionError(tok.Pos, fmt.Sprintf("operator %q is missing an operand", tok.Literal), ErrMalformedExpression)
			}
			right, _ := values.Pop()
			left, _ := values.Pop()
			v, err := apply(tok, *left, *right)
			if err != nil {
				return 0, err
			}
			values.Push(v)

		default:
			return 0, NewExpressionError(tok.Pos, fmt.Sprintf("unknown token type: %s", tok.Type), ErrMalformedExpression)
		}
	}

	if values.Size() != 1 {
		return 0, NewExpressionError(-1, fmt.Sprintf("expected a single value, %d left", values.Size()), ErrMalformedExpression)
	}
	result, _ := values.Pop()
	return *result, nil
}

// parseNumber parses a number token. Literals too small to represent
// round to zero; literals too large overflow to a non-finite value.
func parseNumber(tok Token) (float64, error) {
	v, err := strconv.ParseFloat(tok.Literal, 64)
	if err == nil {
		return v, nil
	}
	if errors.Is(err, strconv.ErrRange) {
		if isFinite(v) {
			return v, nil
		}
		return 0, NewExpressionError(tok.Pos, fmt.Sprintf("number %q is out of range", tok.Literal), ErrNonFiniteResult)
	}
	return 0, NewExpressionError(tok.Pos, fmt.Sprintf("cannot parse %q", tok.Literal), ErrInvalidNumberLiteral)
}

// apply applies a binary operator.
func apply(op Token, left, right float64) (float64, error) {
	switch op.Literal {
	case "+":
		return left + right, nil
	case "-":
		return left - right, nil
	case "*":
		return left * right, nil
	case "/":
		return left / right, nil
	default:
		return 0, NewExpressionError(op.Pos, fmt.Sprintf("unknown operator: %s", op.Literal), ErrMalformedExpression)
	}
}

// Trace records every stage of one evaluation.
type Trace struct {
	Input      string
	Normalized string
	Tokens     []Token
	Postfix    []Token
	Value      float64
	Formatted  string
}

// Explain runs the whole pipeline and returns the intermediate forms.
// Blank input fails with ErrEmptyInput.
func Explain(raw string) (*Trace, error) {
	if strutil.IsBlank(raw) {
		return nil, ErrEmptyInput
	}

	trace := &Trace{Input: raw}
	trace.Normalized = Normalize(raw)

	tokens, err := Tokenize(trace.Normalized)
	if err != nil {
		return trace, err
	}
	trace.Tokens = tokens
	trace.Postfix = ToPostfix(tokens)

	value, err := EvalPostfix(trace.Postfix)
	if err != nil {
		return trace, err
	}
	if math.IsInf(value, 0) || math.IsNaN(value) {
		return trace, NewExpressionError(-1, fmt.Sprintf("result is %v", value), ErrNonFiniteResult)
	}
	trace.Value = value
	trace.Formatted = FormatResult(value)
	return trace, nil
}

// Evaluate evaluates raw calculator input and returns the formatted result.
func Evaluate(raw string) (string, error) {
	trace, err := Explain(raw)
	if err != nil {
		return "", err
	}
	return trace.Formatted, nil
}
