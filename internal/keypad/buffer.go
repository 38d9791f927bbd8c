// Package keypad models the calculator input buffer and the edit rules the
// keypad applies to it. A Buffer is a value; every edit returns a new one.
package keypad

import (
	"errors"
	"fmt"
	"strings"

	"yqhp/calculator/internal/expression"
)

// ErrUnknownKey is returned by Press for a key label it does not handle.
var ErrUnknownKey = errors.New("unknown key")

// Key labels accepted by Press.
const (
	KeyDoubleZero = "00"
	KeyDot        = "."
	KeyPercent    = "%"
	KeyClear      = "AC"
	KeyBackspace  = "DEL"
	KeyEquals     = "="
)

// Buffer is the expression text being typed.
type Buffer struct {
	expr string
}

// New returns a buffer holding expr.
func New(expr string) Buffer {
	return Buffer{expr: expr}
}

// String returns the expression text.
func (b Buffer) String() string {
	return b.expr
}

// IsEmpty reports whether nothing has been typed.
func (b Buffer) IsEmpty() bool {
	return b.expr == ""
}

// AppendDigit appends a digit or "00". A leading "00" is ignored.
func (b Buffer) AppendDigit(d string) Buffer {
	if b.expr == "" && d == KeyDoubleZero {
		return b
	}
	return Buffer{expr: b.expr + d}
}

// AppendDot starts a fraction in the trailing number, unless it already has one.
func (b Buffer) AppendDot() Buffer {
	last := b.trailingNumber()
	if strings.Contains(last, ".") {
		return b
	}
	if last == "" {
		return Buffer{expr: b.expr + "0."}
	}
	return Buffer{expr: b.expr + "."}
}

// AppendOperator appends op, replacing a trailing operator. An empty buffer
// only accepts "-".
func (b Buffer) AppendOperator(op string) Buffer {
	if b.expr == "" {
		if op == "-" {
			return Buffer{expr: "-"}
		}
		return b
	}
	if isOperator(b.expr[len(b.expr)-1]) {
		return Buffer{expr: b.expr[:len(b.expr)-1] + op}
	}
	return Buffer{expr: b.expr + op}
}

// AppendPercent appends '%' only directly after a digit.
func (b Buffer) AppendPercent() Buffer {
	if b.expr == "" || !isDigit(b.expr[len(b.expr)-1]) {
		return b
	}
	return Buffer{expr: b.expr + KeyPercent}
}

// Backspace drops the last character.
func (b Buffer) Backspace() Buffer {
	if b.expr == "" {
		return b
	}
	return Buffer{expr: b.expr[:len(b.expr)-1]}
}

// Clear empties the buffer.
func (b Buffer) Clear() Buffer {
	return Buffer{}
}

// Preview evaluates the buffer for live display.
func (b Buffer) Preview() expression.Result {
	return expression.Calculate(b.expr)
}

// Equals evaluates the buffer. On success the buffer is replaced by the
// formatted result so typing can continue from it; otherwise it is cleared.
func (b Buffer) Equals() (Buffer, expression.Result) {
	result := expression.Calculate(b.expr)
	if result.Outcome != expression.OutcomeValue {
		return Buffer{}, result
	}
	return Buffer{expr: result.Text}, result
}

// Press applies one key press by label.
func (b Buffer) Press(key string) (Buffer, error) {
	switch key {
	case "0", "1", "2", "3", "4", "5", "6", "7", "8", "9", KeyDoubleZero:
		return b.AppendDigit(key), nil
	case KeyDot:
		return b.AppendDot(), nil
	case "+", "-", "*", "/":
		return b.AppendOperator(key), nil
	case "x", "×":
		return b.AppendOperator("*"), nil
	case "÷":
		return b.AppendOperator("/"), nil
	case KeyPercent:
		return b.AppendPercent(), nil
	case KeyClear, "C", "c", "ac":
		return b.Clear(), nil
	case KeyBackspace, "<", "del", "BS":
		return b.Backspace(), nil
	case KeyEquals:
		next, _ := b.Equals()
		return next, nil
	default:
		return b, fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
}

// Replay presses every key in order, stopping at the first unknown key.
func (b Buffer) Replay(keys []string) (Buffer, error) {
	for _, key := range keys {
		next, err := b.Press(key)
		if err != nil {
			return b, err
		}
		b = next
	}
	return b, nil
}

// SplitKeys splits a key sequence. Whitespace-separated input is split into
// fields so multi-character labels like "DEL" can be used; otherwise every
// character is one key.
func SplitKeys(seq string) []string {
	if strings.ContainsAny(seq, " \t\n") {
		return strings.Fields(seq)
	}
	keys := make([]string, 0, len(seq))
	for _, r := range seq {
		keys = append(keys, string(r))
	}
	return keys
}

// trailingNumber returns the digits and dots at the end of the buffer.
func (b Buffer) trailingNumber() string {
	i := len(b.expr)
	for i > 0 && (isDigit(b.expr[i-1]) || b.expr[i-1] == '.') {
		i--
	}
	return b.expr[i:]
}

func isOperator(ch byte) bool {
	return ch == '+' || ch == '-' || ch == '*' || ch == '/'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
