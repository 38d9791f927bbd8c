// Package expression evaluates calculator input: percent rewriting,
// tokenization, infix-to-postfix conversion and postfix evaluation.
package expression

// TokenType represents the type of a token.
type TokenType int

const (
	TokenNumber   TokenType = iota // decimal literal
	TokenOperator                  // + - * /
)

// String returns the string representation of the token type.
func (t TokenType) String() string {
	switch t {
	case TokenNumber:
		return "NUMBER"
	case TokenOperator:
		return "OPERATOR"
	default:
		return "UNKNOWN"
	}
}

// Token represents a lexical token.
type Token struct {
	Type    TokenType
	Literal string
	Pos     int // Position in the normalized input, -1 for synthetic tokens
}

// String returns the literal text of the token.
func (t Token) String() string {
	return t.Literal
}

// IsOperator reports whether the token is an arithmetic operator.
func (t Token) IsOperator() bool {
	return t.Type == TokenOperator
}

// numberToken builds a number token.
func numberToken(literal string, pos int) Token {
	return Token{Type: TokenNumber, Literal: literal, Pos: pos}
}

// operatorToken builds an operator token.
func operatorToken(op byte, pos int) Token {
	return Token{Type: TokenOperator, Literal: string(op), Pos: pos}
}

// precedence returns the binding strength of an operator literal.
func precedence(op string) int {
	switch op {
	case "+", "-":
		return 1
	case "*", "/":
		return 2
	default:
		return 0
	}
}

func isOperator(ch byte) bool {
	return ch == '+' || ch == '-' || ch == '*' || ch == '/'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
