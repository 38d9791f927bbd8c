package expression

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func literals(tokens []Token) []string {
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Literal
	}
	return out
}

func TestLexer_BasicTokens(t *testing.T) {
	tests := []struct {
		input    string
		expected []Token
	}{
		{
			input: "2+3",
			expected: []Token{
				{Type: TokenNumber, Literal: "2", Pos: 0},
				{Type: TokenOperator, Literal: "+", Pos: 1},
				{Type: TokenNumber, Literal: "3", Pos: 2},
			},
		},
		{
			input: "12.5 * 4",
			expected: []Token{
				{Type: TokenNumber, Literal: "12.5", Pos: 0},
				{Type: TokenOperator, Literal: "*", Pos: 5},
				{Type: TokenNumber, Literal: "4", Pos: 7},
			},
		},
		{
			input: "8/2-1",
			expected: []Token{
				{Type: TokenNumber, Literal: "8", Pos: 0},
				{Type: TokenOperator, Literal: "/", Pos: 1},
				{Type: TokenNumber, Literal: "2", Pos: 2},
				{Type: TokenOperator, Literal: "-", Pos: 3},
				{Type: TokenNumber, Literal: "1", Pos: 4},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens, err := Tokenize(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, tokens)
		})
	}
}

func TestLexer_UnaryMinus(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{input: "-5+3", expected: []string{"0", "-", "5", "+", "3"}},
		{input: "5*-3", expected: []string{"5", "*", "0", "-", "3"}},
		{input: "5--3", expected: []string{"5", "-", "0", "-", "3"}},
		{input: "-", expected: []string{"0", "-"}},
		// only minus gets a synthetic zero
		{input: "+5", expected: []string{"+", "5"}},
		{input: "*5", expected: []string{"*", "5"}},
		{input: "5*/3", expected: []string{"5", "*", "/", "3"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens, err := Tokenize(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, literals(tokens))
		})
	}
}

func TestLexer_SyntheticZeroHasNoPosition(t *testing.T) {
	tokens, err := Tokenize("-7")
	require.NoError(t, err)
	require.Len(t, tokens, 3)
	assert.Equal(t, Token{Type: TokenNumber, Literal: "0", Pos: -1}, tokens[0])
	assert.Equal(t, 0, tokens[1].Pos)
}

func TestLexer_NumbersAreNotValidated(t *testing.T) {
	tokens, err := Tokenize("5..2+.")
	require.NoError(t, err)
	assert.Equal(t, []string{"5..2", "+", "."}, literals(tokens))
}

func TestLexer_Whitespace(t *testing.T) {
	tokens, err := Tokenize(" 1 +\t2\n")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "+", "2"}, literals(tokens))

	tokens, err = Tokenize("1 + 2")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "+", "2"}, literals(tokens))

	tokens, err = Tokenize("")
	require.NoError(t, err)
	assert.Empty(t, tokens)
}

func TestLexer_InvalidCharacter(t *testing.T) {
	tests := []struct {
		input string
		pos   int
	}{
		{input: "2+a", pos: 2},
		{input: "(1+2)", pos: 0},
		{input: "5%", pos: 1},
		{input: "1e5", pos: 1},
		{input: "٣+1", pos: 0},
		{input: "1+\x00", pos: 2},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := Tokenize(tt.input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidCharacter))

			var exprErr *ExpressionError
			require.True(t, errors.As(err, &exprErr))
			assert.Equal(t, tt.pos, exprErr.Position)
		})
	}
}

func TestTokenType_String(t *testing.T) {
	assert.Equal(t, "NUMBER", TokenNumber.String())
	assert.Equal(t, "OPERATOR", TokenOperator.String())
	assert.Equal(t, "UNKNOWN", TokenType(99).String())
}
