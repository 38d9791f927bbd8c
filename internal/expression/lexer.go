package expression

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// Lexer tokenizes normalized expression strings.
type Lexer struct {
	input   string
	pos     int  // current position in input
	readPos int  // current reading position (after current char)
	ch      byte // current char under examination

	tokens []Token
}

// NewLexer creates a new Lexer for the given input.
func NewLexer(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar()
	return l
}

// readChar reads the next character and advances the position.
func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0 // ASCII NUL signifies EOF
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++
}

// atEOF reports whether the whole input has been consumed.
func (l *Lexer) atEOF() bool {
	return l.pos >= len(l.input)
}

// Tokenize scans the whole input into number and operator tokens.
//
// A '-' that starts the input or follows another operator is preceded by a
// synthetic "0" so unary minus becomes binary minus. Other operators in
// those positions are kept and fail during evaluation.
func (l *Lexer) Tokenize() ([]Token, error) {
	for !l.atEOF() {
		switch {
		case isDigit(l.ch) || l.ch == '.':
			l.emit(l.readNumber())
		case isOperator(l.ch):
			if l.ch == '-' && l.expectsOperand() {
				l.emit(numberToken("0", -1))
			}
			l.emit(operatorToken(l.ch, l.pos))
			l.readChar()
		default:
			if err := l.skipWhitespace(); err != nil {
				return nil, err
			}
		}
	}
	return l.tokens, nil
}

// expectsOperand reports whether the next token should be an operand.
func (l *Lexer) expectsOperand() bool {
	return len(l.tokens) == 0 || l.tokens[len(l.tokens)-1].IsOperator()
}

func (l *Lexer) emit(tok Token) {
	l.tokens = append(l.tokens, tok)
}

// readNumber reads a maximal run of digits and dots. The literal is not
// validated here; a malformed literal fails when it is parsed.
func (l *Lexer) readNumber() Token {
	pos := l.pos
	for !l.atEOF() && (isDigit(l.ch) || l.ch == '.') {
		l.readChar()
	}
	return numberToken(l.input[pos:l.pos], pos)
}

// skipWhitespace consumes one whitespace rune or reports the invalid
// character under the cursor.
func (l *Lexer) skipWhitespace() error {
	r, size := utf8.DecodeRuneInString(l.input[l.pos:])
	if !unicode.IsSpace(r) {
		return NewExpressionError(l.pos, fmt.Sprintf("unexpected character %q", r), ErrInvalidCharacter)
	}
	for i := 0; i < size; i++ {
		l.readChar()
	}
	return nil
}

// Tokenize is a convenience function to tokenize an expression string.
func Tokenize(expr string) ([]Token, error) {
	return NewLexer(expr).Tokenize()
}
