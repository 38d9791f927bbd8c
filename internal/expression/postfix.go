package expression

import (
	stack "github.com/duke-git/lancet/v2/datastructure/stack"
)

// ToPostfix converts infix tokens to Reverse Polish order with the
// shunting-yard algorithm. All operators are left-associative: pending
// operators of greater or equal precedence are emitted before the incoming
// one is pushed, so 9-5-2 becomes 9 5 - 2 -.
//
// ToPostfix does not validate operator placement; EvalPostfix rejects
// sequences with missing or leftover operands.
func ToPostfix(tokens []Token) []Token {
	output := make([]Token, 0, len(tokens))
	ops := stack.NewArrayStack[Token]()

	for _, tok := range tokens {
		if !tok.IsOperator() {
			output = append(output, tok)
			continue
		}
		for !ops.IsEmpty() {
			top, _ := ops.Peak()
			if precedence(top.Literal) < precedence(tok.Literal) {
				break
			}
			_, _ = ops.Pop()
			output = append(output, *top)
		}
		ops.Push(tok)
	}

	for !ops.IsEmpty() {
		top, _ := ops.Pop()
		output = append(output, *top)
	}
	return output
}
