// Property-based tests for the evaluation pipeline.
// Property 1: + and - fold strictly left to right.
// Property 2: tokenize -> postfix -> evaluate matches a reference
// precedence evaluator and an independent JavaScript engine.
package expression

import (
	"strconv"
	"strings"
	"testing"

	"github.com/dop251/goja"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"pgregory.net/rapid"
)

var operatorSymbols = []string{"+", "-", "*", "/"}

// buildExpression joins operands with the operators selected by index.
func buildExpression(operands []int, ops []int) string {
	var sb strings.Builder
	sb.WriteString(strconv.Itoa(operands[0]))
	for i := 0; i < len(ops) && i+1 < len(operands); i++ {
		sb.WriteString(operatorSymbols[ops[i]])
		sb.WriteString(strconv.Itoa(operands[i+1]))
	}
	return sb.String()
}

// referenceEvaluate folds * and / first, then + and -, each left to right.
func referenceEvaluate(operands []int, ops []int) float64 {
	n := len(ops)
	if n > len(operands)-1 {
		n = len(operands) - 1
	}

	terms := []float64{float64(operands[0])}
	var additive []string
	for i := 0; i < n; i++ {
		next := float64(operands[i+1])
		switch op := operatorSymbols[ops[i]]; op {
		case "*":
			terms[len(terms)-1] *= next
		case "/":
			terms[len(terms)-1] /= next
		default:
			terms = append(terms, next)
			additive = append(additive, op)
		}
	}

	result := terms[0]
	for i, op := range additive {
		if op == "+" {
			result += terms[i+1]
		} else {
			result -= terms[i+1]
		}
	}
	return result
}

func evaluatePipeline(expr string) (float64, error) {
	tokens, err := Tokenize(Normalize(expr))
	if err != nil {
		return 0, err
	}
	return EvalPostfix(ToPostfix(tokens))
}

// TestLeftFoldProperty tests Property 1.
func TestLeftFoldProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("+ and - evaluate as a left fold", prop.ForAll(
		func(operands []int, signs []int) bool {
			if len(operands) == 0 {
				return true
			}
			expected := operands[0]
			ops := make([]int, 0, len(signs))
			for i, sign := range signs {
				if i+1 >= len(operands) {
					break
				}
				if sign == 0 {
					expected += operands[i+1]
				} else {
					expected -= operands[i+1]
				}
				ops = append(ops, sign)
			}

			result, err := Evaluate(buildExpression(operands, ops))
			if err != nil {
				return false
			}
			return result == strconv.Itoa(expected)
		},
		gen.SliceOfN(6, gen.IntRange(0, 99)),
		gen.SliceOfN(5, gen.IntRange(0, 1)),
	))

	properties.TestingRun(t)
}

// TestPrecedenceProperty tests Property 2 against the reference evaluator.
func TestPrecedenceProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("postfix evaluation matches precedence evaluation", prop.ForAll(
		func(operands []int, ops []int) bool {
			if len(operands) == 0 {
				return true
			}
			got, err := evaluatePipeline(buildExpression(operands, ops))
			if err != nil {
				return false
			}
			return got == referenceEvaluate(operands, ops)
		},
		gen.SliceOfN(5, gen.IntRange(10, 99)),
		gen.SliceOfN(4, gen.IntRange(0, 3)),
	))

	properties.TestingRun(t)
}

// TestJavaScriptOracleProperty tests Property 2 against goja.
func TestJavaScriptOracleProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		// products of up to seven two-digit operands stay exact in float64
		n := rapid.IntRange(1, 7).Draw(t, "n")
		operands := make([]int, n)
		ops := make([]int, n-1)
		for i := range operands {
			operands[i] = rapid.IntRange(10, 99).Draw(t, "operand")
		}
		for i := range ops {
			ops[i] = rapid.IntRange(0, 3).Draw(t, "op")
		}
		expr := buildExpression(operands, ops)

		vm := goja.New()
		want, err := vm.RunString(expr)
		if err != nil {
			t.Fatalf("goja failed on %q: %v", expr, err)
		}

		got, err := evaluatePipeline(expr)
		if err != nil {
			t.Fatalf("failed to evaluate %q: %v", expr, err)
		}
		if got != want.ToFloat() {
			t.Fatalf("%q: expected %v, got %v", expr, want.ToFloat(), got)
		}
		if ref := referenceEvaluate(operands, ops); got != ref {
			t.Fatalf("%q: reference %v, got %v", expr, ref, got)
		}
	})
}

// TestNormalizeTerminationProperty checks that every rewrite pass reaches a
// fixed point and never adds percent signs.
func TestNormalizeTerminationProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		input := rapid.StringMatching(`[0-9.%+\-*/]{0,24}`).Draw(t, "input")
		out := Normalize(input)
		if strings.Count(out, "%") > strings.Count(input, "%") {
			t.Fatalf("normalize(%q) = %q added percent signs", input, out)
		}
		if again := Normalize(out); again != out {
			t.Fatalf("normalize is not at a fixed point: %q -> %q -> %q", input, out, again)
		}
	})
}

// TestEvaluateNeverPanicsProperty checks that arbitrary keypad input
// collapses to one of the three outcomes.
func TestEvaluateNeverPanicsProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		input := rapid.StringMatching(`[0-9.%+\-*/ ]{0,20}`).Draw(t, "input")
		result := Calculate(input)
		switch result.Outcome {
		case OutcomeValue:
			if result.Text == "" || result.Err != nil {
				t.Fatalf("Calculate(%q) = %+v", input, result)
			}
		case OutcomeEmpty, OutcomeNoResult:
			if result.Text != "" {
				t.Fatalf("Calculate(%q) = %+v", input, result)
			}
		default:
			t.Fatalf("Calculate(%q) returned unknown outcome %v", input, result.Outcome)
		}
	})
}
