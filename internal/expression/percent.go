package expression

import (
	"math"
	"strconv"
	"strings"
)

// percentRule inspects the '%' at index pct of s. When the rule applies it
// returns the span [start, end) to replace and the replacement text.
type percentRule func(s string, pct int) (start, end int, repl string, ok bool)

// percentRules are applied in order, each to a fixed point before the next.
var percentRules = []percentRule{
	percentBetweenNumbers,
	percentOfPrevious,
	barePercent,
}

// Normalize rewrites percent notation into plain arithmetic:
//
//	10%545  -> 54.5         (10% of 545)
//	90+10%  -> 90+9         (90 plus 10% of 90)
//	50%     -> 0.5
//
// Normalize never fails. A '%' that no rule can rewrite is left in place and
// rejected later by the tokenizer.
func Normalize(expr string) string {
	s := expr
	for _, rule := range percentRules {
		s = rewriteAll(s, rule)
	}
	return s
}

// rewriteAll applies rule to the leftmost match until none remains.
// Every rewrite replaces a span holding exactly one '%' with text holding
// none, so the percent count strictly decreases and bounds the loop.
func rewriteAll(s string, rule percentRule) string {
	remaining := strings.Count(s, "%")
	for remaining > 0 {
		start, end, repl, ok := firstMatch(s, rule)
		if !ok {
			return s
		}
		next := s[:start] + repl + s[end:]
		left := strings.Count(next, "%")
		if left >= remaining {
			return s
		}
		s, remaining = next, left
	}
	return s
}

// firstMatch returns the leftmost span the rule rewrites. Spans never
// contain more than one '%', so the first applicable '%' also has the
// leftmost span.
func firstMatch(s string, rule percentRule) (int, int, string, bool) {
	for i := 0; i < len(s); i++ {
		if s[i] != '%' {
			continue
		}
		if start, end, repl, ok := rule(s, i); ok {
			return start, end, repl, true
		}
	}
	return 0, 0, "", false
}

// percentBetweenNumbers rewrites A%B to the value of (A/100)*B.
func percentBetweenNumbers(s string, pct int) (int, int, string, bool) {
	start, ok := literalBefore(s, pct)
	if !ok {
		return 0, 0, "", false
	}
	end, ok := literalAfter(s, pct+1)
	if !ok {
		return 0, 0, "", false
	}
	a, okA := literalValue(s[start:pct])
	b, okB := literalValue(s[pct+1 : end])
	if !okA || !okB {
		return 0, 0, "", false
	}
	v := a / 100 * b
	if !isFinite(v) {
		return 0, 0, "", false
	}
	return start, end, formatDecimal(v), true
}

// percentOfPrevious rewrites A+B% and A-B% to A+V and A-V with V = (B/100)*A.
func percentOfPrevious(s string, pct int) (int, int, string, bool) {
	// B must be the whole digit/dot run, since it is preceded by the operator.
	bStart := runStart(s, pct)
	if bStart == 0 || !isLiteral(s[bStart:pct]) {
		return 0, 0, "", false
	}
	opPos := bStart - 1
	op := s[opPos]
	if op != '+' && op != '-' {
		return 0, 0, "", false
	}
	aStart, ok := literalBefore(s, opPos)
	if !ok {
		return 0, 0, "", false
	}
	base, okA := literalValue(s[aStart:opPos])
	percent, okB := literalValue(s[bStart:pct])
	if !okA || !okB {
		return 0, 0, "", false
	}
	v := percent / 100 * base
	if !isFinite(v) {
		return 0, 0, "", false
	}
	return aStart, pct + 1, formatDecimal(base) + string(op) + formatDecimal(v), true
}

// barePercent rewrites B% to B/100.
func barePercent(s string, pct int) (int, int, string, bool) {
	start, ok := literalBefore(s, pct)
	if !ok {
		return 0, 0, "", false
	}
	b, ok := literalValue(s[start:pct])
	if !ok {
		return 0, 0, "", false
	}
	return start, pct + 1, formatDecimal(b / 100), true
}

// runStart returns the start of the digit/dot run that ends at end.
func runStart(s string, end int) int {
	i := end
	for i > 0 && (isDigit(s[i-1]) || s[i-1] == '.') {
		i--
	}
	return i
}

// literalBefore returns the start of the longest decimal literal that ends
// exactly at end.
func literalBefore(s string, end int) (int, bool) {
	for start := runStart(s, end); start < end; start++ {
		if isLiteral(s[start:end]) {
			return start, true
		}
	}
	return 0, false
}

// literalAfter returns the end of the longest decimal literal starting at start.
func literalAfter(s string, start int) (int, bool) {
	i := start
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	if i == start {
		return 0, false
	}
	if i+1 < len(s) && s[i] == '.' && isDigit(s[i+1]) {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
		}
	}
	return i, true
}

// isLiteral reports whether t is digits with an optional '.'+digits fraction.
func isLiteral(t string) bool {
	i := 0
	for i < len(t) && isDigit(t[i]) {
		i++
	}
	if i == 0 {
		return false
	}
	if i == len(t) {
		return true
	}
	if t[i] != '.' {
		return false
	}
	i++
	frac := i
	for i < len(t) && isDigit(t[i]) {
		i++
	}
	return i > frac && i == len(t)
}

func literalValue(t string) (float64, bool) {
	v, err := strconv.ParseFloat(t, 64)
	if err != nil && !isFinite(v) {
		return 0, false
	}
	return v, true
}

// formatDecimal renders v in plain decimal notation, never scientific.
func formatDecimal(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func isFinite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}
