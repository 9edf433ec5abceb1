package variables

import (
	"regexp"
	"strconv"
	"strings"
)

// comparisonPattern matches the comparison form of a section condition:
// a variable name, a comparison operator, and a numeric literal
// (e.g. "DETENTION_DAYS > 180").
var comparisonPattern = regexp.MustCompile(`^\s*([A-Z][A-Z0-9_]*)\s*(>=|<=|==|!=|>|<)\s*(-?\d+(?:\.\d+)?)\s*$`)

// EvaluateCondition evaluates a section condition against the current
// variable set.
//
// If expr parses as "KEY OP NUMBER", both sides are coerced to numbers (a
// missing or non-numeric variable coerces to 0) and the comparison is
// applied. Any other expression is treated as a bare variable name: it is
// true iff the variable has a non-empty value that is not the literal
// string "false" or "0". Evaluation never fails; an expression that cannot
// be parsed falls back to the variable-name rule.
func EvaluateCondition(expr string, values map[string]string) bool {
	if match := comparisonPattern.FindStringSubmatch(expr); match != nil {
		left := coerceNumber(values[match[1]])
		right := coerceNumber(match[3])

		switch match[2] {
		case ">":
			return left > right
		case "<":
			return left < right
		case ">=":
			return left >= right
		case "<=":
			return left <= right
		case "==":
			return left == right
		case "!=":
			return left != right
		}
	}

	name := strings.TrimSpace(expr)
	value, ok := values[name]
	if !ok || value == "" {
		return false
	}
	return value != "false" && value != "0"
}

// IncludeSection reports whether a section belongs in rendered output. A
// required section is always included. An optional section with a condition
// is included iff the condition evaluates true; an optional section without
// one is always excluded from rendering (authoring views still show it).
func IncludeSection(required bool, condition string, values map[string]string) bool {
	if required {
		return true
	}
	if strings.TrimSpace(condition) == "" {
		return false
	}
	return EvaluateCondition(condition, values)
}

// coerceNumber converts a variable value to a float for comparison.
// Anything that does not parse, including the empty string, coerces to 0.
func coerceNumber(value string) float64 {
	parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0
	}
	return parsed
}
