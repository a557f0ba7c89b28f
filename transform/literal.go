package transform

import (
	"regexp"
	"strconv"
	"strings"
)

// identPattern matches a variable token (an R-style or Go-style identifier,
// dots allowed).
const identPattern = `[A-Za-z_.][A-Za-z0-9_.]*`

var (
	identRe       = regexp.MustCompile(`^` + identPattern + `$`)
	squarePowerRe = regexp.MustCompile(`^\s*` + identPattern + `\s*\^\s*2\s*$`)
)

// hasCall reports whether expr contains a call to fn, i.e. fn immediately
// followed by an opening parenthesis at a word boundary. "log(" does not
// match inside "log1p(" or "flog(".
func hasCall(expr, fn string) bool {
	_, ok := callArgument(expr, fn)
	return ok
}

// callArgument extracts the argument of the first call to fn in expr,
// honoring nested parentheses: callArgument("log(f(y) + 2)", "log")
// returns "f(y) + 2".
func callArgument(expr, fn string) (string, bool) {
	re := regexp.MustCompile(`(^|[^A-Za-z0-9_.])` + regexp.QuoteMeta(fn) + `\(`)
	loc := re.FindStringIndex(expr)
	if loc == nil {
		return "", false
	}

	// loc[1] points just past the opening parenthesis.
	depth := 1
	for i := loc[1]; i < len(expr); i++ {
		switch expr[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return strings.TrimSpace(expr[loc[1]:i]), true
			}
		}
	}

	// Unbalanced parentheses: treat as no match.
	return "", false
}

// additiveConstant recovers the additive constant k from an argument of
// the form "x + k", "k + x" or "x - k" where x is a single variable
// token and k is a numeric literal. This is deliberately restricted:
// the constant side must parse directly as a float; no arithmetic is
// evaluated.
func additiveConstant(arg string) (float64, bool) {
	// Split on the first top-level + or - (not a leading sign).
	depth := 0
	for i := 1; i < len(arg); i++ {
		switch arg[i] {
		case '(':
			depth++
		case ')':
			depth--
		case '+', '-':
			if depth != 0 {
				continue
			}
			left := strings.TrimSpace(arg[:i])
			right := strings.TrimSpace(arg[i+1:])
			negate := arg[i] == '-'

			if k, ok := constantSide(left, right); ok {
				if negate {
					k = -k
				}

				return k, true
			}
			if !negate {
				// "k + x": constant on the left.
				if k, ok := constantSide(right, left); ok {
					return k, true
				}
			}

			return 0, false
		}
	}

	return 0, false
}

// constantSide returns the numeric value of constant when variable is a
// bare identifier and constant parses as a float literal.
func constantSide(variable, constant string) (float64, bool) {
	if !identRe.MatchString(variable) {
		return 0, false
	}
	k, err := strconv.ParseFloat(constant, 64)
	if err != nil {
		return 0, false
	}

	return k, true
}

// isSquarePower reports whether the wrapped expression is exactly a
// square power of a single variable, e.g. "x^2".
func isSquarePower(inner string) bool {
	return squarePowerRe.MatchString(inner)
}
