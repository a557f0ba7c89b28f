// Package transform classifies the mathematical transformation applied
// to a model's response variable by inspecting the response expression
// string, e.g. "log(y + 2)" -> log(x+2).
//
// Detection is pure pattern matching over the expression text. No
// expression evaluation takes place: additive constants are recovered
// with a restricted literal parser that accepts numeric literals only.
package transform

import (
	"strconv"
	"strings"

	"github.com/statkit/insight/model"
)

// Tag is the canonical label for a detected response transformation.
type Tag string

const (
	Identity Tag = "identity" // no transformation
	Log      Tag = "log"      // log(x)
	Log1p    Tag = "log1p"    // log1p(x)
	Log2     Tag = "log2"     // log2(x)
	Log10    Tag = "log10"    // log10(x)
	Exp      Tag = "exp"      // exp(x)
	Expm1    Tag = "expm1"    // expm1(x)
	Sqrt     Tag = "sqrt"     // sqrt(x)
	LogLog   Tag = "log-log"  // log(log(x))
	Power    Tag = "power"    // I(x^2)
)

// ShiftedLog returns the tag for a shifted log transform, log(x+k).
func ShiftedLog(k float64) Tag {
	return Tag("log" + shiftSuffix(k))
}

// ShiftedSqrt returns the tag for a shifted square-root transform, sqrt(x+k).
func ShiftedSqrt(k float64) Tag {
	return Tag("sqrt" + shiftSuffix(k))
}

// shiftSuffix renders "(x+k)" with the sign folded into the operator,
// so a negative shift reads "(x-1)" rather than "(x+-1)".
func shiftSuffix(k float64) string {
	if k < 0 {
		return "(x-" + strconv.FormatFloat(-k, 'g', -1, 64) + ")"
	}

	return "(x+" + strconv.FormatFloat(k, 'g', -1, 64) + ")"
}

// Detect classifies the response transformation of a fitted model.
//
// The boolean is false when the model exposes no term structure or when
// the expression wraps the response in an opaque call that cannot be
// classified. An absent result is not an error.
func Detect(m model.Model) (Tag, bool) {
	if m == nil {
		return "", false
	}
	expr := m.ResponseExpression()
	if strings.TrimSpace(expr) == "" {
		return "", false
	}

	return DetectExpression(expr)
}

// DetectExpression classifies a response expression string.
//
// Checks run in a fixed priority order; a later matching check overrides
// an earlier one. The log1p/expm1/log2/log10/exp overrides are applied
// unconditionally in that source order, so an expression somehow
// matching several of them resolves to the last match. Well-formed
// formulas contain at most one, making the order unobservable in
// practice; the behavior is kept as documented rather than "fixed".
func DetectExpression(expr string) (Tag, bool) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return "", false
	}

	tag := Identity

	// log(...), including log-log and shifted forms.
	if inner, ok := callArgument(expr, "log"); ok {
		switch {
		case hasCall(inner, "log"):
			tag = LogLog
		default:
			if k, found := additiveConstant(inner); found && k != 0 {
				tag = ShiftedLog(k)
			} else {
				tag = Log
			}
		}
	}

	// Unconditional overrides, last match wins.
	if hasCall(expr, "log1p") {
		tag = Log1p
	}
	if hasCall(expr, "expm1") {
		tag = Expm1
	}
	if hasCall(expr, "log2") {
		tag = Log2
	}
	if hasCall(expr, "log10") {
		tag = Log10
	}
	if hasCall(expr, "exp") {
		tag = Exp
	}

	// sqrt(...), plain or shifted.
	if inner, ok := callArgument(expr, "sqrt"); ok {
		if k, found := additiveConstant(inner); found && k != 0 {
			tag = ShiftedSqrt(k)
		} else {
			tag = Sqrt
		}
	}

	// I(...) wrapper: opaque, except for the exact square-power form.
	if inner, ok := callArgument(expr, "I"); ok {
		if isSquarePower(inner) {
			return Power, true
		}

		return "", false
	}

	return tag, true
}
