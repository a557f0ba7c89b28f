package format

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/statkit/insight/table"
)

// Mode selects the rendering strategy for non-missing values.
type Mode uint8

const (
	// ModeFixed renders fixed-point with Spec.Digits decimal places,
	// switching to scientific notation past the magnitude thresholds.
	ModeFixed Mode = iota
	// ModeScientific always renders scientific notation with
	// Spec.Digits decimal places, ignoring the threshold rule.
	ModeScientific
	// ModeSignif rounds to Spec.Digits significant figures and renders
	// plain text.
	ModeSignif
)

// Default digit counts used when a digits tag carries no parsable suffix.
const (
	defaultFixedDigits      = 2
	defaultScientificDigits = 5
	defaultSignifDigits     = 3
)

// Spec describes a single formatting pass. The zero value is not useful;
// start from DefaultSpec.
type Spec struct {
	// Digits is the decimal-place count (ModeFixed, ModeScientific) or
	// the significant-figure count (ModeSignif).
	Digits int
	// Mode selects the rendering strategy.
	Mode Mode
	// ProtectIntegers formats the input as plain integers when every
	// non-missing value is integral.
	ProtectIntegers bool
	// Missing is the replacement string for missing (NaN) values.
	Missing string
	// Width, when positive, right-justifies each result to at least
	// Width characters, padding with leading spaces.
	Width int
	// AsPercent multiplies by 100 and appends a percent sign. Threshold
	// decisions use the post-multiplication magnitude.
	AsPercent bool
	// ZapSmall forces fixed-point rendering always; small values are
	// rounded toward zero instead of switched to scientific notation.
	ZapSmall bool
}

// DefaultSpec returns the default formatting spec: fixed-point with two
// decimal places, empty-string missing replacement, no padding.
func DefaultSpec() Spec {
	return Spec{Digits: defaultFixedDigits, Mode: ModeFixed, Missing: ""}
}

// ParseDigits interprets a digits tag into a mode and digit count.
//
// Recognized forms:
//   - "scientific<N>": scientific mode with N decimal places
//   - "signif<N>": significant-figure mode with N figures
//   - a plain integer: fixed mode with that many decimal places
//
// A tag whose integer suffix fails to parse falls back to the mode's
// default count (5 for scientific, 3 for signif) rather than erroring.
// Anything else falls back to fixed mode with two decimal places.
func ParseDigits(tag string) (Mode, int) {
	switch {
	case strings.HasPrefix(tag, "scientific"):
		return ModeScientific, suffixOrDefault(tag, "scientific", defaultScientificDigits)
	case strings.HasPrefix(tag, "signif"):
		return ModeSignif, suffixOrDefault(tag, "signif", defaultSignifDigits)
	default:
		if n, err := strconv.Atoi(strings.TrimSpace(tag)); err == nil && n >= 0 {
			return ModeFixed, n
		}

		return ModeFixed, defaultFixedDigits
	}
}

// suffixOrDefault parses the integer suffix after prefix, falling back to
// def when the suffix is absent or unparsable.
func suffixOrDefault(tag, prefix string, def int) int {
	suffix := strings.TrimPrefix(tag, prefix)
	if n, err := strconv.Atoi(suffix); err == nil && n >= 0 {
		return n
	}

	return def
}

// Format renders values elementwise according to spec.
//
// NaN entries map to spec.Missing. When spec.ProtectIntegers is set and
// every non-missing value is integral, values render as plain integers;
// otherwise the numeric rules apply.
func Format(values []float64, spec Spec) []string {
	out := make([]string, len(values))

	if spec.ProtectIntegers && allIntegral(values) {
		for i, v := range values {
			if math.IsNaN(v) {
				out[i] = pad(spec.Missing, spec.Width)
				continue
			}
			out[i] = pad(strconv.FormatInt(int64(v), 10), spec.Width)
		}

		return out
	}

	for i, v := range values {
		out[i] = formatOne(v, spec)
	}

	return out
}

// FormatValue renders a single value according to spec.
func FormatValue(value float64, spec Spec) string {
	return formatOne(value, spec)
}

// allIntegral reports whether every non-missing value is a whole number.
func allIntegral(values []float64) bool {
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		if math.IsInf(v, 0) || v != math.Trunc(v) {
			return false
		}
	}

	return true
}

// negZeroPattern matches a rendered zero with a spurious negative sign,
// for any decimal-place count ("-0", "-0.0", "-0.00", ...).
var negZeroPattern = regexp.MustCompile(`^-0(\.0+)?$`)

func formatOne(v float64, spec Spec) string {
	if math.IsNaN(v) {
		return pad(spec.Missing, spec.Width)
	}

	val := v
	if spec.AsPercent {
		val *= 100
	}

	var s string
	switch spec.Mode {
	case ModeScientific:
		s = fmt.Sprintf("%.*e", spec.Digits, val)
	case ModeSignif:
		s = strconv.FormatFloat(roundSignif(val, spec.Digits), 'f', -1, 64)
	default:
		if !spec.ZapSmall && useScientific(val, spec.Digits) {
			s = fmt.Sprintf("%.*e", spec.Digits, val)
		} else {
			s = strconv.FormatFloat(val, 'f', spec.Digits, 64)
		}
	}

	// A negative value rounded to zero must not render a minus sign.
	if negZeroPattern.MatchString(s) {
		s = s[1:]
	}

	if spec.AsPercent {
		s += "%"
	}

	return pad(s, spec.Width)
}

// useScientific applies the magnitude threshold rule: scientific when
// |v| >= 1e5, or when v is nonzero and log10(|v|) < -digits.
func useScientific(v float64, digits int) bool {
	abs := math.Abs(v)
	if abs >= 1e5 {
		return true
	}

	return v != 0 && math.Log10(abs) < -float64(digits)
}

// roundSignif rounds v to n significant figures.
func roundSignif(v float64, n int) float64 {
	if v == 0 || n <= 0 {
		return 0
	}
	magnitude := math.Ceil(math.Log10(math.Abs(v)))
	power := float64(n) - magnitude
	if power >= 0 {
		scale := math.Pow(10, power)
		return math.Round(v*scale) / scale
	}

	// Dividing first keeps large rounded values exact (e.g. 12345 -> 12300).
	scale := math.Pow(10, -power)

	return math.Round(v/scale) * scale
}

// pad right-justifies s to at least width characters with leading spaces.
func pad(s string, width int) string {
	if width <= 0 || len(s) >= width {
		return s
	}

	return strings.Repeat(" ", width-len(s)) + s
}

// FormatTable formats a table column by column with the same spec,
// returning a new table of string columns in the original column order.
//
// Float columns go through Format, with masked-out entries treated as
// missing. Integer columns render as plain integers. String columns pass
// through unchanged, so re-formatting an already formatted table is
// idempotent.
func FormatTable(t *table.Table, spec Spec) *table.Table {
	cols := make([]table.Column, 0, t.NumColumns())
	for _, src := range t.Columns() {
		switch src.Kind {
		case table.KindFloat:
			vals := make([]float64, len(src.Floats))
			copy(vals, src.Floats)
			for i := range vals {
				if !src.IsValid(i) {
					vals[i] = math.NaN()
				}
			}
			cols = append(cols, table.NewStringColumn(src.Name, Format(vals, spec)))
		case table.KindInt:
			strs := make([]string, len(src.Ints))
			for i, v := range src.Ints {
				strs[i] = pad(strconv.FormatInt(v, 10), spec.Width)
			}
			cols = append(cols, table.NewStringColumn(src.Name, strs))
		default:
			out := make([]string, len(src.Strings))
			copy(out, src.Strings)
			cols = append(cols, table.NewStringColumn(src.Name, out))
		}
	}

	return table.MustNew(cols...)
}
