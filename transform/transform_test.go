package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectExpression(t *testing.T) {
	tests := []struct {
		expr   string
		want   Tag
		wantOK bool
	}{
		{"y", Identity, true},
		{"outcome_score", Identity, true},
		{"log(y)", Log, true},
		{"log(y + 2)", "log(x+2)", true},
		{"log(2 + y)", "log(x+2)", true},
		{"log(y + 0.5)", "log(x+0.5)", true},
		{"log(y - 1)", "log(x-1)", true},
		{"log(y + 0)", Log, true}, // zero shift is not a shift
		{"log(log(y))", LogLog, true},
		{"log1p(y)", Log1p, true},
		{"expm1(y)", Expm1, true},
		{"log2(y)", Log2, true},
		{"log10(y)", Log10, true},
		{"exp(y)", Exp, true},
		{"sqrt(y)", Sqrt, true},
		{"sqrt(y + 3)", "sqrt(x+3)", true},
		{"I(y^2)", Power, true},
		{"I( y ^ 2 )", Power, true},
		{"I(custom_fn(y))", "", false},
		{"I(y^3)", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			tag, ok := DetectExpression(tt.expr)
			require.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, tag)
			}
		})
	}
}

func TestDetectExpressionWordBoundaries(t *testing.T) {
	// "exp(" must not fire inside "expm1(", nor "log(" inside "log10(".
	tag, ok := DetectExpression("expm1(y)")
	require.True(t, ok)
	assert.Equal(t, Expm1, tag)

	tag, ok = DetectExpression("log10(y)")
	require.True(t, ok)
	assert.Equal(t, Log10, tag)

	// A call with a prefixed identifier is a different function entirely.
	tag, ok = DetectExpression("mylog(y)")
	require.True(t, ok)
	assert.Equal(t, Identity, tag)
}

func TestDetectExpressionRestrictedConstants(t *testing.T) {
	// The non-variable side must be a bare numeric literal; anything
	// needing evaluation is ignored and the plain tag wins.
	tag, ok := DetectExpression("log(y + z)")
	require.True(t, ok)
	assert.Equal(t, Log, tag)

	tag, ok = DetectExpression("log(y + 1/2)")
	require.True(t, ok)
	assert.Equal(t, Log, tag)
}

func TestDetectNilModel(t *testing.T) {
	_, ok := Detect(nil)
	assert.False(t, ok)
}

func TestShiftedTags(t *testing.T) {
	assert.Equal(t, Tag("log(x+2)"), ShiftedLog(2))
	assert.Equal(t, Tag("log(x+2.5)"), ShiftedLog(2.5))
	assert.Equal(t, Tag("log(x-1)"), ShiftedLog(-1))
	assert.Equal(t, Tag("sqrt(x+3)"), ShiftedSqrt(3))
}
