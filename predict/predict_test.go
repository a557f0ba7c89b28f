package predict

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"gonum.org/v1/gonum/mat"

	"github.com/statkit/insight/internal/fixture"
	"github.com/statkit/insight/model"
	"github.com/statkit/insight/table"
)

// stubModel is a minimal two-category model for ordering assertions.
type stubModel struct {
	probs *mat.Dense
}

func (s *stubModel) Family() model.Family       { return model.FamilyMultinomial }
func (s *stubModel) Response() string           { return "y" }
func (s *stubModel) ResponseExpression() string { return "y" }
func (s *stubModel) Categories() []string       { return []string{"A", "B"} }

func (s *stubModel) Data() *table.Table {
	rows, _ := s.probs.Dims()
	x := make([]float64, rows)
	y := make([]string, rows)
	return table.MustNew(
		table.NewFloatColumn("x", x),
		table.NewStringColumn("y", y),
	)
}

func (s *stubModel) Predict(req model.NativeRequest) (*model.NativeOutput, error) {
	return &model.NativeOutput{Probs: s.probs, Categories: s.Categories()}, nil
}

func TestPredictRequiresType(t *testing.T) {
	_, err := Predict(fixture.NewMultinomialModel())
	require.ErrorIs(t, err, ErrMissingPredictionType)
}

func TestPredictNativeKindOverride(t *testing.T) {
	res, err := Predict(fixture.NewMultinomialModel(), WithNativeKind(model.KindClass))
	require.NoError(t, err)
	assert.Equal(t, Classification, res.Semantics)

	pred, ok := res.Table.Column(PredictedColumn)
	require.True(t, ok)
	assert.Equal(t, table.KindString, pred.Kind)
}

func TestPredictLongOrdering(t *testing.T) {
	// Per-category matrix with categories {A,B} and 3 rows must yield
	// exactly 6 rows ordered (A,0),(A,1),(A,2),(B,0),(B,1),(B,2).
	m := &stubModel{probs: mat.NewDense(3, 2, []float64{
		0.4, 0.6,
		0.5, 0.5,
		0.9, 0.1,
	})}

	res, err := Predict(m, WithSemantics(Expectation))
	require.NoError(t, err)
	require.Equal(t, 6, res.Table.NumRows())

	rowCol, _ := res.Table.Column(table.RowColumn)
	catCol, _ := res.Table.Column(table.ResponseColumn)
	assert.Equal(t, []int64{0, 1, 2, 0, 1, 2}, rowCol.Ints)
	assert.Equal(t, []string{"A", "A", "A", "B", "B", "B"}, catCol.Strings)
}

func TestPredictOrdinalExpectation(t *testing.T) {
	m := fixture.NewOrdinalModel()

	res, err := Predict(m, WithSemantics(Expectation))
	require.NoError(t, err)

	// 4 observations x 3 categories in long format.
	require.Equal(t, 12, res.Table.NumRows())
	assert.Nil(t, res.Uncertainty)

	catCol, _ := res.Table.Column(table.ResponseColumn)
	// Category blocks follow the model's natural order, not lexicographic.
	assert.Equal(t, "low", catCol.Strings[0])
	assert.Equal(t, "medium", catCol.Strings[4])
	assert.Equal(t, "high", catCol.Strings[8])

	// Probabilities over categories sum to one for every observation.
	pred, _ := res.Table.Column(PredictedColumn)
	rowCol, _ := res.Table.Column(table.RowColumn)
	sums := make(map[int64]float64)
	for i, v := range pred.Floats {
		sums[rowCol.Ints[i]] += v
	}
	for row, sum := range sums {
		assert.InDelta(t, 1.0, sum, 1e-9, "row %d", row)
	}
}

func TestPredictOrdinalFreeResponse(t *testing.T) {
	m := fixture.NewOrdinalModel()

	// Supplying data that still contains the response column must not
	// collapse the output to per-observation probabilities.
	res, err := Predict(m,
		WithSemantics(Expectation),
		WithNewData(m.Data()),
	)
	require.NoError(t, err)
	assert.Equal(t, 12, res.Table.NumRows())
	assert.True(t, res.Table.HasColumn(table.ResponseColumn))
}

func TestPredictOrdinalIntervals(t *testing.T) {
	m := fixture.NewOrdinalModel()

	for _, level := range []float64{0.5, 0.8, 0.95, 1.0} {
		res, err := Predict(m,
			WithSemantics(Expectation),
			WithCILevel(level),
		)
		require.NoError(t, err)
		require.NotNil(t, res.Uncertainty, "level %g", level)
		assert.Equal(t, level, res.Level)

		joined, err := table.Join(res.Table, res.Uncertainty, []string{table.RowColumn, table.ResponseColumn})
		require.NoError(t, err)
		require.Equal(t, res.Table.NumRows(), joined.NumRows())

		pred, _ := joined.Column(PredictedColumn)
		low, _ := joined.Column(CILowColumn)
		high, _ := joined.Column(CIHighColumn)
		se, _ := joined.Column(SEColumn)
		for i := range pred.Floats {
			assert.LessOrEqual(t, low.Floats[i], pred.Floats[i], "level %g row %d", level, i)
			assert.GreaterOrEqual(t, high.Floats[i], pred.Floats[i], "level %g row %d", level, i)
			assert.Positive(t, se.Floats[i])
		}
	}
}

func TestPredictClassificationDropsIntervals(t *testing.T) {
	m := fixture.NewOrdinalModel()

	core, logs := observer.New(zap.WarnLevel)
	logger := zap.New(core)

	res, err := Predict(m,
		WithSemantics(Classification),
		WithCILevel(0.95),
		WithVerbose(true),
		WithLogger(logger),
	)
	require.NoError(t, err, "interval request under classification must never raise")
	assert.Nil(t, res.Uncertainty)
	assert.Zero(t, res.Level)
	assert.False(t, res.Table.HasColumn(CILowColumn))
	assert.Equal(t, 1, logs.Len(), "verbose mode emits exactly one warning")
}

func TestPredictClassificationSilentWithoutVerbose(t *testing.T) {
	m := fixture.NewOrdinalModel()

	core, logs := observer.New(zap.WarnLevel)
	logger := zap.New(core)

	_, err := Predict(m,
		WithSemantics(Classification),
		WithCILevel(0.95),
		WithLogger(logger),
	)
	require.NoError(t, err)
	assert.Zero(t, logs.Len(), "warning only fires when verbosity is enabled")
}

func TestPredictMultinomialExplicitNilNewData(t *testing.T) {
	m := fixture.NewMultinomialModel()

	omitted, err := Predict(m, WithSemantics(Expectation))
	require.NoError(t, err)

	explicitNil, err := Predict(m, WithSemantics(Expectation), WithNewData(nil))
	require.NoError(t, err)

	assert.True(t, omitted.Table.Equal(explicitNil.Table),
		"explicit nil new-data must behave identically to omitting it")
}

func TestPredictMultinomialClassification(t *testing.T) {
	m := fixture.NewMultinomialModel()

	res, err := Predict(m, WithSemantics(Classification))
	require.NoError(t, err)
	require.Equal(t, 5, res.Table.NumRows())

	pred, _ := res.Table.Column(PredictedColumn)
	// Strong negative slope for "red", strong positive for "blue".
	assert.Equal(t, "red", pred.Strings[0])
	assert.Equal(t, "blue", pred.Strings[4])
}

func TestPredictOrderedLogitSharesMultinomialContract(t *testing.T) {
	ad, err := adapterFor(model.FamilyOrderedLogit)
	require.NoError(t, err)
	assert.IsType(t, multinomialAdapter{}, ad)

	ad, err = adapterFor(model.FamilyBRMultinomial)
	require.NoError(t, err)
	assert.IsType(t, multinomialAdapter{}, ad)

	_, err = adapterFor(model.Family(255))
	assert.Error(t, err)
}

func TestPredictRobustLinear(t *testing.T) {
	m := fixture.NewRobustLinearModel()

	res, err := Predict(m, WithSemantics(Expectation), WithCILevel(0.9))
	require.NoError(t, err)
	require.Equal(t, 5, res.Table.NumRows())
	require.NotNil(t, res.Uncertainty)
	assert.Equal(t, []string{table.RowColumn, SEColumn, CILowColumn, CIHighColumn}, res.Uncertainty.Names())

	pred, _ := res.Table.Column(PredictedColumn)
	low, _ := res.Uncertainty.Column(CILowColumn)
	high, _ := res.Uncertainty.Column(CIHighColumn)
	for i := range pred.Floats {
		assert.Less(t, low.Floats[i], pred.Floats[i])
		assert.Greater(t, high.Floats[i], pred.Floats[i])
	}
}

func TestPredictRobustLinearRejectsClassification(t *testing.T) {
	_, err := Predict(fixture.NewRobustLinearModel(), WithSemantics(Classification))
	require.ErrorIs(t, err, ErrUnsupportedSemantics)
}

func TestPredictCILevelValidation(t *testing.T) {
	m := fixture.NewRobustLinearModel()

	for _, level := range []float64{0, -0.5, 1.5} {
		_, err := Predict(m, WithSemantics(Expectation), WithCILevel(level))
		assert.ErrorIs(t, err, ErrInvalidCILevel, "level %g", level)
	}

	// NaN is treated as absent, not invalid.
	res, err := Predict(m, WithSemantics(Expectation), WithCILevel(math.NaN()))
	require.NoError(t, err)
	assert.Nil(t, res.Uncertainty)
}

func TestPredictNilModel(t *testing.T) {
	_, err := Predict(nil, WithSemantics(Expectation))
	assert.Error(t, err)
}

func TestSemanticsString(t *testing.T) {
	assert.Equal(t, "expectation", Expectation.String())
	assert.Equal(t, "classification", Classification.String())
	assert.Equal(t, "unset", SemanticsUnset.String())
}
