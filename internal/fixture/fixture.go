// Package fixture provides deterministic synthetic fitted models for
// tests. Each fixture implements model.Model with closed-form math, so
// tests can assert exact invariants (probabilities summing to one, CI
// bounds bracketing estimates) without a real fitting library.
package fixture

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/statkit/insight/model"
	"github.com/statkit/insight/table"
)

// stdNormal is the standard normal used for Wald-style interval bounds.
var stdNormal = distuv.Normal{Mu: 0, Sigma: 1}

// zQuantile returns the two-sided critical value for a confidence level.
func zQuantile(level float64) float64 {
	return stdNormal.Quantile(0.5 + level/2)
}

// logistic is the standard logistic CDF.
func logistic(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// predictorColumn extracts the float predictor column named "x".
func predictorColumn(data *table.Table) ([]float64, error) {
	col, ok := data.Column("x")
	if !ok {
		return nil, fmt.Errorf("fixture data missing predictor column x")
	}
	if col.Kind != table.KindFloat {
		return nil, fmt.Errorf("fixture predictor column x has kind %s, want Float", col.Kind)
	}

	return col.Floats, nil
}

// clamp restricts p to the unit interval.
func clamp(p float64) float64 {
	return math.Min(1, math.Max(0, p))
}

// intervalMatrices builds SE and clamped Wald bounds around a
// probability matrix. Bounds always bracket the estimate.
func intervalMatrices(probs *mat.Dense, level float64) (se, lower, upper *mat.Dense) {
	rows, cols := probs.Dims()
	se = mat.NewDense(rows, cols, nil)
	lower = mat.NewDense(rows, cols, nil)
	upper = mat.NewDense(rows, cols, nil)

	z := zQuantile(level)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			p := probs.At(i, j)
			s := 0.02 + 0.1*p*(1-p)
			se.Set(i, j, s)
			lower.Set(i, j, clamp(p-z*s))
			upper.Set(i, j, clamp(p+z*s))
		}
	}

	return se, lower, upper
}

// OrdinalModel is a synthetic cumulative-link (logit) model with fixed
// thresholds and slope.
//
// Its native prediction routine reproduces the shape quirk of real
// cumulative-link implementations: without NativeRequest.FreeResponse,
// supplying data that still contains the response column yields one
// probability per observation (that of the observed level) instead of
// the full per-category matrix.
type OrdinalModel struct {
	data       *table.Table
	categories []string
	thresholds []float64
	slope      float64
	respExpr   string
}

var _ model.Model = (*OrdinalModel)(nil)

// NewOrdinalModel creates the standard ordinal fixture: three ordered
// categories over four observations.
func NewOrdinalModel() *OrdinalModel {
	return &OrdinalModel{
		data: table.MustNew(
			table.NewFloatColumn("x", []float64{-1, 0, 1, 2}),
			table.NewStringColumn("y", []string{"low", "medium", "medium", "high"}),
		),
		categories: []string{"low", "medium", "high"},
		thresholds: []float64{-0.8, 0.9},
		slope:      1.1,
		respExpr:   "y",
	}
}

// SetResponseExpression overrides the response expression reported to
// the transformation detector.
func (m *OrdinalModel) SetResponseExpression(expr string) { m.respExpr = expr }

func (m *OrdinalModel) Family() model.Family       { return model.FamilyOrdinal }
func (m *OrdinalModel) Data() *table.Table         { return m.data }
func (m *OrdinalModel) Response() string           { return "y" }
func (m *OrdinalModel) ResponseExpression() string { return m.respExpr }
func (m *OrdinalModel) Categories() []string       { return m.categories }

// probabilities computes the per-category probability matrix from the
// cumulative logit differences.
func (m *OrdinalModel) probabilities(x []float64) *mat.Dense {
	n, k := len(x), len(m.categories)
	probs := mat.NewDense(n, k, nil)
	for i, xi := range x {
		eta := m.slope * xi
		prev := 0.0
		for j := 0; j < k; j++ {
			var cum float64
			if j == k-1 {
				cum = 1
			} else {
				cum = logistic(m.thresholds[j] - eta)
			}
			probs.Set(i, j, cum-prev)
			prev = cum
		}
	}

	return probs
}

// Predict implements the native ordinal prediction routine.
func (m *OrdinalModel) Predict(req model.NativeRequest) (*model.NativeOutput, error) {
	data := req.Data
	if data == nil {
		data = m.data
	}
	x, err := predictorColumn(data)
	if err != nil {
		return nil, err
	}

	switch req.Kind {
	case model.KindClass:
		probs := m.probabilities(x)
		return &model.NativeOutput{Labels: argmaxLabels(probs, m.categories)}, nil
	case model.KindProbs:
		probs := m.probabilities(x)

		// Shape quirk: with the response still bound in the data and no
		// free-response request, only the observed level's probability
		// comes back.
		if !req.FreeResponse && data.HasColumn("y") {
			col, _ := data.Column("y")
			vals := make([]float64, len(x))
			for i := range vals {
				vals[i] = probs.At(i, categoryIndex(m.categories, col.Strings[i]))
			}

			return &model.NativeOutput{Values: vals}, nil
		}

		out := &model.NativeOutput{Probs: probs, Categories: m.categories}
		if req.Level > 0 {
			out.SE, out.Lower, out.Upper = intervalMatrices(probs, req.Level)
		}

		return out, nil
	default:
		return nil, fmt.Errorf("ordinal fixture does not support native kind %q", req.Kind)
	}
}

// MultinomialModel is a synthetic softmax classifier over three
// categories.
type MultinomialModel struct {
	data       *table.Table
	categories []string
	intercepts []float64
	slopes     []float64
	respExpr   string
}

var _ model.Model = (*MultinomialModel)(nil)

// NewMultinomialModel creates the standard multinomial fixture: three
// unordered categories over five observations.
func NewMultinomialModel() *MultinomialModel {
	return &MultinomialModel{
		data: table.MustNew(
			table.NewFloatColumn("x", []float64{-2, -1, 0, 1, 2}),
			table.NewStringColumn("y", []string{"red", "red", "green", "blue", "blue"}),
		),
		categories: []string{"red", "green", "blue"},
		intercepts: []float64{0.2, 0.5, -0.3},
		slopes:     []float64{-1.0, 0.1, 0.9},
		respExpr:   "y",
	}
}

// SetResponseExpression overrides the response expression reported to
// the transformation detector.
func (m *MultinomialModel) SetResponseExpression(expr string) { m.respExpr = expr }

func (m *MultinomialModel) Family() model.Family       { return model.FamilyMultinomial }
func (m *MultinomialModel) Data() *table.Table         { return m.data }
func (m *MultinomialModel) Response() string           { return "y" }
func (m *MultinomialModel) ResponseExpression() string { return m.respExpr }
func (m *MultinomialModel) Categories() []string       { return m.categories }

func (m *MultinomialModel) probabilities(x []float64) *mat.Dense {
	n, k := len(x), len(m.categories)
	probs := mat.NewDense(n, k, nil)
	for i, xi := range x {
		var sum float64
		scores := make([]float64, k)
		for j := 0; j < k; j++ {
			scores[j] = math.Exp(m.intercepts[j] + m.slopes[j]*xi)
			sum += scores[j]
		}
		for j := 0; j < k; j++ {
			probs.Set(i, j, scores[j]/sum)
		}
	}

	return probs
}

// Predict implements the native multinomial prediction routine.
func (m *MultinomialModel) Predict(req model.NativeRequest) (*model.NativeOutput, error) {
	data := req.Data
	if data == nil {
		data = m.data
	}
	x, err := predictorColumn(data)
	if err != nil {
		return nil, err
	}

	switch req.Kind {
	case model.KindClass:
		return &model.NativeOutput{Labels: argmaxLabels(m.probabilities(x), m.categories)}, nil
	case model.KindProbs:
		probs := m.probabilities(x)
		out := &model.NativeOutput{Probs: probs, Categories: m.categories}
		if req.Level > 0 {
			out.SE, out.Lower, out.Upper = intervalMatrices(probs, req.Level)
		}

		return out, nil
	default:
		return nil, fmt.Errorf("multinomial fixture does not support native kind %q", req.Kind)
	}
}

// RobustLinearModel is a synthetic robust linear regression with fixed
// coefficients and homoscedastic standard errors.
type RobustLinearModel struct {
	data      *table.Table
	intercept float64
	slope     float64
	se        float64
	respExpr  string
}

var _ model.Model = (*RobustLinearModel)(nil)

// NewRobustLinearModel creates the standard robust linear fixture.
func NewRobustLinearModel() *RobustLinearModel {
	return &RobustLinearModel{
		data: table.MustNew(
			table.NewFloatColumn("x", []float64{0, 1, 2, 3, 4}),
			table.NewFloatColumn("y", []float64{1.1, 2.9, 5.2, 6.8, 9.1}),
		),
		intercept: 1.0,
		slope:     2.0,
		se:        0.35,
		respExpr:  "y",
	}
}

// SetResponseExpression overrides the response expression reported to
// the transformation detector.
func (m *RobustLinearModel) SetResponseExpression(expr string) { m.respExpr = expr }

func (m *RobustLinearModel) Family() model.Family       { return model.FamilyRobustLinear }
func (m *RobustLinearModel) Data() *table.Table         { return m.data }
func (m *RobustLinearModel) Response() string           { return "y" }
func (m *RobustLinearModel) ResponseExpression() string { return m.respExpr }
func (m *RobustLinearModel) Categories() []string       { return nil }

// Predict implements the native robust linear prediction routine.
func (m *RobustLinearModel) Predict(req model.NativeRequest) (*model.NativeOutput, error) {
	if req.Kind != model.KindResponse {
		return nil, fmt.Errorf("robust linear fixture does not support native kind %q", req.Kind)
	}

	data := req.Data
	if data == nil {
		data = m.data
	}
	x, err := predictorColumn(data)
	if err != nil {
		return nil, err
	}

	n := len(x)
	values := make([]float64, n)
	for i, xi := range x {
		values[i] = m.intercept + m.slope*xi
	}

	out := &model.NativeOutput{Values: values}
	if req.Level > 0 {
		z := zQuantile(req.Level)
		se := mat.NewDense(n, 1, nil)
		lower := mat.NewDense(n, 1, nil)
		upper := mat.NewDense(n, 1, nil)
		for i, v := range values {
			se.Set(i, 0, m.se)
			lower.Set(i, 0, v-z*m.se)
			upper.Set(i, 0, v+z*m.se)
		}
		out.SE, out.Lower, out.Upper = se, lower, upper
	}

	return out, nil
}

// argmaxLabels maps each row of a probability matrix to its most likely
// category label.
func argmaxLabels(probs *mat.Dense, categories []string) []string {
	rows, cols := probs.Dims()
	labels := make([]string, rows)
	for i := 0; i < rows; i++ {
		best := 0
		for j := 1; j < cols; j++ {
			if probs.At(i, j) > probs.At(i, best) {
				best = j
			}
		}
		labels[i] = categories[best]
	}

	return labels
}

// categoryIndex returns the index of label in categories, or 0 when absent.
func categoryIndex(categories []string, label string) int {
	for i, c := range categories {
		if c == label {
			return i
		}
	}

	return 0
}
