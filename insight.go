// Package insight provides support utilities for working with fitted
// statistical models: normalized prediction extraction, response
// transformation detection, and numeric formatting for display.
//
// The root package is a thin facade over the focused subpackages:
//
//   - predict: normalizes heterogeneous model prediction APIs into one
//     canonical long-format table, with optional confidence intervals
//   - transform: detects the transformation applied to a model's
//     response from its response expression
//   - format: renders numeric vectors as aligned display strings
//   - table: the column-oriented table type shared across packages
//   - tablecodec: binary serialization of prediction tables
//
// Typical usage goes through the facade:
//
//	res, err := insight.GetPredicted(m,
//	    predict.WithSemantics(predict.Expectation),
//	    predict.WithCILevel(0.95),
//	)
//	if err != nil {
//	    return err
//	}
//	if tag, ok := insight.FindTransformation(m); ok {
//	    fmt.Println("response transformed with", tag)
//	}
//	fmt.Println(insight.FormatValues(res.Table.Columns()[2].Floats, format.DefaultSpec()))
//
// Callers needing finer control import the subpackages directly.
package insight

import (
	"github.com/statkit/insight/format"
	"github.com/statkit/insight/model"
	"github.com/statkit/insight/predict"
	"github.com/statkit/insight/transform"
)

// GetPredicted extracts normalized predictions from a fitted model.
// It is shorthand for predict.Predict; see that package for the full
// option set and the Result contract.
func GetPredicted(m model.Model, opts ...predict.Option) (*predict.Result, error) {
	return predict.Predict(m, opts...)
}

// FindTransformation inspects a model's response expression and reports
// the transformation applied to the response, if any. It is shorthand
// for transform.Detect.
func FindTransformation(m model.Model) (transform.Tag, bool) {
	return transform.Detect(m)
}

// FormatValues renders a numeric vector as display strings according to
// the given spec. It is shorthand for format.Format.
func FormatValues(values []float64, spec format.Spec) []string {
	return format.Format(values, spec)
}

// FormatValue renders a single number according to the given spec.
func FormatValue(v float64, spec format.Spec) string {
	return format.FormatValue(v, spec)
}
