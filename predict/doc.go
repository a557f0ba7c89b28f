// Package predict normalizes the heterogeneous prediction APIs of fitted
// regression models into one canonical long-format table.
//
// The entry point is Predict, which validates the request, resolves the
// prediction data, dispatches to a model-family adapter, and reconciles
// the adapter's native output (a scalar vector, class labels, or a
// per-category probability matrix) into a Result:
//
//	res, err := predict.Predict(m,
//	    predict.WithSemantics(predict.Expectation),
//	    predict.WithCILevel(0.95),
//	)
//
// Result.Table always carries a Row column and a Predicted column, plus
// a Response category column for multi-category outcomes. Rows are
// ordered by category (in the model's natural order) then by row index.
// Standard errors and confidence bounds, when produced, live in the
// separate Result.Uncertainty table keyed on the same columns, keeping
// point estimates and uncertainty apart.
//
// Confidence intervals are only meaningful under Expectation semantics.
// Requesting them for Classification is not an error: the request is
// dropped, with a warning on the configured logger when verbosity is
// enabled.
package predict
