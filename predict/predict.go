package predict

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"

	"github.com/statkit/insight/internal/options"
	"github.com/statkit/insight/model"
	"github.com/statkit/insight/table"
)

// Sentinel errors for the configuration-error class. All are fatal and
// reported immediately; nothing in this package retries.
var (
	// ErrMissingPredictionType is returned when neither semantics nor a
	// native-kind override was supplied.
	ErrMissingPredictionType = errors.New("must specify prediction type")
	// ErrUnsupportedSemantics is returned when a model family cannot
	// honor the requested semantics.
	ErrUnsupportedSemantics = errors.New("unsupported prediction semantics")
	// ErrInvalidCILevel is returned for confidence levels outside (0,1].
	ErrInvalidCILevel = errors.New("confidence level must be in (0, 1]")
)

// Column names of the canonical long-format result.
const (
	// PredictedColumn holds point estimates (or class labels).
	PredictedColumn = "Predicted"
	// SEColumn holds standard errors in the uncertainty table.
	SEColumn = "SE"
	// CILowColumn holds lower confidence bounds in the uncertainty table.
	CILowColumn = "CI_low"
	// CIHighColumn holds upper confidence bounds in the uncertainty table.
	CIHighColumn = "CI_high"
)

// Result is a normalized prediction outcome.
//
// Table holds point estimates: one row per (category, original-row)
// pair for multi-category outcomes, one row per original row otherwise,
// ordered by category (model's natural order) then row index. The
// ordering is a contract: it determines how results align with external
// data when merged.
//
// Uncertainty, when non-nil, holds standard errors and confidence
// bounds keyed on the same Row (and Response) columns. Keeping it
// separate preserves the split between point estimates and uncertainty.
type Result struct {
	Table       *table.Table
	Uncertainty *table.Table
	// Semantics records the semantics the prediction was made under.
	Semantics Semantics
	// Level is the confidence level intervals were computed at,
	// or 0 when no intervals were produced.
	Level float64
}

// Predict extracts normalized predictions from a fitted model.
//
// The request must carry prediction semantics, either directly via
// WithSemantics or implied by a WithNativeKind override; otherwise
// ErrMissingPredictionType is returned. Without WithNewData the model's
// own fitting data is used, with the response column stripped.
//
// Interval requests under Classification semantics are silently
// downgraded (dropped), with a warning on the configured logger when
// verbosity is enabled.
func Predict(m model.Model, opts ...Option) (*Result, error) {
	if m == nil {
		return nil, errors.New("no model provided")
	}

	cfg := defaultConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	sem := cfg.semantics
	if sem == SemanticsUnset {
		if cfg.nativeKind == "" {
			return nil, ErrMissingPredictionType
		}
		var err error
		sem, err = semanticsForKind(cfg.nativeKind)
		if err != nil {
			return nil, err
		}
	}

	data := cfg.newData
	if data == nil {
		data = m.Data().Drop(m.Response())
	}

	level := cfg.level
	if level > 0 && sem != Expectation {
		if cfg.verbose {
			cfg.logger.Warn("confidence intervals are not available for classification predictions; dropping the request",
				zap.String("family", m.Family().String()),
				zap.Float64("level", level),
			)
		}
		level = 0
	}

	ad, err := adapterFor(m.Family())
	if err != nil {
		return nil, err
	}

	native, err := ad.predict(m, data, sem, level)
	if err != nil {
		return nil, err
	}

	return assemble(native, sem, level)
}

// assemble reconciles a native output into the canonical Result shape.
func assemble(native *model.NativeOutput, sem Semantics, level float64) (*Result, error) {
	res := &Result{Semantics: sem, Level: level}

	switch {
	case native.Probs != nil:
		est, err := table.LongFromMatrix(native.Probs, native.Categories, PredictedColumn)
		if err != nil {
			return nil, fmt.Errorf("failed to reshape prediction matrix: %w", err)
		}
		res.Table = est

		if level > 0 && native.HasIntervals() {
			unc, err := uncertaintyLong(native)
			if err != nil {
				return nil, err
			}
			res.Uncertainty = unc
		} else {
			res.Level = 0
		}
	case native.Values != nil:
		est, err := table.LongFromVector(native.Values, PredictedColumn)
		if err != nil {
			return nil, fmt.Errorf("failed to build prediction table: %w", err)
		}
		res.Table = est

		if level > 0 && native.HasIntervals() {
			unc, err := uncertaintyScalar(native)
			if err != nil {
				return nil, err
			}
			res.Uncertainty = unc
		} else {
			res.Level = 0
		}
	case native.Labels != nil:
		rowIdx := make([]int64, len(native.Labels))
		for i := range rowIdx {
			rowIdx[i] = int64(i)
		}
		est, err := table.New(
			table.NewIntColumn(table.RowColumn, rowIdx),
			table.NewStringColumn(PredictedColumn, native.Labels),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to build classification table: %w", err)
		}
		res.Table = est
		res.Level = 0
	default:
		return nil, errors.New("adapter returned an empty native output")
	}

	return res, nil
}

// uncertaintyLong reshapes per-category SE/CI matrices into long format
// and joins them on (Row, Response).
func uncertaintyLong(native *model.NativeOutput) (*table.Table, error) {
	keys := []string{table.RowColumn, table.ResponseColumn}

	parts := []struct {
		name string
		m    *mat.Dense
	}{
		{SEColumn, native.SE},
		{CILowColumn, native.Lower},
		{CIHighColumn, native.Upper},
	}

	var out *table.Table
	for _, part := range parts {
		if part.m == nil {
			continue
		}
		long, err := table.LongFromMatrix(part.m, native.Categories, part.name)
		if err != nil {
			return nil, fmt.Errorf("failed to reshape %s matrix: %w", part.name, err)
		}
		if out == nil {
			out = long
			continue
		}
		out, err = table.Join(out, long, keys)
		if err != nil {
			return nil, fmt.Errorf("failed to join %s onto uncertainty table: %w", part.name, err)
		}
	}

	return out, nil
}

// uncertaintyScalar builds the uncertainty table for scalar predictions,
// whose SE/CI matrices are n x 1.
func uncertaintyScalar(native *model.NativeOutput) (*table.Table, error) {
	cols := []table.Column{}
	n := len(native.Values)

	rowIdx := make([]int64, n)
	for i := range rowIdx {
		rowIdx[i] = int64(i)
	}
	cols = append(cols, table.NewIntColumn(table.RowColumn, rowIdx))

	appendVec := func(name string, m *mat.Dense) error {
		if m == nil {
			return nil
		}
		rows, c := m.Dims()
		if rows != n || c != 1 {
			return fmt.Errorf("%s matrix is %dx%d, want %dx1", name, rows, c, n)
		}
		vals := make([]float64, n)
		for i := 0; i < n; i++ {
			vals[i] = m.At(i, 0)
		}
		cols = append(cols, table.NewFloatColumn(name, vals))

		return nil
	}

	if err := appendVec(SEColumn, native.SE); err != nil {
		return nil, err
	}
	if err := appendVec(CILowColumn, native.Lower); err != nil {
		return nil, err
	}
	if err := appendVec(CIHighColumn, native.Upper); err != nil {
		return nil, err
	}

	return table.New(cols...)
}
