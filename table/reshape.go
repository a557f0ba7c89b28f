package table

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Long-format column names shared by every reshaped prediction table.
const (
	RowColumn      = "Row"
	ResponseColumn = "Response"
)

// LongFromMatrix reshapes a per-category matrix into canonical long
// format: one row per (category, original-row) pair.
//
// The input matrix has one row per observation and one column per
// response category; categories names the columns in order. The output
// table has three columns:
//
//   - Row: zero-based original row index (int64)
//   - Response: category label (string)
//   - valueName: the matrix value (float64)
//
// Output rows are ordered category-major, then row-major, which is the
// ordering contract for prediction results: (A,0),(A,1),...,(B,0),(B,1),...
// Categories keep the order given, not lexicographic order.
func LongFromMatrix(m mat.Matrix, categories []string, valueName string) (*Table, error) {
	rows, cols := m.Dims()
	if cols != len(categories) {
		return nil, fmt.Errorf("matrix has %d columns but %d categories given", cols, len(categories))
	}

	n := rows * cols
	rowIdx := make([]int64, 0, n)
	labels := make([]string, 0, n)
	values := make([]float64, 0, n)

	for j := 0; j < cols; j++ {
		for i := 0; i < rows; i++ {
			rowIdx = append(rowIdx, int64(i))
			labels = append(labels, categories[j])
			values = append(values, m.At(i, j))
		}
	}

	return New(
		NewIntColumn(RowColumn, rowIdx),
		NewStringColumn(ResponseColumn, labels),
		NewFloatColumn(valueName, values),
	)
}

// LongFromVector wraps a scalar-per-row prediction vector as a two-column
// table (Row, valueName), one row per observation.
func LongFromVector(values []float64, valueName string) (*Table, error) {
	rowIdx := make([]int64, len(values))
	for i := range values {
		rowIdx[i] = int64(i)
	}

	return New(
		NewIntColumn(RowColumn, rowIdx),
		NewFloatColumn(valueName, values),
	)
}
