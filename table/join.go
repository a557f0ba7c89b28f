package table

import (
	"fmt"
	"strings"
)

// Join performs an inner join of two tables on the named key columns.
//
// Every key column must exist in both tables with the same kind. The
// result contains the left table's columns followed by the right table's
// non-key columns, in left-row order. When a left key matches multiple
// right rows, the first right match wins; prediction tables keyed on
// (Row, Response) never carry duplicates, so this only matters for
// malformed input.
func Join(left, right *Table, keys []string) (*Table, error) {
	if len(keys) == 0 {
		return nil, fmt.Errorf("join requires at least one key column")
	}

	leftKeys := make([]*Column, len(keys))
	rightKeys := make([]*Column, len(keys))
	for i, key := range keys {
		lc, ok := left.Column(key)
		if !ok {
			return nil, fmt.Errorf("left table missing key column %s", key)
		}
		rc, ok := right.Column(key)
		if !ok {
			return nil, fmt.Errorf("right table missing key column %s", key)
		}
		if lc.Kind != rc.Kind {
			return nil, fmt.Errorf("key column %s has kind %s on the left but %s on the right", key, lc.Kind, rc.Kind)
		}
		leftKeys[i] = lc
		rightKeys[i] = rc
	}

	// Index right rows by composite key.
	rightIndex := make(map[string]int, right.NumRows())
	for i := 0; i < right.NumRows(); i++ {
		k := compositeKey(rightKeys, i)
		if _, exists := rightIndex[k]; !exists {
			rightIndex[k] = i
		}
	}

	keySet := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		keySet[key] = struct{}{}
	}

	// Result schema: all left columns, then right non-key columns.
	out := make([]Column, 0, left.NumColumns()+right.NumColumns()-len(keys))
	for i := range left.columns {
		src := &left.columns[i]
		out = append(out, Column{Name: src.Name, Kind: src.Kind})
	}
	rightValueCols := make([]*Column, 0, right.NumColumns()-len(keys))
	for i := range right.columns {
		src := &right.columns[i]
		if _, isKey := keySet[src.Name]; isKey {
			continue
		}
		if left.HasColumn(src.Name) {
			return nil, fmt.Errorf("non-key column %s exists in both tables", src.Name)
		}
		rightValueCols = append(rightValueCols, src)
		out = append(out, Column{Name: src.Name, Kind: src.Kind})
	}

	for i := 0; i < left.NumRows(); i++ {
		rightRow, ok := rightIndex[compositeKey(leftKeys, i)]
		if !ok {
			continue
		}
		for c := range left.columns {
			out[c].appendFrom(&left.columns[c], i)
		}
		for c, src := range rightValueCols {
			out[left.NumColumns()+c].appendFrom(src, rightRow)
		}
	}

	return &Table{columns: out}, nil
}

// compositeKey renders row i of the key columns as a single map key.
func compositeKey(cols []*Column, i int) string {
	if len(cols) == 1 {
		return cols[0].keyAt(i)
	}

	var sb strings.Builder
	for c, col := range cols {
		if c > 0 {
			sb.WriteByte(0x1f)
		}
		sb.WriteString(col.keyAt(i))
	}

	return sb.String()
}
