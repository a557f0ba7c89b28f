package table

import (
	"fmt"
	"slices"
)

// Kind identifies the element type of a column.
type Kind uint8

const (
	KindFloat  Kind = 0x1 // KindFloat holds float64 values with a validity mask.
	KindInt    Kind = 0x2 // KindInt holds int64 values.
	KindString Kind = 0x3 // KindString holds string values.
)

// String returns the canonical name of the column kind.
func (k Kind) String() string {
	switch k {
	case KindFloat:
		return "Float"
	case KindInt:
		return "Int"
	case KindString:
		return "String"
	default:
		return "Unknown"
	}
}

// Column is a single named, typed column. Exactly one of the value
// slices is populated, matching Kind. For float columns, Valid marks
// which entries hold data; a nil Valid mask means every entry is valid.
type Column struct {
	Name    string
	Kind    Kind
	Floats  []float64
	Valid   []bool
	Ints    []int64
	Strings []string
}

// NewFloatColumn creates a float column with all entries valid.
func NewFloatColumn(name string, values []float64) Column {
	return Column{Name: name, Kind: KindFloat, Floats: values}
}

// NewNullableFloatColumn creates a float column with an explicit validity mask.
// The mask must be the same length as values.
func NewNullableFloatColumn(name string, values []float64, valid []bool) Column {
	return Column{Name: name, Kind: KindFloat, Floats: values, Valid: valid}
}

// NewIntColumn creates an int64 column.
func NewIntColumn(name string, values []int64) Column {
	return Column{Name: name, Kind: KindInt, Ints: values}
}

// NewStringColumn creates a string column.
func NewStringColumn(name string, values []string) Column {
	return Column{Name: name, Kind: KindString, Strings: values}
}

// Len returns the number of entries in the column.
func (c *Column) Len() int {
	switch c.Kind {
	case KindFloat:
		return len(c.Floats)
	case KindInt:
		return len(c.Ints)
	case KindString:
		return len(c.Strings)
	default:
		return 0
	}
}

// IsValid reports whether the entry at index i holds data.
// Non-float columns are always valid.
func (c *Column) IsValid(i int) bool {
	if c.Kind != KindFloat || c.Valid == nil {
		return true
	}

	return c.Valid[i]
}

// Clone returns a deep copy of the column.
func (c *Column) Clone() Column {
	out := Column{Name: c.Name, Kind: c.Kind}
	out.Floats = slices.Clone(c.Floats)
	out.Valid = slices.Clone(c.Valid)
	out.Ints = slices.Clone(c.Ints)
	out.Strings = slices.Clone(c.Strings)

	return out
}

// keyAt renders the entry at index i as a join-key fragment.
func (c *Column) keyAt(i int) string {
	switch c.Kind {
	case KindFloat:
		if !c.IsValid(i) {
			return "<na>"
		}

		return fmt.Sprintf("%g", c.Floats[i])
	case KindInt:
		return fmt.Sprintf("%d", c.Ints[i])
	case KindString:
		return c.Strings[i]
	default:
		return ""
	}
}

// appendFrom appends entry i of src to the column. Kinds must match.
func (c *Column) appendFrom(src *Column, i int) {
	switch c.Kind {
	case KindFloat:
		c.Floats = append(c.Floats, src.Floats[i])
		if src.Valid != nil {
			if c.Valid == nil {
				c.Valid = make([]bool, len(c.Floats)-1)
				for j := range c.Valid {
					c.Valid[j] = true
				}
			}
			c.Valid = append(c.Valid, src.Valid[i])
		} else if c.Valid != nil {
			c.Valid = append(c.Valid, true)
		}
	case KindInt:
		c.Ints = append(c.Ints, src.Ints[i])
	case KindString:
		c.Strings = append(c.Strings, src.Strings[i])
	}
}

// Table is an ordered collection of equal-length named columns.
type Table struct {
	columns []Column
}

// New creates a table from the given columns.
//
// All columns must have the same length and unique names; column order
// is preserved exactly as given.
func New(cols ...Column) (*Table, error) {
	seen := make(map[string]struct{}, len(cols))
	rows := -1
	for i := range cols {
		if cols[i].Name == "" {
			return nil, fmt.Errorf("column %d has no name", i)
		}
		if _, dup := seen[cols[i].Name]; dup {
			return nil, fmt.Errorf("duplicate column name: %s", cols[i].Name)
		}
		seen[cols[i].Name] = struct{}{}

		if rows == -1 {
			rows = cols[i].Len()
		} else if cols[i].Len() != rows {
			return nil, fmt.Errorf("column %s has %d rows, want %d", cols[i].Name, cols[i].Len(), rows)
		}
		if cols[i].Kind == KindFloat && cols[i].Valid != nil && len(cols[i].Valid) != len(cols[i].Floats) {
			return nil, fmt.Errorf("column %s validity mask has %d entries, want %d", cols[i].Name, len(cols[i].Valid), len(cols[i].Floats))
		}
	}

	return &Table{columns: slices.Clone(cols)}, nil
}

// MustNew is like New but panics on invalid input. Intended for
// literals in tests and examples.
func MustNew(cols ...Column) *Table {
	t, err := New(cols...)
	if err != nil {
		panic(err)
	}

	return t
}

// NumRows returns the number of rows in the table (0 for an empty table).
func (t *Table) NumRows() int {
	if len(t.columns) == 0 {
		return 0
	}

	return t.columns[0].Len()
}

// NumColumns returns the number of columns.
func (t *Table) NumColumns() int {
	return len(t.columns)
}

// Names returns the column names in order.
func (t *Table) Names() []string {
	names := make([]string, len(t.columns))
	for i := range t.columns {
		names[i] = t.columns[i].Name
	}

	return names
}

// Columns returns the underlying columns in order.
// The returned slice is shared with the table; callers must not mutate it.
func (t *Table) Columns() []Column {
	return t.columns
}

// Column returns the column with the given name.
func (t *Table) Column(name string) (*Column, bool) {
	for i := range t.columns {
		if t.columns[i].Name == name {
			return &t.columns[i], true
		}
	}

	return nil, false
}

// HasColumn reports whether a column with the given name exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.Column(name)
	return ok
}

// Drop returns a new table without the named column.
// Dropping a column that does not exist returns an equivalent copy.
func (t *Table) Drop(name string) *Table {
	out := make([]Column, 0, len(t.columns))
	for i := range t.columns {
		if t.columns[i].Name == name {
			continue
		}
		out = append(out, t.columns[i].Clone())
	}

	return &Table{columns: out}
}

// AppendColumn adds a column to the table. The column length must match
// the table's row count unless the table is empty.
func (t *Table) AppendColumn(col Column) error {
	if t.HasColumn(col.Name) {
		return fmt.Errorf("duplicate column name: %s", col.Name)
	}
	if len(t.columns) > 0 && col.Len() != t.NumRows() {
		return fmt.Errorf("column %s has %d rows, want %d", col.Name, col.Len(), t.NumRows())
	}
	t.columns = append(t.columns, col)

	return nil
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	out := make([]Column, len(t.columns))
	for i := range t.columns {
		out[i] = t.columns[i].Clone()
	}

	return &Table{columns: out}
}

// Equal reports whether two tables have identical schemas and contents.
func (t *Table) Equal(other *Table) bool {
	if other == nil || len(t.columns) != len(other.columns) {
		return false
	}
	for i := range t.columns {
		a, b := &t.columns[i], &other.columns[i]
		if a.Name != b.Name || a.Kind != b.Kind || a.Len() != b.Len() {
			return false
		}
		for j := 0; j < a.Len(); j++ {
			if a.IsValid(j) != b.IsValid(j) {
				return false
			}
			switch a.Kind {
			case KindFloat:
				if a.IsValid(j) && a.Floats[j] != b.Floats[j] {
					return false
				}
			case KindInt:
				if a.Ints[j] != b.Ints[j] {
					return false
				}
			case KindString:
				if a.Strings[j] != b.Strings[j] {
					return false
				}
			}
		}
	}

	return true
}
