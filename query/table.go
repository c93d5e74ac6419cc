package query

import "fmt"

// Table is an ordered set of uniquely named, equal-length series
type Table struct {
	columns []*Series
	index   map[string]int
	length  int
}

// NewTable creates a table from columns. Columns must have distinct names and
// the same number of rows.
func NewTable(columns ...*Series) (*Table, error) {
	t := &Table{
		columns: make([]*Series, 0, len(columns)),
		index:   make(map[string]int, len(columns)),
	}
	for i, col := range columns {
		if _, exists := t.index[col.Name()]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, col.Name())
		}
		if i == 0 {
			t.length = col.Len()
		} else if col.Len() != t.length {
			return nil, fmt.Errorf("%w: column %q has %d rows, expected %d", ErrLengthMismatch, col.Name(), col.Len(), t.length)
		}
		t.index[col.Name()] = i
		t.columns = append(t.columns, col)
	}
	return t, nil
}

// FromRows builds a table from row maps. Columns are taken in the given
// order; a key missing from a row becomes nil.
func FromRows(columns []string, rows []map[string]interface{}) (*Table, error) {
	series := make([]*Series, len(columns))
	for i, name := range columns {
		values := make([]interface{}, len(rows))
		for j, row := range rows {
			values[j] = row[name]
		}
		series[i] = NewSeries(name, values)
	}
	return NewTable(series...)
}

// Len returns the number of rows
func (t *Table) Len() int { return t.length }

// Width returns the number of columns
func (t *Table) Width() int { return len(t.columns) }

// Columns returns the column names in order
func (t *Table) Columns() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.Name()
	}
	return names
}

// Column returns the named column
func (t *Table) Column(name string) (*Series, bool) {
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return t.columns[i], true
}

// Series returns all columns in order
func (t *Table) Series() []*Series {
	out := make([]*Series, len(t.columns))
	copy(out, t.columns)
	return out
}

// Row returns row i as a map keyed by column name
func (t *Table) Row(i int) map[string]interface{} {
	row := make(map[string]interface{}, len(t.columns))
	for _, c := range t.columns {
		row[c.Name()] = c.Value(i)
	}
	return row
}

// Rows returns every row as a map keyed by column name
func (t *Table) Rows() []map[string]interface{} {
	rows := make([]map[string]interface{}, t.length)
	for i := range rows {
		rows[i] = t.Row(i)
	}
	return rows
}

// Select evaluates exprs against t and returns a table holding one column per
// expression, named by the expression's output name. Two expressions with the
// same output name fail with ErrDuplicateColumn.
func (t *Table) Select(exprs ...Expr) (*Table, error) {
	columns := make([]*Series, 0, len(exprs))
	for _, e := range exprs {
		s, err := e.Evaluate(t)
		if err != nil {
			return nil, fmt.Errorf("select %s: %w", e, err)
		}
		columns = append(columns, s.Rename(e.Name()))
	}
	out, err := NewTable(columns...)
	if err != nil {
		return nil, fmt.Errorf("select: %w", err)
	}
	if len(columns) == 0 {
		out.length = 0
	}
	return out, nil
}

// Filter keeps the rows for which predicate evaluates to true
func (t *Table) Filter(predicate Expr) (*Table, error) {
	mask, err := predicate.Evaluate(t)
	if err != nil {
		return nil, fmt.Errorf("filter %s: %w", predicate, err)
	}
	keep, err := predicateMask(mask)
	if err != nil {
		return nil, fmt.Errorf("filter %s: %w", predicate, err)
	}
	return t.take(keep), nil
}

// Head returns the first n rows. A negative n returns all rows.
func (t *Table) Head(n int) *Table {
	if n < 0 || n >= t.length {
		return t
	}
	columns := make([]*Series, len(t.columns))
	for i, c := range t.columns {
		columns[i] = c.Slice(0, n)
	}
	return &Table{columns: columns, index: t.index, length: n}
}

func (t *Table) take(indices []int) *Table {
	columns := make([]*Series, len(t.columns))
	for i, c := range t.columns {
		columns[i] = c.Take(indices)
	}
	return &Table{columns: columns, index: t.index, length: len(indices)}
}
