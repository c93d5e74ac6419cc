package query

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func numbersTable(t *testing.T) *Table {
	t.Helper()
	table, err := NewTable(
		NewSeries("numbers", []interface{}{1, 2, 3}),
		NewSeries("modified_numbers", []interface{}{10, 20, 30}),
		NewSeries("label", []interface{}{"a", "b", nil}),
		NewSeries("ratio", []interface{}{0.5, nil, 2.5}),
	)
	require.NoError(t, err)
	return table
}

func values(t *testing.T, table *Table, name string) []interface{} {
	t.Helper()
	s, ok := table.Column(name)
	require.True(t, ok, "column %q", name)
	return s.Values()
}
