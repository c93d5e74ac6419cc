package drill

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vegasq/datadrill/query"
)

var sampleColumns = []string{"numbers", "modified_numbers"}

func sampleTable(t *testing.T) *query.Table {
	t.Helper()

	table, err := query.NewTable(
		query.NewSeries("numbers", []interface{}{1, 2, 3}),
		query.NewSeries("modified_numbers", []interface{}{10, 20, 30}),
	)
	require.NoError(t, err)
	return table
}

func sampleEnv() *Environment {
	return NewEnvironment(NewFieldResolver(sampleColumns))
}

// evaluate runs r under env and evaluates the result against table
func evaluate(t *testing.T, r Reader, env *Environment, table *query.Table) []interface{} {
	t.Helper()

	expr, err := r(env)
	require.NoError(t, err)
	series, err := expr.Evaluate(table)
	require.NoError(t, err)
	return series.Values()
}

func ints(values ...int64) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
