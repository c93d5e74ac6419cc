// Package query provides the in-memory columnar engine that evaluates fully
// resolved expressions against tables.
//
// Expressions in this package know nothing about logical field names or
// prefixes: a ColumnExpr names a physical column and nothing else. Building
// those expressions from logical names is the job of package drill, which
// hands finished expressions to Table.Select and Table.Filter.
//
// # Basic Usage
//
// Build a table and select a computed column:
//
//	table, err := query.NewTable(
//	    query.NewSeries("numbers", []interface{}{1, 2, 3}),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	out, err := table.Select(query.Binary(query.OpAdd, query.Col("numbers"), query.Lit(1)))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	// out has one column "numbers" holding 2, 3, 4
//
// # Filter Operations
//
// Keep the rows where a predicate holds:
//
//	filtered, err := table.Filter(query.Binary(query.OpGt, query.Col("numbers"), query.Lit(1)))
//
// Rows where the predicate is null are dropped; a non-boolean predicate is an
// error.
//
// # Vectorized User Functions
//
// Struct packs several columns into one, and MapBatches hands that column to
// a user function a batch at a time:
//
//	packed := query.Struct(
//	    query.Alias(query.Col("numbers"), "a"),
//	    query.Alias(query.Col("modified_numbers"), "b"),
//	)
//	sum := query.MapBatches(packed, func(batch *query.Series) (*query.Series, error) {
//	    a, _ := batch.Field("a")
//	    b, _ := batch.Field("b")
//	    return a.Apply(query.OpAdd, b)
//	})
//
// # Type System
//
// Values are normalized on the way in: integers become int64, floats become
// float64, byte slices become strings. Operators follow these rules:
//   - nil operands yield nil
//   - int op int stays int64, except true division which yields float64
//   - floor division and modulo are floored; integer division by zero is nil
//   - &, | and ^ are logical on booleans and bitwise on integers
//   - + concatenates strings
//   - comparisons are exact between integers, use float64 otherwise, and
//     compare strings bytewise
//   - unrelated types fail with ErrTypeMismatch
//
// # Built-in Functions
//
// Call invokes a registered scalar function row by row:
//   - UPPER(str), LOWER(str), TRIM(str), LENGTH(str), CONCAT(v1, v2, ...)
//   - ABS(num), ROUND(num, decimals), FLOOR(num), CEIL(num), SQRT(num), POW(x, y)
//   - COALESCE(v1, v2, ...)
//   - CAST(v, type), TRY_CAST(v, type) where type is int, float, string, bool or timestamp
//   - TO_TIMESTAMP(str), DATE_PART(unit, ts), DATE_TRUNC(unit, ts), YEAR(ts), MONTH(ts), DAY(ts), HOUR(ts)
//
// Apart from COALESCE, a function yields nil for any row with a nil argument.
package query
