package reader

import (
	"fmt"
	"io"

	"github.com/apache/arrow/go/v11/arrow"
	"github.com/apache/arrow/go/v11/arrow/array"
	"github.com/apache/arrow/go/v11/arrow/ipc"

	"github.com/vegasq/datadrill/query"
)

// ReadArrow reads an Arrow IPC stream into a table. Every record batch in the
// stream must share the stream's schema.
func ReadArrow(r io.Reader) (*query.Table, error) {
	rr, err := ipc.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open arrow stream: %w", err)
	}
	defer rr.Release()

	fields := rr.Schema().Fields()
	columns := make([][]interface{}, len(fields))
	for rr.Next() {
		rec := rr.Record()
		for c, a := range rec.Columns() {
			for i := 0; i < a.Len(); i++ {
				v, err := arrowValue(a, i)
				if err != nil {
					return nil, fmt.Errorf("column %q: %w", fields[c].Name, err)
				}
				columns[c] = append(columns[c], v)
			}
		}
	}
	if err := rr.Err(); err != nil {
		return nil, fmt.Errorf("failed to read arrow record: %w", err)
	}

	series := make([]*query.Series, len(fields))
	for i, f := range fields {
		series[i] = query.NewSeries(f.Name, columns[i])
	}
	return query.NewTable(series...)
}

// arrowValue converts element i of a into the engine's value domain
func arrowValue(a arrow.Array, i int) (interface{}, error) {
	if a.IsNull(i) {
		return nil, nil
	}
	switch arr := a.(type) {
	case *array.Boolean:
		return arr.Value(i), nil
	case *array.Int8:
		return int64(arr.Value(i)), nil
	case *array.Int16:
		return int64(arr.Value(i)), nil
	case *array.Int32:
		return int64(arr.Value(i)), nil
	case *array.Int64:
		return arr.Value(i), nil
	case *array.Uint8:
		return int64(arr.Value(i)), nil
	case *array.Uint16:
		return int64(arr.Value(i)), nil
	case *array.Uint32:
		return int64(arr.Value(i)), nil
	case *array.Uint64:
		// query.NewSeries narrows it, falling back to float64 past MaxInt64
		return arr.Value(i), nil
	case *array.Float32:
		return float64(arr.Value(i)), nil
	case *array.Float64:
		return arr.Value(i), nil
	case *array.String:
		return arr.Value(i), nil
	case *array.LargeString:
		return arr.Value(i), nil
	case *array.Binary:
		return string(arr.Value(i)), nil
	case *array.Date32:
		return arr.Value(i).ToTime(), nil
	case *array.Date64:
		return arr.Value(i).ToTime(), nil
	case *array.Timestamp:
		unit := arr.DataType().(*arrow.TimestampType).Unit
		return arr.Value(i).ToTime(unit), nil
	}
	return nil, fmt.Errorf("unsupported arrow type %s", a.DataType())
}
