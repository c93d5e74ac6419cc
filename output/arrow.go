package output

import (
	"fmt"
	"io"
	"time"

	"github.com/apache/arrow/go/v11/arrow"
	"github.com/apache/arrow/go/v11/arrow/array"
	"github.com/apache/arrow/go/v11/arrow/ipc"
	"github.com/apache/arrow/go/v11/arrow/memory"

	"github.com/vegasq/datadrill/query"
)

// ArrowFormatter writes a table as an Arrow IPC stream holding one record
// batch
type ArrowFormatter struct {
	writer io.Writer
}

// NewArrowFormatter creates an Arrow IPC stream formatter
func NewArrowFormatter(w io.Writer) *ArrowFormatter {
	return &ArrowFormatter{writer: w}
}

// SetOutput sets the output writer
func (a *ArrowFormatter) SetOutput(w io.Writer) {
	a.writer = w
}

// arrowTypes maps series dtypes onto Arrow types. Columns of any other dtype
// are written as strings.
var arrowTypes = map[string]arrow.DataType{
	"int64":     arrow.PrimitiveTypes.Int64,
	"float64":   arrow.PrimitiveTypes.Float64,
	"bool":      arrow.FixedWidthTypes.Boolean,
	"timestamp": arrow.FixedWidthTypes.Timestamp_ns,
}

// Format writes t. Every column is nullable.
func (a *ArrowFormatter) Format(t *query.Table) error {
	series := t.Series()
	fields := make([]arrow.Field, len(series))
	for i, s := range series {
		dt, ok := arrowTypes[s.DType()]
		if !ok {
			dt = arrow.BinaryTypes.String
		}
		fields[i] = arrow.Field{Name: s.Name(), Type: dt, Nullable: true}
	}
	schema := arrow.NewSchema(fields, nil)

	builder := array.NewRecordBuilder(memory.DefaultAllocator, schema)
	defer builder.Release()
	builder.Reserve(t.Len())

	for c, s := range series {
		for i := 0; i < t.Len(); i++ {
			if err := appendArrow(builder.Field(c), s.Value(i)); err != nil {
				return fmt.Errorf("column %q row %d: %w", s.Name(), i, err)
			}
		}
	}

	writer := ipc.NewWriter(a.writer, ipc.WithSchema(schema))
	rec := builder.NewRecord()
	defer rec.Release()
	if err := writer.Write(rec); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write arrow record: %w", err)
	}
	return writer.Close()
}

func appendArrow(b array.Builder, v interface{}) error {
	if v == nil {
		b.AppendNull()
		return nil
	}
	switch b := b.(type) {
	case *array.Int64Builder:
		b.Append(v.(int64))
	case *array.Float64Builder:
		b.Append(v.(float64))
	case *array.BooleanBuilder:
		b.Append(v.(bool))
	case *array.TimestampBuilder:
		b.Append(arrow.Timestamp(v.(time.Time).UnixNano()))
	case *array.StringBuilder:
		if s, ok := v.(string); ok {
			b.Append(s)
		} else {
			b.Append(fmt.Sprintf("%v", v))
		}
	default:
		return fmt.Errorf("unsupported arrow builder %T", b)
	}
	return nil
}
