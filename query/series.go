package query

import (
	"fmt"
	"math"
	"time"
)

// Series is a named column of values.
//
// Plain series hold scalar values; struct series hold one child series per
// field and no values of their own. Series are never modified after
// construction: every operation returns a new series.
type Series struct {
	name   string
	values []interface{}
	fields []*Series
	length int
}

// NewSeries creates a series from values. Integers of every width become
// int64, floats become float64 and byte slices become strings. Unsigned
// values above math.MaxInt64 become float64.
func NewSeries(name string, values []interface{}) *Series {
	normalized := make([]interface{}, len(values))
	for i, v := range values {
		normalized[i] = normalizeValue(v)
	}
	return newSeries(name, normalized)
}

// newSeries wraps already normalized values without copying them
func newSeries(name string, values []interface{}) *Series {
	return &Series{name: name, values: values, length: len(values)}
}

// NewStructSeries packs fields into a struct series. All fields must have the
// same length and distinct names.
func NewStructSeries(name string, fields ...*Series) (*Series, error) {
	length := 0
	seen := make(map[string]bool, len(fields))
	for i, f := range fields {
		if i == 0 {
			length = f.Len()
		} else if f.Len() != length {
			return nil, fmt.Errorf("%w: struct field %q has %d values, expected %d", ErrLengthMismatch, f.Name(), f.Len(), length)
		}
		if seen[f.Name()] {
			return nil, fmt.Errorf("%w: struct field %q", ErrDuplicateColumn, f.Name())
		}
		seen[f.Name()] = true
	}
	return &Series{name: name, fields: fields, length: length}, nil
}

// Name returns the series name
func (s *Series) Name() string { return s.name }

// Len returns the number of rows
func (s *Series) Len() int { return s.length }

// IsStruct reports whether s is a struct series
func (s *Series) IsStruct() bool { return s.fields != nil }

// Value returns the value at row i. For struct series it returns the row as
// a map keyed by field name.
func (s *Series) Value(i int) interface{} {
	if s.IsStruct() {
		row := make(map[string]interface{}, len(s.fields))
		for _, f := range s.fields {
			row[f.name] = f.Value(i)
		}
		return row
	}
	return s.values[i]
}

// Values returns a copy of all row values
func (s *Series) Values() []interface{} {
	out := make([]interface{}, s.length)
	for i := range out {
		out[i] = s.Value(i)
	}
	return out
}

// Fields returns the child series of a struct series
func (s *Series) Fields() []*Series {
	out := make([]*Series, len(s.fields))
	copy(out, s.fields)
	return out
}

// Field returns the named child of a struct series
func (s *Series) Field(name string) (*Series, error) {
	if !s.IsStruct() {
		return nil, fmt.Errorf("%w: series %q is not a struct", ErrTypeMismatch, s.name)
	}
	for _, f := range s.fields {
		if f.name == name {
			return f, nil
		}
	}
	return nil, fmt.Errorf("%w: struct field %q", ErrUnknownColumn, name)
}

// Rename returns s under a new name, sharing the underlying values
func (s *Series) Rename(name string) *Series {
	if s.name == name {
		return s
	}
	out := *s
	out.name = name
	return &out
}

// Slice returns rows [offset, offset+length)
func (s *Series) Slice(offset, length int) *Series {
	if offset > s.length {
		offset = s.length
	}
	if offset+length > s.length {
		length = s.length - offset
	}
	if length < 0 {
		length = 0
	}
	if s.IsStruct() {
		fields := make([]*Series, len(s.fields))
		for i, f := range s.fields {
			fields[i] = f.Slice(offset, length)
		}
		return &Series{name: s.name, fields: fields, length: length}
	}
	return newSeries(s.name, s.values[offset:offset+length])
}

// Take returns the rows at the given indices, in order
func (s *Series) Take(indices []int) *Series {
	if s.IsStruct() {
		fields := make([]*Series, len(s.fields))
		for i, f := range s.fields {
			fields[i] = f.Take(indices)
		}
		return &Series{name: s.name, fields: fields, length: len(indices)}
	}
	values := make([]interface{}, len(indices))
	for i, idx := range indices {
		values[i] = s.values[idx]
	}
	return newSeries(s.name, values)
}

// DType describes the values held by s: "int64", "float64", "string",
// "bool", "timestamp", "struct", "null" (no non-nil values) or "mixed".
func (s *Series) DType() string {
	if s.IsStruct() {
		return "struct"
	}
	dtype := "null"
	for _, v := range s.values {
		var t string
		switch v.(type) {
		case nil:
			continue
		case int64:
			t = "int64"
		case float64:
			t = "float64"
		case string:
			t = "string"
		case bool:
			t = "bool"
		case time.Time:
			t = "timestamp"
		default:
			t = fmt.Sprintf("%T", v)
		}
		if dtype == "null" {
			dtype = t
		} else if dtype != t {
			return "mixed"
		}
	}
	return dtype
}

// Apply combines s and other row by row. Both series must have the same
// length; the result keeps the name of s.
func (s *Series) Apply(op BinaryOp, other *Series) (*Series, error) {
	if s.IsStruct() || other.IsStruct() {
		return nil, fmt.Errorf("%w: operator %s on struct series", ErrTypeMismatch, op)
	}
	if s.length != other.length {
		return nil, fmt.Errorf("%w: %d vs %d rows", ErrLengthMismatch, s.length, other.length)
	}
	values := make([]interface{}, s.length)
	for i := range values {
		v, err := binaryKernel(op, s.values[i], other.values[i])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		values[i] = v
	}
	return newSeries(s.name, values), nil
}

// ApplyScalar combines every row of s with a single value
func (s *Series) ApplyScalar(op BinaryOp, value interface{}) (*Series, error) {
	lit, err := Lit(value).Evaluate(&Table{length: s.length})
	if err != nil {
		return nil, err
	}
	return s.Apply(op, lit)
}

// Unary applies op to every row of s
func (s *Series) Unary(op UnaryOp) (*Series, error) {
	if s.IsStruct() {
		return nil, fmt.Errorf("%w: operator %s on struct series", ErrTypeMismatch, op)
	}
	values := make([]interface{}, s.length)
	for i := range values {
		v, err := unaryKernel(op, s.values[i])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		values[i] = v
	}
	return newSeries(s.name, values), nil
}

// concatSeries appends the rows of parts in order under name
func concatSeries(name string, parts []*Series) (*Series, error) {
	total := 0
	for _, p := range parts {
		if p.IsStruct() {
			return nil, fmt.Errorf("%w: cannot concatenate struct series", ErrTypeMismatch)
		}
		total += p.length
	}
	values := make([]interface{}, 0, total)
	for _, p := range parts {
		values = append(values, p.values...)
	}
	return newSeries(name, values), nil
}

// normalizeValue widens numeric types and converts byte slices to strings
func normalizeValue(v interface{}) interface{} {
	switch val := v.(type) {
	case int:
		return int64(val)
	case int8:
		return int64(val)
	case int16:
		return int64(val)
	case int32:
		return int64(val)
	case uint:
		return normalizeValue(uint64(val))
	case uint8:
		return int64(val)
	case uint16:
		return int64(val)
	case uint32:
		return int64(val)
	case uint64:
		// keep the sign; values past MaxInt64 lose precision instead
		if val > math.MaxInt64 {
			return float64(val)
		}
		return int64(val)
	case float32:
		return float64(val)
	case []byte:
		return string(val)
	default:
		return v
	}
}
