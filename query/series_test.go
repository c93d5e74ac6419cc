package query

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSeries_Normalizes(t *testing.T) {
	s := NewSeries("v", []interface{}{int8(1), uint32(2), float32(1.5), []byte("x"), nil})
	assert.Equal(t, []interface{}{int64(1), int64(2), 1.5, "x", nil}, s.Values())
	assert.Equal(t, "mixed", s.DType())
}

func TestNewSeries_LargeUnsignedKeepsSign(t *testing.T) {
	s := NewSeries("v", []interface{}{uint64(math.MaxInt64), uint64(math.MaxUint64), uint(3)})
	assert.Equal(t, []interface{}{int64(math.MaxInt64), float64(math.MaxUint64), int64(3)}, s.Values())
}

func TestSeries_DType(t *testing.T) {
	tests := []struct {
		name   string
		values []interface{}
		want   string
	}{
		{"ints", []interface{}{1, nil, 3}, "int64"},
		{"floats", []interface{}{1.5}, "float64"},
		{"strings", []interface{}{"a"}, "string"},
		{"bools", []interface{}{true}, "bool"},
		{"timestamps", []interface{}{time.Unix(0, 0)}, "timestamp"},
		{"all null", []interface{}{nil, nil}, "null"},
		{"empty", []interface{}{}, "null"},
		{"mixed", []interface{}{1, "a"}, "mixed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewSeries("v", tt.values).DType())
		})
	}
}

func TestStructSeries(t *testing.T) {
	a := NewSeries("a", []interface{}{1, 2, 3})
	b := NewSeries("b", []interface{}{"x", "y", "z"})

	s, err := NewStructSeries("a", a, b)
	require.NoError(t, err)
	assert.True(t, s.IsStruct())
	assert.Equal(t, "struct", s.DType())
	assert.Equal(t, map[string]interface{}{"a": int64(2), "b": "y"}, s.Value(1))

	field, err := s.Field("b")
	require.NoError(t, err)
	assert.Same(t, b, field)

	_, err = s.Field("c")
	assert.ErrorIs(t, err, ErrUnknownColumn)
	_, err = a.Field("a")
	assert.ErrorIs(t, err, ErrTypeMismatch)

	sliced := s.Slice(1, 5)
	assert.Equal(t, 2, sliced.Len())
	f, err := sliced.Field("a")
	require.NoError(t, err)
	assert.Equal(t, []interface{}{int64(2), int64(3)}, f.Values())

	taken := s.Take([]int{2, 0})
	f, err = taken.Field("b")
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"z", "x"}, f.Values())
}

func TestStructSeries_Errors(t *testing.T) {
	_, err := NewStructSeries("s",
		NewSeries("a", []interface{}{1}),
		NewSeries("b", []interface{}{1, 2}),
	)
	assert.ErrorIs(t, err, ErrLengthMismatch)

	_, err = NewStructSeries("s",
		NewSeries("a", []interface{}{1}),
		NewSeries("a", []interface{}{2}),
	)
	assert.ErrorIs(t, err, ErrDuplicateColumn)
}

func TestSeries_Rename(t *testing.T) {
	s := NewSeries("a", []interface{}{1})
	assert.Same(t, s, s.Rename("a"))

	renamed := s.Rename("b")
	assert.Equal(t, "b", renamed.Name())
	assert.Equal(t, "a", s.Name())
	assert.Equal(t, s.Values(), renamed.Values())
}

func TestSeries_Slice(t *testing.T) {
	s := NewSeries("a", []interface{}{1, 2, 3})
	assert.Equal(t, []interface{}{int64(2), int64(3)}, s.Slice(1, 10).Values())
	assert.Equal(t, 0, s.Slice(5, 1).Len())
}

func TestSeries_Apply(t *testing.T) {
	a := NewSeries("a", []interface{}{1, 2, nil})
	b := NewSeries("b", []interface{}{10, 20, 30})

	sum, err := a.Apply(OpAdd, b)
	require.NoError(t, err)
	assert.Equal(t, "a", sum.Name())
	assert.Equal(t, []interface{}{int64(11), int64(22), nil}, sum.Values())

	scaled, err := b.ApplyScalar(OpTrueDiv, 4)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{2.5, 5.0, 7.5}, scaled.Values())

	_, err = a.Apply(OpAdd, NewSeries("c", []interface{}{1}))
	assert.ErrorIs(t, err, ErrLengthMismatch)

	neg, err := a.Unary(OpNeg)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{int64(-1), int64(-2), nil}, neg.Values())
}
