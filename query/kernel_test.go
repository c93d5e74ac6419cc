package query

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBinaryKernel(t *testing.T) {
	tests := []struct {
		name  string
		op    BinaryOp
		left  interface{}
		right interface{}
		want  interface{}
	}{
		{"int add", OpAdd, int64(2), int64(3), int64(5)},
		{"int sub", OpSub, int64(2), int64(3), int64(-1)},
		{"int mul", OpMul, int64(4), int64(3), int64(12)},
		{"int true div", OpTrueDiv, int64(7), int64(2), 3.5},
		{"int floor div", OpFloorDiv, int64(7), int64(2), int64(3)},
		{"negative floor div", OpFloorDiv, int64(-7), int64(2), int64(-4)},
		{"int floor div by zero", OpFloorDiv, int64(1), int64(0), nil},
		{"int mod", OpMod, int64(7), int64(3), int64(1)},
		{"negative mod", OpMod, int64(-7), int64(3), int64(2)},
		{"mod negative divisor", OpMod, int64(7), int64(-3), int64(-2)},
		{"int mod by zero", OpMod, int64(7), int64(0), nil},
		{"int pow", OpPow, int64(2), int64(10), int64(1024)},
		{"int negative pow", OpPow, int64(2), int64(-1), 0.5},
		{"int bitwise and", OpAnd, int64(6), int64(3), int64(2)},
		{"int bitwise or", OpOr, int64(6), int64(3), int64(7)},
		{"int bitwise xor", OpXor, int64(6), int64(3), int64(5)},
		{"mixed add", OpAdd, int64(1), 0.5, 1.5},
		{"float floor div", OpFloorDiv, 7.5, 2.0, 3.0},
		{"float mod", OpMod, -1.0, 3.0, 2.0},
		{"float pow", OpPow, 9.0, 0.5, 3.0},
		{"bool and", OpAnd, true, false, false},
		{"bool or", OpOr, true, false, true},
		{"bool xor", OpXor, true, true, false},
		{"string concat", OpAdd, "ab", "cd", "abcd"},
		{"nil operand", OpAdd, nil, int64(1), nil},
		{"comparison", OpGt, int64(2), int64(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := binaryKernel(tt.op, tt.left, tt.right)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBinaryKernel_Errors(t *testing.T) {
	tests := []struct {
		name  string
		op    BinaryOp
		left  interface{}
		right interface{}
	}{
		{"string minus int", OpSub, "a", int64(1)},
		{"string mul", OpMul, "a", "b"},
		{"float bitwise", OpAnd, 1.5, 2.5},
		{"bool add", OpAdd, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := binaryKernel(tt.op, tt.left, tt.right)
			assert.ErrorIs(t, err, ErrTypeMismatch)
		})
	}
}

func TestBinaryKernel_FloatModByZero(t *testing.T) {
	got, err := binaryKernel(OpMod, 1.0, 0.0)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(got.(float64)))
}

func TestUnaryKernel(t *testing.T) {
	tests := []struct {
		name string
		op   UnaryOp
		in   interface{}
		want interface{}
	}{
		{"negate int", OpNeg, int64(3), int64(-3)},
		{"negate float", OpNeg, 1.5, -1.5},
		{"plus", OpPos, int64(3), int64(3)},
		{"invert int", OpNot, int64(0), int64(-1)},
		{"not bool", OpNot, true, false},
		{"nil", OpNeg, nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := unaryKernel(tt.op, tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := unaryKernel(OpNeg, "a")
	assert.ErrorIs(t, err, ErrTypeMismatch)
	_, err = unaryKernel(OpNot, 1.5)
	assert.ErrorIs(t, err, ErrTypeMismatch)
}
