package query

import (
	"fmt"
	"math"
)

// binaryKernel applies op to a single pair of normalized values
func binaryKernel(op BinaryOp, left, right interface{}) (interface{}, error) {
	if op.IsComparison() {
		return compare(left, op, right)
	}
	if left == nil || right == nil {
		return nil, nil
	}

	switch l := left.(type) {
	case int64:
		if r, ok := right.(int64); ok {
			return intKernel(op, l, r)
		}
	case bool:
		if r, ok := right.(bool); ok {
			return boolKernel(op, l, r)
		}
	case string:
		if r, ok := right.(string); ok && op == OpAdd {
			return l + r, nil
		}
	}

	leftNum, leftIsNum := toFloat64(left)
	rightNum, rightIsNum := toFloat64(right)
	if leftIsNum && rightIsNum {
		return floatKernel(op, leftNum, rightNum)
	}
	return nil, fmt.Errorf("%w: unsupported operand types for %s: %T and %T", ErrTypeMismatch, op, left, right)
}

func intKernel(op BinaryOp, l, r int64) (interface{}, error) {
	switch op {
	case OpAdd:
		return l + r, nil
	case OpSub:
		return l - r, nil
	case OpMul:
		return l * r, nil
	case OpTrueDiv:
		return float64(l) / float64(r), nil
	case OpFloorDiv:
		if r == 0 {
			return nil, nil
		}
		q := l / r
		if (l%r != 0) && ((l < 0) != (r < 0)) {
			q--
		}
		return q, nil
	case OpMod:
		if r == 0 {
			return nil, nil
		}
		m := l % r
		if m != 0 && ((m < 0) != (r < 0)) {
			m += r
		}
		return m, nil
	case OpPow:
		if r < 0 {
			return math.Pow(float64(l), float64(r)), nil
		}
		return intPow(l, r), nil
	case OpAnd:
		return l & r, nil
	case OpOr:
		return l | r, nil
	case OpXor:
		return l ^ r, nil
	default:
		return nil, fmt.Errorf("%w: operator %s on integers", ErrTypeMismatch, op)
	}
}

func intPow(base, exp int64) int64 {
	result := int64(1)
	for exp > 0 {
		if exp&1 == 1 {
			result *= base
		}
		base *= base
		exp >>= 1
	}
	return result
}

func floatKernel(op BinaryOp, l, r float64) (interface{}, error) {
	switch op {
	case OpAdd:
		return l + r, nil
	case OpSub:
		return l - r, nil
	case OpMul:
		return l * r, nil
	case OpTrueDiv:
		return l / r, nil
	case OpFloorDiv:
		return math.Floor(l / r), nil
	case OpMod:
		if r == 0 {
			return math.NaN(), nil
		}
		return l - r*math.Floor(l/r), nil
	case OpPow:
		return math.Pow(l, r), nil
	default:
		return nil, fmt.Errorf("%w: operator %s on floats", ErrTypeMismatch, op)
	}
}

func boolKernel(op BinaryOp, l, r bool) (interface{}, error) {
	switch op {
	case OpAnd:
		return l && r, nil
	case OpOr:
		return l || r, nil
	case OpXor:
		return l != r, nil
	default:
		return nil, fmt.Errorf("%w: operator %s on booleans", ErrTypeMismatch, op)
	}
}

// unaryKernel applies op to a single normalized value
func unaryKernel(op UnaryOp, v interface{}) (interface{}, error) {
	if v == nil {
		return nil, nil
	}
	switch val := v.(type) {
	case int64:
		switch op {
		case OpNeg:
			return -val, nil
		case OpPos:
			return val, nil
		case OpNot:
			return ^val, nil
		}
	case float64:
		switch op {
		case OpNeg:
			return -val, nil
		case OpPos:
			return val, nil
		}
	case bool:
		if op == OpNot {
			return !val, nil
		}
	}
	return nil, fmt.Errorf("%w: unsupported operand type for unary %s: %T", ErrTypeMismatch, op, v)
}
