package query

import (
	"fmt"
	"math"
	"time"
)

// compare compares two values using the given operator.
//
// A nil operand yields nil (null propagation). Two int64 values compare
// exactly; any other pair of numbers compares as float64 with a relative
// epsilon for equality. Strings compare bytewise, booleans and timestamps compare by their
// natural order. Values of unrelated types fail with ErrTypeMismatch.
func compare(left interface{}, op BinaryOp, right interface{}) (interface{}, error) {
	if left == nil || right == nil {
		return nil, nil
	}

	if l, ok := left.(int64); ok {
		if r, ok := right.(int64); ok {
			return compareOrdered(l, op, r), nil
		}
	}

	// Try numeric comparison
	leftNum, leftIsNum := toFloat64(left)
	rightNum, rightIsNum := toFloat64(right)
	if leftIsNum && rightIsNum {
		return compareNumbers(leftNum, op, rightNum), nil
	}

	// Try string comparison
	leftStr, leftIsStr := left.(string)
	rightStr, rightIsStr := right.(string)
	if leftIsStr && rightIsStr {
		return compareOrdered(leftStr, op, rightStr), nil
	}

	// Try boolean comparison
	leftBool, leftIsBool := left.(bool)
	rightBool, rightIsBool := right.(bool)
	if leftIsBool && rightIsBool {
		return compareOrdered(boolRank(leftBool), op, boolRank(rightBool)), nil
	}

	// Try timestamp comparison
	leftTime, leftIsTime := left.(time.Time)
	rightTime, rightIsTime := right.(time.Time)
	if leftIsTime && rightIsTime {
		return compareOrdered(leftTime.UnixNano(), op, rightTime.UnixNano()), nil
	}

	return nil, fmt.Errorf("%w: cannot compare %T with %T", ErrTypeMismatch, left, right)
}

// toFloat64 converts a numeric value to float64 if possible
func toFloat64(v interface{}) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case int64:
		return float64(val), true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int32:
		return float64(val), true
	default:
		return 0, false
	}
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}

// compareNumbers compares two numbers, using an epsilon scaled to the
// operands' magnitude for equality
func compareNumbers(left float64, op BinaryOp, right float64) bool {
	const epsilon = 1e-9
	switch op {
	case OpEq, OpNe:
		diff := math.Abs(left - right)
		threshold := epsilon * math.Max(1.0, math.Max(math.Abs(left), math.Abs(right)))
		equal := diff < threshold
		if op == OpEq {
			return equal
		}
		return !equal
	case OpLt:
		return left < right
	case OpGt:
		return left > right
	case OpLe:
		return left <= right
	case OpGe:
		return left >= right
	default:
		return false
	}
}

// compareOrdered compares two values of an ordered type
func compareOrdered[T int | int64 | string](left T, op BinaryOp, right T) bool {
	switch op {
	case OpEq:
		return left == right
	case OpNe:
		return left != right
	case OpLt:
		return left < right
	case OpGt:
		return left > right
	case OpLe:
		return left <= right
	case OpGe:
		return left >= right
	default:
		return false
	}
}

// predicateMask evaluates a predicate and returns the indices of the rows
// where it holds. Null rows are dropped.
func predicateMask(predicate *Series) ([]int, error) {
	if predicate.IsStruct() {
		return nil, fmt.Errorf("%w: filter predicate is a struct", ErrTypeMismatch)
	}
	keep := make([]int, 0, predicate.Len())
	for i, v := range predicate.values {
		switch b := v.(type) {
		case nil:
			continue
		case bool:
			if b {
				keep = append(keep, i)
			}
		default:
			return nil, fmt.Errorf("%w: filter predicate must be boolean, got %T at row %d", ErrTypeMismatch, v, i)
		}
	}
	return keep, nil
}
