package query

import (
	"fmt"
	"math"
)

// floatFunc is a one-argument function over float64. Integer arguments are
// widened first.
type floatFunc struct {
	name string
	fn   func(float64) (float64, error)
}

func (f *floatFunc) Name() string  { return f.name }
func (f *floatFunc) MinArity() int { return 1 }
func (f *floatFunc) MaxArity() int { return 1 }
func (f *floatFunc) Evaluate(args []interface{}) (interface{}, error) {
	num, err := valueToNumber(args[0])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.name, err)
	}
	out, err := f.fn(num)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.name, err)
	}
	return out, nil
}

func exact(fn func(float64) float64) func(float64) (float64, error) {
	return func(x float64) (float64, error) { return fn(x), nil }
}

var floatFuncs = []*floatFunc{
	{name: "FLOOR", fn: exact(math.Floor)},
	{name: "CEIL", fn: exact(math.Ceil)},
	{name: "SQRT", fn: func(x float64) (float64, error) {
		if x < 0 {
			return 0, fmt.Errorf("negative number")
		}
		return math.Sqrt(x), nil
	}},
}

// AbsFunc returns the absolute value of a number. Integers stay integers.
type AbsFunc struct{}

func (f *AbsFunc) Name() string  { return "ABS" }
func (f *AbsFunc) MinArity() int { return 1 }
func (f *AbsFunc) MaxArity() int { return 1 }
func (f *AbsFunc) Evaluate(args []interface{}) (interface{}, error) {
	if i, ok := args[0].(int64); ok {
		if i < 0 {
			return -i, nil
		}
		return i, nil
	}
	num, err := valueToNumber(args[0])
	if err != nil {
		return nil, fmt.Errorf("ABS: %w", err)
	}
	return math.Abs(num), nil
}

// RoundFunc rounds half away from zero: ROUND(x) or ROUND(x, decimals).
// Negative decimals round to tens, hundreds and so on.
type RoundFunc struct{}

func (f *RoundFunc) Name() string  { return "ROUND" }
func (f *RoundFunc) MinArity() int { return 1 }
func (f *RoundFunc) MaxArity() int { return 2 }
func (f *RoundFunc) Evaluate(args []interface{}) (interface{}, error) {
	num, err := valueToNumber(args[0])
	if err != nil {
		return nil, fmt.Errorf("ROUND: %w", err)
	}
	if len(args) == 1 {
		return math.Round(num), nil
	}

	decimals, err := valueToNumber(args[1])
	if err != nil {
		return nil, fmt.Errorf("ROUND: decimals: %w", err)
	}
	scale := math.Pow(10, decimals)
	return math.Round(num*scale) / scale, nil
}

// PowFunc is POW(base, exponent), always float64. The ** operator keeps
// integer results for integer operands.
type PowFunc struct{}

func (f *PowFunc) Name() string  { return "POW" }
func (f *PowFunc) MinArity() int { return 2 }
func (f *PowFunc) MaxArity() int { return 2 }
func (f *PowFunc) Evaluate(args []interface{}) (interface{}, error) {
	base, err := valueToNumber(args[0])
	if err != nil {
		return nil, fmt.Errorf("POW: base: %w", err)
	}
	exp, err := valueToNumber(args[1])
	if err != nil {
		return nil, fmt.Errorf("POW: exponent: %w", err)
	}
	return math.Pow(base, exp), nil
}
