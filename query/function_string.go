package query

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// stringFunc is a one-argument function over the string form of its
// argument, so UPPER(42) is "42"
type stringFunc struct {
	name string
	fn   func(string) interface{}
}

func (f *stringFunc) Name() string  { return f.name }
func (f *stringFunc) MinArity() int { return 1 }
func (f *stringFunc) MaxArity() int { return 1 }
func (f *stringFunc) Evaluate(args []interface{}) (interface{}, error) {
	s, err := valueToString(args[0])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.name, err)
	}
	return f.fn(s), nil
}

var stringFuncs = []*stringFunc{
	{name: "UPPER", fn: func(s string) interface{} { return strings.ToUpper(s) }},
	{name: "LOWER", fn: func(s string) interface{} { return strings.ToLower(s) }},
	{name: "TRIM", fn: func(s string) interface{} { return strings.TrimSpace(s) }},
	// characters, not bytes
	{name: "LENGTH", fn: func(s string) interface{} { return int64(utf8.RuneCountInString(s)) }},
}

// ConcatFunc joins the string forms of its arguments
type ConcatFunc struct{}

func (f *ConcatFunc) Name() string  { return "CONCAT" }
func (f *ConcatFunc) MinArity() int { return 1 }
func (f *ConcatFunc) MaxArity() int { return -1 }
func (f *ConcatFunc) Evaluate(args []interface{}) (interface{}, error) {
	var sb strings.Builder
	for i, arg := range args {
		s, err := valueToString(arg)
		if err != nil {
			return nil, fmt.Errorf("CONCAT: argument %d: %w", i+1, err)
		}
		sb.WriteString(s)
	}
	return sb.String(), nil
}
