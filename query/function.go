package query

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Function represents a scalar function that can be evaluated
type Function interface {
	// Name returns the function name (case-insensitive)
	Name() string
	// MinArity returns the minimum number of arguments
	MinArity() int
	// MaxArity returns the maximum number of arguments (-1 for unlimited)
	MaxArity() int
	// Evaluate evaluates the function with the given arguments
	Evaluate(args []interface{}) (interface{}, error)
}

// nullAware is implemented by functions that want to see nil arguments.
// Every other function yields nil as soon as one argument is nil.
type nullAware interface {
	AcceptsNull() bool
}

// FunctionRegistry manages function lookup and registration
type FunctionRegistry struct {
	mu        sync.RWMutex
	functions map[string]Function
}

// NewFunctionRegistry creates a new function registry
func NewFunctionRegistry() *FunctionRegistry {
	return &FunctionRegistry{
		functions: make(map[string]Function),
	}
}

// Register registers a function
func (r *FunctionRegistry) Register(f Function) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.functions[strings.ToUpper(f.Name())] = f
}

// Get retrieves a function by name (case-insensitive)
func (r *FunctionRegistry) Get(name string) (Function, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, exists := r.functions[strings.ToUpper(name)]
	return f, exists
}

// globalRegistry is the default function registry
var globalRegistry *FunctionRegistry

func init() {
	globalRegistry = NewFunctionRegistry()

	for _, f := range stringFuncs {
		globalRegistry.Register(f)
	}
	globalRegistry.Register(&ConcatFunc{})

	for _, f := range floatFuncs {
		globalRegistry.Register(f)
	}
	globalRegistry.Register(&AbsFunc{})
	globalRegistry.Register(&RoundFunc{})
	globalRegistry.Register(&PowFunc{})

	globalRegistry.Register(&CoalesceFunc{})

	globalRegistry.Register(&CastFunc{})
	globalRegistry.Register(&CastFunc{try: true})
	globalRegistry.Register(&ToTimestampFunc{})
	globalRegistry.Register(&DatePartFunc{})
	globalRegistry.Register(&DateTruncFunc{})
	for _, part := range []string{"year", "month", "day", "hour"} {
		globalRegistry.Register(&datePartAlias{part: part})
	}
}

// GetGlobalRegistry returns the global function registry
func GetGlobalRegistry() *FunctionRegistry {
	return globalRegistry
}

// LookupFunction finds a function in the global registry
func LookupFunction(name string) (Function, bool) {
	return globalRegistry.Get(name)
}

// CallExpr invokes a registered scalar function once per row
type CallExpr struct {
	Function string
	Args     []Expr
}

var _ Expr = (*CallExpr)(nil)

// Call returns an expression calling the named function. The name is looked
// up in the global registry at evaluation time.
func Call(name string, args ...Expr) *CallExpr {
	return &CallExpr{Function: name, Args: args}
}

// Evaluate evaluates all arguments and calls the function row by row
func (c *CallExpr) Evaluate(t *Table) (*Series, error) {
	fn, exists := globalRegistry.Get(c.Function)
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFunction, c.Function)
	}

	// Check arity
	argCount := len(c.Args)
	if argCount < fn.MinArity() {
		return nil, fmt.Errorf("function %s: expected at least %d arguments, got %d", fn.Name(), fn.MinArity(), argCount)
	}
	if fn.MaxArity() >= 0 && argCount > fn.MaxArity() {
		return nil, fmt.Errorf("function %s: expected at most %d arguments, got %d", fn.Name(), fn.MaxArity(), argCount)
	}

	// Evaluate all arguments
	columns := make([]*Series, argCount)
	for i, arg := range c.Args {
		col, err := arg.Evaluate(t)
		if err != nil {
			return nil, fmt.Errorf("function %s: argument %d: %w", fn.Name(), i+1, err)
		}
		if col.IsStruct() {
			return nil, fmt.Errorf("function %s: argument %d: %w: struct argument", fn.Name(), i+1, ErrTypeMismatch)
		}
		columns[i] = col
	}

	acceptsNull := false
	if na, ok := fn.(nullAware); ok {
		acceptsNull = na.AcceptsNull()
	}

	values := make([]interface{}, t.Len())
	args := make([]interface{}, argCount)
	for row := range values {
		hasNull := false
		for i, col := range columns {
			args[i] = col.values[row]
			hasNull = hasNull || args[i] == nil
		}
		if hasNull && !acceptsNull {
			continue
		}
		v, err := fn.Evaluate(args)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		values[row] = normalizeValue(v)
	}
	return newSeries(c.Name(), values), nil
}

// Name is the name of the first argument, or the function name when there
// are no arguments
func (c *CallExpr) Name() string {
	if len(c.Args) == 0 {
		return strings.ToLower(c.Function)
	}
	return c.Args[0].Name()
}

func (c *CallExpr) String() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.String()
	}
	return strings.ToLower(c.Function) + "(" + strings.Join(parts, ", ") + ")"
}

// valueToString renders scalars the way CONCAT and CAST(v, 'string') show them
func valueToString(v interface{}) (string, error) {
	switch val := v.(type) {
	case string:
		return val, nil
	case int64:
		return strconv.FormatInt(val, 10), nil
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64), nil
	case bool:
		return strconv.FormatBool(val), nil
	case time.Time:
		return val.Format(time.RFC3339Nano), nil
	default:
		return "", fmt.Errorf("cannot convert %T to string", v)
	}
}

// valueToNumber widens numbers to float64 and parses numeric strings
func valueToNumber(v interface{}) (float64, error) {
	if num, ok := toFloat64(v); ok {
		return num, nil
	}
	if s, ok := v.(string); ok {
		return strconv.ParseFloat(strings.TrimSpace(s), 64)
	}
	return 0, fmt.Errorf("cannot convert %T to number", v)
}

// CoalesceFunc returns the first non-nil argument
type CoalesceFunc struct{}

func (f *CoalesceFunc) Name() string      { return "COALESCE" }
func (f *CoalesceFunc) MinArity() int     { return 1 }
func (f *CoalesceFunc) MaxArity() int     { return -1 }
func (f *CoalesceFunc) AcceptsNull() bool { return true }
func (f *CoalesceFunc) Evaluate(args []interface{}) (interface{}, error) {
	for _, arg := range args {
		if arg != nil {
			return arg, nil
		}
	}
	return nil, nil
}
