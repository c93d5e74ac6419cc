package drill

import (
	"errors"
	"fmt"
	"reflect"
	"runtime"
	"strings"

	"github.com/vegasq/datadrill/query"
)

// Param names one parameter of a lifted function and optionally gives it a
// default value
type Param struct {
	Name       string
	Default    any
	HasDefault bool
}

// Arg describes a required parameter
func Arg(name string) Param {
	return Param{Name: name}
}

// Opt describes a parameter that falls back to def when no argument is bound
func Opt(name string, def any) Param {
	return Param{Name: name, Default: def, HasDefault: true}
}

// Kwarg binds a value to a parameter by name when passed to a Factory
type Kwarg struct {
	Name  string
	Value any
}

// Kw returns a keyword argument
func Kw(name string, value any) Kwarg {
	return Kwarg{Name: name, Value: value}
}

// Factory builds a Reader from arguments. Arguments are bound positionally,
// except Kwarg values, which bind by name.
type Factory func(args ...any) Reader

type paramKind int

const (
	kindStatic paramKind = iota
	kindDynamic
	kindEnv
)

var (
	readerType = reflect.TypeOf(Reader(nil))
	exprType   = reflect.TypeOf((*query.Expr)(nil)).Elem()
	envType    = reflect.TypeOf((*Environment)(nil))
	seriesType = reflect.TypeOf((*query.Series)(nil))
	errorType  = reflect.TypeOf((*error)(nil)).Elem()
)

func isEmptyInterface(t reflect.Type) bool {
	return t.Kind() == reflect.Interface && t.NumMethod() == 0
}

func classifyScalar(t reflect.Type) paramKind {
	switch {
	case t == envType:
		return kindEnv
	case t == readerType, t == exprType, isEmptyInterface(t):
		return kindDynamic
	default:
		return kindStatic
	}
}

func classifySeries(t reflect.Type) paramKind {
	switch {
	case t == envType:
		return kindEnv
	case t == seriesType, isEmptyInterface(t):
		return kindDynamic
	default:
		return kindStatic
	}
}

// signature is the lift-time view of a function: its parameters, how each
// one is resolved, and whether it reports errors
type signature struct {
	fn      reflect.Value
	params  []Param
	kinds   []paramKind
	types   []reflect.Type
	returns reflect.Type
	hasErr  bool
}

func newSignature(fn any, params []Param, classify func(reflect.Type) paramKind) (*signature, error) {
	if fn == nil {
		return nil, fmt.Errorf("%w: nil function", ErrUnsupportedSignature)
	}
	v := reflect.ValueOf(fn)
	t := v.Type()
	if t.Kind() != reflect.Func {
		return nil, fmt.Errorf("%w: %T is not a function", ErrUnsupportedSignature, fn)
	}
	if t.IsVariadic() {
		return nil, fmt.Errorf("%w: variadic parameters are not supported", ErrUnsupportedSignature)
	}

	if len(params) == 0 {
		params = make([]Param, t.NumIn())
		for i := range params {
			params[i] = Arg(fmt.Sprintf("_%d", i))
		}
	}
	if len(params) != t.NumIn() {
		return nil, fmt.Errorf("%w: %d parameters described, function takes %d", ErrUnsupportedSignature, len(params), t.NumIn())
	}

	seen := make(map[string]struct{}, len(params))
	for _, p := range params {
		if p.Name == "" {
			return nil, fmt.Errorf("%w: empty parameter name", ErrUnsupportedSignature)
		}
		if _, dup := seen[p.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate parameter %q", ErrUnsupportedSignature, p.Name)
		}
		seen[p.Name] = struct{}{}
	}

	sig := &signature{
		fn:     v,
		params: append([]Param(nil), params...),
		kinds:  make([]paramKind, t.NumIn()),
		types:  make([]reflect.Type, t.NumIn()),
	}
	for i := 0; i < t.NumIn(); i++ {
		sig.types[i] = t.In(i)
		sig.kinds[i] = classify(t.In(i))
	}

	switch t.NumOut() {
	case 1:
	case 2:
		if t.Out(1) != errorType {
			return nil, fmt.Errorf("%w: second result must be error, got %s", ErrUnsupportedSignature, t.Out(1))
		}
		sig.hasErr = true
	default:
		return nil, fmt.Errorf("%w: function must return a value or (value, error)", ErrUnsupportedSignature)
	}
	sig.returns = t.Out(0)
	return sig, nil
}

// bind assigns args to parameters, filling defaults for the rest
func (s *signature) bind(args []any) ([]any, error) {
	bound := make([]any, len(s.params))
	set := make([]bool, len(s.params))

	pos := 0
	for _, arg := range args {
		kw, ok := arg.(Kwarg)
		if !ok {
			if pos >= len(s.params) {
				return nil, fmt.Errorf("%w: takes %d arguments, got more", ErrBadArguments, len(s.params))
			}
			bound[pos] = arg
			set[pos] = true
			pos++
			continue
		}
		i := s.index(kw.Name)
		if i < 0 {
			return nil, fmt.Errorf("%w: unexpected keyword argument %q", ErrBadArguments, kw.Name)
		}
		if set[i] {
			return nil, fmt.Errorf("%w: multiple values for argument %q", ErrBadArguments, kw.Name)
		}
		bound[i] = kw.Value
		set[i] = true
	}

	for i, p := range s.params {
		if set[i] {
			continue
		}
		if !p.HasDefault {
			return nil, fmt.Errorf("%w: missing argument %q", ErrBadArguments, p.Name)
		}
		bound[i] = p.Default
	}
	return bound, nil
}

func (s *signature) index(name string) int {
	for i, p := range s.params {
		if p.Name == name {
			return i
		}
	}
	return -1
}

// staticValue converts a captured argument to the declared parameter type
func (s *signature) staticValue(i int, value any) (reflect.Value, error) {
	t := s.types[i]
	if value == nil {
		switch t.Kind() {
		case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
			return reflect.Zero(t), nil
		}
		return reflect.Value{}, fmt.Errorf("%w: argument %q: nil for %s", ErrBadArguments, s.params[i].Name, t)
	}
	v := reflect.ValueOf(value)
	if v.Type().AssignableTo(t) {
		return v, nil
	}
	if isNumeric(v.Kind()) && isNumeric(t.Kind()) {
		if out, ok := convertNumber(v, t); ok {
			return out, nil
		}
		return reflect.Value{}, fmt.Errorf("%w: argument %q: %v does not fit %s", ErrBadArguments, s.params[i].Name, value, t)
	}
	return reflect.Value{}, fmt.Errorf("%w: argument %q: cannot use %T as %s", ErrBadArguments, s.params[i].Name, value, t)
}

// envValue resolves an environment parameter
func (s *signature) envValue(i int, value any, env *Environment) (reflect.Value, error) {
	switch v := value.(type) {
	case EnvReader:
		resolved, err := v(env)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(resolved), nil
	case *Environment:
		return reflect.ValueOf(v), nil
	}
	return reflect.Value{}, fmt.Errorf("%w: argument %q: expected an environment reader, got %T", ErrBadArguments, s.params[i].Name, value)
}

// call invokes the function and splits off its error result
func (s *signature) call(in []reflect.Value) (any, error) {
	out := s.fn.Call(in)
	if s.hasErr && !out[1].IsNil() {
		return nil, out[1].Interface().(error)
	}
	return out[0].Interface(), nil
}

// convertNumber converts v to t when no value is lost: no dropped fraction,
// no overflow and no sign change. Narrowing between float kinds only rounds
// and is allowed.
func convertNumber(v reflect.Value, t reflect.Type) (reflect.Value, bool) {
	out := v.Convert(t)
	if v.CanFloat() && out.CanFloat() {
		return out, true
	}
	if out.Convert(v.Type()).Interface() != v.Interface() {
		return reflect.Value{}, false
	}
	if isNegative(v) != isNegative(out) {
		return reflect.Value{}, false
	}
	return out, true
}

func isNegative(v reflect.Value) bool {
	switch {
	case v.CanInt():
		return v.Int() < 0
	case v.CanFloat():
		return v.Float() < 0
	}
	return false
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// failed returns a Reader that reports err when run
func failed(err error) Reader {
	return func(*Environment) (query.Expr, error) {
		return nil, err
	}
}

// FieldFunction lifts fn, an ordinary function over expressions and plain
// values, into a Factory of Readers.
//
// Parameters declared as Reader, query.Expr or an empty interface are dynamic:
// their arguments are normalized against the running environment. A Reader
// parameter receives Pure(expr) so operator methods stay available. A
// *Environment parameter receives the environment an EnvReader such as Ask()
// yields. Every other parameter is static and gets its argument converted to
// the declared type.
//
// fn must return a value or (value, error); the value is normalized again,
// so fn may return a Reader, a query.Expr or a constant.
//
//	addAndScale := drill.MustFieldFunction(
//	    func(a, b drill.Reader, scale int) drill.Reader {
//	        return a.Add(b).Mul(scale)
//	    },
//	    drill.Arg("a"), drill.Arg("b"), drill.Opt("scale", 2),
//	)
//	r := addAndScale(numbers, drill.UsePrefix("modified_")(numbers.Reader()))
//
// Binding problems are reported by the returned Reader when it runs.
func FieldFunction(fn any, params ...Param) (Factory, error) {
	sig, err := newSignature(fn, params, classifyScalar)
	if err != nil {
		return nil, err
	}

	return func(args ...any) Reader {
		bound, err := sig.bind(args)
		if err != nil {
			return failed(err)
		}
		return func(env *Environment) (query.Expr, error) {
			in := make([]reflect.Value, len(bound))
			for i, value := range bound {
				var err error
				switch sig.kinds[i] {
				case kindDynamic:
					expr, err := Normalize(value, env)
					if err != nil {
						return nil, fmt.Errorf("argument %q: %w", sig.params[i].Name, err)
					}
					if sig.types[i] == readerType {
						in[i] = reflect.ValueOf(Pure(expr))
					} else {
						in[i] = reflect.ValueOf(expr)
					}
				case kindEnv:
					in[i], err = sig.envValue(i, value, env)
				default:
					in[i], err = sig.staticValue(i, value)
				}
				if err != nil {
					return nil, err
				}
			}

			result, err := sig.call(in)
			if err != nil {
				return nil, err
			}
			return Normalize(result, env)
		}
	}, nil
}

// MustFieldFunction is like FieldFunction but panics if fn cannot be lifted
func MustFieldFunction(fn any, params ...Param) Factory {
	f, err := FieldFunction(fn, params...)
	if err != nil {
		panic(err)
	}
	return f
}

// SeriesFunction lifts fn, a vectorized function over whole columns, into a
// Factory of Readers.
//
// Parameters declared as *query.Series or an empty interface are columns.
// When the Reader runs, each column argument is normalized, aliased by its
// parameter name and packed into one struct expression. The engine feeds the
// struct to fn batch by batch; every call gets the batch's fields as its
// column arguments and the captured values for everything else. fn must
// return *query.Series, optionally with an error.
//
// The result carries the output name of the first column argument.
func SeriesFunction(fn any, params ...Param) (Factory, error) {
	sig, err := newSignature(fn, params, classifySeries)
	if err != nil {
		return nil, err
	}
	if sig.returns != seriesType {
		return nil, fmt.Errorf("%w: series function must return *query.Series, got %s", ErrUnsupportedSignature, sig.returns)
	}
	columns := 0
	for _, k := range sig.kinds {
		if k == kindDynamic {
			columns++
		}
	}
	if columns == 0 {
		return nil, fmt.Errorf("%w: series function has no column parameters", ErrUnsupportedSignature)
	}
	label := "series_function"
	if name := funcName(sig.fn); name != "" {
		label = name
	}

	return func(args ...any) Reader {
		bound, err := sig.bind(args)
		if err != nil {
			return failed(err)
		}
		return func(env *Environment) (query.Expr, error) {
			fields := make([]query.Expr, 0, columns)
			fixed := make([]reflect.Value, len(bound))
			outName := ""
			for i, value := range bound {
				var err error
				switch sig.kinds[i] {
				case kindDynamic:
					expr, err := Normalize(value, env)
					if err != nil {
						return nil, fmt.Errorf("argument %q: %w", sig.params[i].Name, err)
					}
					if outName == "" {
						outName = expr.Name()
					}
					fields = append(fields, query.Alias(expr, sig.params[i].Name))
				case kindEnv:
					fixed[i], err = sig.envValue(i, value, env)
				default:
					fixed[i], err = sig.staticValue(i, value)
				}
				if err != nil {
					return nil, err
				}
			}

			mapper := func(batch *query.Series) (*query.Series, error) {
				in := make([]reflect.Value, len(bound))
				for i := range bound {
					if sig.kinds[i] != kindDynamic {
						in[i] = fixed[i]
						continue
					}
					col, err := batch.Field(sig.params[i].Name)
					if err != nil {
						return nil, err
					}
					in[i] = reflect.ValueOf(col)
				}
				result, err := sig.call(in)
				if err != nil {
					return nil, err
				}
				out, _ := result.(*query.Series)
				if out == nil {
					return nil, errors.New("series function returned nil")
				}
				return out, nil
			}

			packed := query.MapBatches(query.Struct(fields...), mapper).WithLabel(label)
			return query.Alias(packed, outName), nil
		}
	}, nil
}

// MustSeriesFunction is like SeriesFunction but panics if fn cannot be lifted
func MustSeriesFunction(fn any, params ...Param) Factory {
	f, err := SeriesFunction(fn, params...)
	if err != nil {
		panic(err)
	}
	return f
}

// funcName is the short name of the function v points at
func funcName(v reflect.Value) string {
	f := runtime.FuncForPC(v.Pointer())
	if f == nil {
		return ""
	}
	name := f.Name()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	return name
}
