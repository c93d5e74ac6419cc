package drill

import (
	"fmt"

	"github.com/vegasq/datadrill/query"
)

// Ask returns a reader yielding the running environment itself
func Ask() EnvReader {
	return func(env *Environment) (*Environment, error) {
		return env, nil
	}
}

// Asks returns a reader that derives a value from the environment and
// normalizes it, e.g. a constant computed from the active prefix:
//
//	prefixLen := drill.Asks(func(env *drill.Environment) any {
//	    return len(env.Prefix())
//	})
func Asks(fn func(env *Environment) any) Reader {
	return func(env *Environment) (query.Expr, error) {
		return Normalize(fn(env), env)
	}
}

// Pure returns a reader that ignores the environment and yields value
// normalized
func Pure(value any) Reader {
	return func(env *Environment) (query.Expr, error) {
		return Normalize(value, env)
	}
}

// Map applies fn to the expression r produces and normalizes the result
func Map(fn func(query.Expr) any, r any) Reader {
	return func(env *Environment) (query.Expr, error) {
		e, err := Normalize(r, env)
		if err != nil {
			return nil, err
		}
		return Normalize(fn(e), env)
	}
}

// Map2 applies fn to the expressions r1 and r2 produce and normalizes the
// result
func Map2(fn func(a, b query.Expr) any, r1, r2 any) Reader {
	return func(env *Environment) (query.Expr, error) {
		a, err := Normalize(r1, env)
		if err != nil {
			return nil, err
		}
		b, err := Normalize(r2, env)
		if err != nil {
			return nil, err
		}
		return Normalize(fn(a, b), env)
	}
}

// Call returns a reader invoking a registered scalar function on the
// normalized args
func Call(name string, args ...any) Reader {
	return func(env *Environment) (query.Expr, error) {
		exprs := make([]query.Expr, len(args))
		for i, a := range args {
			e, err := Normalize(a, env)
			if err != nil {
				return nil, fmt.Errorf("%s: argument %d: %w", name, i+1, err)
			}
			exprs[i] = e
		}
		return query.Call(name, exprs...), nil
	}
}
