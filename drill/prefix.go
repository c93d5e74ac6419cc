package drill

import "github.com/vegasq/datadrill/query"

// UsePrefix returns a decorator that runs a Reader under prefix instead of
// the ambient environment's prefix. Nested decorators shadow outer ones: the
// innermost UsePrefix decides what the wrapped subtree sees.
//
//	modified := drill.UsePrefix("modified_")(numbers.Reader())
func UsePrefix(prefix string) func(Reader) Reader {
	return func(r Reader) Reader {
		return func(env *Environment) (query.Expr, error) {
			return r(env.WithPrefix(prefix))
		}
	}
}

// NoPrefix runs r with the prefix cleared
func NoPrefix(r Reader) Reader {
	return func(env *Environment) (query.Expr, error) {
		return r(env.ClearPrefix())
	}
}
