// Package drill builds column expressions whose meaning depends on an
// execution environment supplied later.
//
// A Reader is a function from *Environment to a query.Expr. Readers are
// composed first and run last: the same tree can be run against several
// environments, and each run resolves every Field under that environment's
// prefix.
//
// # Fields and Prefixes
//
// A Field names a logical column. The environment's FieldResolver turns it
// into a physical column by prepending the active prefix:
//
//	env := drill.NewEnvironment(drill.NewFieldResolver([]string{"numbers", "modified_numbers"}))
//	numbers := drill.NewField("numbers")
//
//	expr, _ := numbers.Reader()(env)                       // col("numbers")
//	expr, _ = numbers.Reader()(env.WithPrefix("modified_")) // col("modified_numbers")
//
// UsePrefix pins a subtree to a prefix regardless of the ambient one:
//
//	both := numbers.Reader().Add(drill.UsePrefix("modified_")(numbers.Reader()))
//
// # Operators
//
// Operators are methods on Reader. The right operand may be a Reader, a
// Field, a query.Expr or a constant; it is normalized only when the Reader
// runs. Reflected forms (RSub, RTrueDiv, ...) put the operand on the left.
//
//	plusOne := numbers.Reader().Add(1)
//	oneMinus := numbers.Reader().RSub(1) // 1 - numbers
//	big := numbers.Reader().Gt(1)
//
// # Lifting Functions
//
// FieldFunction and SeriesFunction turn ordinary Go functions into factories
// of Readers. Parameter types decide which arguments come from the
// environment and which are plain values; a Param list supplies names and
// defaults for keyword binding.
//
// # Context Access
//
// Ask yields the environment itself, Asks derives a value from it and Pure
// ignores it:
//
//	prefixLen := drill.Asks(func(env *drill.Environment) any { return len(env.Prefix()) })
//
// # Errors
//
// Construction never fails. Resolution failures report ErrUnknownColumn when
// the Reader runs; functions that cannot be lifted report
// ErrUnsupportedSignature from FieldFunction or SeriesFunction.
package drill
