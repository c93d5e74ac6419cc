package drill

import (
	"fmt"

	"github.com/vegasq/datadrill/query"
)

// Reader is a deferred computation: given an Environment it produces a
// concrete query expression. Readers hold no state of their own and may be
// run any number of times against any number of environments.
type Reader func(env *Environment) (query.Expr, error)

// EnvReader is a deferred computation that yields an Environment rather than
// an expression. It is produced by Ask and cannot take part in operators.
type EnvReader func(env *Environment) (*Environment, error)

// Run invokes r with env
func (r Reader) Run(env *Environment) (query.Expr, error) {
	return r(env)
}

// Normalize converts value into an expression under env:
//   - a Reader is run with env
//   - a Field is turned into its Reader and run
//   - a query.Expr is returned unchanged
//   - anything else becomes a literal
//
// Normalization itself never fails; errors come only from running Readers.
// An EnvReader in expression position reports ErrNotExpression.
func Normalize(value any, env *Environment) (query.Expr, error) {
	switch v := value.(type) {
	case Reader:
		return v(env)
	case Field:
		return v.Reader()(env)
	case *Field:
		return v.Reader()(env)
	case query.Expr:
		return v, nil
	case EnvReader:
		return nil, fmt.Errorf("%w: environment reader used as an operand", ErrNotExpression)
	case *Environment:
		return nil, fmt.Errorf("%w: environment used as an operand", ErrNotExpression)
	default:
		return query.Lit(value), nil
	}
}

// Combine returns a Reader applying op to left and right. Both operands are
// normalized when the Reader runs, never before. With reverse set the
// operands are swapped before op is applied, which is how reflected forms
// such as RSub express "right op left".
func Combine(left Reader, right any, op query.BinaryOp, reverse bool) Reader {
	return func(env *Environment) (query.Expr, error) {
		l, err := left(env)
		if err != nil {
			return nil, err
		}
		r, err := Normalize(right, env)
		if err != nil {
			return nil, err
		}
		if reverse {
			l, r = r, l
		}
		return query.Binary(op, l, r), nil
	}
}

func (r Reader) unary(op query.UnaryOp) Reader {
	return func(env *Environment) (query.Expr, error) {
		e, err := r(env)
		if err != nil {
			return nil, err
		}
		return query.Unary(op, e), nil
	}
}

// Alias renames the output column of the expression r produces
func (r Reader) Alias(name string) Reader {
	return func(env *Environment) (query.Expr, error) {
		e, err := r(env)
		if err != nil {
			return nil, err
		}
		return query.Alias(e, name), nil
	}
}

// Arithmetic and bitwise/logical forms: r op other
func (r Reader) Add(other any) Reader      { return Combine(r, other, query.OpAdd, false) }
func (r Reader) Sub(other any) Reader      { return Combine(r, other, query.OpSub, false) }
func (r Reader) Mul(other any) Reader      { return Combine(r, other, query.OpMul, false) }
func (r Reader) TrueDiv(other any) Reader  { return Combine(r, other, query.OpTrueDiv, false) }
func (r Reader) FloorDiv(other any) Reader { return Combine(r, other, query.OpFloorDiv, false) }
func (r Reader) Mod(other any) Reader      { return Combine(r, other, query.OpMod, false) }
func (r Reader) Pow(other any) Reader      { return Combine(r, other, query.OpPow, false) }
func (r Reader) And(other any) Reader      { return Combine(r, other, query.OpAnd, false) }
func (r Reader) Or(other any) Reader       { return Combine(r, other, query.OpOr, false) }
func (r Reader) Xor(other any) Reader      { return Combine(r, other, query.OpXor, false) }

// Reflected forms: other op r
func (r Reader) RAdd(other any) Reader      { return Combine(r, other, query.OpAdd, true) }
func (r Reader) RSub(other any) Reader      { return Combine(r, other, query.OpSub, true) }
func (r Reader) RMul(other any) Reader      { return Combine(r, other, query.OpMul, true) }
func (r Reader) RTrueDiv(other any) Reader  { return Combine(r, other, query.OpTrueDiv, true) }
func (r Reader) RFloorDiv(other any) Reader { return Combine(r, other, query.OpFloorDiv, true) }
func (r Reader) RMod(other any) Reader      { return Combine(r, other, query.OpMod, true) }
func (r Reader) RPow(other any) Reader      { return Combine(r, other, query.OpPow, true) }
func (r Reader) RAnd(other any) Reader      { return Combine(r, other, query.OpAnd, true) }
func (r Reader) ROr(other any) Reader       { return Combine(r, other, query.OpOr, true) }
func (r Reader) RXor(other any) Reader      { return Combine(r, other, query.OpXor, true) }

// Comparisons always build expression-level comparisons; Eq and Ne never
// compare the Readers themselves.
func (r Reader) Eq(other any) Reader { return Combine(r, other, query.OpEq, false) }
func (r Reader) Ne(other any) Reader { return Combine(r, other, query.OpNe, false) }
func (r Reader) Lt(other any) Reader { return Combine(r, other, query.OpLt, false) }
func (r Reader) Le(other any) Reader { return Combine(r, other, query.OpLe, false) }
func (r Reader) Gt(other any) Reader { return Combine(r, other, query.OpGt, false) }
func (r Reader) Ge(other any) Reader { return Combine(r, other, query.OpGe, false) }

// Neg, Pos and Invert build -r, +r and ~r
func (r Reader) Neg() Reader    { return r.unary(query.OpNeg) }
func (r Reader) Pos() Reader    { return r.unary(query.OpPos) }
func (r Reader) Invert() Reader { return r.unary(query.OpNot) }
