package query

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrTypeMismatch    = errors.New("type mismatch")
	ErrUnknownColumn   = errors.New("column not found")
	ErrUnknownFunction = errors.New("unknown function")
	ErrDuplicateColumn = errors.New("duplicate column")
	ErrLengthMismatch  = errors.New("length mismatch")
)

// BinaryOp identifies an element-wise binary operator
type BinaryOp int

const (
	// Arithmetic
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpTrueDiv  // always produces float64
	OpFloorDiv // floored quotient
	OpMod      // floored remainder
	OpPow

	// Bitwise on integers, logical on booleans
	OpAnd
	OpOr
	OpXor

	// Comparison
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
)

var binaryOpSymbols = map[BinaryOp]string{
	OpAdd:      "+",
	OpSub:      "-",
	OpMul:      "*",
	OpTrueDiv:  "/",
	OpFloorDiv: "//",
	OpMod:      "%",
	OpPow:      "**",
	OpAnd:      "&",
	OpOr:       "|",
	OpXor:      "^",
	OpEq:       "==",
	OpNe:       "!=",
	OpLt:       "<",
	OpLe:       "<=",
	OpGt:       ">",
	OpGe:       ">=",
}

func (op BinaryOp) String() string {
	if s, ok := binaryOpSymbols[op]; ok {
		return s
	}
	return fmt.Sprintf("BinaryOp(%d)", int(op))
}

// IsComparison reports whether op produces a boolean result
func (op BinaryOp) IsComparison() bool {
	return op >= OpEq && op <= OpGe
}

// UnaryOp identifies an element-wise unary operator
type UnaryOp int

const (
	OpNeg UnaryOp = iota
	OpPos
	OpNot // bitwise not on integers, logical not on booleans
)

func (op UnaryOp) String() string {
	switch op {
	case OpNeg:
		return "-"
	case OpPos:
		return "+"
	case OpNot:
		return "~"
	default:
		return fmt.Sprintf("UnaryOp(%d)", int(op))
	}
}

// Expr is a fully resolved expression that can be evaluated against a table.
//
// Evaluate returns a series with exactly one value per table row. Name
// reports the output column name the expression produces when selected.
type Expr interface {
	Evaluate(t *Table) (*Series, error)
	Name() string
	String() string
}

// LiteralName is the output name of a bare literal
const LiteralName = "literal"

// ColumnExpr references a physical column by name
type ColumnExpr struct {
	Column string
}

// LiteralExpr is a constant broadcast over every row
type LiteralExpr struct {
	Value interface{}
}

// BinaryExpr applies an element-wise binary operator
type BinaryExpr struct {
	Op    BinaryOp
	Left  Expr
	Right Expr
}

// UnaryExpr applies an element-wise unary operator
type UnaryExpr struct {
	Op      UnaryOp
	Operand Expr
}

// AliasExpr renames the output of another expression
type AliasExpr struct {
	Expr  Expr
	Alias string
}

// StructExpr packs several expressions into one struct column whose fields
// are named after the packed expressions
type StructExpr struct {
	Fields []Expr
}

var (
	_ Expr = (*ColumnExpr)(nil)
	_ Expr = (*LiteralExpr)(nil)
	_ Expr = (*BinaryExpr)(nil)
	_ Expr = (*UnaryExpr)(nil)
	_ Expr = (*AliasExpr)(nil)
	_ Expr = (*StructExpr)(nil)
)

// Col returns a reference to the named column
func Col(name string) *ColumnExpr {
	return &ColumnExpr{Column: name}
}

// Lit returns a literal expression. Integer and float values of any width are
// widened to int64 and float64.
func Lit(value interface{}) *LiteralExpr {
	return &LiteralExpr{Value: normalizeValue(value)}
}

// Binary returns left op right
func Binary(op BinaryOp, left, right Expr) *BinaryExpr {
	return &BinaryExpr{Op: op, Left: left, Right: right}
}

// Unary returns op operand
func Unary(op UnaryOp, operand Expr) *UnaryExpr {
	return &UnaryExpr{Op: op, Operand: operand}
}

// Alias renames the output of e
func Alias(e Expr, name string) *AliasExpr {
	return &AliasExpr{Expr: e, Alias: name}
}

// Struct packs fields into a single struct column
func Struct(fields ...Expr) *StructExpr {
	return &StructExpr{Fields: fields}
}

// Evaluate evaluates a column reference
func (c *ColumnExpr) Evaluate(t *Table) (*Series, error) {
	s, ok := t.Column(c.Column)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, c.Column)
	}
	return s, nil
}

func (c *ColumnExpr) Name() string   { return c.Column }
func (c *ColumnExpr) String() string { return fmt.Sprintf("col(%q)", c.Column) }

// Evaluate broadcasts the literal over the table's rows
func (l *LiteralExpr) Evaluate(t *Table) (*Series, error) {
	values := make([]interface{}, t.Len())
	for i := range values {
		values[i] = l.Value
	}
	return newSeries(LiteralName, values), nil
}

func (l *LiteralExpr) Name() string { return LiteralName }

func (l *LiteralExpr) String() string {
	if s, ok := l.Value.(string); ok {
		return fmt.Sprintf("lit(%q)", s)
	}
	return fmt.Sprintf("lit(%v)", l.Value)
}

// Evaluate evaluates both operands and applies the operator row by row
func (b *BinaryExpr) Evaluate(t *Table) (*Series, error) {
	left, err := b.Left.Evaluate(t)
	if err != nil {
		return nil, err
	}
	right, err := b.Right.Evaluate(t)
	if err != nil {
		return nil, err
	}
	out, err := left.Apply(b.Op, right)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", b, err)
	}
	return out, nil
}

func (b *BinaryExpr) Name() string { return b.Left.Name() }

func (b *BinaryExpr) String() string {
	return fmt.Sprintf("[(%s) %s (%s)]", b.Left, b.Op, b.Right)
}

// Evaluate evaluates the operand and applies the operator row by row
func (u *UnaryExpr) Evaluate(t *Table) (*Series, error) {
	operand, err := u.Operand.Evaluate(t)
	if err != nil {
		return nil, err
	}
	out, err := operand.Unary(u.Op)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", u, err)
	}
	return out, nil
}

func (u *UnaryExpr) Name() string   { return u.Operand.Name() }
func (u *UnaryExpr) String() string { return fmt.Sprintf("%s(%s)", u.Op, u.Operand) }

// Evaluate evaluates the wrapped expression under the alias
func (a *AliasExpr) Evaluate(t *Table) (*Series, error) {
	s, err := a.Expr.Evaluate(t)
	if err != nil {
		return nil, err
	}
	return s.Rename(a.Alias), nil
}

func (a *AliasExpr) Name() string   { return a.Alias }
func (a *AliasExpr) String() string { return fmt.Sprintf("%s.alias(%q)", a.Expr, a.Alias) }

// Evaluate evaluates every field and packs the results
func (s *StructExpr) Evaluate(t *Table) (*Series, error) {
	fields := make([]*Series, 0, len(s.Fields))
	for _, f := range s.Fields {
		col, err := f.Evaluate(t)
		if err != nil {
			return nil, err
		}
		fields = append(fields, col.Rename(f.Name()))
	}
	return NewStructSeries(s.Name(), fields...)
}

// Name is the name of the first field, or "struct" when there are none
func (s *StructExpr) Name() string {
	if len(s.Fields) == 0 {
		return "struct"
	}
	return s.Fields[0].Name()
}

func (s *StructExpr) String() string {
	parts := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		parts[i] = f.String()
	}
	return "struct(" + strings.Join(parts, ", ") + ")"
}
