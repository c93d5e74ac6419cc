// Package frame queues filter and select operations over a table and runs
// them under a drill environment.
package frame

import (
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/exp/slices"

	"github.com/vegasq/datadrill/drill"
	"github.com/vegasq/datadrill/query"
)

type opKind int

const (
	opFilter opKind = iota
	opSelect
	opLimit
)

func (k opKind) String() string {
	switch k {
	case opFilter:
		return "filter"
	case opSelect:
		return "select"
	default:
		return "limit"
	}
}

type op struct {
	kind  opKind
	args  []any
	limit int
}

// DataFrame is a table plus a queue of pending operations. It is a value:
// Filter, Select and Limit return a new DataFrame and leave the receiver
// untouched.
type DataFrame struct {
	table  *query.Table
	ops    []op
	logger *zap.Logger
}

// Option configures a DataFrame
type Option func(*DataFrame)

// WithLogger logs every operation at debug level to logger
func WithLogger(logger *zap.Logger) Option {
	return func(df *DataFrame) {
		df.logger = logger
	}
}

// New wraps table
func New(table *query.Table, opts ...Option) DataFrame {
	df := DataFrame{table: table, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&df)
	}
	if df.logger == nil {
		df.logger = zap.NewNop()
	}
	return df
}

func (df DataFrame) with(o op) DataFrame {
	out := df
	out.ops = append(slices.Clone(df.ops), o)
	return out
}

// Filter queues a filter keeping the rows where predicate is true. The
// predicate may be anything drill.Normalize accepts.
func (df DataFrame) Filter(predicate any) DataFrame {
	return df.with(op{kind: opFilter, args: []any{predicate}})
}

// Select queues a projection to exprs
func (df DataFrame) Select(exprs ...any) DataFrame {
	return df.with(op{kind: opSelect, args: slices.Clone(exprs)})
}

// Limit queues a cut to the first n rows
func (df DataFrame) Limit(n int) DataFrame {
	return df.with(op{kind: opLimit, limit: n})
}

// Len returns the number of queued operations
func (df DataFrame) Len() int {
	return len(df.ops)
}

// Table returns the wrapped table
func (df DataFrame) Table() *query.Table {
	return df.table
}

// Run applies the queued operations in order. A nil env is replaced by an
// environment over the table's own columns with no prefix. The first failing
// operation stops the run.
func (df DataFrame) Run(env *drill.Environment) (*query.Table, error) {
	if df.table == nil {
		return nil, fmt.Errorf("run: no table")
	}
	if env == nil {
		env = drill.NewEnvironment(drill.NewFieldResolver(df.table.Columns()))
	}

	current := df.table
	for i, o := range df.ops {
		next, err := apply(current, o, env)
		if err != nil {
			return nil, fmt.Errorf("%s (operation %d): %w", o.kind, i+1, err)
		}
		df.logger.Debug("applied operation",
			zap.Stringer("op", o.kind),
			zap.Int("position", i+1),
			zap.Int("rows_in", current.Len()),
			zap.Int("rows_out", next.Len()),
			zap.String("prefix", env.Prefix()),
		)
		current = next
	}
	return current, nil
}

func apply(t *query.Table, o op, env *drill.Environment) (*query.Table, error) {
	switch o.kind {
	case opFilter:
		pred, err := drill.Normalize(o.args[0], env)
		if err != nil {
			return nil, err
		}
		return t.Filter(pred)
	case opSelect:
		exprs := make([]query.Expr, len(o.args))
		for i, a := range o.args {
			e, err := drill.Normalize(a, env)
			if err != nil {
				return nil, err
			}
			exprs[i] = e
		}
		return t.Select(exprs...)
	default:
		return t.Head(o.limit), nil
	}
}
