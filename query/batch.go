package query

import "fmt"

// DefaultBatchSize is the number of rows handed to a batch function at a time
const DefaultBatchSize = 1024

// BatchFunc maps one batch of an input column to an output column of the
// same length
type BatchFunc func(batch *Series) (*Series, error)

// MapBatchesExpr evaluates its input once and feeds it to a user function in
// fixed-size batches, concatenating the results. It is the engine's hook for
// vectorized user code: packing several columns with Struct lets a single
// function see all of its arguments for a batch at once.
type MapBatchesExpr struct {
	Input     Expr
	Fn        BatchFunc
	BatchSize int
	Label     string
}

var _ Expr = (*MapBatchesExpr)(nil)

// MapBatches returns an expression applying fn to input batch by batch
func MapBatches(input Expr, fn BatchFunc) *MapBatchesExpr {
	return &MapBatchesExpr{Input: input, Fn: fn, BatchSize: DefaultBatchSize}
}

// WithBatchSize returns a copy of m using n rows per batch
func (m *MapBatchesExpr) WithBatchSize(n int) *MapBatchesExpr {
	out := *m
	out.BatchSize = n
	return &out
}

// WithLabel returns a copy of m described as label in String output
func (m *MapBatchesExpr) WithLabel(label string) *MapBatchesExpr {
	out := *m
	out.Label = label
	return &out
}

// Evaluate runs the batch function over the evaluated input
func (m *MapBatchesExpr) Evaluate(t *Table) (*Series, error) {
	input, err := m.Input.Evaluate(t)
	if err != nil {
		return nil, err
	}

	size := m.BatchSize
	if size <= 0 {
		size = DefaultBatchSize
	}

	parts := make([]*Series, 0, input.Len()/size+1)
	for offset := 0; offset < input.Len(); offset += size {
		batch := input.Slice(offset, size)
		out, err := m.Fn(batch)
		if err != nil {
			return nil, fmt.Errorf("%s: batch at row %d: %w", m, offset, err)
		}
		if out == nil {
			return nil, fmt.Errorf("%s: batch at row %d: no result", m, offset)
		}
		if out.Len() != batch.Len() {
			return nil, fmt.Errorf("%s: %w: batch at row %d returned %d rows, expected %d", m, ErrLengthMismatch, offset, out.Len(), batch.Len())
		}
		parts = append(parts, out)
	}
	return concatSeries(m.Name(), parts)
}

// Name is the input's name
func (m *MapBatchesExpr) Name() string { return m.Input.Name() }

func (m *MapBatchesExpr) String() string {
	label := m.Label
	if label == "" {
		label = "map_batches"
	}
	return fmt.Sprintf("%s(%s)", label, m.Input)
}
