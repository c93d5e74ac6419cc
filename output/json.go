package output

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/vegasq/datadrill/query"
)

// JSONLinesFormatter writes one JSON object per row
type JSONLinesFormatter struct {
	writer io.Writer
}

// NewJSONLinesFormatter creates a JSON Lines formatter
func NewJSONLinesFormatter(w io.Writer) *JSONLinesFormatter {
	return &JSONLinesFormatter{writer: w}
}

// SetOutput sets the output writer
func (j *JSONLinesFormatter) SetOutput(w io.Writer) {
	j.writer = w
}

// Format writes each row as a JSON object on its own line. Keys appear in
// column order.
func (j *JSONLinesFormatter) Format(t *query.Table) error {
	bw := bufio.NewWriter(j.writer)
	series := t.Series()
	for i := 0; i < t.Len(); i++ {
		if err := writeObject(bw, series, i); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// JSONFormatter writes the whole table as one JSON array of objects
type JSONFormatter struct {
	writer io.Writer
}

// NewJSONFormatter creates a JSON array formatter
func NewJSONFormatter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{writer: w}
}

// SetOutput sets the output writer
func (j *JSONFormatter) SetOutput(w io.Writer) {
	j.writer = w
}

// Format writes t as a JSON array. An empty table is written as [].
func (j *JSONFormatter) Format(t *query.Table) error {
	bw := bufio.NewWriter(j.writer)
	series := t.Series()
	if _, err := bw.WriteString("["); err != nil {
		return err
	}
	for i := 0; i < t.Len(); i++ {
		sep := ",\n  "
		if i == 0 {
			sep = "\n  "
		}
		if _, err := bw.WriteString(sep); err != nil {
			return err
		}
		if err := writeObject(bw, series, i); err != nil {
			return err
		}
	}
	if t.Len() > 0 {
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	if _, err := bw.WriteString("]\n"); err != nil {
		return err
	}
	return bw.Flush()
}

// writeObject writes row i as a JSON object whose keys follow series order.
// encoding/json sorts map keys, so the object is assembled by hand.
func writeObject(w *bufio.Writer, series []*query.Series, i int) error {
	if err := w.WriteByte('{'); err != nil {
		return err
	}
	for c, s := range series {
		if c > 0 {
			if err := w.WriteByte(','); err != nil {
				return err
			}
		}
		key, err := json.Marshal(s.Name())
		if err != nil {
			return err
		}
		value, err := json.Marshal(jsonValue(s.Value(i)))
		if err != nil {
			return fmt.Errorf("column %q row %d: %w", s.Name(), i, err)
		}
		if _, err := w.Write(key); err != nil {
			return err
		}
		if err := w.WriteByte(':'); err != nil {
			return err
		}
		if _, err := w.Write(value); err != nil {
			return err
		}
	}
	return w.WriteByte('}')
}

// jsonValue replaces NaN and infinities, which JSON cannot represent, with
// null. Struct rows are rewritten field by field.
func jsonValue(v interface{}) interface{} {
	switch val := v.(type) {
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return nil
		}
	case map[string]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, fv := range val {
			out[k] = jsonValue(fv)
		}
		return out
	}
	return v
}
