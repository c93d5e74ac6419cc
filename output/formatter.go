package output

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/vegasq/datadrill/query"
)

// ErrUnknownFormat is returned by New for an unsupported format name
var ErrUnknownFormat = errors.New("unknown output format")

// Format names accepted by New
const (
	FormatJSONLines = "jsonl"
	FormatJSON      = "json"
	FormatCSV       = "csv"
	FormatTable     = "table"
	FormatArrow     = "arrow"
)

// Formats lists every supported format name
var Formats = []string{FormatJSONLines, FormatJSON, FormatCSV, FormatTable, FormatArrow}

// Formatter writes a table in one output format.
type Formatter interface {
	// Format writes t, columns in table order
	Format(t *query.Table) error

	// SetOutput changes the output writer
	SetOutput(w io.Writer)
}

var (
	_ Formatter = (*JSONLinesFormatter)(nil)
	_ Formatter = (*JSONFormatter)(nil)
	_ Formatter = (*CSVFormatter)(nil)
	_ Formatter = (*TableFormatter)(nil)
	_ Formatter = (*ArrowFormatter)(nil)
)

// New returns the formatter for format writing to w. Names are
// case-insensitive.
func New(format string, w io.Writer) (Formatter, error) {
	switch strings.ToLower(format) {
	case FormatJSONLines:
		return NewJSONLinesFormatter(w), nil
	case FormatJSON:
		return NewJSONFormatter(w), nil
	case FormatCSV:
		return NewCSVFormatter(w), nil
	case FormatTable:
		return NewTableFormatter(w), nil
	case FormatArrow:
		return NewArrowFormatter(w), nil
	default:
		return nil, fmt.Errorf("%w %q (supported: %s)", ErrUnknownFormat, format, strings.Join(Formats, ", "))
	}
}
