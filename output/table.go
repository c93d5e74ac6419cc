package output

import (
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/vegasq/datadrill/query"
)

// TableFormatter renders a table as aligned text for terminals
type TableFormatter struct {
	writer io.Writer
}

// NewTableFormatter creates a text table formatter
func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{writer: w}
}

// SetOutput sets the output writer
func (f *TableFormatter) SetOutput(w io.Writer) {
	f.writer = w
}

// Format renders t with one header row. Nulls print as "null"; column names
// keep their case.
func (f *TableFormatter) Format(t *query.Table) error {
	tw := tablewriter.NewWriter(f.writer)
	tw.SetAutoFormatHeaders(false)
	tw.SetAutoWrapText(false)
	tw.SetHeader(t.Columns())

	series := t.Series()
	for i := 0; i < t.Len(); i++ {
		row := make([]string, len(series))
		for c, s := range series {
			switch v := s.Value(i).(type) {
			case nil:
				row[c] = "null"
			case string:
				row[c] = v
			default:
				row[c] = formatValue(v)
			}
		}
		tw.Append(row)
	}
	tw.Render()
	return nil
}
