package reader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/vegasq/datadrill/query"
)

// ReadCSV reads CSV with a header row into a table.
//
// Header names are trimmed and put in Unicode NFC form, so a column typed
// with composed accents matches a header saved with decomposed ones.
//
// Each column gets the narrowest type all of its non-empty cells parse as,
// tried in the order int64, float64, bool, string. Empty cells become nil.
func ReadCSV(r io.Reader) (*query.Table, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("csv input has no header row")
		}
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	cells := make([][]string, len(header))
	for {
		record, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to read csv record: %w", err)
		}
		for i, cell := range record {
			cells[i] = append(cells[i], cell)
		}
	}

	series := make([]*query.Series, len(header))
	for i, name := range header {
		series[i] = query.NewSeries(norm.NFC.String(strings.TrimSpace(name)), inferColumn(cells[i]))
	}
	return query.NewTable(series...)
}

type cellParser func(string) (interface{}, error)

var cellParsers = []cellParser{
	func(s string) (interface{}, error) { return strconv.ParseInt(s, 10, 64) },
	func(s string) (interface{}, error) { return strconv.ParseFloat(s, 64) },
	func(s string) (interface{}, error) { return strconv.ParseBool(s) },
}

func inferColumn(cells []string) []interface{} {
	values := make([]interface{}, len(cells))
	for _, parse := range cellParsers {
		if parseAll(cells, values, parse) {
			return values
		}
	}
	for i, cell := range cells {
		if cell == "" {
			values[i] = nil
			continue
		}
		values[i] = cell
	}
	return values
}

// parseAll fills values with parse applied to every non-empty cell and
// reports whether all of them parsed
func parseAll(cells []string, values []interface{}, parse cellParser) bool {
	for i, cell := range cells {
		if cell == "" {
			values[i] = nil
			continue
		}
		v, err := parse(strings.TrimSpace(cell))
		if err != nil {
			return false
		}
		values[i] = v
	}
	return true
}
