package reader

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/parquet-go/parquet-go"
	"go.uber.org/multierr"

	"github.com/vegasq/datadrill/query"
)

// FileColumn is the column added to multi-file reads to record the source path
const FileColumn = "_file"

// maxFiles bounds how many files one glob pattern may expand to
const maxFiles = 1000

// ParquetReader loads a parquet file into a query.Table.
//
// It holds both the OS file handle and the parquet file handle so Close can
// release the descriptor.
type ParquetReader struct {
	file   *os.File
	pqFile *parquet.File
}

// NewReader opens path and validates it as a parquet file.
//
//	r, err := reader.NewReader("data.parquet")
//	if err != nil {
//	    return err
//	}
//	defer r.Close()
func NewReader(path string) (*ParquetReader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	stat, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pqFile, err := parquet.OpenFile(file, stat.Size())
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}

	return &ParquetReader{file: file, pqFile: pqFile}, nil
}

// Columns returns the top-level column names in schema order
func (r *ParquetReader) Columns() []string {
	fields := r.pqFile.Schema().Fields()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name()
	}
	return names
}

// ReadRows reads every row as a map keyed by top-level column name. Group
// columns come back as nested maps.
func (r *ParquetReader) ReadRows() ([]map[string]interface{}, error) {
	rows := make([]map[string]interface{}, 0, r.pqFile.NumRows())

	pr := parquet.NewReader(r.pqFile)
	defer func() { _ = pr.Close() }()

	for {
		row := make(map[string]interface{})
		if err := pr.Read(&row); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to read row %d: %w", len(rows), err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ReadTable loads the whole file into memory as a table
func (r *ParquetReader) ReadTable() (*query.Table, error) {
	rows, err := r.ReadRows()
	if err != nil {
		return nil, err
	}
	return query.FromRows(r.Columns(), rows)
}

// Schema returns the parquet schema of the file
func (r *ParquetReader) Schema() *parquet.Schema {
	return r.pqFile.Schema()
}

// Close releases the file. It is safe to call more than once.
func (r *ParquetReader) Close() error {
	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}

// ReadFile reads a single parquet file into a table
func ReadFile(path string) (table *query.Table, err error) {
	r, err := NewReader(path)
	if err != nil {
		return nil, err
	}
	defer func() { err = multierr.Append(err, r.Close()) }()

	return r.ReadTable()
}

// IsGlob reports whether path contains glob metacharacters
func IsGlob(path string) bool {
	return strings.ContainsAny(path, "*?[]{}")
}

// ReadMultipleFiles reads every parquet file matching pattern into one table.
//
// A pattern without wildcards reads a single file and adds no columns. A glob
// pattern tags each row with a "_file" column holding the source path; the
// result's columns are the union of the files' columns in first-seen order,
// with nil where a file lacks a column.
//
//   - "data/*.parquet" - all parquet files in data
//   - "data/2024-*.parquet" - files starting with 2024-
//   - "data/*/*.parquet" - files one directory down
func ReadMultipleFiles(pattern string) (*query.Table, error) {
	if !IsGlob(pattern) {
		return ReadFile(pattern)
	}

	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid glob pattern: %w", err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no files match pattern: %s", pattern)
	}
	if len(matches) > maxFiles {
		return nil, fmt.Errorf("glob pattern matched too many files (%d), maximum is %d", len(matches), maxFiles)
	}

	var (
		columns []string
		seen    = map[string]bool{}
		allRows []map[string]interface{}
	)
	for _, path := range matches {
		r, err := NewReader(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		rows, err := r.ReadRows()
		err = multierr.Append(err, r.Close())
		if err != nil {
			return nil, fmt.Errorf("failed to read rows from %s: %w", path, err)
		}

		for _, name := range r.Columns() {
			if !seen[name] {
				seen[name] = true
				columns = append(columns, name)
			}
		}
		for _, row := range rows {
			row[FileColumn] = path
		}
		allRows = append(allRows, rows...)
	}

	if !seen[FileColumn] {
		columns = append(columns, FileColumn)
	}
	return query.FromRows(columns, allRows)
}
