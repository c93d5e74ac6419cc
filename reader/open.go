package reader

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/multierr"

	"github.com/vegasq/datadrill/query"
)

// Options adjusts how Open loads a source
type Options struct {
	// Table names the table to load from a SQLite database
	Table string
}

// Open loads the source at path, choosing a loader by extension:
//
//   - .parquet, or any glob pattern: ReadMultipleFiles
//   - .arrow, .ipc: ReadArrow
//   - .csv: ReadCSV
//   - .db, .sqlite, .sqlite3: ReadSQLite with opts.Table
func Open(ctx context.Context, path string, opts Options) (*query.Table, error) {
	if IsGlob(path) {
		return ReadMultipleFiles(path)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".parquet":
		return ReadFile(path)
	case ".arrow", ".ipc":
		return readWith(path, ReadArrow)
	case ".csv":
		return readWith(path, ReadCSV)
	case ".db", ".sqlite", ".sqlite3":
		return ReadSQLite(ctx, path, opts.Table)
	default:
		return nil, fmt.Errorf("unsupported source %s: unknown extension %q", path, ext)
	}
}

func readWith(path string, read func(io.Reader) (*query.Table, error)) (table *query.Table, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { err = multierr.Append(err, f.Close()) }()

	table, err = read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return table, nil
}
