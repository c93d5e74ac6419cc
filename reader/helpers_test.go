package reader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/require"

	"github.com/vegasq/datadrill/query"
)

type personRow struct {
	ID   int64  `parquet:"id"`
	Name string `parquet:"name"`
}

// writeParquet writes rows to dir/name and returns the path
func writeParquet[T any](t *testing.T, dir, name string, rows []T) string {
	t.Helper()
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	writer := parquet.NewGenericWriter[T](f)
	_, err = writer.Write(rows)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return path
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// column returns the values of the named column, failing if it is absent
func column(t *testing.T, table *query.Table, name string) []interface{} {
	t.Helper()
	s, ok := table.Column(name)
	require.True(t, ok, "column %q missing from %v", name, table.Columns())
	return s.Values()
}
