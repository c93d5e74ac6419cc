package reader

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	parquetPath := writeParquet(t, dir, "people.parquet", []personRow{{ID: 1, Name: "Alice"}, {ID: 2, Name: "Bob"}})
	csvPath := writeFile(t, dir, "people.csv", "id,name\n1,Alice\n2,Bob\n")
	arrowPath := filepath.Join(dir, "stream.arrow")
	require.NoError(t, os.WriteFile(arrowPath, arrowStream(t), 0o644))
	dbPath := sqliteFixture(t)

	tests := []struct {
		name     string
		path     string
		opts     Options
		wantRows int
		wantCols []string
	}{
		{"parquet", parquetPath, Options{}, 2, []string{"id", "name"}},
		{"glob", filepath.Join(dir, "*.parquet"), Options{}, 2, []string{"id", "name", FileColumn}},
		{"csv", csvPath, Options{}, 2, []string{"id", "name"}},
		{"arrow", arrowPath, Options{}, 3, []string{"id", "small", "score", "name", "at"}},
		{"sqlite", dbPath, Options{Table: "numbers"}, 3, []string{"numbers", "modified_numbers", "label", "ratio"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := Open(ctx, tt.path, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.wantRows, table.Len())
			assert.Equal(t, tt.wantCols, table.Columns())
		})
	}
}

func TestOpen_Errors(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	_, err := Open(ctx, filepath.Join(dir, "data.xlsx"), Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown extension")

	_, err = Open(ctx, filepath.Join(dir, "missing.csv"), Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open file")

	bad := writeFile(t, dir, "bad.csv", "a,b\n1\n")
	_, err = Open(ctx, bad, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), bad)
}
