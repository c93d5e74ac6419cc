package reader

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sqliteFixture creates a database holding a "numbers" table and returns its path
func sqliteFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.db")

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	_, err = db.Exec(`
		CREATE TABLE numbers (numbers INTEGER, modified_numbers INTEGER, label TEXT, ratio REAL);
		INSERT INTO numbers VALUES (1, 10, 'one', 0.5), (2, 20, 'two', NULL), (3, 30, NULL, 1.5);
	`)
	require.NoError(t, err)
	return path
}

func TestReadSQLite(t *testing.T) {
	path := sqliteFixture(t)

	table, err := ReadSQLite(context.Background(), path, "numbers")
	require.NoError(t, err)

	assert.Equal(t, []string{"numbers", "modified_numbers", "label", "ratio"}, table.Columns())
	assert.Equal(t, []interface{}{int64(1), int64(2), int64(3)}, column(t, table, "numbers"))
	assert.Equal(t, []interface{}{int64(10), int64(20), int64(30)}, column(t, table, "modified_numbers"))
	assert.Equal(t, []interface{}{"one", "two", nil}, column(t, table, "label"))
	assert.Equal(t, []interface{}{0.5, nil, 1.5}, column(t, table, "ratio"))
}

func TestReadSQL(t *testing.T) {
	db, err := sql.Open("sqlite3", sqliteFixture(t))
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	table, err := ReadSQL(context.Background(), db,
		"SELECT numbers, numbers * 2 AS doubled FROM numbers WHERE numbers > ? ORDER BY numbers", 1)
	require.NoError(t, err)

	assert.Equal(t, []interface{}{int64(2), int64(3)}, column(t, table, "numbers"))
	assert.Equal(t, []interface{}{int64(4), int64(6)}, column(t, table, "doubled"))
}

func TestReadSQLite_Errors(t *testing.T) {
	path := sqliteFixture(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		path    string
		table   string
		wantErr string
	}{
		{"no table name", path, "", "table name is required"},
		{"unknown table", path, "missing", "failed to run query"},
		{"missing database", filepath.Join(t.TempDir(), "none.db"), "numbers", "failed to connect to database"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadSQLite(ctx, tt.path, tt.table)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestQuoteIdent(t *testing.T) {
	assert.Equal(t, `"plain"`, quoteIdent("plain"))
	assert.Equal(t, `"we""ird"`, quoteIdent(`we"ird`))
}
