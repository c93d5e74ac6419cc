package reader

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/multierr"

	"github.com/vegasq/datadrill/query"
)

// ReadSQL runs a query and loads its result set into a table. Result columns
// must have distinct names.
func ReadSQL(ctx context.Context, db *sql.DB, stmt string, args ...any) (table *query.Table, err error) {
	rows, err := db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to run query: %w", err)
	}
	defer func() { err = multierr.Append(err, rows.Close()) }()

	names, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read result columns: %w", err)
	}

	columns := make([][]interface{}, len(names))
	dest := make([]interface{}, len(names))
	for rows.Next() {
		cells := make([]interface{}, len(names))
		for i := range cells {
			dest[i] = &cells[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		for i, v := range cells {
			columns[i] = append(columns[i], v)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	series := make([]*query.Series, len(names))
	for i, name := range names {
		series[i] = query.NewSeries(name, columns[i])
	}
	return query.NewTable(series...)
}

// ReadSQLite loads every row of table from the SQLite database at path. The
// database is opened read-only and must already exist.
func ReadSQLite(ctx context.Context, path, table string) (result *query.Table, err error) {
	if table == "" {
		return nil, fmt.Errorf("sqlite source %s: table name is required", path)
	}

	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { err = multierr.Append(err, db.Close()) }()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return ReadSQL(ctx, db, "SELECT * FROM "+quoteIdent(table))
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
