// Package reader loads tables from files and databases.
//
// Every loader returns a fully materialized *query.Table. Supported sources:
//
//   - Apache Parquet, one file or a glob of files (github.com/parquet-go/parquet-go)
//   - Arrow IPC streams (github.com/apache/arrow/go/v11)
//   - CSV with a header row
//   - SQL result sets, and whole SQLite tables (github.com/mattn/go-sqlite3)
//
// # Basic Usage
//
// Open picks a loader from the path:
//
//	table, err := reader.Open(ctx, "data.parquet", reader.Options{})
//	if err != nil {
//	    return err
//	}
//
// A parquet file can also be read directly:
//
//	r, err := reader.NewReader("data.parquet")
//	if err != nil {
//	    return err
//	}
//	defer r.Close()
//
//	table, err := r.ReadTable()
//
// # Multi-file Operations
//
// A glob pattern reads every matching parquet file into one table. Each row
// carries a "_file" column holding the path it came from:
//
//	table, err := reader.ReadMultipleFiles("data/*.parquet")
//
// A plain path reads one file and adds no column. At most 1000 files may
// match a pattern.
//
// # Schema Introspection
//
// ExtractSchemaInfo lists the leaf columns of a parquet file with their
// physical and logical types. SchemaFromTable describes any loaded table from
// the values it holds.
//
//	infos, err := reader.ExtractSchemaInfo("data.parquet")
//	for _, info := range infos {
//	    fmt.Printf("%s: %s\n", info.Name, info.Type)
//	}
package reader
