// Package output writes query tables in several formats.
//
// Every formatter satisfies Formatter and writes columns in table order.
//
// # Supported Formats
//
//   - jsonl: one JSON object per row (suitable for streaming)
//   - json: a single JSON array of objects
//   - csv: comma-separated values with a header row
//   - table: an aligned text table for terminals
//   - arrow: an Arrow IPC stream
//
// # Basic Usage
//
//	f, err := output.New("csv", os.Stdout)
//	if err != nil {
//	    return err
//	}
//	if err := f.Format(table); err != nil {
//	    return err
//	}
//
// SetOutput redirects an existing formatter, for example into a buffer:
//
//	var buf bytes.Buffer
//	f.SetOutput(&buf)
//
// # Type Handling
//
//   - JSON formats write nulls as null and timestamps as RFC 3339 strings
//   - CSV writes nulls as empty cells and prefixes strings that start like a
//     spreadsheet formula (=, +, -, @, |) with a single quote
//   - the Arrow writer maps int64, float64, bool and timestamp columns to the
//     matching Arrow types and writes every other column as strings
package output
