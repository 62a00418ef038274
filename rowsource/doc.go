// Package rowsource loads experiment rows from relational databases and
// JSON files.
//
// Every Source returns a fully materialized slice of rows for a table; rows
// are not streamed. Column values are converted with core.ValueOf, so SQL
// NULL becomes a present-but-null value while an absent JSON key leaves the
// field missing from that row.
//
// Supported drivers:
//
//   - "postgres": github.com/lib/pq
//   - "sqlite": modernc.org/sqlite (pure Go, no cgo)
//   - "json": a JSON array of objects per file; a directory holds one table
//     per *.json file
package rowsource
