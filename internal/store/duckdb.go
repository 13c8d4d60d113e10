package store

import (
	"context"

	_ "github.com/duckdb/duckdb-go/v2"
)

// OpenDuckDB opens the DuckDB database at dsn and applies the schema. An
// empty dsn or ":memory:" opens an in-memory database.
func OpenDuckDB(ctx context.Context, dsn string) (*DBSink, error) {
	if dsn == ":memory:" {
		dsn = ""
	}
	return openDB(ctx, "duckdb", dsn)
}
