package store

import (
	"context"

	_ "github.com/mattn/go-sqlite3"
)

// sqlitePragmas run before the schema. busy_timeout comes first so the
// rest wait on a database another bot process holds.
var sqlitePragmas = []string{
	"PRAGMA busy_timeout=5000",
	"PRAGMA journal_mode=WAL",
	"PRAGMA foreign_keys=ON",
}

// OpenSQLite opens the SQLite database at path and applies the schema.
// ":memory:" opens an in-memory database.
func OpenSQLite(ctx context.Context, path string) (*DBSink, error) {
	if path == "" {
		path = ":memory:"
	}
	sink, err := openDB(ctx, "sqlite3", path, sqlitePragmas...)
	if err != nil {
		return nil, err
	}
	if path == ":memory:" {
		// Each pooled connection would get its own empty database.
		sink.db.SetMaxOpenConns(1)
	}
	return sink, nil
}
