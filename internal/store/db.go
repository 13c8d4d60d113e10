package store

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"feedbackbot/internal/survey"
)

// schemaDDL holds the response tables shared by the SQL sinks.
//
//go:embed schema.sql
var schemaDDL string

// SchemaDDL returns the schema DDL applied to new databases.
func SchemaDDL() string {
	return schemaDDL
}

// EnsureSchema applies the schema DDL to the provided database connection.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("store: db is nil")
	}
	_, err := db.ExecContext(ctx, schemaDDL)
	return err
}

// DBSink stores responses in a SQL database, one row per response and one
// row per answer.
type DBSink struct {
	driver string
	dsn    string
	db     *sql.DB
}

// DB exposes the underlying connection.
func (s *DBSink) DB() *sql.DB {
	return s.db
}

// Driver reports the database/sql driver name.
func (s *DBSink) Driver() string {
	return s.driver
}

// Location reports the database path.
func (s *DBSink) Location() string {
	if s.dsn == "" {
		return ":memory:"
	}
	return s.dsn
}

// Close releases the database.
func (s *DBSink) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Save inserts the response and its answers in one transaction.
func (s *DBSink) Save(ctx context.Context, response survey.Response) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("store: %s sink is closed", s.driverName())
	}
	id := strings.TrimSpace(response.ID)
	if id == "" {
		id = uuid.NewString()
	}
	var respondent any
	if response.Respondent != "" {
		respondent = response.Respondent
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if _, err := tx.ExecContext(
		ctx,
		`INSERT INTO responses (response_id, submitted_at, respondent) VALUES (?, ?, ?)`,
		id,
		response.SubmittedAt.UTC(),
		respondent,
	); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("insert response: %w", err)
	}
	for i, answer := range response.Answers {
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO answers (response_id, position, question_id, question, value) VALUES (?, ?, ?, ?, ?)`,
			id,
			i,
			answer.QuestionID,
			answer.Question,
			answer.Value,
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert answer %d: %w", answer.QuestionID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit response: %w", err)
	}
	return nil
}

func (s *DBSink) driverName() string {
	if s == nil {
		return "database"
	}
	return s.driver
}

// openDB opens driver at dsn, runs the setup statements and applies the
// schema. File databases get their parent directory created.
func openDB(ctx context.Context, driver, dsn string, setup ...string) (*DBSink, error) {
	if dsn != "" && dsn != ":memory:" {
		if dir := filepath.Dir(dsn); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create database dir: %w", err)
			}
		}
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}
	for _, statement := range setup {
		if _, err := db.ExecContext(ctx, statement); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("%s: %w", statement, err)
		}
	}
	if err := EnsureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &DBSink{driver: driver, dsn: dsn, db: db}, nil
}
