// Package f1db reads the f1db motorsport dataset from its SQLite export.
//
// Every query is a named script embedded in the binary. A script directory can
// shadow individual scripts, so queries can be tuned without a rebuild.
package f1db

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	// sqlite driver for the f1db database.
	_ "modernc.org/sqlite"
)

//go:embed sql/*.sql
var scripts embed.FS

var (
	// ErrNotFound is returned when a lookup by id matches nothing.
	ErrNotFound = errors.New("not found")
	// ErrDatabaseMissing is returned by Open when the database file does not exist.
	ErrDatabaseMissing = errors.New("database file not found")
)

// Store is a read-only handle on an f1db database.
type Store struct {
	db        *sql.DB
	scriptDir string
	logger    *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithScriptDir makes scripts in dir take precedence over the embedded ones.
func WithScriptDir(dir string) Option {
	return func(s *Store) {
		s.scriptDir = dir
	}
}

// WithLogger sets the logger used for query tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Open opens the database at path in read-only mode.
func Open(path string, opts ...Option) (*Store, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s (run 'f1stats db update' first)", ErrDatabaseMissing, path)
		}
		return nil, fmt.Errorf("failed to stat database: %w", err)
	}

	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	return New(db, opts...), nil
}

// New wraps an already open connection.
func New(db *sql.DB, opts ...Option) *Store {
	s := &Store{
		db:     db,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Result is a fully read result set.
type Result struct {
	Columns []string
	Rows    [][]any
}

// Index returns the position of the named column, or -1.
func (r *Result) Index(name string) int {
	for i, c := range r.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Script returns the text of the named script.
func (s *Store) Script(name string) (string, error) {
	file := name + ".sql"

	if s.scriptDir != "" {
		content, err := os.ReadFile(filepath.Join(s.scriptDir, file))
		if err == nil {
			return string(content), nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("failed to read script %s: %w", name, err)
		}
	}

	content, err := scripts.ReadFile("sql/" + file)
	if err != nil {
		return "", fmt.Errorf("unknown script %q: %w", name, err)
	}
	return string(content), nil
}

// RunScript runs the named script and reads the whole result.
func (s *Store) RunScript(ctx context.Context, name string, args ...any) (*Result, error) {
	rows, err := s.queryScript(ctx, name, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	return collect(rows)
}

// Query runs arbitrary SQL and reads the whole result.
func (s *Store) Query(ctx context.Context, query string, args ...any) (*Result, error) {
	s.logger.Debug("running query", "sql", query)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return collect(rows)
}

// Tables returns the names of all tables and views.
func (s *Store) Tables(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name FROM sqlite_master
		WHERE type IN ('table', 'view')
		AND name NOT LIKE 'sqlite_%'
		AND name NOT LIKE 'goose_%'
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan table name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (s *Store) queryScript(ctx context.Context, name string, args ...any) (*sql.Rows, error) {
	query, err := s.Script(name)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("running script", "name", name)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to run script %s: %w", name, err)
	}
	return rows, nil
}

func collect(rows *sql.Rows) (*Result, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}

	res := &Result{Columns: cols}
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}

		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		res.Rows = append(res.Rows, values)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	return res, nil
}
