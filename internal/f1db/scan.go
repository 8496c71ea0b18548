package f1db

import (
	"context"
	"database/sql"
	"fmt"
)

// scanNamed scans the current row into the destinations registered for each
// column name. Every column of the result must have a destination; columns
// without one are an error, destinations without a column are left untouched.
func scanNamed(rows *sql.Rows, cols []string, fields map[string]any) error {
	dest := make([]any, len(cols))
	for i, col := range cols {
		p, ok := fields[col]
		if !ok {
			return fmt.Errorf("unexpected column %q", col)
		}
		dest[i] = p
	}
	return rows.Scan(dest...)
}

// queryAll runs a script and maps every row onto a new T through fields.
func queryAll[T any](ctx context.Context, s *Store, script string, fields func(*T) map[string]any, args ...any) ([]T, error) {
	rows, err := s.queryScript(ctx, script, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}

	var out []T
	for rows.Next() {
		var v T
		if err := scanNamed(rows, cols, fields(&v)); err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", script, err)
		}
		out = append(out, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", script, err)
	}
	return out, nil
}

func driverSeasonArgs(id string, year int) []any {
	return []any{sql.Named("id", id), sql.Named("year", year)}
}
