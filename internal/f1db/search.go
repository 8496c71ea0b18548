package f1db

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
)

// SearchTable is a table that can be searched by column.
type SearchTable string

// Searchable tables.
const (
	SearchDrivers      SearchTable = "driver"
	SearchConstructors SearchTable = "constructor"
	SearchCircuits     SearchTable = "circuit"
	SearchGrandsPrix   SearchTable = "grand_prix"
)

// Search returns the rows of table whose column matches the LIKE pattern.
// The column must exist in the table.
func (s *Store) Search(ctx context.Context, table SearchTable, column, pattern string) (*Result, error) {
	switch table {
	case SearchDrivers, SearchConstructors, SearchCircuits, SearchGrandsPrix:
	default:
		return nil, fmt.Errorf("unknown search table %q", table)
	}

	cols, err := s.columns(ctx, string(table))
	if err != nil {
		return nil, err
	}
	if !slices.Contains(cols, column) {
		return nil, fmt.Errorf("table %s has no column %q", table, column)
	}

	query := fmt.Sprintf(`SELECT * FROM %q WHERE %q LIKE :pattern ORDER BY rowid`, table, column)
	return s.Query(ctx, query, sql.Named("pattern", pattern))
}

func (s *Store) columns(ctx context.Context, table string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM pragma_table_info(:table)`, sql.Named("table", table))
	if err != nil {
		return nil, fmt.Errorf("failed to read columns of %s: %w", table, err)
	}
	defer func() { _ = rows.Close() }()

	var cols []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan column name: %w", err)
		}
		cols = append(cols, name)
	}
	return cols, rows.Err()
}
