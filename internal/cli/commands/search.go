package commands

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/f1stats/internal/cli/output"
	"github.com/leapstack-labs/f1stats/internal/f1db"
	"github.com/spf13/cobra"
)

// SearchOptions holds options for the search command.
type SearchOptions struct {
	Driver           bool
	Constructor      bool
	Circuit          bool
	GrandPrix        bool
	OverwritePattern bool
	Column           string
}

// table returns the table to search, or false when none is selected.
func (o *SearchOptions) table() (f1db.SearchTable, bool) {
	switch {
	case o.Driver:
		return f1db.SearchDrivers, true
	case o.Constructor:
		return f1db.SearchConstructors, true
	case o.Circuit:
		return f1db.SearchCircuits, true
	case o.GrandPrix:
		return f1db.SearchGrandsPrix, true
	default:
		return "", false
	}
}

// NewSearchCommand creates the search command.
func NewSearchCommand() *cobra.Command {
	opts := &SearchOptions{}

	cmd := &cobra.Command{
		Use:   "search PART",
		Short: "Search drivers, constructors, circuits or grands prix",
		Long: `Search a table for rows whose column contains PART.

PART is wrapped in % wildcards for SQL LIKE unless --overwrite-pattern is
given, in which case it is used as the whole pattern.`,
		Example: `  f1stats search verstappen -d
  f1stats search 'red%' -c --overwrite-pattern
  f1stats search ITA -C --column country_id`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, args[0], opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.Driver, "driver", "d", false, "Search for a driver")
	cmd.Flags().BoolVarP(&opts.Constructor, "constructor", "c", false, "Search for a constructor (team)")
	cmd.Flags().BoolVarP(&opts.Circuit, "circuit", "C", false, "Search for a circuit")
	cmd.Flags().BoolVarP(&opts.GrandPrix, "grand-prix", "g", false, "Search for a grand prix")
	cmd.Flags().BoolVar(&opts.OverwritePattern, "overwrite-pattern", false, "Use PART as the entire LIKE pattern")
	cmd.Flags().StringVar(&opts.Column, "column", "name", "Column to match PART against")
	cmd.MarkFlagsMutuallyExclusive("driver", "constructor", "circuit", "grand-prix")

	return cmd
}

func runSearch(cmd *cobra.Command, part string, opts *SearchOptions) error {
	table, ok := opts.table()
	if !ok {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "I don't know what to search for...")
		return nil
	}

	c, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	pattern := part
	if !opts.OverwritePattern {
		pattern = "%" + part + "%"
	}

	res, err := c.Store.Search(cmd.Context(), table, opts.Column, pattern)
	if err != nil {
		return err
	}
	if len(res.Rows) == 0 {
		c.Println(noDataMessage)
		return nil
	}

	nameIdx := max(res.Index("name"), 0)

	var b strings.Builder
	for _, row := range res.Rows {
		fmt.Fprintf(&b, "\n---- Found: %s ----\n\n", searchValue(row[nameIdx]))
		for i, col := range res.Columns {
			fmt.Fprintf(&b, "%s: %s\n", col, searchValue(row[i]))
		}
	}

	_, err = fmt.Fprint(c.Out, b.String())
	return err
}

func searchValue(v any) string {
	if s, ok := output.FormatValue(v); ok {
		return s
	}
	return "None"
}
