package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"strings"

	"github.com/leapstack-labs/f1stats/internal/f1db"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// NewDBCommand creates the db command and its subcommands.
func NewDBCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Database related commands",
		Long:  `Run SQL against the f1db database, update it, or create an empty one.`,
	}

	cmd.AddCommand(newDBSQLCommand())
	cmd.AddCommand(newDBUpdateCommand())
	cmd.AddCommand(newDBInitCommand())

	return cmd
}

func newDBSQLCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sql [FILE]",
		Short: "Run arbitrary SQL on the f1db database",
		Long: `Run a SQL statement on the f1db database and print the result as a table.

The statement is read from FILE, or from standard input when it is piped.
Without either an interactive prompt is started.`,
		Example: `  f1stats db sql query.sql
  echo "SELECT id, name FROM driver LIMIT 5" | f1stats db sql
  f1stats db sql`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDBSQL(cmd, args)
		},
	}
}

func runDBSQL(cmd *cobra.Command, args []string) error {
	var query string

	switch {
	case len(args) > 0:
		content, err := os.ReadFile(args[0])
		if errors.Is(err, fs.ErrNotExist) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "File %q does not exist\n", args[0])
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}
		query = string(content)
	case !stdinIsTerminal(cmd.InOrStdin()):
		content, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		query = string(content)
	default:
		c, cleanup, err := NewCommandContext(cmd)
		if err != nil {
			return err
		}
		defer cleanup()
		return runSQLREPL(cmd, c)
	}

	c, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	return executeSQL(cmd.Context(), c, query)
}

// executeSQL runs a single statement and renders its rows.
func executeSQL(ctx context.Context, c *CommandContext, query string) error {
	query = strings.TrimSuffix(strings.TrimSpace(query), ";")
	if query == "" {
		return nil
	}

	res, err := c.Store.Query(ctx, query)
	if err != nil {
		return err
	}
	return c.RenderResult(res)
}

func stdinIsTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

func newDBUpdateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "update",
		Short: "Download or update the f1db database",
		Long: `Run the install script, which fetches the latest f1db SQLite release into
the configured database path. The script runs in the project root.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := NewCommandContextWithoutStore(cmd)
			if err != nil {
				return err
			}

			script := c.Cfg.InstallScript
			if _, err := os.Stat(script); err != nil {
				return fmt.Errorf("install script %s: %w", script, err)
			}

			c.Logger.Debug("running install script", "path", script, "dir", c.Cfg.ProjectRoot)

			run := exec.CommandContext(cmd.Context(), script) //nolint:gosec // script path comes from the user config
			run.Dir = c.Cfg.ProjectRoot
			run.Stdout = c.Out
			run.Stderr = c.ErrOut
			run.Env = append(os.Environ(), "F1STATS_DATABASE="+c.Cfg.Database)

			if err := run.Run(); err != nil {
				return fmt.Errorf("install script failed: %w", err)
			}
			return nil
		},
	}
}

func newDBInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init PATH",
		Short: "Create an empty f1db database",
		Long: `Create an empty database with the f1db schema at PATH, or upgrade the
schema of an existing one.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := NewCommandContextWithoutStore(cmd)
			if err != nil {
				return err
			}

			path := args[0]
			if err := f1db.Bootstrap(cmd.Context(), path, c.Logger); err != nil {
				return err
			}

			store, err := f1db.Open(path, f1db.WithLogger(c.Logger))
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			version, err := store.SchemaVersion(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to read schema version: %w", err)
			}

			c.Printf("Initialized f1db schema at %s (version %d)\n", path, version)
			return nil
		},
	}
}
