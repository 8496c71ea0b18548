package commands

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
)

const (
	replPrompt     = "f1db> "
	replContPrompt = " ...> "
)

func runSQLREPL(cmd *cobra.Command, c *CommandContext) error {
	ctx := cmd.Context()

	historyFile := filepath.Join(filepath.Dir(c.Cfg.Database), ".f1stats_history")

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          replPrompt,
		HistoryFile:     historyFile,
		AutoComplete:    newTableCompleter(ctx, c),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
		Stdout:          c.Out,
		Stderr:          c.ErrOut,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	c.Printf("f1db SQL prompt (database: %s)\n", c.Cfg.Database)
	c.Println("Type .help for commands, .quit to exit")
	c.Println()

	var buf strings.Builder
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			buf.Reset()
			rl.SetPrompt(replPrompt)
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if buf.Len() == 0 && strings.HasPrefix(line, ".") {
			if quit := handleDotCommand(ctx, c, line); quit {
				break
			}
			continue
		}

		// Statements run once terminated by a semicolon.
		buf.WriteString(line)
		if !strings.HasSuffix(line, ";") {
			buf.WriteString(" ")
			rl.SetPrompt(replContPrompt)
			continue
		}
		rl.SetPrompt(replPrompt)

		query := buf.String()
		buf.Reset()

		if err := executeSQL(ctx, c, query); err != nil {
			_, _ = fmt.Fprintf(c.ErrOut, "Error: %v\n", err)
		}
		c.Println()
	}

	return nil
}

// handleDotCommand runs a REPL command and reports whether to quit.
func handleDotCommand(ctx context.Context, c *CommandContext, line string) bool {
	parts := strings.Fields(line)
	command := strings.ToLower(parts[0])

	switch command {
	case ".quit", ".exit":
		return true

	case ".help":
		printREPLHelp(c.Out)

	case ".tables":
		tables, err := c.Store.Tables(ctx)
		if err != nil {
			_, _ = fmt.Fprintf(c.ErrOut, "Error: %v\n", err)
			return false
		}
		rows := make([][]any, len(tables))
		for i, t := range tables {
			rows[i] = []any{t}
		}
		if err := c.RenderTable([]string{"table"}, rows); err != nil {
			_, _ = fmt.Fprintf(c.ErrOut, "Error: %v\n", err)
		}

	case ".schema":
		if len(parts) < 2 {
			_, _ = fmt.Fprintln(c.ErrOut, "Usage: .schema <table>")
			return false
		}
		res, err := c.Store.Query(ctx,
			`SELECT name, type, "notnull" AS not_null, pk FROM pragma_table_info(:table)`,
			sql.Named("table", parts[1]))
		if err != nil {
			_, _ = fmt.Fprintf(c.ErrOut, "Error: %v\n", err)
			return false
		}
		if len(res.Rows) == 0 {
			_, _ = fmt.Fprintf(c.ErrOut, "No such table: %s\n", parts[1])
			return false
		}
		if err := c.RenderResult(res); err != nil {
			_, _ = fmt.Fprintf(c.ErrOut, "Error: %v\n", err)
		}

	case ".clear":
		c.Printf("\033[H\033[2J")

	default:
		_, _ = fmt.Fprintf(c.ErrOut, "Unknown command: %s (type .help for commands)\n", command)
	}

	return false
}

func printREPLHelp(w io.Writer) {
	help := `
Commands:
  .help           Show this help message
  .tables         List all tables
  .schema <name>  Show the columns of a table
  .clear          Clear the screen
  .quit / .exit   Exit the prompt

Tips:
  - SQL statements must end with a semicolon (;)
  - Use arrow keys to navigate history
  - Tab completion works for table names
`
	_, _ = fmt.Fprintln(w, help)
}

// newTableCompleter creates a readline completer for table names.
func newTableCompleter(ctx context.Context, c *CommandContext) *readline.PrefixCompleter {
	var items []readline.PrefixCompleterInterface

	// Completion is best effort.
	if tables, err := c.Store.Tables(ctx); err == nil {
		for _, name := range tables {
			items = append(items, readline.PcItem(name))
		}
	}

	items = append(items,
		readline.PcItem(".help"),
		readline.PcItem(".tables"),
		readline.PcItem(".schema"),
		readline.PcItem(".clear"),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
	)

	return readline.NewPrefixCompleter(items...)
}
