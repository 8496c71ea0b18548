package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/leapstack-labs/f1stats/internal/cli/config"
	"github.com/leapstack-labs/f1stats/internal/cli/output"
	"github.com/leapstack-labs/f1stats/internal/f1db"
	"github.com/spf13/cobra"
)

// Annotations appended to a finishing position.
const (
	supPole    = "\u1d56"
	supFastest = "\u1da0"
)

// noDataMessage is printed when a query matches nothing.
const noDataMessage = "Couldn't find anything"

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg    *config.Config
	Logger *slog.Logger
	Store  *f1db.Store
	Out    io.Writer
	ErrOut io.Writer
}

// NewCommandContext creates a CommandContext with an open store.
// Returns the context and a cleanup function that must be called (typically via defer).
func NewCommandContext(cmd *cobra.Command) (*CommandContext, func(), error) {
	c, err := NewCommandContextWithoutStore(cmd)
	if err != nil {
		return nil, nil, err
	}

	store, err := f1db.Open(c.Cfg.Database,
		f1db.WithScriptDir(c.Cfg.SQLDir),
		f1db.WithLogger(c.Logger),
	)
	if err != nil {
		return nil, nil, err
	}
	c.Store = store

	cleanup := func() {
		_ = store.Close()
	}

	return c, cleanup, nil
}

// NewCommandContextWithoutStore creates a CommandContext without a store.
// Useful for commands that don't read the f1db database.
func NewCommandContextWithoutStore(cmd *cobra.Command) (*CommandContext, error) {
	cfg, err := getConfig(cmd)
	if err != nil {
		return nil, err
	}

	return &CommandContext{
		Cfg:    cfg,
		Logger: config.GetLogger(cmd.Context()),
		Out:    cmd.OutOrStdout(),
		ErrOut: cmd.ErrOrStderr(),
	}, nil
}

// getConfig returns the configuration loaded by the root command, or loads
// one from defaults, the config file and the environment.
func getConfig(cmd *cobra.Command) (*config.Config, error) {
	if cfg := config.GetConfig(cmd.Context()); cfg != nil {
		return cfg, nil
	}
	return config.Load("", nil)
}

// RenderTable writes rows in the configured format. A malformed table is
// logged and skipped.
func (c *CommandContext) RenderTable(headers []string, rows [][]any) error {
	err := output.Encode(c.Out, c.Cfg.OutputFormat(), headers, rows, c.Cfg.TableOptions())
	if errors.Is(err, output.ErrShapeMismatch) {
		c.Logger.Warn("table not rendered", "error", err)
		return nil
	}
	return err
}

// RenderResult writes a query result in the configured format.
func (c *CommandContext) RenderResult(res *f1db.Result) error {
	return c.RenderTable(res.Columns, res.Rows)
}

// Println writes a line to the command output.
func (c *CommandContext) Println(a ...any) {
	_, _ = fmt.Fprintln(c.Out, a...)
}

// Printf writes formatted text to the command output.
func (c *CommandContext) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(c.Out, format, a...)
}

// plainText reports whether the output format leaves room for notes around
// tables.
func (c *CommandContext) plainText() bool {
	switch c.Cfg.OutputFormat() {
	case output.FormatText, output.FormatMarkdown:
		return true
	default:
		return false
	}
}

func parseYear(s string) (int, error) {
	year, err := strconv.Atoi(s)
	if err != nil || year <= 0 {
		return 0, fmt.Errorf("invalid year %q", s)
	}
	return year, nil
}

// annotateFinish appends the pole and fastest lap markers.
func annotateFinish(finish string, pole, fastest bool) string {
	if pole {
		finish += supPole
	}
	if fastest {
		finish += supFastest
	}
	return finish
}

// signed formats n with an explicit plus sign when positive.
func signed(n int) string {
	if n > 0 {
		return "+" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
