package cli

import (
	"context"
	"io"
	"log/slog"

	"github.com/leapstack-labs/f1stats/internal/cli/config"
	"github.com/spf13/cobra"
)

// setupRuntime loads the configuration and returns a context carrying it
// together with the logger.
func setupRuntime(cmd *cobra.Command, cfgFile string) (context.Context, error) {
	cfg, err := config.Load(cfgFile, cmd.Root().PersistentFlags())
	if err != nil {
		return nil, err
	}

	logger := newLogger(cmd.ErrOrStderr(), cfg.Verbose)
	if cfg.ConfigFile != "" {
		logger.Debug("using config file", "path", cfg.ConfigFile)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = context.WithValue(ctx, config.ConfigKey(), cfg)
	ctx = context.WithValue(ctx, config.LoggerKey(), logger)

	return ctx, nil
}

// newLogger logs warnings and errors as text, or everything when verbose.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
