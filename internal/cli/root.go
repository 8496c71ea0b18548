// Package cli provides the command-line interface for f1stats.
package cli

import (
	"fmt"
	"os"

	"github.com/leapstack-labs/f1stats/internal/cli/commands"
	"github.com/leapstack-labs/f1stats/internal/cli/output"
	"github.com/spf13/cobra"
)

var cfgFile string

// Version is overridden at build time with -ldflags "-X".
var Version = "0.1.0"

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "f1stats",
		Short: "Formula One statistics, records and season tables",
		Long: `f1stats prints tables, records and season statistics of Formula One from
the f1db dataset stored as a SQLite database.

Run 'f1stats db update' first to download the database.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			ctx, err := setupRuntime(cmd, cfgFile)
			if err != nil {
				return err
			}
			cmd.SetContext(ctx)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
Built with Go on the f1db dataset
`)

	// Global persistent flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: f1stats.yaml, searched upward)")
	flags.String("database", "", "Path to the f1db SQLite database")
	flags.String("sql-dir", "", "Directory of SQL scripts overriding the built-in ones")
	flags.String("format", "", "Table format (text|markdown|csv|json)")
	flags.String("adjustment", "", "Table text alignment (left|center|right)")
	flags.Bool("double-headers", false, "Print table headers at the top and the bottom")
	flags.Bool("no-delimiters", false, "Do not print table separators")
	flags.Bool("show-nones", false, "Print None for missing values")
	flags.BoolP("verbose", "v", false, "Verbose output")

	_ = rootCmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		names := make([]string, len(output.Formats))
		for i, f := range output.Formats {
			names[i] = string(f)
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("adjustment", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"left", "center", "right"}, cobra.ShellCompDirectiveNoFileComp
	})

	// Add subcommands
	rootCmd.AddCommand(commands.NewVersionCommand(Version))
	rootCmd.AddCommand(commands.NewDriverCommand())
	rootCmd.AddCommand(commands.NewSeasonCommand())
	rootCmd.AddCommand(commands.NewGrandPrixCommand())
	rootCmd.AddCommand(commands.NewCircuitCommand())
	rootCmd.AddCommand(commands.NewSearchCommand())
	rootCmd.AddCommand(commands.NewDBCommand())
	rootCmd.AddCommand(NewCompletionCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// NewCompletionCommand creates the completion command.
func NewCompletionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for f1stats.

To load completions:

Bash:
  $ source <(f1stats completion bash)

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. Execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  $ f1stats completion zsh > "${fpath[1]}/_f1stats"

Fish:
  $ f1stats completion fish | source

PowerShell:
  PS> f1stats completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
	return cmd
}
