// Package testutil provides test utilities for CLI testing.
package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/leapstack-labs/f1stats/internal/cli/config"
	basetestutil "github.com/leapstack-labs/f1stats/internal/testutil"
	"github.com/spf13/cobra"
)

// Project is a temporary f1stats project whose config points at the fixture
// database.
type Project struct {
	Dir      string
	Database string
}

// SetupTestProject creates a project directory with an f1stats.yaml and a
// fixture database, and makes it the working directory for the test.
// extraConfig lines are appended to the config; a database line replaces the
// fixture path.
func SetupTestProject(t *testing.T, extraConfig ...string) *Project {
	t.Helper()

	dir := t.TempDir()
	db := basetestutil.NewF1DB(t)

	cfg := strings.Join(extraConfig, "\n") + "\n"
	if !strings.Contains(cfg, "database:") {
		cfg = "database: " + db + "\n" + cfg
	}
	if err := os.WriteFile(filepath.Join(dir, "f1stats.yaml"), []byte(cfg), 0o600); err != nil {
		t.Fatalf("failed to write f1stats.yaml: %v", err)
	}

	t.Chdir(dir)

	return &Project{Dir: dir, Database: db}
}

// Result is the captured outcome of a command run.
type Result struct {
	Out    string
	ErrOut string
	Err    error
}

// RunCommand executes cmd with args and captures its output. The context
// carries a logger writing to the test log.
func RunCommand(t *testing.T, cmd *cobra.Command, stdin string, args ...string) Result {
	t.Helper()

	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetIn(strings.NewReader(stdin))
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)

	ctx := context.WithValue(context.Background(), config.LoggerKey(), basetestutil.NewTestLogger(t))
	err := cmd.ExecuteContext(ctx)

	return Result{Out: out.String(), ErrOut: errOut.String(), Err: err}
}

// ansiPattern matches ANSI escape codes.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// AssertNoANSI checks that a string contains no ANSI escape codes.
func AssertNoANSI(t *testing.T, s string) {
	t.Helper()
	if ansiPattern.MatchString(s) {
		t.Errorf("string contains ANSI escape codes: %q", s)
	}
}

// AssertValidMarkdownTable checks that every non-empty line of a markdown
// table starts and ends with a pipe and that the second line is the
// separator row.
func AssertValidMarkdownTable(t *testing.T, md string) {
	t.Helper()

	lines := strings.Split(strings.TrimSpace(md), "\n")
	if len(lines) < 2 {
		t.Errorf("markdown table needs a header and a separator, got %q", md)
		return
	}
	for i, line := range lines {
		if !strings.HasPrefix(line, "|") || !strings.HasSuffix(line, "|") {
			t.Errorf("line %d is not a table row: %q", i+1, line)
		}
	}
	if !strings.Contains(lines[1], "---") {
		t.Errorf("second line is not a separator row: %q", lines[1])
	}
}
