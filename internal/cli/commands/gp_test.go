package commands

import (
	"strings"
	"testing"

	"github.com/leapstack-labs/f1stats/internal/cli/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrandPrix(t *testing.T) {
	testutil.SetupTestProject(t)

	res := testutil.RunCommand(t, NewGrandPrixCommand(), "", "australia", "2023")
	require.NoError(t, res.Err)

	for _, want := range []string{
		"Lewis Hamilton",
		"1ᶠ",
		"DNF*ᵖ",
		"* Max Verstappen retired because of - Engine",
		"Pole position: Max Verstappen",
		"Fastest lap: Lewis Hamilton - 1:20.235 (lap 53)",
	} {
		assert.Contains(t, res.Out, want)
	}
}

func TestGrandPrix_Markdown(t *testing.T) {
	testutil.SetupTestProject(t, "format: markdown")

	res := testutil.RunCommand(t, NewGrandPrixCommand(), "", "bahrain", "2023")
	require.NoError(t, res.Err)

	table, notes, found := strings.Cut(res.Out, "\n\n")
	require.True(t, found, "notes are separated from the table")
	testutil.AssertValidMarkdownTable(t, table)
	assert.Contains(t, notes, "Pole position: Max Verstappen")
}

func TestGrandPrix_NotFound(t *testing.T) {
	testutil.SetupTestProject(t)

	res := testutil.RunCommand(t, NewGrandPrixCommand(), "", "monaco", "2023")
	require.NoError(t, res.Err)
	assert.Equal(t, noDataMessage+"\n", res.Out)
}
