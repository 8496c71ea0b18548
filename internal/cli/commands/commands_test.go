package commands

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandMetadata(t *testing.T) {
	tests := []struct {
		name   string
		newCmd func() *cobra.Command
		use    string
		flags  []string
	}{
		{"driver", NewDriverCommand, "driver ID YEAR", []string{"races", "sprints", "qualifying", "pit-stops", "overview", "overview-format"}},
		{"season", NewSeasonCommand, "season YEAR", []string{"constructor"}},
		{"gp", NewGrandPrixCommand, "gp ID YEAR", nil},
		{"circuit", NewCircuitCommand, "circuit ID", []string{"best-lap", "best-qualifying", "most-wins", "most-podiums", "reverse", "rows"}},
		{"search", NewSearchCommand, "search PART", []string{"driver", "constructor", "circuit", "grand-prix", "overwrite-pattern", "column"}},
		{"db", NewDBCommand, "db", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := tt.newCmd()
			assert.Equal(t, tt.use, cmd.Use)
			assert.NotEmpty(t, cmd.Short, "Short should not be empty")
			for _, flag := range tt.flags {
				assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
			}
		})
	}
}

func TestShortFlags(t *testing.T) {
	driver := NewDriverCommand()
	for short, long := range map[string]string{"r": "races", "s": "sprints", "q": "qualifying", "p": "pit-stops", "o": "overview"} {
		f := driver.Flags().ShorthandLookup(short)
		require.NotNil(t, f, "driver -%s", short)
		assert.Equal(t, long, f.Name)
	}

	search := NewSearchCommand()
	for short, long := range map[string]string{"d": "driver", "c": "constructor", "C": "circuit", "g": "grand-prix"} {
		f := search.Flags().ShorthandLookup(short)
		require.NotNil(t, f, "search -%s", short)
		assert.Equal(t, long, f.Name)
	}

	circuit := NewCircuitCommand()
	assert.Equal(t, "15", circuit.Flags().Lookup("rows").DefValue)
	assert.Equal(t, "name", search.Flags().Lookup("column").DefValue)
}

func TestDBSubcommands(t *testing.T) {
	cmd := NewDBCommand()

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.ElementsMatch(t, []string{"sql", "update", "init"}, names)
}

func TestHelpers(t *testing.T) {
	year, err := parseYear("2023")
	require.NoError(t, err)
	assert.Equal(t, 2023, year)

	_, err = parseYear("twenty")
	assert.ErrorContains(t, err, `invalid year "twenty"`)
	_, err = parseYear("-1")
	assert.Error(t, err)

	assert.Equal(t, "1ᵖᶠ", annotateFinish("1", true, true))
	assert.Equal(t, "DNF", annotateFinish("DNF", false, false))

	assert.Equal(t, "+3", signed(3))
	assert.Equal(t, "-2", signed(-2))
	assert.Equal(t, "0", signed(0))
}
