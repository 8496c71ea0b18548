package commands

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/leapstack-labs/f1stats/internal/cli/testutil"
	"github.com/leapstack-labs/f1stats/internal/f1db"
	"github.com/leapstack-labs/f1stats/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDriverRaces(t *testing.T) {
	testutil.SetupTestProject(t)

	res := testutil.RunCommand(t, NewDriverCommand(), "", "max_verstappen", "2023", "-r")
	require.NoError(t, res.Err)

	out := res.Out
	for _, want := range []string{
		"| round |",
		"1ᵖ",
		"2ᶠ",
		"DNF*ᵖ",
		"1:36.236 (+0.736)",
		"2 (-1)",
		"* Retired because of - Engine",
		strings.Repeat("-", 40),
		"All 3 games played in: Red Bull",
	} {
		assert.Contains(t, out, want)
	}
	testutil.AssertNoANSI(t, out)
}

func TestDriverRaces_JSON(t *testing.T) {
	testutil.SetupTestProject(t, "format: json")

	res := testutil.RunCommand(t, NewDriverCommand(), "", "max_verstappen", "2023", "--races")
	require.NoError(t, res.Err)

	var rows []map[string]any
	require.NoError(t, json.Unmarshal([]byte(res.Out), &rows), "notes must not follow JSON output")
	require.Len(t, rows, 3)

	assert.Equal(t, "bahrain", rows[0]["grand prix"])
	assert.Equal(t, "1ᵖ", rows[0]["finish"])
	assert.InDelta(t, 1.0, rows[0]["standing"], 1e-9)
	assert.Equal(t, "2 (-1)", rows[2]["standing"])
	assert.Nil(t, rows[2]["best lap"])
}

func TestPitStopTable(t *testing.T) {
	stops := []f1db.PitStop{
		{Round: 1, GrandPrix: "bahrain", Stop: core.Ptr(1), Lap: core.Ptr(14), Time: core.Ptr("22.500")},
		{Round: 1, GrandPrix: "bahrain", Stop: core.Ptr(2), Lap: core.Ptr(36), Time: core.Ptr("21.900")},
		{Round: 2, GrandPrix: "saudi-arabia", Stop: core.Ptr(1), Lap: core.Ptr(17), Time: core.Ptr("20.100")},
		{Round: 3, GrandPrix: "australia", Stop: core.Ptr(1), Lap: core.Ptr(7), Time: core.Ptr("45.000")},
		{Round: 3, GrandPrix: "australia", Stop: core.Ptr(2), Lap: core.Ptr(8)},
	}

	headers, rows := pitStopTable(stops)

	assert.Equal(t, []string{"", "pit 1", "pit 2", "total"}, headers)
	assert.Equal(t, [][]any{
		{"bahrain", "lap 14 - 22.500", "lap 36 - 21.900", 2},
		{"saudi-arabia", "lap 17 - 20.100", nil, 1},
		{"australia", "lap 7 - 45.000", "lap 8", 2},
	}, rows)
}

func TestDriverPitStops(t *testing.T) {
	testutil.SetupTestProject(t, "table:\n  show_nones: true")

	res := testutil.RunCommand(t, NewDriverCommand(), "", "max_verstappen", "2023", "-p")
	require.NoError(t, res.Err)

	assert.Contains(t, res.Out, "pit 2")
	assert.Contains(t, res.Out, "lap 14 - 22.500")
	assert.Contains(t, res.Out, "None")
}

func TestDriverOverview(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		wants []string
	}{
		{
			name: "default section is the overview",
			args: []string{"max_verstappen", "2023"},
			wants: []string{
				"Season overview: max_verstappen, 2023",
				"- Total pts: 44 pts (2nd place)",
				"- DNF: 1 (33.3%)",
				"  * australia - Engine",
			},
		},
		{
			name:  "yaml",
			args:  []string{"max_verstappen", "2023", "-o", "--overview-format", "yaml"},
			wants: []string{"driver_id: max_verstappen", "year: 2023", "races: 3", "wins: 1"},
		},
		{
			name:  "no data",
			args:  []string{"nobody", "2023", "-o"},
			wants: []string{noDataMessage},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.SetupTestProject(t)

			res := testutil.RunCommand(t, NewDriverCommand(), "", tt.args...)
			require.NoError(t, res.Err)
			for _, want := range tt.wants {
				assert.Contains(t, res.Out, want)
			}
		})
	}
}

func TestDriverOverview_JSON(t *testing.T) {
	testutil.SetupTestProject(t, "format: json")

	res := testutil.RunCommand(t, NewDriverCommand(), "", "max_verstappen", "2023", "-o")
	require.NoError(t, res.Err)

	var summary map[string]any
	require.NoError(t, json.Unmarshal([]byte(res.Out), &summary))
	assert.Equal(t, "max_verstappen", summary["driver_id"])
	assert.InDelta(t, 3.0, summary["races"], 1e-9)
	assert.InDelta(t, 44.0, summary["points"], 1e-9)
}

func TestDriverQualifyingAndSprints(t *testing.T) {
	testutil.SetupTestProject(t, "format: json")

	res := testutil.RunCommand(t, NewDriverCommand(), "", "max_verstappen", "2023", "-q")
	require.NoError(t, res.Err)
	var quali []map[string]any
	require.NoError(t, json.Unmarshal([]byte(res.Out), &quali))
	assert.Len(t, quali, 3)

	res = testutil.RunCommand(t, NewDriverCommand(), "", "max_verstappen", "2023", "-s")
	require.NoError(t, res.Err)
	var sprints []map[string]any
	require.NoError(t, json.Unmarshal([]byte(res.Out), &sprints))
	require.Len(t, sprints, 1)
	assert.Equal(t, "saudi-arabia", sprints[0]["grand_prix"])
}

func TestDriver_Errors(t *testing.T) {
	testutil.SetupTestProject(t)

	res := testutil.RunCommand(t, NewDriverCommand(), "", "max_verstappen", "soon", "-r")
	assert.ErrorContains(t, res.Err, "invalid year")

	res = testutil.RunCommand(t, NewDriverCommand(), "", "max_verstappen")
	assert.Error(t, res.Err)

	res = testutil.RunCommand(t, NewDriverCommand(), "", "max_verstappen", "2023", "-o", "--overview-format", "toml")
	assert.ErrorContains(t, res.Err, "invalid overview format")
}

func TestDriver_MissingDatabase(t *testing.T) {
	testutil.SetupTestProject(t, "database: missing.db")

	res := testutil.RunCommand(t, NewDriverCommand(), "", "max_verstappen", "2023")
	require.Error(t, res.Err)
	assert.ErrorIs(t, res.Err, f1db.ErrDatabaseMissing)
}
