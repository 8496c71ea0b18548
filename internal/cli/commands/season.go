package commands

import (
	"cmp"
	"slices"

	"github.com/leapstack-labs/f1stats/internal/f1db"
	"github.com/leapstack-labs/f1stats/pkg/core"
	"github.com/spf13/cobra"
)

// driversPerTeam is how many drivers a constructor row lists.
const driversPerTeam = 2

// NewSeasonCommand creates the season command.
func NewSeasonCommand() *cobra.Command {
	var constructors bool

	cmd := &cobra.Command{
		Use:   "season YEAR",
		Short: "Championship grid of a season",
		Long: `Print the championship grid of a season: one row per driver with the
finishing position of every race and the final points.

With --constructor the grid lists teams by final constructor points, each
with its first two drivers.`,
		Example: `  f1stats season 2023
  f1stats season 2023 -c`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := parseYear(args[0])
			if err != nil {
				return err
			}
			return runSeason(cmd, year, constructors)
		},
	}

	cmd.Flags().BoolVarP(&constructors, "constructor", "c", false, "Show the constructor standing instead of the driver standing")

	return cmd
}

// seasonLine is the races of one driver, or of one driver within a team.
type seasonLine struct {
	name    string
	results map[string]string
}

func runSeason(cmd *cobra.Command, year int, constructors bool) error {
	c, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := cmd.Context()
	rounds, err := c.Store.SeasonGrandsPrix(ctx, year)
	if err != nil {
		return err
	}
	entries, err := c.Store.Championship(ctx, year)
	if err != nil {
		return err
	}
	if len(rounds) == 0 || len(entries) == 0 {
		c.Println(noDataMessage)
		return nil
	}

	headers := make([]string, 0, len(rounds)+3)
	headers = append(headers, "pos", "name")
	for _, r := range rounds {
		headers = append(headers, r.Abbreviation)
	}
	headers = append(headers, "pts")

	var rows [][]any
	if constructors {
		rows = constructorGrid(rounds, entries)
	} else {
		rows = driverGrid(rounds, entries)
	}

	return c.RenderTable(headers, rows)
}

// driverGrid keeps the final standing order of the entries.
func driverGrid(rounds []f1db.GrandPrixRound, entries []f1db.ChampionshipEntry) [][]any {
	var drivers []*seasonLine
	byName := map[string]*seasonLine{}
	points := map[string]*float64{}

	for _, e := range entries {
		line, ok := byName[e.Driver]
		if !ok {
			line = &seasonLine{name: e.Driver, results: map[string]string{}}
			byName[e.Driver] = line
			drivers = append(drivers, line)
		}
		line.results[e.Abbreviation] = annotateFinish(e.Finish, e.IsPole, e.IsFastestLap)
		points[e.Driver] = e.Points
	}

	rows := make([][]any, 0, len(drivers))
	for i, d := range drivers {
		rows = append(rows, gridRow(i+1, d.name, rounds, d.results, points[d.name]))
	}
	return rows
}

// constructorGrid orders teams by final points, keeping first-seen order on
// ties.
func constructorGrid(rounds []f1db.GrandPrixRound, entries []f1db.ChampionshipEntry) [][]any {
	type team struct {
		name    string
		points  float64
		drivers []*seasonLine
		byName  map[string]*seasonLine
	}

	var teams []*team
	byName := map[string]*team{}

	for _, e := range entries {
		t, ok := byName[e.Team]
		if !ok {
			t = &team{name: e.Team, byName: map[string]*seasonLine{}}
			byName[e.Team] = t
			teams = append(teams, t)
		}
		t.points = core.FloatOr(e.TeamPoints, 0)

		line, ok := t.byName[e.Driver]
		if !ok {
			line = &seasonLine{name: e.Driver, results: map[string]string{}}
			t.byName[e.Driver] = line
			t.drivers = append(t.drivers, line)
		}
		line.results[e.Abbreviation] = annotateFinish(e.Finish, e.IsPole, e.IsFastestLap)
	}

	slices.SortStableFunc(teams, func(a, b *team) int {
		return cmp.Compare(b.points, a.points)
	})

	var rows [][]any
	for i, t := range teams {
		pts := t.points
		for _, d := range t.drivers[:min(driversPerTeam, len(t.drivers))] {
			rows = append(rows, gridRow(i+1, t.name, rounds, d.results, &pts))
		}
	}
	return rows
}

func gridRow(pos int, name string, rounds []f1db.GrandPrixRound, results map[string]string, points *float64) []any {
	row := make([]any, 0, len(rounds)+3)
	row = append(row, pos, name)
	for _, r := range rounds {
		if res, ok := results[r.Abbreviation]; ok {
			row = append(row, res)
		} else {
			row = append(row, nil)
		}
	}
	return append(row, points)
}
