package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/leapstack-labs/f1stats/internal/cli/output"
	"github.com/leapstack-labs/f1stats/internal/f1db"
	"github.com/leapstack-labs/f1stats/internal/overview"
	"github.com/leapstack-labs/f1stats/pkg/core"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// DriverOptions holds options for the driver command.
type DriverOptions struct {
	Races          bool
	Sprints        bool
	Qualifying     bool
	PitStops       bool
	Overview       bool
	OverviewFormat string
}

// NewDriverCommand creates the driver command.
func NewDriverCommand() *cobra.Command {
	opts := &DriverOptions{}

	cmd := &cobra.Command{
		Use:   "driver ID YEAR",
		Short: "Driver statistics over a season",
		Long: `Show a driver's races, sprints, qualifying sessions, pit stops and a
statistical overview of a season.

Without any section flag the overview is shown.`,
		Example: `  # Races of a season with retirements and fastest laps marked
  f1stats driver max_verstappen 2023 -r

  # Season overview as YAML
  f1stats driver max_verstappen 2023 -o --overview-format yaml`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDriver(cmd, args[0], args[1], opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.Races, "races", "r", false, "Table of the driver's season races")
	cmd.Flags().BoolVarP(&opts.Sprints, "sprints", "s", false, "Table of the driver's season sprints")
	cmd.Flags().BoolVarP(&opts.Qualifying, "qualifying", "q", false, "Table of the driver's qualifying sessions")
	cmd.Flags().BoolVarP(&opts.PitStops, "pit-stops", "p", false, "Table of pit stops for each race")
	cmd.Flags().BoolVarP(&opts.Overview, "overview", "o", false, "Statistical overview of the season")
	cmd.Flags().StringVar(&opts.OverviewFormat, "overview-format", "", "Overview format: text, json, yaml (default: follows --format)")

	_ = cmd.RegisterFlagCompletionFunc("overview-format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"text", "json", "yaml"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runDriver(cmd *cobra.Command, driverID, yearArg string, opts *DriverOptions) error {
	year, err := parseYear(yearArg)
	if err != nil {
		return err
	}

	c, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	if !opts.Races && !opts.Sprints && !opts.Qualifying && !opts.PitStops && !opts.Overview {
		opts.Overview = true
	}

	c.Logger.Debug("driver", "id", driverID, "year", year)

	if opts.Races {
		if err := driverRaces(cmd, c, driverID, year); err != nil {
			return err
		}
	}
	if opts.PitStops {
		if err := driverPitStops(cmd, c, driverID, year); err != nil {
			return err
		}
	}
	if opts.Overview {
		if err := driverOverview(cmd, c, driverID, year, opts.OverviewFormat); err != nil {
			return err
		}
	}
	if opts.Qualifying {
		res, err := c.Store.DriverQualifying(cmd.Context(), driverID, year)
		if err != nil {
			return err
		}
		if err := renderOrNotice(c, res); err != nil {
			return err
		}
	}
	if opts.Sprints {
		res, err := c.Store.DriverSprints(cmd.Context(), driverID, year)
		if err != nil {
			return err
		}
		if err := renderOrNotice(c, res); err != nil {
			return err
		}
	}

	return nil
}

func renderOrNotice(c *CommandContext, res *f1db.Result) error {
	if len(res.Rows) == 0 {
		c.Println(noDataMessage)
		return nil
	}
	return c.RenderResult(res)
}

var driverRaceHeaders = []string{
	"round", "grand prix", "finish", "grid", "+/-", "laps", "time",
	"best lap", "lap", "pts", "standing", "season pts",
}

func driverRaces(cmd *cobra.Command, c *CommandContext, driverID string, year int) error {
	races, err := c.Store.DriverRaces(cmd.Context(), driverID, year)
	if err != nil {
		return err
	}
	if len(races) == 0 {
		c.Println(noDataMessage)
		return nil
	}

	rows := make([][]any, 0, len(races))
	var notes []string
	var teams []string
	played := map[string]int{}

	for _, r := range races {
		finish := r.Finish
		if r.ReasonRetired != nil {
			notes = append(notes, "* Retired because of - "+*r.ReasonRetired)
			finish += "*"
		}
		finish = annotateFinish(finish, r.IsPole, r.IsFastestLap)

		if _, ok := played[r.Team]; !ok {
			teams = append(teams, r.Team)
		}
		played[r.Team]++

		rows = append(rows, []any{
			r.Round, r.GrandPrix, finish, r.Grid, r.PositionsGained, r.Laps, r.Time,
			withGap(r.BestLap, r.FastestLapGap), r.BestLapNumber, r.Points,
			withChange(r.Standing, r.StandingGained), r.SeasonPoints,
		})
	}

	if err := c.RenderTable(driverRaceHeaders, rows); err != nil {
		return err
	}
	if !c.plainText() {
		return nil
	}

	notes = append(notes, strings.Repeat("-", 40))
	for _, team := range teams {
		if len(teams) == 1 {
			notes = append(notes, fmt.Sprintf("All %d games played in: %s", played[team], team))
		} else {
			notes = append(notes, fmt.Sprintf("%d games played in %s", played[team], team))
		}
	}
	c.Println(strings.Join(notes, "\n"))
	c.Println()

	return nil
}

// withGap appends the gap to the fastest lap of the race.
func withGap(lap, gap *string) any {
	if lap == nil {
		return nil
	}
	if gap == nil || *gap == "" {
		return *lap
	}
	return fmt.Sprintf("%s (%s)", *lap, *gap)
}

// withChange appends the change in championship position.
func withChange(standing, gained *int) any {
	if standing == nil {
		return nil
	}
	if g := core.IntOr(gained, 0); g != 0 {
		return fmt.Sprintf("%d (%s)", *standing, signed(g))
	}
	return *standing
}

func driverPitStops(cmd *cobra.Command, c *CommandContext, driverID string, year int) error {
	stops, err := c.Store.DriverPitStops(cmd.Context(), driverID, year)
	if err != nil {
		return err
	}
	if len(stops) == 0 {
		c.Println(noDataMessage)
		return nil
	}

	headers, rows := pitStopTable(stops)
	return c.RenderTable(headers, rows)
}

// pitStopTable lays out one row per race with a column per stop.
func pitStopTable(stops []f1db.PitStop) ([]string, [][]any) {
	var rounds []int
	byRound := map[int][]f1db.PitStop{}
	most := 0

	for _, s := range stops {
		if _, ok := byRound[s.Round]; !ok {
			rounds = append(rounds, s.Round)
		}
		byRound[s.Round] = append(byRound[s.Round], s)
		most = max(most, len(byRound[s.Round]))
	}

	headers := make([]string, 0, most+2)
	headers = append(headers, "")
	for i := range most {
		headers = append(headers, fmt.Sprintf("pit %d", i+1))
	}
	headers = append(headers, "total")

	rows := make([][]any, 0, len(rounds))
	for _, round := range rounds {
		pits := byRound[round]
		row := make([]any, 0, most+2)
		row = append(row, pits[0].GrandPrix)
		for i := range most {
			if i >= len(pits) {
				row = append(row, nil)
				continue
			}
			row = append(row, pitCell(pits[i]))
		}
		row = append(row, len(pits))
		rows = append(rows, row)
	}

	return headers, rows
}

func pitCell(p f1db.PitStop) string {
	lap := "?"
	if p.Lap != nil {
		lap = fmt.Sprint(*p.Lap)
	}
	if p.Time == nil {
		return "lap " + lap
	}
	return fmt.Sprintf("lap %s - %s", lap, *p.Time)
}

func driverOverview(cmd *cobra.Command, c *CommandContext, driverID string, year int, format string) error {
	summary, err := overview.Build(cmd.Context(), c.Store, driverID, year)
	if errors.Is(err, overview.ErrNoData) {
		c.Println(noDataMessage)
		return nil
	}
	if err != nil {
		return err
	}

	if format == "" {
		format = "text"
		if c.Cfg.OutputFormat() == output.FormatJSON {
			format = "json"
		}
	}

	switch strings.ToLower(format) {
	case "text":
		return overview.WriteReport(c.Out, summary, overview.ReportOptions{})
	case "json":
		enc := json.NewEncoder(c.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	case "yaml", "yml":
		enc := yaml.NewEncoder(c.Out)
		enc.SetIndent(2)
		if err := enc.Encode(summary); err != nil {
			return fmt.Errorf("failed to encode overview: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("invalid overview format %q (want text, json or yaml)", format)
	}
}
