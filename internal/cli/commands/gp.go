package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var grandPrixHeaders = []string{
	"pos", "driver", "team", "grid", "+/-", "laps", "time", "best lap", "pts",
}

// NewGrandPrixCommand creates the gp command.
func NewGrandPrixCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "gp ID YEAR",
		Short: "Race classification of a grand prix",
		Long: `Print the race classification of a grand prix, followed by who set the
pole position and the fastest lap.`,
		Example: `  f1stats gp australia 2023`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := parseYear(args[1])
			if err != nil {
				return err
			}
			return runGrandPrix(cmd, args[0], year)
		},
	}
}

func runGrandPrix(cmd *cobra.Command, grandPrixID string, year int) error {
	c, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	entries, err := c.Store.GrandPrixRace(cmd.Context(), grandPrixID, year)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		c.Println(noDataMessage)
		return nil
	}

	rows := make([][]any, 0, len(entries))
	var notes []string
	for _, e := range entries {
		finish := e.Finish
		if e.ReasonRetired != nil {
			finish += "*"
			notes = append(notes, fmt.Sprintf("* %s retired because of - %s", e.Driver, *e.ReasonRetired))
		}
		rows = append(rows, []any{
			annotateFinish(finish, e.IsPole, e.IsFastestLap), e.Driver, e.Team, e.Grid,
			e.PositionsGained, e.Laps, e.Time, e.BestLap, e.Points,
		})
	}

	if err := c.RenderTable(grandPrixHeaders, rows); err != nil {
		return err
	}
	if !c.plainText() {
		return nil
	}

	for _, e := range entries {
		if e.IsPole {
			notes = append(notes, "Pole position: "+e.Driver)
		}
	}
	for _, e := range entries {
		if e.IsFastestLap {
			lap := ""
			if e.BestLap != nil {
				lap = " - " + *e.BestLap
			}
			if e.BestLapNumber != nil {
				lap += fmt.Sprintf(" (lap %d)", *e.BestLapNumber)
			}
			notes = append(notes, "Fastest lap: "+e.Driver+lap)
		}
	}
	if len(notes) > 0 {
		c.Println()
	}
	for _, n := range notes {
		c.Println(n)
	}

	return nil
}
