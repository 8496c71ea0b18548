package commands

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/leapstack-labs/f1stats/internal/cli/output"
	"github.com/leapstack-labs/f1stats/internal/f1db"
	"github.com/leapstack-labs/f1stats/pkg/core"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// yearsPerRow is how many race years a line of circuit info holds.
const yearsPerRow = 8

// CircuitOptions holds options for the circuit command.
type CircuitOptions struct {
	BestLap        bool
	BestQualifying bool
	MostWins       bool
	MostPodiums    bool
	Reverse        bool
	Rows           int
}

// records returns the selected record tables in display order.
func (o *CircuitOptions) records() []f1db.Record {
	var out []f1db.Record
	if o.BestLap {
		out = append(out, f1db.RecordBestLap)
	}
	if o.BestQualifying {
		out = append(out, f1db.RecordBestQualifying)
	}
	if o.MostWins {
		out = append(out, f1db.RecordMostWins)
	}
	if o.MostPodiums {
		out = append(out, f1db.RecordMostPodiums)
	}
	return out
}

// NewCircuitCommand creates the circuit command.
func NewCircuitCommand() *cobra.Command {
	opts := &CircuitOptions{}

	cmd := &cobra.Command{
		Use:   "circuit ID",
		Short: "Circuit information and all-time records",
		Long: `Show information about a circuit, or its all-time records when a record
flag is given.`,
		Example: `  f1stats circuit monza
  f1stats circuit monza --best-lap -r 5
  f1stats circuit monza --most-wins -R -r -1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCircuit(cmd, args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.BestLap, "best-lap", false, "All-time best race laps")
	cmd.Flags().BoolVar(&opts.BestQualifying, "best-qualifying", false, "All-time best qualifying laps")
	cmd.Flags().BoolVar(&opts.MostWins, "most-wins", false, "Drivers with the most wins")
	cmd.Flags().BoolVar(&opts.MostPodiums, "most-podiums", false, "Drivers with the most podiums")
	cmd.Flags().BoolVarP(&opts.Reverse, "reverse", "R", false, "Reverse the record rows")
	cmd.Flags().IntVarP(&opts.Rows, "rows", "r", 15, "Number of rows to show, -1 means all")

	return cmd
}

func runCircuit(cmd *cobra.Command, circuitID string, opts *CircuitOptions) error {
	c, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	records := opts.records()
	if len(records) == 0 {
		return circuitInfo(cmd, c, circuitID)
	}

	for _, record := range records {
		res, err := c.Store.CircuitRecords(cmd.Context(), circuitID, record)
		if err != nil {
			return err
		}

		rows := res.Rows
		if opts.Rows >= 0 && opts.Rows < len(rows) {
			rows = rows[:opts.Rows]
		}
		if opts.Reverse {
			rows = slices.Clone(rows)
			slices.Reverse(rows)
		}

		if err := c.RenderTable(res.Columns, rows); err != nil {
			return err
		}
	}

	return nil
}

func circuitInfo(cmd *cobra.Command, c *CommandContext, circuitID string) error {
	circuit, err := c.Store.CircuitInfo(cmd.Context(), circuitID)
	if errors.Is(err, f1db.ErrNotFound) {
		c.Printf("Circuit: %q was not found\n", circuitID)
		return nil
	}
	if err != nil {
		return err
	}

	styles := output.NewStyles(c.Out)
	lower := cases.Lower(language.English)

	var b strings.Builder
	b.WriteString("\n")
	title := "* " + circuit.Name
	if circuit.FullName != nil {
		title += " (" + *circuit.FullName + ")"
	}
	b.WriteString(styles.Title.Render(title) + "\n")
	fmt.Fprintf(&b, "At: %s - %s\n", core.StringOr(circuit.CountryID, "?"), core.StringOr(circuit.PlaceName, "?"))
	fmt.Fprintf(&b, "Length: %skm, turns: %s\n", infoValue(circuit.Length), infoValue(circuit.Turns))
	fmt.Fprintf(&b, "Total races held: %d\n", circuit.TotalRacesHeld)
	for chunk := range slices.Chunk(circuit.Years, yearsPerRow) {
		b.WriteString("\t" + strings.Join(chunk, ",") + "\n")
	}
	if circuit.PreviousNames != nil && *circuit.PreviousNames != "" {
		fmt.Fprintf(&b, "Previous names: \n\t%s\n", *circuit.PreviousNames)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "Direction: %s\n", lower.String(core.StringOr(circuit.Direction, "unknown")))
	fmt.Fprintf(&b, "Type: %s\n\n", lower.String(core.StringOr(circuit.Type, "unknown")))
	b.WriteString("Coordinates: \n")
	fmt.Fprintf(&b, "%s,%s\n\n", infoValue(circuit.Latitude), infoValue(circuit.Longitude))

	_, err = fmt.Fprint(c.Out, b.String())
	return err
}

// infoValue formats an optional value the way tables do.
func infoValue(v any) string {
	s, ok := output.FormatValue(v)
	if !ok {
		return "?"
	}
	return s
}
