package overview

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// ReportOptions controls the text report.
type ReportOptions struct {
	// NoColor disables styling even on a colour terminal.
	NoColor bool
}

type reportStyles struct {
	title   lipgloss.Style
	section lipgloss.Style
}

func newReportStyles(w io.Writer, opts ReportOptions) reportStyles {
	r := lipgloss.NewRenderer(w)
	if opts.NoColor || termenv.EnvNoColor() {
		r.SetColorProfile(termenv.Ascii)
	}
	return reportStyles{
		title:   r.NewStyle().Bold(true),
		section: r.NewStyle().Bold(true),
	}
}

// WriteReport writes the human-readable season overview.
func WriteReport(w io.Writer, s *Summary, opts ReportOptions) error {
	st := newReportStyles(w, opts)
	var b strings.Builder

	line := func(format string, args ...any) {
		fmt.Fprintf(&b, format, args...)
		b.WriteByte('\n')
	}
	section := func(title string) {
		b.WriteString(st.section.Render(title))
		b.WriteByte('\n')
	}

	b.WriteByte('\n')
	b.WriteString(st.title.Render(fmt.Sprintf("Season overview: %s, %d", s.DriverID, s.Year)))
	b.WriteByte('\n')
	line("%s", strings.Repeat("-", 50))
	line("Races: %d  Finished: %d  Not finished/started: %d  (rate: %s)\n",
		s.Races, s.Finished, s.NotFinished, pct(s.NotFinishedRate))

	section("Points")
	line("- Total pts: %s pts (%s place)", num(s.Points), ordinal(s.Standing))
	line("- Team pts share: %s", optPct(s.TeamPointsShare, 2))
	line("- Pts per race: %.2f pts", s.PointsPerRace)
	line("- Avg pts when scoring: %.2f pts", s.AvgPointsWhenScoring)
	line("- Points volatility (std): %s pts\n", optFloat(s.PointsVolatility, 2))

	section("Qualifying & starts")
	line("- Poles: %d  (Pole rate: %s)", s.Poles, pct(s.PoleRate))
	line("- Q1, Q2 eliminations: %d (rate: %s)", s.Q1Q2Elims, pct(s.Q1Q2ElimRate))
	if s.Q3Appearances > 0 {
		line("- Q3 appearances: %d", s.Q3Appearances)
		line("- Pole conversion (poles / Q3s): %s", pct(s.PoleConversion))
	}
	line("- Avg grid position: %s", optFloat(s.AvgGrid, 2))
	line("- Median grid position: %s", optFloat(s.MedianGrid, 2))
	line("- Most common grid position: %s", optInt(s.ModeGrid))
	line("- Penalties: %d\n", s.Penalties)

	section("Results & rates")
	line("- Wins: %d  (Win rate: %s)", s.Wins, pct(s.WinRate))
	line("- Podiums: %d  (Podium rate: %s)", s.Podiums, pct(s.PodiumRate))
	line("- Scoring finishes: %d  (Scoring rate: %s)", s.ScoringFinishes, pct(s.ScoringRate))
	line("- Fastest laps: %d  (Fastest-lap rate: %s)", s.FastestLaps, pct(s.FastestLapRate))
	line("- Finish rate: %s", pct(s.FinishRate))
	line("- Avg finish position: %s", optFloat(s.AvgFinish, 2))
	line("- Median finish position: %s", optFloat(s.MedianFinish, 2))
	line("- Most common finish position: %s", optInt(s.ModeFinish))
	line("- Finish position CV (coefficient of variation): %s\n", optFloat(s.FinishPositionCV, 3))

	section("Pit stops & strategy")
	line("- Avg pit stops per race: %.2f", s.AvgPitStops)
	if s.PitStops.HasData() {
		line("- Avg pit stop time: %.2fs (median %.2fs, IQR %.2fs)", s.PitStops.Mean, s.PitStops.Median, s.PitStops.IQR)
		line("- Slow pit stops: %d  (> %.2fs)", s.PitStops.Slow, s.PitStops.SlowThreshold)
		line("- Problematic pit stops: %d  (> %.2fs)\n", s.PitStops.Problematic, s.PitStops.ProblematicThreshold)
	} else {
		line("- Avg pit stop time: no pit data\n")
	}

	section("Not started/finished/classified, disqualified")
	for _, nf := range sortedNonFinishes(s.NonFinishes) {
		line("- %s: %d (%s)", nf.Status, nf.Count, pct(float64(nf.Count)/float64(s.Races)))
		for i := range nf.GrandsPrix {
			reason := nf.Reasons[i]
			if reason == "" {
				reason = "None"
			}
			line("  * %s - %s", nf.GrandsPrix[i], reason)
		}
	}
	b.WriteByte('\n')

	section("Race progress")
	line("- Avg positions gained per race: %s", optFloat(s.AvgGained, 2))
	line("- %% races net gain: %s", optPct(s.PctGain, 1))
	line("- %% races net loss: %s", optPct(s.PctLoss, 1))
	line("- %% races no change: %s", optPct(s.PctNoChange, 1))
	line("- Longest podium streak: %d", s.Streaks.Podium)
	line("- Longest win streak: %d", s.Streaks.Win)
	line("- Longest points streak: %d", s.Streaks.Points)

	_, err := io.WriteString(w, b.String())
	return err
}

// sortedNonFinishes orders the breakdown by count, most frequent first.
// Equal counts keep their status order.
func sortedNonFinishes(nfs []NonFinish) []NonFinish {
	out := slices.Clone(nfs)
	slices.SortStableFunc(out, func(a, b NonFinish) int {
		return b.Count - a.Count
	})
	return out
}

func pct(v float64) string {
	return strconv.FormatFloat(v*100, 'f', 1, 64) + "%"
}

func optPct(v *float64, prec int) string {
	if v == nil {
		return "N/A"
	}
	return strconv.FormatFloat(*v*100, 'f', prec, 64) + "%"
}

func optFloat(v *float64, prec int) string {
	if v == nil {
		return "N/A"
	}
	return strconv.FormatFloat(*v, 'f', prec, 64)
}

func optInt(v *int) string {
	if v == nil {
		return "N/A"
	}
	return strconv.Itoa(*v)
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func ordinal(n int) string {
	suffix := "th"
	switch {
	case n%100 >= 11 && n%100 <= 13:
	case n%10 == 1:
		suffix = "st"
	case n%10 == 2:
		suffix = "nd"
	case n%10 == 3:
		suffix = "rd"
	}
	return strconv.Itoa(n) + suffix
}
