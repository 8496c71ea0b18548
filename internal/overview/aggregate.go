package overview

import (
	"math"

	"github.com/leapstack-labs/f1stats/internal/stats"
	"github.com/leapstack-labs/f1stats/pkg/core"
)

// samples collects the per-race values the derived statistics are computed from.
type samples struct {
	grid        []int
	finish      []int
	gained      []int
	pitStops    []int
	racePoints  []float64
	nonFinishes map[core.FinishStatus]*NonFinish
}

// Aggregate computes the season summary from results in round order and the
// season's raw pit-stop durations in milliseconds. It returns ErrNoData when
// results is empty.
func Aggregate(results []core.RaceResult, pitMillis []int64) (*Summary, error) {
	if len(results) == 0 {
		return nil, ErrNoData
	}

	s := &Summary{}
	smp := samples{nonFinishes: make(map[core.FinishStatus]*NonFinish, len(core.FinishStatuses))}
	for _, st := range core.FinishStatuses {
		smp.nonFinishes[st] = &NonFinish{Status: st}
	}

	winStreak := stats.NewStreak(stats.Win)
	podiumStreak := stats.NewStreak(stats.Podium)
	pointsStreak := stats.NewStreak(stats.Points)

	for i := range results {
		r := &results[i]

		winStreak.Update(r.FinishPosition)
		podiumStreak.Update(r.FinishPosition)
		pointsStreak.Update(r.FinishPosition)

		finish := core.IntOr(r.FinishPosition, 0)
		start := core.IntOr(r.StartPosition, 0)
		gained := core.IntOr(r.PositionsGained, 0)

		// Pit-lane starters have no grid position.
		if start == 0 && finish != 0 {
			start = finish + gained
		}

		if core.BoolOr(r.ReachedQ3, false) {
			s.Q3Appearances++
		} else {
			s.Q1Q2Elims++
		}

		if start != 0 {
			smp.grid = append(smp.grid, start)
		}
		if gained != 0 {
			smp.gained = append(smp.gained, gained)
		}
		if r.Penalty {
			s.Penalties++
		}
		if pits := core.IntOr(r.PitStops, 0); pits != 0 {
			smp.pitStops = append(smp.pitStops, pits)
		}

		if finish != 0 {
			smp.finish = append(smp.finish, finish)
			s.Finished++

			switch {
			case finish < start:
				s.Gains++
			case finish > start:
				s.Losses++
			}
			if finish == 1 {
				s.Wins++
			}
			if finish <= 3 {
				s.Podiums++
			}
			if finish <= 10 {
				s.ScoringFinishes++
			}
		} else {
			status, _ := core.ParseFinishStatus(string(r.FinishStatus))
			nf := smp.nonFinishes[status]
			nf.Count++
			nf.GrandsPrix = append(nf.GrandsPrix, r.GrandPrix)
			nf.Reasons = append(nf.Reasons, core.StringOr(r.ReasonRetired, ""))
		}

		s.Races++
		if core.BoolOr(r.IsPole, false) {
			s.Poles++
		}
		if core.BoolOr(r.IsFastestLap, false) {
			s.FastestLaps++
		}
		s.Points = r.PointsAfterRace
		s.TeamPoints = core.FloatOr(r.TeamPointsAfterRace, 0)
		s.Standing = r.StandingAfterRace
		smp.racePoints = append(smp.racePoints, core.FloatOr(r.PointsScored, 0))
	}

	s.Streaks = Streaks{
		Win:    winStreak.Longest(),
		Podium: podiumStreak.Longest(),
		Points: pointsStreak.Longest(),
	}
	for _, st := range core.FinishStatuses {
		s.NonFinishes = append(s.NonFinishes, *smp.nonFinishes[st])
	}

	derive(s, &smp)
	s.PitStops = stats.ClassifyPitStops(stats.MillisToSeconds(pitMillis))

	return s, nil
}

func derive(s *Summary, smp *samples) {
	races := float64(s.Races)

	s.NotFinished = s.Races - s.Finished
	s.NoChange = s.Finished - s.Gains - s.Losses

	s.FinishRate = float64(s.Finished) / races
	s.NotFinishedRate = float64(s.NotFinished) / races
	s.WinRate = float64(s.Wins) / races
	s.PodiumRate = float64(s.Podiums) / races
	s.ScoringRate = float64(s.ScoringFinishes) / races
	s.PoleRate = float64(s.Poles) / races
	s.FastestLapRate = float64(s.FastestLaps) / races
	s.Q1Q2ElimRate = float64(s.Q1Q2Elims) / races
	s.PointsPerRace = s.Points / races

	if s.Q3Appearances > 0 {
		s.PoleConversion = float64(s.Poles) / float64(s.Q3Appearances)
	}
	if s.ScoringFinishes > 0 {
		s.AvgPointsWhenScoring = s.Points / float64(s.ScoringFinishes)
	}
	if len(smp.pitStops) > 0 {
		s.AvgPitStops = stats.Mean(stats.Floats(smp.pitStops))
	}

	finish := stats.Floats(smp.finish)
	grid := stats.Floats(smp.grid)

	s.AvgFinish = optional(stats.Mean(finish))
	s.MedianFinish = optional(stats.Median(finish))
	s.ModeFinish = mode(smp.finish)
	s.AvgGrid = optional(stats.Mean(grid))
	s.MedianGrid = optional(stats.Median(grid))
	s.ModeGrid = mode(smp.grid)
	s.AvgGained = optional(stats.Mean(stats.Floats(smp.gained)))

	if s.Finished > 0 {
		fin := float64(s.Finished)
		s.PctGain = core.Ptr(float64(s.Gains) / fin)
		s.PctLoss = core.Ptr(float64(s.Losses) / fin)
		s.PctNoChange = core.Ptr(float64(s.NoChange) / fin)
	}

	if s.AvgFinish != nil && *s.AvgFinish != 0 {
		s.FinishPositionCV = optional(stats.StdDev(finish) / *s.AvgFinish)
	}
	s.PointsVolatility = optional(stats.StdDev(smp.racePoints))

	if s.TeamPoints != 0 {
		s.TeamPointsShare = core.Ptr(s.Points / s.TeamPoints)
	}
}

// optional maps NaN, the "not computable" result of the stats helpers, to nil.
func optional(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func mode(xs []int) *int {
	m, ok := stats.Mode(xs)
	if !ok {
		return nil
	}
	return &m
}
