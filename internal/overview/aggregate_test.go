package overview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/f1stats/pkg/core"
)

func finished(gp string, start, finish int, after float64) core.RaceResult {
	return core.RaceResult{
		GrandPrix:       gp,
		StartPosition:   core.Ptr(start),
		FinishPosition:  core.Ptr(finish),
		PositionsGained: core.Ptr(start - finish),
		PointsAfterRace: after,
	}
}

func retired(gp string, status core.FinishStatus, reason string, after float64) core.RaceResult {
	r := core.RaceResult{
		GrandPrix:       gp,
		StartPosition:   core.Ptr(5),
		FinishStatus:    status,
		PointsAfterRace: after,
	}
	if reason != "" {
		r.ReasonRetired = core.Ptr(reason)
	}
	return r
}

func season() []core.RaceResult {
	races := []core.RaceResult{
		finished("bahrain", 1, 1, 25),
		finished("saudi-arabia", 2, 1, 50),
		finished("australia", 3, 2, 68),
		retired("japan", core.StatusDNF, "Engine", 68),
		finished("china", 4, 8, 72),
		retired("miami", "", "", 72),
		finished("emilia-romagna", 6, 12, 72),
		retired("monaco", core.StatusDSQ, "Fuel flow", 72),
	}
	races[0].IsPole = core.Ptr(true)
	races[0].ReachedQ3 = core.Ptr(true)
	races[0].IsFastestLap = core.Ptr(true)
	races[0].PointsScored = core.Ptr(25.0)
	races[1].ReachedQ3 = core.Ptr(true)
	races[1].PointsScored = core.Ptr(25.0)
	races[2].ReachedQ3 = core.Ptr(true)
	races[2].PointsScored = core.Ptr(18.0)
	races[4].PointsScored = core.Ptr(4.0)
	for i := range races {
		races[i].TeamPointsAfterRace = core.Ptr(races[i].PointsAfterRace * 2)
		races[i].StandingAfterRace = 2
		races[i].PitStops = core.Ptr(2)
	}
	races[3].Penalty = true
	return races
}

func TestAggregate_Empty(t *testing.T) {
	s, err := Aggregate(nil, []int64{20000})
	require.ErrorIs(t, err, ErrNoData)
	assert.Nil(t, s)
}

func TestAggregate_Season(t *testing.T) {
	s, err := Aggregate(season(), nil)
	require.NoError(t, err)

	assert.Equal(t, 8, s.Races)
	assert.Equal(t, 5, s.Finished)
	assert.Equal(t, 3, s.NotFinished)
	assert.Equal(t, 2, s.Wins)
	assert.Equal(t, 3, s.Podiums)
	assert.Equal(t, 4, s.ScoringFinishes)
	assert.Equal(t, 1, s.Poles)
	assert.Equal(t, 1, s.FastestLaps)
	assert.Equal(t, 1, s.Penalties)
	assert.Equal(t, 3, s.Q3Appearances)
	assert.Equal(t, 5, s.Q1Q2Elims)

	assert.Equal(t, 2, s.Gains)
	assert.Equal(t, 2, s.Losses)
	assert.Equal(t, 1, s.NoChange)

	assert.InDelta(t, 72.0, s.Points, 1e-9)
	assert.InDelta(t, 144.0, s.TeamPoints, 1e-9)
	assert.Equal(t, 2, s.Standing)
	require.NotNil(t, s.TeamPointsShare)
	assert.InDelta(t, 0.5, *s.TeamPointsShare, 1e-9)

	assert.InDelta(t, 5.0/8, s.FinishRate, 1e-9)
	assert.InDelta(t, 1.0/3, s.PoleConversion, 1e-9)
	assert.InDelta(t, 72.0/4, s.AvgPointsWhenScoring, 1e-9)
	assert.InDelta(t, 2.0, s.AvgPitStops, 1e-9)

	require.NotNil(t, s.AvgFinish)
	assert.InDelta(t, 24.0/5, *s.AvgFinish, 1e-9)
	require.NotNil(t, s.MedianFinish)
	assert.InDelta(t, 2.0, *s.MedianFinish, 1e-9)
	require.NotNil(t, s.ModeFinish)
	assert.Equal(t, 1, *s.ModeFinish)
	require.NotNil(t, s.ModeGrid)
	assert.Equal(t, 5, *s.ModeGrid)

	assert.Equal(t, Streaks{Win: 2, Podium: 3, Points: 3}, s.Streaks)

	require.Len(t, s.NonFinishes, 4)
	assert.Equal(t, core.StatusDNF, s.NonFinishes[0].Status)
	assert.Equal(t, 2, s.NonFinishes[0].Count)
	assert.Equal(t, []string{"japan", "miami"}, s.NonFinishes[0].GrandsPrix)
	assert.Equal(t, []string{"Engine", ""}, s.NonFinishes[0].Reasons)
	assert.Equal(t, 1, s.NonFinishes[2].Count)
	assert.Equal(t, []string{"monaco"}, s.NonFinishes[2].GrandsPrix)

	assert.False(t, s.PitStops.HasData())
}

func TestAggregate_Invariants(t *testing.T) {
	s, err := Aggregate(season(), nil)
	require.NoError(t, err)

	assert.LessOrEqual(t, s.Wins, s.Podiums)
	assert.LessOrEqual(t, s.Podiums, s.ScoringFinishes)
	assert.LessOrEqual(t, s.ScoringFinishes, s.Finished)
	assert.LessOrEqual(t, s.Finished, s.Races)
	assert.InDelta(t, 1.0, s.FinishRate+s.NotFinishedRate, 1e-9)
	assert.Equal(t, s.Races, s.Q3Appearances+s.Q1Q2Elims)

	nonFinished := 0
	for _, nf := range s.NonFinishes {
		nonFinished += nf.Count
		assert.Len(t, nf.GrandsPrix, nf.Count)
		assert.Len(t, nf.Reasons, nf.Count)
	}
	assert.Equal(t, s.NotFinished, nonFinished)
}

func TestAggregate_SingleRaceWinFromPole(t *testing.T) {
	r := finished("bahrain", 1, 1, 26)
	r.IsPole = core.Ptr(true)
	r.IsFastestLap = core.Ptr(true)
	r.ReachedQ3 = core.Ptr(true)
	r.PointsScored = core.Ptr(26.0)
	r.TeamPointsAfterRace = core.Ptr(44.0)
	r.PitStops = core.Ptr(1)

	s, err := Aggregate([]core.RaceResult{r}, []int64{20000})
	require.NoError(t, err)

	assert.Equal(t, 1, s.Wins)
	assert.Equal(t, 1, s.Poles)
	assert.Equal(t, 1, s.FastestLaps)
	assert.InDelta(t, 1.0, s.WinRate, 1e-9)
	assert.InDelta(t, 1.0, s.PoleRate, 1e-9)
	assert.InDelta(t, 1.0, s.FastestLapRate, 1e-9)
	assert.InDelta(t, 1.0, s.PoleConversion, 1e-9)
	assert.Equal(t, Streaks{Win: 1, Podium: 1, Points: 1}, s.Streaks)

	assert.InDelta(t, 1.0, s.AvgPitStops, 1e-9)
	assert.Equal(t, 1, s.PitStops.Count)
	assert.InDelta(t, 20.0, s.PitStops.Mean, 1e-9)
	assert.Equal(t, 0, s.PitStops.Problematic)

	// A single race has no spread.
	assert.Nil(t, s.PointsVolatility)
	assert.Nil(t, s.FinishPositionCV)
	assert.Nil(t, s.AvgGained)
	require.NotNil(t, s.PctNoChange)
	assert.InDelta(t, 1.0, *s.PctNoChange, 1e-9)
}

func TestAggregate_PitLaneStart(t *testing.T) {
	r := core.RaceResult{
		GrandPrix:       "brazil",
		FinishPosition:  core.Ptr(5),
		PositionsGained: core.Ptr(15),
	}

	s, err := Aggregate([]core.RaceResult{r}, nil)
	require.NoError(t, err)

	require.NotNil(t, s.AvgGrid)
	assert.InDelta(t, 20.0, *s.AvgGrid, 1e-9)
	assert.Equal(t, 1, s.Gains)
	require.NotNil(t, s.AvgGained)
	assert.InDelta(t, 15.0, *s.AvgGained, 1e-9)
}

func TestAggregate_NothingFinished(t *testing.T) {
	results := []core.RaceResult{
		retired("bahrain", core.StatusDNS, "", 0),
		retired("jeddah", core.StatusNC, "", 0),
	}

	s, err := Aggregate(results, nil)
	require.NoError(t, err)

	assert.Equal(t, 0, s.Finished)
	assert.Nil(t, s.PctGain)
	assert.Nil(t, s.PctLoss)
	assert.Nil(t, s.PctNoChange)
	assert.Nil(t, s.AvgFinish)
	assert.Nil(t, s.MedianFinish)
	assert.Nil(t, s.ModeFinish)
	assert.Nil(t, s.FinishPositionCV)
	assert.Nil(t, s.TeamPointsShare)
	assert.InDelta(t, 0.0, s.AvgPointsWhenScoring, 1e-9)
	require.NotNil(t, s.PointsVolatility)
	assert.InDelta(t, 0.0, *s.PointsVolatility, 1e-9)
	assert.InDelta(t, 1.0, s.NotFinishedRate, 1e-9)
	assert.Equal(t, Streaks{}, s.Streaks)
}
