// Package overview builds the season overview of a driver: a single forward
// pass over the season's race results that produces totals, rates and
// distribution statistics, plus the pit-stop outlier analysis.
package overview

import (
	"errors"

	"github.com/leapstack-labs/f1stats/internal/stats"
	"github.com/leapstack-labs/f1stats/pkg/core"
)

// ErrNoData is returned when a driver has no race results for a season.
var ErrNoData = errors.New("no race results found")

// Summary is the season overview of one driver. Optional statistics are nil
// when their sample is empty or their denominator is zero.
type Summary struct {
	DriverID string `json:"driver_id" yaml:"driver_id"`
	Year     int    `json:"year" yaml:"year"`

	Races           int `json:"races" yaml:"races"`
	Finished        int `json:"finished" yaml:"finished"`
	NotFinished     int `json:"not_finished" yaml:"not_finished"`
	Wins            int `json:"wins" yaml:"wins"`
	Podiums         int `json:"podiums" yaml:"podiums"`
	ScoringFinishes int `json:"scoring_finishes" yaml:"scoring_finishes"`
	Poles           int `json:"poles" yaml:"poles"`
	FastestLaps     int `json:"fastest_laps" yaml:"fastest_laps"`
	Penalties       int `json:"penalties" yaml:"penalties"`
	Q3Appearances   int `json:"q3_appearances" yaml:"q3_appearances"`
	Q1Q2Elims       int `json:"q1_q2_eliminations" yaml:"q1_q2_eliminations"`
	Gains           int `json:"gains" yaml:"gains"`
	Losses          int `json:"losses" yaml:"losses"`
	NoChange        int `json:"no_change" yaml:"no_change"`

	// Final season values, taken from the last race.
	Points     float64 `json:"points" yaml:"points"`
	TeamPoints float64 `json:"team_points" yaml:"team_points"`
	Standing   int     `json:"standing" yaml:"standing"`

	FinishRate           float64 `json:"finish_rate" yaml:"finish_rate"`
	NotFinishedRate      float64 `json:"not_finished_rate" yaml:"not_finished_rate"`
	WinRate              float64 `json:"win_rate" yaml:"win_rate"`
	PodiumRate           float64 `json:"podium_rate" yaml:"podium_rate"`
	ScoringRate          float64 `json:"scoring_rate" yaml:"scoring_rate"`
	PoleRate             float64 `json:"pole_rate" yaml:"pole_rate"`
	FastestLapRate       float64 `json:"fastest_lap_rate" yaml:"fastest_lap_rate"`
	Q1Q2ElimRate         float64 `json:"q1_q2_elimination_rate" yaml:"q1_q2_elimination_rate"`
	PoleConversion       float64 `json:"pole_conversion" yaml:"pole_conversion"`
	PointsPerRace        float64 `json:"points_per_race" yaml:"points_per_race"`
	AvgPointsWhenScoring float64 `json:"avg_points_when_scoring" yaml:"avg_points_when_scoring"`
	AvgPitStops          float64 `json:"avg_pit_stops" yaml:"avg_pit_stops"`

	AvgFinish    *float64 `json:"avg_finish_position" yaml:"avg_finish_position"`
	MedianFinish *float64 `json:"median_finish_position" yaml:"median_finish_position"`
	ModeFinish   *int     `json:"mode_finish_position" yaml:"mode_finish_position"`
	AvgGrid      *float64 `json:"avg_grid_position" yaml:"avg_grid_position"`
	MedianGrid   *float64 `json:"median_grid_position" yaml:"median_grid_position"`
	ModeGrid     *int     `json:"mode_grid_position" yaml:"mode_grid_position"`
	AvgGained    *float64 `json:"avg_positions_gained" yaml:"avg_positions_gained"`

	PctGain     *float64 `json:"pct_gain" yaml:"pct_gain"`
	PctLoss     *float64 `json:"pct_loss" yaml:"pct_loss"`
	PctNoChange *float64 `json:"pct_no_change" yaml:"pct_no_change"`

	FinishPositionCV *float64 `json:"finish_position_cv" yaml:"finish_position_cv"`
	PointsVolatility *float64 `json:"points_volatility" yaml:"points_volatility"`
	TeamPointsShare  *float64 `json:"team_points_share" yaml:"team_points_share"`

	Streaks     Streaks               `json:"streaks" yaml:"streaks"`
	PitStops    stats.PitStopAnalysis `json:"pit_stops" yaml:"pit_stops"`
	NonFinishes []NonFinish           `json:"non_finishes" yaml:"non_finishes"`
}

// Streaks holds the longest runs of the season.
type Streaks struct {
	Win    int `json:"win" yaml:"win"`
	Podium int `json:"podium" yaml:"podium"`
	Points int `json:"points" yaml:"points"`
}

// NonFinish groups the races that ended with one status. GrandsPrix and
// Reasons are index-aligned; a reason is empty when none was recorded.
type NonFinish struct {
	Status     core.FinishStatus `json:"status" yaml:"status"`
	Count      int               `json:"count" yaml:"count"`
	GrandsPrix []string          `json:"grands_prix" yaml:"grands_prix"`
	Reasons    []string          `json:"reasons" yaml:"reasons"`
}
