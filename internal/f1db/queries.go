package f1db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/leapstack-labs/f1stats/pkg/core"
)

func raceResultFields(r *core.RaceResult) map[string]any {
	return map[string]any{
		"grand_prix":             &r.GrandPrix,
		"is_fastest_lap":         &r.IsFastestLap,
		"is_pole":                &r.IsPole,
		"reached_q3":             &r.ReachedQ3,
		"pit_stops":              &r.PitStops,
		"start_position":         &r.StartPosition,
		"finish_position":        &r.FinishPosition,
		"finish_status":          &r.FinishStatus,
		"reason_retired":         &r.ReasonRetired,
		"positions_gained":       &r.PositionsGained,
		"fastest_lap_gap":        &r.FastestLapGap,
		"laps":                   &r.Laps,
		"penalty":                &r.Penalty,
		"points_after_race":      &r.PointsAfterRace,
		"points_scored":          &r.PointsScored,
		"standing_after_race":    &r.StandingAfterRace,
		"team_points_after_race": &r.TeamPointsAfterRace,
	}
}

// DriverSeasonResults returns one result per race of the driver's season, in
// round order.
func (s *Store) DriverSeasonResults(ctx context.Context, driverID string, year int) ([]core.RaceResult, error) {
	return queryAll(ctx, s, "driver-season-overview", raceResultFields, driverSeasonArgs(driverID, year)...)
}

// DriverPitStopDurations returns the driver's pit-stop durations for the
// season in milliseconds. Stops without a recorded duration are skipped.
func (s *Store) DriverPitStopDurations(ctx context.Context, driverID string, year int) ([]int64, error) {
	rows, err := s.queryScript(ctx, "driver-pit-durations", driverSeasonArgs(driverID, year)...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []int64
	for rows.Next() {
		var ms sql.NullInt64
		if err := rows.Scan(&ms); err != nil {
			return nil, fmt.Errorf("failed to scan pit stop duration: %w", err)
		}
		if ms.Valid {
			out = append(out, ms.Int64)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read pit stop durations: %w", err)
	}
	return out, nil
}

// RaceEntry is one driver's race: a row of a driver's season or of a grand
// prix classification.
type RaceEntry struct {
	Round           int
	GrandPrix       string
	Driver          string
	Team            string
	Grid            *int
	Finish          string
	PositionsGained *int
	Laps            *int
	Time            *string
	BestLap         *string
	BestLapNumber   *int
	FastestLapGap   *string
	Points          *float64
	Standing        *int
	StandingGained  *int
	SeasonPoints    *float64
	IsPole          bool
	IsFastestLap    bool
	ReasonRetired   *string
}

func raceEntryFields(e *RaceEntry) map[string]any {
	return map[string]any{
		"round":            &e.Round,
		"grand_prix":       &e.GrandPrix,
		"driver":           &e.Driver,
		"team":             &e.Team,
		"grid":             &e.Grid,
		"finish":           &e.Finish,
		"positions_gained": &e.PositionsGained,
		"laps":             &e.Laps,
		"time":             &e.Time,
		"best_lap":         &e.BestLap,
		"best_lap_number":  &e.BestLapNumber,
		"fastest_lap_gap":  &e.FastestLapGap,
		"points":           &e.Points,
		"standing":         &e.Standing,
		"standing_gained":  &e.StandingGained,
		"season_points":    &e.SeasonPoints,
		"is_pole":          &e.IsPole,
		"is_fastest_lap":   &e.IsFastestLap,
		"reason_retired":   &e.ReasonRetired,
	}
}

// DriverRaces returns the driver's races of a season in round order.
func (s *Store) DriverRaces(ctx context.Context, driverID string, year int) ([]RaceEntry, error) {
	return queryAll(ctx, s, "driver-races", raceEntryFields, driverSeasonArgs(driverID, year)...)
}

// GrandPrixRace returns the race classification of a grand prix.
func (s *Store) GrandPrixRace(ctx context.Context, grandPrixID string, year int) ([]RaceEntry, error) {
	return queryAll(ctx, s, "gp-race", raceEntryFields, sql.Named("id", grandPrixID), sql.Named("year", year))
}

// PitStop is one pit stop of a driver.
type PitStop struct {
	Round     int
	GrandPrix string
	Stop      *int
	Lap       *int
	Time      *string
}

// DriverPitStops returns the driver's pit stops of a season ordered by round
// and stop number.
func (s *Store) DriverPitStops(ctx context.Context, driverID string, year int) ([]PitStop, error) {
	return queryAll(ctx, s, "driver-pits", func(p *PitStop) map[string]any {
		return map[string]any{
			"round":      &p.Round,
			"grand_prix": &p.GrandPrix,
			"stop":       &p.Stop,
			"lap":        &p.Lap,
			"time":       &p.Time,
		}
	}, driverSeasonArgs(driverID, year)...)
}

// DriverQualifying returns the driver's qualifying sessions of a season.
func (s *Store) DriverQualifying(ctx context.Context, driverID string, year int) (*Result, error) {
	return s.RunScript(ctx, "driver-qualifying", driverSeasonArgs(driverID, year)...)
}

// DriverSprints returns the driver's sprint races of a season.
func (s *Store) DriverSprints(ctx context.Context, driverID string, year int) (*Result, error) {
	return s.RunScript(ctx, "driver-sprints", driverSeasonArgs(driverID, year)...)
}

// GrandPrixRound is a scheduled race of a season.
type GrandPrixRound struct {
	Round        int
	ID           string
	Abbreviation string
}

// SeasonGrandsPrix returns the races of a season in round order.
func (s *Store) SeasonGrandsPrix(ctx context.Context, year int) ([]GrandPrixRound, error) {
	return queryAll(ctx, s, "season-grands-prix", func(g *GrandPrixRound) map[string]any {
		return map[string]any{
			"round":        &g.Round,
			"id":           &g.ID,
			"abbreviation": &g.Abbreviation,
		}
	}, sql.Named("year", year))
}

// ChampionshipEntry is one race result of a season with the final standings
// of the driver and the team.
type ChampionshipEntry struct {
	Abbreviation string
	Driver       string
	Finish       string
	Points       *float64
	IsPole       bool
	IsFastestLap bool
	Team         string
	TeamPoints   *float64
}

// Championship returns every race result of a season, grouped by driver in
// final standing order.
func (s *Store) Championship(ctx context.Context, year int) ([]ChampionshipEntry, error) {
	return queryAll(ctx, s, "championship", func(e *ChampionshipEntry) map[string]any {
		return map[string]any{
			"abbreviation":   &e.Abbreviation,
			"driver":         &e.Driver,
			"finish":         &e.Finish,
			"points":         &e.Points,
			"is_pole":        &e.IsPole,
			"is_fastest_lap": &e.IsFastestLap,
			"team":           &e.Team,
			"team_points":    &e.TeamPoints,
		}
	}, sql.Named("year", year))
}

// Circuit describes a circuit and the years it hosted a race.
type Circuit struct {
	ID             string
	Name           string
	FullName       *string
	PreviousNames  *string
	Type           *string
	Direction      *string
	PlaceName      *string
	CountryID      *string
	Latitude       *float64
	Longitude      *float64
	Length         *float64
	Turns          *int
	TotalRacesHeld int
	Years          []string
}

// CircuitInfo returns the circuit with the given id, or ErrNotFound.
func (s *Store) CircuitInfo(ctx context.Context, circuitID string) (*Circuit, error) {
	var years *string
	found, err := queryAll(ctx, s, "circuit-info", func(c *Circuit) map[string]any {
		return map[string]any{
			"id":               &c.ID,
			"name":             &c.Name,
			"full_name":        &c.FullName,
			"previous_names":   &c.PreviousNames,
			"type":             &c.Type,
			"direction":        &c.Direction,
			"place_name":       &c.PlaceName,
			"country_id":       &c.CountryID,
			"latitude":         &c.Latitude,
			"longitude":        &c.Longitude,
			"length":           &c.Length,
			"turns":            &c.Turns,
			"total_races_held": &c.TotalRacesHeld,
			"years":            &years,
		}
	}, sql.Named("id", circuitID))
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, fmt.Errorf("circuit %q: %w", circuitID, ErrNotFound)
	}

	c := found[0]
	if years != nil && *years != "" {
		c.Years = strings.Split(*years, ",")
	}
	return &c, nil
}

// Record is a circuit record table.
type Record string

// Circuit records.
const (
	RecordBestLap        Record = "best-lap"
	RecordBestQualifying Record = "best-qualifying"
	RecordMostWins       Record = "most-wins"
	RecordMostPodiums    Record = "most-podiums"
)

// CircuitRecords returns a record table of a circuit, best first.
func (s *Store) CircuitRecords(ctx context.Context, circuitID string, record Record) (*Result, error) {
	switch record {
	case RecordBestLap, RecordBestQualifying, RecordMostWins, RecordMostPodiums:
	default:
		return nil, fmt.Errorf("unknown circuit record %q", record)
	}
	return s.RunScript(ctx, string(record), sql.Named("id", circuitID))
}
