package core

import "strings"

// =============================================================================
// FinishStatus
// =============================================================================

// FinishStatus classifies a race entry that has no finishing position.
type FinishStatus string

// Non-finish statuses as recorded in the f1db position_text column.
const (
	// StatusDNF means the driver started but did not finish.
	StatusDNF FinishStatus = "DNF"
	// StatusDNS means the driver did not start.
	StatusDNS FinishStatus = "DNS"
	// StatusDSQ means the driver was disqualified.
	StatusDSQ FinishStatus = "DSQ"
	// StatusNC means the driver finished but was not classified.
	StatusNC FinishStatus = "NC"
)

// FinishStatuses lists every non-finish status in report order.
var FinishStatuses = []FinishStatus{StatusDNF, StatusDNS, StatusDSQ, StatusNC}

// String returns the status text.
func (s FinishStatus) String() string {
	return string(s)
}

// ParseFinishStatus converts position text to a FinishStatus.
// Returns the status and true if recognised, or StatusDNF and false otherwise.
func ParseFinishStatus(s string) (FinishStatus, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DNF":
		return StatusDNF, true
	case "DNS":
		return StatusDNS, true
	case "DSQ":
		return StatusDSQ, true
	case "NC":
		return StatusNC, true
	default:
		return StatusDNF, false
	}
}

// =============================================================================
// RaceResult
// =============================================================================

// RaceResult is one race of a driver's season, as read from the race_data,
// standings and qualifying tables. Results of a season are always handled in
// round order.
//
// A nil pointer means the value was not recorded. When read through the
// default helpers the policy is:
//   - IsFastestLap, IsPole, ReachedQ3: false (older seasons have no Q1/Q2/Q3)
//   - PointsScored, TeamPointsAfterRace: 0
//   - StartPosition, FinishPosition, PositionsGained, PitStops: absent, never
//     defaulted; callers test them explicitly.
type RaceResult struct {
	GrandPrix           string       `json:"grand_prix"`
	IsFastestLap        *bool        `json:"is_fastest_lap"`
	IsPole              *bool        `json:"is_pole"`
	ReachedQ3           *bool        `json:"reached_q3"`
	PitStops            *int         `json:"pit_stops"`
	StartPosition       *int         `json:"start_position"`
	FinishPosition      *int         `json:"finish_position"`
	FinishStatus        FinishStatus `json:"finish_status"`
	ReasonRetired       *string      `json:"reason_retired"`
	PositionsGained     *int         `json:"positions_gained"`
	FastestLapGap       *string      `json:"fastest_lap_gap"`
	Laps                int          `json:"laps"`
	Penalty             bool         `json:"penalty"`
	PointsAfterRace     float64      `json:"points_after_race"`
	PointsScored        *float64     `json:"points_scored"`
	StandingAfterRace   int          `json:"standing_after_race"`
	TeamPointsAfterRace *float64     `json:"team_points_after_race"`
}

// Finished reports whether the race has a classified finishing position.
func (r *RaceResult) Finished() bool {
	return IntOr(r.FinishPosition, 0) != 0
}
