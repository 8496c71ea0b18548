package testutil

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/f1stats/internal/f1db"
)

// Fixture ids.
const (
	FixtureYear         = 2023
	FixtureDriver       = "max_verstappen"
	FixtureRival        = "lewis_hamilton"
	FixtureCircuit      = "bahrain"
	FixtureEmptyCircuit = "monaco"
	FixtureGP           = "australia"
)

// fixtureSQL is a three-round season with three drivers. The leader after
// round two loses the title lead with a retirement in round three.
const fixtureSQL = `
INSERT INTO country (id, alpha2_code, alpha3_code, name) VALUES
    ('bahrain', 'BH', 'BHR', 'Bahrain'),
    ('saudi-arabia', 'SA', 'SAU', 'Saudi Arabia'),
    ('australia', 'AU', 'AUS', 'Australia'),
    ('monaco', 'MC', 'MCO', 'Monaco');

INSERT INTO driver (id, name, first_name, last_name, full_name, abbreviation) VALUES
    ('max_verstappen', 'Max Verstappen', 'Max', 'Verstappen', 'Max Emilian Verstappen', 'VER'),
    ('lewis_hamilton', 'Lewis Hamilton', 'Lewis', 'Hamilton', 'Lewis Carl Davidson Hamilton', 'HAM'),
    ('charles_leclerc', 'Charles Leclerc', 'Charles', 'Leclerc', 'Charles Marc Hervé Perceval Leclerc', 'LEC');

INSERT INTO constructor (id, name, full_name) VALUES
    ('red_bull', 'Red Bull', 'Red Bull Racing'),
    ('mercedes', 'Mercedes', 'Mercedes-AMG Petronas'),
    ('ferrari', 'Ferrari', 'Scuderia Ferrari');

INSERT INTO circuit (id, name, full_name, previous_names, type, direction, place_name, country_id, latitude, longitude, length, turns, total_races_held) VALUES
    ('bahrain', 'Bahrain', 'Bahrain International Circuit', NULL, 'RACE', 'CLOCKWISE', 'Sakhir', 'bahrain', 26.0325, 50.5106, 5.412, 15, 2),
    ('jeddah', 'Jeddah', 'Jeddah Corniche Circuit', NULL, 'STREET', 'ANTI_CLOCKWISE', 'Jeddah', 'saudi-arabia', 21.6319, 39.1044, 6.174, 27, 1),
    ('melbourne', 'Melbourne', 'Albert Park Circuit', 'Albert Park', 'STREET', 'CLOCKWISE', 'Melbourne', 'australia', -37.8497, 144.968, 5.278, 14, 1),
    ('monaco', 'Monaco', 'Circuit de Monaco', NULL, 'STREET', 'CLOCKWISE', 'Monte Carlo', 'monaco', 43.7347, 7.4206, 3.337, 19, 0);

INSERT INTO grand_prix (id, name, full_name, short_name, abbreviation, country_id) VALUES
    ('bahrain', 'Bahrain', 'Bahrain Grand Prix', 'Bahrain', 'BHR', 'bahrain'),
    ('saudi-arabia', 'Saudi Arabia', 'Saudi Arabian Grand Prix', 'Saudi Arabia', 'KSA', 'saudi-arabia'),
    ('australia', 'Australia', 'Australian Grand Prix', 'Australia', 'AUS', 'australia');

INSERT INTO race (id, year, round, date, grand_prix_id, official_name, circuit_id, laps) VALUES
    (1, 2022, 1, '2022-03-20', 'bahrain', 'Formula 1 Gulf Air Bahrain Grand Prix 2022', 'bahrain', 57),
    (2, 2023, 1, '2023-03-05', 'bahrain', 'Formula 1 Gulf Air Bahrain Grand Prix 2023', 'bahrain', 57),
    (3, 2023, 2, '2023-03-19', 'saudi-arabia', 'Formula 1 STC Saudi Arabian Grand Prix 2023', 'jeddah', 50),
    (4, 2023, 3, '2023-04-02', 'australia', 'Formula 1 Rolex Australian Grand Prix 2023', 'melbourne', 58);

INSERT INTO race_data (race_id, type, position_display_order, position_number, position_text, driver_id, constructor_id,
    race_laps, race_time, race_time_penalty, race_reason_retired, race_points, race_pole_position,
    race_grid_position_number, race_positions_gained, race_pit_stops, race_fastest_lap) VALUES
    (1, 'RACE_RESULT', 1, 1, '1', 'lewis_hamilton', 'mercedes', 57, '1:37:33.584', NULL, NULL, 25, 1, 1, 0, 2, 1),
    (2, 'RACE_RESULT', 1, 1, '1', 'max_verstappen', 'red_bull', 57, '1:33:56.736', NULL, NULL, 25, 1, 1, 0, 2, 0),
    (2, 'RACE_RESULT', 2, 5, '5', 'lewis_hamilton', 'mercedes', 57, '+50.977', NULL, NULL, 10, 0, 7, 2, 2, 1),
    (2, 'RACE_RESULT', 3, NULL, 'DNF', 'charles_leclerc', 'ferrari', 39, NULL, NULL, 'Power unit', 0, 0, 2, NULL, 1, 0),
    (3, 'RACE_RESULT', 1, 2, '2', 'max_verstappen', 'red_bull', 50, '+5.355', '5', NULL, 19, 0, 15, 13, 1, 1),
    (3, 'RACE_RESULT', 2, 5, '5', 'lewis_hamilton', 'mercedes', 50, '+31.065', NULL, NULL, 10, 0, 7, 2, 1, 0),
    (3, 'RACE_RESULT', 3, 7, '7', 'charles_leclerc', 'ferrari', 50, '+43.546', NULL, NULL, 6, 0, 12, 5, 1, 0),
    (4, 'RACE_RESULT', 1, 1, '1', 'lewis_hamilton', 'mercedes', 58, '2:32:38.371', NULL, NULL, 25, 0, 3, 2, 1, 1),
    (4, 'RACE_RESULT', 2, 2, '2', 'charles_leclerc', 'ferrari', 58, '+0.179', NULL, NULL, 18, 0, 2, 0, 1, 0),
    (4, 'RACE_RESULT', 3, NULL, 'DNF', 'max_verstappen', 'red_bull', 8, NULL, NULL, 'Engine', 0, 1, 1, NULL, 1, 0);

INSERT INTO race_data (race_id, type, position_display_order, position_number, position_text, driver_id, constructor_id,
    qualifying_time, qualifying_time_millis, qualifying_q1, qualifying_q2, qualifying_q3, qualifying_gap, qualifying_laps) VALUES
    (1, 'QUALIFYING_RESULT', 1, 1, '1', 'lewis_hamilton', 'mercedes', '1:30.558', 90558, '1:31.471', '1:30.932', '1:30.558', NULL, 15),
    (2, 'QUALIFYING_RESULT', 1, 1, '1', 'max_verstappen', 'red_bull', '1:29.708', 89708, '1:31.295', '1:30.503', '1:29.708', NULL, 18),
    (2, 'QUALIFYING_RESULT', 2, 2, '2', 'charles_leclerc', 'ferrari', '1:30.000', 90000, '1:31.094', '1:30.282', '1:30.000', '+0.292', 18),
    (2, 'QUALIFYING_RESULT', 7, 7, '7', 'lewis_hamilton', 'mercedes', '1:30.384', 90384, '1:31.632', '1:30.809', '1:30.384', '+0.676', 18),
    (3, 'QUALIFYING_RESULT', 7, 7, '7', 'lewis_hamilton', 'mercedes', '1:28.857', 88857, '1:29.359', '1:28.849', '1:28.857', '+0.592', 18),
    (3, 'QUALIFYING_RESULT', 12, 12, '12', 'charles_leclerc', 'ferrari', '1:28.722', 88722, '1:29.286', '1:28.722', NULL, '+0.457', 12),
    (3, 'QUALIFYING_RESULT', 15, 15, '15', 'max_verstappen', 'red_bull', '1:29.026', 89026, '1:29.026', NULL, NULL, '+0.761', 6),
    (4, 'QUALIFYING_RESULT', 1, 1, '1', 'max_verstappen', 'red_bull', '1:16.732', 76732, '1:17.384', '1:16.615', '1:16.732', NULL, 18),
    (4, 'QUALIFYING_RESULT', 2, 2, '2', 'charles_leclerc', 'ferrari', '1:16.900', 76900, '1:17.500', '1:16.800', '1:16.900', '+0.168', 18),
    (4, 'QUALIFYING_RESULT', 3, 3, '3', 'lewis_hamilton', 'mercedes', '1:16.968', 76968, '1:17.422', '1:16.924', '1:16.968', '+0.236', 18);

INSERT INTO race_data (race_id, type, position_display_order, position_number, position_text, driver_id, constructor_id,
    fastest_lap_lap, fastest_lap_time, fastest_lap_time_millis, fastest_lap_gap) VALUES
    (1, 'FASTEST_LAP', 1, 1, '1', 'lewis_hamilton', 'mercedes', 51, '1:34.570', 94570, NULL),
    (2, 'FASTEST_LAP', 1, 1, '1', 'lewis_hamilton', 'mercedes', 40, '1:35.500', 95500, NULL),
    (2, 'FASTEST_LAP', 2, 2, '2', 'max_verstappen', 'red_bull', 44, '1:36.236', 96236, '+0.736'),
    (3, 'FASTEST_LAP', 1, 1, '1', 'max_verstappen', 'red_bull', 50, '1:31.906', 91906, NULL),
    (3, 'FASTEST_LAP', 2, 2, '2', 'lewis_hamilton', 'mercedes', 48, '1:32.100', 92100, '+0.194'),
    (4, 'FASTEST_LAP', 1, 1, '1', 'lewis_hamilton', 'mercedes', 53, '1:20.235', 80235, NULL),
    (4, 'FASTEST_LAP', 2, 2, '2', 'charles_leclerc', 'ferrari', 50, '1:20.500', 80500, '+0.265');

INSERT INTO race_data (race_id, type, position_display_order, position_number, position_text, driver_id, constructor_id,
    pit_stop_stop, pit_stop_lap, pit_stop_time, pit_stop_time_millis) VALUES
    (2, 'PIT_STOP', 1, NULL, NULL, 'max_verstappen', 'red_bull', 1, 14, '22.500', 22500),
    (2, 'PIT_STOP', 2, NULL, NULL, 'max_verstappen', 'red_bull', 2, 36, '21.900', 21900),
    (3, 'PIT_STOP', 1, NULL, NULL, 'max_verstappen', 'red_bull', 1, 17, '20.100', 20100),
    (4, 'PIT_STOP', 1, NULL, NULL, 'max_verstappen', 'red_bull', 1, 7, '45.000', 45000),
    (4, 'PIT_STOP', 2, NULL, NULL, 'max_verstappen', 'red_bull', 2, 8, NULL, NULL),
    (2, 'PIT_STOP', 3, NULL, NULL, 'lewis_hamilton', 'mercedes', 1, 20, '23.000', 23000);

INSERT INTO race_data (race_id, type, position_display_order, position_number, position_text, driver_id, constructor_id,
    race_laps, race_time, race_gap, race_points, race_grid_position_number) VALUES
    (3, 'SPRINT_RACE_RESULT', 1, 1, '1', 'max_verstappen', 'red_bull', 19, '29:56.500', NULL, 8, 1),
    (3, 'SPRINT_RACE_RESULT', 2, 2, '2', 'lewis_hamilton', 'mercedes', 19, '+3.100', '+3.100', 7, 2);

INSERT INTO race_driver_standing (race_id, position_display_order, position_number, position_text, driver_id, points, positions_gained) VALUES
    (1, 1, 1, '1', 'lewis_hamilton', 25, NULL),
    (2, 1, 1, '1', 'max_verstappen', 25, NULL),
    (2, 2, 2, '2', 'lewis_hamilton', 10, NULL),
    (2, 3, 3, '3', 'charles_leclerc', 0, NULL),
    (3, 1, 1, '1', 'max_verstappen', 44, 0),
    (3, 2, 2, '2', 'lewis_hamilton', 20, 0),
    (3, 3, 3, '3', 'charles_leclerc', 6, 0),
    (4, 1, 1, '1', 'lewis_hamilton', 45, 1),
    (4, 2, 2, '2', 'max_verstappen', 44, -1),
    (4, 3, 3, '3', 'charles_leclerc', 24, 0);

INSERT INTO race_constructor_standing (race_id, position_display_order, position_number, position_text, constructor_id, points, positions_gained) VALUES
    (1, 1, 1, '1', 'mercedes', 25, NULL),
    (2, 1, 1, '1', 'red_bull', 25, NULL),
    (2, 2, 2, '2', 'mercedes', 10, NULL),
    (2, 3, 3, '3', 'ferrari', 0, NULL),
    (3, 1, 1, '1', 'red_bull', 44, 0),
    (3, 2, 2, '2', 'mercedes', 20, 0),
    (3, 3, 3, '3', 'ferrari', 6, 0),
    (4, 1, 1, '1', 'mercedes', 45, 1),
    (4, 2, 2, '2', 'red_bull', 44, -1),
    (4, 3, 3, '3', 'ferrari', 24, 0);
`

// NewF1DB creates a migrated f1db database filled with the fixture season and
// returns its path. The file is removed when the test ends.
func NewF1DB(t testing.TB) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "f1db.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("failed to open fixture database: %v", err)
	}
	defer func() { _ = db.Close() }()

	ctx := context.Background()
	if err := f1db.Migrate(ctx, db, NewTestLogger(t)); err != nil {
		t.Fatalf("failed to migrate fixture database: %v", err)
	}
	if _, err := db.ExecContext(ctx, fixtureSQL); err != nil {
		t.Fatalf("failed to load fixture data: %v", err)
	}

	return path
}
