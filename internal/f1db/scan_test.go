package f1db

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return New(db), mock
}

func TestQueryErrorsAreWrapped(t *testing.T) {
	store, mock := newMockStore(t)
	boom := errors.New("disk I/O error")

	mock.ExpectQuery("FROM race_data").WillReturnError(boom)

	_, err := store.DriverSeasonResults(context.Background(), "max_verstappen", 2023)
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "driver-season-overview")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScanNamed_UnexpectedColumn(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("FROM race_data").WillReturnRows(
		sqlmock.NewRows([]string{"round", "grand_prix", "mystery"}).AddRow(1, "bahrain", "x"),
	)

	_, err := store.DriverPitStops(context.Background(), "max_verstappen", 2023)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unexpected column "mystery"`)
}

func TestScanNamed_PartialColumns(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("FROM race_data").WillReturnRows(
		sqlmock.NewRows([]string{"round", "grand_prix"}).AddRow(2, "jeddah"),
	)

	stops, err := store.DriverPitStops(context.Background(), "max_verstappen", 2023)
	require.NoError(t, err)
	require.Len(t, stops, 1)
	assert.Equal(t, PitStop{Round: 2, GrandPrix: "jeddah"}, stops[0])
}

func TestDriverPitStopDurations_SkipsNulls(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("pit_stop_time_millis").WillReturnRows(
		sqlmock.NewRows([]string{"millis"}).AddRow(int64(22500)).AddRow(nil).AddRow(int64(21000)),
	)

	millis, err := store.DriverPitStopDurations(context.Background(), "max_verstappen", 2023)
	require.NoError(t, err)
	assert.Equal(t, []int64{22500, 21000}, millis)
}

func TestRowErrorsAreReported(t *testing.T) {
	store, mock := newMockStore(t)
	boom := errors.New("connection reset")

	mock.ExpectQuery("SELECT").WillReturnRows(
		sqlmock.NewRows([]string{"id"}).AddRow("a").AddRow("b").RowError(1, boom),
	)

	_, err := store.Query(context.Background(), "SELECT id FROM driver")
	require.ErrorIs(t, err, boom)
}

func TestCircuitInfo_NotFound(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("FROM circuit").WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	_, err := store.CircuitInfo(context.Background(), "nowhere")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestScript_Unknown(t *testing.T) {
	store, _ := newMockStore(t)

	_, err := store.Script("no-such-script")
	require.Error(t, err)

	_, err = store.RunScript(context.Background(), "no-such-script")
	require.Error(t, err)
}

func TestResultIndex(t *testing.T) {
	r := &Result{Columns: []string{"a", "b"}}
	assert.Equal(t, 1, r.Index("b"))
	assert.Equal(t, -1, r.Index("c"))
}
