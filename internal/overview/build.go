package overview

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/f1stats/pkg/core"
)

// Source provides the two datasets a season overview is computed from.
type Source interface {
	// DriverSeasonResults returns one row per race of the season, in round order.
	DriverSeasonResults(ctx context.Context, driverID string, year int) ([]core.RaceResult, error)
	// DriverPitStopDurations returns the raw pit-stop durations in milliseconds.
	DriverPitStopDurations(ctx context.Context, driverID string, year int) ([]int64, error)
}

// Build fetches the datasets of a driver's season and aggregates them.
func Build(ctx context.Context, src Source, driverID string, year int) (*Summary, error) {
	var (
		results []core.RaceResult
		pits    []int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		results, err = src.DriverSeasonResults(gctx, driverID, year)
		return err
	})
	g.Go(func() error {
		var err error
		pits, err = src.DriverPitStopDurations(gctx, driverID, year)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s, err := Aggregate(results, pits)
	if err != nil {
		return nil, err
	}
	s.DriverID = driverID
	s.Year = year
	return s, nil
}
