package sim

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"kinetic-table/pkg/core"
	"kinetic-table/pkg/hal"
	"kinetic-table/pkg/patterns"
)

// SettleJob describes one settle experiment: drive a table from rest to a
// frozen pattern frame, then separately follow the live pattern.
type SettleJob struct {
	Table   hal.Config
	Pattern string
	Params  map[string]string
	// At is the pattern time of the frozen frame.
	At float64
	// TPS is the tick rate used for both phases.
	TPS int
	// MaxTicks bounds the frozen phase.
	MaxTicks int
	// TrackTicks is the length of the live phase; zero skips it.
	TrackTicks int
}

// SettleResult reports how a speed setting performed.
type SettleResult struct {
	MaxSpeed float64
	// Ticks until every pin reached the frozen frame, or MaxTicks.
	Ticks   int
	Seconds float64
	Settled bool
	// TrackingError is the mean over the live phase of the largest
	// pin-to-target distance.
	TrackingError float64
}

// Settle runs a single experiment.
func Settle(job SettleJob) (SettleResult, error) {
	if job.TPS <= 0 {
		job.TPS = 60
	}
	res := SettleResult{MaxSpeed: job.Table.MaxSpeed}

	grid, err := hal.NewWithConfig(job.Table)
	if err != nil {
		return res, err
	}
	heights := core.Range{Min: job.Table.MinHeight, Max: job.Table.MaxHeight}
	engine := patterns.NewEngine(grid.Size(), heights)
	if err := engine.SetPattern(job.Pattern, job.Params); err != nil {
		return res, err
	}
	if err := grid.SetTargets(engine.Generate(job.At)); err != nil {
		return res, err
	}

	dt := 1 / float64(job.TPS)
	for res.Ticks < job.MaxTicks && !grid.AtRest() {
		if err := grid.Step(dt); err != nil {
			return res, err
		}
		res.Ticks++
	}
	res.Settled = grid.AtRest()
	res.Seconds = float64(res.Ticks) * dt

	if job.TrackTicks <= 0 {
		return res, nil
	}
	live, err := hal.NewWithConfig(job.Table)
	if err != nil {
		return res, err
	}
	runner := NewRunner(live, engine, Options{TPS: job.TPS})
	total := 0.0
	for i := 0; i < job.TrackTicks; i++ {
		if err := runner.Step(); err != nil {
			return res, err
		}
		total += live.Stats().MaxError
	}
	res.TrackingError = total / float64(job.TrackTicks)
	return res, nil
}

// SettleSweep runs base once per speed on up to workers goroutines and
// returns results ordered by speed.
func SettleSweep(ctx context.Context, base SettleJob, speeds []float64, workers int) ([]SettleResult, error) {
	if workers <= 0 {
		workers = 1
	}
	results := make([]SettleResult, len(speeds))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, speed := range speeds {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			job := base
			job.Table.MaxSpeed = speed
			res, err := Settle(job)
			if err != nil {
				return fmt.Errorf("speed %g: %w", speed, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	sort.Slice(results, func(a, b int) bool { return results[a].MaxSpeed < results[b].MaxSpeed })
	return results, nil
}
