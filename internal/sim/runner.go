package sim

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gonum.org/v1/gonum/mat"

	"kinetic-table/internal/core"
	"kinetic-table/internal/logging"
	"kinetic-table/internal/monitoring"
	"kinetic-table/pkg/hal"
	"kinetic-table/pkg/patterns"
)

// Options configures a Runner.
type Options struct {
	// TPS is the fixed tick rate; each tick advances the table by 1/TPS s.
	TPS int
	// MaxCatchUp caps ticks applied per wall-clock wakeup.
	MaxCatchUp int
	Logger     *slog.Logger
	Metrics    *monitoring.Metrics
}

// Runner is the single writer of an ActuatorGrid: it feeds pattern targets
// into the grid and steps it at a fixed rate. Readers use the grid directly.
type Runner struct {
	grid   *hal.ActuatorGrid
	engine *patterns.Engine
	clock  *core.FixedStep
	dt     float64

	log     *slog.Logger
	metrics *monitoring.Metrics

	ticks   int64
	elapsed float64
	paused  bool
	targets *mat.Dense
}

// NewRunner wires a grid and engine together.
func NewRunner(grid *hal.ActuatorGrid, engine *patterns.Engine, opts Options) *Runner {
	if opts.TPS <= 0 {
		opts.TPS = 60
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewNop()
	}
	fs := core.NewFixedStep(opts.TPS)
	if opts.MaxCatchUp > 0 {
		fs.SetMaxCatchUp(opts.MaxCatchUp)
	}
	rows, cols := grid.Dims()
	return &Runner{
		grid:    grid,
		engine:  engine,
		clock:   fs,
		dt:      1 / float64(opts.TPS),
		log:     opts.Logger,
		metrics: opts.Metrics,
		targets: mat.NewDense(rows, cols, nil),
	}
}

// Grid returns the table being driven.
func (r *Runner) Grid() *hal.ActuatorGrid { return r.grid }

// Engine returns the pattern engine feeding the table.
func (r *Runner) Engine() *patterns.Engine { return r.engine }

// Ticks returns how many ticks have been applied.
func (r *Runner) Ticks() int64 { return r.ticks }

// Elapsed returns the simulated time in seconds.
func (r *Runner) Elapsed() float64 { return r.elapsed }

// SetPaused freezes the pattern clock and pin motion.
func (r *Runner) SetPaused(p bool) { r.paused = p }

// Paused reports whether the runner is paused.
func (r *Runner) Paused() bool { return r.paused }

// SetPattern switches the active pattern.
func (r *Runner) SetPattern(name string, params map[string]string) error {
	if err := r.engine.SetPattern(name, params); err != nil {
		return err
	}
	r.log.Info("pattern changed", "pattern", name)
	return nil
}

// Home pauses the pattern feed and commands every pin back to rest.
// SetPaused(false) restarts the feed.
func (r *Runner) Home() {
	r.grid.Home()
	r.paused = true
	r.log.Info("homing table")
}

// Tick advances the fixed-step clock to now and applies every due tick.
// It returns the number of ticks applied.
func (r *Runner) Tick(now time.Time) (int, error) {
	n := r.clock.Advance(now)
	for i := 0; i < n; i++ {
		if err := r.Step(); err != nil {
			return i, err
		}
	}
	return n, nil
}

// Step applies exactly one fixed tick: generate targets for the current
// simulated time, hand them to the grid, then move the pins. While paused
// the pattern feed stops but pins still travel to their last targets.
func (r *Runner) Step() error {
	if !r.paused {
		r.engine.GenerateInto(r.elapsed, r.targets)
		if err := r.grid.SetTargets(r.targets); err != nil {
			r.metrics.CallRejected(err)
			return fmt.Errorf("set targets: %w", err)
		}
		r.metrics.TargetAccepted()
		r.elapsed += r.dt
	}

	start := time.Now()
	if err := r.grid.Step(r.dt); err != nil {
		r.metrics.CallRejected(err)
		return fmt.Errorf("step: %w", err)
	}
	r.metrics.ObserveStep(time.Since(start))
	r.ticks++
	return nil
}

// RunFor applies n ticks back to back, independent of wall time.
func (r *Runner) RunFor(n int) error {
	for i := 0; i < n; i++ {
		if err := r.Step(); err != nil {
			return err
		}
	}
	r.metrics.ObserveStats(r.grid.Stats())
	return nil
}

// Run drives Tick from a wall-clock ticker until ctx is cancelled. Every
// reportEvery it logs and publishes grid stats; zero disables reporting.
func (r *Runner) Run(ctx context.Context, reportEvery time.Duration) error {
	ticker := time.NewTicker(r.clock.Step())
	defer ticker.Stop()

	var report <-chan time.Time
	if reportEvery > 0 {
		rt := time.NewTicker(reportEvery)
		defer rt.Stop()
		report = rt.C
	}

	r.log.Info("simulation started",
		"pattern", r.engine.Current(),
		"tps", int(1/r.dt+0.5),
	)
	for {
		select {
		case <-ctx.Done():
			r.log.Info("simulation stopped", "ticks", r.ticks, "elapsed", r.elapsed)
			return ctx.Err()
		case now := <-ticker.C:
			if _, err := r.Tick(now); err != nil {
				r.log.Error("tick failed", "error", err)
				return err
			}
		case <-report:
			st := r.grid.Stats()
			r.metrics.ObserveStats(st)
			r.log.Info("table",
				"ticks", r.ticks,
				"pattern", r.engine.Current(),
				"moving", st.Moving,
				"max_error", st.MaxError,
				"mean_height", st.MeanHeight,
			)
		}
	}
}
