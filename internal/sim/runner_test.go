package sim

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"kinetic-table/internal/monitoring"
	"kinetic-table/pkg/core"
	"kinetic-table/pkg/hal"
	"kinetic-table/pkg/patterns"
)

func newRunner(t *testing.T, tps int) (*Runner, *monitoring.Metrics) {
	t.Helper()
	g, err := hal.New(6, 6, 0, 100, 50)
	require.NoError(t, err)
	e := patterns.NewEngine(g.Size(), core.Range{Min: 0, Max: 100})
	m := monitoring.NewMetrics()
	return NewRunner(g, e, Options{TPS: tps, Metrics: m}), m
}

func counterValue(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		total := 0.0
		for _, metric := range mf.GetMetric() {
			total += metric.GetCounter().GetValue()
		}
		return total
	}
	return 0
}

func TestStepFeedsTargetsThenMoves(t *testing.T) {
	r, m := newRunner(t, 10)
	require.NoError(t, r.SetPattern("breathe", map[string]string{"speed": "0", "max_amplitude": "0"}))

	require.NoError(t, r.Step())
	assert.Equal(t, int64(1), r.Ticks())
	assert.InDelta(t, 0.1, r.Elapsed(), 1e-12)
	// zero amplitude commands the floor, so nothing moves
	assert.True(t, r.Grid().AtRest())

	require.NoError(t, r.SetPattern("wave", nil))
	before := r.Grid().CurrentHeights()
	require.NoError(t, r.RunFor(3))
	assert.Equal(t, int64(4), r.Ticks())
	assert.False(t, r.Grid().AtRest())

	// at 50 mm/s and 10 TPS no pin may travel more than 15 mm in 3 ticks
	after := r.Grid().CurrentHeights()
	rows, cols := after.Dims()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			assert.LessOrEqual(t, after.At(i, j)-before.At(i, j), 15.0+1e-9)
		}
	}

	assert.Equal(t, 4.0, counterValue(t, m.Registry(), "kinetic_ticks_total"))
	assert.Equal(t, 4.0, counterValue(t, m.Registry(), "kinetic_target_updates_total"))
}

func TestTickFollowsWallClock(t *testing.T) {
	r, _ := newRunner(t, 10)
	t0 := time.Unix(1000, 0)

	n, err := r.Tick(t0)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = r.Tick(t0.Add(250 * time.Millisecond))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = r.Tick(t0.Add(280 * time.Millisecond))
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	// a long stall is capped instead of replayed
	n, err = r.Tick(t0.Add(10 * time.Second))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, int64(8), r.Ticks())
}

func TestPauseFreezesPatternClock(t *testing.T) {
	r, _ := newRunner(t, 20)
	require.NoError(t, r.RunFor(4))
	elapsed := r.Elapsed()
	targets := r.Grid().Targets()

	r.SetPaused(true)
	assert.True(t, r.Paused())
	require.NoError(t, r.RunFor(4))
	assert.Equal(t, elapsed, r.Elapsed())
	assert.True(t, mat.Equal(targets, r.Grid().Targets()))
	assert.Equal(t, int64(8), r.Ticks())
}

func TestHomeReturnsPinsToRest(t *testing.T) {
	r, _ := newRunner(t, 10)
	require.NoError(t, r.RunFor(20))
	require.Greater(t, r.Grid().Stats().MeanHeight, 0.0)

	r.Home()
	assert.True(t, r.Paused())
	// full travel is 100 mm at 5 mm per tick
	require.NoError(t, r.RunFor(20))
	assert.True(t, r.Grid().AtRest())
	assert.Equal(t, 0.0, r.Grid().Stats().MeanHeight)
}

func TestSetPatternUnknown(t *testing.T) {
	r, _ := newRunner(t, 10)
	err := r.SetPattern("lava", nil)
	assert.ErrorIs(t, err, patterns.ErrUnknownPattern)
	assert.Equal(t, "wave", r.Engine().Current())
}

func TestRunStopsOnCancel(t *testing.T) {
	r, _ := newRunner(t, 200)
	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()

	err := r.Run(ctx, 20*time.Millisecond)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Greater(t, r.Ticks(), int64(0))
}
