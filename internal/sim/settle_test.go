package sim

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kinetic-table/pkg/hal"
)

func settleJob() SettleJob {
	table := hal.DefaultConfig()
	table.Rows, table.Cols = 8, 8
	return SettleJob{
		Table:      table,
		Pattern:    "breathe",
		Params:     map[string]string{"speed": "0", "max_amplitude": "80"},
		TPS:        10,
		MaxTicks:   1000,
		TrackTicks: 20,
	}
}

func TestSettleFrozenFrame(t *testing.T) {
	job := settleJob()
	job.Table.MaxSpeed = 20

	res, err := Settle(job)
	require.NoError(t, err)
	assert.True(t, res.Settled)
	// breathe at t=0 with speed 0 sits at 40 mm plus a dome of up to 15%:
	// the tallest pin needs ceil(46/2) ticks at 2 mm per tick.
	assert.Greater(t, res.Ticks, 20)
	assert.LessOrEqual(t, res.Ticks, 23)
	assert.InDelta(t, float64(res.Ticks)/10, res.Seconds, 1e-12)
	assert.Greater(t, res.TrackingError, 0.0)
}

func TestSettleGivesUpAtMaxTicks(t *testing.T) {
	job := settleJob()
	job.Table.MaxSpeed = 1
	job.MaxTicks = 5
	job.TrackTicks = 0

	res, err := Settle(job)
	require.NoError(t, err)
	assert.False(t, res.Settled)
	assert.Equal(t, 5, res.Ticks)
	assert.Zero(t, res.TrackingError)
}

func TestSettleErrors(t *testing.T) {
	job := settleJob()
	job.Pattern = "nope"
	_, err := Settle(job)
	assert.Error(t, err)

	job = settleJob()
	job.Table.MaxSpeed = 0
	_, err = Settle(job)
	assert.ErrorIs(t, err, hal.ErrInvalidArgument)
}

func TestSettleSweepFasterSettlesSooner(t *testing.T) {
	results, err := SettleSweep(context.Background(), settleJob(), []float64{80, 10, 40}, 2)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, []float64{10, 40, 80}, []float64{results[0].MaxSpeed, results[1].MaxSpeed, results[2].MaxSpeed})
	assert.GreaterOrEqual(t, results[0].Ticks, results[1].Ticks)
	assert.GreaterOrEqual(t, results[1].Ticks, results[2].Ticks)
	assert.GreaterOrEqual(t, results[0].TrackingError, results[2].TrackingError)
}

func TestSettleSweepPropagatesErrors(t *testing.T) {
	_, err := SettleSweep(context.Background(), settleJob(), []float64{10, -1}, 1)
	assert.ErrorIs(t, err, hal.ErrInvalidArgument)
}
