package monitoring

import (
	"errors"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kinetic-table/pkg/hal"
)

func TestObserveStepAndStats(t *testing.T) {
	m := NewMetrics()
	m.ObserveStep(2 * time.Millisecond)
	m.ObserveStep(time.Millisecond)
	m.ObserveStats(hal.Stats{MeanHeight: 12, MaxError: 3.5, Moving: 7})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ticks))
	assert.Equal(t, 7.0, testutil.ToFloat64(m.pinsMoving))
	assert.Equal(t, 3.5, testutil.ToFloat64(m.maxError))
	assert.Equal(t, 12.0, testutil.ToFloat64(m.meanHeight))
}

func TestCallRejectedLabels(t *testing.T) {
	m := NewMetrics()
	m.CallRejected(fmt.Errorf("wrap: %w", hal.ErrDimensionMismatch))
	m.CallRejected(hal.ErrIndexOutOfRange)
	m.CallRejected(hal.ErrIndexOutOfRange)
	m.CallRejected(errors.New("other"))
	m.CallRejected(nil)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.targetErrors.WithLabelValues("dimension_mismatch")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.targetErrors.WithLabelValues("index_out_of_range")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.targetErrors.WithLabelValues("other")))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.ObserveStep(time.Second)
	m.ObserveStats(hal.Stats{})
	m.TargetAccepted()
	m.CallRejected(hal.ErrInvalidArgument)
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := NewMetrics()
	m.TargetAccepted()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "kinetic_target_updates_total 1"), body)
}
