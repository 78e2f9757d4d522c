package core

import "time"

// DefaultMaxCatchUp bounds how many ticks a single Advance may report after a
// stall, so a paused process does not replay seconds of motion in one frame.
const DefaultMaxCatchUp = 5

// FixedStep helps run simulation updates at a steady ticks-per-second rate.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
	maxCatchUp  int
}

// NewFixedStep constructs a FixedStep controller targeting the given TPS.
func NewFixedStep(tps int) *FixedStep {
	if tps <= 0 {
		tps = 60
	}
	fs := &FixedStep{maxCatchUp: DefaultMaxCatchUp}
	fs.SetTPS(tps)
	fs.accumulator = fs.step
	return fs
}

// SetTPS changes the tick rate. It is safe to call from the main loop.
func (f *FixedStep) SetTPS(tps int) {
	if tps <= 0 {
		tps = 60
	}
	f.step = time.Second / time.Duration(tps)
}

// SetMaxCatchUp changes the per-call tick cap. Values below one are ignored.
func (f *FixedStep) SetMaxCatchUp(n int) {
	if n < 1 {
		return
	}
	f.maxCatchUp = n
}

// Step returns the fixed tick duration.
func (f *FixedStep) Step() time.Duration { return f.step }

// Advance feeds the wall-clock reading now into the accumulator and reports
// how many whole ticks are due. The first call always yields one tick.
// Time beyond the catch-up cap is dropped.
func (f *FixedStep) Advance(now time.Time) int {
	if f.last.IsZero() {
		f.last = now
	}
	delta := now.Sub(f.last)
	f.last = now
	if delta > 0 {
		f.accumulator += delta
	}
	n := 0
	for f.accumulator >= f.step && n < f.maxCatchUp {
		f.accumulator -= f.step
		n++
	}
	if f.accumulator >= f.step {
		f.accumulator = 0
	}
	return n
}
