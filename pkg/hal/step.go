package hal

import (
	"fmt"
	"math"
)

// Approach moves current toward target by at most maxStep. When the target is
// within reach it is returned exactly, so motion ends without overshoot or
// residual drift.
func Approach(current, target, maxStep float64) float64 {
	delta := target - current
	if math.Abs(delta) <= maxStep {
		return target
	}
	if delta > 0 {
		return current + maxStep
	}
	return current - maxStep
}

// Step advances every pin toward its target by at most MaxSpeed*elapsedSeconds.
// Pins are updated independently. A zero elapsed time is a no-op; a negative
// or non-finite one fails with ErrInvalidArgument and leaves the grid as is.
func (g *ActuatorGrid) Step(elapsedSeconds float64) error {
	if !finite(elapsedSeconds) || elapsedSeconds < 0 {
		return fmt.Errorf("%w: elapsed seconds must be a non-negative number, got %g", ErrInvalidArgument, elapsedSeconds)
	}
	if elapsedSeconds == 0 {
		return nil
	}
	maxStep := g.cfg.MaxSpeed * elapsedSeconds

	g.mu.Lock()
	defer g.mu.Unlock()
	cur := g.current.Cells()
	tgt := g.target.Cells()
	for i := range cur {
		cur[i] = Approach(cur[i], tgt[i], maxStep)
	}
	return nil
}
