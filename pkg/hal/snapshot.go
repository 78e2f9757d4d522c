package hal

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Stats summarizes the grid at one instant.
type Stats struct {
	// MeanHeight is the mean current height across all pins.
	MeanHeight float64
	// MaxError is the largest |target - current| over all pins.
	MaxError float64
	// Moving counts pins that have not reached their target.
	Moving int
}

// CurrentHeights returns a copy of the current pin heights.
func (g *ActuatorGrid) CurrentHeights() *mat.Dense {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.current.Dense()
}

// CurrentInto copies the current heights into dst in row-major order. dst
// must hold exactly Rows*Cols values.
func (g *ActuatorGrid) CurrentInto(dst []float64) error {
	if len(dst) != g.cfg.Rows*g.cfg.Cols {
		return fmt.Errorf("%w: buffer holds %d values, grid has %d", ErrDimensionMismatch, len(dst), g.cfg.Rows*g.cfg.Cols)
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	copy(dst, g.current.Cells())
	return nil
}

// StateInto copies current and target heights into the caller's buffers,
// row-major, under one read lock so both describe the same tick. Each buffer
// must hold exactly Rows*Cols values.
func (g *ActuatorGrid) StateInto(current, target []float64) error {
	n := g.cfg.Rows * g.cfg.Cols
	if len(current) != n || len(target) != n {
		return fmt.Errorf("%w: buffers hold %d and %d values, grid has %d", ErrDimensionMismatch, len(current), len(target), n)
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	copy(current, g.current.Cells())
	copy(target, g.target.Cells())
	return nil
}

// Targets returns a copy of the commanded target heights.
func (g *ActuatorGrid) Targets() *mat.Dense {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.target.Dense()
}

// AtRest reports whether every pin has reached its target.
func (g *ActuatorGrid) AtRest() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.moving() == 0
}

// Moving returns the number of pins still travelling.
func (g *ActuatorGrid) Moving() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.moving()
}

// Stats returns a consistent summary of the grid.
func (g *ActuatorGrid) Stats() Stats {
	g.mu.RLock()
	defer g.mu.RUnlock()
	cur := g.current.Cells()
	tgt := g.target.Cells()
	return Stats{
		MeanHeight: stat.Mean(cur, nil),
		MaxError:   floats.Distance(cur, tgt, math.Inf(1)),
		Moving:     g.moving(),
	}
}

func (g *ActuatorGrid) moving() int {
	cur := g.current.Cells()
	tgt := g.target.Cells()
	n := 0
	for i := range cur {
		if math.Abs(tgt[i]-cur[i]) > RestEpsilon {
			n++
		}
	}
	return n
}
