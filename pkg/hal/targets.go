package hal

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// PinTarget is a single sparse target update.
type PinTarget struct {
	Row    int
	Col    int
	Height float64
}

// SetTargets replaces the target of every pin with the values of m, clamped
// into the height bounds. m must have exactly the grid's dimensions. Current
// heights are untouched; pins start moving on the next Step.
func (g *ActuatorGrid) SetTargets(m mat.Matrix) error {
	r, c := m.Dims()
	if r != g.cfg.Rows || c != g.cfg.Cols {
		return fmt.Errorf("%w: got %dx%d, grid is %dx%d", ErrDimensionMismatch, r, c, g.cfg.Rows, g.cfg.Cols)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	tgt := g.target.Cells()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			tgt[g.target.Index(i, j)] = g.clamp(m.At(i, j))
		}
	}
	return nil
}

// SetTargetsSlice is SetTargets for callers holding a [][]float64. Every row
// must have Cols entries.
func (g *ActuatorGrid) SetTargetsSlice(rows [][]float64) error {
	if len(rows) != g.cfg.Rows {
		return fmt.Errorf("%w: got %d rows, grid has %d", ErrDimensionMismatch, len(rows), g.cfg.Rows)
	}
	for i, row := range rows {
		if len(row) != g.cfg.Cols {
			return fmt.Errorf("%w: row %d has %d columns, grid has %d", ErrDimensionMismatch, i, len(row), g.cfg.Cols)
		}
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	tgt := g.target.Cells()
	for i, row := range rows {
		for j, v := range row {
			tgt[g.target.Index(i, j)] = g.clamp(v)
		}
	}
	return nil
}

// SetTargetPins applies sparse updates. Either every update is applied or,
// when any index lies outside the grid, none is. Later updates to the same
// pin win.
func (g *ActuatorGrid) SetTargetPins(updates []PinTarget) error {
	for _, u := range updates {
		if !g.target.Contains(u.Row, u.Col) {
			return fmt.Errorf("%w: pin (%d,%d) outside %dx%d grid", ErrIndexOutOfRange, u.Row, u.Col, g.cfg.Rows, g.cfg.Cols)
		}
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	tgt := g.target.Cells()
	for _, u := range updates {
		tgt[g.target.Index(u.Row, u.Col)] = g.clamp(u.Height)
	}
	return nil
}

// Home commands every pin back to the rest height.
func (g *ActuatorGrid) Home() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.target.Fill(g.cfg.RestHeight())
}
