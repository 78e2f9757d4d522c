package core

import "gonum.org/v1/gonum/mat"

// FloatGrid stores a 2D grid of float64 cell values in row-major order.
type FloatGrid struct {
	Rows, Cols int
	data       []float64
}

// NewFloatGrid allocates a grid with the given dimensions. Callers validate
// the dimensions; non-positive values collapse to an empty grid.
func NewFloatGrid(rows, cols int) *FloatGrid {
	if rows <= 0 || cols <= 0 {
		return &FloatGrid{}
	}
	return &FloatGrid{Rows: rows, Cols: cols, data: make([]float64, rows*cols)}
}

// Cells exposes the backing slice so callers can read/write values directly.
func (g *FloatGrid) Cells() []float64 { return g.data }

// Index returns the linear slice index for coordinates (r, c).
func (g *FloatGrid) Index(r, c int) int { return r*g.Cols + c }

// Contains reports whether (r, c) lies inside the grid.
func (g *FloatGrid) Contains(r, c int) bool {
	return r >= 0 && r < g.Rows && c >= 0 && c < g.Cols
}

// Fill sets every cell to v.
func (g *FloatGrid) Fill(v float64) {
	for i := range g.data {
		g.data[i] = v
	}
}

// Dense returns a copy of the grid as a gonum matrix.
func (g *FloatGrid) Dense() *mat.Dense {
	if len(g.data) == 0 {
		return &mat.Dense{}
	}
	return mat.NewDense(g.Rows, g.Cols, append([]float64(nil), g.data...))
}
