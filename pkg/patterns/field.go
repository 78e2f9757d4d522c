package patterns

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"kinetic-table/pkg/core"
)

// field holds the normalised pin coordinates shared by every pattern: x runs
// 0..1 across columns and y runs 0..1 down rows.
type field struct {
	size    core.Size
	heights core.Range
	xs, ys  []float64
}

func newField(size core.Size, heights core.Range) field {
	return field{
		size:    size,
		heights: heights,
		xs:      linspace(size.Cols),
		ys:      linspace(size.Rows),
	}
}

func linspace(n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		return out
	}
	for i := range out {
		out[i] = float64(i) / float64(n-1)
	}
	return out
}

// pinToUnit converts a pin coordinate along an axis of n pins to 0..1.
func pinToUnit(v float64, n int) float64 {
	if n <= 1 {
		return 0
	}
	return v / float64(n-1)
}

// remap maps z in [-1, 1] onto the height range.
func (f *field) remap(z float64) float64 {
	return f.heights.Min + (z+1)/2*f.heights.Span()
}

// clip bounds v to the height range.
func (f *field) clip(v float64) float64 {
	return math.Max(f.heights.Min, math.Min(f.heights.Max, v))
}

// each calls fn for every pin and stores the result in dst.
func (f *field) each(dst *mat.Dense, fn func(x, y float64) float64) {
	for r, y := range f.ys {
		for c, x := range f.xs {
			dst.Set(r, c, fn(x, y))
		}
	}
}

// normalise stretches whatever range dst holds onto the height range scaled
// by gain. A flat field lands at mid height.
func (f *field) normalise(dst *mat.Dense, gain float64) {
	lo, hi := mat.Min(dst), mat.Max(dst)
	rows, cols := dst.Dims()
	if hi-lo < 1e-8 {
		mid := f.heights.Min + f.heights.Span()/2
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				dst.Set(r, c, mid)
			}
		}
		return
	}
	span := f.heights.Span()
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			v := (dst.At(r, c) - lo) / (hi - lo)
			dst.Set(r, c, f.heights.Min+v*span*gain)
		}
	}
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }
