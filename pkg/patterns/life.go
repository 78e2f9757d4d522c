package patterns

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"kinetic-table/pkg/core"
)

// Life raises the pins of live cells in Conway's Game of Life on a toroidal
// board the size of the table. One generation passes per period.
type Life struct {
	field
	seed    int64
	period  float64
	density float64

	gen      int64
	cur, nxt []uint8
}

// NewLife returns a Life board using cfg overrides on top of the defaults.
func NewLife(size core.Size, heights core.Range, cfg map[string]string) *Life {
	period := core.Float(cfg, "period", 0.5)
	if period <= 0 {
		period = 0.5
	}
	density := core.Float(cfg, "density", 0.35)
	if density < 0 || density > 1 {
		density = 0.35
	}
	n := size.Rows * size.Cols
	l := &Life{
		field:   newField(size, heights),
		seed:    int64(core.Int(cfg, "seed", 7)),
		period:  period,
		density: density,
		cur:     make([]uint8, n),
		nxt:     make([]uint8, n),
	}
	l.reset()
	return l
}

// Name returns the pattern identifier.
func (l *Life) Name() string { return "life" }

// Cells exposes the current generation, row-major, 1 for alive.
func (l *Life) Cells() []uint8 { return l.cur }

// Generation returns the index of the current generation.
func (l *Life) Generation() int64 { return l.gen }

func (l *Life) reset() {
	core.FillBinary(core.NewRNG(l.seed).Source(), l.cur, l.density)
	l.gen = 0
}

// Advance moves the board forward by one generation.
func (l *Life) Advance() {
	rows, cols := l.size.Rows, l.size.Cols
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			neighbors := 0
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if dx == 0 && dy == 0 {
						continue
					}
					nx := (x + dx + cols) % cols
					ny := (y + dy + rows) % rows
					neighbors += int(l.cur[ny*cols+nx])
				}
			}
			idx := y*cols + x
			alive := l.cur[idx] == 1
			l.nxt[idx] = 0
			if (alive && (neighbors == 2 || neighbors == 3)) || (!alive && neighbors == 3) {
				l.nxt[idx] = 1
			}
		}
	}
	l.cur, l.nxt = l.nxt, l.cur
	l.gen++
}

// Generate writes the board for time t into dst. Going back in time replays
// from the seed.
func (l *Life) Generate(t float64, dst *mat.Dense) {
	g := int64(math.Floor(math.Max(t, 0) / l.period))
	if g < l.gen {
		l.reset()
	}
	for l.gen < g {
		l.Advance()
	}
	cols := l.size.Cols
	for r := 0; r < l.size.Rows; r++ {
		for c := 0; c < cols; c++ {
			h := l.heights.Min
			if l.cur[r*cols+c] == 1 {
				h = l.heights.Max
			}
			dst.Set(r, c, h)
		}
	}
}

// Parameters reports the active tunables.
func (l *Life) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{{
		Name: "Life",
		Params: []core.Parameter{
			core.IntParam("seed", "Seed", int(l.seed)),
			core.FloatParam("period", "Generation (s)", l.period),
			core.FloatParam("density", "Initial density", l.density),
		},
	}}}
}

func init() {
	core.Register("life", func(size core.Size, heights core.Range, cfg map[string]string) core.Pattern {
		return NewLife(size, heights, cfg)
	})
}
