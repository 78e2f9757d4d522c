package patterns

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"kinetic-table/pkg/core"
)

// Noise cross-fades between seeded random fields, one per period. The same
// seed and time always produce the same surface.
type Noise struct {
	field
	seed   int64
	period float64

	// cached keyframes, index k and k+1
	k          int64
	from, to   []float64
	haveFrames bool
}

// NewNoise returns a noise field using cfg overrides on top of the defaults.
func NewNoise(size core.Size, heights core.Range, cfg map[string]string) *Noise {
	period := core.Float(cfg, "period", 2)
	if period <= 0 {
		period = 2
	}
	seed := int64(core.Int(cfg, "seed", 42))
	return &Noise{field: newField(size, heights), seed: seed, period: period}
}

// Name returns the pattern identifier.
func (n *Noise) Name() string { return "noise" }

func (n *Noise) keyframe(k int64) []float64 {
	buf := make([]float64, n.size.Rows*n.size.Cols)
	core.FillSigned(core.NewRNG(n.seed+k).Source(), buf)
	return buf
}

// Generate writes the field at time t into dst.
func (n *Noise) Generate(t float64, dst *mat.Dense) {
	phase := t / n.period
	k := int64(math.Floor(phase))
	if !n.haveFrames || k != n.k {
		if n.haveFrames && k == n.k+1 {
			n.from = n.to
		} else {
			n.from = n.keyframe(k)
		}
		n.to = n.keyframe(k + 1)
		n.k = k
		n.haveFrames = true
	}
	f := phase - float64(k)
	f = f * f * (3 - 2*f)

	cols := n.size.Cols
	for r := 0; r < n.size.Rows; r++ {
		for c := 0; c < cols; c++ {
			i := r*cols + c
			dst.Set(r, c, n.remap(n.from[i]*(1-f)+n.to[i]*f))
		}
	}
}

// Parameters reports the active tunables.
func (n *Noise) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{{
		Name: "Noise",
		Params: []core.Parameter{
			core.IntParam("seed", "Seed", int(n.seed)),
			core.FloatParam("period", "Period (s)", n.period),
		},
	}}}
}

func init() {
	core.Register("noise", func(size core.Size, heights core.Range, cfg map[string]string) core.Pattern {
		return NewNoise(size, heights, cfg)
	})
}
