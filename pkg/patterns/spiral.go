package patterns

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"kinetic-table/pkg/core"
)

// Spiral rotates a set of arms around the table centre.
type Spiral struct {
	field
	arms      int
	speed     float64
	tightness float64
}

// NewSpiral returns a spiral using cfg overrides on top of the defaults.
func NewSpiral(size core.Size, heights core.Range, cfg map[string]string) *Spiral {
	return &Spiral{
		field:     newField(size, heights),
		arms:      core.Int(cfg, "arms", 2),
		speed:     core.Float(cfg, "speed", 1.5),
		tightness: core.Float(cfg, "tightness", 2),
	}
}

// Name returns the pattern identifier.
func (s *Spiral) Name() string { return "spiral" }

// Generate writes the spiral at time t into dst.
func (s *Spiral) Generate(t float64, dst *mat.Dense) {
	s.each(dst, func(x, y float64) float64 {
		dx, dy := x-0.5, y-0.5
		angle := math.Atan2(dy, dx)
		dist := math.Hypot(dx, dy)
		return s.remap(math.Sin(angle*float64(s.arms) + dist*s.tightness*2*math.Pi - t*s.speed*2))
	})
}

// Parameters reports the active tunables.
func (s *Spiral) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{{
		Name: "Spiral",
		Params: []core.Parameter{
			core.IntParam("arms", "Arms", s.arms),
			core.FloatParam("speed", "Speed", s.speed),
			core.FloatParam("tightness", "Tightness", s.tightness),
		},
	}}}
}

func init() {
	core.Register("spiral", func(size core.Size, heights core.Range, cfg map[string]string) core.Pattern {
		return NewSpiral(size, heights, cfg)
	})
}
