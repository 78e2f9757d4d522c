package patterns

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"kinetic-table/pkg/core"
)

// Chaos layers interfering sine harmonics.
type Chaos struct {
	field
	complexity int
	speed      float64
}

// NewChaos returns a chaos field using cfg overrides on top of the defaults.
func NewChaos(size core.Size, heights core.Range, cfg map[string]string) *Chaos {
	return &Chaos{
		field:      newField(size, heights),
		complexity: core.Int(cfg, "complexity", 3),
		speed:      core.Float(cfg, "speed", 1),
	}
}

// Name returns the pattern identifier.
func (c *Chaos) Name() string { return "chaos" }

// Generate writes the field at time t into dst.
func (c *Chaos) Generate(t float64, dst *mat.Dense) {
	c.each(dst, func(x, y float64) float64 {
		z := 0.0
		for i := 1; i <= c.complexity; i++ {
			f := float64(i) * 1.5
			ph := t * c.speed * (0.5 + float64(i)*0.3)
			z += math.Sin(x*f*2*math.Pi+ph) * math.Cos(y*f*2*math.Pi+ph*0.7)
			z += math.Sin((x+y)*f*math.Pi+ph*1.3) * 0.5
		}
		return z
	})
	c.normalise(dst, 1)
}

// Parameters reports the active tunables.
func (c *Chaos) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{{
		Name: "Chaos",
		Params: []core.Parameter{
			core.IntParam("complexity", "Complexity", c.complexity),
			core.FloatParam("speed", "Speed", c.speed),
		},
	}}}
}

func init() {
	core.Register("chaos", func(size core.Size, heights core.Range, cfg map[string]string) core.Pattern {
		return NewChaos(size, heights, cfg)
	})
}
