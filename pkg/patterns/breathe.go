package patterns

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"kinetic-table/pkg/core"
)

// Breathe raises and lowers the whole surface with a slight dome.
type Breathe struct {
	field
	speed     float64
	amplitude float64
}

// NewBreathe returns a breathing surface. amplitude is in height units above
// the lower bound.
func NewBreathe(size core.Size, heights core.Range, cfg map[string]string) *Breathe {
	return &Breathe{
		field:     newField(size, heights),
		speed:     core.Float(cfg, "speed", 1),
		amplitude: core.Float(cfg, "max_amplitude", 0.8*heights.Span()),
	}
}

// Name returns the pattern identifier.
func (b *Breathe) Name() string { return "breathe" }

// Generate writes the surface at time t into dst.
func (b *Breathe) Generate(t float64, dst *mat.Dense) {
	base := (math.Sin(t*b.speed) + 1) / 2
	b.each(dst, func(x, y float64) float64 {
		spatial := 1 + 0.15*math.Sin(x*math.Pi)*math.Sin(y*math.Pi)
		return b.clip(b.heights.Min + base*b.amplitude*spatial)
	})
}

// Parameters reports the active tunables.
func (b *Breathe) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{{
		Name: "Breathe",
		Params: []core.Parameter{
			core.FloatParam("speed", "Speed", b.speed),
			core.FloatParam("max_amplitude", "Amplitude", b.amplitude),
		},
	}}}
}

func init() {
	core.Register("breathe", func(size core.Size, heights core.Range, cfg map[string]string) core.Pattern {
		return NewBreathe(size, heights, cfg)
	})
}
