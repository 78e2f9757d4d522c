package patterns

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"kinetic-table/pkg/core"
)

// Rain drops short-lived ripples at wandering positions.
type Rain struct {
	field
	intensity int
	dropSpeed float64
}

// NewRain returns a rain field using cfg overrides on top of the defaults.
func NewRain(size core.Size, heights core.Range, cfg map[string]string) *Rain {
	return &Rain{
		field:     newField(size, heights),
		intensity: core.Int(cfg, "intensity", 5),
		dropSpeed: core.Float(cfg, "drop_speed", 3),
	}
}

// Name returns the pattern identifier.
func (r *Rain) Name() string { return "rain" }

// Generate writes the rain field at time t into dst.
func (r *Rain) Generate(t float64, dst *mat.Dense) {
	type drop struct{ cx, cy, fade, age float64 }
	drops := make([]drop, r.intensity)
	for i := range drops {
		fi := float64(i)
		phase := math.Floor(t*0.5) + fi*17
		age := math.Mod(t*r.dropSpeed+fi*0.7, 4)
		drops[i] = drop{
			cx:   math.Sin(phase*1.1+fi)*0.4 + 0.5,
			cy:   math.Cos(phase*0.9+fi*2)*0.4 + 0.5,
			fade: math.Max(0, 1-age*0.3),
			age:  age,
		}
	}
	r.each(dst, func(x, y float64) float64 {
		z := 0.0
		for _, d := range drops {
			dist := math.Hypot(x-d.cx, y-d.cy)
			z += math.Sin(dist*25-d.age*6) * math.Exp(-dist*5) * d.fade
		}
		return z
	})
	r.normalise(dst, 0.8)
}

// Parameters reports the active tunables.
func (r *Rain) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{{
		Name: "Rain",
		Params: []core.Parameter{
			core.IntParam("intensity", "Drops", r.intensity),
			core.FloatParam("drop_speed", "Drop speed", r.dropSpeed),
		},
	}}}
}

func init() {
	core.Register("rain", func(size core.Size, heights core.Range, cfg map[string]string) core.Pattern {
		return NewRain(size, heights, cfg)
	})
}
