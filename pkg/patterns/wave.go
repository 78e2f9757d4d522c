package patterns

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"kinetic-table/pkg/core"
)

// WaveParams tunes the travelling plane wave.
type WaveParams struct {
	Frequency float64
	Speed     float64
	// Direction is the travel angle in degrees, 0 = along columns.
	Direction float64
}

// Wave is a plane sine wave sweeping across the table.
type Wave struct {
	field
	p WaveParams
}

// NewWave returns a wave using cfg overrides on top of the defaults.
func NewWave(size core.Size, heights core.Range, cfg map[string]string) *Wave {
	return &Wave{
		field: newField(size, heights),
		p: WaveParams{
			Frequency: core.Float(cfg, "frequency", 2),
			Speed:     core.Float(cfg, "speed", 1),
			Direction: core.Float(cfg, "direction_angle", 0),
		},
	}
}

// Name returns the pattern identifier.
func (w *Wave) Name() string { return "wave" }

// Generate writes the wave at time t into dst.
func (w *Wave) Generate(t float64, dst *mat.Dense) {
	a := radians(w.p.Direction)
	cos, sin := math.Cos(a), math.Sin(a)
	w.each(dst, func(x, y float64) float64 {
		d := x*cos + y*sin
		return w.remap(math.Sin(d*w.p.Frequency*2*math.Pi + t*w.p.Speed*2))
	})
}

// Parameters reports the active tunables.
func (w *Wave) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{{
		Name: "Wave",
		Params: []core.Parameter{
			core.FloatParam("frequency", "Frequency", w.p.Frequency),
			core.FloatParam("speed", "Speed", w.p.Speed),
			core.FloatParam("direction_angle", "Direction (deg)", w.p.Direction),
		},
	}}}
}

func init() {
	core.Register("wave", func(size core.Size, heights core.Range, cfg map[string]string) core.Pattern {
		return NewWave(size, heights, cfg)
	})
}
