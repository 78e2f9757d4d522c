package patterns

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"kinetic-table/pkg/core"
)

// Ripple is a damped circular wave radiating from a centre pin.
type Ripple struct {
	field
	centerX, centerY float64 // pin coordinates
	frequency        float64
	speed            float64
}

// NewRipple returns a ripple centred on the table unless cfg says otherwise.
func NewRipple(size core.Size, heights core.Range, cfg map[string]string) *Ripple {
	return &Ripple{
		field:     newField(size, heights),
		centerX:   core.Float(cfg, "center_x", float64(size.Cols-1)/2),
		centerY:   core.Float(cfg, "center_y", float64(size.Rows-1)/2),
		frequency: core.Float(cfg, "frequency", 3),
		speed:     core.Float(cfg, "speed", 2),
	}
}

// Name returns the pattern identifier.
func (r *Ripple) Name() string { return "ripple" }

// Generate writes the ripple at time t into dst.
func (r *Ripple) Generate(t float64, dst *mat.Dense) {
	cx := pinToUnit(r.centerX, r.size.Cols)
	cy := pinToUnit(r.centerY, r.size.Rows)
	r.each(dst, func(x, y float64) float64 {
		dist := math.Hypot(x-cx, y-cy)
		z := math.Sin(dist*r.frequency*2*math.Pi-t*r.speed*2) * math.Exp(-dist*2)
		return r.remap(z)
	})
}

// Parameters reports the active tunables.
func (r *Ripple) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{{
		Name: "Ripple",
		Params: []core.Parameter{
			core.FloatParam("center_x", "Centre column", r.centerX),
			core.FloatParam("center_y", "Centre row", r.centerY),
			core.FloatParam("frequency", "Frequency", r.frequency),
			core.FloatParam("speed", "Speed", r.speed),
		},
	}}}
}

func init() {
	core.Register("ripple", func(size core.Size, heights core.Range, cfg map[string]string) core.Pattern {
		return NewRipple(size, heights, cfg)
	})
}
