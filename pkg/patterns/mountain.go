package patterns

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"

	"kinetic-table/pkg/core"
)

// Peak is one Gaussian hill. X and Y are pin coordinates, Height is in
// height units above the lower bound and Spread is in pins.
type Peak struct {
	X, Y   float64
	Height float64
	Spread float64
}

// Mountain sums slowly breathing Gaussian peaks.
type Mountain struct {
	field
	peaks []Peak
}

// NewMountain returns a mountain range. cfg["peaks"] lists peaks as
// "x:y:height:spread" separated by commas; malformed entries are skipped and
// an empty list falls back to a single central peak.
func NewMountain(size core.Size, heights core.Range, cfg map[string]string) *Mountain {
	peaks := ParsePeaks(cfg["peaks"])
	if len(peaks) == 0 {
		peaks = []Peak{{
			X:      float64(size.Cols-1) / 2,
			Y:      float64(size.Rows-1) / 2,
			Height: 0.9 * heights.Span(),
			Spread: 5,
		}}
	}
	return &Mountain{field: newField(size, heights), peaks: peaks}
}

// ParsePeaks decodes the "x:y:height:spread,..." peak list.
func ParsePeaks(s string) []Peak {
	var out []Peak
	for _, item := range strings.Split(s, ",") {
		parts := strings.Split(strings.TrimSpace(item), ":")
		if len(parts) != 4 {
			continue
		}
		var vals [4]float64
		ok := true
		for i, p := range parts {
			v, err := strconv.ParseFloat(p, 64)
			if err != nil {
				ok = false
				break
			}
			vals[i] = v
		}
		if !ok || vals[3] <= 0 {
			continue
		}
		out = append(out, Peak{X: vals[0], Y: vals[1], Height: vals[2], Spread: vals[3]})
	}
	return out
}

// Name returns the pattern identifier.
func (m *Mountain) Name() string { return "mountain" }

// Generate writes the range at time t into dst.
func (m *Mountain) Generate(t float64, dst *mat.Dense) {
	extent := float64(max(m.size.Rows, m.size.Cols))
	m.each(dst, func(x, y float64) float64 {
		z := 0.0
		for _, pk := range m.peaks {
			px := pinToUnit(pk.X, m.size.Cols)
			py := pinToUnit(pk.Y, m.size.Rows)
			s := pk.Spread / extent
			breath := 0.8 + 0.2*math.Sin(t*0.5+px*3)
			g := math.Exp(-((x-px)*(x-px) + (y-py)*(y-py)) / (2 * s * s))
			z += g * pk.Height * breath
		}
		return m.clip(m.heights.Min + z)
	})
}

// Parameters reports the active tunables.
func (m *Mountain) Parameters() core.ParameterSnapshot {
	params := make([]core.Parameter, 0, len(m.peaks))
	for i, pk := range m.peaks {
		params = append(params, core.Parameter{
			Key:   fmt.Sprintf("peak%d", i),
			Label: fmt.Sprintf("Peak %d", i+1),
			Type:  core.ParamTypeFloat,
			Value: fmt.Sprintf("%g:%g:%g:%g", pk.X, pk.Y, pk.Height, pk.Spread),
		})
	}
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{{
		Name:    "Mountain",
		Params:  params,
		Summary: "set with peaks=x:y:height:spread,...",
	}}}
}

func init() {
	core.Register("mountain", func(size core.Size, heights core.Range, cfg map[string]string) core.Pattern {
		return NewMountain(size, heights, cfg)
	})
}
