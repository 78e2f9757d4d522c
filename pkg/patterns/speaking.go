package patterns

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"kinetic-table/pkg/core"
)

// Speaking draws a voice-style waveform band across the middle row, its
// amplitude pulsing at syllable-like rates.
type Speaking struct {
	field
}

// NewSpeaking returns the waveform pattern. It takes no parameters.
func NewSpeaking(size core.Size, heights core.Range, _ map[string]string) *Speaking {
	return &Speaking{field: newField(size, heights)}
}

// Name returns the pattern identifier.
func (s *Speaking) Name() string { return "speaking" }

// Generate writes the waveform at time t into dst.
func (s *Speaking) Generate(t float64, dst *mat.Dense) {
	envelope := math.Abs(math.Sin(t*4))*0.5 +
		math.Abs(math.Sin(t*2.7+0.5))*0.3 +
		math.Abs(math.Sin(t*6.3+1.2))*0.2
	width := 0.12 + 0.08*envelope

	s.each(dst, func(x, y float64) float64 {
		combined := math.Sin(x*10*math.Pi+t*15) +
			math.Sin(x*14*math.Pi-t*10)*0.7 +
			math.Sin(x*6*math.Pi+t*20)*0.5 +
			math.Sin(x*18*math.Pi-t*12)*0.3 +
			math.Sin(x*22*math.Pi+t*8)*0.2
		yd := y - 0.5
		band := math.Exp(-(yd * yd) / (2 * width * width))
		return s.clip(s.remap(combined * band * envelope))
	})
}

func init() {
	core.Register("speaking", func(size core.Size, heights core.Range, cfg map[string]string) core.Pattern {
		return NewSpeaking(size, heights, cfg)
	})
}
