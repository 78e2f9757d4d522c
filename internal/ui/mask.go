package ui

import (
	"image/color"
	"math"
)

const (
	maskMaxAlpha      = 160.0
	maskGlowBase      = 0.35
	maskGlowRange     = 0.65
	maskIntensityBias = 0.75
)

// fillErrorMask tints each pin by how far it still has to travel, relative
// to the full travel span. Pins at their target are left transparent.
func fillErrorMask(buf []byte, current, target []float64, span float64, tint color.RGBA) {
	for i := range current {
		base := i * 4
		intensity := 0.0
		if span > 0 {
			intensity = clamp01(math.Abs(target[i]-current[i]) / span)
		}
		if intensity == 0 {
			buf[base+0] = 0
			buf[base+1] = 0
			buf[base+2] = 0
			buf[base+3] = 0
			continue
		}
		alpha := uint8(math.Round(maskMaxAlpha * math.Pow(intensity, maskIntensityBias)))
		glow := maskGlowBase + maskGlowRange*math.Sqrt(intensity)

		buf[base+0] = scaleColorComponent(tint.R, glow)
		buf[base+1] = scaleColorComponent(tint.G, glow)
		buf[base+2] = scaleColorComponent(tint.B, glow)
		buf[base+3] = alpha
	}
}

func scaleColorComponent(c uint8, f float64) uint8 {
	return uint8(math.Round(clamp01(float64(c)/255*f) * 255))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
