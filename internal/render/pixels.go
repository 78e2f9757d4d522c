package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
)

// Ramp is an ordered list of colour stops spread evenly from the lowest to
// the highest pin height.
type Ramp []color.RGBA

var (
	// Grayscale shades low pins black and high pins white.
	Grayscale = Ramp{
		{R: 0, G: 0, B: 0, A: 255},
		{R: 255, G: 255, B: 255, A: 255},
	}
	// Terrain runs from deep blue through green to snow.
	Terrain = Ramp{
		{R: 20, G: 40, B: 110, A: 255},
		{R: 40, G: 140, B: 90, A: 255},
		{R: 200, G: 180, B: 90, A: 255},
		{R: 250, G: 250, B: 250, A: 255},
	}
)

// At returns the colour for v in [0, 1]; values outside are clamped.
func (r Ramp) At(v float64) color.RGBA {
	switch len(r) {
	case 0:
		return color.RGBA{}
	case 1:
		return r[0]
	}
	if math.IsNaN(v) || v <= 0 {
		return r[0]
	}
	if v >= 1 {
		return r[len(r)-1]
	}
	pos := v * float64(len(r)-1)
	i := int(pos)
	f := pos - float64(i)
	a, b := r[i], r[i+1]
	lerp := func(x, y uint8) uint8 { return uint8(math.Round(float64(x) + (float64(y)-float64(x))*f)) }
	return color.RGBA{R: lerp(a.R, b.R), G: lerp(a.G, b.G), B: lerp(a.B, b.B), A: lerp(a.A, b.A)}
}

// fillHeightRGBA converts row-major heights in [lo, hi] into RGBA pixels in
// buf using the ramp.
func fillHeightRGBA(buf []byte, heights []float64, lo, hi float64, ramp Ramp) {
	span := hi - lo
	for i, h := range heights {
		v := 0.0
		if span > 0 {
			v = (h - lo) / span
		}
		col := ramp.At(v)
		base := i * 4
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

// HeightImage renders heights (rows x cols, row-major) as one pixel per pin.
func HeightImage(heights []float64, rows, cols int, lo, hi float64, ramp Ramp) (*image.RGBA, error) {
	if rows*cols != len(heights) {
		return nil, fmt.Errorf("render: %d heights for a %dx%d grid", len(heights), rows, cols)
	}
	img := image.NewRGBA(image.Rect(0, 0, cols, rows))
	fillHeightRGBA(img.Pix, heights, lo, hi, ramp)
	return img, nil
}

// WritePNG writes the pixel-per-pin image to path.
func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
