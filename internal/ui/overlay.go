//go:build ebiten

package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"kinetic-table/pkg/hal"
)

// Overlay highlights pins that are still travelling toward their target.
type Overlay struct {
	grid    *hal.ActuatorGrid
	scale   int
	show    bool
	maskImg *ebiten.Image
	maskBuf []byte
	current []float64
	target  []float64
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(grid *hal.ActuatorGrid, scale int) *Overlay {
	rows, cols := grid.Dims()
	return &Overlay{
		grid:    grid,
		scale:   scale,
		show:    true,
		maskImg: ebiten.NewImage(cols, rows),
		maskBuf: make([]byte, 4*rows*cols),
		current: make([]float64, rows*cols),
		target:  make([]float64, rows*cols),
	}
}

// Update toggles the overlay with the M key.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		o.show = !o.show
	}
}

// Draw renders the overlay onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if !o.show {
		return
	}
	if err := o.grid.StateInto(o.current, o.target); err != nil {
		return
	}
	lo, hi := o.grid.Bounds()
	fillErrorMask(o.maskBuf, o.current, o.target, hi-lo, color.RGBA{R: 255, G: 80, B: 40})
	o.maskImg.WritePixels(o.maskBuf)

	scale := o.scale
	if scale <= 0 {
		scale = 1
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	screen.DrawImage(o.maskImg, op)
}
