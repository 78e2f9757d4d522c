//go:build ebiten

package ui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"

	"kinetic-table/internal/sim"
)

const (
	panelPadding = 8
	lineHeight   = 16
)

// HUD renders the status panel to the right of the table view.
type HUD struct {
	runner *sim.Runner
	width  int
	panel  *ebiten.Image
}

// NewHUD constructs a HUD for the provided runner and panel width.
func NewHUD(runner *sim.Runner, width int) *HUD {
	if width < 0 {
		width = 0
	}
	return &HUD{runner: runner, width: width}
}

// Width returns the panel width in pixels.
func (h *HUD) Width() int { return h.width }

// Draw renders the panel at offsetX.
func (h *HUD) Draw(screen *ebiten.Image, offsetX int) {
	if h.width == 0 {
		return
	}
	height := screen.Bounds().Dy()
	if h.panel == nil || h.panel.Bounds().Dy() != height {
		h.panel = ebiten.NewImage(h.width, height)
	}
	h.panel.Fill(color.RGBA{R: 24, G: 24, B: 30, A: 255})

	face := basicfont.Face7x13
	y := panelPadding + lineHeight
	line := func(s string, c color.Color) {
		text.Draw(h.panel, s, face, panelPadding, y, c)
		y += lineHeight
	}
	title := color.RGBA{R: 200, G: 200, B: 210, A: 255}
	body := color.RGBA{R: 220, G: 220, B: 230, A: 255}
	dim := color.RGBA{R: 160, G: 160, B: 170, A: 255}

	grid := h.runner.Grid()
	st := grid.Stats()
	rows, cols := grid.Dims()
	lo, hi := grid.Bounds()

	line("Kinetic table", title)
	line(fmt.Sprintf("%dx%d  %g-%g mm", rows, cols, lo, hi), dim)
	line(fmt.Sprintf("speed %g mm/s", grid.MaxSpeed()), dim)
	y += lineHeight / 2

	status := h.runner.Engine().Current()
	if h.runner.Paused() {
		status += " (feed paused)"
	}
	line("pattern: "+status, body)
	for _, group := range h.runner.Engine().Parameters().Groups {
		for _, p := range group.Params {
			line(fmt.Sprintf("  %s = %s", p.Key, p.Value), dim)
		}
	}
	y += lineHeight / 2

	line(fmt.Sprintf("tick %d  t=%.1fs", h.runner.Ticks(), h.runner.Elapsed()), body)
	line(fmt.Sprintf("moving %d", st.Moving), body)
	line(fmt.Sprintf("max error %.1f mm", st.MaxError), body)
	line(fmt.Sprintf("mean %.1f mm", st.MeanHeight), body)
	y += lineHeight / 2

	line("0-9 pattern  P feed", dim)
	line("space freeze  N tick", dim)
	line("H home  M motion  C colors", dim)
	line("Q quit", dim)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}
