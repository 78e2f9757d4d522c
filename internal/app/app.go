//go:build ebiten

package app

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"kinetic-table/internal/render"
	"kinetic-table/internal/sim"
	"kinetic-table/internal/ui"
	"kinetic-table/pkg/core"
)

// HUDWidth is the width of the status panel in pixels.
const HUDWidth = 220

var digitKeys = []ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3,
	ebiten.KeyDigit4, ebiten.KeyDigit5, ebiten.KeyDigit6,
	ebiten.KeyDigit7, ebiten.KeyDigit8, ebiten.KeyDigit9,
	ebiten.KeyDigit0,
}

// Game adapts a simulation runner to the ebiten.Game interface. ebiten calls
// Update at the configured TPS, so each Update is one fixed tick.
type Game struct {
	runner  *sim.Runner
	painter *render.GridPainter
	overlay *ui.Overlay
	hud     *ui.HUD

	heights []float64
	ramps   []render.Ramp
	ramp    int

	scale    int
	frozen   bool
	tickOnce bool
}

// New constructs a Game for the provided runner.
func New(runner *sim.Runner, scale int) *Game {
	rows, cols := runner.Grid().Dims()
	return &Game{
		runner:  runner,
		painter: render.NewGridPainter(rows, cols),
		overlay: ui.NewOverlay(runner.Grid(), scale),
		hud:     ui.NewHUD(runner, HUDWidth),
		heights: make([]float64, rows*cols),
		ramps:   []render.Ramp{render.Terrain, render.Grayscale},
		scale:   scale,
	}
}

// Update handles per-frame input and advances the simulation by one tick.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.frozen = !g.frozen
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.runner.Home()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.runner.SetPaused(!g.runner.Paused())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.ramp = (g.ramp + 1) % len(g.ramps)
	}
	names := core.PatternNames()
	for i, key := range digitKeys {
		if i < len(names) && inpututil.IsKeyJustPressed(key) {
			if err := g.runner.SetPattern(names[i], nil); err != nil {
				return err
			}
			g.runner.SetPaused(false)
		}
	}

	g.overlay.Update()

	if !g.frozen || g.tickOnce {
		if err := g.runner.Step(); err != nil {
			return err
		}
		g.tickOnce = false
	}
	return nil
}

// Draw renders the current pin heights.
func (g *Game) Draw(screen *ebiten.Image) {
	grid := g.runner.Grid()
	if err := grid.CurrentInto(g.heights); err != nil {
		return
	}
	lo, hi := grid.Bounds()
	g.painter.Blit(screen, g.heights, lo, hi, g.ramps[g.ramp], g.scale)
	g.overlay.Draw(screen)
	_, cols := grid.Dims()
	g.hud.Draw(screen, cols*g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	rows, cols := g.runner.Grid().Dims()
	return cols*g.scale + g.hud.Width(), rows * g.scale
}
