// Package hal models a kinetic table: a grid of motorized pins whose current
// heights chase commanded target heights at a bounded speed.
//
// A single writer (the simulation loop) calls Step and the SetTargets family;
// any number of readers may call CurrentHeights, CurrentInto, Targets, AtRest
// and Stats concurrently and always observe a whole tick, never a partial one.
package hal

import (
	"fmt"
	"math"
	"sync"

	"kinetic-table/internal/core"
	pcore "kinetic-table/pkg/core"
)

// RestEpsilon is the tolerance AtRest uses when comparing current and target.
const RestEpsilon = 1e-9

// Config controls the geometry and physical limits of an ActuatorGrid.
type Config struct {
	Rows int
	Cols int

	MinHeight float64
	MaxHeight float64
	// MaxSpeed is the per-pin speed limit in height units per second.
	MaxSpeed float64

	// RestAtMidpoint starts pins halfway between the bounds instead of at
	// MinHeight.
	RestAtMidpoint bool
}

// DefaultConfig returns a 30x30 table with 0-100 mm travel at 50 mm/s.
func DefaultConfig() Config {
	return Config{
		Rows:      30,
		Cols:      30,
		MinHeight: 0,
		MaxHeight: 100,
		MaxSpeed:  50,
	}
}

// Validate checks the configuration for values the grid cannot represent.
func (c Config) Validate() error {
	switch {
	case c.Rows <= 0:
		return fmt.Errorf("%w: rows must be positive, got %d", ErrInvalidArgument, c.Rows)
	case c.Cols <= 0:
		return fmt.Errorf("%w: cols must be positive, got %d", ErrInvalidArgument, c.Cols)
	case !finite(c.MinHeight) || !finite(c.MaxHeight):
		return fmt.Errorf("%w: height bounds must be finite", ErrInvalidArgument)
	case c.MinHeight >= c.MaxHeight:
		return fmt.Errorf("%w: min height %g must be below max height %g", ErrInvalidArgument, c.MinHeight, c.MaxHeight)
	case !finite(c.MaxSpeed) || c.MaxSpeed <= 0:
		return fmt.Errorf("%w: max speed must be positive, got %g", ErrInvalidArgument, c.MaxSpeed)
	}
	return nil
}

// RestHeight reports the height pins start at and return to on Home.
func (c Config) RestHeight() float64 {
	if c.RestAtMidpoint {
		return c.MinHeight + (c.MaxHeight-c.MinHeight)/2
	}
	return c.MinHeight
}

// ActuatorGrid owns the current and target height of every pin.
type ActuatorGrid struct {
	mu sync.RWMutex

	cfg     Config
	current *core.FloatGrid
	target  *core.FloatGrid
}

// New returns a grid with the given geometry and limits, resting at
// minHeight.
func New(rows, cols int, minHeight, maxHeight, maxSpeed float64) (*ActuatorGrid, error) {
	return NewWithConfig(Config{
		Rows:      rows,
		Cols:      cols,
		MinHeight: minHeight,
		MaxHeight: maxHeight,
		MaxSpeed:  maxSpeed,
	})
}

// NewWithConfig returns a grid configured from the provided options.
func NewWithConfig(cfg Config) (*ActuatorGrid, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	g := &ActuatorGrid{
		cfg:     cfg,
		current: core.NewFloatGrid(cfg.Rows, cfg.Cols),
		target:  core.NewFloatGrid(cfg.Rows, cfg.Cols),
	}
	rest := cfg.RestHeight()
	g.current.Fill(rest)
	g.target.Fill(rest)
	return g, nil
}

// Config returns the construction parameters.
func (g *ActuatorGrid) Config() Config { return g.cfg }

// Size returns the grid dimensions.
func (g *ActuatorGrid) Size() pcore.Size { return pcore.Size{Rows: g.cfg.Rows, Cols: g.cfg.Cols} }

// Dims returns the number of rows and columns.
func (g *ActuatorGrid) Dims() (rows, cols int) { return g.cfg.Rows, g.cfg.Cols }

// Bounds returns the minimum and maximum pin heights.
func (g *ActuatorGrid) Bounds() (min, max float64) { return g.cfg.MinHeight, g.cfg.MaxHeight }

// MaxSpeed returns the per-pin speed limit in height units per second.
func (g *ActuatorGrid) MaxSpeed() float64 { return g.cfg.MaxSpeed }

// clamp maps v into the height bounds. NaN maps to the lower bound.
func (g *ActuatorGrid) clamp(v float64) float64 {
	if math.IsNaN(v) || v < g.cfg.MinHeight {
		return g.cfg.MinHeight
	}
	if v > g.cfg.MaxHeight {
		return g.cfg.MaxHeight
	}
	return v
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
