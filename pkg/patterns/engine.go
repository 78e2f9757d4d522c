package patterns

import (
	"errors"
	"fmt"
	"maps"
	"strings"

	"gonum.org/v1/gonum/mat"

	"kinetic-table/pkg/core"
)

// ErrUnknownPattern reports a pattern name with no registered factory.
var ErrUnknownPattern = errors.New("patterns: unknown pattern")

// Engine holds the active pattern and produces target fields for a table.
type Engine struct {
	size    core.Size
	heights core.Range

	name    string
	params  map[string]string
	pattern core.Pattern
}

// NewEngine returns an engine running the default wave pattern.
func NewEngine(size core.Size, heights core.Range) *Engine {
	e := &Engine{size: size, heights: heights}
	if err := e.SetPattern("wave", nil); err != nil {
		panic(err)
	}
	return e
}

// SetPattern switches to the named pattern. Setting the pattern that is
// already active with the same parameters keeps its internal state.
func (e *Engine) SetPattern(name string, params map[string]string) error {
	factory, ok := core.Patterns()[name]
	if !ok {
		return fmt.Errorf("%w %q (have %s)", ErrUnknownPattern, name, strings.Join(core.PatternNames(), ", "))
	}
	if e.pattern != nil && name == e.name && maps.Equal(params, e.params) {
		return nil
	}
	e.name = name
	e.params = params
	e.pattern = factory(e.size, e.heights, params)
	return nil
}

// Current returns the active pattern name.
func (e *Engine) Current() string { return e.name }

// Pattern returns the active pattern.
func (e *Engine) Pattern() core.Pattern { return e.pattern }

// Generate returns a fresh target field for time t.
func (e *Engine) Generate(t float64) *mat.Dense {
	dst := mat.NewDense(e.size.Rows, e.size.Cols, nil)
	e.GenerateInto(t, dst)
	return dst
}

// GenerateInto writes the target field for time t into dst, which must be
// Rows x Cols.
func (e *Engine) GenerateInto(t float64, dst *mat.Dense) {
	e.pattern.Generate(t, dst)
}

// Parameters reports the active pattern's tunables, if it exposes any.
func (e *Engine) Parameters() core.ParameterSnapshot {
	if p, ok := e.pattern.(core.ParameterProvider); ok {
		return p.Parameters()
	}
	return core.ParameterSnapshot{}
}
