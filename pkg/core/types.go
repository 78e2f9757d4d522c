package core

import (
	"sort"

	"gonum.org/v1/gonum/mat"
)

// Size describes the dimensions of a pin grid.
type Size struct {
	Rows int
	Cols int
}

// Range is a closed interval of pin heights.
type Range struct {
	Min float64
	Max float64
}

// Span returns Max - Min.
func (r Range) Span() float64 { return r.Max - r.Min }

// Pattern defines the minimal contract a target-height generator must
// implement. Generate writes one target field for time t (seconds) into dst,
// which is always Rows x Cols.
type Pattern interface {
	Name() string
	Generate(t float64, dst *mat.Dense)
}

// Factory constructs a Pattern for the given geometry and height range using
// an optional configuration map.
type Factory func(size Size, heights Range, cfg map[string]string) Pattern

var patterns = map[string]Factory{}

// Register adds a pattern factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	patterns[name] = f
}

// Patterns exposes the registry of available pattern factories.
func Patterns() map[string]Factory {
	return patterns
}

// PatternNames returns the registered pattern names in sorted order.
func PatternNames() []string {
	names := make([]string, 0, len(patterns))
	for name := range patterns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
