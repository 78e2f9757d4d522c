package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

type flat struct{}

func (flat) Name() string { return "flat" }

func (flat) Generate(float64, *mat.Dense) {}

func TestRegistry(t *testing.T) {
	f := func(Size, Range, map[string]string) Pattern { return flat{} }
	Register("", f)
	Register("zz-flat", nil)
	assert.NotContains(t, Patterns(), "")
	assert.NotContains(t, Patterns(), "zz-flat")

	Register("zz-flat", f)
	Register("aa-flat", f)
	t.Cleanup(func() {
		delete(patterns, "zz-flat")
		delete(patterns, "aa-flat")
	})

	names := PatternNames()
	assert.IsNonDecreasing(t, names)
	assert.Contains(t, names, "aa-flat")
	assert.Equal(t, "flat", Patterns()["zz-flat"](Size{}, Range{}, nil).Name())
}

func TestParamHelpers(t *testing.T) {
	cfg := map[string]string{"f": "2.5", "bad": "x", "i": "7", "neg": "-1"}
	assert.Equal(t, 2.5, Float(cfg, "f", 1))
	assert.Equal(t, 1.0, Float(cfg, "bad", 1))
	assert.Equal(t, 1.0, Float(nil, "f", 1))
	assert.Equal(t, 7, Int(cfg, "i", 3))
	assert.Equal(t, 3, Int(cfg, "neg", 3))
	assert.Equal(t, 3, Int(cfg, "missing", 3))

	assert.Equal(t, Parameter{Key: "k", Label: "K", Type: ParamTypeFloat, Value: "0.125"}, FloatParam("k", "K", 0.125))
	assert.Equal(t, "12", IntParam("k", "K", 12).Value)
}

func TestRange(t *testing.T) {
	assert.Equal(t, 30.0, Range{Min: -10, Max: 20}.Span())
}

func TestRNGDeterministic(t *testing.T) {
	a, b := NewRNG(5), NewRNG(5)
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Float64(), b.Float64())
		v := a.Signed()
		assert.Equal(t, v, b.Signed())
		assert.GreaterOrEqual(t, v, -1.0)
		assert.Less(t, v, 1.0)
	}

	buf := make([]float64, 16)
	FillSigned(NewRNG(1).Source(), buf)
	for _, v := range buf {
		assert.GreaterOrEqual(t, v, -1.0)
		assert.Less(t, v, 1.0)
	}
}

func TestFillBinaryDensity(t *testing.T) {
	buf := make([]uint8, 64)
	FillBinary(NewRNG(1).Source(), buf, 0)
	assert.NotContains(t, buf, uint8(1))

	FillBinary(NewRNG(1).Source(), buf, 1)
	assert.NotContains(t, buf, uint8(0))

	a := make([]uint8, 64)
	FillBinary(NewRNG(9).Source(), a, 0.5)
	FillBinary(NewRNG(9).Source(), buf, 0.5)
	assert.Equal(t, a, buf)
}
