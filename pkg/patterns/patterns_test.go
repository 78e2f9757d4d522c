package patterns

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"kinetic-table/pkg/core"
)

func TestEveryPatternStaysInRange(t *testing.T) {
	sizes := []core.Size{{Rows: 30, Cols: 30}, {Rows: 4, Cols: 9}, {Rows: 1, Cols: 1}}
	ranges := []core.Range{{Min: 0, Max: 100}, {Min: -20, Max: 80}}
	times := []float64{0, 0.37, 1, 5.5, 42}

	names := core.PatternNames()
	require.Subset(t, names, []string{"wave", "ripple", "breathe", "mountain", "spiral", "rain", "chaos", "speaking", "noise", "life"})

	for _, name := range names {
		for _, size := range sizes {
			for _, hr := range ranges {
				p := core.Patterns()[name](size, hr, nil)
				require.Equal(t, name, p.Name())
				dst := mat.NewDense(size.Rows, size.Cols, nil)
				for _, ts := range times {
					p.Generate(ts, dst)
					lo, hi := mat.Min(dst), mat.Max(dst)
					assert.GreaterOrEqualf(t, lo, hr.Min-1e-9, "%s %v t=%v", name, size, ts)
					assert.LessOrEqualf(t, hi, hr.Max+1e-9, "%s %v t=%v", name, size, ts)
				}
			}
		}
	}
}

func TestPatternsAreDeterministic(t *testing.T) {
	size := core.Size{Rows: 12, Cols: 10}
	hr := core.Range{Min: 0, Max: 100}
	for _, name := range core.PatternNames() {
		a := core.Patterns()[name](size, hr, nil)
		b := core.Patterns()[name](size, hr, nil)
		da := mat.NewDense(size.Rows, size.Cols, nil)
		db := mat.NewDense(size.Rows, size.Cols, nil)
		a.Generate(3.25, da)
		b.Generate(3.25, db)
		assert.Truef(t, mat.Equal(da, db), "%s differs between instances", name)
	}
}

func TestWaveMatchesFormula(t *testing.T) {
	w := NewWave(core.Size{Rows: 3, Cols: 3}, core.Range{Min: 0, Max: 100}, map[string]string{
		"frequency": "1",
		"speed":     "0",
	})
	dst := mat.NewDense(3, 3, nil)
	w.Generate(0, dst)

	// x = 0, 0.5, 1 along columns: sin(0), sin(pi), sin(2pi) -> mid height.
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			assert.InDelta(t, 50, dst.At(r, c), 1e-9)
		}
	}
}

func TestConfigOverridesIgnoreGarbage(t *testing.T) {
	s := NewSpiral(core.Size{Rows: 5, Cols: 5}, core.Range{Max: 100}, map[string]string{
		"arms":  "-3",
		"speed": "fast",
	})
	assert.Equal(t, 2, s.arms)
	assert.Equal(t, 1.5, s.speed)

	snap := s.Parameters()
	require.Len(t, snap.Groups, 1)
	assert.Equal(t, "arms", snap.Groups[0].Params[0].Key)
	assert.Equal(t, "2", snap.Groups[0].Params[0].Value)
}

func TestParsePeaks(t *testing.T) {
	peaks := ParsePeaks("1:2:30:4, bad, 5:6:70:0, 7:8:9:1.5")
	assert.Equal(t, []Peak{
		{X: 1, Y: 2, Height: 30, Spread: 4},
		{X: 7, Y: 8, Height: 9, Spread: 1.5},
	}, peaks)
	assert.Empty(t, ParsePeaks(""))
}

func TestMountainPeakIsHighest(t *testing.T) {
	m := NewMountain(core.Size{Rows: 11, Cols: 11}, core.Range{Max: 100}, map[string]string{"peaks": "3:7:60:2"})
	dst := mat.NewDense(11, 11, nil)
	m.Generate(0, dst)
	assert.Equal(t, mat.Max(dst), dst.At(7, 3))
}

func TestNormaliseFlatField(t *testing.T) {
	f := newField(core.Size{Rows: 2, Cols: 2}, core.Range{Min: 10, Max: 30})
	dst := mat.NewDense(2, 2, []float64{5, 5, 5, 5})
	f.normalise(dst, 1)
	assert.True(t, mat.Equal(dst, mat.NewDense(2, 2, []float64{20, 20, 20, 20})))

	dst = mat.NewDense(1, 3, []float64{-1, 0, 3})
	f = newField(core.Size{Rows: 1, Cols: 3}, core.Range{Min: 0, Max: 100})
	f.normalise(dst, 0.8)
	assert.InDeltaSlice(t, []float64{0, 20, 80}, dst.RawMatrix().Data, 1e-9)
}

func TestNoiseIsContinuousAcrossKeyframes(t *testing.T) {
	size := core.Size{Rows: 6, Cols: 6}
	n := NewNoise(size, core.Range{Max: 100}, map[string]string{"period": "1", "seed": "9"})
	before := mat.NewDense(6, 6, nil)
	after := mat.NewDense(6, 6, nil)
	n.Generate(0.9999, before)
	n.Generate(1.0, after)

	gap := floats.Distance(before.RawMatrix().Data, after.RawMatrix().Data, math.Inf(1))
	assert.Less(t, gap, 1e-3)
}

func TestNoiseReplaysOutOfOrder(t *testing.T) {
	size := core.Size{Rows: 3, Cols: 4}
	hr := core.Range{Max: 100}
	a := NewNoise(size, hr, nil)
	b := NewNoise(size, hr, nil)
	da := mat.NewDense(3, 4, nil)
	db := mat.NewDense(3, 4, nil)

	a.Generate(1, da)
	a.Generate(7.5, da)
	b.Generate(7.5, db)
	assert.True(t, mat.Equal(da, db))
}
