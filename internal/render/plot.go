package render

import (
	"fmt"
	"image/color"
	"strconv"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// heightGrid adapts a snapshot to plotter.GridXYZ. Columns run along X and
// rows are flipped onto Y, so row 0 is drawn at the top like the raw images.
type heightGrid struct {
	m *mat.Dense
}

func (g heightGrid) Dims() (c, r int) {
	r, c = g.m.Dims()
	return c, r
}

func (g heightGrid) Z(c, r int) float64 {
	rows, _ := g.m.Dims()
	return g.m.At(rows-1-r, c)
}

func (g heightGrid) X(c int) float64 { return float64(c) }
func (g heightGrid) Y(r int) float64 { return float64(r) }

// rowTicks labels a flipped Y axis with table row numbers.
type rowTicks struct {
	rows int
}

func (rt rowTicks) Ticks(min, max float64) []plot.Tick {
	ticks := plot.DefaultTicks{}.Ticks(min, max)
	for i, t := range ticks {
		if t.Label == "" {
			continue
		}
		ticks[i].Label = strconv.FormatFloat(float64(rt.rows-1)-t.Value, 'g', -1, 64)
	}
	return ticks
}

// WriteHeatmap saves a heat map of the snapshot to path. The image format
// follows the file extension (png, svg, pdf, ...). lo and hi pin the colour
// scale to the table's travel so frames are comparable.
func WriteHeatmap(path, title string, snapshot *mat.Dense, lo, hi float64) error {
	rows, cols := snapshot.Dims()
	if rows == 0 || cols == 0 {
		return fmt.Errorf("render: empty snapshot")
	}
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "column"
	p.Y.Label.Text = "row"
	p.Y.Tick.Marker = rowTicks{rows: rows}

	hm := plotter.NewHeatMap(heightGrid{m: snapshot}, palette.Heat(32, 1))
	hm.Min = lo
	hm.Max = hi
	hm.Underflow = color.Black
	p.Add(hm)

	size := vg.Length(cols) * 0.25 * vg.Inch
	if size < 4*vg.Inch {
		size = 4 * vg.Inch
	}
	aspect := vg.Length(rows) / vg.Length(cols)
	if err := p.Save(size, size*aspect, path); err != nil {
		return fmt.Errorf("save heatmap %s: %w", path, err)
	}
	return nil
}

// Sample is one point of a pin trace.
type Sample struct {
	Time    float64
	Current float64
	Target  float64
}

// WriteTrace saves a line plot of a single pin's current and target height
// over time.
func WriteTrace(path, title string, samples []Sample) error {
	if len(samples) == 0 {
		return fmt.Errorf("render: no samples")
	}
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "time (s)"
	p.Y.Label.Text = "height (mm)"

	cur := make(plotter.XYs, len(samples))
	tgt := make(plotter.XYs, len(samples))
	for i, s := range samples {
		cur[i] = plotter.XY{X: s.Time, Y: s.Current}
		tgt[i] = plotter.XY{X: s.Time, Y: s.Target}
	}

	curLine, err := plotter.NewLine(cur)
	if err != nil {
		return err
	}
	curLine.Width = vg.Points(1.5)
	curLine.Color = color.RGBA{R: 30, G: 90, B: 200, A: 255}

	tgtLine, err := plotter.NewLine(tgt)
	if err != nil {
		return err
	}
	tgtLine.Width = vg.Points(1)
	tgtLine.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
	tgtLine.Color = color.RGBA{R: 200, G: 60, B: 40, A: 255}

	p.Add(curLine, tgtLine)
	p.Legend.Add("current", curLine)
	p.Legend.Add("target", tgtLine)

	if err := p.Save(10*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("save trace %s: %w", path, err)
	}
	return nil
}
