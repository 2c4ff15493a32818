package chart

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var (
	// ErrUnsupported is returned for kinds that are only drawn in the browser.
	ErrUnsupported = errors.New("chart kind cannot be rendered as png")
	// ErrNoData is returned when a figure has nothing to draw.
	ErrNoData = errors.New("no data to chart")
)

// PNG size.
const (
	Width  = 900
	Height = 450
)

// RenderPNG draws the figure as a PNG image. Line, area, bar, stacked bar and
// pie charts are drawn with go-chart, the others with gonum/plot. Treemaps and
// sunbursts are only supported in the browser.
func RenderPNG(w io.Writer, f Figure) error {
	if f.Kind == Treemap || f.Kind == Sunburst {
		return fmt.Errorf("%s: %w", f.Kind, ErrUnsupported)
	}
	if f.Empty() {
		return fmt.Errorf("%s: %w", f.ID, ErrNoData)
	}
	switch f.Kind {
	case Line, Area:
		return renderLines(w, f)
	case Bar:
		return renderBars(w, f)
	case StackedBar:
		return renderStacked(w, f)
	case Pie:
		return renderPie(w, f)
	case HBar, Funnel:
		return renderHBars(w, f)
	case GroupedBar:
		return renderGrouped(w, f)
	case Bubble:
		return renderBubbles(w, f)
	case Heatmap:
		return renderHeatmap(w, f)
	default:
		return fmt.Errorf("%s: %w", f.Kind, ErrUnsupported)
	}
}

func hexColor(hex string, fallback drawing.Color) drawing.Color {
	if hex == "" {
		return fallback
	}
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}

var background = chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 28}}

// renderLines draws series sharing the category labels of the first one.
func renderLines(w io.Writer, f Figure) error {
	labels := f.Series[0].Labels
	var ticks []chart.Tick
	for i, l := range labels {
		ticks = append(ticks, chart.Tick{Value: float64(i), Label: l})
	}
	minY, maxY := 0.0, 0.0
	var series []chart.Series
	for _, s := range f.Series {
		xs := make([]float64, len(s.Values))
		for i, v := range s.Values {
			xs[i] = float64(i)
			minY, maxY = math.Min(minY, v), math.Max(maxY, v)
		}
		c := hexColor(s.Color, chart.ColorBlue)
		st := chart.Style{StrokeWidth: 3, StrokeColor: c, DotWidth: 4, DotColor: c}
		if f.Kind == Area {
			st.FillColor = c.WithAlpha(80)
		}
		// a single point has no x range.
		if len(xs) == 1 {
			xs, s.Values = []float64{-0.5, 0.5}, []float64{s.Values[0], s.Values[0]}
		}
		series = append(series, chart.ContinuousSeries{Name: s.Name, XValues: xs, YValues: s.Values, Style: st})
	}
	if maxY <= minY {
		maxY = minY + 1
	}
	ch := chart.Chart{
		Title:      f.Title,
		Width:      Width,
		Height:     Height,
		Background: background,
		XAxis: chart.XAxis{
			Name:  f.XTitle,
			Ticks: ticks,
			Range: &chart.ContinuousRange{Min: -0.5, Max: float64(len(labels)) - 0.5},
		},
		YAxis: chart.YAxis{
			Name:  f.YTitle,
			Range: &chart.ContinuousRange{Min: minY, Max: maxY * 1.1},
		},
		Series: series,
	}
	if len(series) > 1 {
		ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	}
	return ch.Render(chart.PNG, w)
}

func values(s Series, c drawing.Color) []chart.Value {
	out := make([]chart.Value, len(s.Values))
	for i, v := range s.Values {
		out[i] = chart.Value{Label: s.Labels[i], Value: v, Style: chart.Style{FillColor: c, StrokeColor: c}}
	}
	return out
}

func renderBars(w io.Writer, f Figure) error {
	s := f.Series[0]
	lo, hi := 0.0, 0.0
	for _, v := range s.Values {
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}
	if hi <= lo {
		hi = lo + 1
	}
	bc := chart.BarChart{
		Title:      f.Title,
		Width:      Width,
		Height:     Height,
		Background: background,
		BarWidth:   max(8, 460/max(1, s.Len())),
		BarSpacing: max(4, 230/max(1, s.Len())),
		// bars of equal height have no y range.
		YAxis: chart.YAxis{Range: &chart.ContinuousRange{Min: lo, Max: hi * 1.1}},
		Bars:  values(s, hexColor(s.Color, chart.ColorBlue)),
	}
	return bc.Render(chart.PNG, w)
}

func renderStacked(w io.Writer, f Figure) error {
	first := f.Series[0]
	bars := make([]chart.StackedBar, len(first.Labels))
	total := 0.0
	for i, l := range first.Labels {
		bars[i].Name = l
		for _, s := range f.Series {
			total += s.Values[i]
			c := hexColor(s.Color, chart.ColorBlue)
			bars[i].Values = append(bars[i].Values, chart.Value{
				Label: s.Name,
				Value: s.Values[i],
				Style: chart.Style{FillColor: c, StrokeColor: c},
			})
		}
	}
	if total <= 0 {
		return fmt.Errorf("%s: %w", f.ID, ErrNoData)
	}
	sbc := chart.StackedBarChart{
		Title:      f.Title,
		Width:      Width,
		Height:     Height,
		Background: background,
		BarSpacing: 20,
		Bars:       bars,
	}
	return sbc.Render(chart.PNG, w)
}

func renderPie(w io.Writer, f Figure) error {
	s := f.Series[0]
	var vs []chart.Value
	for i, v := range s.Values {
		if v > 0 {
			vs = append(vs, chart.Value{Label: s.Labels[i], Value: v})
		}
	}
	if len(vs) == 0 {
		return fmt.Errorf("%s: %w", f.ID, ErrNoData)
	}
	pc := chart.PieChart{Title: f.Title, Width: Width, Height: Height, Values: vs}
	return pc.Render(chart.PNG, w)
}

// newPlot returns a gonum plot with the figure titles.
func newPlot(f Figure) *plot.Plot {
	p := plot.New()
	p.Title.Text = f.Title
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.X.Label.Text = f.XTitle
	p.Y.Label.Text = f.YTitle
	return p
}

func save(w io.Writer, p *plot.Plot) error {
	wt, err := p.WriterTo(vg.Length(Width)*vg.Inch/96, vg.Length(Height)*vg.Inch/96, "png")
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}

// renderHBars draws the first series as horizontal bars, first label on top.
func renderHBars(w io.Writer, f Figure) error {
	s := f.Series[0]
	n := s.Len()
	vals := make(plotter.Values, n)
	labels := make([]string, n)
	for i := range s.Values {
		vals[n-1-i], labels[n-1-i] = s.Values[i], s.Labels[i]
	}
	p := newPlot(f)
	bars, err := plotter.NewBarChart(vals, vg.Points(14))
	if err != nil {
		return err
	}
	bars.Horizontal = true
	bars.LineStyle.Width = vg.Length(0)
	bars.Color = color.RGBA{R: 59, G: 130, B: 246, A: 255}
	if f.Kind == Funnel {
		bars.Color = color.RGBA{R: 16, G: 185, B: 129, A: 255}
	}
	p.Add(plotter.NewGrid(), bars)
	p.NominalY(labels...)
	return save(w, p)
}

// renderGrouped draws one bar per series side by side for every label.
func renderGrouped(w io.Writer, f Figure) error {
	p := newPlot(f)
	pal := palette.Heat(max(2, len(f.Series)), 1).Colors()
	width := vg.Points(12)
	for i, s := range f.Series {
		bars, err := plotter.NewBarChart(plotter.Values(s.Values), width)
		if err != nil {
			return err
		}
		bars.LineStyle.Width = vg.Length(0)
		bars.Color = pal[i%len(pal)]
		bars.Offset = width * vg.Length(2*i-len(f.Series)+1) / 2
		p.Add(bars)
		p.Legend.Add(s.Name, bars)
	}
	p.Legend.Top = true
	p.NominalX(f.Series[0].Labels...)
	return save(w, p)
}

// renderBubbles draws one circle per point, its area proportional to the
// size and its colour following the colour value.
func renderBubbles(w io.Writer, f Figure) error {
	s := f.Series[0]
	xys := make(plotter.XYs, s.Len())
	for i := range s.Values {
		xys[i] = plotter.XY{X: s.X[i], Y: s.Values[i]}
	}
	scatter, err := plotter.NewScatter(xys)
	if err != nil {
		return err
	}
	maxSize, lo, hi := 0.0, math.Inf(1), math.Inf(-1)
	for i := range s.Sizes {
		maxSize = math.Max(maxSize, s.Sizes[i])
		lo, hi = math.Min(lo, s.Colors[i]), math.Max(hi, s.Colors[i])
	}
	colors := palette.Heat(16, 0.8).Colors()
	scatter.GlyphStyleFunc = func(i int) draw.GlyphStyle {
		r := vg.Points(4)
		if maxSize > 0 {
			r += vg.Points(26 * math.Sqrt(s.Sizes[i]/maxSize))
		}
		c := 0
		if hi > lo {
			c = int(float64(len(colors)-1) * (s.Colors[i] - lo) / (hi - lo))
		}
		return draw.GlyphStyle{Color: colors[c], Radius: r, Shape: draw.CircleGlyph{}}
	}
	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: s.Labels})
	if err != nil {
		return err
	}
	p := newPlot(f)
	p.Add(plotter.NewGrid(), scatter, labels)
	return save(w, p)
}

// grid adapts the figure cells to plotter.GridXYZ. Row 0 is drawn on top.
type grid struct{ f Figure }

func (g grid) Dims() (c, r int)   { return len(g.f.Cols), len(g.f.Rows) }
func (g grid) X(c int) float64    { return float64(c) }
func (g grid) Y(r int) float64    { return float64(r) }
func (g grid) Z(c, r int) float64 { return g.f.Z[len(g.f.Rows)-1-r][c] }

func renderHeatmap(w io.Writer, f Figure) error {
	h := plotter.NewHeatMap(grid{f}, palette.Heat(12, 1))
	if h.Max <= h.Min {
		h.Max = h.Min + 1
	}
	p := newPlot(f)
	p.Add(h)
	p.NominalX(f.Cols...)
	rows := make([]string, len(f.Rows))
	for i, r := range f.Rows {
		rows[len(rows)-1-i] = r
	}
	p.NominalY(rows...)
	return save(w, p)
}
