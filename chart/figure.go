// Package chart describes the dashboard charts as Figures. A Figure is drawn
// in the browser by Plotly.js from its JSON form, or rendered server side to
// PNG for reports and the command line.
package chart

import (
	"encoding/json"
)

// Kind is the type of chart of a Figure.
type Kind string

const (
	Line       Kind = "line"
	Area       Kind = "area"
	Bar        Kind = "bar"
	HBar       Kind = "hbar"
	StackedBar Kind = "stacked_bar"
	GroupedBar Kind = "grouped_bar"
	Pie        Kind = "pie"
	Treemap    Kind = "treemap"
	Sunburst   Kind = "sunburst"
	Bubble     Kind = "bubble"
	Heatmap    Kind = "heatmap"
	Funnel     Kind = "funnel"
)

// Series is one data series. Labels and Values are aligned. Bubble charts use
// X, Values (as y), Sizes and Colors. Hierarchies use IDs and Parents.
type Series struct {
	Name    string    `json:"name,omitempty"`
	Color   string    `json:"color,omitempty"`
	Labels  []string  `json:"labels,omitempty"`
	Values  []float64 `json:"values,omitempty"`
	X       []float64 `json:"x,omitempty"`
	Sizes   []float64 `json:"sizes,omitempty"`
	Colors  []float64 `json:"colors,omitempty"`
	IDs     []string  `json:"ids,omitempty"`
	Parents []string  `json:"parents,omitempty"`
}

// Len returns the number of points of the series.
func (s Series) Len() int { return len(s.Values) }

// Figure is the neutral description of a chart.
type Figure struct {
	ID         string
	Title      string
	Kind       Kind
	XTitle     string
	YTitle     string
	ColorScale string // Plotly colorscale of continuous colours
	Series     []Series

	// heatmap cells: Z[row][col]
	Rows []string
	Cols []string
	Z    [][]float64
}

// Empty reports whether the figure has nothing to draw.
func (f Figure) Empty() bool {
	if f.Kind == Heatmap {
		return len(f.Rows) == 0 || len(f.Cols) == 0
	}
	for _, s := range f.Series {
		if s.Len() > 0 {
			return false
		}
	}
	return true
}

// MarshalJSON encodes the figure with its Plotly "data" and "layout", ready
// for Plotly.newPlot.
func (f Figure) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID     string           `json:"id"`
		Title  string           `json:"title"`
		Kind   Kind             `json:"kind"`
		Data   []map[string]any `json:"data"`
		Layout map[string]any   `json:"layout"`
	}{f.ID, f.Title, f.Kind, f.traces(), f.layout()})
}

func (f Figure) traces() []map[string]any {
	traces := []map[string]any{}
	if f.Kind == Heatmap {
		return append(traces, map[string]any{
			"type":       "heatmap",
			"x":          f.Cols,
			"y":          f.Rows,
			"z":          f.Z,
			"colorscale": f.ColorScale,
		})
	}
	for _, s := range f.Series {
		t := map[string]any{"name": s.Name}
		switch f.Kind {
		case Line:
			t["type"], t["mode"], t["x"], t["y"] = "scatter", "lines+markers", s.Labels, s.Values
			t["line"] = map[string]any{"color": s.Color, "width": 3}
		case Area:
			t["type"], t["mode"], t["fill"], t["x"], t["y"] = "scatter", "lines", "tozeroy", s.Labels, s.Values
			t["line"] = map[string]any{"color": s.Color, "width": 3}
		case Bar, StackedBar, GroupedBar:
			t["type"], t["x"], t["y"] = "bar", s.Labels, s.Values
			t["marker"] = marker(s, f.ColorScale)
		case HBar:
			t["type"], t["orientation"], t["x"], t["y"] = "bar", "h", s.Values, s.Labels
			t["marker"] = marker(s, f.ColorScale)
		case Pie:
			t["type"], t["labels"], t["values"], t["textinfo"] = "pie", s.Labels, s.Values, "label+percent"
		case Treemap, Sunburst:
			t["type"], t["ids"], t["labels"], t["parents"], t["values"] = string(f.Kind), s.IDs, s.Labels, s.Parents, s.Values
			t["branchvalues"] = "remainder"
			t["marker"] = map[string]any{"colors": s.Colors, "colorscale": f.ColorScale, "showscale": true}
		case Bubble:
			t["type"], t["mode"], t["x"], t["y"], t["text"] = "scatter", "markers", s.X, s.Values, s.Labels
			t["marker"] = map[string]any{
				"size":       s.Sizes,
				"sizemode":   "area",
				"sizeref":    sizeRef(s.Sizes, 60),
				"color":      s.Colors,
				"colorscale": f.ColorScale,
				"showscale":  true,
			}
		case Funnel:
			t["type"], t["y"], t["x"], t["textinfo"] = "funnel", s.Labels, s.Values, "value+percent initial"
		}
		traces = append(traces, t)
	}
	return traces
}

func marker(s Series, scale string) map[string]any {
	if s.Color != "" {
		return map[string]any{"color": s.Color}
	}
	if scale != "" {
		return map[string]any{"color": s.Values, "colorscale": scale}
	}
	return nil
}

// sizeRef scales bubble areas so that the largest bubble is maxPx wide.
func sizeRef(sizes []float64, maxPx float64) float64 {
	largest := 0.0
	for _, s := range sizes {
		largest = max(largest, s)
	}
	if largest == 0 {
		return 1
	}
	return 2 * largest / (maxPx * maxPx)
}

func (f Figure) layout() map[string]any {
	l := map[string]any{
		"title":  map[string]any{"text": f.Title},
		"height": 420,
		"margin": map[string]any{"l": 60, "r": 20, "t": 60, "b": 60},
	}
	if f.XTitle != "" {
		l["xaxis"] = map[string]any{"title": map[string]any{"text": f.XTitle}}
	}
	if f.YTitle != "" {
		l["yaxis"] = map[string]any{"title": map[string]any{"text": f.YTitle}}
	}
	switch f.Kind {
	case StackedBar:
		l["barmode"] = "stack"
	case GroupedBar:
		l["barmode"] = "group"
	case HBar:
		l["yaxis"] = map[string]any{"autorange": "reversed"}
	case Line:
		if len(f.Series) > 1 {
			l["hovermode"] = "x unified"
		}
	}
	return l
}
