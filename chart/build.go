package chart

import (
	"fmt"

	"github.com/etnz/rpametrics"
	"github.com/shopspring/decimal"
)

// Series colours.
const (
	blue   = "#3b82f6"
	green  = "#10b981"
	amber  = "#f59e0b"
	purple = "#8b5cf6"
	red    = "#ef4444"
)

// Build returns every figure of the dashboard, in page order. Functional
// savings figures are only present when savings were loaded.
func Build(d *rpametrics.Dashboard) []Figure {
	figs := []Figure{
		trend("executions-trend", "Executions Trend", d, rpametrics.Executions, blue),
		trend("hours-trend", "Hours Saved Trend", d, rpametrics.Hours, green),
		trend("savings-trend", "Cost Savings Trend", d, rpametrics.Savings, amber),
		cumulative(d),
		{
			ID: "top-processes", Title: "Top 10 Processes by Executions", Kind: HBar,
			XTitle: "Total Executions", ColorScale: "Blues",
			Series: []Series{series("Executions", d.TopProcesses, rpametrics.Executions)},
		},
		{
			ID: "hours-by-area", Title: "Hours Saved by Business Area", Kind: Bar,
			YTitle: "Hours Saved", ColorScale: "Greens",
			Series: []Series{series("Hours Saved", d.HoursByArea, rpametrics.Hours)},
		},
		{
			ID: "savings-by-month", Title: "Cost Savings by Month", Kind: Bar,
			YTitle: "Cost Savings", ColorScale: "Oranges",
			Series: []Series{series("Cost Savings", d.SavingsByMonth, rpametrics.Savings)},
		},
		successVsExceptions(d),
		{
			ID: "executions-by-area", Title: "Executions by Business Area", Kind: Pie,
			Series: []Series{series("Executions", d.ExecutionsByArea, rpametrics.Executions)},
		},
		{
			ID: "savings-by-application", Title: "Cost Savings by Application", Kind: Pie,
			Series: []Series{series("Cost Savings", d.SavingsByApplication, rpametrics.Savings)},
		},
		{
			ID: "hours-by-machine", Title: "Hours Saved by Machine", Kind: Pie,
			Series: []Series{series("Hours Saved", d.HoursByMachine, rpametrics.Hours)},
		},
		hierarchy("process-treemap", "Processes by Business Area", Treemap, "RdYlGn",
			d.ProcessTree, rpametrics.Executions, rpametrics.Savings),
		hierarchy("application-treemap", "Applications by Business Area", Treemap, "Viridis",
			d.ApplicationTree, rpametrics.Hours, rpametrics.Executions),
		hierarchy("savings-sunburst", "Cost Savings Hierarchy", Sunburst, "Blues",
			d.SavingsTree, rpametrics.Savings, rpametrics.Savings),
		efficiency(d),
		matrix("savings-heatmap", "Cost Savings by Business Area and Month", d.Heatmap),
		yearOverYear(d),
		funnel(d),
	}
	if fs := d.FunctionalSavings; fs != nil {
		figs = append(figs, functionalTrend(fs), functionalByCategory(fs))
	}
	return figs
}

// Find returns the figure with the given id.
func Find(figs []Figure, id string) (Figure, bool) {
	for _, f := range figs {
		if f.ID == id {
			return f, true
		}
	}
	return Figure{}, false
}

func float(d decimal.Decimal) float64 { return d.InexactFloat64() }

func series(name string, groups []rpametrics.Group, m rpametrics.Measure) Series {
	s := Series{Name: name, Labels: make([]string, len(groups)), Values: make([]float64, len(groups))}
	for i, g := range groups {
		s.Labels[i], s.Values[i] = g.Label, float(m.Of(g.Totals))
	}
	return s
}

func trend(id, title string, d *rpametrics.Dashboard, m rpametrics.Measure, color string) Figure {
	s := Series{Name: m.String(), Color: color}
	for _, b := range d.Trend {
		s.Labels = append(s.Labels, b.Label)
		s.Values = append(s.Values, float(m.Of(b.Totals)))
	}
	return Figure{
		ID: id, Title: fmt.Sprintf("%s (%s)", title, d.Period.Title()), Kind: Line,
		XTitle: "Period", YTitle: m.String(), Series: []Series{s},
	}
}

func cumulative(d *rpametrics.Dashboard) Figure {
	s := Series{Name: "Cumulative Savings", Color: purple}
	for _, b := range d.Cumulative {
		s.Labels = append(s.Labels, b.Label)
		s.Values = append(s.Values, float(b.Savings))
	}
	return Figure{
		ID: "cumulative-savings", Title: "Cumulative Cost Savings", Kind: Area,
		XTitle: "Period", YTitle: "Cumulative Savings", Series: []Series{s},
	}
}

func successVsExceptions(d *rpametrics.Dashboard) Figure {
	ok := series("Successful", d.SuccessVsExceptions, rpametrics.Successful)
	ok.Color = green
	ko := series("Exceptions", d.SuccessVsExceptions, rpametrics.Exceptions)
	ko.Color = red
	return Figure{
		ID: "success-vs-exceptions", Title: "Success vs Exceptions by Process", Kind: StackedBar,
		YTitle: "Executions", Series: []Series{ok, ko},
	}
}

// hierarchy flattens a group tree into ids, labels and parents. Leaves carry
// their size and inner nodes add up their children. Negative sizes are
// clamped to 0, an area cannot be negative.
func hierarchy(id, title string, kind Kind, scale string, tree []rpametrics.Group, size, color rpametrics.Measure) Figure {
	s := Series{Name: title}
	var walk func(parent string, groups []rpametrics.Group)
	walk = func(parent string, groups []rpametrics.Group) {
		for _, g := range groups {
			nodeID := g.Label
			if parent != "" {
				nodeID = parent + "/" + g.Label
			}
			value := 0.0
			if len(g.Children) == 0 {
				value = max(0, float(size.Of(g.Totals)))
			}
			s.IDs = append(s.IDs, nodeID)
			s.Labels = append(s.Labels, g.Label)
			s.Parents = append(s.Parents, parent)
			s.Values = append(s.Values, value)
			s.Colors = append(s.Colors, float(color.Of(g.Totals)))
			walk(nodeID, g.Children)
		}
	}
	walk("", tree)
	return Figure{ID: id, Title: title, Kind: kind, ColorScale: scale, Series: []Series{s}}
}

func efficiency(d *rpametrics.Dashboard) Figure {
	s := Series{Name: "Processes"}
	for _, g := range d.Efficiency {
		s.Labels = append(s.Labels, g.Label)
		s.X = append(s.X, float64(g.Executions))
		s.Values = append(s.Values, float(g.Hours))
		s.Sizes = append(s.Sizes, max(0, float(g.Savings)))
		s.Colors = append(s.Colors, float(g.SavingsPerExecution()))
	}
	return Figure{
		ID: "process-efficiency", Title: "Process Efficiency", Kind: Bubble,
		XTitle: "Total Executions", YTitle: "Hours Saved", ColorScale: "Plasma",
		Series: []Series{s},
	}
}

func matrix(id, title string, m rpametrics.Matrix) Figure {
	z := make([][]float64, len(m.Values))
	for i, row := range m.Values {
		z[i] = make([]float64, len(row))
		for j, v := range row {
			z[i][j] = float(v)
		}
	}
	return Figure{
		ID: id, Title: title, Kind: Heatmap, XTitle: "Month", YTitle: "Business Area",
		ColorScale: "YlOrRd", Rows: m.Rows, Cols: m.Cols, Z: z,
	}
}

func yearOverYear(d *rpametrics.Dashboard) Figure {
	colors := []string{blue, green, amber, purple, red}
	m := d.YearOverYear
	f := Figure{
		ID: "year-over-year", Title: "Year over Year Cost Savings", Kind: Line,
		XTitle: "Month", YTitle: "Cost Savings",
	}
	for i, year := range m.Rows {
		s := Series{Name: year, Color: colors[i%len(colors)], Labels: m.Cols}
		for _, v := range m.Values[i] {
			s.Values = append(s.Values, float(v))
		}
		f.Series = append(f.Series, s)
	}
	return f
}

func funnel(d *rpametrics.Dashboard) Figure {
	s := Series{Name: "Executions"}
	if d.KPIs.Executions > 0 {
		for _, st := range d.Funnel {
			s.Labels = append(s.Labels, st.Name)
			s.Values = append(s.Values, float64(st.Count))
		}
	}
	return Figure{ID: "execution-funnel", Title: "Execution Funnel", Kind: Funnel, Series: []Series{s}}
}

func functionalTrend(fs *rpametrics.FunctionalSavings) Figure {
	s := Series{Name: "Total Savings", Color: blue}
	for i, total := range fs.YearTotals() {
		s.Labels = append(s.Labels, fs.Years[i].Label)
		s.Values = append(s.Values, float(total))
	}
	return Figure{
		ID: "functional-savings-trend", Title: "Functional Savings by Fiscal Year", Kind: Line,
		XTitle: "Fiscal Year", YTitle: "Savings", Series: []Series{s},
	}
}

func functionalByCategory(fs *rpametrics.FunctionalSavings) Figure {
	f := Figure{
		ID: "functional-savings-by-category", Title: "Savings by Functional Area", Kind: GroupedBar,
		XTitle: "Functional Area", YTitle: "Savings",
	}
	rows := fs.Ranked()
	for i, y := range fs.Years {
		s := Series{Name: y.Label}
		for _, r := range rows {
			s.Labels = append(s.Labels, r.Category)
			s.Values = append(s.Values, float(r.At(i)))
		}
		f.Series = append(f.Series, s)
	}
	return f
}
