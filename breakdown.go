package rpametrics

import (
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Dimension is a categorical attribute runs can be grouped by.
type Dimension struct {
	Name string
	Key  func(Run) string
}

var (
	ByBusinessArea    = Dimension{"Business Area", func(r Run) string { return r.BusinessArea }}
	ByBusinessSubArea = Dimension{"Sub Area", func(r Run) string { return r.BusinessSubArea }}
	ByProcess         = Dimension{"Process", func(r Run) string { return r.Process }}
	ByApplication     = Dimension{"Application", func(r Run) string { return r.Application }}
	ByMachine         = Dimension{"Machine", func(r Run) string { return r.Machine }}
	ByMonth           = Dimension{"Month", func(r Run) string { return r.Month }}
	ByYear            = Dimension{"Year", func(r Run) string { return strconv.Itoa(r.Year) }}
)

// Measure selects one additive value of Totals.
type Measure int

const (
	Executions Measure = iota
	Hours
	Savings
	Successful
	Exceptions
	Outcomes // successful + exceptions
)

func (m Measure) String() string {
	switch m {
	case Executions:
		return "Total Executions"
	case Hours:
		return "Hours Saved"
	case Savings:
		return "Cost Savings"
	case Successful:
		return "Successful"
	case Exceptions:
		return "Exceptions"
	case Outcomes:
		return "Outcomes"
	default:
		return "measure"
	}
}

// Of returns the measure of t.
func (m Measure) Of(t Totals) decimal.Decimal {
	switch m {
	case Executions:
		return decimal.NewFromInt(int64(t.Executions))
	case Hours:
		return t.Hours
	case Savings:
		return t.Savings
	case Successful:
		return decimal.NewFromInt(int64(t.Successful))
	case Exceptions:
		return decimal.NewFromInt(int64(t.Exceptions))
	case Outcomes:
		return decimal.NewFromInt(int64(t.Successful + t.Exceptions))
	default:
		return decimal.Zero
	}
}

// Group is the aggregate of the runs sharing a dimension value. Children hold
// the next level when grouping by several dimensions.
type Group struct {
	Label string `json:"label"`
	Totals
	Children []Group `json:"children,omitempty"`
}

// GroupAndAggregate groups the runs by the first dimension, then each group by
// the next one, and so on. Groups are returned in first-seen order.
func GroupAndAggregate(runs []Run, dims ...Dimension) []Group {
	if len(dims) == 0 || len(runs) == 0 {
		return nil
	}
	index := map[string]int{}
	var groups []Group
	var members [][]Run
	for _, r := range runs {
		key := dims[0].Key(r)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, Group{Label: key})
			members = append(members, nil)
		}
		groups[i].Add(r)
		members[i] = append(members[i], r)
	}
	if len(dims) > 1 {
		for i := range groups {
			groups[i].Children = GroupAndAggregate(members[i], dims[1:]...)
		}
	}
	return groups
}

// SortGroups orders groups by a measure, highest first. Ties are broken by label.
func SortGroups(groups []Group, m Measure) {
	sort.SliceStable(groups, func(i, j int) bool {
		a, b := m.Of(groups[i].Totals), m.Of(groups[j].Totals)
		if c := a.Cmp(b); c != 0 {
			return c > 0
		}
		return groups[i].Label < groups[j].Label
	})
}

// SortByLabel orders groups alphabetically.
func SortByLabel(groups []Group) {
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].Label < groups[j].Label })
}

// SortByMonth orders groups labelled with month names in calendar order.
func SortByMonth(groups []Group) {
	sort.SliceStable(groups, func(i, j int) bool { return monthRank(groups[i].Label) < monthRank(groups[j].Label) })
}

func monthRank(label string) int {
	m, err := ParseMonth(label)
	if err != nil {
		return 13
	}
	return int(m)
}

// Top returns the first n groups, or all of them when n <= 0.
func Top(groups []Group, n int) []Group {
	if n > 0 && len(groups) > n {
		return groups[:n]
	}
	return groups
}

// TopProcesses returns the n processes with the most executions.
func TopProcesses(runs []Run, n int) []Group {
	g := GroupAndAggregate(runs, ByProcess)
	SortGroups(g, Executions)
	return Top(g, n)
}

// HoursByArea returns the hours saved per business area, highest first.
func HoursByArea(runs []Run) []Group {
	g := GroupAndAggregate(runs, ByBusinessArea)
	SortGroups(g, Hours)
	return g
}

// SavingsByMonth returns the savings per month name, in calendar order.
func SavingsByMonth(runs []Run) []Group {
	g := GroupAndAggregate(runs, ByMonth)
	SortByMonth(g)
	return g
}

// SuccessVsExceptions returns the n processes with the most outcomes
// (successful plus exceptions).
func SuccessVsExceptions(runs []Run, n int) []Group {
	g := GroupAndAggregate(runs, ByProcess)
	SortGroups(g, Outcomes)
	return Top(g, n)
}

// ExecutionsByArea returns the executions per business area.
func ExecutionsByArea(runs []Run) []Group {
	g := GroupAndAggregate(runs, ByBusinessArea)
	SortByLabel(g)
	return g
}

// SavingsByApplication returns the n applications with the highest positive
// savings. Applications that saved nothing are left out.
func SavingsByApplication(runs []Run, n int) []Group {
	g := GroupAndAggregate(runs, ByApplication)
	positive := g[:0]
	for _, x := range g {
		if x.Savings.IsPositive() {
			positive = append(positive, x)
		}
	}
	SortGroups(positive, Savings)
	return Top(positive, n)
}

// HoursByMachine returns the hours saved per machine.
func HoursByMachine(runs []Run) []Group {
	g := GroupAndAggregate(runs, ByMachine)
	SortByLabel(g)
	return g
}

// Hierarchy groups the runs along the dimensions, every level sorted by label.
func Hierarchy(runs []Run, dims ...Dimension) []Group {
	g := GroupAndAggregate(runs, dims...)
	sortTree(g)
	return g
}

func sortTree(groups []Group) {
	SortByLabel(groups)
	for i := range groups {
		sortTree(groups[i].Children)
	}
}

// ProcessEfficiency returns the n processes with the most executions. Their
// Totals give executions, hours, savings and savings per execution.
func ProcessEfficiency(runs []Run, n int) []Group { return TopProcesses(runs, n) }

// Matrix is a two-dimensional table of savings.
type Matrix struct {
	Rows   []string            `json:"rows"`
	Cols   []string            `json:"cols"`
	Values [][]decimal.Decimal `json:"values"`
}

// At returns the cell value of row r and column c.
func (m Matrix) At(r, c int) decimal.Decimal { return m.Values[r][c] }

// months returns the month names present in the runs, in calendar order.
func months(runs []Run) []string {
	seen := map[time.Month]string{}
	for _, r := range runs {
		seen[time.Month(r.MonthNum)] = r.Month
	}
	var out []string
	for m := time.January; m <= time.December; m++ {
		if name, ok := seen[m]; ok {
			out = append(out, name)
		}
	}
	return out
}

func savingsMatrix(runs []Run, rows Dimension, rowLabels []string) Matrix {
	m := Matrix{Rows: rowLabels, Cols: months(runs)}
	ri := map[string]int{}
	for i, l := range m.Rows {
		ri[l] = i
	}
	ci := map[string]int{}
	for i, l := range m.Cols {
		ci[l] = i
	}
	m.Values = make([][]decimal.Decimal, len(m.Rows))
	for i := range m.Values {
		m.Values[i] = make([]decimal.Decimal, len(m.Cols))
	}
	for _, r := range runs {
		i, j := ri[rows.Key(r)], ci[r.Month]
		m.Values[i][j] = m.Values[i][j].Add(r.SavingsValue())
	}
	return m
}

// SavingsHeatmap returns the savings per business area (rows, sorted) and
// month (columns, calendar order). Only months present are included, missing
// cells are 0.
func SavingsHeatmap(runs []Run) Matrix {
	areas := map[string]bool{}
	for _, r := range runs {
		areas[r.BusinessArea] = true
	}
	return savingsMatrix(runs, ByBusinessArea, sortedKeys(areas))
}

// YearOverYear returns the savings per run year (rows, ascending) and month
// (columns, calendar order).
func YearOverYear(runs []Run) Matrix {
	years := map[int]bool{}
	for _, r := range runs {
		years[r.Year] = true
	}
	var ys []int
	for y := range years {
		ys = append(ys, y)
	}
	sort.Ints(ys)
	labels := make([]string, len(ys))
	for i, y := range ys {
		labels[i] = strconv.Itoa(y)
	}
	return savingsMatrix(runs, ByYear, labels)
}

// Performer is a row of the top performers table.
type Performer struct {
	Process string `json:"process"`
	Totals
	SuccessRate Percent `json:"success_rate"`
}

// TopPerformers returns the n processes with the highest savings. The success
// rate is rounded to one decimal.
func TopPerformers(runs []Run, n int) []Performer {
	g := GroupAndAggregate(runs, ByProcess)
	SortGroups(g, Savings)
	g = Top(g, n)
	out := make([]Performer, len(g))
	for i, x := range g {
		out[i] = Performer{Process: x.Label, Totals: x.Totals, SuccessRate: x.SuccessRate().Round(1)}
	}
	return out
}

// Stage is one step of the execution funnel.
type Stage struct {
	Name    string  `json:"stage"`
	Count   int     `json:"count"`
	Percent Percent `json:"percent_initial"`
}

// Funnel returns the execution funnel: every initiated execution, then the
// successful ones, each with its share of the initial stage. Both stages are
// returned even without executions, at 0.
func Funnel(runs []Run) []Stage {
	t := Sum(runs)
	return []Stage{
		{Name: "Total Initiated", Count: t.Executions, Percent: Ratio(t.Executions, t.Executions)},
		{Name: "Successful", Count: t.Successful, Percent: Ratio(t.Successful, t.Executions)},
	}
}
