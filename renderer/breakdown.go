package renderer

import (
	"io"
	"strings"

	"github.com/etnz/rpametrics"
	md "github.com/nao1215/markdown"
)

// BreakdownMarkdown renders the categorical breakdowns of the dashboard.
func BreakdownMarkdown(d *rpametrics.Dashboard) string {
	var b strings.Builder
	io.WriteString(&b, "# Breakdown\n\n")
	ConditionalBlock(&b, func(w io.Writer) bool {
		return groupTable(w, "Top Processes by Executions", "Process", d, d.TopProcesses)
	})
	ConditionalBlock(&b, func(w io.Writer) bool {
		return groupTable(w, "Hours Saved by Business Area", "Business Area", d, d.HoursByArea)
	})
	ConditionalBlock(&b, func(w io.Writer) bool {
		return groupTable(w, "Cost Savings by Application", "Application", d, d.SavingsByApplication)
	})
	ConditionalBlock(&b, func(w io.Writer) bool {
		return groupTable(w, "Hours Saved by Machine", "Machine", d, d.HoursByMachine)
	})
	ConditionalBlock(&b, func(w io.Writer) bool { return performersTable(w, d) })
	return b.String()
}

// groupTable writes a table of groups. It returns false when there is no group.
func groupTable(w io.Writer, title, dimension string, d *rpametrics.Dashboard, groups []rpametrics.Group) bool {
	if len(groups) == 0 {
		return false
	}
	doc := md.NewMarkdown(w)
	doc.H2(title)
	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{dimension, "Executions", "Success Rate", "Hours Saved", "Cost Savings"},
	}
	for _, g := range groups {
		table.Rows = append(table.Rows, []string{
			g.Label,
			count(g.Executions),
			g.SuccessRate().String(),
			hours(g.Hours),
			d.Money(g.Totals).String(),
		})
	}
	doc.Table(table)
	if err := doc.Build(); err != nil {
		return false
	}
	io.WriteString(w, "\n")
	return true
}

// performersTable writes the top performers table.
func performersTable(w io.Writer, d *rpametrics.Dashboard) bool {
	if len(d.TopPerformers) == 0 {
		return false
	}
	doc := md.NewMarkdown(w)
	doc.H2("Top Performers")
	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Process", "Executions", "Hours Saved", "Cost Savings", "Successful", "Success Rate"},
	}
	for _, p := range d.TopPerformers {
		table.Rows = append(table.Rows, []string{
			p.Process,
			count(p.Executions),
			hours(p.Hours),
			d.Money(p.Totals).String(),
			count(p.Successful),
			p.SuccessRate.String(),
		})
	}
	doc.Table(table)
	if err := doc.Build(); err != nil {
		return false
	}
	io.WriteString(w, "\n")
	return true
}

// TopPerformersMarkdown renders the top performers table alone.
func TopPerformersMarkdown(d *rpametrics.Dashboard) string {
	var b strings.Builder
	if !performersTable(&b, d) {
		return "# Top Performers\n\nNo runs match the selection.\n"
	}
	return b.String()
}
