package renderer

import (
	"context"
	"strings"
	"testing"

	"github.com/etnz/rpametrics"
	"github.com/etnz/rpametrics/spreadsheet"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

func sampleDashboard(t *testing.T, f rpametrics.Filter) *rpametrics.Dashboard {
	t.Helper()
	src := spreadsheet.Source{DataFile: "../testdata/runs.csv", SavingsFile: "../testdata/savings.csv"}
	ds, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("cannot load sample dataset: %v", err)
	}
	return rpametrics.NewDashboard(ds, f, rpametrics.Monthly)
}

// parsed is the structure of a markdown document: its headings and the cells
// of its tables, header row first.
type parsed struct {
	headings []string
	tables   [][][]string
}

func parse(t *testing.T, src string) parsed {
	t.Helper()
	source := []byte(src)
	doc := goldmark.New(goldmark.WithExtensions(extension.Table)).Parser().Parse(text.NewReader(source))
	var p parsed
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := n.(type) {
		case *ast.Heading:
			p.headings = append(p.headings, string(n.Text(source)))
			return ast.WalkSkipChildren, nil
		case *east.Table:
			p.tables = append(p.tables, nil)
		case *east.TableHeader, *east.TableRow:
			var row []string
			for c := n.FirstChild(); c != nil; c = c.NextSibling() {
				row = append(row, strings.TrimSpace(string(c.Text(source))))
			}
			last := len(p.tables) - 1
			p.tables[last] = append(p.tables[last], row)
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestSummaryMarkdown(t *testing.T) {
	out := SummaryMarkdown(sampleDashboard(t, rpametrics.Filter{}))
	p := parse(t, out)
	if diff := cmp.Diff([]string{"RPA Metrics Summary", "Data Summary"}, p.headings); diff != "" {
		t.Errorf("headings mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(out, "Data period: November 2023 to April 2024") {
		t.Errorf("missing data period in:\n%s", out)
	}
	want := [][][]string{
		{
			{"Metric", "Value"},
			{"Total Executions", "1,170"},
			{"Hours Saved", "301.1"},
			{"Cost Savings", "$8,580.50"},
			{"Success Rate", "95.4%"},
			{"Active Processes", "6"},
		},
		{
			{"Item", "Value"},
			{"Rows", "9"},
			{"Avg Hourly Rate", "$28.50"},
			{"Unique Processes", "6"},
			{"Business Areas", "3"},
		},
	}
	if diff := cmp.Diff(want, p.tables); diff != "" {
		t.Errorf("tables mismatch (-want +got):\n%s", diff)
	}
}

func TestTrendMarkdown(t *testing.T) {
	p := parse(t, TrendMarkdown(sampleDashboard(t, rpametrics.Filter{})))
	if diff := cmp.Diff([]string{"Monthly Trend"}, p.headings); diff != "" {
		t.Errorf("headings mismatch (-want +got):\n%s", diff)
	}
	if len(p.tables) != 1 || len(p.tables[0]) != 7 {
		t.Fatalf("want one table with a header and 6 months, got %v", p.tables)
	}
	want := []string{"2023-Nov", "120", "91.7%", "40.0", "$1,600.00", "$1,600.00"}
	if diff := cmp.Diff(want, p.tables[0][1]); diff != "" {
		t.Errorf("first row mismatch (-want +got):\n%s", diff)
	}
	last := p.tables[0][6]
	if last[0] != "2024-Apr" || last[5] != "$8,580.50" {
		t.Errorf("last row = %v, want 2024-Apr with a cumulative of $8,580.50", last)
	}
}

func TestTrendMarkdown_Empty(t *testing.T) {
	out := TrendMarkdown(sampleDashboard(t, rpametrics.Filter{Machine: "BOT-99"}))
	if !strings.Contains(out, "No runs match the selection.") {
		t.Errorf("TrendMarkdown() = %q", out)
	}
}

func TestBreakdownMarkdown(t *testing.T) {
	p := parse(t, BreakdownMarkdown(sampleDashboard(t, rpametrics.Filter{})))
	want := []string{
		"Breakdown",
		"Top Processes by Executions",
		"Hours Saved by Business Area",
		"Cost Savings by Application",
		"Hours Saved by Machine",
		"Top Performers",
	}
	if diff := cmp.Diff(want, p.headings); diff != "" {
		t.Errorf("headings mismatch (-want +got):\n%s", diff)
	}
	top := p.tables[0]
	if diff := cmp.Diff([]string{"Invoice Matching", "540", "96.1%", "177.5", "$7,100.00"}, top[1]); diff != "" {
		t.Errorf("top process mismatch (-want +got):\n%s", diff)
	}
	performers := p.tables[4]
	if diff := cmp.Diff([]string{"Invoice Matching", "540", "177.5", "$7,100.00", "519", "96.1%"}, performers[1]); diff != "" {
		t.Errorf("top performer mismatch (-want +got):\n%s", diff)
	}
}

func TestSavingsMarkdown(t *testing.T) {
	d := sampleDashboard(t, rpametrics.Filter{})
	p := parse(t, SavingsMarkdown(d.FunctionalSavings, d.Currency))
	want := [][]string{
		{"Functional Area", "FY 2022-23", "FY 2023-24", "FY 2024-25"},
		{"Finance", "$1,000.00", "$1,500.00", "$2,100.00"},
		{"IT", "$250.00", "$700.00", "$900.00"},
		{"HR", "$400.00", "$350.00", "$600.00"},
		{"Total", "$1,650.00", "$2,550.00", "$3,600.00"},
		{"Growth", "-", "+54.5%", "+41.2%"},
	}
	if len(p.tables) != 1 {
		t.Fatalf("got %d tables, want 1", len(p.tables))
	}
	if diff := cmp.Diff(want, p.tables[0]); diff != "" {
		t.Errorf("savings table mismatch (-want +got):\n%s", diff)
	}

	if out := SavingsMarkdown(nil, "USD"); !strings.Contains(out, "No functional savings loaded.") {
		t.Errorf("SavingsMarkdown(nil) = %q", out)
	}
}

func TestReportMarkdown(t *testing.T) {
	p := parse(t, ReportMarkdown(sampleDashboard(t, rpametrics.Filter{})))
	for _, h := range []string{"RPA Metrics Summary", "Monthly Trend", "Breakdown", "Functional Area Savings"} {
		if !contains(p.headings, h) {
			t.Errorf("report has no %q section: %v", h, p.headings)
		}
	}

	p = parse(t, ReportMarkdown(sampleDashboard(t, rpametrics.Filter{Years: []int{1999}})))
	if contains(p.headings, "Breakdown") {
		t.Errorf("empty report should not have a breakdown: %v", p.headings)
	}
}

func contains(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}

func TestHTML(t *testing.T) {
	html, err := HTML(SummaryMarkdown(sampleDashboard(t, rpametrics.Filter{})))
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"<h1>RPA Metrics Summary</h1>", "<table>", "Total Executions</td>"} {
		if !strings.Contains(html, want) {
			t.Errorf("HTML() has no %q:\n%s", want, html)
		}
	}
}

func TestCount(t *testing.T) {
	tests := map[int]string{0: "0", 12: "12", 999: "999", 1000: "1,000", 1234567: "1,234,567", -4500: "-4,500"}
	for in, want := range tests {
		if got := count(in); got != want {
			t.Errorf("count(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestHours(t *testing.T) {
	tests := map[string]string{"0": "0.0", "301.1": "301.1", "1234.56": "1,234.6", "-0.4": "-0.4", "12.96": "13.0"}
	for in, want := range tests {
		if got := hours(decimal.RequireFromString(in)); got != want {
			t.Errorf("hours(%s) = %q, want %q", in, got, want)
		}
	}
}
