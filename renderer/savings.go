package renderer

import (
	"bytes"

	"github.com/etnz/rpametrics"
	md "github.com/nao1215/markdown"
)

// SavingsMarkdown renders the functional-area savings, one column per fiscal
// year, largest categories first, with a total and a growth row.
func SavingsMarkdown(fs *rpametrics.FunctionalSavings, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Functional Area Savings")
	if fs == nil || len(fs.Rows) == 0 {
		doc.PlainText("No functional savings loaded.")
		return doc.String()
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft},
		Header:    []string{"Functional Area"},
	}
	for _, y := range fs.Years {
		table.Header = append(table.Header, y.Label)
		table.Alignment = append(table.Alignment, md.AlignRight)
	}
	for _, r := range fs.Ranked() {
		row := []string{r.Category}
		for i := range fs.Years {
			row = append(row, rpametrics.M(r.At(i), currency).String())
		}
		table.Rows = append(table.Rows, row)
	}
	total := []string{md.Bold("Total")}
	for _, t := range fs.YearTotals() {
		total = append(total, md.Bold(rpametrics.M(t, currency).String()))
	}
	growth := []string{"Growth", "-"}
	for _, g := range fs.Growth() {
		growth = append(growth, g.SignedString())
	}
	table.Rows = append(table.Rows, total, growth)
	doc.Table(table)
	return doc.String()
}
