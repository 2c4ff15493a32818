package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/rpametrics"
	md "github.com/nao1215/markdown"
)

// TrendMarkdown renders one row per time bucket, in chronological order.
func TrendMarkdown(d *rpametrics.Dashboard) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("%s Trend", d.Period.Title()))
	if len(d.Trend) == 0 {
		doc.PlainText("No runs match the selection.")
		return doc.String()
	}
	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Period", "Executions", "Success Rate", "Hours Saved", "Cost Savings", "Cumulative"},
	}
	for i, b := range d.Trend {
		table.Rows = append(table.Rows, []string{
			b.Label,
			count(b.Executions),
			b.SuccessRate().String(),
			hours(b.Hours),
			d.Money(b.Totals).String(),
			d.Money(d.Cumulative[i].Totals).String(),
		})
	}
	doc.Table(table)
	return doc.String()
}
