package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/rpametrics"
	md "github.com/nao1215/markdown"
)

// SummaryMarkdown renders the headline metrics and the data summary.
func SummaryMarkdown(d *rpametrics.Dashboard) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("RPA Metrics Summary")
	doc.PlainText(fmt.Sprintf("Data period: %s", d.Summary.Period()))
	doc.LF()

	k := d.KPIs
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Metric", "Value"},
		Rows: [][]string{
			{"Total Executions", count(k.Executions)},
			{"Hours Saved", hours(k.Hours)},
			{"Cost Savings", k.Savings.String()},
			{"Success Rate", k.SuccessRate.String()},
			{"Active Processes", count(k.ActiveProcesses)},
		},
	})

	s := d.Summary
	doc.H2("Data Summary")
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Item", "Value"},
		Rows: [][]string{
			{"Rows", count(s.Rows)},
			{"Avg Hourly Rate", s.AvgHourlyRate.String()},
			{"Unique Processes", count(s.Processes)},
			{"Business Areas", count(s.BusinessAreas)},
		},
	})
	return doc.String()
}
