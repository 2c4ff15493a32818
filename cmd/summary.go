package cmd

import (
	"context"
	"flag"

	"github.com/etnz/rpametrics/renderer"
	"github.com/google/subcommands"
)

// summaryCmd holds the flags for the 'summary' subcommand.
type summaryCmd struct {
	selection
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display the headline metrics of the runs" }
func (*summaryCmd) Usage() string {
	return `rpa summary [-year <years>] [-month <months>] [-area <area>] [-process <process>] [-machine <machine>]

  Displays total executions, hours saved, cost savings, success rate and
  active processes of the selected runs, followed by the data summary.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) { c.selection.SetFlags(f) }

func (c *summaryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return dashboardExec(ctx, &c.selection, renderer.SummaryMarkdown)
}
