package cmd

import (
	"context"
	"flag"

	"github.com/etnz/rpametrics/renderer"
	"github.com/google/subcommands"
)

type trendCmd struct {
	selection
}

func (*trendCmd) Name() string     { return "trend" }
func (*trendCmd) Synopsis() string { return "display the metrics of the runs per period" }
func (*trendCmd) Usage() string {
	return `rpa trend [-period <period>] [selection flags]

  Displays executions, success rate, hours saved, cost savings and cumulative
  savings per period. See 'rpa topic periods'.
`
}

func (c *trendCmd) SetFlags(f *flag.FlagSet) {
	c.selection.SetFlags(f)
	f.StringVar(&c.period, "period", "monthly", "Period of the trend (daily, weekly, monthly, quarterly, yearly)")
}

func (c *trendCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return dashboardExec(ctx, &c.selection, renderer.TrendMarkdown)
}
