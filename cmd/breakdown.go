package cmd

import (
	"context"
	"flag"

	"github.com/etnz/rpametrics/renderer"
	"github.com/google/subcommands"
)

type breakdownCmd struct {
	selection
}

func (*breakdownCmd) Name() string { return "breakdown" }
func (*breakdownCmd) Synopsis() string {
	return "display the runs per process, business area, application and machine"
}
func (*breakdownCmd) Usage() string {
	return `rpa breakdown [selection flags]

  Displays the top processes, hours saved per business area, cost savings per
  application, hours saved per machine and the top performers.
`
}

func (c *breakdownCmd) SetFlags(f *flag.FlagSet) { c.selection.SetFlags(f) }

func (c *breakdownCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return dashboardExec(ctx, &c.selection, renderer.BreakdownMarkdown)
}
