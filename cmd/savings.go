package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/rpametrics"
	"github.com/etnz/rpametrics/renderer"
	"github.com/google/subcommands"
)

type savingsCmd struct{}

func (*savingsCmd) Name() string     { return "savings" }
func (*savingsCmd) Synopsis() string { return "display the functional savings per fiscal year" }
func (*savingsCmd) Usage() string {
	return `rpa -savings-file <file> savings

  Displays the savings of every functional area per fiscal year, ranked by
  total, with the year over year growth.
`
}

func (*savingsCmd) SetFlags(f *flag.FlagSet) {}

func (c *savingsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := Config()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if cfg.SavingsFile == "" {
		fmt.Fprintln(os.Stderr, "Error: no functional savings file, use -savings-file")
		return subcommands.ExitUsageError
	}
	var s selection
	return dashboardExec(ctx, &s, func(d *rpametrics.Dashboard) string {
		return renderer.SavingsMarkdown(d.FunctionalSavings, d.Currency)
	})
}
