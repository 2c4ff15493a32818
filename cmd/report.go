package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/rpametrics/renderer"
	"github.com/google/subcommands"
)

type reportCmd struct {
	selection
	html   bool
	output string
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "write the full report of the selection" }
func (*reportCmd) Usage() string {
	return `rpa report [-period <period>] [-html] [-o <file>] [selection flags]

  Writes the summary, trend, breakdown and functional savings in a single
  markdown or HTML document.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	c.selection.SetFlags(f)
	f.StringVar(&c.period, "period", "monthly", "Period of the trend (daily, weekly, monthly, quarterly, yearly)")
	f.BoolVar(&c.html, "html", false, "Write HTML instead of markdown")
	f.StringVar(&c.output, "o", "", "Output file. Prints to the terminal by default.")
}

func (c *reportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if _, _, err := c.parse(); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing selection: %v\n", err)
		return subcommands.ExitUsageError
	}
	d, err := c.dashboard(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	doc := renderer.ReportMarkdown(d)
	if c.html {
		if doc, err = renderer.HTML(doc); err != nil {
			fmt.Fprintf(os.Stderr, "Error rendering HTML: %v\n", err)
			return subcommands.ExitFailure
		}
	}
	if c.output == "" {
		if c.html {
			fmt.Print(doc)
		} else {
			printMarkdown(doc)
		}
		return subcommands.ExitSuccess
	}
	if err := os.WriteFile(c.output, []byte(doc), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing report %q: %v\n", c.output, err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(os.Stderr, "Report written to %s\n", c.output)
	return subcommands.ExitSuccess
}
