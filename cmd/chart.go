package cmd

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/rpametrics/chart"
	"github.com/google/subcommands"
)

type chartCmd struct {
	selection
	output string
}

func (*chartCmd) Name() string     { return "chart" }
func (*chartCmd) Synopsis() string { return "render a dashboard chart as a PNG image" }
func (*chartCmd) Usage() string {
	return `rpa chart [-period <period>] [-o <file>] [selection flags] <chart id>

  Renders one chart of the dashboard to a PNG file. Without a chart id, lists
  the charts. See 'rpa topic charts'.
`
}

func (c *chartCmd) SetFlags(f *flag.FlagSet) {
	c.selection.SetFlags(f)
	f.StringVar(&c.period, "period", "monthly", "Period of the trend charts")
	f.StringVar(&c.output, "o", "", "Output file, <chart id>.png by default")
}

func (c *chartCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() > 1 {
		fmt.Fprintln(os.Stderr, "Error: expected at most one chart id")
		return subcommands.ExitUsageError
	}
	if _, _, err := c.parse(); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing selection: %v\n", err)
		return subcommands.ExitUsageError
	}
	d, err := c.dashboard(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	figs := chart.Build(d)

	if f.NArg() == 0 {
		for _, fig := range figs {
			fmt.Printf("%-32s %s\n", fig.ID, fig.Title)
		}
		return subcommands.ExitSuccess
	}

	id := f.Arg(0)
	fig, ok := chart.Find(figs, id)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown chart %q\n", id)
		return subcommands.ExitUsageError
	}
	var buf bytes.Buffer
	if err := chart.RenderPNG(&buf, fig); err != nil {
		fmt.Fprintf(os.Stderr, "Error rendering chart %q: %v\n", id, err)
		return subcommands.ExitFailure
	}
	output := c.output
	if output == "" {
		output = id + ".png"
	}
	if err := os.WriteFile(output, buf.Bytes(), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing chart %q: %v\n", output, err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(os.Stderr, "Chart written to %s\n", output)
	return subcommands.ExitSuccess
}
