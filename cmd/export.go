package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/etnz/rpametrics/spreadsheet"
	"github.com/google/subcommands"
)

type exportCmd struct {
	selection
	format string
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export the selected runs as CSV or Excel" }
func (*exportCmd) Usage() string {
	return `rpa export [-format csv|xlsx] [-o <file>] [selection flags]

  Writes the selected runs with their original columns. The default file name
  is rpa_metrics_<timestamp>.<format>, "-o -" writes to the standard output.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	c.selection.SetFlags(f)
	f.StringVar(&c.format, "format", "csv", "Export format (csv, xlsx)")
	f.StringVar(&c.output, "o", "", "Output file")
}

func (c *exportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	format, err := spreadsheet.ParseFormat(c.format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
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

	output := c.output
	if output == "" {
		output = format.FileName(time.Now())
	}
	write := func(w io.Writer) error { return spreadsheet.Write(w, format, d.Rows) }
	if output == "-" {
		err = write(os.Stdout)
	} else {
		var file *os.File
		if file, err = os.Create(output); err != nil {
			fmt.Fprintf(os.Stderr, "Error creating %q: %v\n", output, err)
			return subcommands.ExitFailure
		}
		err = writeAndClose(file, write)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %q: %v\n", output, err)
		return subcommands.ExitFailure
	}
	if output != "-" {
		fmt.Fprintf(os.Stderr, "%d runs exported to %s\n", len(d.Rows), output)
	}
	return subcommands.ExitSuccess
}

// writeAndClose writes to wc and closes it. A failed close is a failed write.
func writeAndClose(wc io.WriteCloser, write func(io.Writer) error) error {
	if err := write(wc); err != nil {
		wc.Close()
		return err
	}
	return wc.Close()
}
