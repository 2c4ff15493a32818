package cmd

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/rpametrics/spreadsheet"
	"github.com/google/subcommands"
	md "github.com/nao1215/markdown"
)

type checkCmd struct {
	strict bool
}

func (*checkCmd) Name() string { return "check" }
func (*checkCmd) Synopsis() string {
	return "validates the data files and reports the invalid rows"
}
func (*checkCmd) Usage() string {
	return `rpa check [-strict]

  Loads the run file and the functional savings file and reports missing
  columns and invalid rows. With -strict, invalid rows are errors.

Usage Examples:
$ rpa -data-file runs.xlsx -savings-file savings.xlsx check
`
}

func (c *checkCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.strict, "strict", false, "Fail on invalid rows")
}

func (c *checkCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := Config()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	loader, closeLoader, err := OpenLoader(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening the data source: %v\n", err)
		return subcommands.ExitFailure
	}
	defer closeLoader()

	ds, err := loader.Load(Logger().WithContext(ctx))
	var missing *spreadsheet.MissingColumnsError
	switch {
	case errors.As(err, &missing):
		fmt.Fprintf(os.Stderr, "Error: %v\nSee 'rpa topic columns' for the expected columns.\n", err)
		return subcommands.ExitFailure
	case err != nil:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	var b bytes.Buffer
	doc := md.NewMarkdown(&b).H1("Data Check").
		PlainTextf("%s: %d runs loaded.", md.Bold(ds.Source), ds.Len()).LF()
	if ds.Savings != nil {
		doc.PlainTextf("%s: %d functional areas, %d fiscal years.", md.Bold(cfg.SavingsFile), len(ds.Savings.Rows), len(ds.Savings.Years)).LF()
	}
	if len(ds.Warnings) > 0 {
		doc.H2f("%d Row Issues", len(ds.Warnings)).BulletList(ds.Warnings...)
	}
	doc.Build()
	printMarkdown(b.String())

	if c.strict && len(ds.Warnings) > 0 {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
