// Package cmd implements the rpa command line application.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"net/url"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/rpametrics"
	"github.com/etnz/rpametrics/config"
	"github.com/etnz/rpametrics/server"
	"github.com/etnz/rpametrics/spreadsheet"
	"github.com/etnz/rpametrics/sqlsource"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
)

// commands in help order, with their group.
var commands = []struct {
	group string
	cmd   subcommands.Command
}{
	{"dashboard", &serveCmd{}},

	{"reports", &summaryCmd{}},
	{"reports", &trendCmd{}},
	{"reports", &breakdownCmd{}},
	{"reports", &savingsCmd{}},
	{"reports", &reportCmd{}},
	{"reports", &chartCmd{}},

	{"data", &exportCmd{}},
	{"data", &checkCmd{}},
	{"data", &configCmd{}},

	{"help", &topicCmd{}},
	{"help", &AssistCmd{}},
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for _, r := range commands {
		c.Register(r.cmd, r.group)
	}
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "", "Path to the YAML configuration file")
var dataFile = flag.String("data-file", "", "Run file (xlsx, xls or csv). Overrides the configuration.")
var savingsFile = flag.String("savings-file", "", "Functional savings file. Overrides the configuration.")
var sheet = flag.String("sheet", "", "Worksheet of the run file. Overrides the configuration.")
var rawMarkdown = flag.Bool("raw", false, "Print reports as raw markdown")

// Verbose enables debug logs.
var Verbose = flag.Bool("v", false, "Verbose logs")

// Config returns the configuration file updated with the global flags.
func Config() (config.Config, error) {
	c, err := config.Load(*configFile)
	if err != nil {
		return c, err
	}
	if *dataFile != "" {
		c.DataFile = *dataFile
	}
	if *savingsFile != "" {
		c.SavingsFile = *savingsFile
	}
	if *sheet != "" {
		c.Sheet = *sheet
	}
	return c, c.Validate()
}

// Logger returns the application logger, writing to stderr.
func Logger() zerolog.Logger {
	level := zerolog.WarnLevel
	if *Verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
}

// OpenLoader returns the run source of the configuration. close releases it.
func OpenLoader(ctx context.Context, c config.Config) (loader rpametrics.Loader, close func() error, err error) {
	if !c.SQL.Enabled() {
		return spreadsheet.Source{DataFile: c.DataFile, SavingsFile: c.SavingsFile, Sheet: c.Sheet}, func() error { return nil }, nil
	}
	src, err := sqlsource.Open(ctx, c.SQL.Driver, c.SQL.DSN, c.SQL.Table)
	if err != nil {
		return nil, nil, err
	}
	if c.SavingsFile == "" {
		return src, src.Close, nil
	}
	return withSavings{src, c.SavingsFile}, src.Close, nil
}

// withSavings adds the functional savings file to a run source.
type withSavings struct {
	rpametrics.Loader
	file string
}

func (w withSavings) Load(ctx context.Context) (*rpametrics.Dataset, error) {
	ds, err := w.Loader.Load(ctx)
	if err != nil {
		return nil, err
	}
	fs, err := spreadsheet.ReadSavings(w.file, "")
	if err != nil {
		return nil, fmt.Errorf("functional savings: %w", err)
	}
	ds.Savings = fs
	return ds, nil
}

// dashboardOptions returns the dashboard options of the configuration.
func dashboardOptions(c config.Config) []rpametrics.Option {
	return []rpametrics.Option{rpametrics.WithCurrency(c.Currency), rpametrics.WithTopN(c.TopN)}
}

// selection holds the filter flags shared by the reporting commands.
type selection struct {
	years   string
	months  string
	area    string
	process string
	machine string
	period  string
}

func (s *selection) SetFlags(f *flag.FlagSet) {
	f.StringVar(&s.years, "year", "", "Comma separated run years. Every year by default.")
	f.StringVar(&s.months, "month", "", "Comma separated months, by name or number. Every month by default.")
	f.StringVar(&s.area, "area", "", "Business area. Every area by default.")
	f.StringVar(&s.process, "process", "", "Process. Every process by default.")
	f.StringVar(&s.machine, "machine", "", "Machine. Every machine by default.")
}

// parse reads the selection with the rules of the dashboard query parameters.
func (s *selection) parse() (rpametrics.Filter, rpametrics.Period, error) {
	return server.ParseQuery(url.Values{
		"year":    {s.years},
		"month":   {s.months},
		"area":    {s.area},
		"process": {s.process},
		"machine": {s.machine},
		"period":  {s.period},
	})
}

// dashboard loads the dataset and computes the dashboard of the selection.
func (s *selection) dashboard(ctx context.Context) (*rpametrics.Dashboard, error) {
	f, p, err := s.parse()
	if err != nil {
		return nil, err
	}
	c, err := Config()
	if err != nil {
		return nil, err
	}
	log := Logger()
	ctx = log.WithContext(ctx)
	loader, closeLoader, err := OpenLoader(ctx, c)
	if err != nil {
		return nil, err
	}
	defer closeLoader()
	ds, err := loader.Load(ctx)
	if err != nil {
		return nil, err
	}
	for _, w := range ds.Warnings {
		log.Warn().Msg(w)
	}
	return rpametrics.NewDashboard(ds, f, p, dashboardOptions(c)...), nil
}

// printMarkdown renders markdown for the terminal.
func printMarkdown(md string) {
	if *rawMarkdown {
		fmt.Print(md)
		return
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err != nil {
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

// dashboardExec runs a command printing a markdown report of the selection.
func dashboardExec(ctx context.Context, s *selection, render func(*rpametrics.Dashboard) string) subcommands.ExitStatus {
	if _, _, err := s.parse(); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing selection: %v\n", err)
		return subcommands.ExitUsageError
	}
	d, err := s.dashboard(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(render(d))
	return subcommands.ExitSuccess
}
