package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/etnz/rpametrics/cache"
	"github.com/etnz/rpametrics/server"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
)

type serveCmd struct {
	addr string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "start the dashboard web server" }
func (*serveCmd) Usage() string {
	return `rpa serve [-addr <address>]

  Serves the interactive dashboard until interrupted. The dataset is reloaded
  when the cache expires. See 'rpa topic server'.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.addr, "addr", "", "Listen address. Overrides the configuration.")
}

func (c *serveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := Config()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.addr != "" {
		cfg.Addr = c.addr
	}

	log := Logger()
	if !*Verbose {
		log = log.Level(zerolog.InfoLevel)
	}
	ctx, stop := signal.NotifyContext(log.WithContext(ctx), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loader, closeLoader, err := OpenLoader(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening the data source: %v\n", err)
		return subcommands.ExitFailure
	}
	defer closeLoader()

	data := cache.New(loader, cache.WithTTL(time.Duration(cfg.CacheTTL)))
	// an unreadable data file is reported on the dashboard, not fatal.
	if _, err := data.Load(ctx); err != nil {
		log.Warn().Err(err).Msg("cannot load the dataset")
	}

	h := server.New(data, log, dashboardOptions(cfg)...)
	log.Info().Str("addr", cfg.Addr).Msg("dashboard started")
	if err := server.ListenAndServe(ctx, cfg.Addr, h, time.Duration(cfg.ReadTimeout), time.Duration(cfg.WriteTimeout)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	log.Info().Msg("dashboard stopped")
	return subcommands.ExitSuccess
}
