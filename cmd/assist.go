package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/etnz/rpametrics/agent"
	"github.com/etnz/rpametrics/cache"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

// AssistCmd is the subcommand for the AI assistant.
type AssistCmd struct {
	research bool
}

// Name returns the name of the command.
func (*AssistCmd) Name() string { return "assist" }

// Synopsis returns a short-one line synopsis of the command.
func (*AssistCmd) Synopsis() string { return "ask questions about the runs to the AI assistant" }

// Usage returns a long-form usage string.
func (*AssistCmd) Usage() string {
	return `rpa assist [-research] [<question>]

  Starts an interactive session with the AI assistant. The assistant computes
  the metrics from the configured data source. The Gemini API key is read from
  the GEMINI_API_KEY environment variable.
`
}

// SetFlags sets the flags for the command.
func (c *AssistCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.research, "research", true, "Let the assistant search the web for industry context")
}

// Execute executes the command.
func (c *AssistCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	initialPrompt := strings.Join(f.Args(), " ")

	cfg, err := Config()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	ctx = Logger().WithContext(ctx)
	loader, closeLoader, err := OpenLoader(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening the data source: %v\n", err)
		return subcommands.ExitFailure
	}
	defer closeLoader()

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	data := cache.New(loader, cache.WithTTL(time.Duration(cfg.CacheTTL)))
	experts := []*agent.Expert{agent.NewAnalyst(data, dashboardOptions(cfg)...)}
	if c.research {
		experts = append(experts, agent.NewResearcher())
	}
	a := agent.New(os.Stdout, os.Stdin, experts...)
	a.Print = func(_ io.Writer, markdown string) { printMarkdown(markdown) }

	if err := a.Run(ctx, client, initialPrompt); err != nil {
		fmt.Fprintln(os.Stderr, "Agent failed:", err)
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}
