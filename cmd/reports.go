package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/subwise/date"
	"github.com/etnz/subwise/renderer"
	"github.com/google/subcommands"
)

type networthCmd struct{}

func (*networthCmd) Name() string     { return "networth" }
func (*networthCmd) Synopsis() string { return "display the net worth per currency" }
func (*networthCmd) Usage() string {
	return `sw networth

  Displays the sum of the account balances, per currency. Currencies are never converted.
`
}
func (*networthCmd) SetFlags(*flag.FlagSet) {}

func (*networthCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(s *session) subcommands.ExitStatus {
		printMarkdown(renderer.NetWorth(s.ledger.State(), s.options()))
		return subcommands.ExitSuccess
	})
}

// summaryCmd holds the flags for the 'summary' subcommand.
type summaryCmd struct {
	date string
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display the monthly dashboard" }
func (*summaryCmd) Usage() string {
	return `sw summary [-d <date>]

  Displays the income, expenses and savings rate of the month containing the date, the top
  spending categories, the budgets close to their limit and the net worth.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", date.Today().String(), "Date for the summary. See the user manual for supported date formats.")
}

func (c *summaryCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := date.Parse(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	return run(ctx, func(s *session) subcommands.ExitStatus {
		printMarkdown(renderer.Summary(s.ledger.State(), on, s.options()))
		return subcommands.ExitSuccess
	})
}
