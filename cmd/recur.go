package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/etnz/subwise"
	"github.com/etnz/subwise/date"
	"github.com/etnz/subwise/recurring"
	"github.com/etnz/subwise/renderer"
	"github.com/google/subcommands"
)

type recurCmd struct {
	date  string
	watch bool
	spec  string
}

func (*recurCmd) Name() string     { return "recur" }
func (*recurCmd) Synopsis() string { return "generate the due recurring transactions" }
func (*recurCmd) Usage() string {
	return `sw recur [-d <date>] [-watch [-spec <cron>]]

  Generates, for every recurring template, its next occurrence when due. Each run moves
  every template at most one step forward.
  With -watch it keeps running and processes the ledger on the cron schedule until interrupted.
`
}

func (c *recurCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Process as if today was this date, defaults to today.")
	f.BoolVar(&c.watch, "watch", false, "Keep running and process on schedule.")
	f.StringVar(&c.spec, "spec", recurring.DefaultSpec, "Cron schedule used with -watch.")
}

func (c *recurCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	today := date.Today
	if c.date != "" {
		on, err := date.Parse(c.date)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
			return subcommands.ExitUsageError
		}
		today = func() date.Date { return on }
	}

	return run(ctx, func(s *session) subcommands.ExitStatus {
		report := func(generated []subwise.Transaction) {
			if len(generated) == 0 {
				fmt.Fprintln(stdout, "No recurring transaction due")
				return
			}
			printMarkdown(renderer.Transactions(s.ledger.State(), generated, s.options()))
		}

		if !c.watch {
			report(recurring.Process(s.ledger, today()))
			return subcommands.ExitSuccess
		}

		sched, err := recurring.NewScheduler(s.ledger, c.spec, recurring.SchedulerOptions{
			Logger: s.log,
			Today:  today,
			OnRun:  report,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		// catch up before waiting for the schedule
		sched.Run()
		sched.Start()

		ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		defer stop()
		<-ctx.Done()

		stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := sched.Stop(stopCtx); err != nil {
			fmt.Fprintf(os.Stderr, "Error stopping: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	})
}
