package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/subwise"
	"github.com/etnz/subwise/date"
	"github.com/etnz/subwise/renderer"
	"github.com/google/subcommands"
)

type txCmd struct {
	typ      string
	category string
	account  string
	search   string
	period   string
	start    string
	date     string
	head     int
}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "list transactions" }
func (*txCmd) Usage() string {
	return `sw tx [-t <type>] [-c <category>] [-a <account>] [-q <text>] [-p <period> | -s <start_date>] [-d <end_date>] [-head <n>]

  Lists transactions, newest first, with options for filtering and limiting the output.
  All filters must match.
`
}

func (p *txCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.typ, "t", "", "Transaction type (income, expense, transfer).")
	f.StringVar(&p.category, "c", "", "Category. 'Transfer' matches every transfer.")
	f.StringVar(&p.account, "a", "", "Account id or name, as source or destination.")
	f.StringVar(&p.search, "q", "", "Text to search in notes, categories and account names.")
	f.StringVar(&p.period, "p", "", "Predefined period (day, week, month, year) ending on the end date.")
	f.StringVar(&p.start, "s", "", "The start date for a custom range. Overrides -p.")
	f.StringVar(&p.date, "d", "", "The end date for the range.")
	f.IntVar(&p.head, "head", 0, "Show only the first N transactions.")
}

func (p *txCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var filter subwise.Filter
	if p.typ != "" {
		typ, err := subwise.ParseTransactionType(p.typ)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		filter.Type = typ
	}
	filter.Category = p.category
	filter.Search = p.search

	if p.start != "" || p.date != "" || p.period != "" {
		endDate := date.Today()
		if p.date != "" {
			var err error
			if endDate, err = date.Parse(p.date); err != nil {
				fmt.Fprintf(os.Stderr, "Error parsing end date: %v\n", err)
				return subcommands.ExitUsageError
			}
		}
		switch {
		case p.start != "":
			startDate, err := date.Parse(p.start)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error parsing start date: %v\n", err)
				return subcommands.ExitUsageError
			}
			filter.Range = date.Range{From: startDate, To: endDate}
		case p.period != "":
			period, err := date.ParsePeriod(p.period)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error parsing period: %v\n", err)
				return subcommands.ExitUsageError
			}
			filter.Range = period.Range(endDate)
		default:
			filter.Range = date.Range{To: endDate}
		}
	}

	return run(ctx, func(s *session) subcommands.ExitStatus {
		st := s.ledger.State()
		id, err := accountID(st, p.account)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		filter.AccountID = id

		txs := subwise.FilterTransactions(st, filter)
		if p.head > 0 && len(txs) > p.head {
			txs = txs[:p.head]
		}
		printMarkdown(renderer.Transactions(st, txs, s.options()))
		return subcommands.ExitSuccess
	})
}

// txFlags holds the flags shared by add and edit.
type txFlags struct {
	typ      string
	amount   string
	category string
	account  string
	to       string
	date     string
	note     string
	every    string
	until    string
}

func (c *txFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.typ, "t", string(subwise.Expense), "Transaction type (income, expense, transfer)")
	f.StringVar(&c.amount, "v", "", "Amount, always positive")
	f.StringVar(&c.category, "c", "", "Category")
	f.StringVar(&c.account, "a", "", "Account id or name, the source of a transfer")
	f.StringVar(&c.to, "to", "", "Destination account id or name, transfers only")
	f.StringVar(&c.date, "d", date.Today().String(), "Transaction date. See the user manual for supported date formats.")
	f.StringVar(&c.note, "n", "", "An optional note")
	f.StringVar(&c.every, "every", "", "Make it recurring: daily, weekly, monthly or yearly")
	f.StringVar(&c.until, "until", "", "Last date of the recurrence, inclusive")
}

// apply overwrites the fields of in whose flag is set.
func (c *txFlags) apply(st subwise.State, set map[string]bool, in subwise.TransactionInput) (subwise.TransactionInput, error) {
	var err error
	if set["t"] {
		if in.Type, err = subwise.ParseTransactionType(c.typ); err != nil {
			return in, err
		}
		if in.Type != subwise.Transfer {
			in.ToAccountID = ""
		}
	}
	if set["v"] {
		if in.Amount, err = parseAmount(c.amount); err != nil {
			return in, err
		}
	}
	if set["c"] || set["t"] {
		cat := c.category
		if !set["c"] {
			cat = in.Category
		}
		in.Category = category(in.Type, cat)
	}
	if set["a"] {
		if in.AccountID, err = accountID(st, c.account); err != nil {
			return in, err
		}
	}
	if set["to"] {
		if in.ToAccountID, err = accountID(st, c.to); err != nil {
			return in, err
		}
	}
	if set["d"] {
		if in.Date, err = date.Parse(c.date); err != nil {
			return in, err
		}
	}
	if set["n"] {
		in.Note = c.note
	}
	if set["every"] {
		in.IsRecurring = c.every != ""
		if in.IsRecurring {
			if in.RecurrenceFrequency, err = date.ParsePeriod(c.every); err != nil {
				return in, err
			}
		} else {
			in.RecurrenceEndDate = date.Date{}
		}
	}
	if set["until"] {
		if in.RecurrenceEndDate, err = parseOptionalDate(c.until); err != nil {
			return in, err
		}
	}
	return in, nil
}

// --- Add Command ---

type addCmd struct {
	txFlags
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "record a transaction" }
func (*addCmd) Usage() string {
	return `sw add [-t <type>] -v <amount> -c <category> -a <account> [-to <account>] [-d <date>] [-n <note>] [-every <period> [-until <date>]]

  Records an income, an expense or a transfer, and updates the account balances.
  With -every the transaction becomes a recurring template: 'sw recur' generates its next
  occurrences.

Usage Examples:
$ sw add -v 250 -c "Food & Dining" -a "Cash Wallet" -n lunch
$ sw add -t transfer -v 1000 -a "CIB Bank" -to "Vodafone Cash"
$ sw add -t income -v 15000 -c Salary -a "CIB Bank" -every monthly
`
}

func (c *addCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	set := visited(f)
	// the defaults are part of a new transaction
	set["t"], set["d"] = true, true
	return run(ctx, func(s *session) subcommands.ExitStatus {
		in, err := c.apply(s.ledger.State(), set, subwise.TransactionInput{})
		if err == nil {
			err = in.Validate()
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		tx := s.ledger.AddTransaction(in)
		fmt.Fprintf(stdout, "Added %s %s (%s)\n", tx.Type, tx.Amount, tx.ID)
		return subcommands.ExitSuccess
	})
}

// --- Edit Command ---

type editCmd struct {
	txFlags
	id string
}

func (*editCmd) Name() string     { return "edit" }
func (*editCmd) Synopsis() string { return "edit a transaction" }
func (*editCmd) Usage() string {
	return `sw edit -id <transaction> [-t <type>] [-v <amount>] [-c <category>] [-a <account>] [-to <account>] [-d <date>] [-n <note>] [-every <period>] [-until <date>]

  Overwrites the given fields of a transaction. The previous effect on the account balances is
  reverted and the new one applied. -every "" stops the recurrence.
`
}

func (c *editCmd) SetFlags(f *flag.FlagSet) {
	c.txFlags.SetFlags(f)
	f.StringVar(&c.id, "id", "", "Transaction id")
}

func (c *editCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	set := visited(f)
	return run(ctx, func(s *session) subcommands.ExitStatus {
		st := s.ledger.State()
		tx, ok := subwise.TransactionByID(st, c.id)
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: no transaction %q\n", c.id)
			return subcommands.ExitUsageError
		}
		in, err := c.apply(st, set, tx.Input())
		if err == nil {
			err = in.Validate()
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		s.ledger.UpdateTransaction(tx.ID, in)
		fmt.Fprintf(stdout, "Updated transaction %s\n", tx.ID)
		return subcommands.ExitSuccess
	})
}

// --- Remove Command ---

type rmCmd struct {
	id string
}

func (*rmCmd) Name() string     { return "rm" }
func (*rmCmd) Synopsis() string { return "delete a transaction" }
func (*rmCmd) Usage() string {
	return `sw rm -id <transaction>

  Deletes a transaction and reverts its effect on the account balances. Occurrences already
  generated from a recurring template are kept.
`
}

func (c *rmCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Transaction id")
}

func (c *rmCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(s *session) subcommands.ExitStatus {
		if _, ok := subwise.TransactionByID(s.ledger.State(), c.id); !ok {
			fmt.Fprintf(os.Stderr, "Error: no transaction %q\n", c.id)
			return subcommands.ExitUsageError
		}
		s.ledger.DeleteTransaction(c.id)
		fmt.Fprintf(stdout, "Deleted transaction %s\n", c.id)
		return subcommands.ExitSuccess
	})
}
