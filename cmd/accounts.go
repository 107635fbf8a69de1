package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/subwise"
	"github.com/etnz/subwise/renderer"
	"github.com/google/subcommands"
)

type accountsCmd struct{}

func (*accountsCmd) Name() string     { return "accounts" }
func (*accountsCmd) Synopsis() string { return "list accounts and their balances" }
func (*accountsCmd) Usage() string {
	return `sw accounts

  Lists every account with its balance, and the net worth per currency.
`
}
func (*accountsCmd) SetFlags(*flag.FlagSet) {}

func (*accountsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(s *session) subcommands.ExitStatus {
		printMarkdown(renderer.Accounts(s.ledger.State(), s.options()))
		return subcommands.ExitSuccess
	})
}

// --- Add Account Command ---

type addAccountCmd struct {
	name     string
	typ      string
	balance  string
	currency string
	color    string
}

func (*addAccountCmd) Name() string     { return "add-account" }
func (*addAccountCmd) Synopsis() string { return "create an account" }
func (*addAccountCmd) Usage() string {
	return `sw add-account -n <name> [-t <type>] [-b <balance>] [-c <currency>] [-color <#rrggbb>]

  Creates an account with a starting balance. Types are bank, wallet, card, savings and investment.
`
}

func (c *addAccountCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "n", "", "Account name")
	f.StringVar(&c.typ, "t", string(subwise.Bank), "Account type")
	f.StringVar(&c.balance, "b", "0", "Starting balance")
	f.StringVar(&c.currency, "c", "EGP", "Currency ISO code")
	f.StringVar(&c.color, "color", "", "Display color, defaults to the type color")
}

func (c *addAccountCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	typ, err := subwise.ParseAccountType(c.typ)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	balance, err := parseAmount(c.balance)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	in := subwise.NewAccount{
		Name:     strings.TrimSpace(c.name),
		Type:     typ,
		Balance:  balance,
		Currency: strings.ToUpper(c.currency),
		Color:    c.color,
	}
	if in.Color == "" {
		in.Color = typ.DefaultColor()
	}
	if err := in.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	return run(ctx, func(s *session) subcommands.ExitStatus {
		a := s.ledger.AddAccount(in)
		fmt.Fprintf(stdout, "Added account %q (%s)\n", a.Name, a.ID)
		return subcommands.ExitSuccess
	})
}

// --- Update Account Command ---

type updateAccountCmd struct {
	addAccountCmd
	account string
}

func (*updateAccountCmd) Name() string     { return "update-account" }
func (*updateAccountCmd) Synopsis() string { return "edit an account" }
func (*updateAccountCmd) Usage() string {
	return `sw update-account -a <account> [-n <name>] [-t <type>] [-b <balance>] [-c <currency>] [-color <#rrggbb>]

  Overwrites the given fields of an account. Setting the balance does not create any transaction.
`
}

func (c *updateAccountCmd) SetFlags(f *flag.FlagSet) {
	c.addAccountCmd.SetFlags(f)
	f.StringVar(&c.account, "a", "", "Account id or name")
}

func (c *updateAccountCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	set := visited(f)
	var u subwise.AccountUpdate
	if set["n"] {
		u.Name = &c.name
	}
	if set["t"] {
		typ, err := subwise.ParseAccountType(c.typ)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		u.Type = &typ
	}
	if set["b"] {
		balance, err := parseAmount(c.balance)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		u.Balance = &balance
	}
	if set["c"] {
		cur := strings.ToUpper(c.currency)
		if !subwise.KnownCurrency(cur) {
			fmt.Fprintf(os.Stderr, "Error: unknown currency %q\n", c.currency)
			return subcommands.ExitUsageError
		}
		u.Currency = &cur
	}
	if set["color"] {
		u.Color = &c.color
	}
	return run(ctx, func(s *session) subcommands.ExitStatus {
		id, err := accountID(s.ledger.State(), c.account)
		if err != nil || id == "" {
			fmt.Fprintf(os.Stderr, "Error: %v\n", orMissing(err, "-a"))
			return subcommands.ExitUsageError
		}
		s.ledger.UpdateAccount(id, u)
		fmt.Fprintf(stdout, "Updated account %s\n", id)
		return subcommands.ExitSuccess
	})
}

// --- Delete Account Command ---

type deleteAccountCmd struct {
	account string
}

func (*deleteAccountCmd) Name() string     { return "delete-account" }
func (*deleteAccountCmd) Synopsis() string { return "delete an account and its transactions" }
func (*deleteAccountCmd) Usage() string {
	return `sw delete-account -a <account>

  Deletes an account and every transaction touching it. The balances of the other accounts
  involved in deleted transfers are left as they are.
`
}

func (c *deleteAccountCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "a", "", "Account id or name")
}

func (c *deleteAccountCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(s *session) subcommands.ExitStatus {
		id, err := accountID(s.ledger.State(), c.account)
		if err != nil || id == "" {
			fmt.Fprintf(os.Stderr, "Error: %v\n", orMissing(err, "-a"))
			return subcommands.ExitUsageError
		}
		before := len(s.ledger.State().Transactions)
		s.ledger.DeleteAccount(id)
		fmt.Fprintf(stdout, "Deleted account %s and %d transaction(s)\n", id, before-len(s.ledger.State().Transactions))
		return subcommands.ExitSuccess
	})
}

// orMissing returns err, or a missing flag error when err is nil.
func orMissing(err error, name string) error {
	if err != nil {
		return err
	}
	return fmt.Errorf("flag %s is required", name)
}
