package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/subwise"
	"github.com/etnz/subwise/date"
	"github.com/etnz/subwise/renderer"
	"github.com/google/subcommands"
)

// budgetID resolves ref against the budgets of s, either by id or by category.
func budgetID(s subwise.State, ref string) (string, error) {
	for _, b := range s.Budgets {
		if b.ID == ref || strings.EqualFold(b.Category, ref) {
			return b.ID, nil
		}
	}
	return "", fmt.Errorf("no budget %q", ref)
}

type budgetsCmd struct {
	date string
}

func (*budgetsCmd) Name() string     { return "budgets" }
func (*budgetsCmd) Synopsis() string { return "display the monthly budgets status" }
func (*budgetsCmd) Usage() string {
	return `sw budgets [-d <date>]

  Displays, for every budget, what was spent over the month containing the date.
`
}

func (c *budgetsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", date.Today().String(), "Any day of the month to report on.")
}

func (c *budgetsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := date.Parse(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	return run(ctx, func(s *session) subcommands.ExitStatus {
		printMarkdown(renderer.Budgets(s.ledger.State(), on, s.options()))
		return subcommands.ExitSuccess
	})
}

// --- Add Budget Command ---

type addBudgetCmd struct {
	category string
	limit    string
	currency string
}

func (*addBudgetCmd) Name() string     { return "add-budget" }
func (*addBudgetCmd) Synopsis() string { return "set a monthly spending limit on a category" }
func (*addBudgetCmd) Usage() string {
	return `sw add-budget -c <category> -l <limit> [-cur <currency>]

  Creates a monthly budget. A category has at most one budget.
`
}

func (c *addBudgetCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.category, "c", "", "Expense category")
	f.StringVar(&c.limit, "l", "", "Monthly limit")
	f.StringVar(&c.currency, "cur", "EGP", "Currency ISO code")
}

func (c *addBudgetCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	in := subwise.NewBudget{
		Category: category(subwise.Expense, c.category),
		Currency: strings.ToUpper(c.currency),
	}
	var err error
	if in.Limit, err = parseAmount(c.limit); err != nil || !in.Limit.IsPositive() {
		fmt.Fprintf(os.Stderr, "Error: invalid limit %q\n", c.limit)
		return subcommands.ExitUsageError
	}
	if !subwise.IsExpenseCategory(in.Category) {
		fmt.Fprintf(os.Stderr, "Error: unknown expense category %q\n", c.category)
		return subcommands.ExitUsageError
	}
	return run(ctx, func(s *session) subcommands.ExitStatus {
		b, err := s.ledger.AddBudget(in)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Fprintf(stdout, "Added budget for %q (%s)\n", b.Category, b.ID)
		return subcommands.ExitSuccess
	})
}

// --- Update Budget Command ---

type updateBudgetCmd struct {
	addBudgetCmd
	budget string
}

func (*updateBudgetCmd) Name() string     { return "update-budget" }
func (*updateBudgetCmd) Synopsis() string { return "edit a budget" }
func (*updateBudgetCmd) Usage() string {
	return `sw update-budget -b <budget> [-c <category>] [-l <limit>] [-cur <currency>]

  Overwrites the given fields of a budget, designated by its id or its category.
`
}

func (c *updateBudgetCmd) SetFlags(f *flag.FlagSet) {
	c.addBudgetCmd.SetFlags(f)
	f.StringVar(&c.budget, "b", "", "Budget id or category")
}

func (c *updateBudgetCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	set := visited(f)
	var u subwise.BudgetUpdate
	if set["c"] {
		cat := category(subwise.Expense, c.category)
		if !subwise.IsExpenseCategory(cat) {
			fmt.Fprintf(os.Stderr, "Error: unknown expense category %q\n", c.category)
			return subcommands.ExitUsageError
		}
		u.Category = &cat
	}
	if set["l"] {
		limit, err := parseAmount(c.limit)
		if err != nil || !limit.IsPositive() {
			fmt.Fprintf(os.Stderr, "Error: invalid limit %q\n", c.limit)
			return subcommands.ExitUsageError
		}
		u.Limit = &limit
	}
	if set["cur"] {
		cur := strings.ToUpper(c.currency)
		u.Currency = &cur
	}
	return run(ctx, func(s *session) subcommands.ExitStatus {
		id, err := budgetID(s.ledger.State(), c.budget)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		if err := s.ledger.UpdateBudget(id, u); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Fprintf(stdout, "Updated budget %s\n", id)
		return subcommands.ExitSuccess
	})
}

// --- Delete Budget Command ---

type deleteBudgetCmd struct {
	budget string
}

func (*deleteBudgetCmd) Name() string     { return "delete-budget" }
func (*deleteBudgetCmd) Synopsis() string { return "delete a budget" }
func (*deleteBudgetCmd) Usage() string {
	return `sw delete-budget -b <budget>

  Deletes a budget, designated by its id or its category. Transactions are untouched.
`
}

func (c *deleteBudgetCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.budget, "b", "", "Budget id or category")
}

func (c *deleteBudgetCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(s *session) subcommands.ExitStatus {
		id, err := budgetID(s.ledger.State(), c.budget)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		s.ledger.DeleteBudget(id)
		fmt.Fprintf(stdout, "Deleted budget %s\n", id)
		return subcommands.ExitSuccess
	})
}
