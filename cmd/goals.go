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

// goalID resolves ref against the savings goals of s, either by id or by case-insensitive name.
func goalID(s subwise.State, ref string) (string, error) {
	for _, g := range s.SavingsGoals {
		if g.ID == ref || strings.EqualFold(g.Name, ref) {
			return g.ID, nil
		}
	}
	return "", fmt.Errorf("no savings goal %q", ref)
}

type goalsCmd struct{}

func (*goalsCmd) Name() string     { return "goals" }
func (*goalsCmd) Synopsis() string { return "display the savings goals progress" }
func (*goalsCmd) Usage() string {
	return `sw goals

  Displays every savings goal with its progress and deadline.
`
}
func (*goalsCmd) SetFlags(*flag.FlagSet) {}

func (*goalsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(s *session) subcommands.ExitStatus {
		printMarkdown(renderer.Goals(s.ledger.State(), date.Today(), s.options()))
		return subcommands.ExitSuccess
	})
}

// --- Add Goal Command ---

type addGoalCmd struct {
	name     string
	target   string
	current  string
	currency string
	deadline string
	account  string
	color    string
}

func (*addGoalCmd) Name() string     { return "add-goal" }
func (*addGoalCmd) Synopsis() string { return "create a savings goal" }
func (*addGoalCmd) Usage() string {
	return `sw add-goal -n <name> -target <amount> [-saved <amount>] [-cur <currency>] [-deadline <date>] [-a <account>] [-color <#rrggbb>]

  Creates a savings goal. The linked account is informational only.
`
}

func (c *addGoalCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "n", "", "Goal name")
	f.StringVar(&c.target, "target", "", "Target amount")
	f.StringVar(&c.current, "saved", "0", "Amount already saved")
	f.StringVar(&c.currency, "cur", "EGP", "Currency ISO code")
	f.StringVar(&c.deadline, "deadline", "", "Optional deadline")
	f.StringVar(&c.account, "a", "", "Optional linked account id or name")
	f.StringVar(&c.color, "color", "#10b981", "Display color")
}

func (c *addGoalCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	in := subwise.NewSavingsGoal{
		Name:     strings.TrimSpace(c.name),
		Currency: strings.ToUpper(c.currency),
		Color:    c.color,
	}
	var err error
	if in.TargetAmount, err = parseAmount(c.target); err != nil || !in.TargetAmount.IsPositive() {
		fmt.Fprintf(os.Stderr, "Error: invalid target %q\n", c.target)
		return subcommands.ExitUsageError
	}
	if in.CurrentAmount, err = parseAmount(c.current); err != nil || in.CurrentAmount.IsNegative() {
		fmt.Fprintf(os.Stderr, "Error: invalid saved amount %q\n", c.current)
		return subcommands.ExitUsageError
	}
	if in.Deadline, err = parseOptionalDate(c.deadline); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing deadline: %v\n", err)
		return subcommands.ExitUsageError
	}
	if in.Name == "" {
		fmt.Fprintln(os.Stderr, "Error: flag -n is required")
		return subcommands.ExitUsageError
	}
	return run(ctx, func(s *session) subcommands.ExitStatus {
		if in.AccountID, err = accountID(s.ledger.State(), c.account); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		g := s.ledger.AddSavingsGoal(in)
		fmt.Fprintf(stdout, "Added savings goal %q (%s)\n", g.Name, g.ID)
		return subcommands.ExitSuccess
	})
}

// --- Contribute Command ---

type contributeCmd struct {
	goal   string
	amount string
}

func (*contributeCmd) Name() string     { return "contribute" }
func (*contributeCmd) Synopsis() string { return "add money to a savings goal" }
func (*contributeCmd) Usage() string {
	return `sw contribute -g <goal> -v <amount>

  Adds a positive amount to a savings goal. No account balance changes.
`
}

func (c *contributeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.goal, "g", "", "Goal id or name")
	f.StringVar(&c.amount, "v", "", "Amount to add")
}

func (c *contributeCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	amount, err := parseAmount(c.amount)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	return run(ctx, func(s *session) subcommands.ExitStatus {
		id, err := goalID(s.ledger.State(), c.goal)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		if err := s.ledger.ContributeSavingsGoal(id, amount); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		g, _ := subwise.SavingsGoalByID(s.ledger.State(), id)
		if g.Reached() {
			fmt.Fprintf(stdout, "Goal %q reached!\n", g.Name)
		}
		printMarkdown(renderer.Goals(subwise.State{SavingsGoals: []subwise.SavingsGoal{g}}, date.Today(), s.options()))
		return subcommands.ExitSuccess
	})
}

// --- Update Goal Command ---

type updateGoalCmd struct {
	addGoalCmd
	goal string
}

func (*updateGoalCmd) Name() string     { return "update-goal" }
func (*updateGoalCmd) Synopsis() string { return "edit a savings goal" }
func (*updateGoalCmd) Usage() string {
	return `sw update-goal -g <goal> [-n <name>] [-target <amount>] [-saved <amount>] [-cur <currency>] [-deadline <date>] [-a <account>] [-color <#rrggbb>]

  Overwrites the given fields of a savings goal. An empty -deadline or -a clears it.
`
}

func (c *updateGoalCmd) SetFlags(f *flag.FlagSet) {
	c.addGoalCmd.SetFlags(f)
	f.StringVar(&c.goal, "g", "", "Goal id or name")
}

func (c *updateGoalCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	set := visited(f)
	var u subwise.SavingsGoalUpdate
	if set["n"] {
		u.Name = &c.name
	}
	if set["target"] {
		v, err := parseAmount(c.target)
		if err != nil || !v.IsPositive() {
			fmt.Fprintf(os.Stderr, "Error: invalid target %q\n", c.target)
			return subcommands.ExitUsageError
		}
		u.TargetAmount = &v
	}
	if set["saved"] {
		v, err := parseAmount(c.current)
		if err != nil || v.IsNegative() {
			fmt.Fprintf(os.Stderr, "Error: invalid saved amount %q\n", c.current)
			return subcommands.ExitUsageError
		}
		u.CurrentAmount = &v
	}
	if set["cur"] {
		cur := strings.ToUpper(c.currency)
		u.Currency = &cur
	}
	if set["deadline"] {
		d, err := parseOptionalDate(c.deadline)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing deadline: %v\n", err)
			return subcommands.ExitUsageError
		}
		u.Deadline = &d
	}
	if set["color"] {
		u.Color = &c.color
	}
	return run(ctx, func(s *session) subcommands.ExitStatus {
		st := s.ledger.State()
		id, err := goalID(st, c.goal)
		if err == nil && set["a"] {
			var acc string
			acc, err = accountID(st, c.account)
			u.AccountID = &acc
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		s.ledger.UpdateSavingsGoal(id, u)
		fmt.Fprintf(stdout, "Updated savings goal %s\n", id)
		return subcommands.ExitSuccess
	})
}

// --- Delete Goal Command ---

type deleteGoalCmd struct {
	goal string
}

func (*deleteGoalCmd) Name() string     { return "delete-goal" }
func (*deleteGoalCmd) Synopsis() string { return "delete a savings goal" }
func (*deleteGoalCmd) Usage() string {
	return `sw delete-goal -g <goal>

  Deletes a savings goal, designated by its id or its name.
`
}

func (c *deleteGoalCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.goal, "g", "", "Goal id or name")
}

func (c *deleteGoalCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(s *session) subcommands.ExitStatus {
		id, err := goalID(s.ledger.State(), c.goal)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		s.ledger.DeleteSavingsGoal(id)
		fmt.Fprintf(stdout, "Deleted savings goal %s\n", id)
		return subcommands.ExitSuccess
	})
}
