package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/etnz/subwise"
	"github.com/etnz/subwise/spreadsheet"
	"github.com/google/subcommands"
)

// --- Export Command ---

type exportCmd struct {
	format string
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export the ledger as a backup or a spreadsheet" }
func (*exportCmd) Usage() string {
	return `sw export [-f json|csv|xlsx] [-o <file>]

  Exports the ledger. json is a full backup that 'sw import' restores. csv lists the
  transactions. xlsx writes one sheet per collection and requires -o.

Usage Examples:
$ sw export -o backup.json
$ sw export -f xlsx -o ledger.xlsx
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.format, "f", "json", "Output format: json, csv or xlsx")
	f.StringVar(&c.output, "o", "", "Output file, defaults to the standard output")
}

func (c *exportCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	format := strings.ToLower(c.format)
	switch format {
	case "json", "csv":
	case "xlsx":
		if c.output == "" {
			fmt.Fprintln(os.Stderr, "Error: xlsx export requires -o")
			return subcommands.ExitUsageError
		}
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown format %q\n", c.format)
		return subcommands.ExitUsageError
	}

	return run(ctx, func(s *session) subcommands.ExitStatus {
		var w io.Writer = stdout
		if c.output != "" {
			f, err := os.Create(c.output)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error creating %q: %v\n", c.output, err)
				return subcommands.ExitFailure
			}
			defer f.Close()
			w = f
		}

		st := s.ledger.State()
		var err error
		switch format {
		case "json":
			err = subwise.EncodeSnapshot(w, subwise.Export(st, time.Now()))
		case "csv":
			err = spreadsheet.WriteCSV(w, st, st.Transactions)
		case "xlsx":
			err = spreadsheet.WriteXLSX(w, st)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error exporting: %v\n", err)
			return subcommands.ExitFailure
		}
		if c.output != "" {
			fmt.Fprintf(os.Stderr, "Exported %d accounts and %d transactions to %s\n", len(st.Accounts), len(st.Transactions), c.output)
		}
		return subcommands.ExitSuccess
	})
}

// --- Import Command ---

type importCmd struct {
	input string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "replace the ledger with a backup" }
func (*importCmd) Usage() string {
	return `sw import -i <file>

  Replaces the whole ledger with a backup made by 'sw export'. Nothing changes when the
  file is not a valid backup.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.input, "i", "", "Backup file, '-' for the standard input")
}

func (c *importCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var r io.Reader = os.Stdin
	switch c.input {
	case "":
		fmt.Fprintln(os.Stderr, "Error: flag -i is required")
		return subcommands.ExitUsageError
	case "-":
	default:
		f, err := os.Open(c.input)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening %q: %v\n", c.input, err)
			return subcommands.ExitFailure
		}
		defer f.Close()
		r = f
	}

	snap, err := subwise.DecodeSnapshot(r)
	if err != nil {
		if errors.Is(err, subwise.ErrImportFormat) {
			fmt.Fprintf(os.Stderr, "Error: %q is not a valid backup: %v\n", c.input, err)
		} else {
			fmt.Fprintf(os.Stderr, "Error reading %q: %v\n", c.input, err)
		}
		return subcommands.ExitFailure
	}

	return run(ctx, func(s *session) subcommands.ExitStatus {
		s.ledger.Import(snap)
		fmt.Fprintf(stdout, "Imported %d accounts and %d transactions\n", len(snap.Accounts), len(snap.Transactions))
		return subcommands.ExitSuccess
	})
}

// --- Clear Command ---

type clearCmd struct {
	yes bool
}

func (*clearCmd) Name() string     { return "clear" }
func (*clearCmd) Synopsis() string { return "delete all the ledger data" }
func (*clearCmd) Usage() string {
	return `sw clear -y

  Deletes every account, transaction, budget and savings goal. The privacy preference is kept.
`
}

func (c *clearCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.yes, "y", false, "Confirm the deletion")
}

func (c *clearCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !c.yes {
		fmt.Fprintln(os.Stderr, "Error: this deletes all your data, confirm with -y")
		return subcommands.ExitUsageError
	}
	return run(ctx, func(s *session) subcommands.ExitStatus {
		s.ledger.ClearAll()
		fmt.Fprintln(stdout, "All data cleared")
		return subcommands.ExitSuccess
	})
}

// --- Privacy Command ---

type privacyCmd struct {
	mode string
}

func (*privacyCmd) Name() string     { return "privacy" }
func (*privacyCmd) Synopsis() string { return "hide or show amounts" }
func (*privacyCmd) Usage() string {
	return `sw privacy [on|off]

  Turns privacy mode on or off, or toggles it without argument. In privacy mode every
  amount is masked in the reports.
`
}
func (*privacyCmd) SetFlags(*flag.FlagSet) {}

func (c *privacyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() > 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	mode := strings.ToLower(f.Arg(0))
	switch mode {
	case "", "on", "off":
	default:
		f.Usage()
		return subcommands.ExitUsageError
	}
	return run(ctx, func(s *session) subcommands.ExitStatus {
		var on bool
		switch mode {
		case "":
			on = s.ledger.TogglePrivacyMode()
		default:
			on = mode == "on"
			s.ledger.SetPrivacyMode(on)
		}
		if on {
			fmt.Fprintln(stdout, "Privacy mode on")
		} else {
			fmt.Fprintln(stdout, "Privacy mode off")
		}
		return subcommands.ExitSuccess
	})
}
