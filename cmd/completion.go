package cmd

import (
	"flag"
	"slices"

	"github.com/etnz/subwise"
	"github.com/etnz/subwise/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

var (
	periods          = predict.Set{"daily", "weekly", "monthly", "yearly"}
	transactionTypes = predict.Set{string(subwise.Income), string(subwise.Expense), string(subwise.Transfer)}
	accountTypes     = predict.Set{string(subwise.Bank), string(subwise.Wallet), string(subwise.Card), string(subwise.Savings), string(subwise.Investment)}
	categories       = predict.Set(slices.Concat(subwise.ExpenseCategories, subwise.IncomeCategories, []string{subwise.TransferCategory}))
)

// Completion returns the shell completion of the command line: global flags, subcommands and
// their flags.
func Completion() *complete.Command {
	root := &complete.Command{
		Sub:   map[string]*complete.Command{},
		Flags: flagPredictors("", flag.CommandLine),
	}
	for _, g := range groups {
		for _, c := range g.commands {
			fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
			c.SetFlags(fs)
			root.Sub[c.Name()] = &complete.Command{Flags: flagPredictors(c.Name(), fs)}
		}
	}
	root.Sub["privacy"].Args = predict.Set{"on", "off"}
	root.Sub["topic"].Args = predict.Set(append(docs.List(), "*"))
	root.Sub["help"] = &complete.Command{Args: predict.Set(commandNames())}
	return root
}

func commandNames() []string {
	var names []string
	for _, g := range groups {
		for _, c := range g.commands {
			names = append(names, c.Name())
		}
	}
	return names
}

type boolFlag interface{ IsBoolFlag() bool }

// flagPredictors predicts the values of the flags in fs, for the command named cmd.
func flagPredictors(cmd string, fs *flag.FlagSet) map[string]complete.Predictor {
	flags := map[string]complete.Predictor{}
	fs.VisitAll(func(f *flag.Flag) {
		if b, ok := f.Value.(boolFlag); ok && b.IsBoolFlag() {
			flags[f.Name] = predict.Nothing
			return
		}
		flags[f.Name] = predict.Something
		switch f.Name {
		case "f":
			flags[f.Name] = predict.Set{"json", "csv", "xlsx"}
		case "i", "o":
			flags[f.Name] = predict.Files("*")
		case "every", "p":
			flags[f.Name] = periods
		case "store":
			flags[f.Name] = predict.Set{"mem", "file:", "sqlite:", "postgres://", "gcs://", "es8:"}
		case "log-level":
			flags[f.Name] = predict.Set{"debug", "info", "warn", "error"}
		case "t":
			if cmd == "add-account" || cmd == "update-account" {
				flags[f.Name] = accountTypes
			} else {
				flags[f.Name] = transactionTypes
			}
		case "c":
			if cmd != "add-account" && cmd != "update-account" {
				flags[f.Name] = categories
			}
		}
	})
	return flags
}
