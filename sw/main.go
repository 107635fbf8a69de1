// Command sw manages a personal finance ledger from the command line.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/subwise/cmd"
	"github.com/google/subcommands"
)

func main() {
	// exits when invoked by the shell to complete a command line
	cmd.Completion().Complete("sw")
	cmd.LoadEnv()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
