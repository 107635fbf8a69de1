// Package cmd implements the sw command line application to manage a personal finance ledger.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/subwise"
	"github.com/etnz/subwise/logger"
	"github.com/etnz/subwise/renderer"
	"github.com/etnz/subwise/store"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for _, g := range groups {
		for _, cmd := range g.commands {
			c.Register(cmd, g.name)
		}
	}
}

type group struct {
	name     string
	commands []subcommands.Command
}

// groups lists every command, the way they are shown in the help.
var groups = []group{
	{"accounts", []subcommands.Command{&accountsCmd{}, &addAccountCmd{}, &updateAccountCmd{}, &deleteAccountCmd{}}},
	{"transactions", []subcommands.Command{&txCmd{}, &addCmd{}, &editCmd{}, &rmCmd{}, &recurCmd{}}},
	{"budgets", []subcommands.Command{&budgetsCmd{}, &addBudgetCmd{}, &updateBudgetCmd{}, &deleteBudgetCmd{}}},
	{"goals", []subcommands.Command{&goalsCmd{}, &addGoalCmd{}, &contributeCmd{}, &updateGoalCmd{}, &deleteGoalCmd{}}},
	{"reports", []subcommands.Command{&networthCmd{}, &summaryCmd{}}},
	{"data", []subcommands.Command{&exportCmd{}, &importCmd{}, &clearCmd{}, &privacyCmd{}}},
	{"manual", []subcommands.Command{&topicCmd{}}},
}

// Environment variables providing defaults to the global flags.
const (
	EnvStore    = "SUBWISE_STORE"
	EnvKey      = "SUBWISE_KEY"
	EnvSecret   = "SUBWISE_SECRET"
	EnvLogLevel = "SUBWISE_LOG_LEVEL"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	storeTarget = flag.String("store", "", "Storage target `kind:arg` (mem, file:<dir>, sqlite:<path>, postgres://..., gcs://<bucket>[/<prefix>], es8:<urls>). Defaults to $"+EnvStore+" or the user config directory.")
	storeKey    = flag.String("key", "", "Storage slot holding the ledger. Defaults to $"+EnvKey+" or "+store.DefaultKey+".")
	secret      = flag.String("secret", "", "Encrypt the stored ledger with this secret. Defaults to $"+EnvSecret+".")
	logLevel    = flag.String("log-level", "", "Log level (debug, info, warn, error). Defaults to $"+EnvLogLevel+" or warn.")
	plain       = flag.Bool("plain", false, "Print raw markdown instead of rendering it for the terminal.")
)

// stdout receives every command output.
var stdout io.Writer = os.Stdout

// retryFor bounds the retries of a failing store operation.
const retryFor = 10 * time.Second

// LoadEnv reads an optional .env file in the working directory. Variables already set win.
func LoadEnv() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Warning: cannot read .env file: %v\n", err)
	}
}

// setting returns the flag value if set, else the environment value, else def.
func setting(value, env, def string) string {
	if value != "" {
		return value
	}
	if v := os.Getenv(env); v != "" {
		return v
	}
	return def
}

// session is an opened ledger bound to its store.
type session struct {
	ledger *subwise.Ledger
	kv     store.KV
	log    zerolog.Logger
}

// openLedger opens the configured store and loads the ledger from it, seeding the demo ledger on
// the very first run.
func openLedger(ctx context.Context) (*session, error) {
	log, err := logger.New(os.Stderr, setting(*logLevel, EnvLogLevel, ""))
	if err != nil {
		return nil, err
	}
	ctx = logger.WithContext(ctx, log)

	target := setting(*storeTarget, EnvStore, "")
	var kv store.KV
	if kv, err = store.Open(ctx, target); err != nil {
		return nil, err
	}
	kv = store.NewRetrying(kv, retryFor)
	if s := setting(*secret, EnvSecret, ""); s != "" {
		enc, err := store.NewEncrypted(kv, s)
		if err != nil {
			kv.Close()
			return nil, err
		}
		kv = enc
	}

	adapter := store.NewAdapter(kv, setting(*storeKey, EnvKey, store.DefaultKey)).WithLogger(log)
	ctx, cancel := context.WithTimeout(ctx, store.DefaultTimeout)
	defer cancel()
	state, seeded, err := adapter.LoadOrSeed(ctx, time.Now())
	if err != nil {
		kv.Close()
		return nil, err
	}
	if seeded {
		fmt.Fprintln(os.Stderr, "First run: the ledger was seeded with demo data. Run 'sw clear' to start from scratch.")
	}

	l := subwise.NewLedger(state,
		subwise.WithPersister(adapter),
		subwise.WithLogger(log),
		subwise.WithWarnings(func(err error) { fmt.Fprintf(os.Stderr, "Warning: %v\n", err) }),
	)
	return &session{ledger: l, kv: kv, log: log}, nil
}

func (s *session) Close() error { return s.kv.Close() }

// options returns the rendering options matching the ledger preferences.
func (s *session) options() renderer.Options {
	return renderer.Options{Privacy: s.ledger.State().PrivacyMode}
}

// run opens the ledger, calls do, and closes the ledger. It is the common body of every command.
func run(ctx context.Context, do func(*session) subcommands.ExitStatus) subcommands.ExitStatus {
	s, err := openLedger(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	defer s.Close()
	status := do(s)
	if s.ledger.LastPersistError() != nil && status == subcommands.ExitSuccess {
		// the change is lost when the process exits
		return subcommands.ExitFailure
	}
	return status
}

// printMarkdown renders md for the terminal, or prints it as is with -plain.
func printMarkdown(md string) {
	if *plain {
		fmt.Fprint(stdout, md)
		return
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err != nil {
		fmt.Fprint(stdout, md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Fprint(stdout, md)
		return
	}
	fmt.Fprint(stdout, out)
}
