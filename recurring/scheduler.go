package recurring

import (
	"context"
	"fmt"

	"github.com/etnz/subwise"
	"github.com/etnz/subwise/date"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// DefaultSpec runs the processor once a day, at midnight.
const DefaultSpec = "@daily"

// SchedulerOptions configures a Scheduler. The zero value is usable.
type SchedulerOptions struct {
	Logger zerolog.Logger
	Today  func() date.Date // defaults to date.Today
	// OnRun is called after each run with the generated occurrences.
	OnRun func([]subwise.Transaction)
}

// Scheduler runs Process periodically on a ledger.
type Scheduler struct {
	cron   *cron.Cron
	ledger *subwise.Ledger
	opts   SchedulerOptions
}

// NewScheduler creates a scheduler running Process on l according to the cron spec. An empty spec
// means DefaultSpec.
func NewScheduler(l *subwise.Ledger, spec string, opts SchedulerOptions) (*Scheduler, error) {
	if spec == "" {
		spec = DefaultSpec
	}
	if opts.Today == nil {
		opts.Today = date.Today
	}
	s := &Scheduler{cron: cron.New(), ledger: l, opts: opts}
	if _, err := s.cron.AddFunc(spec, s.Run); err != nil {
		return nil, fmt.Errorf("invalid recurrence schedule %q: %w", spec, err)
	}
	return s, nil
}

// Run processes the ledger once.
func (s *Scheduler) Run() {
	today := s.opts.Today()
	generated := Process(s.ledger, today)
	s.opts.Logger.Info().
		Stringer("today", today).
		Int("generated", len(generated)).
		Msg("recurring transactions processed")
	if s.opts.OnRun != nil {
		s.opts.OnRun(generated)
	}
}

// Start runs the scheduler in its own goroutine.
func (s *Scheduler) Start() { s.cron.Start() }

// Stop stops the scheduler and waits for a running job to complete, or for ctx to be done.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
