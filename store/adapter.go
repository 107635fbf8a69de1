package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/etnz/subwise"
	"github.com/rs/zerolog"
)

// DefaultKey is the slot holding the ledger snapshot. It never changes across versions.
const DefaultKey = "subwise-wealth-data"

// DefaultTimeout bounds every backend operation started by Persist.
const DefaultTimeout = 30 * time.Second

// Adapter saves and loads ledger snapshots in one slot of a KV.
//
// It implements subwise.Persister.
type Adapter struct {
	kv      KV
	key     string
	timeout time.Duration
	now     func() time.Time
	log     zerolog.Logger
}

// NewAdapter returns an adapter for the slot key of kv. An empty key means DefaultKey.
func NewAdapter(kv KV, key string) *Adapter {
	if key == "" {
		key = DefaultKey
	}
	return &Adapter{kv: kv, key: key, timeout: DefaultTimeout, now: time.Now, log: zerolog.Nop()}
}

// WithLogger sets the logger.
func (a *Adapter) WithLogger(log zerolog.Logger) *Adapter {
	a.log = log
	return a
}

// Load reads the snapshot stored in the slot. It returns ErrNotFound when the slot is empty.
func (a *Adapter) Load(ctx context.Context) (subwise.State, error) {
	data, err := a.kv.Get(ctx, a.key)
	if err != nil {
		return subwise.State{}, fmt.Errorf("load %q: %w", a.key, err)
	}
	s, err := subwise.DecodeSnapshot(bytes.NewReader(data))
	if err != nil {
		return subwise.State{}, fmt.Errorf("load %q: %w", a.key, err)
	}
	a.log.Debug().Str("key", a.key).Int("bytes", len(data)).Msg("snapshot loaded")
	return s.State(), nil
}

// LoadOrSeed loads the stored snapshot. On the very first run, when the slot is empty, it stores
// and returns the demo ledger instead, and reports seeded.
func (a *Adapter) LoadOrSeed(ctx context.Context, now time.Time) (s subwise.State, seeded bool, err error) {
	s, err = a.Load(ctx)
	if !errors.Is(err, ErrNotFound) {
		return s, false, err
	}
	s = subwise.DemoState(now)
	if err := a.save(ctx, s); err != nil {
		return subwise.State{}, false, err
	}
	a.log.Info().Str("key", a.key).Msg("first run, demo ledger seeded")
	return s, true, nil
}

// Persist saves s in the slot.
func (a *Adapter) Persist(s subwise.State) error {
	ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
	defer cancel()
	return a.save(ctx, s)
}

func (a *Adapter) save(ctx context.Context, s subwise.State) error {
	var buf bytes.Buffer
	if err := subwise.EncodeSnapshot(&buf, subwise.Export(s, a.now())); err != nil {
		return err
	}
	if err := a.kv.Put(ctx, a.key, buf.Bytes()); err != nil {
		return fmt.Errorf("save %q: %w", a.key, err)
	}
	a.log.Debug().Str("key", a.key).Int("bytes", buf.Len()).Msg("snapshot saved")
	return nil
}

var _ subwise.Persister = (*Adapter)(nil)
