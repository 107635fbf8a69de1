package store

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Retrying retries failed operations of the wrapped KV with an exponential backoff, until
// maxElapsed has passed. ErrNotFound is never retried.
type Retrying struct {
	kv         KV
	maxElapsed time.Duration
	initial    time.Duration
}

func NewRetrying(kv KV, maxElapsed time.Duration) *Retrying {
	return &Retrying{kv: kv, maxElapsed: maxElapsed, initial: 100 * time.Millisecond}
}

func (r *Retrying) policy(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.initial
	b.MaxElapsedTime = r.maxElapsed
	return backoff.WithContext(b, ctx)
}

func (r *Retrying) Get(ctx context.Context, key string) ([]byte, error) {
	return backoff.RetryWithData(func() ([]byte, error) {
		v, err := r.kv.Get(ctx, key)
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrDecrypt) {
			return nil, backoff.Permanent(err)
		}
		return v, err
	}, r.policy(ctx))
}

func (r *Retrying) Put(ctx context.Context, key string, value []byte) error {
	return backoff.Retry(func() error {
		return r.kv.Put(ctx, key, value)
	}, r.policy(ctx))
}

func (r *Retrying) Close() error { return r.kv.Close() }
