package store

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncrypted(t *testing.T) {
	ctx := context.Background()
	base := NewMem()
	kv, err := NewEncrypted(base, "correct horse")
	require.NoError(t, err)

	plain := []byte(`{"accounts":[{"name":"CIB Bank"}]}`)
	require.NoError(t, kv.Put(ctx, DefaultKey, plain))

	sealed, err := base.Get(ctx, DefaultKey)
	require.NoError(t, err)
	assert.False(t, bytes.Contains(sealed, []byte("CIB Bank")), "value stored in clear")

	got, err := kv.Get(ctx, DefaultKey)
	require.NoError(t, err)
	assert.Equal(t, plain, got)

	wrong, err := NewEncrypted(base, "battery staple")
	require.NoError(t, err)
	_, err = wrong.Get(ctx, DefaultKey)
	assert.ErrorIs(t, err, ErrDecrypt)

	_, err = kv.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, base.Put(ctx, "short", []byte("x")))
	_, err = kv.Get(ctx, "short")
	assert.ErrorIs(t, err, ErrDecrypt)

	_, err = NewEncrypted(base, "")
	assert.Error(t, err)
}

// flaky fails its first failures calls.
type flaky struct {
	KV
	failures int
	calls    int
}

func (f *flaky) Get(ctx context.Context, key string) ([]byte, error) {
	f.calls++
	if f.calls <= f.failures {
		return nil, errors.New("connection reset")
	}
	return f.KV.Get(ctx, key)
}

func (f *flaky) Put(ctx context.Context, key string, value []byte) error {
	f.calls++
	if f.calls <= f.failures {
		return errors.New("connection reset")
	}
	return f.KV.Put(ctx, key, value)
}

func TestRetrying(t *testing.T) {
	ctx := context.Background()

	t.Run("recovers", func(t *testing.T) {
		f := &flaky{KV: NewMem(), failures: 2}
		kv := NewRetrying(f, 10*time.Second)
		require.NoError(t, kv.Put(ctx, "k", []byte("v")))
		assert.Equal(t, 3, f.calls)

		got, err := kv.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, "v", string(got))
	})

	t.Run("not found is final", func(t *testing.T) {
		f := &flaky{KV: NewMem()}
		_, err := NewRetrying(f, 10*time.Second).Get(ctx, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Equal(t, 1, f.calls)
	})

	t.Run("gives up", func(t *testing.T) {
		f := &flaky{KV: NewMem(), failures: 1000}
		err := NewRetrying(f, 300*time.Millisecond).Put(ctx, "k", []byte("v"))
		assert.Error(t, err)
	})
}
