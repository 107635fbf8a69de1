// Package store persists ledger snapshots in key-value backends.
//
// A backend is selected by a target string "kind:argument", for instance "file:/home/me/.subwise"
// or "es8:http://localhost:9200". Backends can be wrapped with Encrypted and Retrying.
package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/etnz/subwise/logger"
)

// ErrNotFound is returned by Get when the key holds no value.
var ErrNotFound = errors.New("key not found")

// KV is a durable slot store.
type KV interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Put stores value under key, replacing any previous value.
	Put(ctx context.Context, key string, value []byte) error
	Close() error
}

// Kinds lists the supported backend kinds.
var Kinds = []string{"mem", "file", "sqlite", "postgres", "gcs", "es8"}

// ParseTarget splits a "kind:argument" target. A target without a known kind prefix is a file
// directory.
func ParseTarget(target string) (kind, arg string, err error) {
	kind, arg, found := strings.Cut(target, ":")
	if !found {
		return "file", target, nil
	}
	switch kind {
	case "mem", "file", "sqlite":
		return kind, arg, nil
	case "postgres", "postgresql":
		// pgx wants the full url back
		return "postgres", target, nil
	case "gcs", "gs":
		arg = strings.TrimPrefix(arg, "//")
		if arg == "" {
			return "", "", fmt.Errorf("store %q: missing bucket name", target)
		}
		return "gcs", arg, nil
	case "es8":
		return kind, arg, nil
	default:
		return "", "", fmt.Errorf("store %q: unknown kind %q, want one of %s", target, kind, strings.Join(Kinds, ", "))
	}
}

// DefaultDir returns the directory used by the file backend when none is given.
func DefaultDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate default store directory: %w", err)
	}
	return filepath.Join(dir, "subwise"), nil
}

// Open opens the backend described by target.
func Open(ctx context.Context, target string) (KV, error) {
	kind, arg, err := ParseTarget(target)
	if err != nil {
		return nil, err
	}
	log := logger.FromContext(ctx)
	log.Debug().Str("kind", kind).Msg("opening store")

	switch kind {
	case "mem":
		return NewMem(), nil
	case "file":
		if arg == "" {
			if arg, err = DefaultDir(); err != nil {
				return nil, err
			}
		}
		return NewFile(arg)
	case "sqlite":
		return NewSQLite(ctx, arg)
	case "postgres":
		return NewPostgres(ctx, arg)
	case "gcs":
		bucket, prefix, _ := strings.Cut(arg, "/")
		return NewGCS(ctx, bucket, prefix)
	case "es8":
		var urls []string
		if arg != "" {
			urls = strings.Split(arg, ",")
		}
		return NewElasticsearchV8(log, urls...)
	}
	return nil, fmt.Errorf("store %q: unsupported kind %q", target, kind)
}
