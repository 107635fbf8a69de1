package store

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"

	"github.com/gtank/cryptopasta"
	"golang.org/x/crypto/pbkdf2"
)

// ErrDecrypt is returned when a stored value cannot be decrypted, usually because the secret is
// wrong.
var ErrDecrypt = errors.New("cannot decrypt stored value")

const (
	saltSize   = 32
	kdfRounds  = 100_000
	aesKeySize = 32
)

// Encrypted seals values with AES-256-GCM before handing them to the wrapped KV.
//
// The key is derived from the secret with PBKDF2-SHA256 and a random salt per value. A stored
// value is the salt followed by the sealed box.
type Encrypted struct {
	kv     KV
	secret []byte
}

// NewEncrypted wraps kv. An empty secret is an error.
func NewEncrypted(kv KV, secret string) (*Encrypted, error) {
	if secret == "" {
		return nil, errors.New("encryption secret is empty")
	}
	return &Encrypted{kv: kv, secret: []byte(secret)}, nil
}

func (e *Encrypted) key(salt []byte) *[32]byte {
	var key [aesKeySize]byte
	copy(key[:], pbkdf2.Key(e.secret, salt, kdfRounds, aesKeySize, sha256.New))
	return &key
}

func (e *Encrypted) Get(ctx context.Context, key string) ([]byte, error) {
	sealed, err := e.kv.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if len(sealed) < saltSize {
		return nil, fmt.Errorf("%w: value of %q is too short", ErrDecrypt, key)
	}
	plain, err := cryptopasta.Decrypt(sealed[saltSize:], e.key(sealed[:saltSize]))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecrypt, err)
	}
	return plain, nil
}

func (e *Encrypted) Put(ctx context.Context, key string, value []byte) error {
	salt := cryptopasta.NewEncryptionKey()[:]
	sealed, err := cryptopasta.Encrypt(value, e.key(salt))
	if err != nil {
		return fmt.Errorf("encrypt %q: %w", key, err)
	}
	return e.kv.Put(ctx, key, append(salt, sealed...))
}

func (e *Encrypted) Close() error { return e.kv.Close() }
