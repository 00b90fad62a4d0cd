package storage

import (
	"context"
	"crypto/rand"
	"fmt"

	"github.com/dmitrijs2005/storefront/internal/cryptox"
)

// KeySalt holds the per-installation salt used to derive the sealing key.
// It is stored in the clear next to the sealed values.
const KeySalt = "storage_salt"

const saltSize = 16

// Sealed encrypts every value before handing it to the wrapped Storage.
type Sealed struct {
	inner Storage
	key   []byte
}

// NewSealed derives the sealing key from secret and the installation salt,
// creating and persisting the salt on first use.
func NewSealed(ctx context.Context, inner Storage, secret []byte) (*Sealed, error) {
	salt, err := inner.Get(ctx, KeySalt)
	if err != nil {
		return nil, fmt.Errorf("read salt: %w", err)
	}

	if salt == nil {
		salt = make([]byte, saltSize)
		if _, err := rand.Read(salt); err != nil {
			return nil, fmt.Errorf("generate salt: %w", err)
		}
		if err := inner.Set(ctx, KeySalt, salt); err != nil {
			return nil, fmt.Errorf("store salt: %w", err)
		}
	}

	return &Sealed{inner: inner, key: cryptox.DeriveKey(secret, salt)}, nil
}

// Get returns the decrypted value. Values that fail to decrypt surface as
// errors; stores treat those like any other corrupt entry.
func (s *Sealed) Get(ctx context.Context, key string) ([]byte, error) {
	sealed, err := s.inner.Get(ctx, key)
	if err != nil || sealed == nil {
		return nil, err
	}

	plain, err := cryptox.Open(sealed, s.key)
	if err != nil {
		return nil, fmt.Errorf("unseal %s: %w", key, err)
	}
	return plain, nil
}

func (s *Sealed) Set(ctx context.Context, key string, value []byte) error {
	sealed, err := cryptox.Seal(value, s.key)
	if err != nil {
		return fmt.Errorf("seal %s: %w", key, err)
	}
	return s.inner.Set(ctx, key, sealed)
}

func (s *Sealed) Remove(ctx context.Context, key string) error {
	return s.inner.Remove(ctx, key)
}

// RemoveAll passes the bulk delete through to the wrapped adapter.
func (s *Sealed) RemoveAll(ctx context.Context, keys ...string) error {
	return RemoveKeys(ctx, s.inner, keys...)
}
