// Package storage is the persistence port of the storefront client.
//
// Stores (token, guest cart, guest wishlist) depend on the Storage interface
// only and read it fresh on every call; there is no in-memory cache to go
// stale. Adapters: Memory (tests, throwaway sessions), SQLite (default,
// survives restarts), Redis (shared kiosks) and Sealed (encryption at rest
// over any of them).
package storage

import (
	"context"
	"errors"
)

// Fixed keys, one per store.
const (
	KeyToken         = "auth_token"
	KeyGuestCart     = "guest_cart"
	KeyGuestWishlist = "guest_wishlist"
)

// Keys lists every key owned by the storefront client.
var Keys = []string{KeyToken, KeyGuestCart, KeyGuestWishlist}

// ErrUnknownDriver is returned by Open for an unsupported driver name.
var ErrUnknownDriver = errors.New("unknown storage driver")

// Storage is a synchronous key/value store.
//
// Get returns (nil, nil) when the key is absent. Remove of an absent key
// is not an error. Last write wins.
type Storage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}

// BulkRemover is implemented by adapters that delete several keys in one
// operation.
type BulkRemover interface {
	RemoveAll(ctx context.Context, keys ...string) error
}

// RemoveKeys deletes keys from st, in one operation when the adapter
// supports it and key by key otherwise.
func RemoveKeys(ctx context.Context, st Storage, keys ...string) error {
	if b, ok := st.(BulkRemover); ok {
		return b.RemoveAll(ctx, keys...)
	}
	for _, k := range keys {
		if err := st.Remove(ctx, k); err != nil {
			return err
		}
	}
	return nil
}

// Reset deletes every key the storefront client owns. The sealing salt is
// kept so the same secret still opens values written later.
func Reset(ctx context.Context, st Storage) error {
	return RemoveKeys(ctx, st, Keys...)
}
