package storage

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/storefront/internal/filex"
)

// Driver names accepted by Open.
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
)

// Options selects and configures a Storage adapter.
type Options struct {
	Driver string

	// SQLitePath is the database file for DriverSQLite.
	SQLitePath string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string

	// Secret, when set, wraps the adapter in Sealed.
	Secret string
}

// Open builds the configured Storage. The returned close function releases
// the underlying connection and is never nil.
func Open(ctx context.Context, opts Options) (Storage, func() error, error) {
	var (
		s       Storage
		closeFn = func() error { return nil }
	)

	switch opts.Driver {
	case DriverMemory:
		s = NewMemory()

	case "", DriverSQLite:
		path, err := filex.EnsureParentDir(opts.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		db, err := OpenSQLite(ctx, path)
		if err != nil {
			return nil, nil, err
		}
		s, closeFn = db, db.Close

	case DriverRedis:
		r, err := OpenRedis(ctx, opts.RedisAddr, opts.RedisPassword, opts.RedisDB, opts.RedisPrefix)
		if err != nil {
			return nil, nil, err
		}
		s, closeFn = r, r.Close

	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownDriver, opts.Driver)
	}

	if opts.Secret == "" {
		return s, closeFn, nil
	}

	sealed, err := NewSealed(ctx, s, []byte(opts.Secret))
	if err != nil {
		_ = closeFn()
		return nil, nil, err
	}
	return sealed, closeFn, nil
}
