// Package tokenstore persists the single bearer credential of the storefront
// client together with its absolute expiry.
//
// Nothing is cached in memory: every read goes to storage, and a record that
// is expired or cannot be parsed is purged by the read that notices it, so an
// expired-but-present record is never observable.
package tokenstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/storefront/internal/client/storage"
	"github.com/dmitrijs2005/storefront/internal/logging"
)

// ExpiringSoonThreshold is how close to expiry a token counts as expiring soon.
const ExpiringSoonThreshold = 5 * time.Minute

// Record is the persisted token.
type Record struct {
	Token     string    `json:"token"`
	TokenType string    `json:"token_type"`
	ExpiresIn int       `json:"expires_in"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Store reads and writes the token Record under storage.KeyToken.
type Store struct {
	storage storage.Storage
	logger  logging.Logger
	now     func() time.Time
}

// Option customises a Store.
type Option func(*Store)

// WithClock replaces time.Now, mainly for tests that simulate elapsed time.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func New(st storage.Storage, logger logging.Logger, opts ...Option) *Store {
	s := &Store{storage: st, logger: logger.With("component", "tokenstore"), now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

// SetToken stores token with expiry now+lifetimeSeconds, replacing any
// previous record. A storage failure is logged and returned.
func (s *Store) SetToken(ctx context.Context, token string, lifetimeSeconds int, kind string) error {
	rec := Record{
		Token:     token,
		TokenType: kind,
		ExpiresIn: lifetimeSeconds,
		ExpiresAt: s.now().Add(time.Duration(lifetimeSeconds) * time.Second),
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode token: %w", err)
	}

	if err := s.storage.Set(ctx, storage.KeyToken, data); err != nil {
		s.logger.Error(ctx, "failed to persist token", "error", err)
		return fmt.Errorf("persist token: %w", err)
	}
	return nil
}

// GetToken returns the credential if a valid, unexpired record exists.
func (s *Store) GetToken(ctx context.Context) (string, bool) {
	rec, ok := s.GetTokenRecord(ctx)
	if !ok {
		return "", false
	}
	return rec.Token, true
}

// GetTokenRecord returns the full record under the same expiry rules as GetToken.
func (s *Store) GetTokenRecord(ctx context.Context) (*Record, bool) {
	data, err := s.storage.Get(ctx, storage.KeyToken)
	if err != nil {
		s.logger.Error(ctx, "failed to read token", "error", err)
		s.ClearToken(ctx)
		return nil, false
	}
	if data == nil {
		return nil, false
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil || rec.Token == "" {
		s.logger.Warn(ctx, "discarding unreadable token record", "error", err)
		s.ClearToken(ctx)
		return nil, false
	}

	if !rec.ExpiresAt.After(s.now()) {
		s.logger.Info(ctx, "token expired", "expires_at", rec.ExpiresAt)
		s.ClearToken(ctx)
		return nil, false
	}

	return &rec, true
}

// IsExpiringSoon reports whether a valid token expires within ExpiringSoonThreshold.
func (s *Store) IsExpiringSoon(ctx context.Context) bool {
	rec, ok := s.GetTokenRecord(ctx)
	if !ok {
		return false
	}
	return rec.ExpiresAt.Sub(s.now()) <= ExpiringSoonThreshold
}

// ClearToken removes the record. It is idempotent and only logs failures.
func (s *Store) ClearToken(ctx context.Context) {
	if err := s.storage.Remove(ctx, storage.KeyToken); err != nil {
		s.logger.Error(ctx, "failed to clear token", "error", err)
	}
}

// IsAuthenticated reports whether GetToken yields a credential.
func (s *Store) IsAuthenticated(ctx context.Context) bool {
	_, ok := s.GetToken(ctx)
	return ok
}
