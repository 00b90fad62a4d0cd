package tokenstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/storefront/internal/client/storage"
	"github.com/dmitrijs2005/storefront/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock is a manually advanced clock.
type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

// failingStorage wraps Memory and fails the selected operations.
type failingStorage struct {
	*storage.Memory
	getErr, setErr, removeErr error
	removes                   int
}

func (f *failingStorage) Get(ctx context.Context, key string) ([]byte, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.Memory.Get(ctx, key)
}

func (f *failingStorage) Set(ctx context.Context, key string, value []byte) error {
	if f.setErr != nil {
		return f.setErr
	}
	return f.Memory.Set(ctx, key, value)
}

func (f *failingStorage) Remove(ctx context.Context, key string) error {
	f.removes++
	if f.removeErr != nil {
		return f.removeErr
	}
	return f.Memory.Remove(ctx, key)
}

func newStore(t *testing.T) (*Store, *storage.Memory, *fakeClock) {
	t.Helper()
	mem := storage.NewMemory()
	clock := &fakeClock{t: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	return New(mem, logging.Discard(), WithClock(clock.Now)), mem, clock
}

func TestSetToken_ThenGetToken(t *testing.T) {
	s, _, _ := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.SetToken(ctx, "abc", 3600, "Bearer"))

	tok, ok := s.GetToken(ctx)
	require.True(t, ok)
	assert.Equal(t, "abc", tok)
	assert.True(t, s.IsAuthenticated(ctx))
}

func TestGetTokenRecord_ExpiryDerivedAtWrite(t *testing.T) {
	s, _, clock := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.SetToken(ctx, "abc", 60, "Bearer"))

	rec, ok := s.GetTokenRecord(ctx)
	require.True(t, ok)
	assert.Equal(t, "abc", rec.Token)
	assert.Equal(t, "Bearer", rec.TokenType)
	assert.Equal(t, 60, rec.ExpiresIn)
	assert.True(t, rec.ExpiresAt.Equal(clock.Now().Add(time.Minute)))
}

func TestSetToken_OverwritesPrevious(t *testing.T) {
	s, _, _ := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.SetToken(ctx, "first", 3600, "Bearer"))
	require.NoError(t, s.SetToken(ctx, "second", 3600, "Bearer"))

	tok, ok := s.GetToken(ctx)
	require.True(t, ok)
	assert.Equal(t, "second", tok)
}

func TestGetToken_ExpiredIsPurgedPermanently(t *testing.T) {
	s, mem, clock := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.SetToken(ctx, "abc", 60, "Bearer"))
	clock.Advance(60 * time.Second)

	_, ok := s.GetToken(ctx)
	require.False(t, ok, "expiry at exactly now counts as expired")

	raw, err := mem.Get(ctx, storage.KeyToken)
	require.NoError(t, err)
	require.Nil(t, raw, "expired record must be purged from storage")

	clock.t = clock.t.Add(-time.Hour)
	_, ok = s.GetTokenRecord(ctx)
	require.False(t, ok, "purge is permanent, not merely hidden")
}

func TestGetToken_JustBeforeExpiry(t *testing.T) {
	s, _, clock := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.SetToken(ctx, "abc", 60, "Bearer"))
	clock.Advance(59 * time.Second)

	_, ok := s.GetToken(ctx)
	require.True(t, ok)
}

func TestGetToken_Absent(t *testing.T) {
	s, _, _ := newStore(t)

	_, ok := s.GetToken(context.Background())
	require.False(t, ok)
	require.False(t, s.IsAuthenticated(context.Background()))
}

func TestGetToken_CorruptRecordIsPurged(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "not json", raw: "{broken"},
		{name: "wrong shape", raw: `["x"]`},
		{name: "empty token", raw: `{"token":"","expires_at":"2030-01-01T00:00:00Z"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, mem, _ := newStore(t)
			ctx := context.Background()
			require.NoError(t, mem.Set(ctx, storage.KeyToken, []byte(tt.raw)))

			_, ok := s.GetToken(ctx)
			require.False(t, ok)

			raw, err := mem.Get(ctx, storage.KeyToken)
			require.NoError(t, err)
			require.Nil(t, raw)
		})
	}
}

func TestGetToken_StorageReadFailureIsAbsent(t *testing.T) {
	fs := &failingStorage{Memory: storage.NewMemory(), getErr: errors.New("disk gone")}
	s := New(fs, logging.Discard())

	_, ok := s.GetToken(context.Background())
	require.False(t, ok)
	require.Equal(t, 1, fs.removes)
}

func TestSetToken_PersistFailureIsReturned(t *testing.T) {
	fs := &failingStorage{Memory: storage.NewMemory(), setErr: errors.New("quota")}
	s := New(fs, logging.Discard())

	err := s.SetToken(context.Background(), "abc", 60, "Bearer")
	require.Error(t, err)

	_, ok := s.GetToken(context.Background())
	require.False(t, ok)
}

func TestIsExpiringSoon(t *testing.T) {
	s, _, clock := newStore(t)
	ctx := context.Background()

	require.False(t, s.IsExpiringSoon(ctx), "no token")

	require.NoError(t, s.SetToken(ctx, "abc", 3600, "Bearer"))
	require.False(t, s.IsExpiringSoon(ctx), "fresh token with long lifetime")

	clock.Advance(time.Hour - ExpiringSoonThreshold - time.Second)
	require.False(t, s.IsExpiringSoon(ctx))

	clock.Advance(time.Second)
	require.True(t, s.IsExpiringSoon(ctx), "remaining lifetime equals threshold")

	clock.Advance(ExpiringSoonThreshold)
	require.False(t, s.IsExpiringSoon(ctx), "expired token is absent")
}

func TestClearToken_Idempotent(t *testing.T) {
	s, _, _ := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.SetToken(ctx, "abc", 3600, "Bearer"))
	s.ClearToken(ctx)
	s.ClearToken(ctx)

	require.False(t, s.IsAuthenticated(ctx))
}

func TestClearToken_FailureDoesNotPanic(t *testing.T) {
	fs := &failingStorage{Memory: storage.NewMemory(), removeErr: errors.New("locked")}
	s := New(fs, logging.Discard())

	require.NotPanics(t, func() { s.ClearToken(context.Background()) })
}
