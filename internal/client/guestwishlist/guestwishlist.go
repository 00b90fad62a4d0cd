// Package guestwishlist keeps the wishlist of a shopper who has not logged in.
//
// Entries are unique per product and carry display fields captured when the
// product was added, so the list can be rendered without a round trip. The
// fields are never refreshed here.
package guestwishlist

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/storefront/internal/client/events"
	"github.com/dmitrijs2005/storefront/internal/client/storage"
	"github.com/dmitrijs2005/storefront/internal/logging"
)

// Display is the cached presentation data of a wishlisted product.
type Display struct {
	Name      string   `json:"name,omitempty"`
	Slug      string   `json:"slug,omitempty"`
	Price     float64  `json:"price,omitempty"`
	SalePrice *float64 `json:"sale_price,omitempty"`
	Image     string   `json:"image,omitempty"`
	InStock   bool     `json:"in_stock"`
}

// Entry is one wishlisted product.
type Entry struct {
	ProductID int64     `json:"product_id"`
	AddedAt   time.Time `json:"added_at"`
	Display   *Display  `json:"display,omitempty"`
}

// Store is the guest wishlist.
type Store struct {
	storage storage.Storage
	logger  logging.Logger
	now     func() time.Time
	changed events.Subject[struct{}]
}

type Option func(*Store)

// WithClock replaces time.Now for AddedAt stamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func New(st storage.Storage, logger logging.Logger, opts ...Option) *Store {
	s := &Store{storage: st, logger: logger.With("component", "guestwishlist"), now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Subscribe registers fn to be called after every mutation. Callers re-read
// the list or the count themselves.
func (s *Store) Subscribe(fn func()) (unsubscribe func()) {
	return s.changed.Subscribe(func(struct{}) { fn() })
}

// GetWishlist returns the entries in the order they were added. Unreadable
// state yields an empty list.
func (s *Store) GetWishlist(ctx context.Context) []Entry {
	data, err := s.storage.Get(ctx, storage.KeyGuestWishlist)
	if err != nil {
		s.logger.Error(ctx, "failed to read guest wishlist", "error", err)
		return []Entry{}
	}
	if data == nil {
		return []Entry{}
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		s.logger.Warn(ctx, "guest wishlist is unreadable, treating as empty", "error", err)
		return []Entry{}
	}
	if entries == nil {
		entries = []Entry{}
	}
	return entries
}

// AddItem appends productID stamped with the current time. Adding a product
// that is already present returns the list unchanged and writes nothing.
func (s *Store) AddItem(ctx context.Context, productID int64, display *Display) ([]Entry, error) {
	entries := s.GetWishlist(ctx)
	if indexOf(entries, productID) >= 0 {
		return entries, nil
	}

	e := Entry{ProductID: productID, AddedAt: s.now().UTC()}
	if display != nil {
		d := *display
		e.Display = &d
	}
	entries = append(entries, e)

	return entries, s.save(ctx, entries)
}

// RemoveItem drops productID and persists the rest.
func (s *Store) RemoveItem(ctx context.Context, productID int64) ([]Entry, error) {
	entries := s.GetWishlist(ctx)

	kept := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.ProductID != productID {
			kept = append(kept, e)
		}
	}

	return kept, s.save(ctx, kept)
}

func (s *Store) IsInWishlist(ctx context.Context, productID int64) bool {
	return indexOf(s.GetWishlist(ctx), productID) >= 0
}

// ClearWishlist deletes the stored wishlist.
func (s *Store) ClearWishlist(ctx context.Context) error {
	if err := s.storage.Remove(ctx, storage.KeyGuestWishlist); err != nil {
		s.logger.Error(ctx, "failed to clear guest wishlist", "error", err)
		return fmt.Errorf("clear guest wishlist: %w", err)
	}
	s.changed.Publish(struct{}{})
	return nil
}

func (s *Store) GetCount(ctx context.Context) int {
	return len(s.GetWishlist(ctx))
}

func indexOf(entries []Entry, productID int64) int {
	for i, e := range entries {
		if e.ProductID == productID {
			return i
		}
	}
	return -1
}

func (s *Store) save(ctx context.Context, entries []Entry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode guest wishlist: %w", err)
	}

	if err := s.storage.Set(ctx, storage.KeyGuestWishlist, data); err != nil {
		s.logger.Error(ctx, "failed to persist guest wishlist", "error", err)
		return fmt.Errorf("persist guest wishlist: %w", err)
	}

	s.changed.Publish(struct{}{})
	return nil
}
