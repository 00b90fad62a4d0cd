// Package guestcart keeps the cart of a shopper who has not logged in yet.
//
// The cart is a JSON array of lines stored under storage.KeyGuestCart and read
// fresh on every call. Lines are identified by (product, variant, options);
// the store never holds two lines with the same identity. Draining the guest
// cart into the server cart after login is the caller's concern.
package guestcart

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/storefront/internal/client/events"
	"github.com/dmitrijs2005/storefront/internal/client/storage"
	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/logging"
)

// Store is the guest cart.
type Store struct {
	storage storage.Storage
	logger  logging.Logger
	changed events.Subject[[]Line]
}

func New(st storage.Storage, logger logging.Logger) *Store {
	return &Store{storage: st, logger: logger.With("component", "guestcart")}
}

// Subscribe registers fn to receive the full cart after every mutation.
func (s *Store) Subscribe(fn func([]Line)) (unsubscribe func()) {
	return s.changed.Subscribe(fn)
}

// GetCart returns the stored lines in insertion order. Unreadable state
// yields an empty cart.
func (s *Store) GetCart(ctx context.Context) []Line {
	data, err := s.storage.Get(ctx, storage.KeyGuestCart)
	if err != nil {
		s.logger.Error(ctx, "failed to read guest cart", "error", err)
		return []Line{}
	}
	if data == nil {
		return []Line{}
	}

	var lines []Line
	if err := json.Unmarshal(data, &lines); err != nil {
		s.logger.Warn(ctx, "guest cart is unreadable, treating as empty", "error", err)
		return []Line{}
	}
	return normalize(lines)
}

// AddItem adds quantity of the addressed line, creating it if needed, and
// returns the resulting cart.
func (s *Store) AddItem(ctx context.Context, productID int64, quantity int, opts ...ItemOption) ([]Line, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("add item: %w", common.ErrInvalidQuantity)
	}

	lines := s.GetCart(ctx)
	idx := index(lines)
	line := newLine(productID, quantity, opts)

	if i, ok := idx[line.Key()]; ok {
		lines[i].Quantity += quantity
	} else {
		lines = append(lines, line)
	}

	return lines, s.save(ctx, lines)
}

// UpdateItem sets the quantity of the addressed line. A missing line is left
// missing; the cart is persisted either way.
func (s *Store) UpdateItem(ctx context.Context, productID int64, quantity int, opts ...ItemOption) ([]Line, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("update item: %w", common.ErrInvalidQuantity)
	}

	lines := s.GetCart(ctx)
	key := newLine(productID, quantity, opts).Key()

	if i, ok := index(lines)[key]; ok {
		lines[i].Quantity = quantity
	}

	return lines, s.save(ctx, lines)
}

// RemoveItem drops the addressed line and keeps all others.
func (s *Store) RemoveItem(ctx context.Context, productID int64, opts ...ItemOption) ([]Line, error) {
	lines := s.GetCart(ctx)
	key := newLine(productID, 0, opts).Key()

	kept := make([]Line, 0, len(lines))
	for _, l := range lines {
		if l.Key() != key {
			kept = append(kept, l)
		}
	}

	return kept, s.save(ctx, kept)
}

// ClearCart deletes the stored cart.
func (s *Store) ClearCart(ctx context.Context) error {
	if err := s.storage.Remove(ctx, storage.KeyGuestCart); err != nil {
		s.logger.Error(ctx, "failed to clear guest cart", "error", err)
		return fmt.Errorf("clear guest cart: %w", err)
	}
	s.changed.Publish([]Line{})
	return nil
}

// GetCartCount is the sum of quantities over all lines.
func (s *Store) GetCartCount(ctx context.Context) int {
	n := 0
	for _, l := range s.GetCart(ctx) {
		n += l.Quantity
	}
	return n
}

// index maps each identity key to its position in a normalized cart.
func index(lines []Line) map[Key]int {
	idx := make(map[Key]int, len(lines))
	for i, l := range lines {
		idx[l.Key()] = i
	}
	return idx
}

// normalize folds lines sharing an identity key into the first of them.
// Carts written by older clients compared option bags by raw serialization
// and could hold the same selection twice in different key order.
func normalize(lines []Line) []Line {
	out := make([]Line, 0, len(lines))
	idx := make(map[Key]int, len(lines))
	for _, l := range lines {
		k := l.Key()
		if i, ok := idx[k]; ok {
			out[i].Quantity += l.Quantity
			continue
		}
		idx[k] = len(out)
		out = append(out, l)
	}
	return out
}

func (s *Store) save(ctx context.Context, lines []Line) error {
	data, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("encode guest cart: %w", err)
	}

	if err := s.storage.Set(ctx, storage.KeyGuestCart, data); err != nil {
		s.logger.Error(ctx, "failed to persist guest cart", "error", err)
		return fmt.Errorf("persist guest cart: %w", err)
	}

	s.changed.Publish(snapshot(lines))
	return nil
}

func snapshot(lines []Line) []Line {
	out := make([]Line, len(lines))
	for i, l := range lines {
		out[i] = l.clone()
	}
	return out
}
