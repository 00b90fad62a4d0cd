package guestcart

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/storefront/internal/common"
)

// Options is the option selection of a line (size, colour, ...).
type Options map[string]string

// Canonical returns a deterministic encoding of o: keys sorted, every key and
// value quoted. Two selections with the same pairs encode identically no
// matter the insertion order. An empty or nil selection encodes as "".
func (o Options) Canonical() string {
	if len(o) == 0 {
		return ""
	}

	keys := make([]string, 0, len(o))
	for k := range o {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(strconv.Quote(k))
		b.WriteByte('=')
		b.WriteString(strconv.Quote(o[k]))
	}
	return b.String()
}

// ParseOptions builds Options from "name=value" pairs.
func ParseOptions(pairs []string) (Options, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	o := make(Options, len(pairs))
	for _, p := range pairs {
		name, value, ok := strings.Cut(p, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("%q: %w", p, common.ErrInvalidOption)
		}
		o[name] = value
	}
	return o, nil
}

// Line is one guest cart line.
type Line struct {
	ProductID int64   `json:"product_id"`
	Quantity  int     `json:"quantity"`
	VariantID int64   `json:"variant_id,omitempty"`
	Options   Options `json:"options,omitempty"`
}

// Key identifies a line: two lines are the same line iff their keys are equal.
type Key struct {
	ProductID int64
	VariantID int64
	Options   string
}

// Key returns the identity key of l.
func (l Line) Key() Key {
	return Key{ProductID: l.ProductID, VariantID: l.VariantID, Options: l.Options.Canonical()}
}

func (l Line) clone() Line {
	if l.Options != nil {
		opts := make(Options, len(l.Options))
		for k, v := range l.Options {
			opts[k] = v
		}
		l.Options = opts
	}
	return l
}

// ItemOption narrows the line an operation addresses.
type ItemOption func(*Line)

// WithVariant selects a product variant. Zero means no variant.
func WithVariant(id int64) ItemOption {
	return func(l *Line) { l.VariantID = id }
}

// WithOptions attaches an option selection.
func WithOptions(o Options) ItemOption {
	return func(l *Line) {
		if len(o) == 0 {
			l.Options = nil
			return
		}
		l.Options = Options{}
		for k, v := range o {
			l.Options[k] = v
		}
	}
}

func newLine(productID int64, quantity int, opts []ItemOption) Line {
	l := Line{ProductID: productID, Quantity: quantity}
	for _, o := range opts {
		o(&l)
	}
	return l
}
