// Package common defines shared constants and sentinel errors used across
// storefront client layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Lookup errors.
	ErrNotFound = errors.New("not found")

	// Auth errors.
	ErrUnauthorized = errors.New("unauthorized")
	ErrNoToken      = errors.New("no token")
	ErrInvalidToken = errors.New("invalid token")

	// Transport errors.
	ErrUnavailable = errors.New("server unavailable")

	// Validation errors.
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
	ErrInvalidOption   = errors.New("option must be name=value")
)
