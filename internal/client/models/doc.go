// Package models defines the JSON shapes exchanged with the storefront backend.
//
// The backend owns the contract. Decoding ignores unknown fields, so additive
// changes on the server side do not break the client.
package models
