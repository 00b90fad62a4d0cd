// Package cli provides the interactive storefront command-line client.
//
// It wires configuration, local storage, the API clients and the domain
// services into a REPL. Shoppers can browse, fill a guest cart and wishlist
// before logging in, and use the server cart and orders afterwards.
//
// The App is the interactive context of the API client: a forced logout
// navigates it to the login route and the REPL tells the user that the
// session has ended.
package cli
