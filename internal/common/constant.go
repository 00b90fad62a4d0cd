// Package common contains shared constants and sentinel errors used across
// storefront client components.
package common

const (
	// AuthorizationHeaderName carries the bearer credential on storefront requests.
	AuthorizationHeaderName = "Authorization"

	// RequestIDHeaderName is stamped on every outbound request for log correlation.
	RequestIDHeaderName = "X-Request-ID"

	// CSRFHeaderName carries the decoded XSRF cookie on admin requests.
	CSRFHeaderName = "X-XSRF-TOKEN"

	// CSRFCookieName is the cookie the backend issues from its CSRF endpoint.
	CSRFCookieName = "XSRF-TOKEN"

	// BearerTokenType is the token kind the backend issues on login.
	BearerTokenType = "Bearer"
)
