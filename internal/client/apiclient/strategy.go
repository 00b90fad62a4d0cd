package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"

	"github.com/dmitrijs2005/storefront/internal/client/tokenstore"
	"github.com/dmitrijs2005/storefront/internal/common"
)

// CredentialStrategy is how a Client authenticates.
type CredentialStrategy interface {
	// Attach stamps the credential on an outgoing request.
	Attach(ctx context.Context, req *http.Request) error
	// Unauthorized is called once per request on its first 401.
	Unauthorized(ctx context.Context)
	// RefreshSession is called before a 419 is retried.
	RefreshSession(ctx context.Context, s Sender) error
}

// TokenSource is the part of the token store the bearer strategy needs.
type TokenSource interface {
	GetTokenRecord(ctx context.Context) (*tokenstore.Record, bool)
	ClearToken(ctx context.Context)
}

// TokenStrategy authenticates with the bearer token from a TokenSource.
// Requests are sent unauthenticated when there is no token.
type TokenStrategy struct {
	tokens TokenSource
}

func NewTokenStrategy(tokens TokenSource) *TokenStrategy {
	return &TokenStrategy{tokens: tokens}
}

func (s *TokenStrategy) Attach(ctx context.Context, req *http.Request) error {
	rec, ok := s.tokens.GetTokenRecord(ctx)
	if !ok {
		return nil
	}
	kind := rec.TokenType
	if kind == "" {
		kind = common.BearerTokenType
	}
	req.Header.Set(common.AuthorizationHeaderName, kind+" "+rec.Token)
	return nil
}

// Unauthorized drops the stored token.
func (s *TokenStrategy) Unauthorized(ctx context.Context) {
	s.tokens.ClearToken(ctx)
}

// RefreshSession is a no-op; the 419 retry is re-issued as is.
func (s *TokenStrategy) RefreshSession(context.Context, Sender) error {
	return nil
}

// DefaultCSRFCookiePath is the backend endpoint that issues the CSRF cookie.
const DefaultCSRFCookiePath = "/sanctum/csrf-cookie"

// CookieCSRFStrategy authenticates with a session cookie and echoes the CSRF
// cookie back in the X-XSRF-TOKEN header.
type CookieCSRFStrategy struct {
	jar        http.CookieJar
	cookiePath string
}

func NewCookieCSRFStrategy() (*CookieCSRFStrategy, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}
	return &CookieCSRFStrategy{jar: jar, cookiePath: DefaultCSRFCookiePath}, nil
}

// CookieJar is installed on the http.Client of the owning Client.
func (s *CookieCSRFStrategy) CookieJar() http.CookieJar {
	return s.jar
}

func (s *CookieCSRFStrategy) Attach(_ context.Context, req *http.Request) error {
	token := s.csrfToken(req.URL)
	if token != "" {
		req.Header.Set(common.CSRFHeaderName, token)
	}
	return nil
}

// Unauthorized keeps the jar; the backend has already invalidated the session.
func (s *CookieCSRFStrategy) Unauthorized(context.Context) {}

// RefreshSession fetches a fresh CSRF cookie.
func (s *CookieCSRFStrategy) RefreshSession(ctx context.Context, sender Sender) error {
	resp, err := sender.Send(ctx, &Request{Method: http.MethodGet, Path: s.cookiePath})
	if err != nil {
		return fmt.Errorf("fetch csrf cookie: %w", err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("fetch csrf cookie: %w", newHTTPError(resp.StatusCode, resp.Body))
	}
	return nil
}

func (s *CookieCSRFStrategy) csrfToken(u *url.URL) string {
	for _, c := range s.jar.Cookies(u) {
		if c.Name != common.CSRFCookieName {
			continue
		}
		v, err := url.QueryUnescape(c.Value)
		if err != nil {
			return c.Value
		}
		return v
	}
	return ""
}
