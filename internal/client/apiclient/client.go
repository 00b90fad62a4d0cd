// Package apiclient talks JSON over HTTP to the storefront backend.
//
// Every request goes through one pipeline: the configured CredentialStrategy
// stamps the credential, the response is classified, and the two recoverable
// statuses get one retry each. A 401 clears the session and, in an interactive
// context, sends the user to the login route; the 401 itself is still
// returned. A 419 refreshes the session and re-issues the identical request
// once. Everything else is either turned into an *APIError or passed through
// as an *HTTPError.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/logging"
	"github.com/google/uuid"
)

// StatusSessionExpired is the non-standard status the backend uses for a
// CSRF token mismatch.
const StatusSessionExpired = 419

const (
	DefaultTimeout    = 10 * time.Second
	DefaultLoginRoute = "/login"
)

// Request describes one API call. Body, if set, is JSON-encoded once and the
// same bytes are sent on a retry.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
	Header http.Header
}

// Response is a raw API response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Sender issues a single request with the credential attached but without
// classification or retries.
type Sender interface {
	Send(ctx context.Context, req *Request) (*Response, error)
}

// Navigator is the interactive context the client runs in. Without one, a 401
// does not navigate anywhere.
type Navigator interface {
	CurrentRoute() string
	Navigate(route string)
}

// Client is safe for concurrent use once constructed.
type Client struct {
	base       *url.URL
	http       *http.Client
	strategy   CredentialStrategy
	logger     logging.Logger
	navigator  Navigator
	loginRoute string
	requestID  func() string
}

type Option func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithNavigator makes the client redirect to the login route on a 401.
func WithNavigator(n Navigator) Option {
	return func(c *Client) { c.navigator = n }
}

func WithLoginRoute(route string) Option {
	return func(c *Client) {
		if route != "" {
			c.loginRoute = route
		}
	}
}

// WithTransport replaces the underlying RoundTripper.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) { c.http.Transport = rt }
}

// WithRequestID replaces the X-Request-ID generator.
func WithRequestID(gen func() string) Option {
	return func(c *Client) { c.requestID = gen }
}

// New returns a client for the API rooted at baseURL.
func New(baseURL string, strategy CredentialStrategy, logger logging.Logger, opts ...Option) (*Client, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", baseURL, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("invalid base url %q: scheme must be http or https", baseURL)
	}

	c := &Client{
		base:       base,
		http:       &http.Client{Timeout: DefaultTimeout},
		strategy:   strategy,
		logger:     logger.With("component", "apiclient"),
		loginRoute: DefaultLoginRoute,
		requestID:  uuid.NewString,
	}
	if j, ok := strategy.(interface{ CookieJar() http.CookieJar }); ok {
		c.http.Jar = j.CookieJar()
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// BaseURL returns the API root.
func (c *Client) BaseURL() *url.URL {
	u := *c.base
	return &u
}

// RefreshSession asks the credential strategy to re-establish its session,
// for example to fetch a CSRF cookie before a login.
func (c *Client) RefreshSession(ctx context.Context) error {
	return c.strategy.RefreshSession(ctx, c)
}

// Do performs req and decodes a successful response body into out (which may
// be nil). Failures are returned as *APIError or *HTTPError.
//
// A 419 is retried once after the strategy refreshes its session. Only a
// second 419 (or a failed refresh) becomes a csrf error; any other failure of
// the retry is classified on its own status, so a 502 is reported as server.
func (c *Client) Do(ctx context.Context, req *Request, out any) error {
	body, err := encodeBody(req.Body)
	if err != nil {
		return err
	}

	var retried401, retried419 bool
	for {
		resp, err := c.send(ctx, req, body)
		if err != nil {
			c.logger.Warn(ctx, "request failed", "method", req.Method, "path", req.Path, "error", err)
			return &APIError{Kind: KindNetwork, Message: MessageNetwork, Cause: err}
		}

		if resp.StatusCode < http.StatusMultipleChoices {
			return decode(resp.Body, out)
		}

		herr := newHTTPError(resp.StatusCode, resp.Body)

		switch {
		case resp.StatusCode == http.StatusUnauthorized && !retried401:
			retried401 = true
			c.strategy.Unauthorized(ctx)
			c.redirectToLogin(ctx)
			return herr

		case resp.StatusCode == StatusSessionExpired && !retried419:
			retried419 = true
			if err := c.strategy.RefreshSession(ctx, c); err != nil {
				c.logger.Warn(ctx, "session refresh failed", "error", err)
				return &APIError{Kind: KindCSRF, Message: MessageCSRF, Cause: err}
			}
			continue

		case resp.StatusCode == StatusSessionExpired:
			return &APIError{Kind: KindCSRF, Message: MessageCSRF, Cause: herr}
		}

		return classify(herr)
	}
}

// Send implements Sender.
func (c *Client) Send(ctx context.Context, req *Request) (*Response, error) {
	body, err := encodeBody(req.Body)
	if err != nil {
		return nil, err
	}
	return c.send(ctx, req, body)
}

func (c *Client) send(ctx context.Context, req *Request, body []byte) (*Response, error) {
	u := c.base.JoinPath(req.Path)
	if len(req.Query) > 0 {
		u.RawQuery = req.Query.Encode()
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	hreq, err := http.NewRequestWithContext(ctx, method, u.String(), rd)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	for k, vs := range req.Header {
		for _, v := range vs {
			hreq.Header.Add(k, v)
		}
	}
	hreq.Header.Set("Accept", "application/json")
	if body != nil {
		hreq.Header.Set("Content-Type", "application/json")
	}
	reqID := c.requestID()
	hreq.Header.Set(common.RequestIDHeaderName, reqID)

	if err := c.strategy.Attach(ctx, hreq); err != nil {
		return nil, fmt.Errorf("attach credential: %w", err)
	}

	start := time.Now()
	hresp, err := c.http.Do(hreq)
	if err != nil {
		return nil, err
	}
	defer hresp.Body.Close()

	data, err := io.ReadAll(hresp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	c.logger.Debug(ctx, "api request",
		"method", method,
		"path", u.Path,
		"status", hresp.StatusCode,
		"request_id", reqID,
		"duration", time.Since(start),
	)

	return &Response{StatusCode: hresp.StatusCode, Header: hresp.Header, Body: data}, nil
}

func (c *Client) redirectToLogin(ctx context.Context) {
	if c.navigator == nil {
		return
	}
	if strings.TrimRight(c.navigator.CurrentRoute(), "/") == strings.TrimRight(c.loginRoute, "/") {
		return
	}
	c.logger.Info(ctx, "session ended, redirecting to login", "route", c.loginRoute)
	c.navigator.Navigate(c.loginRoute)
}

func encodeBody(v any) ([]byte, error) {
	switch b := v.(type) {
	case nil:
		return nil, nil
	case json.RawMessage:
		return b, nil
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		return data, nil
	}
}

func decode(data []byte, out any) error {
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
