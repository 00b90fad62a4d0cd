package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/storefront/internal/common"
)

// Kind classifies an APIError.
type Kind string

const (
	KindValidation Kind = "validation"
	KindNetwork    Kind = "network"
	KindRateLimit  Kind = "rate_limit"
	KindCSRF       Kind = "csrf"
	KindServer     Kind = "server"
	// KindUnknown is reported by KindOf for errors that were passed through
	// unclassified.
	KindUnknown Kind = "unknown"
)

const (
	MessageNetwork    = "Network error. Please check your connection and try again."
	MessageRateLimit  = "Too many requests. Please slow down and try again later."
	MessageValidation = "The given data was invalid."
	MessageServer     = "Server error. Please try again later."
	MessageCSRF       = "Your session has expired. Please refresh and try again."
)

// APIError is the structured error produced for classified failures.
type APIError struct {
	Message string
	Kind    Kind
	// Errors holds the per-field messages of a validation failure.
	Errors map[string][]string
	Cause  error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Cause
}

// HTTPError is a non-2xx response that was not turned into an APIError.
type HTTPError struct {
	StatusCode int
	Message    string
	Body       []byte
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("http %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("http %d: %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// Unwrap maps well-known statuses onto the common sentinels so callers can
// use errors.Is(err, common.ErrUnauthorized).
func (e *HTTPError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusUnauthorized:
		return common.ErrUnauthorized
	case http.StatusNotFound:
		return common.ErrNotFound
	default:
		return nil
	}
}

// KindOf returns the classification of err, KindUnknown when err carries no
// APIError and "" for a nil error.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindUnknown
}

// errorBody is the error envelope returned by the backend.
type errorBody struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

func parseErrorBody(data []byte) errorBody {
	var b errorBody
	_ = json.Unmarshal(data, &b)
	return b
}

func newHTTPError(status int, data []byte) *HTTPError {
	return &HTTPError{StatusCode: status, Message: parseErrorBody(data).Message, Body: data}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// classify maps a response that no retry rule claimed onto its final error.
func classify(herr *HTTPError) error {
	body := parseErrorBody(herr.Body)

	switch {
	case herr.StatusCode == http.StatusTooManyRequests:
		return &APIError{Kind: KindRateLimit, Message: orDefault(body.Message, MessageRateLimit), Cause: herr}
	case herr.StatusCode == http.StatusUnprocessableEntity:
		return &APIError{Kind: KindValidation, Message: orDefault(body.Message, MessageValidation), Errors: body.Errors, Cause: herr}
	case herr.StatusCode >= http.StatusInternalServerError:
		return &APIError{Kind: KindServer, Message: orDefault(body.Message, MessageServer), Cause: herr}
	default:
		return herr
	}
}
