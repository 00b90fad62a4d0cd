// Package services wraps the storefront REST API in typed calls.
//
// Each method maps onto one endpoint and decodes its documented JSON shape.
// Beyond shaping requests the services hold no logic, except AuthService,
// which keeps the token store in step with login, refresh and logout.
package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/storefront/internal/client/apiclient"
)

// Doer performs an API call. *apiclient.Client implements it.
type Doer interface {
	Do(ctx context.Context, req *apiclient.Request, out any) error
}

var _ Doer = (*apiclient.Client)(nil)

func get(ctx context.Context, api Doer, path string, query url.Values, out any) error {
	return api.Do(ctx, &apiclient.Request{Method: http.MethodGet, Path: path, Query: query}, out)
}

func post(ctx context.Context, api Doer, path string, body, out any) error {
	return api.Do(ctx, &apiclient.Request{Method: http.MethodPost, Path: path, Body: body}, out)
}

func put(ctx context.Context, api Doer, path string, body, out any) error {
	return api.Do(ctx, &apiclient.Request{Method: http.MethodPut, Path: path, Body: body}, out)
}

func del(ctx context.Context, api Doer, path string, out any) error {
	return api.Do(ctx, &apiclient.Request{Method: http.MethodDelete, Path: path}, out)
}

func id(v int64) string {
	return strconv.FormatInt(v, 10)
}

// ListParams are the pagination parameters shared by list endpoints.
type ListParams struct {
	Page    int
	PerPage int
}

func (p ListParams) values() url.Values {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.PerPage > 0 {
		q.Set("per_page", strconv.Itoa(p.PerPage))
	}
	return q
}

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", op, err)
}
