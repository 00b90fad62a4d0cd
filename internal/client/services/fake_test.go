package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/storefront/internal/client/apiclient"
)

type call struct {
	Method string
	Path   string
	Query  string
	Body   string
}

// fakeDoer answers requests from canned JSON keyed by "METHOD /path".
type fakeDoer struct {
	mu         sync.Mutex
	calls      []call
	responses  map[string]string
	errs       map[string]error
	refreshes  int
	refreshErr error
}

func newFakeDoer() *fakeDoer {
	return &fakeDoer{responses: map[string]string{}, errs: map[string]error{}}
}

func (f *fakeDoer) on(method, path, body string) *fakeDoer {
	f.responses[method+" "+path] = body
	return f
}

func (f *fakeDoer) fail(method, path string, err error) *fakeDoer {
	f.errs[method+" "+path] = err
	return f
}

func (f *fakeDoer) Do(_ context.Context, req *apiclient.Request, out any) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	c := call{Method: req.Method, Path: req.Path, Query: req.Query.Encode()}
	if req.Body != nil {
		b, err := json.Marshal(req.Body)
		if err != nil {
			return err
		}
		c.Body = string(b)
	}
	f.calls = append(f.calls, c)

	key := req.Method + " " + req.Path
	if err, ok := f.errs[key]; ok {
		return err
	}
	body, ok := f.responses[key]
	if !ok {
		return fmt.Errorf("unexpected call %s", key)
	}
	if out == nil || body == "" {
		return nil
	}
	return json.Unmarshal([]byte(body), out)
}

func (f *fakeDoer) RefreshSession(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refreshes++
	f.calls = append(f.calls, call{Method: "REFRESH"})
	return f.refreshErr
}

func (f *fakeDoer) last() call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[len(f.calls)-1]
}
