package service

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/bdu-steam/steam-cli/internal/core/domain"
)

type fakeCall struct {
	Path  string
	Opts  domain.RequestOptions
	Query string
}

// fakeAPI answers requests from canned JSON keyed by "path" or "path?query".
type fakeAPI struct {
	mu        sync.Mutex
	calls     []fakeCall
	responses map[string]string
	errs      map[string]error
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		responses: make(map[string]string),
		errs:      make(map[string]error),
	}
}

func (f *fakeAPI) Request(ctx context.Context, path string, opts domain.RequestOptions, target any) error {
	query := domain.CleanQuery(opts.Query).Encode()

	f.mu.Lock()
	f.calls = append(f.calls, fakeCall{Path: path, Opts: opts, Query: query})
	key := path
	if query != "" {
		key = path + "?" + query
	}
	err, hasErr := f.errs[key]
	if !hasErr {
		err, hasErr = f.errs[path]
	}
	body, ok := f.responses[key]
	if !ok {
		body, ok = f.responses[path]
	}
	f.mu.Unlock()

	if hasErr {
		return err
	}
	if !ok {
		body = `{"data":[]}`
	}
	if target == nil {
		return nil
	}
	if err := json.Unmarshal([]byte(body), target); err != nil {
		return domain.ErrParse.WithCause(err)
	}
	return nil
}

func (f *fakeAPI) callsTo(path string) []fakeCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []fakeCall
	for _, c := range f.calls {
		if c.Path == path {
			out = append(out, c)
		}
	}
	return out
}

type memTokens struct {
	mu    sync.Mutex
	token string
	set   bool
}

func (m *memTokens) Set(t string) {
	m.mu.Lock()
	m.token, m.set = t, true
	m.mu.Unlock()
}

func (m *memTokens) Clear() {
	m.mu.Lock()
	m.token, m.set = "", false
	m.mu.Unlock()
}

func (m *memTokens) Get() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, m.set
}

type tokenFunc func(ctx context.Context) (string, error)

func (f tokenFunc) Token(ctx context.Context) (string, error) { return f(ctx) }

type outcomeRecorder struct {
	outcomes []string
}

func (r *outcomeRecorder) ObserveBootstrap(outcome string) {
	r.outcomes = append(r.outcomes, outcome)
}
