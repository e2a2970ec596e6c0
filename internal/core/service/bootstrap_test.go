package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bdu-steam/steam-cli/internal/cli/connection"
	"github.com/bdu-steam/steam-cli/internal/core/domain"
)

func TestBootstrap_CredentialFailure(t *testing.T) {
	api := newFakeAPI()
	tokens := &memTokens{}
	tokens.Set("stale")
	rec := &outcomeRecorder{}

	b := NewBootstrapper(tokenFunc(func(ctx context.Context) (string, error) {
		return "", domain.ErrConsentDenied
	}), tokens, api, rec)

	session, err := b.Bootstrap(context.Background())
	if err != nil {
		t.Fatalf("Bootstrap() error = %v, want nil", err)
	}
	if session != nil {
		t.Errorf("Bootstrap() session = %+v, want nil", session)
	}
	if _, ok := tokens.Get(); ok {
		t.Error("token cache should be cleared after credential failure")
	}
	if n := len(api.callsTo(PathSession)); n != 0 {
		t.Errorf("session calls = %d, want 0", n)
	}
	if !errors.Is(b.CredentialErr(), domain.ErrConsentDenied) {
		t.Errorf("CredentialErr() = %v, want ErrConsentDenied", b.CredentialErr())
	}
	if len(rec.outcomes) != 1 || rec.outcomes[0] != OutcomeNoToken {
		t.Errorf("outcomes = %v, want [%s]", rec.outcomes, OutcomeNoToken)
	}
}

func TestBootstrap_EmptyTokenIsCredentialFailure(t *testing.T) {
	api := newFakeAPI()
	tokens := &memTokens{}

	b := NewBootstrapper(tokenFunc(func(ctx context.Context) (string, error) {
		return "", nil
	}), tokens, api, nil)

	session, err := b.Bootstrap(context.Background())
	if err != nil || session != nil {
		t.Fatalf("Bootstrap() = %v, %v; want nil, nil", session, err)
	}
	if len(api.callsTo(PathSession)) != 0 {
		t.Error("no session call expected for an empty token")
	}
	if !domain.IsCredentialError(b.CredentialErr()) {
		t.Errorf("CredentialErr() = %v, want credential error", b.CredentialErr())
	}
}

func TestBootstrap_Success(t *testing.T) {
	api := newFakeAPI()
	api.responses[PathSession] = `{"data":{"user":{"id":9,"name":"Phụ huynh"}}}`
	tokens := &memTokens{}
	rec := &outcomeRecorder{}

	b := NewBootstrapper(tokenFunc(func(ctx context.Context) (string, error) {
		return "abc", nil
	}), tokens, api, rec)

	session, err := b.Bootstrap(context.Background())
	if err != nil {
		t.Fatalf("Bootstrap() error = %v", err)
	}
	if got, ok := tokens.Get(); !ok || got != "abc" {
		t.Errorf("cached token = %q, %v; want abc", got, ok)
	}

	calls := api.callsTo(PathSession)
	if len(calls) != 1 {
		t.Fatalf("session calls = %d, want 1", len(calls))
	}
	if calls[0].Opts.Method != http.MethodPost {
		t.Errorf("method = %q, want POST", calls[0].Opts.Method)
	}
	body, _ := json.Marshal(calls[0].Opts.Body)
	if string(body) != `{"token":"abc"}` {
		t.Errorf("body = %s, want {\"token\":\"abc\"}", body)
	}

	if session == nil || session.User == nil || session.User.Name != "Phụ huynh" {
		t.Errorf("session = %+v", session)
	}
	if b.CredentialErr() != nil {
		t.Errorf("CredentialErr() = %v, want nil", b.CredentialErr())
	}
	if len(rec.outcomes) != 1 || rec.outcomes[0] != OutcomeSession {
		t.Errorf("outcomes = %v", rec.outcomes)
	}
}

func TestBootstrap_SessionFailureKeepsToken(t *testing.T) {
	api := newFakeAPI()
	api.errs[PathSession] = &domain.HTTPError{StatusCode: http.StatusUnauthorized}
	tokens := &memTokens{}
	rec := &outcomeRecorder{}

	b := NewBootstrapper(tokenFunc(func(ctx context.Context) (string, error) {
		return "abc", nil
	}), tokens, api, rec)

	_, err := b.Bootstrap(context.Background())
	if !domain.IsHTTPStatus(err, http.StatusUnauthorized) {
		t.Fatalf("Bootstrap() error = %v, want HTTPError 401", err)
	}
	if got, ok := tokens.Get(); !ok || got != "abc" {
		t.Errorf("token should survive a failed exchange, got %q, %v", got, ok)
	}
	if len(rec.outcomes) != 1 || rec.outcomes[0] != OutcomeSessionError {
		t.Errorf("outcomes = %v", rec.outcomes)
	}
}

func TestRefresh(t *testing.T) {
	api := newFakeAPI()
	api.responses[PathSession] = `{"ok":true}`
	tokens := &memTokens{}

	provider := 0
	b := NewBootstrapper(tokenFunc(func(ctx context.Context) (string, error) {
		provider++
		return "abc", nil
	}), tokens, api, nil)

	if _, err := b.Refresh(context.Background()); !errors.Is(err, domain.ErrNoToken) {
		t.Fatalf("Refresh() on empty cache error = %v, want ErrNoToken", err)
	}
	if len(api.callsTo(PathSession)) != 0 {
		t.Error("Refresh without token must not call the backend")
	}

	tokens.Set("cached")
	session, err := b.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if session == nil {
		t.Fatal("Refresh() returned nil session")
	}
	if provider != 0 {
		t.Errorf("Refresh called the provider %d times", provider)
	}
	body, _ := json.Marshal(api.callsTo(PathSession)[0].Opts.Body)
	if string(body) != `{"token":"cached"}` {
		t.Errorf("body = %s", body)
	}
}

func TestBootstrap_OverHTTP(t *testing.T) {
	var gotBody map[string]string
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/app/auth/session" {
			t.Errorf("path = %q, want /app/auth/session", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`{"data":{"app_user":{"id":"u1","name":"Lan"}}}`))
	}))
	defer server.Close()

	tokens := connection.NewTokenCache()
	client := connection.NewHTTPClient(server.URL, tokens, connection.WithPrefix("/app"))
	b := NewBootstrapper(tokenFunc(func(ctx context.Context) (string, error) {
		return "abc", nil
	}), tokens, client, nil)

	session, err := b.Bootstrap(context.Background())
	if err != nil {
		t.Fatalf("Bootstrap() error = %v", err)
	}
	if gotBody["token"] != "abc" {
		t.Errorf("body token = %q, want abc", gotBody["token"])
	}
	if gotAuth != "Bearer abc" {
		t.Errorf("Authorization = %q, want Bearer abc", gotAuth)
	}
	if session.User == nil || session.User.Name != "Lan" {
		t.Errorf("session user = %+v", session.User)
	}
}
