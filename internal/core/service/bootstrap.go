package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/bdu-steam/steam-cli/internal/core/domain"
	"github.com/bdu-steam/steam-cli/internal/telemetry/logger"
	"github.com/bdu-steam/steam-cli/pkg/token"
)

// Bootstrap outcomes reported to a BootstrapObserver.
const (
	OutcomeSession      = "session"
	OutcomeNoToken      = "no_token"
	OutcomeSessionError = "session_error"
)

// BootstrapObserver is notified of every bootstrap or refresh outcome.
type BootstrapObserver interface {
	ObserveBootstrap(outcome string)
}

// sessionRequest is the body of the session exchange.
type sessionRequest struct {
	Token string `json:"token"`
}

// Bootstrapper acquires a bearer token and exchanges it for a session.
type Bootstrapper struct {
	source   TokenSource
	tokens   TokenStore
	api      API
	observer BootstrapObserver

	mu      sync.Mutex
	credErr error
}

// NewBootstrapper creates a Bootstrapper. observer may be nil.
func NewBootstrapper(source TokenSource, tokens TokenStore, api API, observer BootstrapObserver) *Bootstrapper {
	return &Bootstrapper{
		source:   source,
		tokens:   tokens,
		api:      api,
		observer: observer,
	}
}

// Bootstrap obtains a token and opens a session with it.
//
// A credential failure is not an error: the token cache is cleared and
// Bootstrap returns (nil, nil) so that callers continue unauthenticated.
// A session exchange failure is returned, and the cached token is kept.
func (b *Bootstrapper) Bootstrap(ctx context.Context) (*domain.Session, error) {
	log := logger.L(ctx)

	// 1. Ask the credential provider
	tok, err := b.source.Token(ctx)
	if err == nil && tok == "" {
		err = domain.ErrCredentialUnavailable.WithDetails("provider returned an empty token")
	}
	b.setCredentialErr(err)

	// 2. No token: clear the cache and stop
	if err != nil {
		b.tokens.Clear()
		b.observe(OutcomeNoToken)
		log.Info("no access token, continuing unauthenticated", "error", err)
		return nil, nil
	}

	// 3. Cache the token before the exchange
	b.tokens.Set(tok)
	log.Debug("access token obtained", "token_fp", token.Fingerprint(tok))

	// 4. Exchange it for a session
	return b.exchange(ctx, tok)
}

// Refresh repeats the session exchange with the cached token.
func (b *Bootstrapper) Refresh(ctx context.Context) (*domain.Session, error) {
	tok, ok := b.tokens.Get()
	if !ok || tok == "" {
		return nil, domain.ErrNoToken
	}
	return b.exchange(ctx, tok)
}

// CredentialErr returns why the last Bootstrap had no token, or nil.
func (b *Bootstrapper) CredentialErr() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.credErr
}

func (b *Bootstrapper) exchange(ctx context.Context, tok string) (*domain.Session, error) {
	var raw json.RawMessage
	opts := domain.RequestOptions{
		Method: http.MethodPost,
		Body:   sessionRequest{Token: tok},
	}
	if err := b.api.Request(ctx, PathSession, opts, &raw); err != nil {
		b.observe(OutcomeSessionError)
		return nil, fmt.Errorf("session exchange: %w", err)
	}
	b.observe(OutcomeSession)

	if len(raw) == 0 {
		return &domain.Session{}, nil
	}
	return domain.ParseSession(raw)
}

func (b *Bootstrapper) setCredentialErr(err error) {
	b.mu.Lock()
	b.credErr = err
	b.mu.Unlock()
}

func (b *Bootstrapper) observe(outcome string) {
	if b.observer != nil {
		b.observer.ObserveBootstrap(outcome)
	}
}
