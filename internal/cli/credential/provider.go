package credential

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/mattn/go-shellwords"

	"github.com/bdu-steam/steam-cli/internal/core/domain"
	"github.com/bdu-steam/steam-cli/pkg/token"
)

// Provider produces a bearer token.
type Provider interface {
	Token(ctx context.Context) (string, error)
}

// Static returns a fixed token.
type Static struct {
	Value string
}

// Token implements Provider.
func (s Static) Token(ctx context.Context) (string, error) {
	t := token.Normalize(s.Value)
	if t == "" {
		return "", domain.ErrCredentialUnavailable.WithDetails("no token configured")
	}
	return t, nil
}

// Env reads the token from an environment variable at call time.
type Env struct {
	Name string
}

// Token implements Provider.
func (e Env) Token(ctx context.Context) (string, error) {
	if e.Name == "" {
		return "", domain.ErrCredentialUnavailable.WithDetails("no environment variable named")
	}
	t := token.Normalize(os.Getenv(e.Name))
	if t == "" {
		return "", domain.ErrCredentialUnavailable.WithDetails(fmt.Sprintf("$%s is empty", e.Name))
	}
	return t, nil
}

// File reads the token from a file.
type File struct {
	Path string
}

// Token implements Provider.
func (f File) Token(ctx context.Context) (string, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return "", domain.ErrCredentialUnavailable.WithDetails(f.Path).WithCause(err)
	}
	t := token.Normalize(string(data))
	if t == "" {
		return "", domain.ErrCredentialUnavailable.WithDetails(f.Path + " is empty")
	}
	return t, nil
}

// Command runs a helper program and uses its trimmed standard output.
type Command struct {
	Line string
}

// Token implements Provider. The command is killed when ctx is done.
func (c Command) Token(ctx context.Context) (string, error) {
	args, err := shellwords.Parse(c.Line)
	if err != nil {
		return "", domain.ErrCredentialUnavailable.WithDetails("parse token command").WithCause(err)
	}
	if len(args) == 0 {
		return "", domain.ErrCredentialUnavailable.WithDetails("empty token command")
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			err = fmt.Errorf("%w: %s", err, msg)
		}
		return "", domain.ErrCredentialUnavailable.WithDetails(args[0]).WithCause(err)
	}

	t := token.Normalize(stdout.String())
	if t == "" {
		return "", domain.ErrCredentialUnavailable.WithDetails(args[0] + " printed no token")
	}
	return t, nil
}

// Link is one named provider of a Chain.
type Link struct {
	Name     string
	Provider Provider
}

// Chain tries each link in order and returns the first token. When every
// link fails the error lists each failure.
type Chain struct {
	Links []Link

	mu   sync.Mutex
	used string
}

// Token implements Provider.
func (c *Chain) Token(ctx context.Context) (string, error) {
	var errs []error
	for _, link := range c.Links {
		t, err := link.Provider.Token(ctx)
		if err == nil {
			c.mu.Lock()
			c.used = link.Name
			c.mu.Unlock()
			return t, nil
		}
		if ctx.Err() != nil {
			return "", ensureCredentialError(ctx.Err())
		}
		errs = append(errs, fmt.Errorf("%s: %w", link.Name, err))
	}

	c.mu.Lock()
	c.used = ""
	c.mu.Unlock()
	if len(errs) == 0 {
		return "", domain.ErrCredentialUnavailable.WithDetails("no credential source configured")
	}
	return "", domain.ErrCredentialUnavailable.WithDetails("no source had a token").WithCause(errors.Join(errs...))
}

// Used returns the name of the link that produced the last token, or ""
// when the last call failed.
func (c *Chain) Used() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.used
}

// None never has a token. Requests go out unauthenticated.
type None struct{}

// Token implements Provider.
func (None) Token(ctx context.Context) (string, error) {
	return "", domain.ErrCredentialUnavailable.WithDetails("no credential source configured")
}

// Func adapts a function to Provider.
type Func func(ctx context.Context) (string, error)

// Token implements Provider.
func (f Func) Token(ctx context.Context) (string, error) {
	return f(ctx)
}

// ensureCredentialError keeps every provider failure inside the credential
// class so callers can treat them uniformly.
func ensureCredentialError(err error) error {
	if err == nil || domain.IsCredentialError(err) {
		return err
	}
	return domain.ErrCredentialUnavailable.WithCause(err)
}
