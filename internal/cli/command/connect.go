package command

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/bdu-steam/steam-cli/internal/cli/config"
	"github.com/bdu-steam/steam-cli/internal/cli/connection"
	"github.com/bdu-steam/steam-cli/internal/cli/credential"
	"github.com/bdu-steam/steam-cli/internal/cli/output"
	"github.com/bdu-steam/steam-cli/internal/core/service"
	"github.com/bdu-steam/steam-cli/internal/infra/buildinfo"
	"github.com/bdu-steam/steam-cli/internal/infra/tlsroots"
	"github.com/bdu-steam/steam-cli/pkg/token"
)

// EnsureConnected returns the current connection, bootstrapping a new one
// when there is none or the settings changed since it was made.
//
// A failed session exchange is logged and the connection is kept: the
// token stays cached and later calls are still authenticated.
func EnsureConnected(c *cli.Context) (*connection.Connection, error) {
	rt := GetRuntime(c)
	if rt == nil {
		return nil, errors.New("runtime not initialized")
	}
	if err := config.Verify(rt.Config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	key := connectionKey(rt.Config)
	if conn := rt.Conns.Current(); conn != nil && conn.Key == key {
		return conn, nil
	}
	return connect(c, rt, key)
}

// connect bootstraps a session and makes it the current connection.
func connect(c *cli.Context, rt *Runtime, key string) (*connection.Connection, error) {
	cfg := rt.Config

	provider, source, err := credential.New(cfg.Auth, rt.opts.Prompter, rt.opts.Consent)
	if err != nil {
		return nil, fmt.Errorf("credential: %w", err)
	}

	clientOpts := []connection.Option{
		connection.WithPrefix(cfg.API.Prefix),
		connection.WithObserver(rt.Metrics),
		connection.WithUserAgent(buildinfo.UserAgent()),
	}
	if cfg.API.CAFile != "" {
		tr, err := tlsroots.Transport(cfg.API.CAFile)
		if err != nil {
			return nil, err
		}
		clientOpts = append(clientOpts, connection.WithHTTPClient(&http.Client{Transport: tr}))
	}
	// Applied last: WithHTTPClient replaces the client the timeout is set on.
	clientOpts = append(clientOpts, connection.WithTimeout(cfg.API.Timeout))

	tokens := connection.NewTokenCache()
	client := connection.NewHTTPClient(cfg.API.BaseURL, tokens, clientOpts...)

	ctx, stop := commandContext(c)
	defer stop()

	b := service.NewBootstrapper(provider, tokens, client, rt.Metrics)
	session, sessionErr := b.Bootstrap(ctx)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	conn := &connection.Connection{
		Client:        client,
		Tokens:        tokens,
		Session:       session,
		TokenSource:   credential.UsedSource(provider, source),
		Key:           key,
		CredentialErr: b.CredentialErr(),
		SessionErr:    sessionErr,
	}
	if sessionErr != nil {
		rt.Log.Warn("session exchange failed, continuing with cached token", "error", sessionErr)
	}

	if err := rt.Conns.Connect(conn); err != nil {
		return nil, err
	}
	return conn, nil
}

// connectionKey identifies the settings a connection depends on. Secrets
// enter only as fingerprints.
func connectionKey(cfg *config.CLIConfig) string {
	a := cfg.Auth
	parts := []string{
		cfg.API.BaseURL,
		cfg.API.Prefix,
		cfg.API.Timeout.String(),
		cfg.API.CAFile,
		a.ResolveSource(),
		a.TokenEnv,
		a.TokenFile,
		a.TokenCommand,
		fmt.Sprint(a.RequireConsent),
	}
	if a.Token != "" {
		parts = append(parts, token.Fingerprint(a.Token))
	}
	return strings.Join(parts, "|")
}

// catalog returns a catalog service over conn using the configured fan-out
// bounds. progress may be nil.
func catalog(rt *Runtime, conn *connection.Connection, progress func(done, total int)) *service.CatalogService {
	return service.NewCatalogService(conn.Client, service.WithGalleryOptions(service.GalleryOptions{
		Concurrency:   rt.Config.API.Concurrency,
		RatePerSecond: rt.Config.API.Rate,
		Progress:      progress,
	}))
}

// runView connects, then fetches and renders the view built by build.
func runView[T any](c *cli.Context, build func(*service.CatalogService) output.View[T]) error {
	conn, err := EnsureConnected(c)
	if err != nil {
		return err
	}
	rt := GetRuntime(c)

	ctx, stop := commandContext(c)
	defer stop()
	return output.Render(ctx, rt.Printer, build(catalog(rt, conn, nil)))
}

// Filter flags shared by list commands.
const (
	flagStudent = "student"
	flagClass   = "class"
	flagModule  = "module"
	flagLesson  = "lesson"
)

// filterFlags returns the named filter flags.
func filterFlags(names ...string) []cli.Flag {
	usage := map[string]string{
		flagStudent: "Only records of this student ID",
		flagClass:   "Only records of this class ID",
		flagModule:  "Only records of this course module ID",
		flagLesson:  "Only records of this lesson ID",
	}
	flags := make([]cli.Flag, 0, len(names))
	for _, name := range names {
		flags = append(flags, &cli.StringFlag{Name: name, Usage: usage[name]})
	}
	return flags
}

// filterFrom reads the filter flags of the running command.
func filterFrom(c *cli.Context) service.Filter {
	return service.Filter{
		Student:   c.String(flagStudent),
		ClassRoom: c.String(flagClass),
		Module:    c.String(flagModule),
		Lesson:    c.String(flagLesson),
	}
}

// requireArg returns the first positional argument or a usage error.
func requireArg(c *cli.Context, name string) (string, error) {
	v := strings.TrimSpace(c.Args().First())
	if v == "" {
		return "", fmt.Errorf("%s required", name)
	}
	// Flag parsing stops at the first argument; a flag after it would be
	// silently ignored.
	for _, extra := range c.Args().Tail() {
		if strings.HasPrefix(extra, "-") {
			return "", fmt.Errorf("flag %s must come before the %s", extra, name)
		}
	}
	return v, nil
}

// interrupted reports whether err is a cancellation by the user.
func interrupted(err error) bool {
	return errors.Is(err, context.Canceled)
}
