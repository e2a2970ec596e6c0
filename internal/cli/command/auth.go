package command

import (
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/bdu-steam/steam-cli/internal/cli/config"
	"github.com/bdu-steam/steam-cli/internal/cli/connection"
	"github.com/bdu-steam/steam-cli/internal/cli/output"
	"github.com/bdu-steam/steam-cli/internal/core/domain"
	"github.com/bdu-steam/steam-cli/internal/core/service"
	"github.com/bdu-steam/steam-cli/pkg/token"
)

// AuthCommand returns the auth command group.
func AuthCommand() *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Session bootstrap and token status",
		Subcommands: []*cli.Command{
			{
				Name:   "session",
				Usage:  "Obtain a token and open a new session",
				Action: authSessionAction,
			},
			{
				Name:   "status",
				Usage:  "Show the current session",
				Action: authStatusAction,
			},
			{
				Name:   "refresh",
				Usage:  "Repeat the session exchange with the cached token",
				Action: authRefreshAction,
			},
		},
	}
}

func authSessionAction(c *cli.Context) error {
	rt := GetRuntime(c)
	if err := config.Verify(rt.Config); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	rt.Conns.Disconnect()
	conn, err := connect(c, rt, connectionKey(rt.Config))
	if err != nil {
		return err
	}

	switch {
	case conn.CredentialErr != nil:
		return rt.Printer.Failure("Không lấy được mã truy cập", conn.CredentialErr)
	case conn.SessionErr != nil:
		return rt.Printer.Failure("Không thể mở phiên làm việc", conn.SessionErr)
	}
	return printSession(rt.Printer, conn.Session)
}

func authRefreshAction(c *cli.Context) error {
	conn, err := EnsureConnected(c)
	if err != nil {
		return err
	}
	rt := GetRuntime(c)

	ctx, stop := commandContext(c)
	defer stop()

	session, err := service.NewBootstrapper(nil, conn.Tokens, conn.Client, rt.Metrics).Refresh(ctx)
	if err != nil {
		return rt.Printer.Failure("Không thể làm mới phiên làm việc", err)
	}
	conn.Session = session
	conn.SessionErr = nil
	return printSession(rt.Printer, session)
}

func printSession(p *output.Printer, session *domain.Session) error {
	if p.Format != output.FormatTable {
		return p.Print(session)
	}
	if session != nil && session.User != nil && session.User.Name != "" {
		p.Printf("✓ Đã mở phiên làm việc cho %s\n", session.User.Name)
		return nil
	}
	p.Println("✓ Đã mở phiên làm việc")
	return nil
}

// authStatus is the output of "auth status".
type authStatus struct {
	BaseURL       string `json:"base_url" yaml:"base_url"`
	Prefix        string `json:"prefix" yaml:"prefix"`
	TokenSource   string `json:"token_source" yaml:"token_source"`
	Authenticated bool   `json:"authenticated" yaml:"authenticated"`
	TokenFP       string `json:"token_fingerprint,omitempty" yaml:"token_fingerprint,omitempty"`
	Session       bool   `json:"session" yaml:"session"`
	User          string `json:"user,omitempty" yaml:"user,omitempty"`
	ConnectedAt   string `json:"connected_at" yaml:"connected_at"`
	CredentialErr string `json:"credential_error,omitempty" yaml:"credential_error,omitempty"`
	SessionErr    string `json:"session_error,omitempty" yaml:"session_error,omitempty"`
}

func newAuthStatus(conn *connection.Connection) authStatus {
	st := authStatus{
		BaseURL:       conn.Client.BaseURL(),
		Prefix:        conn.Client.Prefix(),
		TokenSource:   conn.TokenSource,
		Authenticated: conn.Authenticated(),
		Session:       conn.Session != nil,
		ConnectedAt:   conn.ConnectedAt.Format(time.RFC3339),
	}
	if tok, ok := conn.Tokens.Get(); ok && tok != "" {
		st.TokenFP = token.Fingerprint(tok)
	}
	if conn.Session != nil && conn.Session.User != nil {
		st.User = conn.Session.User.Name
	}
	if conn.CredentialErr != nil {
		st.CredentialErr = conn.CredentialErr.Error()
	}
	if conn.SessionErr != nil {
		st.SessionErr = conn.SessionErr.Error()
	}
	return st
}

func authStatusAction(c *cli.Context) error {
	conn, err := EnsureConnected(c)
	if err != nil {
		return err
	}
	rt := GetRuntime(c)
	st := newAuthStatus(conn)

	if rt.Printer.Format != output.FormatTable {
		return rt.Printer.Print(st)
	}

	t := output.NewTable("FIELD", "VALUE")
	t.AddRow("Server", st.BaseURL+st.Prefix)
	t.AddRow("Nguồn mã", st.TokenSource)
	t.AddRow("Đã xác thực", output.YesNo(st.Authenticated))
	t.AddRow("Mã (sha256)", st.TokenFP)
	t.AddRow("Phiên", output.YesNo(st.Session))
	t.AddRow("Người dùng", st.User)
	t.AddRow("Kết nối lúc", st.ConnectedAt)
	if st.CredentialErr != "" {
		t.AddRow("Lỗi mã truy cập", output.Describe(conn.CredentialErr))
	}
	if st.SessionErr != "" {
		t.AddRow("Lỗi phiên", output.Describe(conn.SessionErr))
	}
	return rt.Printer.Print(t)
}
