package credential

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/bdu-steam/steam-cli/internal/core/domain"
)

func TestConfig_ResolveSource(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{"empty", Config{}, SourceNone},
		{"auto with token", Config{Source: "auto", Token: "x"}, SourceStatic},
		{"auto with file", Config{TokenFile: "/tmp/t"}, SourceFile},
		{"auto with command", Config{TokenCommand: "echo x"}, SourceCommand},
		{"auto with env", Config{TokenEnv: "MY_TOKEN"}, SourceEnv},
		{"token and file chain", Config{Token: "x", TokenFile: "/tmp/t"}, SourceAuto},
		{"defaults with file chain", Config{Source: "auto", TokenEnv: DefaultTokenEnv, TokenFile: "/tmp/t"}, SourceAuto},
		{"explicit", Config{Source: "ENV"}, SourceEnv},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.ResolveSource(); got != tt.want {
				t.Errorf("ResolveSource() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"none", Config{}, false},
		{"auto chain", Config{TokenEnv: "T", TokenFile: "/tmp/t"}, false},
		{"static without token", Config{Source: SourceStatic}, false},
		{"file without path", Config{Source: SourceFile}, true},
		{"command without line", Config{Source: SourceCommand}, true},
		{"unknown", Config{Source: "keyring"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNew(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	tests := []struct {
		name     string
		cfg      Config
		wantSrc  string
		wantType string
	}{
		{"static", Config{Token: "abc"}, SourceStatic, "static"},
		{"env default name", Config{Source: SourceEnv}, SourceEnv, "env"},
		{"file", Config{TokenFile: "~/token"}, SourceFile, "file"},
		{"command", Config{TokenCommand: "echo x"}, SourceCommand, "command"},
		{"none", Config{}, SourceNone, "none"},
		{"consent", Config{Token: "abc", RequireConsent: true}, SourceStatic, "consent"},
		{"chain", Config{TokenEnv: DefaultTokenEnv, TokenFile: "~/token"}, SourceAuto, "chain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, src, err := New(tt.cfg, &countingPrompter{answer: true}, nil)
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if src != tt.wantSrc {
				t.Errorf("source = %q, want %q", src, tt.wantSrc)
			}

			var gotType string
			switch v := p.(type) {
			case Static:
				gotType = "static"
			case Env:
				gotType = "env"
				if v.Name != DefaultTokenEnv {
					t.Errorf("Env.Name = %q, want %q", v.Name, DefaultTokenEnv)
				}
			case File:
				gotType = "file"
				if v.Path == "~/token" {
					t.Error("File path should have ~ expanded")
				}
			case Command:
				gotType = "command"
			case None:
				gotType = "none"
			case *Consent:
				gotType = "consent"
			case *Chain:
				gotType = "chain"
				if len(v.Links) != 2 || v.Links[0].Name != SourceEnv || v.Links[1].Name != SourceFile {
					t.Errorf("Chain links = %+v, want env then file", v.Links)
				}
			}
			if gotType != tt.wantType {
				t.Errorf("provider type = %s, want %s", gotType, tt.wantType)
			}
		})
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	if _, _, err := New(Config{Source: "keyring"}, nil, nil); err == nil {
		t.Error("New() with unknown source should fail")
	}
}

func TestNew_AutoFallsBackToFile(t *testing.T) {
	t.Setenv(DefaultTokenEnv, "")
	path := filepath.Join(t.TempDir(), "token")
	if err := os.WriteFile(path, []byte("from-file\n"), 0600); err != nil {
		t.Fatal(err)
	}

	p, src, err := New(Config{TokenEnv: DefaultTokenEnv, TokenFile: path}, nil, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	got, err := p.Token(context.Background())
	if err != nil {
		t.Fatalf("Token() error = %v", err)
	}
	if got != "from-file" {
		t.Errorf("Token() = %q, want from-file", got)
	}
	if used := UsedSource(p, src); used != SourceFile {
		t.Errorf("UsedSource() = %q, want file", used)
	}
}

func TestNew_AutoPrefersEnvOverMissingFile(t *testing.T) {
	t.Setenv(DefaultTokenEnv, "envtok")

	p, src, err := New(Config{TokenEnv: DefaultTokenEnv, TokenFile: "/nonexistent/token"}, nil, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	got, err := p.Token(context.Background())
	if err != nil || got != "envtok" {
		t.Fatalf("Token() = %q, %v, want envtok", got, err)
	}
	if used := UsedSource(p, src); used != SourceEnv {
		t.Errorf("UsedSource() = %q, want env", used)
	}
}

func TestNew_AutoAllFail(t *testing.T) {
	t.Setenv(DefaultTokenEnv, "")

	p, src, err := New(Config{TokenEnv: DefaultTokenEnv, TokenFile: "/nonexistent/token"}, nil, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	_, err = p.Token(context.Background())
	if !errors.Is(err, domain.ErrCredentialUnavailable) {
		t.Fatalf("Token() error = %v, want ErrCredentialUnavailable", err)
	}
	if used := UsedSource(p, src); used != SourceAuto {
		t.Errorf("UsedSource() = %q, want auto after failure", used)
	}
}

func TestNew_SharedConsentState(t *testing.T) {
	state := NewConsentState()
	prompter := &countingPrompter{answer: false}
	cfg := Config{Token: "abc", RequireConsent: true}

	for i := 0; i < 3; i++ {
		p, _, err := New(cfg, prompter, state)
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		if _, err := p.Token(context.Background()); !errors.Is(err, domain.ErrConsentDenied) {
			t.Fatalf("Token() error = %v, want ErrConsentDenied", err)
		}
	}
	if prompter.calls != 1 {
		t.Errorf("prompted %d times across providers, want 1", prompter.calls)
	}
	if !state.Denied() {
		t.Error("state.Denied() = false after refusal")
	}
}
