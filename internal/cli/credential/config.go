package credential

import (
	"fmt"
	"strings"
)

// Source names accepted in Config.Source.
const (
	SourceAuto    = "auto"
	SourceStatic  = "static"
	SourceEnv     = "env"
	SourceFile    = "file"
	SourceCommand = "command"
	SourceNone    = "none"
)

// DefaultTokenEnv is read by the env source when no variable is named.
const DefaultTokenEnv = "STEAM_TOKEN"

// Config selects and configures a provider.
type Config struct {
	Source         string `koanf:"source" yaml:"source"`
	Token          string `koanf:"token" yaml:"token,omitempty"`
	TokenEnv       string `koanf:"token_env" yaml:"token_env,omitempty"`
	TokenFile      string `koanf:"token_file" yaml:"token_file,omitempty"`
	TokenCommand   string `koanf:"token_command" yaml:"token_command,omitempty"`
	RequireConsent bool   `koanf:"require_consent" yaml:"require_consent"`
}

// ResolveSource returns the concrete source "auto" stands for. When
// auto has more than one candidate it stays SourceAuto and New builds a
// Chain over them.
func (c Config) ResolveSource() string {
	src := strings.ToLower(strings.TrimSpace(c.Source))
	if src != "" && src != SourceAuto {
		return src
	}
	switch names := c.autoSources(); len(names) {
	case 0:
		return SourceNone
	case 1:
		return names[0]
	default:
		return SourceAuto
	}
}

// autoSources lists the configured sources in the order auto tries them:
// an explicit token, the environment variable, the token file, then the
// helper command.
func (c Config) autoSources() []string {
	var names []string
	if c.Token != "" {
		names = append(names, SourceStatic)
	}
	if c.TokenEnv != "" {
		names = append(names, SourceEnv)
	}
	if c.TokenFile != "" {
		names = append(names, SourceFile)
	}
	if c.TokenCommand != "" {
		names = append(names, SourceCommand)
	}
	return names
}

// Validate checks that the selected source has what it needs.
func (c Config) Validate() error {
	switch c.ResolveSource() {
	case SourceStatic, SourceEnv, SourceNone, SourceAuto:
		return nil
	case SourceFile:
		if c.TokenFile == "" {
			return fmt.Errorf("auth.token_file is required for source %q", SourceFile)
		}
	case SourceCommand:
		if c.TokenCommand == "" {
			return fmt.Errorf("auth.token_command is required for source %q", SourceCommand)
		}
	default:
		return fmt.Errorf("unknown auth.source %q", c.Source)
	}
	return nil
}

// New builds the provider described by cfg. The returned name is the
// resolved source for status output. When consent is required, state
// carries the decision across providers built from the same session; nil
// starts a fresh one.
func New(cfg Config, prompter Prompter, state *ConsentState) (Provider, string, error) {
	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}

	src := cfg.ResolveSource()
	var p Provider
	switch src {
	case SourceAuto:
		chain := &Chain{}
		for _, name := range cfg.autoSources() {
			chain.Links = append(chain.Links, Link{Name: name, Provider: cfg.single(name)})
		}
		p = chain
	case SourceStatic, SourceEnv, SourceFile, SourceCommand:
		p = cfg.single(src)
	default:
		return None{}, SourceNone, nil
	}

	if cfg.RequireConsent {
		if prompter == nil {
			prompter = NewTerminalPrompter()
		}
		if state == nil {
			state = NewConsentState()
		}
		p = &Consent{Provider: p, Prompter: prompter, State: state}
	}
	return p, src, nil
}

// single builds the provider for one concrete source.
func (c Config) single(src string) Provider {
	switch src {
	case SourceStatic:
		return Static{Value: c.Token}
	case SourceEnv:
		name := c.TokenEnv
		if name == "" {
			name = DefaultTokenEnv
		}
		return Env{Name: name}
	case SourceFile:
		return File{Path: expandHome(c.TokenFile)}
	case SourceCommand:
		return Command{Line: c.TokenCommand}
	default:
		return None{}
	}
}

// UsedSource names the source that produced the last token of p. For a
// chain that is the link that answered; otherwise it is resolved.
func UsedSource(p Provider, resolved string) string {
	if c, ok := p.(*Consent); ok {
		p = c.Provider
	}
	if c, ok := p.(*Chain); ok {
		if used := c.Used(); used != "" {
			return used
		}
	}
	return resolved
}
