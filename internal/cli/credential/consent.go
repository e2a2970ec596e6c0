package credential

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/term"

	"github.com/bdu-steam/steam-cli/internal/core/domain"
)

// Prompter asks the user a yes/no question.
type Prompter interface {
	Confirm(ctx context.Context, question string) (bool, error)
}

// ConsentState is a consent decision. It is shared by every Consent built
// from it, so a refusal survives rebuilding the provider (a new connection
// in the shell) and is not asked again.
type ConsentState struct {
	mu      sync.Mutex
	decided bool
	granted bool
}

// NewConsentState returns an undecided state.
func NewConsentState() *ConsentState {
	return &ConsentState{}
}

// Denied reports whether the user refused consent.
func (s *ConsentState) Denied() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.decided && !s.granted
}

// Consent asks once before the wrapped provider is used. A refusal is
// remembered in State and every later call fails with
// domain.ErrConsentDenied without prompting again.
type Consent struct {
	Provider Provider
	Prompter Prompter
	Question string
	State    *ConsentState
}

// DefaultQuestion is asked when Consent.Question is empty.
const DefaultQuestion = "Cho phép steam-cli sử dụng mã truy cập của bạn?"

// NewConsent wraps p with a consent prompt and a fresh decision.
func NewConsent(p Provider, prompter Prompter) *Consent {
	return &Consent{Provider: p, Prompter: prompter, State: NewConsentState()}
}

// Token implements Provider.
func (c *Consent) Token(ctx context.Context) (string, error) {
	s := c.State
	s.mu.Lock()
	if !s.decided {
		q := c.Question
		if q == "" {
			q = DefaultQuestion
		}
		ok, err := c.Prompter.Confirm(ctx, q)
		if err != nil {
			s.mu.Unlock()
			return "", ensureCredentialError(err)
		}
		s.decided = true
		s.granted = ok
	}
	granted := s.granted
	s.mu.Unlock()

	if !granted {
		return "", domain.ErrConsentDenied
	}
	t, err := c.Provider.Token(ctx)
	return t, ensureCredentialError(err)
}

// Denied reports whether the user refused consent.
func (c *Consent) Denied() bool {
	return c.State.Denied()
}

// TerminalPrompter prompts on a terminal. Without a terminal on In the
// answer is "no". A prompt abandoned by a cancelled context leaves its read
// pending; the next prompt takes that line instead of starting a second
// read. The shell reads the same terminal, so a line typed after an
// abandoned prompt and before the next one goes to the prompt.
type TerminalPrompter struct {
	In  *os.File
	Out io.Writer

	lines lineReader
}

// NewTerminalPrompter prompts on stdin/stderr.
func NewTerminalPrompter() *TerminalPrompter {
	return &TerminalPrompter{In: os.Stdin, Out: os.Stderr}
}

// Confirm implements Prompter.
func (p *TerminalPrompter) Confirm(ctx context.Context, question string) (bool, error) {
	if p.In == nil || !term.IsTerminal(int(p.In.Fd())) {
		return false, nil
	}
	return ask(ctx, &p.lines, p.In, p.Out, question)
}

// ReaderPrompter reads answers from any reader. Used for scripted input.
type ReaderPrompter struct {
	In  io.Reader
	Out io.Writer

	lines lineReader
}

// Confirm implements Prompter.
func (p *ReaderPrompter) Confirm(ctx context.Context, question string) (bool, error) {
	return ask(ctx, &p.lines, p.In, p.Out, question)
}

func ask(ctx context.Context, lines *lineReader, in io.Reader, out io.Writer, question string) (bool, error) {
	if out != nil {
		fmt.Fprintf(out, "%s [y/N]: ", question)
	}

	line, err := lines.readLine(ctx, in)
	if err != nil && err != io.EOF {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes", "c", "có", "co":
		return true, nil
	default:
		return false, nil
	}
}

type answer struct {
	line string
	err  error
}

// lineReader reads lines through one buffered reader. At most one read is
// in flight; a caller that gives up leaves it for the next caller.
type lineReader struct {
	mu      sync.Mutex
	r       *bufio.Reader
	pending chan answer
}

func (l *lineReader) readLine(ctx context.Context, in io.Reader) (string, error) {
	l.mu.Lock()
	if l.r == nil {
		l.r = bufio.NewReader(in)
	}
	ch := l.pending
	if ch == nil {
		ch = make(chan answer, 1)
		l.pending = ch
		r := l.r
		go func() {
			line, err := r.ReadString('\n')
			ch <- answer{line, err}
		}()
	}
	l.mu.Unlock()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case a := <-ch:
		l.mu.Lock()
		l.pending = nil
		l.mu.Unlock()
		return a.line, a.err
	}
}
