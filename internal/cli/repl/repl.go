package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/mattn/go-shellwords"
)

// DefaultPrompt is shown before each line.
const DefaultPrompt = "steam> "

// Executor runs one parsed command line.
type Executor func(ctx context.Context, args []string) error

// REPL represents the Read-Eval-Print Loop.
type REPL struct {
	input     io.Reader
	output    io.Writer
	errOut    io.Writer
	prompt    string
	exec      Executor
	completer *Completer
	history   *History
	onError   func(w io.Writer, err error)

	trapInterrupt bool
}

// Option configures a REPL.
type Option func(*REPL)

// WithIO sets the input and output streams.
func WithIO(in io.Reader, out, errOut io.Writer) Option {
	return func(r *REPL) {
		r.input, r.output, r.errOut = in, out, errOut
	}
}

// WithPrompt sets the prompt.
func WithPrompt(prompt string) Option {
	return func(r *REPL) {
		r.prompt = prompt
	}
}

// WithCompleter sets the completer used for "?" lines.
func WithCompleter(c *Completer) Option {
	return func(r *REPL) {
		r.completer = c
	}
}

// WithHistory sets the history the REPL appends to.
func WithHistory(h *History) Option {
	return func(r *REPL) {
		r.history = h
	}
}

// WithErrorHandler sets how command errors are printed.
func WithErrorHandler(fn func(w io.Writer, err error)) Option {
	return func(r *REPL) {
		r.onError = fn
	}
}

// WithInterruptTrap controls whether Ctrl-C is caught while the REPL
// waits for input. It is on by default.
func WithInterruptTrap(on bool) Option {
	return func(r *REPL) {
		r.trapInterrupt = on
	}
}

// New creates a new REPL that hands each line to exec.
func New(exec Executor, opts ...Option) *REPL {
	r := &REPL{
		input:         os.Stdin,
		output:        os.Stdout,
		errOut:        os.Stderr,
		prompt:        DefaultPrompt,
		exec:          exec,
		completer:     NewCompleter(nil),
		history:       NewHistory("", DefaultHistorySize),
		trapInterrupt: true,
		onError: func(w io.Writer, err error) {
			fmt.Fprintf(w, "error: %v\n", err)
		},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// History returns the REPL's history.
func (r *REPL) History() *History {
	return r.history
}

type readResult struct {
	line string
	err  error
}

// Run starts the REPL loop. It returns nil on exit, quit or end of input,
// and ctx.Err() when ctx is cancelled.
func (r *REPL) Run(ctx context.Context) error {
	var interrupts chan os.Signal
	if r.trapInterrupt {
		interrupts = make(chan os.Signal, 1)
		signal.Notify(interrupts, os.Interrupt)
		defer signal.Stop(interrupts)
	}

	// Lines are read one at a time on demand, so a running command can
	// still read stdin (e.g. a consent prompt).
	want := make(chan struct{})
	lines := make(chan readResult, 1)
	defer close(want)
	go func() {
		reader := bufio.NewReader(r.input)
		for range want {
			line, err := reader.ReadString('\n')
			lines <- readResult{line: line, err: err}
			if err != nil {
				return
			}
		}
	}()

	for {
		fmt.Fprint(r.output, r.prompt)
		want <- struct{}{}

		var res readResult
	wait:
		for {
			select {
			case <-ctx.Done():
				fmt.Fprintln(r.output)
				return ctx.Err()
			case <-interrupts:
				fmt.Fprint(r.output, "\n(gõ exit để thoát)\n"+r.prompt)
			case res = <-lines:
				break wait
			}
		}

		if res.err != nil && !errors.Is(res.err, io.EOF) {
			return res.err
		}
		eof := res.err != nil

		done := r.handle(ctx, res.line)
		drain(interrupts)
		if done {
			return nil
		}
		if eof {
			fmt.Fprintln(r.output)
			return nil
		}
	}
}

// handle processes one line and reports whether the REPL should exit.
func (r *REPL) handle(ctx context.Context, line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	r.history.Add(line)

	switch line {
	case "exit", "quit":
		return true
	case "history":
		for i, entry := range r.history.Entries() {
			fmt.Fprintf(r.output, "%4d  %s\n", i+1, entry)
		}
		return false
	}

	if prefix, ok := strings.CutSuffix(line, "?"); ok {
		for _, s := range r.completer.Complete(strings.TrimSpace(prefix)) {
			fmt.Fprintln(r.output, s)
		}
		return false
	}

	args, err := shellwords.Parse(line)
	if err != nil {
		r.onError(r.errOut, fmt.Errorf("parse line: %w", err))
		return false
	}
	if len(args) == 0 {
		return false
	}

	if err := r.exec(ctx, args); err != nil {
		r.onError(r.errOut, err)
	}
	return false
}

// drain discards a Ctrl-C that arrived while a command was running; the
// command already handled it.
func drain(ch chan os.Signal) {
	if ch == nil {
		return
	}
	for {
		select {
		case <-ch:
		default:
			return
		}
	}
}
