package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/bdu-steam/steam-cli/internal/cli/config"
	"github.com/bdu-steam/steam-cli/internal/cli/repl"
	"github.com/bdu-steam/steam-cli/internal/infra/confloader"
)

// ShellCommand returns the interactive shell command.
func ShellCommand() *cli.Command {
	return &cli.Command{
		Name:  "shell",
		Usage: "Interactive shell sharing one session across commands",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "history",
				Usage: "History file (default ~/.config/steam-cli/history)",
			},
		},
		Action: shellAction,
	}
}

// errNestedShell is returned for "shell" typed inside the shell.
var errNestedShell = errors.New("already in the shell")

func shellAction(c *cli.Context) error {
	rt := GetRuntime(c)
	cfg := rt.Config

	historyFile := c.String("history")
	if historyFile == "" {
		historyFile = cfg.Shell.HistoryFile
	}
	if historyFile == "" {
		historyFile = config.DefaultHistoryPath()
	}
	history := repl.NewHistory(historyFile, repl.DefaultHistorySize)
	if err := history.Load(); err != nil {
		rt.Log.Warn("could not load shell history", "file", historyFile, "error", err)
	}
	if rt.opts.Shutdown != nil {
		rt.opts.Shutdown.OnShutdown(func(context.Context) error {
			return history.Save()
		})
	}

	if cfg.Shell.WatchConfig && cfg.File != "" {
		stop := watchConfig(rt, cfg.File, cfg.API.CAFile)
		defer stop()
	}

	app := c.App
	inherited := inheritedFlags(c)
	exec := func(ctx context.Context, args []string) error {
		if args[0] == "shell" {
			return errNestedShell
		}
		argv := make([]string, 0, 1+len(inherited)+len(args))
		argv = append(argv, app.Name)
		argv = append(argv, inherited...)
		argv = append(argv, args...)
		return app.RunContext(ctx, argv)
	}

	sh := repl.New(exec,
		repl.WithIO(rt.opts.Stdin, rt.opts.Stdout, rt.opts.Stderr),
		repl.WithCompleter(repl.NewCompleter(commandLines(app.Commands))),
		repl.WithHistory(history),
		repl.WithErrorHandler(PrintError),
		repl.WithInterruptTrap(isStdin(rt.opts.Stdin)),
	)

	fmt.Fprintln(rt.opts.Stdout, "steam-cli shell. Gõ \"help\" để xem lệnh, \"exit\" để thoát.")
	err := sh.Run(c.Context)
	if saveErr := history.Save(); saveErr != nil {
		rt.Log.Warn("could not save shell history", "file", historyFile, "error", saveErr)
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// watchConfig drops the current connection whenever the config file or
// the CA bundle changes, so the next command bootstraps with the new
// settings. Empty paths are skipped.
func watchConfig(rt *Runtime, paths ...string) (stop func()) {
	w, err := confloader.NewWatcher(confloader.WithWatcherLogger(rt.Log))
	if err != nil {
		rt.Log.Warn("config watcher unavailable", "error", err)
		return func() {}
	}
	for _, path := range paths {
		if path == "" {
			continue
		}
		if err := w.Watch(path); err != nil {
			rt.Log.Warn("cannot watch file", "file", path, "error", err)
		}
	}

	conns := rt.Conns
	w.OnChange(func(changed string) {
		rt.Log.Info("config file changed, session will be re-established", "file", changed)
		conns.Disconnect()
	})
	w.StartAsync()
	return func() { _ = w.Stop() }
}

// commandLines lists "name" and "name sub" for every visible command.
func commandLines(cmds []*cli.Command) []string {
	var lines []string
	for _, cmd := range cmds {
		if cmd.Hidden || cmd.Name == "shell" {
			continue
		}
		lines = append(lines, cmd.Name)
		for _, sub := range cmd.Subcommands {
			if !sub.Hidden {
				lines = append(lines, cmd.Name+" "+sub.Name)
			}
		}
	}
	return lines
}

// isStdin reports whether r is the process's standard input. Ctrl-C is
// trapped only for an interactive shell.
func isStdin(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && f.Fd() == os.Stdin.Fd()
}
