package command

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/bdu-steam/steam-cli/internal/cli/config"
	"github.com/bdu-steam/steam-cli/internal/cli/connection"
	"github.com/bdu-steam/steam-cli/internal/cli/credential"
	"github.com/bdu-steam/steam-cli/internal/cli/output"
	"github.com/bdu-steam/steam-cli/internal/infra/buildinfo"
	"github.com/bdu-steam/steam-cli/internal/infra/shutdown"
	"github.com/bdu-steam/steam-cli/internal/telemetry/logger"
	"github.com/bdu-steam/steam-cli/internal/telemetry/metric"
)

// Metadata keys.
const (
	metaConnMgr = "connMgr"
	metaRuntime = "runtime"
)

// Options configures App. Zero values use the process streams and fresh
// state.
type Options struct {
	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader

	// Prompter asks for consent when auth.require_consent is set.
	Prompter credential.Prompter
	// Consent is the consent decision for the whole process, kept across
	// reconnects in the shell.
	Consent *credential.ConsentState

	Metrics *metric.Registry
	Conns   *connection.Manager

	// Shutdown receives exit hooks: the metrics export and the shell
	// history.
	Shutdown *shutdown.Handler

	// metricsFile is metrics.file as of the last command.
	metricsFile string
}

func (o *Options) setDefaults() {
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	if o.Stderr == nil {
		o.Stderr = os.Stderr
	}
	if o.Stdin == nil {
		o.Stdin = os.Stdin
	}
	if o.Prompter == nil {
		o.Prompter = credential.NewTerminalPrompter()
	}
	if o.Consent == nil {
		o.Consent = credential.NewConsentState()
	}
	if o.Metrics == nil {
		o.Metrics = metric.NewRegistry()
	}
	if o.Conns == nil {
		o.Conns = connection.NewManager()
	}
}

// Runtime is what a command runs with. It is rebuilt before every command
// from flags, environment and the config file; the connection manager is
// shared across runs.
type Runtime struct {
	Config  *config.CLIConfig
	Printer *output.Printer
	Log     logger.Logger
	Metrics *metric.Registry
	Conns   *connection.Manager

	opts *Options
}

// App creates the CLI application.
func App(opts Options) *cli.App {
	opts.setDefaults()
	opts.Metrics.MustRegister(metric.NewCollector(sessionState(opts.Conns)))
	if opts.Shutdown != nil {
		opts.Shutdown.OnShutdown(func(context.Context) error {
			if opts.metricsFile == "" {
				return nil
			}
			return opts.Metrics.WriteFile(opts.metricsFile)
		})
	}

	app := &cli.App{
		Name:      "steam-cli",
		Usage:     "Command-line client for the BDU STEAM tutoring center",
		Version:   buildinfo.String(),
		Writer:    opts.Stdout,
		ErrWriter: opts.Stderr,
		Reader:    opts.Stdin,
		Flags:     globalFlags(),
		Commands: []*cli.Command{
			AuthCommand(),
			CourseCommand(),
			StudentCommand(),
			ClassCommand(),
			LessonCommand(),
			GalleryCommand(),
			EvaluationCommand(),
			AttendanceCommand(),
			TimetableCommand(),
			FacilityCommand(),
			NewsCommand(),
			ConfigCommand(),
			VersionCommand(),
			ShellCommand(),
		},
		Metadata: map[string]any{
			metaConnMgr: opts.Conns,
		},
		Before: func(c *cli.Context) error {
			rt, err := newRuntime(c, &opts)
			if err != nil {
				return err
			}
			c.App.Metadata[metaRuntime] = rt
			opts.metricsFile = rt.Config.Metrics.File
			return nil
		},
		// Errors are printed by the caller; never exit from inside Run.
		ExitErrHandler: func(*cli.Context, error) {},
	}

	return app
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Config file (default ~/.config/steam-cli/config.yaml)",
			EnvVars: []string{"STEAM_CONFIG"},
		},
		&cli.StringFlag{
			Name:  "base-url",
			Usage: "Backend base URL (e.g., https://stem.bdu.edu.vn/steam/apis)",
		},
		&cli.StringFlag{
			Name:  "prefix",
			Usage: "API path prefix (e.g., /app)",
		},
		&cli.StringFlag{
			Name:  "ca-file",
			Usage: "PEM file with extra CA certificates for the backend",
		},
		&cli.StringFlag{
			Name:  "token",
			Usage: "Bearer token; without it auth.source decides (auto tries $STEAM_TOKEN, then auth.token_file, then auth.token_command)",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: table, json, yaml",
		},
		&cli.BoolFlag{
			Name:    "wide",
			Aliases: []string{"w"},
			Usage:   "Show wide output (more columns, no truncation)",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"V"},
			Usage:   "Enable debug logging and error details",
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Usage: "Per-request timeout (e.g., 10s)",
		},
		&cli.StringFlag{
			Name:  "metrics-file",
			Usage: "Write Prometheus metrics to this file on exit",
		},
	}
}

// flagOverrides maps the global flags that were given to config keys.
func flagOverrides(c *cli.Context) map[string]any {
	o := make(map[string]any)
	if c.IsSet("base-url") {
		o["api.base_url"] = c.String("base-url")
	}
	if c.IsSet("prefix") {
		o["api.prefix"] = c.String("prefix")
	}
	if c.IsSet("ca-file") {
		o["api.ca_file"] = c.String("ca-file")
	}
	if c.IsSet("timeout") {
		o["api.timeout"] = c.Duration("timeout")
	}
	if c.IsSet("token") {
		o["auth.source"] = credential.SourceStatic
		o["auth.token"] = c.String("token")
	}
	if c.IsSet("output") {
		o["output.format"] = c.String("output")
	}
	if c.IsSet("wide") {
		o["output.wide"] = c.Bool("wide")
	}
	if c.IsSet("metrics-file") {
		o["metrics.file"] = c.String("metrics-file")
	}
	return o
}

// inheritedFlags renders the global flags that were set as arguments, so
// that a nested run (the shell) sees the same settings.
func inheritedFlags(c *cli.Context) []string {
	var args []string
	for _, f := range globalFlags() {
		name := f.Names()[0]
		if !c.IsSet(name) {
			continue
		}
		switch f.(type) {
		case *cli.BoolFlag:
			args = append(args, fmt.Sprintf("--%s=%t", name, c.Bool(name)))
		case *cli.DurationFlag:
			args = append(args, fmt.Sprintf("--%s=%s", name, c.Duration(name)))
		default:
			args = append(args, fmt.Sprintf("--%s=%s", name, c.String(name)))
		}
	}
	return args
}

func newRuntime(c *cli.Context, opts *Options) (*Runtime, error) {
	cfg, err := config.Load(c.String("config"), flagOverrides(c))
	if err != nil {
		return nil, err
	}

	format, err := output.ParseFormat(cfg.Output.Format)
	if err != nil {
		return nil, err
	}

	verbose := c.Bool("verbose")
	logCfg := logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: opts.Stderr}
	if verbose {
		logCfg.Level = "debug"
	}
	log, err := logger.New(logCfg)
	if err != nil {
		return nil, fmt.Errorf("log: %w", err)
	}
	logger.SetDefault(log)

	printer := output.NewPrinter(opts.Stdout, opts.Stderr, format, cfg.Output.Wide)
	printer.Verbose = verbose

	return &Runtime{
		Config:  cfg,
		Printer: printer,
		Log:     log,
		Metrics: opts.Metrics,
		Conns:   opts.Conns,
		opts:    opts,
	}, nil
}

// GetRuntime returns the runtime built for the running command.
func GetRuntime(c *cli.Context) *Runtime {
	if rt, ok := c.App.Metadata[metaRuntime].(*Runtime); ok {
		return rt
	}
	return nil
}

// GetConnectionManager retrieves the connection manager from context.
func GetConnectionManager(c *cli.Context) *connection.Manager {
	if mgr, ok := c.App.Metadata[metaConnMgr].(*connection.Manager); ok {
		return mgr
	}
	return nil
}

// commandContext returns the context a command works in: cancelled on
// Ctrl-C and carrying the command name for logs.
func commandContext(c *cli.Context) (context.Context, context.CancelFunc) {
	parent := c.Context
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := shutdown.Interruptible(parent)
	return logger.WithCommand(ctx, c.Command.FullName()), stop
}

// sessionState reports the current connection to the metrics collector.
func sessionState(mgr *connection.Manager) metric.SessionState {
	return func() (bool, string) {
		conn := mgr.Current()
		if conn == nil {
			return false, ""
		}
		return conn.Authenticated(), conn.TokenSource
	}
}

// PrintError prints an error message to w unless it was already shown.
func PrintError(w io.Writer, err error) {
	switch {
	case err == nil, output.IsReported(err):
		return
	case interrupted(err):
		fmt.Fprintln(w, "interrupted")
		return
	}
	fmt.Fprintf(w, "error: %v\n", err)
}

// VersionCommand returns the version command.
func VersionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Show build information",
		Action: func(c *cli.Context) error {
			rt := GetRuntime(c)
			info := buildinfo.Get()
			if rt.Printer.Format != output.FormatTable {
				return rt.Printer.Print(info)
			}
			rt.Printer.Printf("steam-cli %s\n", info.Version)
			rt.Printer.Printf("  commit:     %s\n", info.Commit)
			rt.Printer.Printf("  built:      %s\n", info.BuildTime)
			rt.Printer.Printf("  go:         %s\n", info.GoVersion)
			rt.Printer.Printf("  platform:   %s\n", info.Platform)
			return nil
		},
	}
}
