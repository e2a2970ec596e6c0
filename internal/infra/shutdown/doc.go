// Package shutdown coordinates process termination for steam-cli.
//
//   - Signals: SIGTERM ends the process context; SIGINT cancels only the
//     command that is running, so an interactive shell survives Ctrl-C.
//   - Exit hooks: registered cleanup (metrics file, shell history) runs in
//     reverse order of registration, bounded by a timeout.
//
// Usage:
//
//	ctx, stop := shutdown.NotifyContext(context.Background())
//	defer stop()
//	h := shutdown.NewHandler(5 * time.Second)
//	defer h.Shutdown()
package shutdown
