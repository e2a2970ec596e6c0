// Package command provides the steam-cli command definitions.
//
// This package defines all CLI commands using urfave/cli/v2:
//
//   - root.go: App, global flags, per-command runtime
//   - connect.go: lazy session bootstrap shared by every command
//   - auth.go: session exchange, status and refresh
//   - course.go, student.go, class.go, lesson.go: the catalog
//   - schedule.go: attendance and time tables
//   - center.go: facilities and news
//   - config.go: configuration file management
//   - shell.go: interactive shell on top of the same App
//
// Commands follow a consistent pattern: build the filter from flags,
// call the catalog service through output.Render, and show a table, JSON
// or YAML.
package command
