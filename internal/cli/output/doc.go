// Package output renders steam-cli command results.
//
// This package handles all CLI output formatting:
//
//   - formatter.go: Formatter interface and factory
//   - table.go: Table rendering with wide mode support
//   - json.go / yaml.go: machine-readable output
//   - render.go: the loading / success / failure view path every list
//     command goes through
//   - errors.go: Vietnamese failure descriptions
//   - humanize.go: VND prices and lesson durations
//   - spinner.go / progress.go: terminal feedback on stderr
//
// Tables and messages are written in Vietnamese to match the screens of
// the mini-app. JSON and YAML output carry the backend field names.
package output
