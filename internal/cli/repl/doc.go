// Package repl provides the interactive shell of steam-cli.
//
// The REPL reads a line, splits it like a POSIX shell and hands the words
// to an Executor; it knows nothing about the commands it runs:
//
//   - repl.go: main loop, builtins and Ctrl-C handling
//   - completer.go: "?" completion over the known command lines
//   - history.go: command history persistence
//
// Ctrl-C at the prompt is ignored. While a command runs, the command's own
// context observes it and the REPL discards it afterwards.
package repl
