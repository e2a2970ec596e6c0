package repl

import (
	"sort"
	"strings"
)

// Builtins are handled by the REPL itself.
var Builtins = []string{"exit", "quit", "history", "help"}

// Completer suggests command lines for a prefix.
type Completer struct {
	commands []string
}

// NewCompleter creates a Completer over commands plus the builtins.
// Entries may contain spaces ("course list").
func NewCompleter(commands []string) *Completer {
	seen := make(map[string]bool, len(commands)+len(Builtins))
	all := make([]string, 0, len(commands)+len(Builtins))
	for _, cmd := range append(append([]string{}, commands...), Builtins...) {
		cmd = strings.Join(strings.Fields(cmd), " ")
		if cmd == "" || seen[cmd] {
			continue
		}
		seen[cmd] = true
		all = append(all, cmd)
	}
	sort.Strings(all)
	return &Completer{commands: all}
}

// Complete returns the known command lines starting with prefix, sorted.
// Runs of whitespace in prefix count as one space.
func (c *Completer) Complete(prefix string) []string {
	trailing := strings.HasSuffix(prefix, " ")
	prefix = strings.Join(strings.Fields(prefix), " ")
	if trailing && prefix != "" {
		prefix += " "
	}

	var suggestions []string
	for _, cmd := range c.commands {
		if strings.HasPrefix(cmd, prefix) {
			suggestions = append(suggestions, cmd)
		}
	}
	return suggestions
}
