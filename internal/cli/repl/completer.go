package repl

import (
	"sort"
	"strings"
)

// Builtins are handled by the REPL itself.
var Builtins = []string{"complete", "exit", "history", "quit"}

// Completer offers command names for a prefix.
type Completer struct {
	words []string
}

// NewCompleter creates a completer over words plus the builtins.
func NewCompleter(words []string) *Completer {
	seen := make(map[string]bool, len(words)+len(Builtins))
	var all []string
	for _, w := range append(append([]string{}, words...), Builtins...) {
		if w != "" && !seen[w] {
			seen[w] = true
			all = append(all, w)
		}
	}
	sort.Strings(all)
	return &Completer{words: all}
}

// Complete returns the words starting with prefix, in sorted order.
func (c *Completer) Complete(prefix string) []string {
	var out []string
	for _, w := range c.words {
		if strings.HasPrefix(w, prefix) {
			out = append(out, w)
		}
	}
	return out
}
