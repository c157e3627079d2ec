package commands

import (
	"sort"

	"github.com/abiosoft/readline"
)

// AllBuiltins holds a list of all registered shell builtins
var AllBuiltins = make(map[string]ShellBuiltin)

type ShellBuiltin interface {
	Main(s *Shell, args []string) int
}

type ShellBuiltinFunc func(s *Shell, args []string) int

func (f ShellBuiltinFunc) Main(s *Shell, args []string) int {
	return f(s, args)
}

var _ ShellBuiltin = (ShellBuiltinFunc)(nil)

// addBuiltin registers a builtin, panicking on duplicates.
func addBuiltin(name string, builtin ShellBuiltinFunc) {
	if _, ok := AllBuiltins[name]; ok {
		panic("duplicate builtin: " + name)
	}
	AllBuiltins[name] = builtin
}

// BuiltinNames returns the names of all builtins in sorted order.
func BuiltinNames() []string {
	var out []string
	for name := range AllBuiltins {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func builtinCompleter() *readline.PrefixCompleter {
	var items []readline.PrefixCompleterInterface
	for _, name := range BuiltinNames() {
		items = append(items, readline.PcItem(name))
	}
	return readline.NewPrefixCompleter(items...)
}
