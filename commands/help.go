package commands

import (
	"fmt"
	"strings"
)

// Help lists the builtins, or shows the help of the named ones.
func Help(s *Shell, args []string) int {
	cmd := &SimpleCommand{
		Use:   "help [NAME] ...",
		Short: "Display information about builtin commands.",
	}

	return cmd.Run(s, args, func() int {
		if names := cmd.Flags().Args(); len(names) > 0 {
			ret := 0
			for _, name := range names {
				builtin, ok := AllBuiltins[name]
				if !ok {
					fmt.Fprintf(s.Stderr(), "help: no help topics match `%s'\n", name)
					ret = 1
					continue
				}
				builtin.Main(s, []string{name, "--help"})
			}
			return ret
		}

		w := s.Stdout()
		fmt.Fprintln(w, "Available built-in commands:")
		fmt.Fprintln(w, strings.Join(BuiltinNames(), ", "))
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Type `help name' to find out more about the builtin `name'.")

		return 0
	})
}

func init() {
	addBuiltin("help", Help)
}
