package commands

import (
	"fmt"
	"strings"

	"github.com/josephlewis42/psh/core/env"
)

// Export sets environment variables for the shell and its children.
func Export(s *Shell, args []string) int {
	cmd := &SimpleCommand{
		Use:   "export [NAME=VALUE] ...",
		Short: "Set export attribute for shell variables, list them if no NAME is given.",
	}

	return cmd.Run(s, args, func() int {
		assignments := cmd.Flags().Args()
		if len(assignments) == 0 {
			w := s.Stdout()
			for _, name := range s.Env.Keys() {
				fmt.Fprintf(w, "declare -x %s=%q\n", name, s.Env.Getenv(name))
			}
			return 0
		}

		ret := 0
		for _, assignment := range assignments {
			name, value, ok := env.ParseAssignment(assignment)
			if !ok {
				fmt.Fprintln(s.Stderr(), "export: invalid format")
				ret = 1
				continue
			}
			s.Env.Setenv(name, value)
		}
		return ret
	})
}

// Unset removes variables from the environment.
func Unset(s *Shell, args []string) int {
	cmd := &SimpleCommand{
		Use:   "unset [-v] [NAME...]",
		Short: "Unset shell variables.",
	}
	opts := cmd.Flags()
	opts.Bool('v', "treat NAME as a variable")

	return cmd.Run(s, args, func() int {
		for _, name := range opts.Args() {
			if strings.Contains(name, "=") {
				fmt.Fprintf(s.Stderr(), "unset: %s: not a valid identifier\n", name)
				return 1
			}
			s.Env.Unsetenv(name)
		}
		return 0
	})
}

func init() {
	addBuiltin("export", Export)
	addBuiltin("unset", Unset)
}
