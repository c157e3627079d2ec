package commands

import (
	"fmt"
	"os"
)

// Pwd prints the shell's working directory.
func Pwd(s *Shell, args []string) int {
	cmd := &SimpleCommand{
		Use:   "pwd",
		Short: "Print the name of the current working directory.",
	}

	return cmd.Run(s, args, func() int {
		wd, err := os.Getwd()
		if err != nil {
			fmt.Fprintf(s.Stderr(), "pwd: %v\n", err)
			return 1
		}
		fmt.Fprintln(s.Stdout(), wd)
		return 0
	})
}

func init() {
	addBuiltin("pwd", Pwd)
}
