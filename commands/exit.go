package commands

import (
	"fmt"
	"strconv"
)

// Exit quits the shell with the given status, or the status of the last
// command.
func Exit(s *Shell, args []string) int {
	cmd := &SimpleCommand{
		Use:   "exit [N]",
		Short: "Exit the shell with a status of N, or the status of the last command.",
	}

	return cmd.Run(s, args, func() int {
		status := s.lastRet

		switch rest := cmd.Flags().Args(); len(rest) {
		case 0:
		case 1:
			n, err := strconv.Atoi(rest[0])
			if err != nil {
				fmt.Fprintf(s.Stderr(), "exit: %s: numeric argument required\n", rest[0])
				status = 2
				break
			}
			status = n & 0xff
		default:
			fmt.Fprintln(s.Stderr(), "exit: too many arguments")
			return 1
		}

		s.Quit = true
		return status
	})
}

func init() {
	addBuiltin("exit", Exit)
}
