package commands

import (
	"fmt"
)

// Assumes VT100 compatibility.
const clearScreen = "\033[2J\033[1;1H"

// Clear erases the terminal and moves the cursor to the top left.
func Clear(s *Shell, args []string) int {
	cmd := &SimpleCommand{
		Use:   "clear",
		Short: "Clear the terminal screen.",
	}

	return cmd.Run(s, args, func() int {
		fmt.Fprint(s.Stdout(), clearScreen)
		return 0
	})
}

func init() {
	addBuiltin("clear", Clear)
}
