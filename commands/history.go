package commands

import (
	"fmt"
)

// History lists or clears the lines entered in this session.
func History(s *Shell, args []string) int {
	cmd := &SimpleCommand{
		Use:   "history [-c]",
		Short: "Display the history list with line numbers.",
	}
	clear := cmd.Flags().Bool('c', "clear the history by deleting all entries")

	return cmd.Run(s, args, func() int {
		if *clear {
			s.clearHistory()
			return 0
		}

		for i, line := range s.history {
			fmt.Fprintf(s.Stdout(), "% 5d  %s\n", i+1, line)
		}
		return 0
	})
}

func init() {
	addBuiltin("history", History)
}
