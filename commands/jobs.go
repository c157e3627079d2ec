package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/josephlewis42/psh/core/jobs"
	"github.com/josephlewis42/psh/core/logger"
)

// Jobs lists the background jobs started by the shell.
func Jobs(s *Shell, args []string) int {
	cmd := &SimpleCommand{
		Use:   "jobs [--color=auto]",
		Short: "Display status of jobs.",
	}
	var printer ColorPrinter
	printer.Init(cmd.Flags(), s.Stdout())

	return cmd.Run(s, args, func() int {
		for _, job := range s.Jobs.List() {
			state := job.State.String()
			if job.State == jobs.Running {
				state = printer.Sprintf(ColorBoldGreen, "%s", state)
			} else {
				state = printer.Sprintf(ColorBoldBlue, "%s", state)
			}
			fmt.Fprintf(s.Stdout(), "[%d] %s PID %d  %s\n", job.ID, state, job.Pid, job.Command)
		}
		return 0
	})
}

// Fg waits for a background job to finish and returns its status.
func Fg(s *Shell, args []string) int {
	cmd := &SimpleCommand{
		Use:   "fg JOB_ID",
		Short: "Move a job to the foreground.",
	}

	return cmd.Run(s, args, func() int {
		rest := cmd.Flags().Args()
		if len(rest) == 0 {
			fmt.Fprintln(s.Stderr(), "fg: missing job ID")
			return 1
		}

		id, err := strconv.ParseUint(strings.TrimPrefix(rest[0], "%"), 10, 32)
		if err != nil {
			fmt.Fprintln(s.Stderr(), "fg: invalid job ID")
			return 1
		}

		job, ok := s.Jobs.Get(uint32(id))
		if !ok {
			fmt.Fprintf(s.Stderr(), "fg: job %d not found\n", id)
			return 1
		}

		fmt.Fprintf(s.Stdout(), "Bringing job [%d] to foreground\n", job.ID)
		s.Events.Record(&logger.JobEvent{JobID: job.ID, Pid: job.Pid, Action: logger.JobForegrounded})

		status, err := s.Jobs.Foreground(context.Background(), job.ID)
		if err != nil {
			fmt.Fprintf(s.Stderr(), "fg: %v\n", err)
			return 1
		}
		return status
	})
}

func init() {
	addBuiltin("jobs", Jobs)
	addBuiltin("fg", Fg)
}
