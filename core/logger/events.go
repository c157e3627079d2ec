package logger

// LogEntry is a single line of the event log. Exactly one of the event
// fields is set.
type LogEntry struct {
	TimestampMicros int64  `json:"timestamp_micros"`
	SessionID       string `json:"session_id,omitempty"`

	RunCommand        *RunCommand        `json:"run_command,omitempty"`
	UnknownCommand    *UnknownCommand    `json:"unknown_command,omitempty"`
	InvalidInvocation *InvalidInvocation `json:"invalid_invocation,omitempty"`
	Builtin           *Builtin           `json:"builtin,omitempty"`
	Job               *JobEvent          `json:"job,omitempty"`
	Interrupt         *Interrupt         `json:"interrupt,omitempty"`
}

// LogType is implemented by every event that can be recorded.
type LogType interface {
	isLogType()
}

// GetLogType returns the event held by the entry, or nil.
func (le *LogEntry) GetLogType() LogType {
	switch {
	case le.RunCommand != nil:
		return le.RunCommand
	case le.UnknownCommand != nil:
		return le.UnknownCommand
	case le.InvalidInvocation != nil:
		return le.InvalidInvocation
	case le.Builtin != nil:
		return le.Builtin
	case le.Job != nil:
		return le.Job
	case le.Interrupt != nil:
		return le.Interrupt
	default:
		return nil
	}
}

func (le *LogEntry) setLogType(event LogType) {
	switch event := event.(type) {
	case *RunCommand:
		le.RunCommand = event
	case *UnknownCommand:
		le.UnknownCommand = event
	case *InvalidInvocation:
		le.InvalidInvocation = event
	case *Builtin:
		le.Builtin = event
	case *JobEvent:
		le.Job = event
	case *Interrupt:
		le.Interrupt = event
	}
}

// RunCommand is logged for every pipeline stage that was started.
type RunCommand struct {
	Command             []string `json:"command"`
	ResolvedCommandPath string   `json:"resolved_command_path"`
	Background          bool     `json:"background,omitempty"`
	Pid                 int      `json:"pid"`
}

// UnknownCommand is logged when a stage couldn't be resolved to a program.
type UnknownCommand struct {
	Command []string `json:"command"`
	// ExitStatus is 127 for missing programs and 126 for ones that can't be
	// executed.
	ExitStatus int    `json:"exit_status"`
	Error      string `json:"error,omitempty"`
}

// InvalidInvocation is logged when a command was called with bad arguments
// or a redirection couldn't be opened.
type InvalidInvocation struct {
	Command []string `json:"command"`
	Error   string   `json:"error"`
}

// Builtin is logged when the shell handles a command itself.
type Builtin struct {
	Command    []string `json:"command"`
	ExitStatus int      `json:"exit_status"`
}

// JobEvent tracks the lifecycle of a background job.
type JobEvent struct {
	JobID  uint32 `json:"job_id"`
	Pid    int    `json:"pid"`
	Action string `json:"action"`
}

const (
	JobStarted      = "started"
	JobForegrounded = "foregrounded"
)

// Interrupt is logged when the shell receives Ctrl-C.
type Interrupt struct{}

func (*RunCommand) isLogType()        {}
func (*UnknownCommand) isLogType()    {}
func (*InvalidInvocation) isLogType() {}
func (*Builtin) isLogType()           {}
func (*JobEvent) isLogType()          {}
func (*Interrupt) isLogType()         {}
