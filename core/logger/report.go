package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
)

// ReadJSONLinesLog parses a newline delimited JSON log.
func ReadJSONLinesLog(r io.Reader, handler func(le *LogEntry)) error {
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	for decoder.More() {
		var logEntry LogEntry
		if err := decoder.Decode(&logEntry); err != nil {
			return err
		}

		handler(&logEntry)
	}
	return nil
}

// Report holds statistics about the logged events.
type Report struct {
	LogEntries     int        `json:"log_entries"`
	Sessions       StrCounter `json:"sessions"`
	InvalidEntries int        `json:"invalid_log_entries,omitempty"`

	RunCommand        RunCommandReport        `json:"run_command_report"`
	UnknownCommand    UnknownCommandReport    `json:"unknown_command_report"`
	InvalidInvocation InvalidInvocationReport `json:"invalid_invocation_report"`
	Builtin           BuiltinReport           `json:"builtin_report"`
	Job               JobReport               `json:"job_report"`
	Interrupts        int                     `json:"interrupts"`
}

// Update adds a log entry to the report.
func (r *Report) Update(le *LogEntry) {
	r.LogEntries++
	r.Sessions.Increment(le.SessionID)

	switch event := le.GetLogType().(type) {
	case *RunCommand:
		r.RunCommand.update(event)
	case *UnknownCommand:
		r.UnknownCommand.update(event)
	case *InvalidInvocation:
		r.InvalidInvocation.update(event)
	case *Builtin:
		r.Builtin.update(event)
	case *JobEvent:
		r.Job.update(event)
	case *Interrupt:
		r.Interrupts++
	default:
		r.InvalidEntries++
	}
}

type RunCommandReport struct {
	// Name of the resolved command
	ResolvedCommandPaths StrCounter `json:"resolved_command_paths"`
	// Name of the command
	CommandNames StrCounter `json:"command_names"`
	Background   int        `json:"background"`
}

func (r *RunCommandReport) update(rc *RunCommand) {
	r.ResolvedCommandPaths.Increment(rc.ResolvedCommandPath)
	if len(rc.Command) > 0 {
		r.CommandNames.Increment(rc.Command[0])
	}
	if rc.Background {
		r.Background++
	}
}

type UnknownCommandReport struct {
	CommandNames StrCounter `json:"command_names"`
	ExitStatuses StrCounter `json:"exit_statuses"`
}

func (r *UnknownCommandReport) update(uc *UnknownCommand) {
	if len(uc.Command) > 0 {
		r.CommandNames.Increment(uc.Command[0])
	}
	r.ExitStatuses.Increment(strconv.Itoa(uc.ExitStatus))
}

type InvalidInvocationReport struct {
	Invocations *PathCounter `json:"invocations"`
}

func (r *InvalidInvocationReport) update(ii *InvalidInvocation) {
	if r.Invocations == nil {
		r.Invocations = NewPathCounter("command", "error")
	}
	name := ""
	if len(ii.Command) > 0 {
		name = ii.Command[0]
	}
	r.Invocations.Increment(name, ii.Error)
}

type BuiltinReport struct {
	CommandNames StrCounter `json:"command_names"`
	Failures     int        `json:"failures"`
}

func (r *BuiltinReport) update(b *Builtin) {
	if len(b.Command) > 0 {
		r.CommandNames.Increment(b.Command[0])
	}
	if b.ExitStatus != 0 {
		r.Failures++
	}
}

type JobReport struct {
	Actions StrCounter `json:"actions"`
}

func (r *JobReport) update(j *JobEvent) {
	r.Actions.Increment(j.Action)
}

// StrCounter counts the number of strings seen.
type StrCounter struct {
	internal map[string]int
}

// Increment adds one to the given key.
func (s *StrCounter) Increment(toAdd string) {
	if s.internal == nil {
		s.internal = make(map[string]int)
	}

	s.internal[toAdd]++
}

// Get returns the count for key.
func (s *StrCounter) Get(key string) int {
	return s.internal[key]
}

// MarshalJSON implemnts custom JSON marshaler.
func (s StrCounter) MarshalJSON() ([]byte, error) {
	if s.internal == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(s.internal)
}

func NewPathCounter(cols ...string) *PathCounter {
	return &PathCounter{
		cols:     cols,
		internal: make(map[string]int),
	}
}

// PathCounter counts tuples of strings.
type PathCounter struct {
	cols     []string
	internal map[string]int
}

// Increment adds one to the given key.
func (ctr *PathCounter) Increment(toAdd ...string) {
	if len(toAdd) != len(ctr.cols) {
		panic(fmt.Sprintf("wrong number of columns to add: got %d want %d", len(toAdd), len(ctr.cols)))
	}

	ctr.internal[toKey(toAdd...)]++
}

// Get returns the count for the given tuple.
func (ctr *PathCounter) Get(vals ...string) int {
	return ctr.internal[toKey(vals...)]
}

// MarshalJSON implemnts custom JSON marshaler.
func (ctr *PathCounter) MarshalJSON() ([]byte, error) {
	type Count struct {
		Count  int               `json:"count"`
		Fields map[string]string `json:"event"`
		Path   string            `json:"-"`
	}

	out := []Count{}
	for k, v := range ctr.internal {
		count := Count{
			Count:  v,
			Path:   k,
			Fields: make(map[string]string),
		}

		splitPath := fromKey(k)
		for colNum, colVal := range ctr.cols {
			count.Fields[colVal] = splitPath[colNum]
		}

		out = append(out, count)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Path < out[j].Path
		}
		return out[i].Count > out[j].Count
	})

	return json.Marshal(out)
}

func toKey(vals ...string) string {
	key, _ := json.Marshal(vals)
	return string(key)
}

func fromKey(key string) (out []string) {
	json.Unmarshal([]byte(key), &out)
	return
}
