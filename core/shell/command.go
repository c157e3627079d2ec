package shell

import (
	"fmt"
	"strings"
)

// Operator records what ended the scan of a stage.
type Operator int

const (
	OpNone Operator = iota
	OpPipe
	OpRedirectIn
	OpRedirectOut
	OpAppendOut
	OpBackground
)

var operatorNames = map[Operator]string{
	OpNone:        "None",
	OpPipe:        "Pipe",
	OpRedirectIn:  "RedirectIn",
	OpRedirectOut: "RedirectOut",
	OpAppendOut:   "AppendOut",
	OpBackground:  "Background",
}

func (o Operator) String() string {
	if name, ok := operatorNames[o]; ok {
		return name
	}
	return fmt.Sprintf("Operator(%d)", int(o))
}

// Command is a single stage of a pipeline.
type Command struct {
	// Name of the program or builtin, empty if the stage is ill-formed.
	Name string
	// Args holds the arguments, excluding Name.
	Args []string
	// Operator that terminated the stage.
	Operator Operator

	// InputRedirection is the path stdin is read from, if non-empty.
	InputRedirection string
	// OutputRedirection is the path stdout is written to, if non-empty.
	OutputRedirection string
	// AppendOutput selects append rather than truncate for OutputRedirection.
	AppendOutput bool

	// Background is set on the last stage of a pipeline ended by &.
	Background bool

	// Next is the following stage when Operator is OpPipe.
	Next *Command
}

// IsEmpty returns true if the stage has no program to run.
func (c *Command) IsEmpty() bool {
	return c == nil || c.Name == ""
}

// Argv returns the name followed by the arguments.
func (c *Command) Argv() []string {
	return append([]string{c.Name}, c.Args...)
}

// Stages flattens the chain starting at c into a slice, c first.
func (c *Command) Stages() []*Command {
	var out []*Command
	for stage := c; stage != nil; stage = stage.Next {
		out = append(out, stage)
	}
	return out
}

// Last returns the final stage of the chain.
func (c *Command) Last() *Command {
	stages := c.Stages()
	return stages[len(stages)-1]
}

// IsBackground reports whether the pipeline headed by c was ended with &.
func (c *Command) IsBackground() bool {
	return c.Last().Background
}

// String renders the stage and any stages after it as shell text.
func (c *Command) String() string {
	var sb strings.Builder
	for i, stage := range c.Stages() {
		if i > 0 {
			sb.WriteString(" | ")
		}
		sb.WriteString(strings.Join(stage.Argv(), " "))

		if stage.InputRedirection != "" {
			fmt.Fprintf(&sb, " < %s", stage.InputRedirection)
		}
		if stage.OutputRedirection != "" {
			if stage.AppendOutput {
				fmt.Fprintf(&sb, " >> %s", stage.OutputRedirection)
			} else {
				fmt.Fprintf(&sb, " > %s", stage.OutputRedirection)
			}
		}
		if stage.Background {
			sb.WriteString(" &")
		}
	}
	return sb.String()
}
