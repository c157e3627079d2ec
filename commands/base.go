package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/abiosoft/readline"
	"github.com/fatih/color"
	"github.com/josephlewis42/psh/core/logger"
	getopt "github.com/pborman/getopt/v2"
)

type SimpleCommand struct {
	// Use holds a one line usage string
	Use string
	// Short holds a sone line description of the command.
	Short string
	// ShowHelp sets whether help is displayed or not.
	// If this is non-nil when Run() is called, then the default help flag isn't
	// added.
	ShowHelp *bool
	// NeverBail skips interacting with stdout/stderr on failure and
	// always runs the callback.
	NeverBail bool

	flags *getopt.Set
}

// Flags gets the command's flag set.
func (s *SimpleCommand) Flags() *getopt.Set {
	if s.flags == nil {
		s.flags = getopt.New()
	}

	return s.flags
}

// PrintHelp writes help for the command to the given writer.
func (s *SimpleCommand) PrintHelp(w io.Writer) {
	fmt.Fprint(w, "usage: ")
	fmt.Fprintln(w, s.Use)
	fmt.Fprintln(w, s.Short)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	s.Flags().PrintOptions(w)
}

// Run parses args, if flag parsing was succcessful call the callback.
func (s *SimpleCommand) Run(sh *Shell, args []string, callback func() int) int {
	opts := s.Flags()

	// Add help flag if not overridden.
	if s.ShowHelp == nil {
		s.ShowHelp = opts.BoolLong("help", 'h', "show this help and exit")
	}

	err := opts.Getopt(args, nil)
	if err != nil {
		sh.Events.Record(&logger.InvalidInvocation{Command: args, Error: err.Error()})
	}

	if err != nil && !s.NeverBail {
		fmt.Fprintf(sh.Stderr(), "error: %s\n\n", err)

		s.PrintHelp(sh.Stdout())
		return 1
	}

	if *s.ShowHelp {
		s.PrintHelp(sh.Stdout())
		return 0
	}

	return callback()
}

const (
	colorAlways = "always"
	colorAuto   = "auto"
	colorNever  = "never"
)

var (
	ColorBoldBlue  = color.New(color.FgBlue, color.Bold)
	ColorBoldGreen = color.New(color.FgGreen, color.Bold)
	ColorBoldRed   = color.New(color.FgRed, color.Bold)
)

type ColorPrinter struct {
	value *string
	w     io.Writer
}

// Init sets up the flag and the writer used to determine the color output.
func (c *ColorPrinter) Init(flags *getopt.Set, w io.Writer) {
	c.w = w
	c.value = flags.EnumLong(
		"color",
		rune(0), // No short flag.
		[]string{colorAlways, colorAuto, colorNever},
		colorAuto,
		"colorize the output (always|auto|never)")
}

func (c *ColorPrinter) ShouldColor() bool {
	switch {
	case c.value == nil || *c.value == colorNever:
		return false
	case *c.value == colorAlways:
		return true
	default:
		return isTerminal(c.w)
	}
}

func (c *ColorPrinter) Sprintf(clr *color.Color, format string, a ...interface{}) string {
	if !c.ShouldColor() {
		return fmt.Sprintf(format, a...)
	}

	// The package level setting reflects os.Stdout, the flag wins here.
	forced := *clr
	forced.EnableColor()
	return forced.Sprintf(format, a...)
}

// isTerminal reports whether stream is attached to a terminal.
func isTerminal(stream interface{}) bool {
	f, ok := stream.(*os.File)
	if !ok {
		return false
	}
	return readline.IsTerminal(int(f.Fd()))
}
