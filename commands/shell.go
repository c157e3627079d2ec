package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/user"
	"strconv"
	"strings"

	"github.com/abiosoft/readline"
	"github.com/fatih/color"
	"github.com/josephlewis42/psh/core/config"
	"github.com/josephlewis42/psh/core/env"
	"github.com/josephlewis42/psh/core/executor"
	"github.com/josephlewis42/psh/core/jobs"
	"github.com/josephlewis42/psh/core/logger"
	"github.com/josephlewis42/psh/core/shell"
	"github.com/spf13/afero"
)

// Options configures a new Shell.
type Options struct {
	Config *config.Configuration
	// Events receives the shell's event log, it may be nil.
	Events *logger.SessionLogger
	// Environ seeds the environment, os.Environ() if nil.
	Environ []string
	// Fs holds redirection targets, the real filesystem if nil.
	Fs afero.Fs

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

type Shell struct {
	Env      *env.Environment
	Jobs     *jobs.Registry
	Executor *executor.Executor
	Config   *config.Configuration
	Events   *logger.SessionLogger
	// Readline is only set while the shell is interactive.
	Readline *readline.Instance

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	lastRet int
	history []string

	// Set to true to quit the shell
	Quit bool
}

// NewShell creates a shell, call Init before running commands.
func NewShell(opts Options) *Shell {
	if opts.Config == nil {
		opts.Config = config.Default()
	}
	if opts.Environ == nil {
		opts.Environ = os.Environ()
	}
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}

	// Builtins, pipelines and background jobs all write to the same streams.
	opts.Stdout, opts.Stderr = executor.SyncWriters(opts.Stdout, opts.Stderr)

	environment := env.NewFrom(env.EnvList(opts.Environ))
	registry := jobs.NewRegistry()

	exec := executor.New(environment, registry)
	exec.Stdin = opts.Stdin
	exec.Stdout = opts.Stdout
	exec.Stderr = opts.Stderr
	exec.Events = opts.Events
	if opts.Fs != nil {
		exec.Fs = opts.Fs
	}

	return &Shell{
		Env:      environment,
		Jobs:     registry,
		Executor: exec,
		Config:   opts.Config,
		Events:   opts.Events,
		stdin:    opts.Stdin,
		stdout:   opts.Stdout,
		stderr:   opts.Stderr,
	}
}

// Init fills in the variables a login would normally provide.
func (s *Shell) Init() {
	if s.Env.Getenv(env.Path) == "" {
		s.Env.Setenv(env.Path, s.Config.DefaultPath)
	}

	if s.Env.Getenv(env.User) == "" {
		if u, err := user.Current(); err == nil {
			s.Env.Setenv(env.User, u.Username)
		}
	}

	if s.Env.Getenv(env.Home) == "" {
		if home, err := os.UserHomeDir(); err == nil {
			s.Env.Setenv(env.Home, home)
		}
	}

	if host, err := os.Hostname(); err == nil {
		s.Env.Setenv(env.Hostname, host)
	}

	if s.Env.Getenv(env.Prompt) == "" {
		if s.Config.ColorPrompt && isTerminal(s.stdout) {
			s.Env.Setenv(env.Prompt, colorPrompt(s.Config.Prompt))
		} else {
			s.Env.Setenv(env.Prompt, s.Config.Prompt)
		}
	}

	if wd, err := os.Getwd(); err == nil {
		s.Env.Setenv(env.PWD, wd)
	}
	s.Env.Setenv(env.UID, strconv.Itoa(os.Getuid()))
}

// colorPrompt highlights the user, host and directory escapes of prompt.
func colorPrompt(prompt string) string {
	forced := func(c *color.Color, s string) string {
		clr := *c
		clr.EnableColor()
		return clr.Sprint(s)
	}

	prompt = strings.Replace(prompt, `\u@\h`, forced(ColorBoldGreen, `\u@\h`), 1)
	prompt = strings.Replace(prompt, `\w`, forced(ColorBoldBlue, `\w`), 1)
	return prompt
}

func (s *Shell) prompt() string {
	prompt := s.Env.Getenv(env.Prompt)
	if prompt == "" {
		prompt = config.Default().Prompt
	}
	prompt = strings.ReplaceAll(prompt, `\u`, s.Env.Getenv(env.User))
	prompt = strings.ReplaceAll(prompt, `\h`, shortHostname(s.Env.Getenv(env.Hostname)))

	pwd, err := os.Getwd()
	if err != nil {
		pwd = s.Env.Getenv(env.PWD)
	}
	home := s.Env.Getenv(env.Home)
	switch {
	case home == "" || home == "/":
	case pwd == home:
		pwd = "~"
	case strings.HasPrefix(pwd, home+"/"):
		pwd = "~" + strings.TrimPrefix(pwd, home)
	}
	prompt = strings.ReplaceAll(prompt, `\w`, pwd)

	if s.Env.Getenv(env.UID) == "0" {
		prompt = strings.ReplaceAll(prompt, `\$`, "#")
	} else {
		prompt = strings.ReplaceAll(prompt, `\$`, "$")
	}

	return unescape(prompt)
}

func shortHostname(host string) string {
	if idx := strings.IndexByte(host, '.'); idx > 0 {
		return host[:idx]
	}
	return host
}

// Stdin returns the input of the command currently being run.
func (s *Shell) Stdin() io.Reader {
	return s.stdin
}

// Stdout returns the output of the command currently being run.
func (s *Shell) Stdout() io.Writer {
	return s.stdout
}

// Stderr returns the error output of the shell.
func (s *Shell) Stderr() io.Writer {
	return s.stderr
}

// LastStatus returns the exit status of the most recent command.
func (s *Shell) LastStatus() int {
	return s.lastRet
}

// History returns the lines entered so far, oldest first.
func (s *Shell) History() []string {
	return append([]string(nil), s.history...)
}

func (s *Shell) addHistory(line string) {
	s.history = append(s.history, line)
	if limit := s.Config.HistoryLimit; limit > 0 && len(s.history) > limit {
		s.history = s.history[len(s.history)-limit:]
	}
}

func (s *Shell) clearHistory() {
	s.history = nil
	if s.Readline != nil {
		s.Readline.Operation.ResetHistory()
	}
}

func (s *Shell) newReadline() (*readline.Instance, error) {
	limit := s.Config.HistoryLimit
	if limit < 0 {
		limit = 1 << 20
	}

	interactive := func() bool {
		return isTerminal(s.stdout) && isTerminal(s.stdin)
	}

	cfg := &readline.Config{
		Stdin:           readline.NewCancelableStdin(s.stdin),
		Stdout:          s.stdout,
		Stderr:          s.stderr,
		FuncIsTerminal:  interactive,
		HistoryFile:     s.Config.HistoryPath(),
		HistoryLimit:    limit,
		AutoComplete:    builtinCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	}

	if err := cfg.Init(); err != nil {
		return nil, err
	}

	return readline.NewEx(cfg)
}

// RunInteractive reads and runs lines until the input is closed or exit is
// called, returning the shell's exit status.
func (s *Shell) RunInteractive(ctx context.Context) int {
	rl, err := s.newReadline()
	if err != nil {
		fmt.Fprintf(s.stderr, "psh: %s\n", err)
		return 1
	}
	s.Readline = rl
	defer func() {
		rl.Close()
		s.Readline = nil
	}()

	for !s.Quit {
		rl.SetPrompt(s.prompt())
		line, err := rl.Readline()

		switch {
		case err == io.EOF:
			return s.lastRet // Input closed, quit.

		case err == readline.ErrInterrupt:
			// Interrupt clears line.
			continue

		case err != nil:
			log.Printf("Error readline: %v", err)
			continue

		default:
			s.RunCommand(ctx, line)
		}
	}
	return s.lastRet
}

// RunCommand runs a single line of input.
func (s *Shell) RunCommand(ctx context.Context, line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	s.addHistory(line)

	heads := shell.ParseLine(shell.Expand(line, s.Env))
	for _, head := range heads {
		if s.Quit {
			return
		}

		if builtin, ok := lookupBuiltin(head); ok {
			s.lastRet = s.runBuiltin(head, builtin)
			continue
		}

		status, err := s.Executor.RunPipeline(ctx, head)
		s.lastRet = status
		if err != nil {
			fmt.Fprintf(s.stderr, "psh: %v\n", err)
			if errors.Is(err, context.Canceled) {
				s.Quit = true
			}
			return
		}
	}
}

// lookupBuiltin returns the builtin for a pipeline consisting of a single
// stage. Builtins in longer pipelines are left to the executor.
func lookupBuiltin(head *shell.Command) (ShellBuiltin, bool) {
	if head.Next != nil {
		return nil, false
	}
	builtin, ok := AllBuiltins[head.Name]
	return builtin, ok
}

// runBuiltin runs builtin in the shell's process with the redirections of
// stage applied to its input and output.
func (s *Shell) runBuiltin(stage *shell.Command, builtin ShellBuiltin) int {
	redirects, err := executor.OpenRedirections(s.Executor.Fs, stage)
	if err != nil {
		fmt.Fprintf(s.stderr, "psh: %v\n", err)
		s.Events.Record(&logger.InvalidInvocation{Command: stage.Argv(), Error: err.Error()})
		return executor.StatusRedirectFailed
	}
	defer redirects.Close()

	prevStdin, prevStdout := s.stdin, s.stdout
	s.stdin, s.stdout = redirects.Apply(s.stdin, s.stdout)
	defer func() {
		s.stdin, s.stdout = prevStdin, prevStdout
	}()

	status := builtin.Main(s, stage.Argv())
	s.Events.Record(&logger.Builtin{Command: stage.Argv(), ExitStatus: status})
	return status
}
