// Package executor turns parsed pipelines into operating system processes.
package executor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"syscall"

	"github.com/josephlewis42/psh/core/env"
	"github.com/josephlewis42/psh/core/jobs"
	"github.com/josephlewis42/psh/core/logger"
	"github.com/josephlewis42/psh/core/shell"
	"github.com/spf13/afero"
)

// ErrResource wraps failures to create pipes or processes. They abort the
// rest of the line, unlike failures of a single stage.
var ErrResource = errors.New("resource failure")

// Exit statuses for stages that never got to run.
const (
	StatusRedirectFailed = 1
	StatusSyntaxError    = 2
	StatusNotExecutable  = 126
	StatusNotFound       = 127
)

// Executor runs pipelines.
type Executor struct {
	// Env is the complete environment given to every child.
	Env *env.Environment
	// Jobs receives pipelines ended with &.
	Jobs *jobs.Registry
	// Fs is used to open redirection targets.
	Fs afero.Fs
	// Events records started and failed commands, it may be nil.
	Events *logger.SessionLogger

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	out outputs
}

// streams are the outputs shared by every stage of a pipeline.
type streams struct {
	stdout io.Writer
	stderr io.Writer
}

// New creates an executor attached to the process's standard streams and
// the real filesystem.
func New(environment *env.Environment, registry *jobs.Registry) *Executor {
	return &Executor{
		Env:    environment,
		Jobs:   registry,
		Fs:     afero.NewOsFs(),
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// process is a stage that was started, or failed before it could be.
type process struct {
	stage *shell.Command
	cmd   *exec.Cmd
	// status of a stage that never started.
	status int
	// closeAfterWait holds redirections os/exec copies on our behalf.
	closeAfterWait []io.Closer
}

func (p *process) started() bool {
	return p.cmd != nil
}

func (p *process) pid() int {
	if !p.started() {
		return 0
	}
	return p.cmd.Process.Pid
}

func (p *process) wait() int {
	if !p.started() {
		return p.status
	}
	err := p.cmd.Wait()
	closeAll(p.closeAfterWait)
	return exitStatus(err)
}

func (p *process) kill() {
	if p.started() {
		_ = p.cmd.Process.Kill()
	}
}

// exitStatus converts the result of Wait into a shell exit status.
func exitStatus(err error) int {
	if err == nil {
		return 0
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
			return 128 + int(ws.Signal())
		}
		return exitErr.ExitCode()
	}
	return 1
}

func waitAll(procs []*process) int {
	status := 0
	for _, p := range procs {
		status = p.wait()
	}
	return status
}

// Run executes each pipeline in order and returns the exit status of the
// last one. Backgrounded pipelines count as succeeding.
//
// The returned error is only non-nil for resource failures, in which case
// the remaining pipelines are skipped.
func (e *Executor) Run(ctx context.Context, heads []*shell.Command) (int, error) {
	status := 0
	for _, head := range heads {
		var err error
		status, err = e.RunPipeline(ctx, head)
		if err != nil {
			return status, err
		}
	}
	return status, nil
}

// RunPipeline starts every stage of the pipeline headed by head, left to
// right, with stdout of each stage connected to stdin of the next.
//
// A foreground pipeline is waited on and its status is the status of the
// last stage. A background pipeline is registered as a single job led by
// its last stage and RunPipeline returns immediately.
func (e *Executor) RunPipeline(ctx context.Context, head *shell.Command) (int, error) {
	var out streams
	out.stdout, out.stderr = e.out.get(e.Stdout, e.Stderr)

	stages := head.Stages()
	for _, stage := range stages {
		if stage.IsEmpty() {
			fmt.Fprintln(out.stderr, "psh: syntax error near unexpected token `|'")
			return StatusSyntaxError, nil
		}
	}

	background := head.IsBackground()
	procs, err := e.startAll(ctx, stages, out, background)
	if err != nil {
		// Don't leave half a pipeline running untracked.
		for _, p := range procs {
			p.kill()
		}
		waitAll(procs)
		return 1, err
	}

	if !background {
		return waitAll(procs), nil
	}

	leader := procs[len(procs)-1]
	if !leader.started() {
		// Nothing worth tracking, the failure was already reported.
		go waitAll(procs)
		return leader.status, nil
	}

	id := e.Jobs.Add(leader.pid(), head.String(), func() int {
		return waitAll(procs)
	})
	fmt.Fprintf(out.stdout, "[%d] %d\n", id, leader.pid())
	e.Events.Record(&logger.JobEvent{JobID: id, Pid: leader.pid(), Action: logger.JobStarted})

	return 0, nil
}

// startAll creates the pipes and processes for stages. On error, the
// processes started so far are returned so they can be cleaned up.
func (e *Executor) startAll(ctx context.Context, stages []*shell.Command, out streams, background bool) ([]*process, error) {
	var procs []*process

	// prevRead is the read end of the pipe feeding the current stage.
	var prevRead *os.File
	for i, stage := range stages {
		if err := ctx.Err(); err != nil {
			closeFile(prevRead)
			return procs, err
		}

		var stdin io.Reader = e.Stdin
		if prevRead != nil {
			stdin = prevRead
		}

		var stdout io.Writer = out.stdout
		var nextRead, write *os.File
		if i < len(stages)-1 {
			var err error
			nextRead, write, err = os.Pipe()
			if err != nil {
				closeFile(prevRead)
				return procs, fmt.Errorf("%w: creating pipe: %w", ErrResource, err)
			}
			stdout = write
		}

		proc, err := e.start(stage, stdin, stdout, out.stderr, background)

		// The child has its own copies of both ends now.
		closeFile(write)
		closeFile(prevRead)
		prevRead = nextRead

		if err != nil {
			closeFile(prevRead)
			return procs, err
		}
		procs = append(procs, proc)
	}

	return procs, nil
}

// start opens redirections, resolves and starts a single stage. Problems
// that belong to the stage are reported on stderr and recorded in the
// returned process's status; only resource failures produce an error.
func (e *Executor) start(stage *shell.Command, stdin io.Reader, stdout, stderr io.Writer, background bool) (*process, error) {
	proc := &process{stage: stage}

	redirects, err := OpenRedirections(e.fs(), stage)
	if err != nil {
		fmt.Fprintf(stderr, "psh: %v\n", err)
		e.Events.Record(&logger.InvalidInvocation{Command: stage.Argv(), Error: err.Error()})
		proc.status = StatusRedirectFailed
		return proc, nil
	}
	stdin, stdout = redirects.Apply(stdin, stdout)

	path, err := LookPath(e.Env, stage.Name)
	if err != nil {
		redirects.Close()
		proc.status = e.reportUnrunnable(stderr, stage, err)
		return proc, nil
	}

	cmd := &exec.Cmd{
		Path:   path,
		Args:   stage.Argv(),
		Env:    e.Env.Environ(),
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	if err := cmd.Start(); err != nil {
		redirects.Close()
		if isExecFailure(err) {
			proc.status = e.reportUnrunnable(stderr, stage, err)
			return proc, nil
		}
		return proc, fmt.Errorf("%w: starting %s: %w", ErrResource, stage.Name, err)
	}

	closeAll(redirects.osFiles())
	proc.closeAfterWait = redirects.virtualFiles()
	proc.cmd = cmd

	e.Events.Record(&logger.RunCommand{
		Command:             stage.Argv(),
		ResolvedCommandPath: path,
		Background:          background,
		Pid:                 cmd.Process.Pid,
	})

	return proc, nil
}

// reportUnrunnable prints the diagnostic for a program that couldn't be
// executed and returns the stage's exit status.
func (e *Executor) reportUnrunnable(stderr io.Writer, stage *shell.Command, err error) int {
	status := StatusNotExecutable
	msg := "permission denied"
	if errors.Is(err, ErrNotFound) {
		status = StatusNotFound
		msg = "command not found"
	}

	fmt.Fprintf(stderr, "psh: %s: %s\n", stage.Name, msg)
	e.Events.Record(&logger.UnknownCommand{
		Command:    stage.Argv(),
		ExitStatus: status,
		Error:      err.Error(),
	})
	return status
}

func (e *Executor) fs() afero.Fs {
	if e.Fs == nil {
		return afero.NewOsFs()
	}
	return e.Fs
}

// isExecFailure reports whether a failed Start was caused by the program
// itself rather than a lack of resources.
func isExecFailure(err error) bool {
	return errors.Is(err, fs.ErrPermission) ||
		errors.Is(err, fs.ErrNotExist) ||
		errors.Is(err, syscall.ENOEXEC) ||
		errors.Is(err, syscall.EISDIR)
}

func closeFile(f *os.File) {
	if f != nil {
		f.Close()
	}
}

func closeAll(closers []io.Closer) {
	for _, c := range closers {
		c.Close()
	}
}
