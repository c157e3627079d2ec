package executor

import (
	"fmt"
	"io"
	"os"

	"github.com/josephlewis42/psh/core/shell"
	"github.com/spf13/afero"
)

const (
	truncateFlags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	appendFlags   = os.O_WRONLY | os.O_CREATE | os.O_APPEND

	// RedirectPerm is the mode output files are created with.
	RedirectPerm os.FileMode = 0644
)

// RedirectError is returned when a redirection target can't be opened.
type RedirectError struct {
	Path string
	Err  error
}

func (e *RedirectError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *RedirectError) Unwrap() error {
	return e.Err
}

// Redirections holds the files opened for a stage's < and > operators.
type Redirections struct {
	Stdin  afero.File
	Stdout afero.File
}

// OpenRedirections opens the redirection targets of stage on fs. Nothing is
// left open if an error is returned.
func OpenRedirections(fs afero.Fs, stage *shell.Command) (*Redirections, error) {
	r := &Redirections{}

	if path := stage.InputRedirection; path != "" {
		fd, err := fs.Open(path)
		if err != nil {
			return nil, &RedirectError{Path: path, Err: unwrapPathError(err)}
		}
		r.Stdin = fd
	}

	if path := stage.OutputRedirection; path != "" {
		flags := truncateFlags
		if stage.AppendOutput {
			flags = appendFlags
		}

		fd, err := fs.OpenFile(path, flags, RedirectPerm)
		if err != nil {
			r.Close()
			return nil, &RedirectError{Path: path, Err: unwrapPathError(err)}
		}
		r.Stdout = fd
	}

	return r, nil
}

// Apply replaces stdin and stdout with any opened redirections.
func (r *Redirections) Apply(stdin io.Reader, stdout io.Writer) (io.Reader, io.Writer) {
	if r.Stdin != nil {
		stdin = r.Stdin
	}
	if r.Stdout != nil {
		stdout = r.Stdout
	}
	return stdin, stdout
}

// osFiles returns the files backed by a real descriptor. A started child
// holds its own copy of those so the parent can close them immediately.
func (r *Redirections) osFiles() (out []io.Closer) {
	for _, f := range []afero.File{r.Stdin, r.Stdout} {
		if _, ok := f.(*os.File); ok {
			out = append(out, f)
		}
	}
	return
}

// virtualFiles returns the files that os/exec has to copy through a pipe,
// they must stay open until the process is waited on.
func (r *Redirections) virtualFiles() (out []io.Closer) {
	for _, f := range []afero.File{r.Stdin, r.Stdout} {
		if f == nil {
			continue
		}
		if _, ok := f.(*os.File); !ok {
			out = append(out, f)
		}
	}
	return
}

// Close closes every opened file.
func (r *Redirections) Close() error {
	var lastErr error
	for _, f := range []afero.File{r.Stdin, r.Stdout} {
		if f == nil {
			continue
		}
		if err := f.Close(); err != nil {
			lastErr = err
		}
	}
	return lastErr
}

func unwrapPathError(err error) error {
	if pathErr, ok := err.(*os.PathError); ok {
		return pathErr.Err
	}
	return err
}
