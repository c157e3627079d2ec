package executor

import (
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/josephlewis42/psh/core/env"
)

// ErrNotFound is the error resulting if a path search failed to find an executable file.
var ErrNotFound = exec.ErrNotFound

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0111 != 0 {
		return nil
	}
	return fs.ErrPermission
}

// LookPath searches for an executable named file in the directories named by
// the PATH variable of environment. If file contains a slash, it is tried
// directly and the PATH is not consulted. The result may be an absolute path
// or a path relative to the current directory.
//
// A file that exists but can't be executed is reported as fs.ErrPermission,
// anything else that can't be found as ErrNotFound.
func LookPath(environment *env.Environment, file string) (string, error) {
	if strings.Contains(file, "/") {
		err := findExecutable(file)
		switch {
		case err == nil:
			return file, nil
		case os.IsNotExist(err):
			return "", ErrNotFound
		default:
			return "", err
		}
	}

	var permErr error
	for _, dir := range environment.SearchPath() {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		path := filepath.Join(dir, file)
		if !strings.Contains(path, "/") {
			path = "./" + path
		}
		err := findExecutable(path)
		if err == nil {
			return path, nil
		}
		if permErr == nil && os.IsPermission(err) {
			permErr = err
		}
	}
	if permErr != nil {
		return "", permErr
	}
	return "", ErrNotFound
}
