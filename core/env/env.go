// Package env holds the shell's variables.
package env

import (
	"fmt"
	"sort"
	"strings"
)

const (
	Home     = "HOME"
	PWD      = "PWD"
	Path     = "PATH"
	Prompt   = "PS1"
	Hostname = "HOSTNAME"
	User     = "USER"
	UID      = "UID"
)

// EnvironFetcher is anything that can list variables in KEY=VALUE form.
type EnvironFetcher interface {
	Environ() []string
}

// EnvList adapts a KEY=VALUE slice, such as os.Environ(), to EnvironFetcher.
type EnvList []string

// Environ implements EnvironFetcher.Environ.
func (e EnvList) Environ() []string {
	return e
}

// Environment is an in-memory variable store. It's owned by the interactive
// loop and handed to expansion and process creation explicitly, it never
// touches the process environment.
type Environment struct {
	vars map[string]string
}

// New creates an empty environment.
func New() *Environment {
	return &Environment{vars: make(map[string]string)}
}

// NewFrom creates an environment holding a copy of the variables in src.
func NewFrom(src EnvironFetcher) *Environment {
	out := New()
	out.Copy(src)
	return out
}

// Copy sets all the variables from src, overwriting existing values.
func (e *Environment) Copy(src EnvironFetcher) {
	for _, kv := range src.Environ() {
		key, value := splitKV(kv)
		e.Setenv(key, value)
	}
}

func splitKV(kv string) (key, value string) {
	split := strings.SplitN(kv, "=", 2)
	key = split[0]
	if len(split) > 1 {
		value = split[1]
	}
	return
}

// ParseAssignment splits NAME=VALUE, ok is false if there's no = or the name
// is empty.
func ParseAssignment(s string) (name, value string, ok bool) {
	if !strings.Contains(s, "=") {
		return "", "", false
	}
	name, value = splitKV(s)
	return name, value, name != ""
}

// Setenv sets the value of key.
func (e *Environment) Setenv(key, value string) {
	if e.vars == nil {
		e.vars = make(map[string]string)
	}
	e.vars[key] = value
}

// Unsetenv removes key.
func (e *Environment) Unsetenv(key string) {
	delete(e.vars, key)
}

// LookupEnv returns the value of key and whether it was set.
func (e *Environment) LookupEnv(key string) (string, bool) {
	val, ok := e.vars[key]
	return val, ok
}

// Getenv returns the value of key or the empty string.
func (e *Environment) Getenv(key string) string {
	val, _ := e.LookupEnv(key)
	return val
}

// Len returns the number of variables set.
func (e *Environment) Len() int {
	return len(e.vars)
}

// Keys returns the variable names in sorted order.
func (e *Environment) Keys() []string {
	keys := make([]string, 0, len(e.vars))
	for k := range e.vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Environ returns every variable as KEY=VALUE sorted by key. It's the
// complete environment block given to child processes, so it's never nil.
func (e *Environment) Environ() []string {
	env := make([]string, 0, len(e.vars))
	for _, k := range e.Keys() {
		env = append(env, fmt.Sprintf("%s=%s", k, e.vars[k]))
	}
	return env
}

// UserHomeDir returns $HOME.
func (e *Environment) UserHomeDir() string {
	return e.Getenv(Home)
}

// SearchPath returns the directories in $PATH.
func (e *Environment) SearchPath() []string {
	path := e.Getenv(Path)
	if path == "" {
		return nil
	}
	return strings.Split(path, ":")
}
