package executor

import (
	"io"
	"os"
	"reflect"
	"sync"
)

// lockedWriter serializes writes from concurrently running stages.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(b []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(b)
}

// SyncWriters makes stdout and stderr safe to share between every stage of
// every pipeline. Files are returned unchanged because children write to
// them directly. If both are the same writer they share a lock.
func SyncWriters(stdout, stderr io.Writer) (io.Writer, io.Writer) {
	syncedOut := syncWriter(stdout)
	if sameWriter(stdout, stderr) {
		return syncedOut, syncedOut
	}
	return syncedOut, syncWriter(stderr)
}

func syncWriter(w io.Writer) io.Writer {
	switch w.(type) {
	case nil, *os.File, *lockedWriter:
		return w
	default:
		return &lockedWriter{w: w}
	}
}

func sameWriter(a, b io.Writer) bool {
	if a == nil || b == nil {
		return false
	}
	if !reflect.TypeOf(a).Comparable() || !reflect.TypeOf(b).Comparable() {
		return false
	}
	return a == b
}

// outputs caches the synchronized form of Stdout and Stderr so output from
// background jobs and later pipelines goes through the same locks.
type outputs struct {
	mu             sync.Mutex
	srcOut, srcErr io.Writer
	stdout, stderr io.Writer
}

func (o *outputs) get(stdout, stderr io.Writer) (io.Writer, io.Writer) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.stdout == nil || !sameWriter(o.srcOut, stdout) || !sameWriter(o.srcErr, stderr) {
		o.srcOut, o.srcErr = stdout, stderr
		o.stdout, o.stderr = SyncWriters(stdout, stderr)
	}
	return o.stdout, o.stderr
}
