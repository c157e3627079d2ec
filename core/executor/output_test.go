package executor

import (
	"bytes"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSyncWriters(t *testing.T) {
	t.Run("files are unchanged", func(t *testing.T) {
		stdout, stderr := SyncWriters(os.Stdout, os.Stderr)
		assert.Equal(t, os.Stdout, stdout)
		assert.Equal(t, os.Stderr, stderr)
	})

	t.Run("shared writer shares a lock", func(t *testing.T) {
		buf := &bytes.Buffer{}
		stdout, stderr := SyncWriters(buf, buf)
		assert.Same(t, stdout, stderr)
	})

	t.Run("already synchronized", func(t *testing.T) {
		stdout, _ := SyncWriters(&bytes.Buffer{}, nil)
		again, _ := SyncWriters(stdout, nil)
		assert.Same(t, stdout, again)
	})

	t.Run("concurrent writes", func(t *testing.T) {
		buf := &bytes.Buffer{}
		stdout, stderr := SyncWriters(buf, buf)

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			w := stdout
			if i%2 == 0 {
				w = stderr
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 100; j++ {
					w.Write([]byte("x\n"))
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, strings.Repeat("x\n", 800), buf.String())
	})
}

func TestRun_sharedOutput(t *testing.T) {
	requirePrograms(t, "printf", "cat")
	te := newTestExecutor(t)
	// One unsynchronized writer for both streams, read only once every line
	// has finished.
	out := &bytes.Buffer{}
	te.Stdout = out
	te.Stderr = out

	for _, line := range []string{
		`printf one\n | cat`,
		"psh-nope",
		`printf two\n | cat | cat`,
		"psh-nope arg | cat",
		`printf three\n`,
	} {
		te.run(t, line)
	}

	assert.Equal(t, "one\n"+
		"psh: psh-nope: command not found\n"+
		"two\n"+
		"psh: psh-nope: command not found\n"+
		"three\n", out.String())
}
