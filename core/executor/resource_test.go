package executor

import (
	"context"
	"os"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/josephlewis42/psh/core/logger"
	"github.com/josephlewis42/psh/core/shell"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_resourceFailureStopsStartedStages(t *testing.T) {
	requirePrograms(t, "sleep")

	open, err := os.ReadDir("/proc/self/fd")
	if err != nil {
		t.Skipf("can't count open descriptors: %v", err)
	}

	var original syscall.Rlimit
	require.NoError(t, syscall.Getrlimit(syscall.RLIMIT_NOFILE, &original))

	te := newTestExecutor(t)
	var pids []int
	te.Events = (&logger.Logger{
		Record: func(le *logger.LogEntry) error {
			if le.RunCommand != nil {
				pids = append(pids, le.RunCommand.Pid)
			}
			return nil
		},
	}).Sessionless()

	// Every started stage holds on to descriptors for its copied stderr, so a
	// long pipeline runs out of them part way through.
	heads := shell.ParseLine(strings.TrimSuffix(strings.Repeat("sleep 30 | ", 64), " | "))

	lowered := original
	lowered.Cur = uint64(len(open) + 16)
	require.NoError(t, syscall.Setrlimit(syscall.RLIMIT_NOFILE, &lowered))
	start := time.Now()
	status, runErr := te.Run(context.Background(), heads)
	require.NoError(t, syscall.Setrlimit(syscall.RLIMIT_NOFILE, &original))

	assert.ErrorIs(t, runErr, ErrResource)
	assert.Equal(t, 1, status)
	assert.Less(t, time.Since(start), 20*time.Second, "started stages weren't killed")
	assert.NotEmpty(t, pids)
	assert.Less(t, len(pids), 64)
	assert.Equal(t, 0, te.Jobs.Len())

	for _, pid := range pids {
		// Killed and reaped, so the pid no longer exists.
		assert.ErrorIs(t, syscall.Kill(pid, 0), syscall.ESRCH, "pid %d", pid)
	}
}
