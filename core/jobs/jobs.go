// Package jobs tracks pipelines running in the background.
package jobs

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrNoSuchJob is returned when a job ID isn't in the registry.
var ErrNoSuchJob = errors.New("no such job")

// State is the lifecycle state of a job.
type State int

const (
	Running State = iota
	Done
)

func (s State) String() string {
	switch s {
	case Running:
		return "Running"
	case Done:
		return "Done"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Job is a snapshot of a registered background pipeline.
type Job struct {
	ID uint32
	// Pid of the leader, the last stage of the pipeline.
	Pid int
	// Command is the text of the pipeline.
	Command string
	State   State
	// ExitStatus is only meaningful once State is Done.
	ExitStatus int
}

// WaitFunc blocks until every process of a job has exited and returns the
// job's exit status.
type WaitFunc func() int

type entry struct {
	job  Job
	done chan struct{}
}

// Registry maps small integer handles to background jobs. IDs start at 1 and
// are never reused.
//
// Each job is reaped as soon as its processes exit, but it stays listed
// until it's brought to the foreground.
type Registry struct {
	mu     sync.Mutex
	lastID uint32
	jobs   map[uint32]*entry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{jobs: make(map[uint32]*entry)}
}

// Add records a job led by pid and returns its ID. wait is called on a new
// goroutine and must block until the job has finished.
func (r *Registry) Add(pid int, command string, wait WaitFunc) uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.jobs == nil {
		r.jobs = make(map[uint32]*entry)
	}

	r.lastID++
	e := &entry{
		job: Job{
			ID:      r.lastID,
			Pid:     pid,
			Command: command,
			State:   Running,
		},
		done: make(chan struct{}),
	}
	r.jobs[e.job.ID] = e

	go r.reap(e, wait)

	return e.job.ID
}

func (r *Registry) reap(e *entry, wait WaitFunc) {
	status := wait()

	r.mu.Lock()
	e.job.State = Done
	e.job.ExitStatus = status
	r.mu.Unlock()

	close(e.done)
}

// Get returns the job with the given ID.
func (r *Registry) Get(id uint32) (Job, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.jobs[id]
	if !ok {
		return Job{}, false
	}
	return e.job, true
}

// Remove forgets a job. Its processes are still reaped.
func (r *Registry) Remove(id uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.jobs, id)
}

// List returns all tracked jobs ordered by ID.
func (r *Registry) List() []Job {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Job, 0, len(r.jobs))
	for _, e := range r.jobs {
		out = append(out, e.job)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out
}

// Len returns the number of tracked jobs.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.jobs)
}

// Foreground blocks until the job has finished, removes it and returns its
// exit status. If ctx is cancelled first the job is left in the registry.
func (r *Registry) Foreground(ctx context.Context, id uint32) (int, error) {
	r.mu.Lock()
	e, ok := r.jobs[id]
	r.mu.Unlock()

	if !ok {
		return 0, fmt.Errorf("job %d: %w", id, ErrNoSuchJob)
	}

	select {
	case <-e.done:
	case <-ctx.Done():
		return 0, ctx.Err()
	}

	r.Remove(id)

	r.mu.Lock()
	defer r.mu.Unlock()
	return e.job.ExitStatus, nil
}
