// Package signals keeps the interactive shell alive across Ctrl-C.
package signals

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
)

// DefaultMessage is printed when an interrupt arrives.
const DefaultMessage = "\nReceived Ctrl+C. Type 'exit' to quit."

// Bridge intercepts SIGINT for the whole process and reports it instead of
// letting it terminate the shell.
//
// The interrupt isn't forwarded anywhere. Children started with os/exec run
// with the default disposition because a caught signal is reset to its
// default across exec, so foreground programs still die on Ctrl-C as the
// terminal delivers it to them directly.
type Bridge struct {
	sigs     chan os.Signal
	stop     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	count    int64
}

// Install starts intercepting SIGINT. Each interrupt writes message followed
// by a newline to w and calls onInterrupt if it's non-nil.
func Install(w io.Writer, message string, onInterrupt func()) *Bridge {
	b := &Bridge{
		sigs: make(chan os.Signal, 1),
		stop: make(chan struct{}),
	}
	signal.Notify(b.sigs, os.Interrupt, syscall.SIGINT)

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		for {
			select {
			case <-b.sigs:
				fmt.Fprintln(w, message)
				if onInterrupt != nil {
					onInterrupt()
				}
				atomic.AddInt64(&b.count, 1)
			case <-b.stop:
				return
			}
		}
	}()

	return b
}

// Count returns the number of interrupts seen so far.
func (b *Bridge) Count() int {
	return int(atomic.LoadInt64(&b.count))
}

// Stop restores the default SIGINT behavior.
func (b *Bridge) Stop() {
	b.stopOnce.Do(func() {
		signal.Stop(b.sigs)
		close(b.stop)
		b.wg.Wait()
	})
}
