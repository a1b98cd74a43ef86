package engine

import (
	"context"
	"sync"
	"time"
)

// Supervisor owns run-scoped cancellation and teardown. Shutdown is
// re-entrant: the cancel and the cleanup hooks run exactly once no matter
// how many times it is called, and already-recorded findings are untouched.
type Supervisor struct {
	cancel  context.CancelFunc
	cleanup []func()
	once    sync.Once

	doneOnce sync.Once
	done     chan struct{}
}

// NewSupervisor derives the run context. Cleanup hooks run once, inside the
// first Shutdown call.
func NewSupervisor(parent context.Context, cleanup ...func()) (context.Context, *Supervisor) {
	ctx, cancel := context.WithCancel(parent)
	return ctx, &Supervisor{
		cancel:  cancel,
		cleanup: cleanup,
		done:    make(chan struct{}),
	}
}

// Shutdown stops new dispatch and releases resources. In-flight probes are
// left to observe the cancelled context or hit their own timeout.
func (s *Supervisor) Shutdown() {
	s.once.Do(func() {
		s.cancel()
		for _, f := range s.cleanup {
			f()
		}
	})
}

// Finished marks the run drained: every worker has returned.
func (s *Supervisor) Finished() {
	s.doneOnce.Do(func() { close(s.done) })
}

// Wait blocks until the run drains or the grace period elapses. It reports
// whether the drain happened in time.
func (s *Supervisor) Wait(grace time.Duration) bool {
	select {
	case <-s.done:
		return true
	case <-time.After(grace):
		return false
	}
}
