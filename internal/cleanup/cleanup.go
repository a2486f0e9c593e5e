// Package cleanup removes finished output files after their retention window.
// Removal is best effort: failures are logged and swallowed, never surfaced.
package cleanup

import (
	"os"
	"sync"
	"time"

	"github.com/rankreel/rankreel/pkg/logger"
)

// Clock abstracts timer creation so tests can fire retention deadlines
// without real waiting.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type Timer interface {
	Stop() bool
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Handle cancels one scheduled removal.
type Handle struct {
	cancel func() bool
}

// Cancel stops the pending removal and reports whether it was still pending.
func (h Handle) Cancel() bool {
	if h.cancel == nil {
		return false
	}
	return h.cancel()
}

// Scheduler owns the deferred removal timers for output files.
type Scheduler struct {
	clock  Clock
	logger logger.Logger

	mu      sync.Mutex
	pending map[string]Timer
}

func NewScheduler(log logger.Logger) *Scheduler {
	return NewSchedulerWithClock(log, realClock{})
}

func NewSchedulerWithClock(log logger.Logger, clock Clock) *Scheduler {
	return &Scheduler{
		clock:   clock,
		logger:  log,
		pending: make(map[string]Timer),
	}
}

// ScheduleRemoval arranges for path to be deleted after the retention window.
// Scheduling the same path again replaces the earlier timer.
func (s *Scheduler) ScheduleRemoval(path string, after time.Duration) Handle {
	s.mu.Lock()
	if old, ok := s.pending[path]; ok {
		old.Stop()
	}
	timer := s.clock.AfterFunc(after, func() {
		s.remove(path)
	})
	s.pending[path] = timer
	s.mu.Unlock()

	return Handle{cancel: func() bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		t, ok := s.pending[path]
		if !ok {
			return false
		}
		delete(s.pending, path)
		return t.Stop()
	}}
}

func (s *Scheduler) remove(path string) {
	s.mu.Lock()
	delete(s.pending, path)
	s.mu.Unlock()

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		s.logger.Warnf("retention cleanup of %s failed: %v", path, err)
		return
	}
	s.logger.Infof("retention window elapsed, removed %s", path)
}

// Shutdown stops every pending timer without removing files.
func (s *Scheduler) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for path, t := range s.pending {
		t.Stop()
		delete(s.pending, path)
	}
}
