package explorer

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// DefaultInterval is the playback tick interval.
const DefaultInterval = 700 * time.Millisecond

// Scheduler calls a tick function at a fixed interval until stopped. It holds
// only the cancellation token of the running session, never selection state.
// At most one timer is outstanding per session; the next tick is armed only
// after the previous one returned.
type Scheduler struct {
	clock    clockwork.Clock
	interval time.Duration

	mu     sync.Mutex
	cancel chan struct{} // nil when idle
	wg     sync.WaitGroup
}

// NewScheduler creates a Scheduler. A nil clock uses real time; a non-positive
// interval uses DefaultInterval.
func NewScheduler(clock clockwork.Clock, interval time.Duration) *Scheduler {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Scheduler{clock: clock, interval: interval}
}

// Interval returns the tick interval.
func (s *Scheduler) Interval() time.Duration { return s.interval }

// Start begins a session that calls tick every interval. It returns false
// without side effects when a session is already running.
func (s *Scheduler) Start(tick func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		return false
	}
	cancel := make(chan struct{})
	s.cancel = cancel
	s.wg.Add(1)
	go s.run(cancel, tick)
	return true
}

// Stop cancels the running session. It is safe to call at any time and
// returns false when nothing was running. Stop does not wait for a tick that
// is already executing; callers guard tick effects with their own session check.
func (s *Scheduler) Stop() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel == nil {
		return false
	}
	close(s.cancel)
	s.cancel = nil
	return true
}

// Running reports whether a session is active.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancel != nil
}

// Wait blocks until every session goroutine has exited. Must not be called from a tick.
func (s *Scheduler) Wait() {
	s.wg.Wait()
}

func (s *Scheduler) run(cancel <-chan struct{}, tick func()) {
	defer s.wg.Done()

	timer := s.clock.NewTimer(s.interval)
	defer timer.Stop()

	for {
		select {
		case <-cancel:
			return
		case <-timer.Chan():
		}

		// A stop that raced with the timer wins.
		select {
		case <-cancel:
			return
		default:
		}

		tick()
		timer.Reset(s.interval)
	}
}
