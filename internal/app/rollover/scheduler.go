// Package rollover owns the local-midnight timers that decide when
// "today" changes for a user session. A scheduler holds exactly one
// pending timer; on expiry it invokes the rollover callback and re-arms
// itself with a freshly derived delay. It never uses a fixed repeating
// 24h interval: DST shifts change the true wall-clock delay for the
// next cycle even when the previous cycle's delay was exactly 24h.
package rollover

import (
	"log"
	"sync"
	"time"

	"github.com/daybreak-app/daybreak/internal/app/progress"
)

// Callback is invoked once per local-midnight boundary with the new
// calendar day key. Implementations typically refetch from the store
// and recompute all derived values.
type Callback func(userID, newDay string)

// Scheduler fires a callback at each local midnight for one user
// session. Two states: Armed (timer pending) and stopped. Once stopped
// the callback is never invoked again.
type Scheduler struct {
	userID string
	loc    *time.Location
	cb     Callback

	mu      sync.Mutex
	timer   *time.Timer
	stopped bool

	// Overridable in tests; defaults derive the real local-midnight delay.
	now   func() time.Time
	delay func(now time.Time, loc *time.Location) time.Duration
}

// NewScheduler creates a scheduler for one user session. It does not
// arm a timer until Start is called.
func NewScheduler(userID string, loc *time.Location, cb Callback) *Scheduler {
	return &Scheduler{
		userID: userID,
		loc:    loc,
		cb:     cb,
		now:    time.Now,
		delay:  progress.UntilNextLocalMidnight,
	}
}

// Start arms the timer for the next local midnight. Calling Start on a
// stopped scheduler is a no-op.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped || s.timer != nil {
		return
	}
	s.armLocked()
}

// Stop cancels any pending timer. No callback fires after Stop returns.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// Armed reports whether a timer is currently pending.
func (s *Scheduler) Armed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timer != nil
}

// armLocked computes a fresh delay and schedules the next fire.
// Caller holds s.mu.
func (s *Scheduler) armLocked() {
	d := s.delay(s.now(), s.loc)
	s.timer = time.AfterFunc(d, s.fire)
}

// fire runs at the midnight boundary: deliver the new day, then re-arm
// with a freshly derived delay.
func (s *Scheduler) fire() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	newDay := progress.CalendarDayKey(s.now(), s.loc)
	s.mu.Unlock()

	log.Printf("[rollover] user=%s new day %s (%s)", s.userID, newDay, s.loc)
	s.cb(s.userID, newDay)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	s.armLocked()
}
