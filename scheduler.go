package svg3d

import (
	"sync"
	"time"
)

// Scheduler runs callbacks after a delay. Callbacks run once.
type Scheduler interface {
	After(delay time.Duration, fn func())
}

// TimerScheduler schedules callbacks on the runtime timer. Callbacks run on their own goroutine.
type TimerScheduler struct{}

// After calls fn on its own goroutine once delay has elapsed.
func (TimerScheduler) After(delay time.Duration, fn func()) {
	time.AfterFunc(delay, fn)
}

// StepScheduler is a [Scheduler] driven by a virtual clock. Callbacks only run
// when the clock is moved forward with [StepScheduler.Advance] or [StepScheduler.RunAll],
// on the goroutine that moves it. The zero value is ready to use.
type StepScheduler struct {
	mu    sync.Mutex
	now   time.Duration
	seq   uint64
	tasks []stepTask
}

type stepTask struct {
	at  time.Duration
	seq uint64
	fn  func()
}

func (s *StepScheduler) After(delay time.Duration, fn func()) {
	if delay < 0 {
		delay = 0
	}
	s.mu.Lock()
	s.tasks = append(s.tasks, stepTask{at: s.now + delay, seq: s.seq, fn: fn})
	s.seq++
	s.mu.Unlock()
}

// Now returns the time elapsed on the virtual clock.
func (s *StepScheduler) Now() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// Pending returns the number of callbacks waiting to run.
func (s *StepScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// Advance moves the clock forward by d running every callback that falls due, in
// order of due time and then scheduling order. Callbacks scheduled by running
// callbacks also run if they fall due within d. It returns the number of callbacks run.
func (s *StepScheduler) Advance(d time.Duration) (n int) {
	s.mu.Lock()
	target := s.now + d
	s.mu.Unlock()
	for s.runNext(target, false) {
		n++
	}
	s.mu.Lock()
	if s.now < target {
		s.now = target
	}
	s.mu.Unlock()
	return n
}

// RunAll runs pending callbacks in order, moving the clock to each one's due time,
// until none are left or limit callbacks have run. A limit of zero or less means no limit.
func (s *StepScheduler) RunAll(limit int) (n int) {
	for (limit <= 0 || n < limit) && s.runNext(0, true) {
		n++
	}
	return n
}

// runNext pops and runs the earliest task due at or before target. Tasks run without the lock held.
func (s *StepScheduler) runNext(target time.Duration, ignoreTarget bool) bool {
	s.mu.Lock()
	next := -1
	for i, t := range s.tasks {
		if next < 0 || t.at < s.tasks[next].at || (t.at == s.tasks[next].at && t.seq < s.tasks[next].seq) {
			next = i
		}
	}
	if next < 0 || (!ignoreTarget && s.tasks[next].at > target) {
		s.mu.Unlock()
		return false
	}
	task := s.tasks[next]
	s.tasks = append(s.tasks[:next], s.tasks[next+1:]...)
	if task.at > s.now {
		s.now = task.at
	}
	s.mu.Unlock()
	task.fn()
	return true
}
