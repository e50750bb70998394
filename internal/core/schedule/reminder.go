package schedule

import (
	"math"
	"sync"
	"time"

	"go.uber.org/zap"

	"tasktracker/internal/core/domain"
)

// maxTimerDelay caps a single armed delay. A reminder further out than this
// still arms, just at the cap; for such far-future tasks the firing moment
// is off from the true due time.
const maxTimerDelay = time.Duration(math.MaxInt64)

// NotifyFunc receives a fired reminder.
type NotifyFunc func(title, body string)

// ReminderTitle is what every fired notification is titled with; the task
// name travels in the body.
const ReminderTitle = "Reminder"

// Scheduler arms one timer per qualifying task. It holds no task state
// between Arm calls: rearming against a fresh snapshot is the only way to
// reflect collection changes, and callers must CancelAll the previous
// handle first.
type Scheduler struct {
	clock Clock
}

func NewScheduler(clock Clock) *Scheduler {
	if clock == nil {
		clock = SystemClock()
	}
	return &Scheduler{clock: clock}
}

// Handle owns the timers of one Arm call.
type Handle struct {
	mu        sync.Mutex
	timers    []Timer
	pending   int
	cancelled bool
}

// Arm inspects the snapshot and arms a timer for every task that has a
// reminder strictly in the future and is not completed. Past-due, completed
// and draft tasks are skipped outright: they never fire retroactively.
func (s *Scheduler) Arm(tasks []domain.Task, onFire NotifyFunc) *Handle {
	h := &Handle{}
	now := s.clock.Now()
	for _, t := range tasks {
		if t.RemindAt == nil || t.Completed {
			continue
		}
		delay := t.RemindAt.Sub(now)
		if delay <= 0 {
			continue
		}
		if delay > maxTimerDelay {
			delay = maxTimerDelay
		}
		name := t.Name
		h.arm(s.clock, delay, func() {
			fire(onFire, ReminderTitle, name)
		})
	}
	return h
}

func (h *Handle) arm(clock Clock, delay time.Duration, f func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.cancelled {
		return
	}
	h.pending++
	h.timers = append(h.timers, clock.AfterFunc(delay, func() {
		if !h.markFired() {
			return
		}
		f()
	}))
}

// markFired claims the right to run the callback; it reports false when the
// handle was cancelled before the timer got to run.
func (h *Handle) markFired() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.cancelled {
		return false
	}
	h.pending--
	return true
}

// Pending reports how many timers are still armed and unfired.
func (h *Handle) Pending() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.pending
}

// CancelAll stops every still-pending timer owned by this handle. Timers
// that already fired are unaffected; calling it again is a no-op.
func (h *Handle) CancelAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.cancelled {
		return
	}
	h.cancelled = true
	for _, t := range h.timers {
		t.Stop()
	}
	h.timers = nil
	h.pending = 0
}

// fire isolates callback failures: one panicking callback must not take
// down the process or suppress the other armed timers.
func fire(onFire NotifyFunc, title, body string) {
	defer func() {
		if r := recover(); r != nil {
			zap.L().Error("reminder callback panicked",
				zap.String("task", body), zap.Any("panic", r))
		}
	}()
	onFire(title, body)
}
