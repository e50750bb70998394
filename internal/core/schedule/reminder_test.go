package schedule_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasktracker/internal/core/domain"
	"tasktracker/internal/core/schedule"
)

// fakeClock drives the scheduler with simulated time: timers only fire when
// Advance moves past their deadline.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

type fakeTimer struct {
	clock   *fakeClock
	at      time.Time
	f       func()
	stopped bool
	fired   bool
}

func newFakeClock(now time.Time) *fakeClock {
	return &fakeClock{now: now}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) schedule.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{clock: c, at: c.now.Add(d), f: f}
	c.timers = append(c.timers, t)
	return t
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// Advance moves simulated time forward and fires every due timer.
func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	due := make([]*fakeTimer, 0)
	for _, t := range c.timers {
		if !t.stopped && !t.fired && !t.at.After(c.now) {
			t.fired = true
			due = append(due, t)
		}
	}
	c.mu.Unlock()

	for _, t := range due {
		t.f()
	}
}

func (c *fakeClock) armedCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

type recorder struct {
	mu    sync.Mutex
	fired []string
}

func (r *recorder) notify(title, body string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fired = append(r.fired, body)
}

func (r *recorder) names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.fired...)
}

func TestScheduler_ArmsOnlyQualifyingTasks(t *testing.T) {
	now := time.Date(2025, 1, 5, 12, 0, 0, 0, time.UTC)
	clock := newFakeClock(now)
	sched := schedule.NewScheduler(clock)

	future := now.Add(time.Hour)
	past := now.Add(-time.Hour)
	tasks := []domain.Task{
		{ID: "A", Name: "A", RemindAt: &future},
		{ID: "B", Name: "B", RemindAt: &past},
		{ID: "C", Name: "C", RemindAt: &future, Completed: true},
		{ID: "D", Name: "D"},
	}

	rec := &recorder{}
	handle := sched.Arm(tasks, rec.notify)

	assert.Equal(t, 1, handle.Pending())
	assert.Equal(t, 1, clock.armedCount())

	clock.Advance(2 * time.Hour)
	assert.Equal(t, []string{"A"}, rec.names())
	assert.Zero(t, handle.Pending())
}

func TestScheduler_FiresAtDueMoment(t *testing.T) {
	now := time.Date(2025, 1, 5, 12, 0, 0, 0, time.UTC)
	clock := newFakeClock(now)
	sched := schedule.NewScheduler(clock)

	due := now.Add(30 * time.Minute)
	rec := &recorder{}
	sched.Arm([]domain.Task{{ID: "1", Name: "water plants", RemindAt: &due}}, rec.notify)

	clock.Advance(29 * time.Minute)
	assert.Empty(t, rec.names())

	clock.Advance(time.Minute)
	assert.Equal(t, []string{"water plants"}, rec.names())

	// Already fired, never fires again.
	clock.Advance(time.Hour)
	assert.Equal(t, []string{"water plants"}, rec.names())
}

func TestHandle_CancelAllStopsPendingTimers(t *testing.T) {
	now := time.Date(2025, 1, 5, 12, 0, 0, 0, time.UTC)
	clock := newFakeClock(now)
	sched := schedule.NewScheduler(clock)

	a := now.Add(time.Hour)
	b := now.Add(2 * time.Hour)
	rec := &recorder{}
	handle := sched.Arm([]domain.Task{
		{ID: "1", Name: "one", RemindAt: &a},
		{ID: "2", Name: "two", RemindAt: &b},
	}, rec.notify)

	require.Equal(t, 2, handle.Pending())
	handle.CancelAll()
	assert.Zero(t, handle.Pending())

	clock.Advance(3 * time.Hour)
	assert.Empty(t, rec.names())

	// Cancelling twice is a no-op.
	handle.CancelAll()
}

func TestScheduler_RearmReflectsCollectionChanges(t *testing.T) {
	now := time.Date(2025, 1, 5, 12, 0, 0, 0, time.UTC)
	clock := newFakeClock(now)
	sched := schedule.NewScheduler(clock)

	due := now.Add(time.Hour)
	rec := &recorder{}
	first := sched.Arm([]domain.Task{{ID: "1", Name: "edit me", RemindAt: &due}}, rec.notify)

	// Reminder cleared: cancel the old handle, rearm with the draft.
	first.CancelAll()
	second := sched.Arm([]domain.Task{{ID: "1", Name: "edit me"}}, rec.notify)

	assert.Zero(t, second.Pending())
	clock.Advance(2 * time.Hour)
	assert.Empty(t, rec.names())
}

func TestScheduler_PanickingCallbackIsIsolated(t *testing.T) {
	now := time.Date(2025, 1, 5, 12, 0, 0, 0, time.UTC)
	clock := newFakeClock(now)
	sched := schedule.NewScheduler(clock)

	early := now.Add(time.Hour)
	late := now.Add(2 * time.Hour)
	rec := &recorder{}
	sched.Arm([]domain.Task{
		{ID: "1", Name: "boom", RemindAt: &early},
		{ID: "2", Name: "fine", RemindAt: &late},
	}, func(title, body string) {
		if body == "boom" {
			panic("notification sink exploded")
		}
		rec.notify(title, body)
	})

	require.NotPanics(t, func() { clock.Advance(time.Hour) })
	clock.Advance(time.Hour)
	assert.Equal(t, []string{"fine"}, rec.names())
}

func TestScheduler_FarFutureDelayIsClamped(t *testing.T) {
	now := time.Date(2025, 1, 5, 12, 0, 0, 0, time.UTC)
	clock := newFakeClock(now)
	sched := schedule.NewScheduler(clock)

	// Centuries out: beyond the maximum single-shot delay.
	far := now.AddDate(500, 0, 0)
	rec := &recorder{}
	handle := sched.Arm([]domain.Task{{ID: "1", Name: "far", RemindAt: &far}}, rec.notify)

	// Still armed rather than rejected.
	assert.Equal(t, 1, handle.Pending())
	clock.Advance(time.Hour)
	assert.Empty(t, rec.names())
}
