package eventloop

import (
	"sync"
	"time"

	"github.com/bnema/dear-my-friend/internal/ports"
)

// Timer is a task scheduled on the loop after a delay, optionally repeating.
// Once Stop returns, the task never runs again, even if its tick was already queued.
type Timer struct {
	loop     *Loop
	task     func()
	interval time.Duration

	mu      sync.Mutex
	done    bool
	pending ports.Timer
}

// AfterFunc runs task on the loop once d has elapsed.
func (l *Loop) AfterFunc(d time.Duration, task func()) *Timer {
	t := &Timer{loop: l, task: task}
	t.mu.Lock()
	t.arm(d)
	t.mu.Unlock()
	return t
}

// Every runs task on the loop each interval until stopped. The next tick is armed
// only after the current one has run, so ticks never pile up.
func (l *Loop) Every(interval time.Duration, task func()) *Timer {
	t := &Timer{loop: l, task: task, interval: interval}
	t.mu.Lock()
	t.arm(interval)
	t.mu.Unlock()
	return t
}

// Stop cancels the timer and reports whether it was still live.
func (t *Timer) Stop() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.done {
		return false
	}
	t.done = true
	if t.pending != nil {
		t.pending.Stop()
	}
	return true
}

func (t *Timer) Live() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return !t.done
}

// arm must be called with t.mu held.
func (t *Timer) arm(d time.Duration) {
	t.pending = t.loop.clock.AfterFunc(d, func() {
		t.loop.Post(t.fire)
	})
}

func (t *Timer) fire() {
	t.mu.Lock()
	if t.done {
		t.mu.Unlock()
		return
	}
	if t.interval <= 0 {
		t.done = true
	}
	t.mu.Unlock()

	t.task()

	if t.interval <= 0 {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.done {
		t.arm(t.interval)
	}
}

// Group ties a set of timers to one lifetime so they can be cancelled together.
type Group struct {
	loop *Loop

	mu     sync.Mutex
	timers []*Timer
}

func (l *Loop) NewGroup() *Group {
	return &Group{loop: l}
}

func (g *Group) AfterFunc(d time.Duration, task func()) *Timer {
	t := g.loop.AfterFunc(d, task)

	g.mu.Lock()
	defer g.mu.Unlock()

	live := g.timers[:0]
	for _, existing := range g.timers {
		if existing.Live() {
			live = append(live, existing)
		}
	}
	g.timers = append(live, t)
	return t
}

// Cancel stops every timer in the group and returns how many were still live.
func (g *Group) Cancel() int {
	g.mu.Lock()
	timers := g.timers
	g.timers = nil
	g.mu.Unlock()

	cancelled := 0
	for _, t := range timers {
		if t.Stop() {
			cancelled++
		}
	}
	return cancelled
}
