// Package eventloop runs application work one task at a time, mirroring the
// single-threaded cooperative model of an interactive front end.
//
// Tasks are posted from any goroutine and executed by whichever goroutine pumps
// the loop (RunPending or Run). A microtask queued with Defer runs after the
// task that queued it and before any other task, so a deferred read always
// observes the effects of the task that scheduled it.
package eventloop

import (
	"context"
	"fmt"
	"sync"

	"github.com/bnema/dear-my-friend/internal/ports"
	"go.uber.org/zap"
)

type Loop struct {
	clock  ports.Clock
	logger *zap.Logger

	mu      sync.Mutex
	tasks   []func()
	micro   []func()
	pumping bool
	wake    chan struct{}
}

func New(clock ports.Clock, logger *zap.Logger) *Loop {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Loop{
		clock:  clock,
		logger: logger,
		wake:   make(chan struct{}, 1),
	}
}

func (l *Loop) Clock() ports.Clock {
	return l.clock
}

// Post queues a task. Safe for concurrent use.
func (l *Loop) Post(task func()) {
	if task == nil {
		return
	}

	l.mu.Lock()
	l.tasks = append(l.tasks, task)
	l.mu.Unlock()
	l.signal()
}

// Defer queues a microtask. Microtasks queued by a microtask run in the same drain.
func (l *Loop) Defer(task func()) {
	if task == nil {
		return
	}

	l.mu.Lock()
	l.micro = append(l.micro, task)
	l.mu.Unlock()
	l.signal()
}

// Pending reports the number of queued tasks and microtasks.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.tasks) + len(l.micro)
}

// RunPending executes queued work on the calling goroutine until both queues are
// empty and returns the number of tasks run. Calls made from inside a running
// task return immediately.
func (l *Loop) RunPending() int {
	l.mu.Lock()
	if l.pumping {
		l.mu.Unlock()
		return 0
	}
	l.pumping = true
	l.mu.Unlock()

	defer func() {
		l.mu.Lock()
		l.pumping = false
		l.mu.Unlock()
	}()

	ran := 0
	l.drainMicrotasks()
	for {
		task := l.popTask()
		if task == nil {
			return ran
		}
		l.run(task)
		ran++
		l.drainMicrotasks()
	}
}

// Run pumps the loop until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	for {
		l.RunPending()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
		}
	}
}

func (l *Loop) popTask() func() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.tasks) == 0 {
		return nil
	}
	task := l.tasks[0]
	l.tasks[0] = nil
	l.tasks = l.tasks[1:]
	return task
}

func (l *Loop) drainMicrotasks() {
	for {
		l.mu.Lock()
		if len(l.micro) == 0 {
			l.mu.Unlock()
			return
		}
		task := l.micro[0]
		l.micro[0] = nil
		l.micro = l.micro[1:]
		l.mu.Unlock()

		l.run(task)
	}
}

func (l *Loop) run(task func()) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("event loop task panicked", zap.String("panic", fmt.Sprint(r)))
		}
	}()
	task()
}

func (l *Loop) signal() {
	select {
	case l.wake <- struct{}{}:
	default:
	}
}
