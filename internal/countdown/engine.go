// Package countdown implements a resumable, cancelable countdown driven by the
// event loop. Remaining time is always derived from the clock, never from the
// number of ticks observed, so slow or coalesced ticks cannot shift completion.
package countdown

import (
	"math"
	"strconv"
	"time"

	"github.com/bnema/dear-my-friend/internal/eventloop"
	"go.uber.org/zap"
)

const (
	DefaultDuration = 10 * time.Second
	DefaultTick     = 100 * time.Millisecond
)

type State struct {
	Active    bool
	Paused    bool
	Remaining time.Duration
}

func (s State) RemainingSeconds() float64 {
	return s.Remaining.Seconds()
}

// Engine owns at most one running countdown. It is not safe for concurrent use;
// drive it from the event loop.
type Engine struct {
	loop            *eventloop.Loop
	logger          *zap.Logger
	tick            time.Duration
	defaultDuration time.Duration

	state     State
	duration  time.Duration
	startedAt time.Time
	// elapsed accumulates running time from before the most recent pause.
	elapsed    time.Duration
	ticker     *eventloop.Timer
	onComplete func()
	listeners  []func(State)
}

type Option func(*Engine)

func WithTickInterval(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.tick = d
		}
	}
}

func WithDefaultDuration(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.defaultDuration = d
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

func New(loop *eventloop.Loop, opts ...Option) *Engine {
	e := &Engine{
		loop:            loop,
		logger:          zap.NewNop(),
		tick:            DefaultTick,
		defaultDuration: DefaultDuration,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.duration = e.defaultDuration
	e.state = State{Remaining: e.defaultDuration}
	return e
}

func (e *Engine) DefaultDuration() time.Duration {
	return e.defaultDuration
}

func (e *Engine) State() State {
	return e.state
}

// OnTick registers a listener notified after every state change.
func (e *Engine) OnTick(listener func(State)) {
	if listener != nil {
		e.listeners = append(e.listeners, listener)
	}
}

// Start replaces any running countdown (its callback is discarded) and begins a
// new one. A non-positive duration selects the default.
func (e *Engine) Start(d time.Duration, onComplete func()) {
	if d <= 0 {
		d = e.defaultDuration
	}
	if e.state.Active {
		e.logger.Debug("replacing running countdown", zap.Duration("remaining", e.state.Remaining))
	}
	e.stopTicker()

	e.duration = d
	e.startedAt = e.loop.Clock().Now()
	e.elapsed = 0
	e.onComplete = onComplete
	e.setState(State{Active: true, Remaining: d})
	e.ticker = e.loop.Every(e.tick, e.onTickFired)
}

func (e *Engine) Pause() {
	if !e.state.Active || e.state.Paused {
		return
	}
	e.stopTicker()
	e.elapsed += e.loop.Clock().Now().Sub(e.startedAt)
	e.setState(State{Active: true, Paused: true, Remaining: e.remaining(e.elapsed)})
}

func (e *Engine) Resume() {
	if !e.state.Active || !e.state.Paused {
		return
	}
	e.startedAt = e.loop.Clock().Now()
	e.setState(State{Active: true, Remaining: e.state.Remaining})
	e.ticker = e.loop.Every(e.tick, e.onTickFired)
}

// Skip completes the running countdown immediately and fires its callback.
func (e *Engine) Skip() {
	if !e.state.Active {
		return
	}
	e.complete()
}

// Reset cancels the countdown without firing its callback.
func (e *Engine) Reset() {
	e.stopTicker()
	e.elapsed = 0
	e.onComplete = nil
	e.duration = e.defaultDuration
	e.setState(State{Remaining: e.defaultDuration})
}

func (e *Engine) Stop() {
	e.Reset()
}

// Progress is the completed fraction of the current countdown, 0..1.
func (e *Engine) Progress() float64 {
	if e.duration <= 0 {
		return 0
	}
	progress := 1 - float64(e.state.Remaining)/float64(e.duration)
	return math.Min(1, math.Max(0, progress))
}

// FormattedTime is the remaining time rounded up to whole seconds.
func (e *Engine) FormattedTime() string {
	return strconv.Itoa(int(math.Ceil(e.state.Remaining.Seconds())))
}

func (e *Engine) onTickFired() {
	elapsed := e.elapsed + e.loop.Clock().Now().Sub(e.startedAt)
	remaining := e.remaining(elapsed)
	if remaining <= 0 {
		e.complete()
		return
	}
	e.setState(State{Active: true, Remaining: remaining})
}

func (e *Engine) complete() {
	e.stopTicker()
	callback := e.onComplete
	e.onComplete = nil
	e.setState(State{Remaining: 0})
	if callback != nil {
		callback()
	}
}

func (e *Engine) remaining(elapsed time.Duration) time.Duration {
	if remaining := e.duration - elapsed; remaining > 0 {
		return remaining
	}
	return 0
}

func (e *Engine) stopTicker() {
	if e.ticker != nil {
		e.ticker.Stop()
		e.ticker = nil
	}
}

func (e *Engine) setState(state State) {
	e.state = state
	for _, listener := range e.listeners {
		listener(state)
	}
}
