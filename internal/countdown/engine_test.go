package countdown

import (
	"testing"
	"time"

	"github.com/bnema/dear-my-friend/internal/eventloop"
	"github.com/bnema/dear-my-friend/internal/ports/fakes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type harness struct {
	clock  *fakes.ManualClock
	loop   *eventloop.Loop
	engine *Engine
}

func newHarness(opts ...Option) harness {
	clock := fakes.NewManualClock(time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC))
	loop := eventloop.New(clock, nil)
	return harness{clock: clock, loop: loop, engine: New(loop, opts...)}
}

// advance moves simulated time in tick-sized steps, pumping the loop after each.
func (h harness) advance(d time.Duration) {
	for step := time.Duration(0); step < d; step += DefaultTick {
		h.clock.Advance(DefaultTick)
		h.loop.RunPending()
	}
}

func TestSkipFiresCallbackOnce(t *testing.T) {
	t.Parallel()

	h := newHarness()
	calls := 0
	h.engine.Start(10*time.Second, func() { calls++ })

	h.engine.Skip()
	h.engine.Skip()
	h.advance(11 * time.Second)

	assert.Equal(t, 1, calls)
	state := h.engine.State()
	assert.False(t, state.Active)
	assert.Zero(t, state.Remaining)
	assert.Zero(t, h.clock.Pending())
}

func TestNaturalExpiryFiresCallbackOnce(t *testing.T) {
	t.Parallel()

	h := newHarness()
	calls := 0
	h.engine.Start(10*time.Second, func() { calls++ })

	h.advance(9900 * time.Millisecond)
	assert.Zero(t, calls)
	assert.True(t, h.engine.State().Active)

	h.advance(200 * time.Millisecond)
	assert.Equal(t, 1, calls)
	assert.False(t, h.engine.State().Active)

	h.engine.Skip()
	assert.Equal(t, 1, calls)
}

func TestSlowTicksDoNotDelayCompletion(t *testing.T) {
	t.Parallel()

	h := newHarness()
	calls := 0
	h.engine.Start(time.Second, func() { calls++ })

	h.clock.Advance(5 * time.Second)
	h.loop.RunPending()

	assert.Equal(t, 1, calls)
}

func TestPauseExcludesPausedTime(t *testing.T) {
	t.Parallel()

	h := newHarness()
	calls := 0
	h.engine.Start(2*time.Second, func() { calls++ })

	h.advance(time.Second)
	h.engine.Pause()
	state := h.engine.State()
	require.True(t, state.Paused)
	assert.Equal(t, time.Second, state.Remaining)

	h.advance(30 * time.Second)
	assert.Zero(t, calls)
	assert.Equal(t, time.Second, h.engine.State().Remaining)

	h.engine.Resume()
	h.advance(900 * time.Millisecond)
	assert.Zero(t, calls)

	h.advance(200 * time.Millisecond)
	assert.Equal(t, 1, calls)
}

func TestPauseAndResumeOutsideValidStatesAreNoops(t *testing.T) {
	t.Parallel()

	h := newHarness()
	h.engine.Pause()
	h.engine.Resume()
	assert.Equal(t, State{Remaining: DefaultDuration}, h.engine.State())

	h.engine.Start(time.Second, nil)
	h.engine.Resume()
	assert.False(t, h.engine.State().Paused)

	h.engine.Pause()
	h.engine.Pause()
	assert.True(t, h.engine.State().Paused)
}

func TestStartReplacesRunningCountdown(t *testing.T) {
	t.Parallel()

	h := newHarness()
	first, second := 0, 0
	h.engine.Start(time.Second, func() { first++ })
	h.advance(500 * time.Millisecond)
	h.engine.Start(time.Second, func() { second++ })

	h.advance(1100 * time.Millisecond)

	assert.Zero(t, first)
	assert.Equal(t, 1, second)
	assert.Zero(t, h.clock.Pending())
}

func TestResetDoesNotFireCallback(t *testing.T) {
	t.Parallel()

	h := newHarness(WithDefaultDuration(3 * time.Second))
	calls := 0
	h.engine.Start(time.Second, func() { calls++ })
	h.engine.Reset()

	h.advance(2 * time.Second)
	h.engine.Skip()

	assert.Zero(t, calls)
	assert.Equal(t, State{Remaining: 3 * time.Second}, h.engine.State())
}

func TestProgressAndFormattedTime(t *testing.T) {
	t.Parallel()

	h := newHarness()
	h.engine.Start(10*time.Second, nil)
	assert.Equal(t, "10", h.engine.FormattedTime())
	assert.Zero(t, h.engine.Progress())

	h.advance(2500 * time.Millisecond)
	assert.Equal(t, "8", h.engine.FormattedTime())
	assert.InDelta(t, 0.25, h.engine.Progress(), 0.0001)
}

func TestOnTickListenerObservesEveryChange(t *testing.T) {
	t.Parallel()

	h := newHarness()
	var states []State
	h.engine.OnTick(func(s State) { states = append(states, s) })

	h.engine.Start(300*time.Millisecond, nil)
	h.advance(300 * time.Millisecond)

	require.Len(t, states, 4)
	assert.Equal(t, State{Active: true, Remaining: 300 * time.Millisecond}, states[0])
	assert.Equal(t, State{}, states[3])
}
