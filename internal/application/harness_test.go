package application

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/bnema/dear-my-friend/internal/adapters/kv/memory"
	"github.com/bnema/dear-my-friend/internal/countdown"
	"github.com/bnema/dear-my-friend/internal/domain"
	"github.com/bnema/dear-my-friend/internal/eventloop"
	"github.com/bnema/dear-my-friend/internal/ports/fakes"
	"github.com/bnema/dear-my-friend/internal/storage"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

var testStart = time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)

type harness struct {
	t       *testing.T
	ctx     context.Context
	clock   *fakes.ManualClock
	loop    *eventloop.Loop
	kv      *memory.Store
	adapter *storage.Adapter
	ids     *fakes.SequentialIDs
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	clock := fakes.NewManualClock(testStart)
	logger := zaptest.NewLogger(t)
	kv := memory.NewStore()
	return &harness{
		t:       t,
		ctx:     context.Background(),
		clock:   clock,
		loop:    eventloop.New(clock, logger),
		kv:      kv,
		adapter: storage.NewAdapter(kv, logger),
		ids:     &fakes.SequentialIDs{Prefix: "id"},
	}
}

func (h *harness) newApp(opts Options) *App {
	h.t.Helper()
	app := NewApp(Deps{
		Loop:      h.loop,
		Storage:   h.adapter,
		Countdown: countdown.New(h.loop),
		IDs:       h.ids,
		Logger:    zaptest.NewLogger(h.t),
	}, opts)
	app.Initialize(h.ctx)
	h.flush()
	return app
}

func (h *harness) flush() {
	h.loop.RunPending()
}

// advance moves simulated time in countdown-tick steps, pumping the loop after each.
func (h *harness) advance(d time.Duration) {
	for step := time.Duration(0); step < d; step += countdown.DefaultTick {
		h.clock.Advance(countdown.DefaultTick)
		h.loop.RunPending()
	}
}

func (h *harness) seed(key string, value any) {
	h.t.Helper()
	encoded, err := json.Marshal(value)
	require.NoError(h.t, err)
	require.NoError(h.t, h.kv.Put(h.ctx, storage.KeyPrefix+key, string(encoded)))
}

func (h *harness) stored(key string, into any) bool {
	h.t.Helper()
	raw, err := h.kv.Get(h.ctx, storage.KeyPrefix+key)
	if err != nil {
		return false
	}
	require.NoError(h.t, json.Unmarshal([]byte(raw), into))
	return true
}

func (h *harness) storedSessions() []domain.Session {
	h.t.Helper()
	var sessions []domain.Session
	h.stored(storage.KeySessions, &sessions)
	return sessions
}

func message(id string, role domain.Role, ts int64) domain.Message {
	return domain.Message{ID: id, Content: "content " + id, Role: role, Timestamp: ts}
}
