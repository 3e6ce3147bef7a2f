// Package storage is the persistence boundary for every store. Values are JSON
// encoded; every failure is logged and turned into the caller's default so that
// storage problems never surface as application errors.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/bnema/dear-my-friend/internal/domain"
	"github.com/bnema/dear-my-friend/internal/ports"
	"go.uber.org/zap"
)

// KeyPrefix namespaces every logical key, like a per-origin storage area.
const KeyPrefix = "dear-my-friend-"

const (
	KeyConversation         = "conversation"
	KeyTutorialConversation = "tutorial-conversation"
	KeyViewMode             = "view-mode"
	KeyTutorialCompleted    = "tutorial-completed"
	KeySessions             = "sessions"
	KeyCurrentSessionID     = "current-session-id"
	KeyMentorAssist         = "mentor-assist"
)

type Adapter struct {
	kv     ports.KeyValueStore
	logger *zap.Logger
}

func NewAdapter(kv ports.KeyValueStore, logger *zap.Logger) *Adapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Adapter{kv: kv, logger: logger}
}

// Save encodes value and writes it. Failures are logged, never returned.
func (a *Adapter) Save(ctx context.Context, key string, value any) {
	encoded, err := json.Marshal(value)
	if err != nil {
		a.logger.Error("encode value failed", zap.String("key", key), zap.Error(err))
		return
	}
	a.SaveRaw(ctx, key, string(encoded))
}

// SaveRaw writes value verbatim.
func (a *Adapter) SaveRaw(ctx context.Context, key string, value string) {
	if err := a.kv.Put(ctx, KeyPrefix+key, value); err != nil {
		a.logger.Error("save value failed", zap.String("key", key), zap.Error(err))
	}
}

// LoadRaw returns the stored text and whether it was present and readable.
func (a *Adapter) LoadRaw(ctx context.Context, key string) (string, bool) {
	raw, err := a.kv.Get(ctx, KeyPrefix+key)
	if err != nil {
		if !errors.Is(err, domain.ErrKeyNotFound) {
			a.logger.Warn("load value failed", zap.String("key", key), zap.Error(err))
		}
		return "", false
	}
	return raw, true
}

// Remove deletes key. Missing keys are not an error.
func (a *Adapter) Remove(ctx context.Context, key string) {
	if err := a.kv.Delete(ctx, KeyPrefix+key); err != nil && !errors.Is(err, domain.ErrKeyNotFound) {
		a.logger.Error("remove value failed", zap.String("key", key), zap.Error(err))
	}
}

func (a *Adapter) Logger() *zap.Logger {
	return a.logger
}

// Load decodes the value stored under key into a T. It returns def when the key
// is missing, the payload does not decode into T, or validate rejects it.
func Load[T any](ctx context.Context, a *Adapter, key string, def T, validate func(T) error) T {
	raw, ok := a.LoadRaw(ctx, key)
	if !ok {
		return def
	}

	value, err := decodeStrict[T](raw)
	if err != nil {
		a.logger.Warn("discarding unreadable value", zap.String("key", key), zap.Error(err))
		return def
	}
	if validate != nil {
		if err := validate(value); err != nil {
			a.logger.Warn("discarding invalid value", zap.String("key", key), zap.Error(err))
			return def
		}
	}
	return value
}

func decodeStrict[T any](raw string) (T, error) {
	var value T
	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	if err := dec.Decode(&value); err != nil {
		return value, fmt.Errorf("decode json: %w", err)
	}
	if dec.More() {
		return value, errors.New("decode json: trailing data")
	}
	return value, nil
}
