package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/prepforge/prepforge/internal/selection"
)

const defaultSnapshotTTL = 10 * time.Minute

// CachedSnapshotBuilder decorates a SnapshotBuilder with a Redis/Dragonfly
// cache. Cache failures degrade to the inner builder with a warning; they
// never fail a selection call.
type CachedSnapshotBuilder struct {
	inner  *SnapshotBuilder
	client *redis.Client
	ttl    time.Duration
}

// NewCachedSnapshotBuilder creates a cached builder. A non-positive ttl uses
// the default of 10 minutes.
func NewCachedSnapshotBuilder(inner *SnapshotBuilder, client *redis.Client, ttl time.Duration) *CachedSnapshotBuilder {
	if ttl <= 0 {
		ttl = defaultSnapshotTTL
	}
	return &CachedSnapshotBuilder{inner: inner, client: client, ttl: ttl}
}

// Build returns the cached snapshot when present, otherwise builds one and
// stores it.
func (b *CachedSnapshotBuilder) Build(ctx context.Context, studentID string) (selection.PerformanceSnapshot, error) {
	key := snapshotKey(studentID)

	payload, err := b.client.Get(ctx, key).Bytes()
	if err == nil {
		var snap selection.PerformanceSnapshot
		if err := json.Unmarshal(payload, &snap); err == nil {
			return snap, nil
		}
		slog.Warn("discarding corrupt cached snapshot", "student_id", studentID)
	} else if !errors.Is(err, redis.Nil) {
		slog.Warn("snapshot cache read failed", "student_id", studentID, "error", err)
	}

	snap, err := b.inner.Build(ctx, studentID)
	if err != nil {
		return selection.PerformanceSnapshot{}, err
	}

	if payload, err := json.Marshal(snap); err == nil {
		if err := b.client.Set(ctx, key, payload, b.ttl).Err(); err != nil {
			slog.Warn("snapshot cache write failed", "student_id", studentID, "error", err)
		}
	}

	return snap, nil
}

// Invalidate drops a student's cached snapshot, e.g. after new answers land.
func (b *CachedSnapshotBuilder) Invalidate(ctx context.Context, studentID string) error {
	if err := b.client.Del(ctx, snapshotKey(studentID)).Err(); err != nil {
		return fmt.Errorf("invalidating snapshot for %s: %w", studentID, err)
	}
	return nil
}

func snapshotKey(studentID string) string {
	return "perf_snapshot:" + studentID
}
