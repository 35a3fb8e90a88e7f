package history_test

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/prepforge/prepforge/internal/history"
)

// An unreachable cache must degrade to the inner builder, never fail the
// call.
func TestCachedSnapshotBuilder_DegradesWithoutCache(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping unreachable host test in short mode")
	}

	store := history.NewMemoryStore()
	store.Add(history.Answer{
		StudentID: "student-1", QuestionID: "q1", TopicID: "phy-optics",
		Correct: true, AnsweredAt: time.Now(),
	})

	client := redis.NewClient(&redis.Options{
		Addr:        "localhost:59999",
		DialTimeout: 500 * time.Millisecond,
	})
	t.Cleanup(func() { _ = client.Close() })

	builder := history.NewCachedSnapshotBuilder(history.NewSnapshotBuilder(store), client, time.Minute)

	snap, err := builder.Build(context.Background(), "student-1")
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if acc := snap.TopicAccuracy["phy-optics"]; acc != 100 {
		t.Errorf("TopicAccuracy[phy-optics] = %v, want 100", acc)
	}
}

func TestCachedSnapshotBuilder_InvalidateReportsFailure(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping unreachable host test in short mode")
	}

	client := redis.NewClient(&redis.Options{
		Addr:        "localhost:59999",
		DialTimeout: 500 * time.Millisecond,
	})
	t.Cleanup(func() { _ = client.Close() })

	builder := history.NewCachedSnapshotBuilder(history.NewSnapshotBuilder(history.NewMemoryStore()), client, time.Minute)
	if err := builder.Invalidate(context.Background(), "student-1"); err == nil {
		t.Error("Invalidate() should surface the cache error")
	}
}
