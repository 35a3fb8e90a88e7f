package history

import (
	"context"
	"fmt"
	"time"

	"github.com/prepforge/prepforge/internal/selection"
)

// SnapshotBuilder aggregates a student's answer history into the performance
// snapshot the selection engine consumes.
type SnapshotBuilder struct {
	store AnswerStore

	// HistoryBound limits how far back history is considered. Zero means
	// all-time.
	HistoryBound time.Duration
}

// NewSnapshotBuilder creates a builder over the given store.
func NewSnapshotBuilder(store AnswerStore) *SnapshotBuilder {
	return &SnapshotBuilder{store: store}
}

// Build computes per-topic accuracy, per-topic average solve time and the
// recently-seen question set. A student with no history gets an empty
// snapshot, not an error.
func (b *SnapshotBuilder) Build(ctx context.Context, studentID string) (selection.PerformanceSnapshot, error) {
	since := time.Time{}
	if b.HistoryBound > 0 {
		since = time.Now().Add(-b.HistoryBound)
	}

	answers, err := b.store.AnswersSince(ctx, studentID, since)
	if err != nil {
		return selection.PerformanceSnapshot{}, fmt.Errorf("fetching answers for %s: %w", studentID, err)
	}

	snap := selection.PerformanceSnapshot{
		TopicAccuracy:   make(map[string]float64),
		TopicAvgTime:    make(map[string]float64),
		RecentQuestions: make(map[string]time.Time),
		RecentOutcomes:  make(map[string]bool),
	}

	attempted := make(map[string]int)
	correct := make(map[string]int)
	timeSum := make(map[string]float64)
	timeCount := make(map[string]int)

	// Answers arrive most recent first, so the first sighting of a question
	// carries its latest timestamp and outcome.
	for _, a := range answers {
		attempted[a.TopicID]++
		if a.Correct {
			correct[a.TopicID]++
		}
		if a.TimeTakenSec != nil {
			timeSum[a.TopicID] += *a.TimeTakenSec
			timeCount[a.TopicID]++
		}
		if _, seen := snap.RecentQuestions[a.QuestionID]; !seen {
			snap.RecentQuestions[a.QuestionID] = a.AnsweredAt
			snap.RecentOutcomes[a.QuestionID] = a.Correct
		}
	}

	for topicID, n := range attempted {
		snap.TopicAccuracy[topicID] = float64(correct[topicID]) / float64(n) * 100
	}
	for topicID, n := range timeCount {
		snap.TopicAvgTime[topicID] = timeSum[topicID] / float64(n)
	}

	return snap, nil
}
