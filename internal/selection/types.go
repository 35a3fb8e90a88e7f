package selection

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Mode controls how the topic universe is resolved.
type Mode string

const (
	// ModeTopic restricts the universe to the caller's topic ids.
	ModeTopic Mode = "topic"
	// ModeRandom draws from every topic in the catalog.
	ModeRandom Mode = "random"
)

// ErrInvalidCount is returned when the requested count is not positive.
// This is a caller bug, not a recoverable condition.
var ErrInvalidCount = errors.New("requested count must be positive")

// TopicsNotFoundError is returned when a topic-restricted request names only
// topics that do not exist in the catalog.
type TopicsNotFoundError struct {
	TopicIDs []string
}

func (e *TopicsNotFoundError) Error() string {
	return fmt.Sprintf("topics not found in catalog: %s", strings.Join(e.TopicIDs, ", "))
}

// SelectionRequest describes one selection call.
type SelectionRequest struct {
	// StudentID and SessionID seed the deterministic ordering. Both empty
	// means anonymous mode: selection falls back to a fixed stable ordering.
	StudentID string
	SessionID string

	// TopicIDs is the candidate topic set. Empty means the full catalog.
	TopicIDs []string

	// Count is the requested number of questions. Must be positive.
	Count int

	// Mode is topic or random. Empty defaults to topic.
	Mode Mode

	// ExcludeQuestionIDs are caller-supplied exclusions, merged with the
	// recency-based set.
	ExcludeQuestionIDs []string

	// DifficultyOverride replaces the configured difficulty split when set.
	DifficultyOverride *DifficultySplit

	// AsOf anchors the recency window. Zero means time.Now(); deterministic
	// callers should set it explicitly.
	AsOf time.Time
}

// SelectionResult is the outcome of a selection call: an unordered set of
// question ids, at most Count of them.
type SelectionResult struct {
	// QuestionIDs holds the selected ids in ascending order.
	QuestionIDs []string

	// Shortfall is true when the full requested count could not be met even
	// after fallback borrowing. Never an error; callers decide.
	Shortfall bool
}

// PerformanceSnapshot is a student's aggregated history, built once per call
// by the caller (or a SnapshotBuilder) and read-only inside the engine.
type PerformanceSnapshot struct {
	// TopicAccuracy maps topic id to accuracy percentage (0-100). Topics
	// never attempted are absent.
	TopicAccuracy map[string]float64 `json:"topic_accuracy"`

	// TopicAvgTime maps topic id to average solve time in seconds, over
	// answered attempts only.
	TopicAvgTime map[string]float64 `json:"topic_avg_time"`

	// RecentQuestions maps question id to the time it was last answered.
	RecentQuestions map[string]time.Time `json:"recent_questions"`

	// RecentOutcomes maps question id to whether the last attempt was
	// correct. Feeds the adaptive-mix strategy's wrong/correct buckets.
	RecentOutcomes map[string]bool `json:"recent_outcomes"`
}

// Category is the weak/strong/random classification of a topic.
type Category string

const (
	CategoryWeak   Category = "weak"
	CategoryStrong Category = "strong"
	CategoryRandom Category = "random"
)

// categories lists topic categories in their canonical order. Redistribution
// and tie-breaking follow this order.
var categories = []Category{CategoryWeak, CategoryStrong, CategoryRandom}

// TopicCategory classifies a topic against the accuracy threshold. Topics
// never attempted are random, not weak.
func (p PerformanceSnapshot) TopicCategory(topicID string, threshold float64) Category {
	acc, attempted := p.TopicAccuracy[topicID]
	if !attempted {
		return CategoryRandom
	}
	if acc < threshold {
		return CategoryWeak
	}
	return CategoryStrong
}
