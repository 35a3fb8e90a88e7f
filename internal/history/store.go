// Package history provides read access to a student's answer history and
// builds the performance snapshots the selection engine consumes.
package history

import (
	"context"
	"sort"
	"sync"
	"time"
)

// Answer is one historical answer by a student.
type Answer struct {
	StudentID    string    `json:"student_id"`
	SessionID    string    `json:"session_id"`
	QuestionID   string    `json:"question_id"`
	TopicID      string    `json:"topic_id"`
	Correct      bool      `json:"correct"`
	TimeTakenSec *float64  `json:"time_taken_sec,omitempty"` // nil when the question was skipped
	AnsweredAt   time.Time `json:"answered_at"`
}

// AnswerStore exposes a student's answers since a point in time. The zero
// time means all history. Implementations return answers ordered most recent
// first.
type AnswerStore interface {
	AnswersSince(ctx context.Context, studentID string, since time.Time) ([]Answer, error)
}

// MemoryStore is an in-memory AnswerStore for tests and embedding.
type MemoryStore struct {
	answers map[string][]Answer // student id -> answers
	mu      sync.RWMutex
}

// NewMemoryStore creates an empty in-memory answer store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		answers: make(map[string][]Answer),
	}
}

// Add records an answer.
func (s *MemoryStore) Add(a Answer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.answers[a.StudentID] = append(s.answers[a.StudentID], a)
}

func (s *MemoryStore) AnswersSince(_ context.Context, studentID string, since time.Time) ([]Answer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Answer
	for _, a := range s.answers[studentID] {
		if since.IsZero() || !a.AnsweredAt.Before(since) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].AnsweredAt.After(out[j].AnsweredAt)
	})
	return out, nil
}
