package catalog

import (
	"fmt"
	"sort"
)

// Snapshot is a read-only view of the question bank. All lookups are by
// value; nothing in a Snapshot is mutated after construction.
type Snapshot struct {
	questions        map[string]Question
	topics           map[string]Topic
	questionsByTopic map[string][]string // topic id -> sorted question ids
	topicIDs         []string            // sorted
	questionIDs      []string            // sorted
}

// NewSnapshot builds a snapshot from questions and topics. Topic names on the
// highWeight list (case-folded match) get their HighWeight flag set. Questions
// referencing an unknown topic are rejected.
func NewSnapshot(questions []Question, topics []Topic, highWeight []string) (*Snapshot, error) {
	hw := make(map[string]struct{}, len(highWeight))
	for _, name := range highWeight {
		hw[fold.String(name)] = struct{}{}
	}

	s := &Snapshot{
		questions:        make(map[string]Question, len(questions)),
		topics:           make(map[string]Topic, len(topics)),
		questionsByTopic: make(map[string][]string),
	}

	for _, t := range topics {
		if t.ID == "" {
			return nil, fmt.Errorf("topic with empty id")
		}
		if _, dup := s.topics[t.ID]; dup {
			return nil, fmt.Errorf("duplicate topic id: %s", t.ID)
		}
		if _, ok := hw[fold.String(t.Name)]; ok {
			t.HighWeight = true
		}
		s.topics[t.ID] = t
		s.topicIDs = append(s.topicIDs, t.ID)
	}

	for _, q := range questions {
		if q.ID == "" {
			return nil, fmt.Errorf("question with empty id")
		}
		if _, dup := s.questions[q.ID]; dup {
			return nil, fmt.Errorf("duplicate question id: %s", q.ID)
		}
		if _, ok := s.topics[q.TopicID]; !ok {
			return nil, fmt.Errorf("question %s references unknown topic %s", q.ID, q.TopicID)
		}
		s.questions[q.ID] = q
		s.questionIDs = append(s.questionIDs, q.ID)
		s.questionsByTopic[q.TopicID] = append(s.questionsByTopic[q.TopicID], q.ID)
	}

	sort.Strings(s.topicIDs)
	sort.Strings(s.questionIDs)
	for _, ids := range s.questionsByTopic {
		sort.Strings(ids)
	}

	return s, nil
}

// Question returns the question with the given id.
func (s *Snapshot) Question(id string) (Question, bool) {
	q, ok := s.questions[id]
	return q, ok
}

// Topic returns the topic with the given id.
func (s *Snapshot) Topic(id string) (Topic, bool) {
	t, ok := s.topics[id]
	return t, ok
}

// TopicIDs returns all topic ids in ascending order.
func (s *Snapshot) TopicIDs() []string {
	return append([]string(nil), s.topicIDs...)
}

// QuestionIDs returns all question ids in ascending order.
func (s *Snapshot) QuestionIDs() []string {
	return append([]string(nil), s.questionIDs...)
}

// QuestionsForTopic returns the question ids of a topic in ascending order.
func (s *Snapshot) QuestionsForTopic(topicID string) []string {
	return append([]string(nil), s.questionsByTopic[topicID]...)
}

// HighWeightTopicIDs returns the ids of all high-weight topics in ascending order.
func (s *Snapshot) HighWeightTopicIDs() []string {
	var ids []string
	for _, id := range s.topicIDs {
		if s.topics[id].HighWeight {
			ids = append(ids, id)
		}
	}
	return ids
}

// Len returns the number of questions in the snapshot.
func (s *Snapshot) Len() int {
	return len(s.questions)
}
