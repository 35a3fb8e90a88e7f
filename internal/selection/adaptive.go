package selection

import (
	"github.com/prepforge/prepforge/internal/catalog"
)

// AdaptiveMixStrategy is the simpler alternate selection strategy: 60% never
// attempted, 30% previously wrong, 10% previously correct. It reuses the same
// deterministic ordering as the rule engine and honors caller exclusions, but
// deliberately skips the recency window — re-serving recently missed
// questions is its point.
type AdaptiveMixStrategy struct {
	NewShare     float64
	WrongShare   float64
	CorrectShare float64
}

// NewAdaptiveMixStrategy creates the strategy with the standard 60/30/10 mix.
func NewAdaptiveMixStrategy() *AdaptiveMixStrategy {
	return &AdaptiveMixStrategy{NewShare: 0.6, WrongShare: 0.3, CorrectShare: 0.1}
}

func (s *AdaptiveMixStrategy) Name() string { return "adaptive-mix" }

// Select buckets the universe's questions by prior outcome and fills the
// 60/30/10 quotas, borrowing in new -> wrong -> correct order when a bucket
// runs dry.
func (s *AdaptiveMixStrategy) Select(req SelectionRequest, cat *catalog.Snapshot, perf PerformanceSnapshot) (SelectionResult, error) {
	if req.Count <= 0 {
		return SelectionResult{}, ErrInvalidCount
	}

	universe, err := resolveUniverse(cat, req)
	if err != nil {
		return SelectionResult{}, err
	}

	excluded := make(map[string]struct{}, len(req.ExcludeQuestionIDs))
	for _, id := range req.ExcludeQuestionIDs {
		excluded[id] = struct{}{}
	}

	var fresh, wrong, correct []string
	for _, topicID := range universe {
		for _, qid := range cat.QuestionsForTopic(topicID) {
			if _, skip := excluded[qid]; skip {
				continue
			}
			outcome, attempted := perf.RecentOutcomes[qid]
			switch {
			case !attempted:
				fresh = append(fresh, qid)
			case outcome:
				correct = append(correct, qid)
			default:
				wrong = append(wrong, qid)
			}
		}
	}

	buckets := [][]string{fresh, wrong, correct}
	quotas := apportion(req.Count, []float64{s.NewShare, s.WrongShare, s.CorrectShare})

	selected := make(map[string]struct{})
	deficit := 0
	for i, bucket := range buckets {
		deficit += take(bucket, quotas[i], selected, req.StudentID, req.SessionID)
	}

	// Borrow across buckets for whatever is still missing.
	for _, bucket := range buckets {
		if deficit == 0 {
			break
		}
		deficit = take(bucket, deficit, selected, req.StudentID, req.SessionID)
	}

	return buildResult(selected, req.Count), nil
}
