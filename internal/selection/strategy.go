package selection

import (
	"sort"

	"github.com/prepforge/prepforge/internal/catalog"
)

// Strategy turns a selection request into a result against a catalog and
// performance snapshot. Strategies are pure: no I/O, no retained state, and
// identical inputs always produce identical results.
type Strategy interface {
	Name() string
	Select(req SelectionRequest, cat *catalog.Snapshot, perf PerformanceSnapshot) (SelectionResult, error)
}

// RuleStrategy is the full rule engine: subject-ratio quota planning, the
// weak/strong/random split, per-cell difficulty buckets, deterministic
// hash-ordered picking and fallback borrowing.
type RuleStrategy struct {
	cfg Config
}

// NewRuleStrategy creates the rule-based strategy with the given config.
func NewRuleStrategy(cfg Config) *RuleStrategy {
	return &RuleStrategy{cfg: cfg}
}

func (s *RuleStrategy) Name() string { return "rules" }

// Select runs the batch pipeline: resolve the topic universe, merge
// exclusions, plan quotas, fill each cell from its pool, then borrow for any
// cell left short.
func (s *RuleStrategy) Select(req SelectionRequest, cat *catalog.Snapshot, perf PerformanceSnapshot) (SelectionResult, error) {
	if req.Count <= 0 {
		return SelectionResult{}, ErrInvalidCount
	}

	universe, err := resolveUniverse(cat, req)
	if err != nil {
		return SelectionResult{}, err
	}

	excluded := buildExclusions(req, perf, s.cfg.RecencyWindow)
	ts := buildTopicSets(cat, universe, perf, s.cfg.AccuracyThreshold)

	diffSplit := s.cfg.DifficultySplit
	if req.DifficultyOverride != nil {
		diffSplit = *req.DifficultyOverride
	}

	plan := planQuotas(s.cfg, req.Count, ts, diffSplit)
	pools := buildPools(cat, ts, excluded)

	selected, shortfalls := selectFromPools(plan, pools, req.StudentID, req.SessionID)

	restricted := req.Mode != ModeRandom && len(req.TopicIDs) > 0
	resolveFallback(shortfalls, pools, cat, excluded, selected, restricted, req.StudentID, req.SessionID)

	if !restricted {
		ensureHighWeight(cat, excluded, selected, req.Count, req.StudentID, req.SessionID)
	}

	return buildResult(selected, req.Count), nil
}

// ensureHighWeight guarantees that a full-universe selection includes at least
// one question from a high-weight topic whenever one is eligible. When the
// result is already full, the lowest-ranked pick makes room; the swap is as
// deterministic as the selection itself.
func ensureHighWeight(cat *catalog.Snapshot, excluded, selected map[string]struct{}, count int, studentID, sessionID string) {
	hwTopics := cat.HighWeightTopicIDs()
	if len(hwTopics) == 0 {
		return
	}

	for qid := range selected {
		q, ok := cat.Question(qid)
		if !ok {
			continue
		}
		if topic, ok := cat.Topic(q.TopicID); ok && topic.HighWeight {
			return
		}
	}

	var candidates []string
	for _, topicID := range hwTopics {
		for _, qid := range cat.QuestionsForTopic(topicID) {
			if _, skip := excluded[qid]; skip {
				continue
			}
			candidates = append(candidates, qid)
		}
	}
	if len(candidates) == 0 {
		return
	}
	pick := rankIDs(candidates, studentID, sessionID)[0]

	if len(selected) >= count {
		ordered := make([]string, 0, len(selected))
		for qid := range selected {
			ordered = append(ordered, qid)
		}
		ordered = rankIDs(ordered, studentID, sessionID)
		delete(selected, ordered[len(ordered)-1])
	}
	selected[pick] = struct{}{}
}

// buildResult converts the selected set into a sorted, size-checked result.
func buildResult(selected map[string]struct{}, count int) SelectionResult {
	ids := make([]string, 0, len(selected))
	for id := range selected {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return SelectionResult{
		QuestionIDs: ids,
		Shortfall:   len(ids) < count,
	}
}
