package selection

import "time"

// buildExclusions merges caller-supplied exclusions with questions answered
// inside the recency window. The merged set applies to every candidate pool,
// fallback borrowing included.
func buildExclusions(req SelectionRequest, perf PerformanceSnapshot, window time.Duration) map[string]struct{} {
	excluded := make(map[string]struct{}, len(req.ExcludeQuestionIDs)+len(perf.RecentQuestions))

	for _, id := range req.ExcludeQuestionIDs {
		excluded[id] = struct{}{}
	}

	asOf := req.AsOf
	if asOf.IsZero() {
		asOf = time.Now()
	}
	cutoff := asOf.Add(-window)
	for id, answeredAt := range perf.RecentQuestions {
		if !answeredAt.Before(cutoff) {
			excluded[id] = struct{}{}
		}
	}

	return excluded
}
