package selection

import (
	"log/slog"
	"sort"

	"github.com/prepforge/prepforge/internal/catalog"
)

// resolveUniverse determines the candidate topic set. A topic-restricted
// request keeps exactly the caller's topics; an empty set or random mode
// expands to the full catalog, which guarantees the configured high-weight
// topics are present. High-weight topics are never force-added into an
// explicitly restricted set.
func resolveUniverse(cat *catalog.Snapshot, req SelectionRequest) ([]string, error) {
	mode := req.Mode
	if mode == "" {
		mode = ModeTopic
	}

	if mode == ModeTopic && len(req.TopicIDs) > 0 {
		var universe, missing []string
		for _, id := range req.TopicIDs {
			if _, ok := cat.Topic(id); ok {
				universe = append(universe, id)
			} else {
				missing = append(missing, id)
			}
		}
		if len(universe) == 0 {
			sort.Strings(missing)
			return nil, &TopicsNotFoundError{TopicIDs: missing}
		}
		if len(missing) > 0 {
			slog.Warn("ignoring unknown topics in request", "topics", missing)
		}
		sort.Strings(universe)
		return dedupe(universe), nil
	}

	// Full catalog. The high-weight inclusion rule is a no-op here since
	// every configured topic is already in the universe, but keep the check
	// so a future partial expansion cannot silently drop them.
	universe := cat.TopicIDs()
	present := make(map[string]struct{}, len(universe))
	for _, id := range universe {
		present[id] = struct{}{}
	}
	for _, id := range cat.HighWeightTopicIDs() {
		if _, ok := present[id]; !ok {
			universe = append(universe, id)
		}
	}
	sort.Strings(universe)
	return universe, nil
}

func dedupe(sorted []string) []string {
	out := sorted[:0]
	for i, id := range sorted {
		if i == 0 || sorted[i-1] != id {
			out = append(out, id)
		}
	}
	return out
}
