package selection

import (
	"sort"

	"github.com/prepforge/prepforge/internal/catalog"
)

// cellKey addresses one candidate pool.
type cellKey struct {
	Group      catalog.Group
	Category   Category
	Difficulty catalog.Difficulty
}

// buildPools materializes the eligible question ids for every (group,
// category, difficulty) cell of the universe. Excluded ids never enter a
// pool; unknown difficulty labels land in the Moderate bucket.
func buildPools(cat *catalog.Snapshot, ts topicSets, excluded map[string]struct{}) map[cellKey][]string {
	pools := make(map[cellKey][]string)

	for group, cats := range ts.byGroup {
		for category, topicIDs := range cats {
			for _, topicID := range topicIDs {
				for _, qid := range cat.QuestionsForTopic(topicID) {
					if _, skip := excluded[qid]; skip {
						continue
					}
					q, ok := cat.Question(qid)
					if !ok {
						continue
					}
					key := cellKey{Group: group, Category: category, Difficulty: q.Difficulty.Bucket()}
					pools[key] = append(pools[key], qid)
				}
			}
		}
	}

	for _, ids := range pools {
		sort.Strings(ids)
	}
	return pools
}
