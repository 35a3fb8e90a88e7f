package selection

import (
	"sort"

	"github.com/prepforge/prepforge/internal/catalog"
)

// QuotaCell is one leaf of the allocation plan: a (group, category,
// difficulty) triple with an integer target count.
type QuotaCell struct {
	Group      catalog.Group
	Category   Category
	Difficulty catalog.Difficulty
	Count      int
}

// QuotaPlan is the full nested allocation. Cells appear in canonical order
// (group, then category, then difficulty) and their counts always sum to the
// requested total.
type QuotaPlan struct {
	Cells []QuotaCell
}

// Total returns the sum of all leaf quotas.
func (p QuotaPlan) Total() int {
	total := 0
	for _, c := range p.Cells {
		total += c.Count
	}
	return total
}

// topicSets indexes the universe topics by group and category.
type topicSets struct {
	byGroup map[catalog.Group]map[Category][]string
}

func buildTopicSets(cat *catalog.Snapshot, universe []string, perf PerformanceSnapshot, threshold float64) topicSets {
	ts := topicSets{byGroup: make(map[catalog.Group]map[Category][]string)}
	for _, topicID := range universe {
		topic, ok := cat.Topic(topicID)
		if !ok {
			continue
		}
		group := catalog.GroupOf(topic.Subject)
		if ts.byGroup[group] == nil {
			ts.byGroup[group] = make(map[Category][]string)
		}
		cat := perf.TopicCategory(topicID, threshold)
		ts.byGroup[group][cat] = append(ts.byGroup[group][cat], topicID)
	}
	for _, cats := range ts.byGroup {
		for _, ids := range cats {
			sort.Strings(ids)
		}
	}
	return ts
}

// groupsPresent returns the allocation groups with at least one universe
// topic, in canonical order.
func (ts topicSets) groupsPresent() []catalog.Group {
	var present []catalog.Group
	for _, g := range catalog.Groups {
		if len(ts.byGroup[g]) > 0 {
			present = append(present, g)
		}
	}
	return present
}

// categoriesPresent returns the categories of a group with at least one
// topic, in weak/strong/random order.
func (ts topicSets) categoriesPresent(g catalog.Group) []Category {
	var present []Category
	for _, c := range categories {
		if len(ts.byGroup[g][c]) > 0 {
			present = append(present, c)
		}
	}
	return present
}

// planQuotas builds the nested allocation: subject ratio, then the
// weak/strong/random split, then the difficulty split. Every rounding
// remainder is assigned deterministically; the plan total always equals
// count.
func planQuotas(cfg Config, count int, ts topicSets, diffSplit DifficultySplit) QuotaPlan {
	var plan QuotaPlan

	groups := ts.groupsPresent()
	if len(groups) == 0 {
		return plan
	}

	groupWeights := make([]float64, len(groups))
	for i, g := range groups {
		groupWeights[i] = float64(cfg.SubjectRatios[g])
	}
	groupCounts := apportion(count, groupWeights)
	if count >= len(groups) {
		enforceFloor(groupCounts)
	}

	for gi, g := range groups {
		if groupCounts[gi] == 0 {
			continue
		}

		cats := ts.categoriesPresent(g)
		catWeights := make([]float64, len(cats))
		for i, c := range cats {
			catWeights[i] = cfg.CategorySplit.share(c)
		}
		catCounts := apportion(groupCounts[gi], catWeights)
		if groupCounts[gi] >= 3 {
			enforceFloor(catCounts)
		}

		for ci, c := range cats {
			if catCounts[ci] == 0 {
				continue
			}
			plan.Cells = append(plan.Cells, splitDifficulty(g, c, catCounts[ci], diffSplit)...)
		}
	}

	return plan
}

// splitDifficulty applies the difficulty split within one leaf cell. The base
// shares are floored and the whole remainder goes to Moderate; when the cell
// holds at least three slots every bucket keeps at least one.
func splitDifficulty(g catalog.Group, c Category, count int, split DifficultySplit) []QuotaCell {
	counts := make([]int, len(catalog.Difficulties))
	assigned := 0
	moderateIdx := 0
	for i, d := range catalog.Difficulties {
		counts[i] = int(float64(count) * split.share(d))
		assigned += counts[i]
		if d == catalog.DifficultyModerate {
			moderateIdx = i
		}
	}
	counts[moderateIdx] += count - assigned

	if count >= 3 {
		enforceFloor(counts)
	}

	cells := make([]QuotaCell, 0, len(counts))
	for i, d := range catalog.Difficulties {
		if counts[i] > 0 {
			cells = append(cells, QuotaCell{Group: g, Category: c, Difficulty: d, Count: counts[i]})
		}
	}
	return cells
}

// share returns the configured slot share of a category.
func (s CategorySplit) share(c Category) float64 {
	switch c {
	case CategoryWeak:
		return s.Weak
	case CategoryStrong:
		return s.Strong
	default:
		return s.Random
	}
}

// apportion splits total across weights with largest-remainder rounding.
// Remainder ties break toward the earlier index, so callers encode their
// precedence in slice order. Zero-weight entries receive nothing.
func apportion(total int, weights []float64) []int {
	counts := make([]int, len(weights))
	sum := 0.0
	for _, w := range weights {
		sum += w
	}
	if sum == 0 || total <= 0 {
		return counts
	}

	type frac struct {
		idx  int
		part float64
	}
	assigned := 0
	fracs := make([]frac, 0, len(weights))
	for i, w := range weights {
		exact := float64(total) * w / sum
		counts[i] = int(exact)
		assigned += counts[i]
		fracs = append(fracs, frac{idx: i, part: exact - float64(counts[i])})
	}

	sort.SliceStable(fracs, func(a, b int) bool {
		return fracs[a].part > fracs[b].part
	})
	for i := 0; i < total-assigned; i++ {
		counts[fracs[i%len(fracs)].idx]++
	}
	return counts
}

// enforceFloor moves slots from the fullest entries so that no entry stays at
// zero. It assumes the slice total is at least its length.
func enforceFloor(counts []int) {
	for i := range counts {
		if counts[i] > 0 {
			continue
		}
		max := -1
		for j := range counts {
			if counts[j] > 1 && (max == -1 || counts[j] > counts[max]) {
				max = j
			}
		}
		if max == -1 {
			return
		}
		counts[max]--
		counts[i]++
	}
}
