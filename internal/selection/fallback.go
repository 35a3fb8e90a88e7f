package selection

import (
	"log/slog"

	"github.com/prepforge/prepforge/internal/catalog"
)

// resolveFallback borrows questions for quota cells whose pools ran dry.
// For each shortfall cell the precedence is: other difficulty buckets of the
// same (group, category), then other categories of the same group, then any
// cell in the universe, and finally — only when the caller restricted the
// topic set — the full catalog. Exclusions hold throughout; exhausting the
// catalog leaves a shortfall, never an error.
func resolveFallback(
	shortfalls []QuotaCell,
	pools map[cellKey][]string,
	cat *catalog.Snapshot,
	excluded map[string]struct{},
	selected map[string]struct{},
	restricted bool,
	studentID, sessionID string,
) {
	for _, cell := range shortfalls {
		remaining := cell.Count

		// (a) same group, same category, other difficulty buckets.
		for _, d := range catalog.Difficulties {
			if remaining == 0 {
				break
			}
			if d == cell.Difficulty {
				continue
			}
			remaining = take(pools[cellKey{cell.Group, cell.Category, d}], remaining, selected, studentID, sessionID)
		}

		// (b) same group, other categories.
		for _, c := range categories {
			if remaining == 0 {
				break
			}
			if c == cell.Category {
				continue
			}
			for _, d := range catalog.Difficulties {
				if remaining == 0 {
					break
				}
				remaining = take(pools[cellKey{cell.Group, c, d}], remaining, selected, studentID, sessionID)
			}
		}

		// (c) any group within the resolved universe.
		for _, g := range catalog.Groups {
			if remaining == 0 {
				break
			}
			if g == cell.Group {
				continue
			}
			for _, c := range categories {
				for _, d := range catalog.Difficulties {
					if remaining == 0 {
						break
					}
					remaining = take(pools[cellKey{g, c, d}], remaining, selected, studentID, sessionID)
				}
			}
		}

		// (d) last resort for caller-restricted universes: the full catalog.
		if remaining > 0 && restricted {
			var eligible []string
			for _, qid := range cat.QuestionIDs() {
				if _, skip := excluded[qid]; skip {
					continue
				}
				eligible = append(eligible, qid)
			}
			remaining = take(eligible, remaining, selected, studentID, sessionID)
		}

		if remaining > 0 {
			slog.Debug("quota cell left short after fallback",
				"group", cell.Group,
				"category", cell.Category,
				"difficulty", cell.Difficulty,
				"missing", remaining,
			)
		}
	}
}

// take selects up to n ids from candidates in deterministic rank order,
// skipping anything already selected. It returns the count still missing.
func take(candidates []string, n int, selected map[string]struct{}, studentID, sessionID string) int {
	if n <= 0 || len(candidates) == 0 {
		return n
	}
	for _, qid := range rankIDs(candidates, studentID, sessionID) {
		if n == 0 {
			break
		}
		if _, dup := selected[qid]; dup {
			continue
		}
		selected[qid] = struct{}{}
		n--
	}
	return n
}
