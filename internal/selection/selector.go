package selection

import (
	"bytes"
	"sort"

	"golang.org/x/crypto/blake2b"
)

// rankIDs orders candidate ids reproducibly. Seeded calls sort by the
// blake2b digest of (student id, session id, question id), so identical
// inputs always produce the identical order while different sessions shuffle
// differently. Anonymous calls keep ascending id order: still deterministic,
// never unseeded randomness.
func rankIDs(ids []string, studentID, sessionID string) []string {
	ordered := append([]string(nil), ids...)
	if studentID == "" && sessionID == "" {
		sort.Strings(ordered)
		return ordered
	}

	keys := make(map[string][32]byte, len(ordered))
	for _, id := range ordered {
		keys[id] = rankKey(studentID, sessionID, id)
	}
	sort.Slice(ordered, func(a, b int) bool {
		ka, kb := keys[ordered[a]], keys[ordered[b]]
		if c := bytes.Compare(ka[:], kb[:]); c != 0 {
			return c < 0
		}
		return ordered[a] < ordered[b]
	})
	return ordered
}

// rankKey derives the stable per-question ordering key.
func rankKey(studentID, sessionID, questionID string) [32]byte {
	return blake2b.Sum256([]byte(studentID + "|" + sessionID + "|" + questionID))
}

// selectFromPools fills each quota cell from its pool in plan order. When a
// pool is smaller than its quota the whole pool is taken and the deficit is
// left for the fallback resolver.
func selectFromPools(plan QuotaPlan, pools map[cellKey][]string, studentID, sessionID string) (map[string]struct{}, []QuotaCell) {
	selected := make(map[string]struct{})
	var shortfalls []QuotaCell

	for _, cell := range plan.Cells {
		pool := pools[cellKey{Group: cell.Group, Category: cell.Category, Difficulty: cell.Difficulty}]
		ordered := rankIDs(pool, studentID, sessionID)

		taken := 0
		for _, qid := range ordered {
			if taken == cell.Count {
				break
			}
			if _, dup := selected[qid]; dup {
				continue
			}
			selected[qid] = struct{}{}
			taken++
		}
		if taken < cell.Count {
			short := cell
			short.Count = cell.Count - taken
			shortfalls = append(shortfalls, short)
		}
	}

	return selected, shortfalls
}
