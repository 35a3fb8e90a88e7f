package selection

import (
	"github.com/prepforge/prepforge/internal/catalog"
)

// SessionAnswer is one in-session answer, as fed to the streak evaluator.
// Sequences are ordered most recent first.
type SessionAnswer struct {
	QuestionID   string
	TopicID      string
	Difficulty   catalog.Difficulty
	Correct      bool
	TimeTakenSec float64
}

// Recommendation advises the substitution of the next single question in
// adaptive delivery mode. It never alters the pre-planned batch.
type Recommendation struct {
	// Rule names the streak rule that fired.
	Rule string

	// Difficulties are the allowed buckets for the next pick, most preferred
	// first.
	Difficulties []catalog.Difficulty

	// TopicID pins the next pick to a topic when set.
	TopicID string

	// PreferHighWeight biases the next pick toward a high-weight topic.
	PreferHighWeight bool
}

// EvaluateStreak inspects the most recent in-session answers (most recent
// first, capped at cfg.StreakWindow) and recommends the next question's
// difficulty and topic bias. The second return is false when no rule's
// precondition is met and the caller should keep the next pre-planned item.
//
// Precedence: three incorrect, three correct, last incorrect, two correct in
// the same topic, then the response-time biases.
func EvaluateStreak(cfg Config, recent []SessionAnswer) (Recommendation, bool) {
	// A partially populated config keeps the default pace thresholds; a zero
	// slow threshold would otherwise flag every answer as slow.
	window := cfg.StreakWindow
	if window <= 0 {
		window = defaultStreakWindow
	}
	slowSec := cfg.SlowResponseSec
	if slowSec <= 0 {
		slowSec = defaultSlowResponseSec
	}
	fastSec := cfg.FastResponseSec
	if fastSec <= 0 {
		fastSec = defaultFastResponseSec
	}
	fastAccuracyMin := cfg.FastAccuracyMin
	if fastAccuracyMin <= 0 {
		fastAccuracyMin = defaultFastAccuracyMin
	}
	if len(recent) > window {
		recent = recent[:window]
	}
	if len(recent) == 0 {
		return Recommendation{}, false
	}

	last := recent[0]

	// Three consecutive incorrect: rebuild confidence with an Easy pick,
	// ideally from a topic answered correctly before.
	if streakLen(recent, false) >= 3 {
		return Recommendation{
			Rule:         "confidence-rebuild",
			Difficulties: []catalog.Difficulty{catalog.DifficultyEasy},
			TopicID:      lastCorrectTopic(recent),
		}, true
	}

	// Three consecutive correct: challenge pick.
	if streakLen(recent, true) >= 3 {
		return Recommendation{
			Rule:             "challenge",
			Difficulties:     []catalog.Difficulty{catalog.DifficultyHard},
			PreferHighWeight: true,
		}, true
	}

	// Last answer incorrect: stay on the topic, keep it Easy or Moderate.
	if !last.Correct {
		return Recommendation{
			Rule:         "retry-topic",
			Difficulties: []catalog.Difficulty{catalog.DifficultyEasy, catalog.DifficultyModerate},
			TopicID:      last.TopicID,
		}, true
	}

	// Two consecutive correct in the same topic: step up within the topic.
	if len(recent) >= 2 && recent[1].Correct && recent[1].TopicID == last.TopicID {
		if harder, ok := stepUp(last.Difficulty); ok {
			return Recommendation{
				Rule:         "topic-step-up",
				Difficulties: []catalog.Difficulty{harder},
				TopicID:      last.TopicID,
			}, true
		}
	}

	// Fast and accurate: bias difficulty up.
	if last.TimeTakenSec > 0 && last.TimeTakenSec <= fastSec && accuracy(recent) >= fastAccuracyMin {
		if harder, ok := stepUp(last.Difficulty); ok {
			return Recommendation{
				Rule:         "pace-up",
				Difficulties: []catalog.Difficulty{harder},
			}, true
		}
	}

	// Slow response: bias difficulty down.
	if last.TimeTakenSec >= slowSec {
		easier, _ := stepDown(last.Difficulty)
		return Recommendation{
			Rule:         "pace-down",
			Difficulties: []catalog.Difficulty{easier},
		}, true
	}

	return Recommendation{}, false
}

// streakLen counts consecutive answers from the most recent with the given
// correctness.
func streakLen(recent []SessionAnswer, correct bool) int {
	n := 0
	for _, a := range recent {
		if a.Correct != correct {
			break
		}
		n++
	}
	return n
}

// lastCorrectTopic returns the topic of the most recent correct answer, or
// empty when none exists in the window.
func lastCorrectTopic(recent []SessionAnswer) string {
	for _, a := range recent {
		if a.Correct {
			return a.TopicID
		}
	}
	return ""
}

// accuracy returns the correct percentage over the window.
func accuracy(recent []SessionAnswer) float64 {
	if len(recent) == 0 {
		return 0
	}
	correct := 0
	for _, a := range recent {
		if a.Correct {
			correct++
		}
	}
	return float64(correct) / float64(len(recent)) * 100
}

func stepUp(d catalog.Difficulty) (catalog.Difficulty, bool) {
	switch d.Bucket() {
	case catalog.DifficultyEasy:
		return catalog.DifficultyModerate, true
	case catalog.DifficultyModerate:
		return catalog.DifficultyHard, true
	default:
		return catalog.DifficultyHard, false
	}
}

func stepDown(d catalog.Difficulty) (catalog.Difficulty, bool) {
	switch d.Bucket() {
	case catalog.DifficultyHard:
		return catalog.DifficultyModerate, true
	case catalog.DifficultyModerate:
		return catalog.DifficultyEasy, true
	default:
		return catalog.DifficultyEasy, false
	}
}
