// Package selection implements the deterministic question-selection engine:
// quota planning across subjects, weak/strong/random topic categories and
// difficulty buckets, reproducible hash-ordered picking, fallback borrowing,
// and the streak evaluator for adaptive one-at-a-time delivery.
package selection

import (
	"time"

	"github.com/prepforge/prepforge/internal/catalog"
)

const (
	defaultAccuracyThreshold = 60.0
	defaultRecencyWindow     = 15 * 24 * time.Hour
	defaultSlowResponseSec   = 120.0
	defaultFastResponseSec   = 30.0
	defaultFastAccuracyMin   = 80.0
	defaultStreakWindow      = 5
)

// Config holds every tunable of the engine. It is immutable after
// construction; the engine never reads process-wide state.
type Config struct {
	// SubjectRatios partitions the requested count across allocation groups.
	SubjectRatios map[catalog.Group]int

	// CategorySplit partitions each group's slots across topic categories.
	CategorySplit CategorySplit

	// DifficultySplit partitions each leaf cell across difficulty buckets.
	DifficultySplit DifficultySplit

	// AccuracyThreshold separates weak topics (below) from strong (at/above),
	// as a percentage.
	AccuracyThreshold float64

	// RecencyWindow excludes questions answered within this window.
	RecencyWindow time.Duration

	// SlowResponseSec marks an in-session answer as slow (streak rule bias down).
	SlowResponseSec float64

	// FastResponseSec and FastAccuracyMin together mark a fast, accurate run
	// (streak rule bias up).
	FastResponseSec float64
	FastAccuracyMin float64

	// StreakWindow caps how many recent in-session answers the streak
	// evaluator considers.
	StreakWindow int
}

// CategorySplit is the weak/strong/random share of a group's slots.
type CategorySplit struct {
	Weak   float64
	Strong float64
	Random float64
}

// DifficultySplit is the per-bucket share of a leaf cell.
type DifficultySplit struct {
	Easy     float64
	Moderate float64
	Hard     float64
}

// DefaultConfig returns the standard engine configuration: 1:1:2
// Physics:Chemistry:Biology, 70/20/10 weak/strong/random, 30/40/30
// Easy/Moderate/Hard, 60% accuracy threshold and a 15-day recency window.
func DefaultConfig() Config {
	return Config{
		SubjectRatios: map[catalog.Group]int{
			catalog.GroupPhysics:   1,
			catalog.GroupChemistry: 1,
			catalog.GroupBiology:   2,
		},
		CategorySplit:     CategorySplit{Weak: 0.7, Strong: 0.2, Random: 0.1},
		DifficultySplit:   DifficultySplit{Easy: 0.3, Moderate: 0.4, Hard: 0.3},
		AccuracyThreshold: defaultAccuracyThreshold,
		RecencyWindow:     defaultRecencyWindow,
		SlowResponseSec:   defaultSlowResponseSec,
		FastResponseSec:   defaultFastResponseSec,
		FastAccuracyMin:   defaultFastAccuracyMin,
		StreakWindow:      defaultStreakWindow,
	}
}

func (s DifficultySplit) share(d catalog.Difficulty) float64 {
	switch d {
	case catalog.DifficultyEasy:
		return s.Easy
	case catalog.DifficultyHard:
		return s.Hard
	default:
		return s.Moderate
	}
}
