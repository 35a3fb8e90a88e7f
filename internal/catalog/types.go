// Package catalog exposes the question bank as immutable read-only snapshots.
package catalog

import (
	"golang.org/x/text/cases"
)

// Subject is one of the fixed curriculum subjects.
type Subject string

const (
	SubjectPhysics   Subject = "Physics"
	SubjectChemistry Subject = "Chemistry"
	SubjectBotany    Subject = "Botany"
	SubjectZoology   Subject = "Zoology"
)

// Group is the subject grouping used for ratio allocation. Botany and
// Zoology share the Biology group.
type Group string

const (
	GroupPhysics   Group = "Physics"
	GroupChemistry Group = "Chemistry"
	GroupBiology   Group = "Biology"
)

// Groups lists all allocation groups in their canonical order.
var Groups = []Group{GroupBiology, GroupChemistry, GroupPhysics}

// GroupOf maps a subject to its allocation group.
func GroupOf(s Subject) Group {
	switch s {
	case SubjectBotany, SubjectZoology:
		return GroupBiology
	case SubjectChemistry:
		return GroupChemistry
	default:
		return GroupPhysics
	}
}

// Difficulty is a normalized question difficulty bucket.
type Difficulty string

const (
	DifficultyEasy     Difficulty = "Easy"
	DifficultyModerate Difficulty = "Moderate"
	DifficultyHard     Difficulty = "Hard"
	DifficultyUnknown  Difficulty = "Unknown"
)

// Difficulties lists the selectable buckets in their canonical order.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyModerate, DifficultyHard}

var fold = cases.Fold()

// ParseDifficulty normalizes a raw difficulty label. Unrecognized labels map
// to Unknown; callers that need a bucket treat Unknown as Moderate.
func ParseDifficulty(raw string) Difficulty {
	switch fold.String(raw) {
	case "easy", "simple", "beginner", "1":
		return DifficultyEasy
	case "moderate", "medium", "intermediate", "normal", "2":
		return DifficultyModerate
	case "hard", "difficult", "tough", "advanced", "3":
		return DifficultyHard
	default:
		return DifficultyUnknown
	}
}

// Bucket returns the difficulty bucket used for pool membership. Unknown
// labels count as Moderate.
func (d Difficulty) Bucket() Difficulty {
	if d == DifficultyUnknown {
		return DifficultyModerate
	}
	return d
}

// ParseSubject normalizes a raw subject label. Unrecognized subjects map to
// the empty string.
func ParseSubject(raw string) Subject {
	switch fold.String(raw) {
	case "physics":
		return SubjectPhysics
	case "chemistry":
		return SubjectChemistry
	case "botany":
		return SubjectBotany
	case "zoology":
		return SubjectZoology
	default:
		return ""
	}
}

// Question is a single catalog entry. Immutable once inside a Snapshot.
type Question struct {
	ID         string
	TopicID    string
	Difficulty Difficulty
	RawLabel   string // label as found in the source, kept for diagnostics
}

// Topic is a curriculum unit belonging to one subject.
type Topic struct {
	ID         string
	Name       string
	Subject    Subject
	HighWeight bool // member of the configured priority-topic name list
}
