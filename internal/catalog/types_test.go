package catalog_test

import (
	"testing"

	"github.com/prepforge/prepforge/internal/catalog"
)

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		raw  string
		want catalog.Difficulty
	}{
		{"easy", catalog.DifficultyEasy},
		{"Easy", catalog.DifficultyEasy},
		{"SIMPLE", catalog.DifficultyEasy},
		{"beginner", catalog.DifficultyEasy},
		{"1", catalog.DifficultyEasy},
		{"moderate", catalog.DifficultyModerate},
		{"Medium", catalog.DifficultyModerate},
		{"intermediate", catalog.DifficultyModerate},
		{"normal", catalog.DifficultyModerate},
		{"2", catalog.DifficultyModerate},
		{"hard", catalog.DifficultyHard},
		{"DIFFICULT", catalog.DifficultyHard},
		{"tough", catalog.DifficultyHard},
		{"advanced", catalog.DifficultyHard},
		{"3", catalog.DifficultyHard},
		{"", catalog.DifficultyUnknown},
		{"expert", catalog.DifficultyUnknown},
		{"4", catalog.DifficultyUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := catalog.ParseDifficulty(tt.raw); got != tt.want {
				t.Errorf("ParseDifficulty(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestDifficultyBucket(t *testing.T) {
	if got := catalog.DifficultyUnknown.Bucket(); got != catalog.DifficultyModerate {
		t.Errorf("Unknown.Bucket() = %q, want Moderate", got)
	}
	for _, d := range catalog.Difficulties {
		if got := d.Bucket(); got != d {
			t.Errorf("%q.Bucket() = %q, want unchanged", d, got)
		}
	}
}

func TestParseSubject(t *testing.T) {
	tests := []struct {
		raw  string
		want catalog.Subject
	}{
		{"Physics", catalog.SubjectPhysics},
		{"physics", catalog.SubjectPhysics},
		{"CHEMISTRY", catalog.SubjectChemistry},
		{"Botany", catalog.SubjectBotany},
		{"zoology", catalog.SubjectZoology},
		{"Maths", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := catalog.ParseSubject(tt.raw); got != tt.want {
			t.Errorf("ParseSubject(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestGroupOf(t *testing.T) {
	tests := []struct {
		subject catalog.Subject
		want    catalog.Group
	}{
		{catalog.SubjectPhysics, catalog.GroupPhysics},
		{catalog.SubjectChemistry, catalog.GroupChemistry},
		{catalog.SubjectBotany, catalog.GroupBiology},
		{catalog.SubjectZoology, catalog.GroupBiology},
	}

	for _, tt := range tests {
		if got := catalog.GroupOf(tt.subject); got != tt.want {
			t.Errorf("GroupOf(%q) = %q, want %q", tt.subject, got, tt.want)
		}
	}
}
