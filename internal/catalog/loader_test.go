package catalog_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prepforge/prepforge/internal/catalog"
)

// setupTestBank writes a small two-subject question bank into a temp dir.
func setupTestBank(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	writeBankFile(t, dir, "physics-optics.yaml", `
topic:
  id: phy-optics
  name: Optics
  subject: Physics
questions:
  - id: q1
    difficulty: easy
  - id: q2
    difficulty: Hard
  - id: q3
`)
	writeBankFile(t, dir, "botany-genetics.yml", `
topic:
  id: bot-genetics
  name: Genetics
  subject: Botany
questions:
  - id: q4
    difficulty: medium
`)
	return dir
}

func writeBankFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture %s: %v", name, err)
	}
}

func TestLoadDir(t *testing.T) {
	dir := setupTestBank(t)

	snap, err := catalog.LoadDir(dir, nil)
	if err != nil {
		t.Fatalf("LoadDir() error = %v", err)
	}

	if snap.Len() != 4 {
		t.Errorf("Len() = %d, want 4", snap.Len())
	}
	if got := len(snap.TopicIDs()); got != 2 {
		t.Errorf("TopicIDs() = %d topics, want 2", got)
	}

	q1, ok := snap.Question("q1")
	if !ok {
		t.Fatal("Question(q1) not found")
	}
	if q1.Difficulty != catalog.DifficultyEasy {
		t.Errorf("q1 difficulty = %q, want Easy", q1.Difficulty)
	}

	// Missing difficulty label parses as Unknown but keeps the question.
	q3, ok := snap.Question("q3")
	if !ok {
		t.Fatal("Question(q3) not found")
	}
	if q3.Difficulty != catalog.DifficultyUnknown {
		t.Errorf("q3 difficulty = %q, want Unknown", q3.Difficulty)
	}

	q4, ok := snap.Question("q4")
	if !ok {
		t.Fatal("Question(q4) not found")
	}
	if q4.TopicID != "bot-genetics" {
		t.Errorf("q4 topic = %q, want bot-genetics", q4.TopicID)
	}
}

func TestLoadDir_HighWeight(t *testing.T) {
	dir := setupTestBank(t)

	snap, err := catalog.LoadDir(dir, []string{"genetics"})
	if err != nil {
		t.Fatalf("LoadDir() error = %v", err)
	}

	hw := snap.HighWeightTopicIDs()
	if len(hw) != 1 || hw[0] != "bot-genetics" {
		t.Errorf("HighWeightTopicIDs() = %v, want [bot-genetics]", hw)
	}
}

func TestLoadDir_SkipsNonBankYAML(t *testing.T) {
	dir := setupTestBank(t)

	// A YAML file without a topic key is not a bank file.
	writeBankFile(t, dir, "notes.yaml", `
title: revision notes
items:
  - remember the lens formula
`)
	// Non-YAML files are ignored outright.
	writeBankFile(t, dir, "README.md", "not yaml at all")

	snap, err := catalog.LoadDir(dir, nil)
	if err != nil {
		t.Fatalf("LoadDir() error = %v", err)
	}
	if got := len(snap.TopicIDs()); got != 2 {
		t.Errorf("TopicIDs() = %d topics, want 2", got)
	}
}

func TestLoadDir_SkipsSchemaViolations(t *testing.T) {
	dir := setupTestBank(t)

	// Subject outside the enum fails validation; the file is skipped, not
	// fatal.
	writeBankFile(t, dir, "bad-subject.yaml", `
topic:
  id: mat-algebra
  name: Algebra
  subject: Maths
questions:
  - id: q9
`)
	// Questions missing ids fail validation too.
	writeBankFile(t, dir, "bad-question.yaml", `
topic:
  id: che-bonding
  name: Chemical Bonding
  subject: Chemistry
questions:
  - difficulty: easy
`)

	snap, err := catalog.LoadDir(dir, nil)
	if err != nil {
		t.Fatalf("LoadDir() error = %v", err)
	}
	if got := len(snap.TopicIDs()); got != 2 {
		t.Errorf("TopicIDs() = %d topics, want 2 (invalid files skipped)", got)
	}
	if _, ok := snap.Question("q9"); ok {
		t.Error("q9 from an invalid file should not be loaded")
	}
}

func TestLoadDir_EmptyDir(t *testing.T) {
	snap, err := catalog.LoadDir(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("LoadDir() error = %v", err)
	}
	if snap.Len() != 0 {
		t.Errorf("Len() = %d, want 0", snap.Len())
	}
}
