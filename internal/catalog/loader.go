package catalog

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// bankFile is the YAML layout of a question-bank file: one topic plus its
// questions.
type bankFile struct {
	Topic struct {
		ID      string `yaml:"id"`
		Name    string `yaml:"name"`
		Subject string `yaml:"subject"`
	} `yaml:"topic"`
	Questions []struct {
		ID         string `yaml:"id"`
		Difficulty string `yaml:"difficulty"`
	} `yaml:"questions"`
}

// LoadDir walks rootDir and builds a snapshot from every question-bank YAML
// file found. Files that fail schema validation are skipped with a warning so
// one bad file cannot take down the whole bank.
func LoadDir(rootDir string, highWeight []string) (*Snapshot, error) {
	var questions []Question
	var topics []Topic

	err := filepath.Walk(rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}
		if !strings.HasSuffix(path, ".yaml") && !strings.HasSuffix(path, ".yml") {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		var raw map[string]any
		if err := yaml.Unmarshal(data, &raw); err != nil {
			slog.Warn("skipping unparseable bank YAML", "path", path, "error", err)
			return nil
		}
		if _, ok := raw["topic"]; !ok {
			return nil // Not a bank file
		}
		if err := validateBankDoc(raw); err != nil {
			slog.Warn("skipping invalid bank YAML", "path", path, "error", err)
			return nil
		}

		var bank bankFile
		if err := yaml.Unmarshal(data, &bank); err != nil {
			slog.Warn("skipping invalid bank YAML", "path", path, "error", err)
			return nil
		}

		topics = append(topics, Topic{
			ID:      bank.Topic.ID,
			Name:    bank.Topic.Name,
			Subject: ParseSubject(bank.Topic.Subject),
		})
		for _, q := range bank.Questions {
			questions = append(questions, Question{
				ID:         q.ID,
				TopicID:    bank.Topic.ID,
				Difficulty: ParseDifficulty(q.Difficulty),
				RawLabel:   q.Difficulty,
			})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("loading question bank: %w", err)
	}

	snap, err := NewSnapshot(questions, topics, highWeight)
	if err != nil {
		return nil, fmt.Errorf("building catalog snapshot: %w", err)
	}

	slog.Info("question bank loaded", "topics", len(topics), "questions", len(questions))
	return snap, nil
}
