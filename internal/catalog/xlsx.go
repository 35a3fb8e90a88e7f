package catalog

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"
)

const (
	topicsSheet    = "Topics"
	questionsSheet = "Questions"
)

// LoadWorkbook builds a snapshot from an .xlsx question-bank workbook. The
// workbook carries a "Topics" sheet (id, name, subject) and a "Questions"
// sheet (id, topic_id, difficulty), each with a header row.
func LoadWorkbook(path string, highWeight []string) (*Snapshot, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	topicRows, err := f.GetRows(topicsSheet)
	if err != nil {
		return nil, fmt.Errorf("reading %s sheet: %w", topicsSheet, err)
	}
	questionRows, err := f.GetRows(questionsSheet)
	if err != nil {
		return nil, fmt.Errorf("reading %s sheet: %w", questionsSheet, err)
	}

	var topics []Topic
	for i, row := range topicRows {
		if i == 0 {
			continue // header
		}
		if len(row) < 3 || strings.TrimSpace(row[0]) == "" {
			slog.Warn("skipping incomplete topic row", "row", i+1)
			continue
		}
		topics = append(topics, Topic{
			ID:      strings.TrimSpace(row[0]),
			Name:    strings.TrimSpace(row[1]),
			Subject: ParseSubject(row[2]),
		})
	}

	var questions []Question
	for i, row := range questionRows {
		if i == 0 {
			continue
		}
		if len(row) < 2 || strings.TrimSpace(row[0]) == "" {
			slog.Warn("skipping incomplete question row", "row", i+1)
			continue
		}
		label := ""
		if len(row) > 2 {
			label = strings.TrimSpace(row[2])
		}
		questions = append(questions, Question{
			ID:         strings.TrimSpace(row[0]),
			TopicID:    strings.TrimSpace(row[1]),
			Difficulty: ParseDifficulty(label),
			RawLabel:   label,
		})
	}

	snap, err := NewSnapshot(questions, topics, highWeight)
	if err != nil {
		return nil, fmt.Errorf("building catalog snapshot: %w", err)
	}

	slog.Info("question bank loaded from workbook",
		"path", path,
		"topics", len(topics),
		"questions", len(questions),
	)
	return snap, nil
}
