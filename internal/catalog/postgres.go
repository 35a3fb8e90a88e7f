package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const dbTimeout = 5 * time.Second

// PostgresSource reads the question bank from PostgreSQL.
type PostgresSource struct {
	pool       *pgxpool.Pool
	highWeight []string
}

// NewPostgresSource creates a catalog source backed by the given pool.
func NewPostgresSource(pool *pgxpool.Pool, highWeight []string) (*PostgresSource, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}
	return &PostgresSource{pool: pool, highWeight: highWeight}, nil
}

// Load materializes a snapshot of the whole question bank. The caller owns
// the transaction boundary; this runs two plain reads.
func (s *PostgresSource) Load(ctx context.Context) (*Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	rows, err := s.pool.Query(ctx,
		`SELECT id::text, name, subject
		 FROM topics
		 ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("query topics: %w", err)
	}
	defer rows.Close()

	var topics []Topic
	for rows.Next() {
		var t Topic
		var subject string
		if err := rows.Scan(&t.ID, &t.Name, &subject); err != nil {
			return nil, fmt.Errorf("scan topic: %w", err)
		}
		t.Subject = ParseSubject(subject)
		topics = append(topics, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate topics: %w", err)
	}

	qRows, err := s.pool.Query(ctx,
		`SELECT id::text, topic_id::text, COALESCE(difficulty, '')
		 FROM questions
		 ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	defer qRows.Close()

	var questions []Question
	for qRows.Next() {
		var q Question
		var label string
		if err := qRows.Scan(&q.ID, &q.TopicID, &label); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		q.Difficulty = ParseDifficulty(label)
		q.RawLabel = label
		questions = append(questions, q)
	}
	if err := qRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate questions: %w", err)
	}

	snap, err := NewSnapshot(questions, topics, s.highWeight)
	if err != nil {
		return nil, fmt.Errorf("building catalog snapshot: %w", err)
	}
	return snap, nil
}
