package history

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const dbTimeout = 5 * time.Second

// PostgresStore is a PostgreSQL-backed AnswerStore. It is read-only: the
// surrounding application owns answer persistence.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a PostgreSQL-backed answer store.
func NewPostgresStore(pool *pgxpool.Pool) (*PostgresStore, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) AnswersSince(ctx context.Context, studentID string, since time.Time) ([]Answer, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	query := `SELECT a.student_id::text, a.session_id::text, a.question_id::text,
	                 q.topic_id::text, a.correct, a.time_taken_sec, a.answered_at
	          FROM answers a
	          JOIN questions q ON q.id = a.question_id
	          WHERE a.student_id = $1`
	args := []any{studentID}
	if !since.IsZero() {
		query += ` AND a.answered_at >= $2`
		args = append(args, since)
	}
	query += ` ORDER BY a.answered_at DESC`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query answers: %w", err)
	}
	defer rows.Close()

	var answers []Answer
	for rows.Next() {
		var a Answer
		if err := rows.Scan(
			&a.StudentID,
			&a.SessionID,
			&a.QuestionID,
			&a.TopicID,
			&a.Correct,
			&a.TimeTakenSec,
			&a.AnsweredAt,
		); err != nil {
			return nil, fmt.Errorf("scan answer: %w", err)
		}
		answers = append(answers, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate answers: %w", err)
	}

	return answers, nil
}
