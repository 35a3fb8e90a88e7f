package selection

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Event is an analytics record of one engine decision.
type Event struct {
	StudentID string
	SessionID string
	EventType string
	Data      map[string]any
	CreatedAt time.Time
}

// EventLogger defines event logging behavior. Logging failures are reported
// by the implementations themselves and never affect selection.
type EventLogger interface {
	LogEvent(event Event) error
}

// NopEventLogger ignores all events.
type NopEventLogger struct{}

func (NopEventLogger) LogEvent(Event) error {
	return nil
}

// MemoryEventLogger stores events in memory for tests.
type MemoryEventLogger struct {
	mu     sync.Mutex
	events []Event
}

func NewMemoryEventLogger() *MemoryEventLogger {
	return &MemoryEventLogger{
		events: []Event{},
	}
}

func (l *MemoryEventLogger) LogEvent(event Event) error {
	if event.EventType == "" {
		return fmt.Errorf("event_type is required")
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	l.mu.Lock()
	l.events = append(l.events, event)
	l.mu.Unlock()

	return nil
}

func (l *MemoryEventLogger) Events() []Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Event{}, l.events...)
}

// PostgresEventLogger inserts events into the selection_events table.
type PostgresEventLogger struct {
	pool *pgxpool.Pool
}

// NewPostgresEventLogger creates a Postgres-backed event logger.
func NewPostgresEventLogger(pool *pgxpool.Pool) (*PostgresEventLogger, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}
	return &PostgresEventLogger{pool: pool}, nil
}

func (l *PostgresEventLogger) LogEvent(event Event) error {
	if event.EventType == "" {
		return fmt.Errorf("event_type is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	data, err := json.Marshal(event.Data)
	if err != nil {
		return fmt.Errorf("marshal event data: %w", err)
	}

	createdAt := event.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err = l.pool.Exec(ctx,
		`INSERT INTO selection_events (student_id, session_id, event_type, data, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		nullIfEmpty(event.StudentID),
		nullIfEmpty(event.SessionID),
		event.EventType,
		data,
		createdAt,
	)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}

	return nil
}

func nullIfEmpty(v string) any {
	if v == "" {
		return nil
	}
	return v
}

// logEvent sends an event to the logger, demoting failures to a warning.
func logEvent(logger EventLogger, event Event) {
	if logger == nil {
		return
	}
	if err := logger.LogEvent(event); err != nil {
		slog.Warn("failed to log selection event", "event_type", event.EventType, "error", err)
	}
}
