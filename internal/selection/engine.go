package selection

import (
	"log/slog"

	"github.com/prepforge/prepforge/internal/catalog"
)

// EngineConfig holds the engine's dependencies and tunables.
type EngineConfig struct {
	Config   Config      // zero value means DefaultConfig()
	Strategy Strategy    // nil means the rule-based strategy
	Events   EventLogger // nil means events are dropped
}

// Engine is the selection entry point. It holds no per-call state: every
// Select call is a pure function of its inputs, so concurrent calls for the
// same (student, session) are safe and produce identical results.
type Engine struct {
	cfg      Config
	strategy Strategy
	events   EventLogger
}

// NewEngine creates a selection engine.
func NewEngine(cfg EngineConfig) *Engine {
	conf := cfg.Config
	if conf.SubjectRatios == nil {
		conf = DefaultConfig()
	}
	strategy := cfg.Strategy
	if strategy == nil {
		strategy = NewRuleStrategy(conf)
	}
	events := cfg.Events
	if events == nil {
		events = NopEventLogger{}
	}
	return &Engine{
		cfg:      conf,
		strategy: strategy,
		events:   events,
	}
}

// Select assigns questions to a session from the given catalog and
// performance snapshots. An unmeetable count comes back as a shortfall
// result, not an error; the only errors are a non-positive count and a
// topic-restricted request naming no known topics.
func (e *Engine) Select(req SelectionRequest, cat *catalog.Snapshot, perf PerformanceSnapshot) (SelectionResult, error) {
	if req.Count <= 0 {
		return SelectionResult{}, ErrInvalidCount
	}

	result, err := e.strategy.Select(req, cat, perf)
	if err != nil {
		return SelectionResult{}, err
	}

	if result.Shortfall {
		slog.Warn("selection shortfall",
			"strategy", e.strategy.Name(),
			"requested", req.Count,
			"selected", len(result.QuestionIDs),
		)
	} else {
		slog.Debug("selection completed",
			"strategy", e.strategy.Name(),
			"requested", req.Count,
		)
	}

	logEvent(e.events, Event{
		StudentID: req.StudentID,
		SessionID: req.SessionID,
		EventType: "selection_completed",
		Data: map[string]any{
			"strategy":  e.strategy.Name(),
			"requested": req.Count,
			"selected":  len(result.QuestionIDs),
			"shortfall": result.Shortfall,
		},
	})

	return result, nil
}

// EvaluateStreak recommends the next question's bias in adaptive delivery
// mode and records which rule fired. The package-level EvaluateStreak
// documents the rule precedence.
func (e *Engine) EvaluateStreak(recent []SessionAnswer) (Recommendation, bool) {
	rec, ok := EvaluateStreak(e.cfg, recent)
	if ok {
		logEvent(e.events, Event{
			EventType: "streak_override",
			Data:      map[string]any{"rule": rec.Rule},
		})
	}
	return rec, ok
}

// Config returns the engine's immutable configuration.
func (e *Engine) Config() Config {
	return e.cfg
}
