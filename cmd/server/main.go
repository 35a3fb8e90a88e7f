package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prepforge/prepforge/internal/catalog"
	"github.com/prepforge/prepforge/internal/history"
	"github.com/prepforge/prepforge/internal/platform/cache"
	"github.com/prepforge/prepforge/internal/platform/config"
	"github.com/prepforge/prepforge/internal/platform/database"
	"github.com/prepforge/prepforge/internal/selection"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	// Graceful shutdown on SIGTERM/SIGINT.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	app, err := newApp(ctx, cfg)
	if err != nil {
		slog.Error("failed to start", "error", err)
		os.Exit(1)
	}
	defer app.close()

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      app.routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}

// snapshotBuilder is the piece of history the app holds onto: either the
// plain builder or its cached decorator.
type snapshotBuilder interface {
	Build(ctx context.Context, studentID string) (selection.PerformanceSnapshot, error)
}

// app owns the wired components for the lifetime of the process.
type app struct {
	cfg       *config.Config
	db        *database.DB
	cache     *cache.Cache
	bank      *catalog.Snapshot
	engine    *selection.Engine
	snapshots snapshotBuilder
}

// newApp connects the configured backends and assembles the selection
// engine. Database and cache are optional; the catalog source is not.
func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	a := &app{cfg: cfg}

	if cfg.Database.URL != "" {
		db, err := database.New(ctx, cfg.Database.URL, cfg.Database.MaxConns, cfg.Database.MinConns)
		if err != nil {
			return nil, fmt.Errorf("connecting to database: %w", err)
		}
		a.db = db
	}

	if cfg.Cache.URL != "" {
		c, err := cache.New(ctx, cfg.Cache.URL)
		if err != nil {
			// Cache is an accelerator; run without it.
			slog.Warn("cache unavailable, snapshots will be rebuilt per call", "error", err)
		} else {
			a.cache = c
		}
	}

	bank, err := loadCatalog(ctx, cfg, a.db)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("loading question bank: %w", err)
	}
	a.bank = bank

	var events selection.EventLogger = selection.NopEventLogger{}
	if a.db != nil {
		logger, err := selection.NewPostgresEventLogger(a.db.Pool)
		if err != nil {
			a.close()
			return nil, fmt.Errorf("creating event logger: %w", err)
		}
		events = logger
	}

	strategy := cfg.Strategy()
	a.engine = selection.NewEngine(selection.EngineConfig{
		Config:   cfg.SelectionConfig(),
		Strategy: strategy,
		Events:   events,
	})

	if a.db != nil {
		store, err := history.NewPostgresStore(a.db.Pool)
		if err != nil {
			a.close()
			return nil, fmt.Errorf("creating answer store: %w", err)
		}
		builder := history.NewSnapshotBuilder(store)
		if a.cache != nil {
			a.snapshots = history.NewCachedSnapshotBuilder(builder, a.cache.Client, cfg.Cache.SnapshotTTL)
		} else {
			a.snapshots = builder
		}
	}

	slog.Info("selection engine ready",
		"strategy", strategy.Name(),
		"questions", bank.Len(),
		"topics", len(bank.TopicIDs()),
		"high_weight_topics", len(bank.HighWeightTopicIDs()),
	)

	return a, nil
}

// loadCatalog builds the question-bank snapshot from the configured source.
func loadCatalog(ctx context.Context, cfg *config.Config, db *database.DB) (*catalog.Snapshot, error) {
	switch cfg.Catalog.Source {
	case "postgres":
		src, err := catalog.NewPostgresSource(db.Pool, cfg.Catalog.HighWeightTopics)
		if err != nil {
			return nil, err
		}
		return src.Load(ctx)
	case "xlsx":
		return catalog.LoadWorkbook(cfg.Catalog.Path, cfg.Catalog.HighWeightTopics)
	default:
		return catalog.LoadDir(cfg.Catalog.Path, cfg.Catalog.HighWeightTopics)
	}
}

func (a *app) close() {
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			slog.Warn("closing cache", "error", err)
		}
	}
	if a.db != nil {
		a.db.Close()
	}
}

// routes creates the HTTP router with health check endpoints.
func (a *app) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", a.handleHealthz)
	mux.HandleFunc("GET /readyz", a.handleReadyz)
	return mux
}

func (a *app) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func (a *app) handleReadyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	w.Header().Set("Content-Type", "application/json")

	if a.db != nil {
		if err := a.db.HealthCheck(ctx); err != nil {
			slog.Warn("database not ready", "error", err)
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"unavailable","component":"database"}`))
			return
		}
	}
	if a.cache != nil {
		if err := a.cache.HealthCheck(ctx); err != nil {
			slog.Warn("cache not ready", "error", err)
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"unavailable","component":"cache"}`))
			return
		}
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}
