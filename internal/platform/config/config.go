// Package config loads application configuration from environment variables.
// All variables use the PREP_ prefix.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/prepforge/prepforge/internal/selection"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Cache    CacheConfig
	Catalog  CatalogConfig
	Engine   EngineConfig
	Log      LogConfig
}

// ServerConfig holds HTTP server settings (health endpoints only).
type ServerConfig struct {
	Port int
	Host string
}

// DatabaseConfig holds PostgreSQL connection settings. An empty URL disables
// the Postgres-backed catalog source and answer store.
type DatabaseConfig struct {
	URL      string
	MaxConns int
	MinConns int
}

// CacheConfig holds Dragonfly/Redis connection settings. An empty URL
// disables performance-snapshot caching.
type CacheConfig struct {
	URL         string
	SnapshotTTL time.Duration
}

// CatalogConfig holds question-bank source settings.
type CatalogConfig struct {
	// Source is "postgres", "yaml" or "xlsx".
	Source string
	// Path is the bank directory (yaml) or workbook path (xlsx).
	Path string
	// HighWeightTopics are the priority topic names the planner biases
	// toward including.
	HighWeightTopics []string
}

// EngineConfig holds selection-engine tunables that map onto
// selection.Config.
type EngineConfig struct {
	Strategy          string // "rules" or "adaptive-mix"
	AccuracyThreshold float64
	RecencyWindowDays int
	SlowResponseSec   float64
	FastResponseSec   float64
	FastAccuracyMin   float64
	StreakWindow      int
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables with PREP_ prefix.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: envInt("PREP_SERVER_PORT", 8080),
			Host: envStr("PREP_SERVER_HOST", "0.0.0.0"),
		},
		Database: DatabaseConfig{
			URL:      envStr("PREP_DATABASE_URL", ""),
			MaxConns: envInt("PREP_DATABASE_MAX_CONNS", 25),
			MinConns: envInt("PREP_DATABASE_MIN_CONNS", 5),
		},
		Cache: CacheConfig{
			URL:         envStr("PREP_CACHE_URL", ""),
			SnapshotTTL: time.Duration(envInt("PREP_CACHE_SNAPSHOT_TTL_SEC", 600)) * time.Second,
		},
		Catalog: CatalogConfig{
			Source:           envStr("PREP_CATALOG_SOURCE", "yaml"),
			Path:             envStr("PREP_CATALOG_PATH", "./bank"),
			HighWeightTopics: envList("PREP_CATALOG_HIGH_WEIGHT_TOPICS", nil),
		},
		Engine: EngineConfig{
			Strategy:          envStr("PREP_ENGINE_STRATEGY", "rules"),
			AccuracyThreshold: envFloat("PREP_ENGINE_ACCURACY_THRESHOLD", 60),
			RecencyWindowDays: envInt("PREP_ENGINE_RECENCY_WINDOW_DAYS", 15),
			SlowResponseSec:   envFloat("PREP_ENGINE_SLOW_RESPONSE_SEC", 120),
			FastResponseSec:   envFloat("PREP_ENGINE_FAST_RESPONSE_SEC", 30),
			FastAccuracyMin:   envFloat("PREP_ENGINE_FAST_ACCURACY_MIN", 80),
			StreakWindow:      envInt("PREP_ENGINE_STREAK_WINDOW", 5),
		},
		Log: LogConfig{
			Level:  envStr("PREP_LOG_LEVEL", "info"),
			Format: envStr("PREP_LOG_FORMAT", "json"),
		},
	}

	return cfg, nil
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	switch c.Catalog.Source {
	case "yaml", "xlsx":
		if c.Catalog.Path == "" {
			return fmt.Errorf("PREP_CATALOG_PATH is required for source %q", c.Catalog.Source)
		}
	case "postgres":
		if c.Database.URL == "" {
			return fmt.Errorf("PREP_DATABASE_URL is required for source \"postgres\"")
		}
	default:
		return fmt.Errorf("PREP_CATALOG_SOURCE must be 'postgres', 'yaml' or 'xlsx', got %q", c.Catalog.Source)
	}

	if c.Engine.Strategy != "rules" && c.Engine.Strategy != "adaptive-mix" {
		return fmt.Errorf("PREP_ENGINE_STRATEGY must be 'rules' or 'adaptive-mix', got %q", c.Engine.Strategy)
	}
	if c.Engine.AccuracyThreshold < 0 || c.Engine.AccuracyThreshold > 100 {
		return fmt.Errorf("PREP_ENGINE_ACCURACY_THRESHOLD must be within 0-100, got %v", c.Engine.AccuracyThreshold)
	}
	if c.Engine.RecencyWindowDays < 0 {
		return fmt.Errorf("PREP_ENGINE_RECENCY_WINDOW_DAYS must be non-negative, got %d", c.Engine.RecencyWindowDays)
	}

	return nil
}

// SelectionConfig maps the engine settings onto the immutable config the
// selection engine is constructed with.
func (c *Config) SelectionConfig() selection.Config {
	sc := selection.DefaultConfig()
	sc.AccuracyThreshold = c.Engine.AccuracyThreshold
	sc.RecencyWindow = time.Duration(c.Engine.RecencyWindowDays) * 24 * time.Hour
	sc.SlowResponseSec = c.Engine.SlowResponseSec
	sc.FastResponseSec = c.Engine.FastResponseSec
	sc.FastAccuracyMin = c.Engine.FastAccuracyMin
	sc.StreakWindow = c.Engine.StreakWindow
	return sc
}

// Strategy builds the configured selection strategy.
func (c *Config) Strategy() selection.Strategy {
	if c.Engine.Strategy == "adaptive-mix" {
		return selection.NewAdaptiveMixStrategy()
	}
	return selection.NewRuleStrategy(c.SelectionConfig())
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
