package config

import (
	"time"

	"github.com/sethfiresaid-gif/Book-Libary-Arc-Crusade/internal/storage"
)

// Config holds runtime settings for the library application.
//
// Units: the intervals are time.Durations; FallbackQuota is in bytes.
type Config struct {
	// DataDir is where the primary store keeps its files.
	DataDir string

	// FallbackQuota caps the fallback store's total payload.
	FallbackQuota int64

	// AutosaveInterval is how often the library flushes to storage.
	AutosaveInterval time.Duration

	// IntegrityInterval is how often the integrity checker sweeps.
	IntegrityInterval time.Duration

	// BackupMaxAge is how stale the backup copy may get before a sweep
	// refreshes it.
	BackupMaxAge time.Duration

	// VerifyDelay is how long a persist waits before reading the
	// document back.
	VerifyDelay time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DataDir = "arc-crusade-data"
	c.FallbackQuota = storage.DefaultQuota
	c.AutosaveInterval = 30 * time.Second
	c.IntegrityInterval = 2 * time.Minute
	c.BackupMaxAge = 10 * time.Minute
	c.VerifyDelay = 100 * time.Millisecond
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
