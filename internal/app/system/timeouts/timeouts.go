// Package timeouts provides the per-operation deadlines used for catalog
// store calls.
//
//   - Short: single-course reads, creates, deletes
//   - Medium: list queries and read-modify-write updates
//   - Batch: seeding and other bulk writes
//
// Values can be overridden at startup with Configure or ConfigureFromEnv.
package timeouts

import (
	"context"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultShort  = 5 * time.Second
	DefaultMedium = 10 * time.Second
	DefaultBatch  = 60 * time.Second
)

// EnvPrefix is prepended to SHORT, MEDIUM and BATCH.
const EnvPrefix = "COURSECATALOG_TIMEOUT_"

var (
	mu      sync.RWMutex
	current = defaults()
)

// Config holds timeout values. Zero fields are ignored by Configure.
type Config struct {
	Short  time.Duration
	Medium time.Duration
	Batch  time.Duration
}

func defaults() Config {
	return Config{Short: DefaultShort, Medium: DefaultMedium, Batch: DefaultBatch}
}

func Short() time.Duration  { return Current().Short }
func Medium() time.Duration { return Current().Medium }
func Batch() time.Duration  { return Current().Batch }

// Current returns a snapshot of the active values.
func Current() Config {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// Configure overrides the non-zero fields of cfg.
func Configure(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	set(&current.Short, cfg.Short)
	set(&current.Medium, cfg.Medium)
	set(&current.Batch, cfg.Batch)
}

// Reset restores the defaults. Useful for testing.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	current = defaults()
}

// ConfigureFromEnv reads COURSECATALOG_TIMEOUT_{SHORT,MEDIUM,BATCH}
// as Go durations ("500ms", "2m"). Invalid or non-positive values are
// ignored. It returns how many values were applied.
func ConfigureFromEnv() int {
	var cfg Config
	n := 0
	for name, dst := range map[string]*time.Duration{
		"SHORT":  &cfg.Short,
		"MEDIUM": &cfg.Medium,
		"BATCH":  &cfg.Batch,
	} {
		v := os.Getenv(EnvPrefix + name)
		if v == "" {
			continue
		}
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			*dst = d
			n++
		}
	}
	Configure(cfg)
	return n
}

// Fields renders the active values for a startup log line.
func Fields() []zap.Field {
	c := Current()
	return []zap.Field{
		zap.Duration("timeout_short", c.Short),
		zap.Duration("timeout_medium", c.Medium),
		zap.Duration("timeout_batch", c.Batch),
	}
}

// WithTimeout is context.WithTimeout whose cancel logs a warning when the
// deadline was hit.
func WithTimeout(parent context.Context, timeout time.Duration, log *zap.Logger, operation string) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parent, timeout)
	return ctx, func() {
		if ctx.Err() == context.DeadlineExceeded && log != nil {
			log.Warn("operation timed out",
				zap.String("operation", operation),
				zap.Duration("timeout", timeout),
			)
		}
		cancel()
	}
}

func set(dst *time.Duration, v time.Duration) {
	if v > 0 {
		*dst = v
	}
}
