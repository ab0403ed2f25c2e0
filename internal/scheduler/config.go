package scheduler

import (
	"time"

	"github.com/UknowEdy/chefetoile-backend/internal/config"
)

// Config controls scheduler intervals and batch sizes.
type Config struct {
	RunInterval     time.Duration
	BatchSize       int
	JobTimeout      time.Duration
	LockTTL         time.Duration
	MetricsInterval time.Duration
	EnabledJobs     []string
}

func DefaultConfig() Config {
	return Config{
		RunInterval:     time.Minute,
		BatchSize:       50,
		JobTimeout:      30 * time.Second,
		LockTTL:         time.Minute,
		MetricsInterval: 5 * time.Minute,
	}
}

func ProvideConfig(cfg config.Config) Config {
	return Config{
		RunInterval:     cfg.Scheduler.Interval,
		BatchSize:       cfg.Scheduler.BatchSize,
		MetricsInterval: cfg.PlatformMetrics.Interval,
		EnabledJobs:     cfg.Scheduler.Jobs,
	}.withDefaults()
}

func (c Config) withDefaults() Config {
	defaults := DefaultConfig()
	if c.RunInterval <= 0 {
		c.RunInterval = defaults.RunInterval
	}
	if c.BatchSize <= 0 {
		c.BatchSize = defaults.BatchSize
	}
	if c.JobTimeout <= 0 {
		c.JobTimeout = defaults.JobTimeout
	}
	// The lock must outlive the job so a slow run is never overlapped.
	if c.LockTTL <= c.JobTimeout {
		c.LockTTL = 2 * c.JobTimeout
	}
	if c.MetricsInterval <= 0 {
		c.MetricsInterval = defaults.MetricsInterval
	}
	return c
}
