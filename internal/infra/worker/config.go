package worker

import (
	"fmt"
	"log/slog"
	"time"

	"redditxstory/internal/usecase/ingest"
	envconfig "redditxstory/pkg/config"
)

// DefaultSubreddits is used when the subreddits table is empty or unreadable.
var DefaultSubreddits = []string{"AskReddit", "TIFU", "TodayILearned", "Showerthoughts", "nosleep"}

// WorkerConfig holds the configuration for the ingestion worker.
//
// Environment variables:
//   - CRON_SCHEDULE: five-field cron expression (default "*/30 * * * *")
//   - WORKER_TIMEZONE: IANA timezone for the schedule (default "UTC")
//   - CRAWL_TIMEOUT: upper bound for one run, 1m-4h (default 20m)
//   - WORKER_HEALTH_PORT: 1024-65535 (default 9091)
//   - REDDIT_FETCH_LIMIT: stories kept per subreddit, 1-100 (default 50)
//   - DAYS_BACK: skip posts older than this, 1-365 (default 7)
//   - FETCH_CONCURRENCY: subreddits fetched in parallel, 1-10 (default 2)
//   - SUBREDDITS: comma-separated fallback list
//   - REDDIT_USER_AGENT: User-Agent sent to Reddit
type WorkerConfig struct {
	CronSchedule string
	Timezone     string
	CrawlTimeout time.Duration
	HealthPort   int

	FetchLimit  int
	DaysBack    int
	Concurrency int
	Subreddits  []string
	UserAgent   string
}

// DefaultConfig returns a WorkerConfig with production defaults.
func DefaultConfig() WorkerConfig {
	return WorkerConfig{
		CronSchedule: "*/30 * * * *",
		Timezone:     "UTC",
		CrawlTimeout: 20 * time.Minute,
		HealthPort:   9091,
		FetchLimit:   50,
		DaysBack:     7,
		Concurrency:  2,
		Subreddits:   append([]string(nil), DefaultSubreddits...),
		UserAgent:    "redditxstory-bot/1.0",
	}
}

// Validate checks every field and returns all failures together.
func (c *WorkerConfig) Validate() error {
	var errs []error

	if err := envconfig.ValidateCronSchedule(c.CronSchedule); err != nil {
		errs = append(errs, fmt.Errorf("cron schedule: %w", err))
	}
	if err := envconfig.ValidateTimezone(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("timezone: %w", err))
	}
	if err := envconfig.ValidateDurationRange(c.CrawlTimeout, time.Minute, 4*time.Hour); err != nil {
		errs = append(errs, fmt.Errorf("crawl timeout: %w", err))
	}
	if err := envconfig.ValidateIntRange(c.HealthPort, 1024, 65535); err != nil {
		errs = append(errs, fmt.Errorf("health port: %w", err))
	}
	if err := envconfig.ValidateIntRange(c.FetchLimit, 1, 100); err != nil {
		errs = append(errs, fmt.Errorf("fetch limit: %w", err))
	}
	if err := envconfig.ValidateIntRange(c.DaysBack, 1, 365); err != nil {
		errs = append(errs, fmt.Errorf("days back: %w", err))
	}
	if err := envconfig.ValidateIntRange(c.Concurrency, 1, 10); err != nil {
		errs = append(errs, fmt.Errorf("concurrency: %w", err))
	}
	if len(c.Subreddits) == 0 {
		errs = append(errs, fmt.Errorf("subreddits: at least one fallback subreddit is required"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed: %v", errs)
	}
	return nil
}

// Ingest returns the crawl settings derived from this configuration.
func (c *WorkerConfig) Ingest() ingest.Config {
	return ingest.Config{
		PerSubredditLimit: c.FetchLimit,
		DaysBack:          c.DaysBack,
		Concurrency:       c.Concurrency,
		Fallback:          c.Subreddits,
	}
}

// LoadConfigFromEnv loads the worker configuration from the environment.
//
// Loading is fail-open: a value that fails validation is replaced by its
// default, logged, and counted in metrics. The returned config is always valid.
func LoadConfigFromEnv(logger *slog.Logger, metrics *WorkerMetrics) *WorkerConfig {
	def := DefaultConfig()
	cfg := def
	fallback := false

	check := func(field, key string, err error, reset func()) {
		if err == nil {
			return
		}
		reset()
		fallback = true
		metrics.RecordValidationError(field)
		metrics.RecordFallback(field)
		logger.Warn("Configuration fallback applied",
			slog.String("field", field),
			slog.String("env_key", key),
			slog.String("error", err.Error()))
	}

	cfg.CronSchedule = envconfig.GetEnvString("CRON_SCHEDULE", def.CronSchedule)
	check("cron_schedule", "CRON_SCHEDULE", envconfig.ValidateCronSchedule(cfg.CronSchedule),
		func() { cfg.CronSchedule = def.CronSchedule })

	cfg.Timezone = envconfig.GetEnvString("WORKER_TIMEZONE", def.Timezone)
	check("timezone", "WORKER_TIMEZONE", envconfig.ValidateTimezone(cfg.Timezone),
		func() { cfg.Timezone = def.Timezone })

	cfg.CrawlTimeout = envconfig.GetEnvDuration("CRAWL_TIMEOUT", def.CrawlTimeout)
	check("crawl_timeout", "CRAWL_TIMEOUT",
		envconfig.ValidateDurationRange(cfg.CrawlTimeout, time.Minute, 4*time.Hour),
		func() { cfg.CrawlTimeout = def.CrawlTimeout })

	cfg.HealthPort = envconfig.GetEnvInt("WORKER_HEALTH_PORT", def.HealthPort)
	check("health_port", "WORKER_HEALTH_PORT", envconfig.ValidateIntRange(cfg.HealthPort, 1024, 65535),
		func() { cfg.HealthPort = def.HealthPort })

	cfg.FetchLimit = envconfig.GetEnvInt("REDDIT_FETCH_LIMIT", def.FetchLimit)
	check("fetch_limit", "REDDIT_FETCH_LIMIT", envconfig.ValidateIntRange(cfg.FetchLimit, 1, 100),
		func() { cfg.FetchLimit = def.FetchLimit })

	cfg.DaysBack = envconfig.GetEnvInt("DAYS_BACK", def.DaysBack)
	check("days_back", "DAYS_BACK", envconfig.ValidateIntRange(cfg.DaysBack, 1, 365),
		func() { cfg.DaysBack = def.DaysBack })

	cfg.Concurrency = envconfig.GetEnvInt("FETCH_CONCURRENCY", def.Concurrency)
	check("concurrency", "FETCH_CONCURRENCY", envconfig.ValidateIntRange(cfg.Concurrency, 1, 10),
		func() { cfg.Concurrency = def.Concurrency })

	cfg.Subreddits = envconfig.GetEnvStringList("SUBREDDITS", def.Subreddits)
	cfg.UserAgent = envconfig.GetEnvString("REDDIT_USER_AGENT", def.UserAgent)

	metrics.SetFallbackActive(fallback)
	metrics.RecordLoadTimestamp()

	return &cfg
}
