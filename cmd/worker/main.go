package main

import (
	"context"
	"crypto/tls"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	"go.opentelemetry.io/otel/attribute"

	"redditxstory/internal/handler/http/respond"
	pgRepo "redditxstory/internal/infra/adapter/persistence/postgres"
	"redditxstory/internal/infra/db"
	"redditxstory/internal/infra/reddit"
	workerPkg "redditxstory/internal/infra/worker"
	"redditxstory/internal/observability/logging"
	"redditxstory/internal/observability/tracing"
	"redditxstory/internal/usecase/ingest"
	pkgconfig "redditxstory/pkg/config"
)

func main() {
	once := flag.Bool("once", false, "run a single crawl and exit")
	flag.Parse()

	if err := run(*once); err != nil {
		os.Exit(1)
	}
}

// run wires the worker and blocks until the crawl (with -once) or the
// scheduler finishes. Deferred cleanup runs before main exits.
func run(once bool) error {
	if err := pkgconfig.LoadDotEnv(); err != nil {
		slog.Warn("failed to load .env file", slog.Any("error", err))
	}

	logger := initLogger()
	shutdownTracing := tracing.Init(1.0)
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Error("tracer shutdown failed", slog.Any("error", err))
		}
	}()

	database, err := initDatabase(logger)
	if err != nil {
		return err
	}
	defer func() {
		if database == nil {
			return
		}
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()
	store := db.NewStore(database)

	// Load worker configuration (fail-open strategy)
	workerMetrics := workerPkg.NewWorkerMetrics(prometheus.DefaultRegisterer)
	workerConfig := workerPkg.LoadConfigFromEnv(logger, workerMetrics)
	logger.Info("worker configuration loaded",
		slog.String("cron_schedule", workerConfig.CronSchedule),
		slog.String("timezone", workerConfig.Timezone),
		slog.Duration("crawl_timeout", workerConfig.CrawlTimeout),
		slog.Int("health_port", workerConfig.HealthPort),
		slog.Int("fetch_limit", workerConfig.FetchLimit),
		slog.Int("days_back", workerConfig.DaysBack),
		slog.Int("concurrency", workerConfig.Concurrency))

	svc := setupIngestService(store, workerConfig)

	if once {
		return runCrawlJob(context.Background(), logger, svc, workerConfig, workerMetrics)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	healthAddr := fmt.Sprintf(":%d", workerConfig.HealthPort)
	healthServer := workerPkg.NewHealthServer(healthAddr, logger, readinessCheck(store), promhttp.Handler())
	go func() {
		if err := healthServer.Start(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("health server failed", slog.Any("error", err))
		}
	}()
	logger.Info("health check server started", slog.String("addr", healthAddr))

	return startCronWorker(ctx, logger, svc, workerConfig, workerMetrics, healthServer)
}

func initLogger() *slog.Logger {
	logger := logging.NewLogger()
	slog.SetDefault(logger)
	return logger
}

// initDatabase opens the pool and ensures the schema exists. Without
// DATABASE_URL the worker still fetches but stores nothing.
func initDatabase(logger *slog.Logger) (*sql.DB, error) {
	database, err := db.Open(db.LoadConfigFromEnv())
	if err != nil {
		logger.Error("failed to open database", slog.Any("error", err))
		return nil, err
	}
	if database == nil {
		logger.Warn("worker running without a database, crawled stories will be discarded")
		return nil, nil
	}
	if err := db.MigrateUp(database); err != nil {
		logger.Error("failed to migrate database", slog.Any("error", err))
		_ = database.Close()
		return nil, err
	}
	return database, nil
}

// readinessCheck reports the worker ready when the database answers, or
// when no database is configured.
func readinessCheck(store *db.Store) func(context.Context) error {
	return func(ctx context.Context) error {
		if !store.Enabled() {
			return nil
		}
		return store.Ping(ctx)
	}
}

func setupIngestService(store *db.Store, cfg *workerPkg.WorkerConfig) *ingest.Service {
	fetchCfg := reddit.DefaultConfig()
	fetchCfg.UserAgent = cfg.UserAgent
	fetcher := reddit.NewFeedFetcher(createHTTPClient(fetchCfg.Timeout), fetchCfg)

	return ingest.NewService(
		pgRepo.NewStoryRepo(store),
		pgRepo.NewSubredditRepo(store),
		fetcher,
		cfg.Ingest(),
	)
}

// createHTTPClient creates an HTTP client with timeouts and connection pooling.
// TLS 1.2+ is enforced.
func createHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        20,
			MaxIdleConnsPerHost: 4,
			IdleConnTimeout:     90 * time.Second,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
		},
	}
}

// startCronWorker schedules the crawl and blocks until ctx is done.
func startCronWorker(ctx context.Context, logger *slog.Logger, svc *ingest.Service, cfg *workerPkg.WorkerConfig, metrics *workerPkg.WorkerMetrics, healthServer *workerPkg.HealthServer) error {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Error("invalid timezone, using UTC", slog.String("timezone", cfg.Timezone), slog.Any("error", err))
		loc = time.UTC
	}
	c := cron.New(cron.WithLocation(loc), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))

	_, err = c.AddFunc(cfg.CronSchedule, func() {
		_ = runCrawlJob(ctx, logger, svc, cfg, metrics)
	})
	if err != nil {
		logger.Error("failed to add cron job", slog.Any("error", err))
		return err
	}
	c.Start()

	healthServer.SetReady(true)
	logger.Info("worker started", slog.String("schedule", cfg.CronSchedule), slog.String("timezone", cfg.Timezone))

	<-ctx.Done()
	logger.Info("shutting down worker...")
	healthServer.SetReady(false)
	<-c.Stop().Done()
	logger.Info("worker stopped")
	return nil
}

// runCrawlJob executes a single crawl bounded by the configured timeout.
func runCrawlJob(parent context.Context, logger *slog.Logger, svc *ingest.Service, cfg *workerPkg.WorkerConfig, metrics *workerPkg.WorkerMetrics) error {
	startTime := time.Now()
	metrics.RecordJobRun("started")
	logger.Info("crawl started")

	ctx, cancel := context.WithTimeout(parent, cfg.CrawlTimeout)
	defer cancel()

	ctx, span := tracing.GetTracer().Start(ctx, "crawl")
	defer span.End()

	stats, err := svc.CrawlAll(ctx)
	metrics.RecordJobDuration(time.Since(startTime).Seconds())
	if err != nil {
		logger.Error("crawl failed", slog.String("error", respond.SanitizeError(err)))
		metrics.RecordJobRun("failure")
		span.RecordError(err)
		return err
	}

	metrics.RecordJobRun("success")
	metrics.RecordStats(stats)
	metrics.RecordLastSuccess()
	span.SetAttributes(
		attribute.Int("crawl.subreddits", stats.Subreddits),
		attribute.Int("crawl.upserted", stats.Upserted()),
	)

	logger.Info("crawl completed",
		slog.Int("subreddits", stats.Subreddits),
		slog.Int("fetched", stats.Fetched),
		slog.Int("inserted", stats.Inserted),
		slog.Int("updated", stats.Updated),
		slog.Int("skipped_old", stats.SkippedOld),
		slog.Int("errors", stats.Errors),
		slog.Duration("duration", stats.Duration),
	)
	return nil
}
