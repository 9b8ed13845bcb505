package worker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"redditxstory/internal/usecase/ingest"
)

// WorkerMetrics provides Prometheus metrics for the ingestion worker.
//
// Configuration metrics:
//   - worker_config_load_timestamp
//   - worker_config_validation_errors_total{field}
//   - worker_config_fallbacks_total{field}
//   - worker_config_fallback_active
//
// Job metrics:
//   - worker_cron_job_runs_total{status}
//   - worker_cron_job_duration_seconds
//   - worker_cron_job_subreddits_processed_total
//   - worker_cron_job_stories_upserted_total
//   - worker_cron_job_last_success_timestamp
type WorkerMetrics struct {
	ConfigLoadTimestamp   prometheus.Gauge
	ConfigValidationTotal *prometheus.CounterVec
	ConfigFallbacksTotal  *prometheus.CounterVec
	ConfigFallbackActive  prometheus.Gauge

	CronJobRunsTotal            *prometheus.CounterVec
	CronJobDurationSeconds      prometheus.Histogram
	CronJobSubredditsTotal      prometheus.Counter
	CronJobStoriesUpsertedTotal prometheus.Counter
	CronJobLastSuccessTimestamp prometheus.Gauge
}

// NewWorkerMetrics creates the worker metrics and registers them with reg.
// A nil reg uses prometheus.DefaultRegisterer.
func NewWorkerMetrics(reg prometheus.Registerer) *WorkerMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)

	return &WorkerMetrics{
		ConfigLoadTimestamp: f.NewGauge(prometheus.GaugeOpts{
			Name: "worker_config_load_timestamp",
			Help: "Unix timestamp of last worker configuration load",
		}),
		ConfigValidationTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "worker_config_validation_errors_total",
			Help: "Total number of worker configuration validation errors",
		}, []string{"field"}),
		ConfigFallbacksTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "worker_config_fallbacks_total",
			Help: "Total number of worker configuration fallback operations",
		}, []string{"field"}),
		ConfigFallbackActive: f.NewGauge(prometheus.GaugeOpts{
			Name: "worker_config_fallback_active",
			Help: "1 if any worker configuration fallback is active, 0 otherwise",
		}),

		CronJobRunsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "worker_cron_job_runs_total",
			Help: "Total number of cron job runs by status (success/failure)",
		}, []string{"status"}),
		CronJobDurationSeconds: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "worker_cron_job_duration_seconds",
			Help:    "Duration of cron job execution in seconds",
			Buckets: []float64{1, 5, 30, 60, 300, 900, 1800},
		}),
		CronJobSubredditsTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "worker_cron_job_subreddits_processed_total",
			Help: "Total number of subreddits processed across all cron job runs",
		}),
		CronJobStoriesUpsertedTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "worker_cron_job_stories_upserted_total",
			Help: "Total number of stories inserted or updated across all cron job runs",
		}),
		CronJobLastSuccessTimestamp: f.NewGauge(prometheus.GaugeOpts{
			Name: "worker_cron_job_last_success_timestamp",
			Help: "Unix timestamp of the last successful cron job run",
		}),
	}
}

// RecordLoadTimestamp records the current time as the configuration load time.
func (m *WorkerMetrics) RecordLoadTimestamp() {
	m.ConfigLoadTimestamp.SetToCurrentTime()
}

// RecordValidationError counts a configuration field that failed validation.
func (m *WorkerMetrics) RecordValidationError(field string) {
	m.ConfigValidationTotal.WithLabelValues(field).Inc()
}

// RecordFallback counts a configuration field replaced by its default.
func (m *WorkerMetrics) RecordFallback(field string) {
	m.ConfigFallbacksTotal.WithLabelValues(field).Inc()
}

// SetFallbackActive sets the fallback gauge to 1 when any default was applied.
func (m *WorkerMetrics) SetFallbackActive(active bool) {
	if active {
		m.ConfigFallbackActive.Set(1)
		return
	}
	m.ConfigFallbackActive.Set(0)
}

// RecordJobRun increments the job run counter; status is "success" or "failure".
func (m *WorkerMetrics) RecordJobRun(status string) {
	m.CronJobRunsTotal.WithLabelValues(status).Inc()
}

// RecordJobDuration observes the duration of one job in seconds.
func (m *WorkerMetrics) RecordJobDuration(seconds float64) {
	m.CronJobDurationSeconds.Observe(seconds)
}

// RecordStats adds the totals of a finished crawl.
func (m *WorkerMetrics) RecordStats(stats *ingest.Stats) {
	if stats == nil {
		return
	}
	m.CronJobSubredditsTotal.Add(float64(stats.Subreddits))
	m.CronJobStoriesUpsertedTotal.Add(float64(stats.Upserted()))
}

// RecordLastSuccess records the current time as the last successful run.
func (m *WorkerMetrics) RecordLastSuccess() {
	m.CronJobLastSuccessTimestamp.SetToCurrentTime()
}
