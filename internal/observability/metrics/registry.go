package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Story metrics
var (
	// StoriesTotal tracks total number of stories in the database
	StoriesTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "stories_total",
			Help: "Total number of stories in the database",
		},
	)

	// SubredditsEnabled tracks how many subreddits the worker reads
	SubredditsEnabled = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "subreddits_enabled",
			Help: "Number of enabled subreddits",
		},
	)
)

// Ingestion metrics
var (
	// StoriesFetchedTotal counts posts read from each subreddit feed
	StoriesFetchedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stories_fetched_total",
			Help: "Total number of posts fetched from subreddit feeds",
		},
		[]string{"subreddit"},
	)

	// StoriesUpsertedTotal counts stories written, split into new and updated
	StoriesUpsertedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stories_upserted_total",
			Help: "Total number of stories inserted or refreshed",
		},
		[]string{"subreddit", "kind"}, // kind: inserted, updated
	)

	// StoriesSkippedTotal counts posts dropped before storage
	StoriesSkippedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stories_skipped_total",
			Help: "Total number of fetched posts not stored",
		},
		[]string{"reason"}, // reason: too_old, over_limit, invalid
	)

	// SubredditCrawlDuration measures time to crawl one subreddit
	SubredditCrawlDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "subreddit_crawl_duration_seconds",
			Help:    "Time taken to crawl a subreddit feed",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
		},
		[]string{"subreddit"},
	)

	// SubredditCrawlErrors counts errors during subreddit crawling
	SubredditCrawlErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "subreddit_crawl_errors_total",
			Help: "Total number of subreddit crawl errors",
		},
		[]string{"subreddit", "error_type"},
	)
)

// Database metrics
var (
	// DBQueryDuration measures database query duration
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 10),
		},
		[]string{"operation"},
	)
)
