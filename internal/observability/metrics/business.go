package metrics

import "time"

// Skip reasons for RecordStorySkipped.
const (
	SkipTooOld    = "too_old"
	SkipOverLimit = "over_limit"
	SkipInvalid   = "invalid"
)

// RecordSubredditCrawl records one subreddit crawl: posts fetched plus how
// many of the stored stories were new or refreshed.
func RecordSubredditCrawl(subreddit string, duration time.Duration, fetched, inserted, updated int) {
	SubredditCrawlDuration.WithLabelValues(subreddit).Observe(duration.Seconds())
	if fetched > 0 {
		StoriesFetchedTotal.WithLabelValues(subreddit).Add(float64(fetched))
	}
	if inserted > 0 {
		StoriesUpsertedTotal.WithLabelValues(subreddit, "inserted").Add(float64(inserted))
	}
	if updated > 0 {
		StoriesUpsertedTotal.WithLabelValues(subreddit, "updated").Add(float64(updated))
	}
}

// RecordSubredditCrawlError records an error during subreddit crawling.
func RecordSubredditCrawlError(subreddit, errorType string) {
	SubredditCrawlErrors.WithLabelValues(subreddit, errorType).Inc()
}

// RecordStorySkipped records posts dropped for reason.
func RecordStorySkipped(reason string, count int) {
	if count > 0 {
		StoriesSkippedTotal.WithLabelValues(reason).Add(float64(count))
	}
}

// UpdateStoriesTotal updates the stored story gauge.
func UpdateStoriesTotal(count int64) {
	StoriesTotal.Set(float64(count))
}

// UpdateSubredditsEnabled updates the enabled subreddit gauge.
func UpdateSubredditsEnabled(count int) {
	SubredditsEnabled.Set(float64(count))
}

// RecordDBQuery records the duration of a database query operation.
func RecordDBQuery(operation string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}
