// Package metrics holds the Prometheus business metrics: stored story
// counts, per-subreddit ingestion results and database query latency.
//
// All metrics register with the default registry and are served on /metrics
// by both the API server and the worker's health server.
//
// Example usage:
//
//	start := time.Now()
//	posts, err := fetcher.FetchNew(ctx, "nosleep", 250)
//	if err != nil {
//	    metrics.RecordSubredditCrawlError("nosleep", "fetch_failed")
//	}
//	metrics.RecordSubredditCrawl("nosleep", time.Since(start), len(posts), 0, 0)
package metrics
