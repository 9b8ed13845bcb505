// Package resilience holds the fault tolerance helpers used around calls to
// Reddit: a circuit breaker and retry with exponential backoff.
//
// The story listing path does not use either; it makes one database call
// per request and reports failures directly.
//
// Usage Example:
//
//	cb := circuitbreaker.New(circuitbreaker.RedditFeedConfig())
//	items, err := circuitbreaker.Do(cb, func() ([]Post, error) {
//	    var out []Post
//	    err := retry.WithBackoff(ctx, retry.RedditFeedConfig(), func() error {
//	        var err error
//	        out, err = fetchOnce(ctx)
//	        return err
//	    })
//	    return out, err
//	})
package resilience
