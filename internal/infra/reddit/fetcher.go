// Package reddit reads subreddit posts from Reddit's public Atom feeds.
package reddit

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"golang.org/x/time/rate"

	"redditxstory/internal/resilience/circuitbreaker"
	"redditxstory/internal/resilience/retry"
	"redditxstory/internal/usecase/ingest"
)

const (
	// DefaultBaseURL is the Reddit origin the feeds are read from.
	DefaultBaseURL = "https://www.reddit.com"

	// DefaultUserAgent identifies the crawler; Reddit throttles generic agents.
	DefaultUserAgent = "redditxstory-bot/1.0"

	// maxFeedBytes caps a single feed response.
	maxFeedBytes = 5 << 20

	// maxFeedItems is the largest page the feed endpoint serves.
	maxFeedItems = 100
)

// Config holds the feed fetcher settings.
type Config struct {
	BaseURL     string
	UserAgent   string
	Timeout     time.Duration // per request
	MinInterval time.Duration // between requests across all subreddits
	Retry       retry.Config
	Breaker     circuitbreaker.Config
}

// DefaultConfig returns the production fetcher settings.
func DefaultConfig() Config {
	return Config{
		BaseURL:     DefaultBaseURL,
		UserAgent:   DefaultUserAgent,
		Timeout:     15 * time.Second,
		MinInterval: time.Second,
		Retry:       retry.RedditFeedConfig(),
		Breaker:     circuitbreaker.RedditFeedConfig(),
	}
}

// FeedFetcher implements ingest.PostFetcher over the /r/<sub>/new/.rss feed.
type FeedFetcher struct {
	client  *http.Client
	cfg     Config
	limiter *rate.Limiter
	breaker *circuitbreaker.CircuitBreaker
	parser  *gofeed.Parser
}

var _ ingest.PostFetcher = (*FeedFetcher)(nil)

// NewFeedFetcher creates a fetcher. A nil client gets one with cfg.Timeout.
func NewFeedFetcher(client *http.Client, cfg Config) *FeedFetcher {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}

	limit := rate.Inf
	if cfg.MinInterval > 0 {
		limit = rate.Every(cfg.MinInterval)
	}

	return &FeedFetcher{
		client:  client,
		cfg:     cfg,
		limiter: rate.NewLimiter(limit, 1),
		breaker: circuitbreaker.New(cfg.Breaker, isClientError),
		parser:  gofeed.NewParser(),
	}
}

// FeedURL returns the feed address for a subreddit.
func (f *FeedFetcher) FeedURL(subreddit string, max int) string {
	if max <= 0 || max > maxFeedItems {
		max = maxFeedItems
	}
	return fmt.Sprintf("%s/r/%s/new/.rss?limit=%d",
		strings.TrimRight(f.cfg.BaseURL, "/"), url.PathEscape(subreddit), max)
}

// FetchNew returns up to max of the newest posts in subreddit, newest first.
func (f *FeedFetcher) FetchNew(ctx context.Context, subreddit string, max int) ([]ingest.Post, error) {
	feedURL := f.FeedURL(subreddit, max)

	var feed *gofeed.Feed
	err := retry.WithBackoff(ctx, f.cfg.Retry, func() error {
		if err := f.limiter.Wait(ctx); err != nil {
			return err
		}
		parsed, err := circuitbreaker.Do(f.breaker, func() (*gofeed.Feed, error) {
			return f.fetchFeed(ctx, feedURL)
		})
		if err != nil {
			if circuitbreaker.IsOpenErr(err) {
				slog.Warn("reddit feed circuit breaker open, request rejected",
					slog.String("subreddit", subreddit),
					slog.String("state", f.breaker.State().String()))
			}
			return err
		}
		feed = parsed
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("fetch r/%s: %w", subreddit, err)
	}

	posts := make([]ingest.Post, 0, len(feed.Items))
	for _, it := range feed.Items {
		p, ok := toPost(it, subreddit)
		if !ok {
			continue
		}
		posts = append(posts, p)
		if max > 0 && len(posts) == max {
			break
		}
	}
	return posts, nil
}

func (f *FeedFetcher) fetchFeed(ctx context.Context, feedURL string) (*gofeed.Feed, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", f.cfg.UserAgent)
	req.Header.Set("Accept", "application/atom+xml, application/rss+xml;q=0.9, */*;q=0.5")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &retry.HTTPError{
			StatusCode: resp.StatusCode,
			Message:    http.StatusText(resp.StatusCode),
			RetryAfter: retry.ParseRetryAfter(resp.Header.Get("Retry-After")),
		}
	}

	feed, err := f.parser.Parse(io.LimitReader(resp.Body, maxFeedBytes))
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}
	return feed, nil
}

// isClientError reports errors that say nothing about Reddit's health:
// 4xx other than 429, and cancellation by the caller.
func isClientError(err error) bool {
	if errors.Is(err, context.Canceled) {
		return true
	}
	var httpErr *retry.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode >= 400 && httpErr.StatusCode < 500 &&
			httpErr.StatusCode != http.StatusTooManyRequests
	}
	return false
}
