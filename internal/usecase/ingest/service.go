package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"redditxstory/internal/domain/entity"
	"redditxstory/internal/observability/metrics"
	"redditxstory/internal/repository"
)

// fetchMultiplier is how many posts are requested per kept story; old posts
// are filtered after fetching.
const fetchMultiplier = 5

// Post is a Reddit submission as read from a subreddit feed.
type Post struct {
	ID          string // base36 ID without the "t3_" kind prefix
	Title       string
	Author      string // "u/<name>"
	Subreddit   string
	URL         string // permalink
	Content     string // plain text body
	Score       int
	NumComments int
	CreatedAt   time.Time
}

// PostFetcher reads the newest posts of a subreddit.
type PostFetcher interface {
	FetchNew(ctx context.Context, subreddit string, max int) ([]Post, error)
}

// Config controls how much of each subreddit a crawl keeps.
type Config struct {
	PerSubredditLimit int      // Stories kept per subreddit per run
	DaysBack          int      // Posts older than this are skipped
	Concurrency       int      // Subreddits fetched in parallel
	Fallback          []string // Used when the subreddits table is empty or unreadable
}

// Stats summarises one crawl.
type Stats struct {
	Subreddits int
	Fetched    int
	Inserted   int
	Updated    int
	SkippedOld int
	Errors     int
	Duration   time.Duration
}

// Upserted returns the number of stories written.
func (s *Stats) Upserted() int { return s.Inserted + s.Updated }

// Service crawls subreddits into the story store.
type Service struct {
	Stories    repository.StoryRepository
	Subreddits repository.SubredditRepository
	Fetcher    PostFetcher
	Config     Config
	Now        func() time.Time
}

// NewService wires a crawl service.
func NewService(stories repository.StoryRepository, subs repository.SubredditRepository, fetcher PostFetcher, cfg Config) *Service {
	return &Service{
		Stories:    stories,
		Subreddits: subs,
		Fetcher:    fetcher,
		Config:     cfg,
		Now:        time.Now,
	}
}

// ResolveSubreddits returns the enabled subreddits, or the fallback list when
// none are enabled or the table cannot be read.
func (s *Service) ResolveSubreddits(ctx context.Context) []string {
	names, err := s.Subreddits.ListEnabledNames(ctx)
	if err != nil {
		slog.Warn("failed to read enabled subreddits, using fallback list",
			slog.Any("error", err),
			slog.Any("fallback", s.Config.Fallback))
		return s.Config.Fallback
	}
	if len(names) == 0 {
		return s.Config.Fallback
	}
	return names
}

// subredditResult is what one subreddit contributes to a crawl.
type subredditResult struct {
	name       string
	stories    []*entity.Story
	fetched    int
	skippedOld int
	duration   time.Duration
	failed     bool
}

// CrawlAll fetches every subreddit, keeps posts newer than DaysBack up to
// PerSubredditLimit each, and upserts them in one batch.
//
// A subreddit that fails to fetch is logged and counted in Stats.Errors;
// the crawl continues with the others. Context cancellation and storage
// errors abort the crawl.
func (s *Service) CrawlAll(ctx context.Context) (*Stats, error) {
	start := time.Now()
	stats := &Stats{}

	subs := s.ResolveSubreddits(ctx)
	if len(subs) == 0 {
		return stats, ErrNoSubreddits
	}
	stats.Subreddits = len(subs)
	metrics.UpdateSubredditsEnabled(len(subs))

	results := make([]subredditResult, len(subs))
	cutoff := s.Now().Add(-time.Duration(s.Config.DaysBack) * 24 * time.Hour)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(max(s.Config.Concurrency, 1))
	for i, name := range subs {
		eg.Go(func() error {
			res, err := s.crawlSubreddit(egCtx, name, cutoff)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return stats, err
	}

	var batch []*entity.Story
	for _, r := range results {
		stats.Fetched += r.fetched
		stats.SkippedOld += r.skippedOld
		if r.failed {
			stats.Errors++
		}
		batch = append(batch, r.stories...)
	}

	existing, err := s.existing(ctx, batch)
	if err != nil {
		return stats, err
	}

	upsertStart := time.Now()
	if _, err := s.Stories.UpsertBatch(ctx, batch); err != nil {
		return stats, fmt.Errorf("upsert stories: %w", err)
	}
	metrics.RecordDBQuery("upsert_stories", time.Since(upsertStart))

	for _, r := range results {
		inserted, updated := 0, 0
		for _, st := range r.stories {
			if existing[st.RedditID] {
				updated++
			} else {
				inserted++
			}
		}
		stats.Inserted += inserted
		stats.Updated += updated
		metrics.RecordSubredditCrawl(r.name, r.duration, r.fetched, inserted, updated)
	}

	stats.Duration = time.Since(start)
	slog.Info("subreddit crawl completed",
		slog.Int("subreddits", stats.Subreddits),
		slog.Int("fetched", stats.Fetched),
		slog.Int("inserted", stats.Inserted),
		slog.Int("updated", stats.Updated),
		slog.Int("skipped_old", stats.SkippedOld),
		slog.Int("errors", stats.Errors),
		slog.Duration("duration", stats.Duration))

	return stats, nil
}

// crawlSubreddit returns an error only for context cancellation; other
// fetch failures are reported through subredditResult.failed.
func (s *Service) crawlSubreddit(ctx context.Context, name string, cutoff time.Time) (subredditResult, error) {
	start := time.Now()
	res := subredditResult{name: name}
	limit := max(s.Config.PerSubredditLimit, 1)

	posts, err := s.Fetcher.FetchNew(ctx, name, limit*fetchMultiplier)
	res.duration = time.Since(start)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return res, err
		}
		slog.Warn("failed to fetch subreddit",
			slog.String("subreddit", name),
			slog.Any("error", err))
		metrics.RecordSubredditCrawlError(name, "fetch_failed")
		res.failed = true
		return res, nil
	}
	res.fetched = len(posts)

	overLimit, invalid := 0, 0
	for _, p := range posts {
		if p.CreatedAt.Before(cutoff) {
			res.skippedOld++
			continue
		}
		if len(res.stories) >= limit {
			overLimit++
			continue
		}
		st := toStory(p, name)
		if err := st.Validate(); err != nil {
			slog.Debug("skipping invalid post",
				slog.String("subreddit", name),
				slog.String("reddit_id", p.ID),
				slog.Any("error", err))
			invalid++
			continue
		}
		res.stories = append(res.stories, st)
	}
	metrics.RecordStorySkipped(metrics.SkipTooOld, res.skippedOld)
	metrics.RecordStorySkipped(metrics.SkipOverLimit, overLimit)
	metrics.RecordStorySkipped(metrics.SkipInvalid, invalid)

	slog.Debug("subreddit fetched",
		slog.String("subreddit", name),
		slog.Int("fetched", res.fetched),
		slog.Int("kept", len(res.stories)),
		slog.Int("skipped_old", res.skippedOld),
		slog.Duration("duration", res.duration))

	return res, nil
}

// existing reports which stories are already stored so stats can tell
// inserts from refreshes. A failed lookup only degrades the stats.
func (s *Service) existing(ctx context.Context, batch []*entity.Story) (map[string]bool, error) {
	if len(batch) == 0 {
		return map[string]bool{}, nil
	}
	ids := make([]string, 0, len(batch))
	for _, st := range batch {
		ids = append(ids, st.RedditID)
	}
	existing, err := s.Stories.ExistingRedditIDs(ctx, ids)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		slog.Warn("failed to check existing stories", slog.Any("error", err))
		return map[string]bool{}, nil
	}
	return existing, nil
}

// toStory maps a post to a story. The requested subreddit name is used when
// the feed omits it.
func toStory(p Post, subreddit string) *entity.Story {
	if p.Subreddit != "" {
		subreddit = p.Subreddit
	}
	return &entity.Story{
		RedditID:    p.ID,
		Title:       p.Title,
		Author:      p.Author,
		Subreddit:   subreddit,
		URL:         p.URL,
		Score:       p.Score,
		NumComments: p.NumComments,
		CreatedAt:   p.CreatedAt,
		Content:     p.Content,
		Slug:        entity.StorySlug(p.Title, p.ID),
	}
}
