package reddit

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"redditxstory/internal/usecase/ingest"
)

// kindPrefix marks a link (post) fullname.
const kindPrefix = "t3_"

// toPost maps a feed entry to a post. Entries without a t3_ id or title
// are dropped.
func toPost(it *gofeed.Item, subreddit string) (ingest.Post, bool) {
	id := postID(it)
	title := strings.TrimSpace(it.Title)
	if id == "" || title == "" {
		return ingest.Post{}, false
	}

	created := time.Time{}
	switch {
	case it.PublishedParsed != nil:
		created = *it.PublishedParsed
	case it.UpdatedParsed != nil:
		created = *it.UpdatedParsed
	}

	body := it.Content
	if body == "" {
		body = it.Description
	}

	return ingest.Post{
		ID:        id,
		Title:     title,
		Author:    authorName(it),
		Subreddit: subredditName(it, subreddit),
		URL:       it.Link,
		Content:   plainText(body),
		CreatedAt: created.UTC(),
	}, true
}

func postID(it *gofeed.Item) string {
	guid := strings.TrimSpace(it.GUID)
	if !strings.HasPrefix(guid, kindPrefix) {
		return ""
	}
	return strings.TrimPrefix(guid, kindPrefix)
}

// authorName returns "u/<name>" for "/u/name" style feed authors.
func authorName(it *gofeed.Item) string {
	var name string
	switch {
	case it.Author != nil:
		name = it.Author.Name
	case len(it.Authors) > 0 && it.Authors[0] != nil:
		name = it.Authors[0].Name
	}
	name = strings.TrimSpace(name)
	name = strings.TrimPrefix(name, "/")
	name = strings.TrimPrefix(name, "u/")
	if name == "" {
		return ""
	}
	return "u/" + name
}

// subredditName prefers the feed's category term, which carries Reddit's
// canonical casing.
func subredditName(it *gofeed.Item, fallback string) string {
	for _, c := range it.Categories {
		if c = strings.TrimSpace(c); c != "" {
			return c
		}
	}
	return fallback
}

// plainText flattens the HTML body of a post. The trailing
// "submitted by ... [link] [comments]" footer Reddit appends is removed.
func plainText(html string) string {
	if strings.TrimSpace(html) == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}

	// Self posts wrap the body in a div.md; link posts have none.
	sel := doc.Find("div.md")
	if sel.Length() == 0 {
		return ""
	}

	var parts []string
	const blocks = "p, li, blockquote, pre, h1, h2, h3, h4, h5, h6"
	sel.Find(blocks).Each(func(_ int, s *goquery.Selection) {
		if s.ParentsFiltered(blocks).Length() > 0 {
			return
		}
		if t := normalizeSpace(s.Text()); t != "" {
			parts = append(parts, t)
		}
	})
	if len(parts) == 0 {
		return normalizeSpace(sel.Text())
	}
	return strings.Join(parts, "\n\n")
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
