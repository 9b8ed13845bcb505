package http

import (
	"context"
	"encoding/xml"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"redditxstory/internal/handler/http/respond"
	"redditxstory/internal/repository"
)

// SitemapLimit caps the number of story URLs in sitemap.xml.
const SitemapLimit = 500

// RecentStories lists the newest stories for the sitemap.
type RecentStories interface {
	Recent(ctx context.Context, limit int) ([]repository.SitemapEntry, error)
}

// SEOHandler serves robots.txt and sitemap.xml for SiteURL.
type SEOHandler struct {
	SiteURL string
	Stories RecentStories
	Logger  *slog.Logger
}

// Register mounts the SEO routes.
func (h *SEOHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /robots.txt", h.Robots)
	mux.HandleFunc("GET /sitemap.xml", h.Sitemap)
}

// Robots allows all crawlers and points them at the sitemap.
func (h *SEOHandler) Robots(w http.ResponseWriter, _ *http.Request) {
	body := "User-agent: *\nAllow: /\nSitemap: " + h.base() + "/sitemap.xml"
	respond.Text(w, http.StatusOK, "text/plain; charset=utf-8", body)
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// Sitemap lists the site root followed by the newest story pages.
// A failed story lookup still yields a sitemap with the root entry.
func (h *SEOHandler) Sitemap(w http.ResponseWriter, r *http.Request) {
	base := h.base()
	set := urlSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  []sitemapURL{{Loc: base + "/", ChangeFreq: "hourly"}},
	}

	if h.Stories != nil {
		entries, err := h.Stories.Recent(r.Context(), SitemapLimit)
		if err != nil {
			h.logger().Warn("sitemap: story lookup failed",
				slog.String("error", respond.SanitizeError(err)))
		}
		for _, e := range entries {
			u := sitemapURL{Loc: base + "/story/" + e.Slug}
			if !e.CreatedAt.IsZero() {
				u.LastMod = e.CreatedAt.UTC().Format(time.DateOnly)
			}
			set.URLs = append(set.URLs, u)
		}
	}

	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}
	respond.Text(w, http.StatusOK, "application/xml; charset=utf-8", xml.Header+string(out))
}

func (h *SEOHandler) base() string {
	return strings.TrimRight(h.SiteURL, "/")
}

func (h *SEOHandler) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}
