package middleware

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"redditxstory/internal/handler/http/respond"
)

// IPRateLimiter limits requests per client IP with a token bucket.
// It guards the admin login endpoint against password guessing.
type IPRateLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*ipLimiter
	every     rate.Limit
	burst     int
	ttl       time.Duration
	lastGC    time.Time
	now       func() time.Time
	extractor IPExtractor
}

type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewIPRateLimiter allows burst requests per IP, refilled at one per interval.
// A nil extractor falls back to RemoteAddrExtractor.
func NewIPRateLimiter(interval time.Duration, burst int, extractor IPExtractor) *IPRateLimiter {
	if extractor == nil {
		extractor = &RemoteAddrExtractor{}
	}
	return &IPRateLimiter{
		limiters:  make(map[string]*ipLimiter),
		every:     rate.Every(interval),
		burst:     burst,
		ttl:       10 * time.Minute,
		now:       time.Now,
		extractor: extractor,
	}
}

// Limit returns 429 once the client's bucket is empty.
func (l *IPRateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, err := l.extractor.ExtractIP(r)
		if err != nil {
			// Unparseable peers share one bucket.
			slog.Warn("failed to extract client ip", slog.String("remote_addr", r.RemoteAddr), slog.Any("error", err))
			ip = "unknown"
		}
		if !l.allow(ip) {
			w.Header().Set("Retry-After", "60")
			respond.JSON(w, http.StatusTooManyRequests, map[string]string{"error": "too many requests"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (l *IPRateLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastGC) > l.ttl {
		for k, v := range l.limiters {
			if now.Sub(v.lastSeen) > l.ttl {
				delete(l.limiters, k)
			}
		}
		l.lastGC = now
	}

	e, ok := l.limiters[ip]
	if !ok {
		e = &ipLimiter{limiter: rate.NewLimiter(l.every, l.burst)}
		l.limiters[ip] = e
	}
	e.lastSeen = now
	return e.limiter.AllowN(now, 1)
}
