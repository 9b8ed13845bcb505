package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"redditxstory/internal/handler/http/requestid"
	"redditxstory/internal/handler/http/respond"
)

type ctxKey string

const ctxUser ctxKey = "admin_user"

// CookieName holds the admin token for browser sessions.
const CookieName = "admin_token"

// UserFromContext returns the authenticated admin, or "" outside Authz.
func UserFromContext(ctx context.Context) string {
	u, _ := ctx.Value(ctxUser).(string)
	return u
}

// Authz requires a valid admin token, taken from the Authorization bearer
// header or, failing that, the admin_token cookie.
func Authz(issuer *Issuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			user, err := issuer.Verify(tokenFromRequest(r))
			RecordAuthzCheckDuration(time.Since(start).Seconds())

			if err != nil {
				reason := denyReason(err)
				RecordAuthzDenied(reason)
				slog.Default().Warn("admin request denied",
					slog.String("request_id", requestid.FromContext(r.Context())),
					slog.String("path", r.URL.Path),
					slog.String("reason", reason))

				code := http.StatusUnauthorized
				if errors.Is(err, ErrNotAdmin) {
					code = http.StatusForbidden
				}
				respond.JSON(w, code, map[string]string{"error": http.StatusText(code)})
				return
			}

			ctx := context.WithValue(r.Context(), ctxUser, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func tokenFromRequest(r *http.Request) string {
	const prefix = "Bearer "
	if h := r.Header.Get("Authorization"); len(h) > len(prefix) && strings.EqualFold(h[:len(prefix)], prefix) {
		return strings.TrimSpace(h[len(prefix):])
	}
	if c, err := r.Cookie(CookieName); err == nil {
		return c.Value
	}
	return ""
}

func denyReason(err error) string {
	switch {
	case errors.Is(err, ErrMissingToken):
		return "missing"
	case errors.Is(err, ErrTokenExpired):
		return "expired"
	case errors.Is(err, ErrNotAdmin):
		return "forbidden"
	default:
		return "invalid"
	}
}

// SetTokenCookie stores token in an HttpOnly, SameSite=Lax cookie.
func SetTokenCookie(w http.ResponseWriter, token string, ttl time.Duration, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearTokenCookie expires the admin cookie.
func ClearTokenCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}
