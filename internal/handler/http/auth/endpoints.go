package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"redditxstory/internal/handler/http/requestid"
	"redditxstory/internal/handler/http/respond"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Endpoints serves admin login and logout.
type Endpoints struct {
	Provider     CredentialProvider
	Issuer       *Issuer
	SecureCookie bool
}

// Login checks the credentials and returns a token in the body and the
// admin_token cookie.
func (e *Endpoints) Login(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger := slog.With(slog.String("request_id", requestid.FromContext(r.Context())))

	fail := func(code int, reason, msg string) {
		logger.Warn("admin login failed", slog.String("reason", reason))
		RecordAuthRequest("failure")
		RecordAuthDuration(time.Since(start).Seconds())
		respond.JSON(w, code, map[string]string{"error": msg})
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(http.StatusBadRequest, "invalid_request", "invalid request body")
		return
	}

	if err := e.Provider.Validate(req.Email, req.Password); err != nil {
		fail(http.StatusUnauthorized, "invalid_credentials", ErrInvalidCredentials.Error())
		return
	}

	token, exp, err := e.Issuer.IssueToken(normalizeEmail(req.Email))
	if err != nil {
		logger.Error("token generation failed", slog.Any("error", err))
		RecordAuthRequest("failure")
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	SetTokenCookie(w, token, e.Issuer.TTL(), e.SecureCookie)
	RecordAuthRequest("success")
	RecordAuthDuration(time.Since(start).Seconds())
	logger.Info("admin login succeeded")

	respond.JSON(w, http.StatusOK, tokenResponse{Token: token, ExpiresAt: exp.UTC()})
}

// Logout clears the admin cookie. Bearer tokens stay valid until expiry.
func (e *Endpoints) Logout(w http.ResponseWriter, _ *http.Request) {
	ClearTokenCookie(w, e.SecureCookie)
	w.WriteHeader(http.StatusNoContent)
}
