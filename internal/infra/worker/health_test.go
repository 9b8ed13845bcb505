package worker

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func probe(t *testing.T, h http.Handler, path string) (int, healthResponse) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	var body healthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestHealthServer_Liveness(t *testing.T) {
	s := NewHealthServer(":0", quietLogger(), nil, nil)

	code, body := probe(t, s.Handler(), "/health")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body.Status)
}

func TestHealthServer_Readiness(t *testing.T) {
	s := NewHealthServer(":0", quietLogger(), nil, nil)

	code, body := probe(t, s.Handler(), "/ready")
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "not ready", body.Status)

	s.SetReady(true)
	code, body = probe(t, s.Handler(), "/ready")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body.Status)
}

func TestHealthServer_ReadinessChecksStore(t *testing.T) {
	var failing bool
	check := func(context.Context) error {
		if failing {
			return errors.New("connection refused")
		}
		return nil
	}
	s := NewHealthServer(":0", quietLogger(), check, nil)
	s.SetReady(true)

	code, _ := probe(t, s.Handler(), "/ready")
	assert.Equal(t, http.StatusOK, code)

	failing = true
	code, body := probe(t, s.Handler(), "/ready")
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "database unavailable", body.Error)
	assert.NotContains(t, body.Error, "refused")
}

func TestHealthServer_Metrics(t *testing.T) {
	metrics := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "# metrics\n")
	})
	s := NewHealthServer(":0", quietLogger(), nil, metrics)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "# metrics\n", rec.Body.String())
}

func TestHealthServer_StartShutdown(t *testing.T) {
	s := NewHealthServer("127.0.0.1:0", quietLogger(), nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, http.ErrServerClosed)
	case <-time.After(6 * time.Second):
		t.Fatal("health server did not stop")
	}
}
