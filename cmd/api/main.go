package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"redditxstory/internal/common/pagination"
	"redditxstory/internal/config"
	pgRepo "redditxstory/internal/infra/adapter/persistence/postgres"
	"redditxstory/internal/infra/db"
	"redditxstory/internal/observability/logging"
	"redditxstory/internal/observability/tracing"
	pkgconfig "redditxstory/pkg/config"

	storyUC "redditxstory/internal/usecase/story"
	subUC "redditxstory/internal/usecase/subreddit"

	hhttp "redditxstory/internal/handler/http"
	hadmin "redditxstory/internal/handler/http/admin"
	hauth "redditxstory/internal/handler/http/auth"
	"redditxstory/internal/handler/http/middleware"
	"redditxstory/internal/handler/http/requestid"
	hstory "redditxstory/internal/handler/http/story"
)

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

// run wires the server and blocks until it shuts down. Every failure is
// logged where it happens; deferred cleanup runs before main exits.
func run() error {
	if err := pkgconfig.LoadDotEnv(); err != nil {
		slog.Warn("failed to load .env file", slog.Any("error", err))
	}

	logger := initLogger()

	cfg, err := config.LoadServerConfig()
	if err != nil {
		logger.Error("invalid server configuration", slog.Any("error", err))
		return err
	}
	if !cfg.AdminEnabled() {
		logger.Warn("ADMIN_EMAIL or ADMIN_PASSWORD not set, admin login is disabled")
	}

	shutdownTracing := tracing.Init(cfg.TraceSample)
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Error("tracer shutdown failed", slog.Any("error", err))
		}
	}()

	database, err := initDatabase(logger)
	if err != nil {
		return err
	}
	defer func() {
		if database == nil {
			return
		}
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	version := getVersion()
	handler, err := setupServer(logger, cfg, database, version)
	if err != nil {
		return err
	}

	return runServer(logger, cfg, handler, version)
}

func initLogger() *slog.Logger {
	logger := logging.NewLogger()
	slog.SetDefault(logger)
	return logger
}

// initDatabase opens the pool and runs migrations. A nil result means the
// site runs without a database and serves empty listings.
func initDatabase(logger *slog.Logger) (*sql.DB, error) {
	database, err := db.Open(db.LoadConfigFromEnv())
	if err != nil {
		logger.Error("failed to open database", slog.Any("error", err))
		return nil, err
	}
	if database == nil {
		return nil, nil
	}
	if err := db.MigrateUp(database); err != nil {
		logger.Error("failed to migrate database", slog.Any("error", err))
		_ = database.Close()
		return nil, err
	}
	return database, nil
}

func getVersion() string {
	return pkgconfig.GetEnvString("VERSION", "dev")
}

// setupServer builds the services and returns the fully wrapped handler.
func setupServer(logger *slog.Logger, cfg *config.ServerConfig, database *sql.DB, version string) (http.Handler, error) {
	store := db.NewStore(database)

	storySvc := storyUC.NewService(pgRepo.NewStoryRepo(store), pagination.LoadFromEnv())
	subSvc := &subUC.Service{Repo: pgRepo.NewSubredditRepo(store)}

	issuer, err := hauth.NewIssuer(cfg.JWTSecret, cfg.TokenTTL())
	if err != nil {
		logger.Error("failed to create token issuer", slog.Any("error", err))
		return nil, err
	}

	// Load trusted proxy configuration for login IP extraction
	proxyConfig, err := middleware.LoadTrustedProxyConfig()
	if err != nil {
		logger.Error("failed to load trusted proxy configuration", slog.Any("error", err))
		return nil, err
	}
	if proxyConfig.Enabled {
		logger.Info("login rate limiting: trusted proxy mode enabled",
			slog.Int("trusted_proxies_count", len(proxyConfig.AllowedCIDRs)))
	} else {
		logger.Info("login rate limiting: using RemoteAddr (proxy headers ignored)")
	}
	loginLimiter := middleware.NewIPRateLimiter(
		cfg.LoginInterval(), cfg.Security.Security.Login.Burst, middleware.NewIPExtractor(proxyConfig))

	corsConfig, err := middleware.LoadCORSConfig()
	if err != nil {
		logger.Error("failed to load CORS configuration", slog.Any("error", err))
		return nil, err
	}
	if corsConfig != nil {
		corsConfig.Logger = logger
		logger.Info("CORS enabled",
			slog.Any("allowed_origins", corsConfig.AllowedOrigins),
			slog.Int("max_age", corsConfig.MaxAge))
	}

	mux := setupRoutes(logger, cfg, store, storySvc, subSvc, issuer, loginLimiter, version)
	return applyMiddleware(logger, cfg, corsConfig, mux), nil
}

// setupRoutes registers public, admin and operational routes.
func setupRoutes(
	logger *slog.Logger,
	cfg *config.ServerConfig,
	store *db.Store,
	storySvc *storyUC.Service,
	subSvc *subUC.Service,
	issuer *hauth.Issuer,
	loginLimiter *middleware.IPRateLimiter,
	version string,
) *http.ServeMux {
	mux := http.NewServeMux()

	mux.Handle("GET /health", &hhttp.HealthHandler{Store: store, Version: version})
	mux.Handle("GET /ready", &hhttp.ReadyHandler{Store: store})
	mux.Handle("GET /live", &hhttp.LiveHandler{})
	mux.Handle("GET /metrics", hhttp.MetricsHandler())

	seo := &hhttp.SEOHandler{SiteURL: cfg.SiteURL, Stories: storySvc, Logger: logger}
	seo.Register(mux)

	hstory.Register(mux, storySvc, logger)

	hadmin.Register(mux, hadmin.Deps{
		Stories:    storySvc,
		Subreddits: subSvc,
		Login: &hauth.Endpoints{
			Provider:     hauth.NewStaticProvider(cfg.AdminEmail, cfg.AdminPassword),
			Issuer:       issuer,
			SecureCookie: cfg.CookieSecure,
		},
		LoginLimit: loginLimiter.Limit,
		Logger:     logger,
	})

	return mux
}

// applyMiddleware wraps handler with the middleware chain.
// Order, outermost first: CORS (when configured) → Request ID → Recovery →
// Tracing → Logging → Metrics → Body Limit
func applyMiddleware(logger *slog.Logger, cfg *config.ServerConfig, cors *middleware.CORSConfig, handler http.Handler) http.Handler {
	var chain []func(http.Handler) http.Handler
	if cors != nil {
		chain = append(chain, middleware.CORS(*cors))
	}
	chain = append(chain,
		requestid.Middleware,
		hhttp.Recover(logger),
		tracing.Middleware,
		hhttp.Logging(logger),
		hhttp.MetricsMiddleware,
		hhttp.LimitRequestBody(cfg.MaxBodyBytes),
	)
	return hhttp.Chain(handler, chain...)
}

// runServer starts the HTTP server and blocks until SIGINT or SIGTERM,
// then shuts down gracefully. A listen failure is returned.
func runServer(logger *slog.Logger, cfg *config.ServerConfig, handler http.Handler, version string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	addr := ":" + strconv.Itoa(cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attacks
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server starting",
			slog.String("addr", addr),
			slog.String("site_url", cfg.SiteURL),
			slog.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serveErr:
		logger.Error("server failed", slog.Any("error", err))
		return err
	case <-quit:
	}
	logger.Info("shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
		return err
	}
	logger.Info("server stopped")
	return nil
}
