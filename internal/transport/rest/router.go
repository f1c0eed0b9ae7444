package rest

import (
	"log/slog"
	"net/http"

	"github.com/jqhoogland/open-dictionary/internal/transport/middleware"
)

// RouterDeps holds everything NewRouter mounts. Admin and Auth are both nil
// when no token secret is configured; the admin routes are then absent.
type RouterDeps struct {
	Entries *EntriesHandler
	Admin   *AdminHandler
	Health  *HealthHandler
	Metrics http.Handler

	Auth      middleware.Middleware
	CORS      middleware.Middleware
	RateLimit middleware.Middleware

	Logger *slog.Logger
}

// NewRouter builds the HTTP handler with the middleware chain applied:
// recovery, request id, access log, CORS, rate limit.
func NewRouter(d RouterDeps) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", d.Health.Live)
	mux.HandleFunc("GET /ready", d.Health.Ready)
	mux.HandleFunc("GET /health", d.Health.Health)
	if d.Metrics != nil {
		mux.Handle("GET /metrics", d.Metrics)
	}

	api := middleware.Chain(d.RateLimit)
	mux.Handle("GET /api/v1/entries/{lang}/{word...}", api(http.HandlerFunc(d.Entries.Get)))
	mux.Handle("POST /api/v1/entries:batch", api(http.HandlerFunc(d.Entries.Batch)))
	mux.Handle("POST /api/v1/parse", api(http.HandlerFunc(d.Entries.Parse)))

	if d.Admin != nil && d.Auth != nil {
		admin := middleware.Chain(d.Auth, middleware.AdminOnly)
		mux.Handle("GET /admin/notices", admin(http.HandlerFunc(d.Admin.Notices)))
		mux.Handle("DELETE /admin/pages/{word}", admin(http.HandlerFunc(d.Admin.EvictPage)))
		mux.Handle("POST /admin/pages/{word}/refresh", admin(http.HandlerFunc(d.Admin.RefreshPage)))
	}

	return middleware.Chain(
		middleware.Recovery(d.Logger),
		middleware.RequestID,
		middleware.Logger(d.Logger),
		d.CORS,
	)(mux)
}
