package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rivals-dev/rivals/backend/internal/setup"
	"github.com/rivals-dev/rivals/shared/config"
	mw "github.com/rivals-dev/rivals/shared/middleware"
)

// New creates and configures a new chi router with all the routes.
// The burst throttle is keyed by remote address and shared by every API route;
// probes and /metrics sit outside it.
func New(deps *setup.Dependencies) http.Handler {
	cfg := deps.Config.Public
	h := deps.Handler

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(mw.RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestSize(maxRequestBytes(cfg.Content)))
	r.Use(deps.HTTPMetrics.Middleware)

	// setup CORS for frontend
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Cors.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "X-User-Id", "X-Debug-User"},
		ExposedHeaders:   []string{"Retry-After"},
		AllowCredentials: false,
		MaxAge:           cfg.Cors.MaxAge,
	}))
	r.Use(mw.SecurityHeaders(cfg.Http.Secure))

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))

	r.Group(func(r chi.Router) {
		r.Use(mw.RateLimit(deps.Burst, mw.GetIP))
		r.Use(mw.Caller)

		r.Route("/threads", func(r chi.Router) {
			r.Get("/", h.ListThreads)
			r.Post("/", h.CreateThread) // quota-gated
			r.Get("/{threadId}", h.GetThread)
			r.Get("/{threadId}/comments", h.ListComments)
			r.Post("/{threadId}/comments", h.CreateComment) // quota-gated
		})
		r.Post("/comments/{commentId}/like", h.LikeComment)
		r.Get("/me/limits", h.GetLimits)
		r.Get("/rankings", h.GetRankings)
	})

	return r
}

// maxRequestBytes bounds a create request: every character may take up to
// six bytes once JSON-escaped, plus room for field names and an author id.
func maxRequestBytes(content config.Content) int64 {
	return int64(6*(content.MaxTitleLength+content.MaxBodyLength) + 4096)
}
