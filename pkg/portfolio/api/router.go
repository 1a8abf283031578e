package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/go-chi/render"

	"github.com/webfolio/portfolio-server/pkg/portfolio"
)

// Resume upload rate limit: a sliding window per client IP.
const (
	resumeRateLimit  = 5
	resumeRateWindow = 10 * time.Second
)

// RouterConfig carries the router-level options.
type RouterConfig struct {
	// AllowedOrigins configures CORS; empty means same-origin only.
	AllowedOrigins []string
}

// NewRouter builds the full HTTP surface for the portfolio service.
func NewRouter(service portfolio.Service, cfg RouterConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	if len(cfg.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, map[string]string{"status": "ok"})
	})

	content := NewContentHandler(service)
	sections := NewSectionsHandler(service)
	items := NewItemsHandler(service)
	categories := NewCategoriesHandler(service)
	uploads := NewUploadsHandler(service)

	r.Route("/api", func(r chi.Router) {
		r.Get("/content", content.GetSiteContent)

		r.Get("/settings", content.GetSettings)
		r.Put("/settings", content.UpdateSettings)

		r.Post("/auth/login", content.Login)

		r.Post("/contact", content.SubmitContactMessage)
		r.Get("/messages", content.ListContactMessages)

		r.Mount("/sections", sections.Routes())
		r.Mount("/categories", categories.Routes())
		items.Register(r)

		r.Post("/images/upload", uploads.UploadImage)
		r.With(resumeRateLimiter()).Post("/resume/upload", uploads.UploadResume)
		r.Delete("/uploads/*", uploads.DeleteBlob)
	})

	return r
}

// resumeRateLimiter limits resume uploads per client IP, answering over-limit
// requests with the standard error envelope.
func resumeRateLimiter() func(http.Handler) http.Handler {
	return httprate.Limit(
		resumeRateLimit,
		resumeRateWindow,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			writeError(w, r, portfolio.ErrRateLimited)
		}),
	)
}
