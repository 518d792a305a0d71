package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/plastinin/bizreport/internal/adapter/http/handler"
	httpmiddleware "github.com/plastinin/bizreport/internal/adapter/http/middleware"
	"go.uber.org/zap"
)

// RouterOptions необязательные части роутера
type RouterOptions struct {
	AllowedOrigins []string
	// Frontend статика SPA, при nil не монтируется
	Frontend http.Handler
}

// NewRouter создаёт и настраивает HTTP роутер
func NewRouter(
	reportHandler *handler.ReportHandler,
	healthHandler *handler.HealthHandler,
	opts RouterOptions,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(httpmiddleware.NewLoggingMiddleware(logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"Content-Disposition", "X-Request-Id"},
		MaxAge:         300,
	}))

	// Liveness и health check
	r.Get("/", healthHandler.Root)
	r.Get("/health", healthHandler.Check)

	r.Post("/upload", reportHandler.Upload)
	r.Post("/summarize-text", reportHandler.SummarizeText)
	r.Post("/export", reportHandler.Export)

	if opts.Frontend != nil {
		r.Get("/app", http.RedirectHandler("/app/", http.StatusMovedPermanently).ServeHTTP)
		r.With(middleware.Compress(5)).Handle("/app/*", http.StripPrefix("/app", opts.Frontend))
	}

	return r
}
