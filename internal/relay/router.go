package relay

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/diogo/barbchat/internal/models"
)

// NewRouter creates and configures the HTTP router. An empty staticDir
// disables static file serving.
func NewRouter(logger zerolog.Logger, h *Handler, staticDir string) *chi.Mux {
	r := chi.NewRouter()

	// Metrics middleware (first to capture all requests)
	r.Use(Metrics)

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(Logger(logger))
	r.Use(chimw.Recoverer)

	// CORS - allow all origins, the relay has no credentials of its own
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Handle(models.PathMetrics, promhttp.Handler())
	r.Get(models.PathHealth, h.Health)
	r.Post(models.PathChat, h.ForwardChat)

	if staticDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(staticDir)))
	}

	return r
}
