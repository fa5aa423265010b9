package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/gamescore-service/internal/service"
	"github.com/gamescore-service/internal/websocket"
)

// Handler provides the HTTP surface of the score API.
type Handler struct {
	service *service.GameScoreService
	hub     *websocket.Hub
	logger  *slog.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(svc *service.GameScoreService, hub *websocket.Hub, logger *slog.Logger) *Handler {
	return &Handler{
		service: svc,
		hub:     hub,
		logger:  logger,
	}
}

// Router creates and configures the HTTP router. Collection and item
// URLs carry a trailing slash; that form is the canonical one.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	r.Use(corsMiddleware)

	r.Get("/health", h.HealthCheck)
	r.Get("/ready", h.ReadyCheck)

	r.Get("/ws", h.HandleWebSocket)

	// Documentation redirects
	r.Get(linkRelationsURL, h.RedirectLinkRelations)
	r.Get("/profiles/{profile}/", h.RedirectProfile)

	r.Route("/players", func(r chi.Router) {
		r.Get("/", h.ListPlayers)
		r.Post("/", h.CreatePlayer)

		r.Route("/{player}", func(r chi.Router) {
			r.Get("/", h.GetPlayer)
			r.Put("/", h.UpdatePlayer)
			r.Delete("/", h.DeletePlayer)
			r.Get("/scores/", h.ListPlayerScores)
		})
	})

	r.Route("/games", func(r chi.Router) {
		r.Get("/", h.ListGames)
		r.Post("/", h.CreateGame)

		r.Route("/{game}", func(r chi.Router) {
			r.Get("/", h.GetGame)
			r.Put("/", h.UpdateGame)
			r.Post("/", h.CreateLevel)
			r.Delete("/", h.DeleteGame)

			r.Route("/{level}", func(r chi.Router) {
				r.Get("/", h.GetLevel)
				r.Put("/", h.UpdateLevel)
				r.Post("/", h.SubmitScore)
				r.Delete("/", h.DeleteLevel)

				r.Route("/{player}", func(r chi.Router) {
					r.Get("/", h.GetScore)
					r.Put("/", h.UpdateScore)
					r.Delete("/", h.DeleteScore)
				})
			})
		})
	})

	return r
}

// corsMiddleware adds CORS headers
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Accept, Authorization, Content-Type, X-Request-ID")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// HealthCheck reports liveness.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

// ReadyCheck reports readiness to serve traffic.
func (h *Handler) ReadyCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}

// HandleWebSocket upgrades the connection and hands it to the hub.
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	websocket.ServeWs(h.hub, h.logger, w, r)
}

// RedirectLinkRelations points clients at the hosted relation docs.
func (h *Handler) RedirectLinkRelations(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, apiaryURL+"link-relations", http.StatusFound)
}

// RedirectProfile points clients at the hosted profile docs.
func (h *Handler) RedirectProfile(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, apiaryURL+"profiles", http.StatusFound)
}
