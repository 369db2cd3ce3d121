package api

import (
	"net/http"
	"time"

	// This blank import is required by swaggo to find the API definitions.
	_ "clario/backend/docs"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

// NewRouter creates and configures the chi router with all application routes.
func NewRouter(chatHandler *ChatHandler, sessionHandler *SessionHandler, videoHandler *VideoHandler, frontendURL, videosDir string) *chi.Mux {
	r := chi.NewRouter()

	// --- Global middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(corsMiddleware(frontendURL))

	// Swagger UI for the API documentation.
	r.Get("/api/swagger/*", httpSwagger.WrapHandler)

	// Liveness probe; a 200 is all that matters.
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// --- Relay endpoints ---
	// These hold connections open (token streaming, upstream polling, local
	// rendering) and must not sit behind a timeout middleware.
	r.Post("/chat", chatHandler.HandleChat)
	r.Post("/api/generate-video", videoHandler.HandleGenerateVideo)
	r.Post("/api/generate-motion-video", videoHandler.HandleGenerateMotionVideo)

	// --- Session API ---
	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(60 * time.Second))

			r.Post("/sessions", sessionHandler.HandleCreateSession)
			r.Get("/sessions", sessionHandler.HandleListSessions)
			r.Get("/sessions/active", sessionHandler.HandleActiveSession)
			r.Get("/sessions/{sessionID}", sessionHandler.HandleGetSession)
			r.Delete("/sessions/{sessionID}", sessionHandler.HandleDeleteSession)
			r.Get("/sessions/{sessionID}/transcript", sessionHandler.HandleTranscript)
		})
	})

	// --- Rendered assets ---
	fileServer := http.FileServer(http.Dir(videosDir))
	r.Handle("/videos/*", http.StripPrefix("/videos/", fileServer))

	return r
}

// corsMiddleware allows the configured frontend origin, or any origin when
// none is configured (local development).
func corsMiddleware(frontendURL string) func(http.Handler) http.Handler {
	allowed := []string{"*"}
	credentials := false
	if frontendURL != "" {
		allowed = []string{frontendURL}
		credentials = true
	}
	return cors.Handler(cors.Options{
		AllowedOrigins:   allowed,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: credentials,
		MaxAge:           300,
	})
}
