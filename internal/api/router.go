package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/gamescape/gamescape-be/internal/api/handlers"
	"github.com/gamescape/gamescape-be/internal/auth"
	"github.com/gamescape/gamescape-be/internal/games"
	"github.com/gamescape/gamescape-be/internal/metrics"
	"github.com/gamescape/gamescape-be/internal/services"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(
	verifier auth.CredentialVerifier,
	userService services.UserServiceProvider,
	collectionService services.CollectionServiceProvider,
	catalog games.CatalogProvider,
	m *metrics.Metrics,
	loginLimiter *RateLimiter,
	allowedOrigins []string,
) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(m.Middleware)

	// The frontend is served from another origin and sends the session
	// cookie with credentials: include.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, verifier)
	profileHandler := handlers.NewProfileHandler(userService)
	collectionHandler := handlers.NewCollectionHandler(collectionService)
	gameHandler := handlers.NewGameHandler(catalog)
	adminHandler := handlers.NewAdminHandler(userService)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Method(http.MethodGet, "/metrics", m.Handler())

	// Credential endpoints are rate limited per IP; everything behind
	// the auth gate is not.
	r.Group(func(r chi.Router) {
		r.Use(loginLimiter.Middleware)
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
	})
	r.Post("/logout", authHandler.Logout)

	// Authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(auth.Authenticate(verifier))

		r.Get("/profile", profileHandler.Get)
		r.Put("/profile", profileHandler.Update)

		r.Route("/collection", func(r chi.Router) {
			r.Get("/", collectionHandler.List)
			r.Post("/", collectionHandler.Add)
			r.Delete("/{gameId}", collectionHandler.Remove)
		})

		r.Route("/api/games", func(r chi.Router) {
			r.Get("/search", gameHandler.Search)
			r.Get("/{id}", gameHandler.Detail)
		})

		// Admin panel: authorize strictly after authenticate.
		r.Route("/admin", func(r chi.Router) {
			r.Use(auth.RequireAdmin)
			r.Get("/users", adminHandler.List)
			r.Post("/users/add", adminHandler.Add)
			r.Delete("/users/{id}", adminHandler.Delete)
			r.Put("/users/{id}/update", adminHandler.Update)
		})
	})

	return r
}
