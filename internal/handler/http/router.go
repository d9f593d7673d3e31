package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/reelist/backend/internal/auth"
	"github.com/reelist/backend/internal/service"
	"github.com/reelist/backend/pkg/health"
	"github.com/reelist/backend/pkg/middleware"
)

// NewRouter creates a chi router with all backend routes registered.
func NewRouter(
	userService *service.UserService,
	catalogService *service.CatalogService,
	watchlistService *service.WatchlistService,
	jwtManager *auth.JWTManager,
	healthHandler *health.Handler,
	logger *slog.Logger,
	corsConfig middleware.CORSConfig,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CORS(corsConfig))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Tracing("reelist"))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.PrometheusMetrics("reelist"))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	// Token validator that bridges to our internal JWTManager.
	tokenValidator := func(token string) (*middleware.Claims, error) {
		claims, err := jwtManager.ValidateAccessToken(token)
		if err != nil {
			return nil, err
		}
		return &middleware.Claims{
			UserID: claims.UserID,
			Email:  claims.Email,
		}, nil
	}

	// Auth endpoints (public)
	authHandler := NewAuthHandler(userService)
	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(tokenValidator))
			r.Post("/change-password", authHandler.ChangePassword)
		})
	})

	// Catalog endpoints. Reads are public; writes require auth.
	movieHandler := NewMovieHandler(catalogService)
	r.Route("/api/v1/movies", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Get("/", movieHandler.List)
		r.Get("/lookup", movieHandler.Lookup)
		r.Get("/{id}", movieHandler.Get)
		r.Get("/{id}/rating", movieHandler.Rating)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(tokenValidator))
			r.Post("/", movieHandler.Create)
			r.Delete("/{id}", movieHandler.Delete)
		})
	})

	// Watchlist endpoints (auth required)
	watchlistHandler := NewWatchlistHandler(watchlistService)
	r.Route("/api/v1/watchlist", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(middleware.Auth(tokenValidator))

		r.Get("/", watchlistHandler.List)
		r.Delete("/", watchlistHandler.Clear)
		r.Get("/stats", watchlistHandler.Stats)

		r.Post("/movies", watchlistHandler.AddByCompoundKey)
		r.Post("/movies/{id}", watchlistHandler.Add)
		r.Get("/movies/{id}", watchlistHandler.Get)
		r.Delete("/movies/{id}", watchlistHandler.Remove)
		r.Post("/movies/{id}/move-to-beginning", watchlistHandler.MoveToBeginning)
		r.Post("/movies/{id}/move-to-end", watchlistHandler.MoveToEnd)
		r.Put("/movies/{id}/position", watchlistHandler.SetPosition)

		r.Get("/positions/{n}", watchlistHandler.GetByPosition)
		r.Delete("/positions/{n}", watchlistHandler.RemoveByPosition)

		r.Get("/current", watchlistHandler.Current)
		r.Put("/current", watchlistHandler.SetCurrent)
		r.Post("/current/watch", watchlistHandler.WatchCurrent)

		r.Post("/swap", watchlistHandler.Swap)
	})

	return r
}
