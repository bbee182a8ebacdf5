// Package http exposes the catalog over a JSON REST API. Every response is
// wrapped in a {"msg", "result"} envelope.
package http

import (
	"net/http"

	"github.com/atinyakov/holocron/internal/middleware"
	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter constructs the HTTP handler serving the catalog API.
//
// Routes:
//
//	GET                /                                  → sitemap
//	GET, POST          /user                              → users
//	GET, PUT, DELETE   /user/{user_id}
//	GET                /user/{user_id}/favorites          → favorites.ListForUser
//	POST               /user/{user_id}/favorites/{target_type}/{target_id}
//	DELETE             /user/{user_id}/favorites/{favorite_id}
//	GET                /favorites                         → favorites.ListAll
//	GET, POST          /planets, /characters, /vehicles
//	GET, PUT, DELETE   /planets/{planet_id}, /characters/{character_id}, /vehicles/{vehicle_id}
//
// Middleware chain (applied in order):
//  1. cors.Handler: answers preflight requests
//  2. WithRequestLogging(logger): logs each request
//  3. Recoverer: turns panics into 500s
//  4. AllowContentType("application/json"): rejects non-JSON bodies
func NewRouter(
	users *UserHandler,
	planets *PlanetHandler,
	characters *CharacterHandler,
	vehicles *VehicleHandler,
	favorites *FavoriteHandler,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
		MaxAge:         300,
	}))
	r.Use(middleware.WithRequestLogging(logger))
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.AllowContentType("application/json"))

	r.Get("/", Sitemap(r, logger))

	r.Route("/user", func(r chi.Router) {
		users.Routes(r)
		favorites.UserRoutes(r)
	})
	r.Get("/favorites", favorites.ListAll)
	r.Route("/planets", planets.Routes)
	r.Route("/characters", characters.Routes)
	r.Route("/vehicles", vehicles.Routes)

	return r
}
