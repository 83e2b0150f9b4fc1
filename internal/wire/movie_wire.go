package wire

import (
	"cinebook/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireMovie(r chi.Router, movieHandler *adaptor.MovieHandler, g guards) {
	// ==================== PUBLIC ROUTES ====================
	// Catalog reads are served from the response cache when Redis is up.
	r.With(g.cache).Get("/api/movies", movieHandler.GetMovies)
	r.With(g.cache).Get("/api/movies/{id}", movieHandler.GetMovieByID)

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/movies", func(r chi.Router) {
		r.Use(g.auth)
		r.Use(g.admin)
		r.Use(g.invalidate)

		r.Post("/", movieHandler.CreateMovie)       // POST /api/admin/movies
		r.Put("/{id}", movieHandler.UpdateMovie)    // PUT /api/admin/movies/{id}
		r.Delete("/{id}", movieHandler.DeleteMovie) // DELETE /api/admin/movies/{id}
	})
}
