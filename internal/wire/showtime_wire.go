package wire

import (
	"cinebook/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// wireShowtime registers showtime and seat routes. Both carry live seat
// availability, so neither goes through the response cache.
func wireShowtime(r chi.Router, showtimeHandler *adaptor.ShowtimeHandler, seatHandler *adaptor.SeatHandler, g guards) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/showtimes", showtimeHandler.GetShowtimes)
	r.Get("/api/showtimes/{id}", showtimeHandler.GetShowtimeByID)
	r.Get("/api/showtimes/{id}/seats", seatHandler.GetSeatsByShowtime)
	r.Get("/api/seats/{id}", seatHandler.GetSeatByID)

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/showtimes", func(r chi.Router) {
		r.Use(g.auth)
		r.Use(g.admin)

		r.Post("/", showtimeHandler.CreateShowtime)
		r.Put("/{id}", showtimeHandler.UpdateShowtime)
		r.Delete("/{id}", showtimeHandler.DeleteShowtime)
	})

	r.With(g.auth, g.admin).Put("/api/admin/seats/{id}", seatHandler.UpdateSeat)
}
